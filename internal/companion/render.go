package companion

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/companion/internal/avatar"
	"github.com/vovakirdan/companion/internal/core"
)

// Glyphs used when drawing into a terminal screen.
const (
	OrbChar   = '●'
	TreatChar = '◆'
	StarChar  = '★'
	HeartChar = '♥'
	CoinChar  = '◎'
)

// AccessoryGlyph returns the text drawn for an equipped item, or "".
type AccessoryGlyph func(slot, itemID string) string

// Render draws the current state into dst, scaling the play field to fit.
func (e *Engine) Render(dst *core.Screen) {
	RenderSnapshot(dst, e.Snapshot(), e.glyph)
}

// RenderSnapshot draws s into dst. glyph may be nil.
func RenderSnapshot(dst *core.Screen, s Snapshot, glyph AccessoryGlyph) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}
	v := viewport{w: dst.Width(), h: dst.Height(), field: s}

	if s.Backdrop == BackdropFantasy {
		drawStarfield(dst, s.Tick)
	} else {
		dst.DrawTextColored(dst.Width()-9, dst.Height()-1, "[camera]", core.ColorGray)
	}

	for _, p := range s.Particles {
		x, y := v.cell(p.Pos)
		dst.SetColored(x, y, particleRune(p.Life), p.Color)
	}
	for _, ent := range s.Entities() {
		x, y := v.cell(ent.Pos)
		dst.SetColored(x, y, entityRune(ent.Kind), ent.Color)
	}

	drawAvatar(dst, v, s, glyph)
	drawHUD(dst, s)
	drawUnavailable(dst, s)

	if s.DialogueVisible {
		drawBubble(dst, v, s)
	}
	if s.Session.Phase == PhaseEnded {
		drawResult(dst, s.Session)
	}
}

type viewport struct {
	w, h  int
	field Snapshot
}

func (v viewport) cell(p core.Vec) (int, int) {
	fw, fh := v.field.Field.Width, v.field.Field.Height
	if fw <= 0 || fh <= 0 {
		return 0, 0
	}
	return int(p.X / fw * float64(v.w)), int(p.Y / fh * float64(v.h))
}

func entityRune(k Kind) rune {
	switch k := k.(type) {
	case Orb:
		return OrbChar
	case Treat:
		return TreatChar
	case FallingObject:
		switch k.Variant {
		case Heart:
			return HeartChar
		case Coin:
			return CoinChar
		default:
			return StarChar
		}
	default:
		panic(fmt.Sprintf("companion: unhandled entity kind %T", k))
	}
}

func particleRune(life float64) rune {
	switch {
	case life > 0.6:
		return '*'
	case life > 0.3:
		return '+'
	default:
		return '·'
	}
}

// drawStarfield fills the fantasy backdrop with a sparse twinkling sky.
func drawStarfield(dst *core.Screen, tick uint64) {
	for y := 0; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			h := uint32(x*73856093) ^ uint32(y*19349663)
			if h%41 != 0 {
				continue
			}
			r, c := '·', core.ColorGray
			if (uint64(h>>8)+tick/30)%7 == 0 {
				r, c = '✦', core.ColorBlue
			}
			dst.SetColored(x, y, r, c)
		}
	}
}

func face(m avatar.Mood) string {
	switch m {
	case avatar.MoodLow:
		return "-_-"
	case avatar.MoodHigh:
		return "^ᴗ^"
	default:
		return "•ᴗ•"
	}
}

func avatarColor(m avatar.Mood) core.Color {
	switch m {
	case avatar.MoodLow:
		return core.ColorCyan
	case avatar.MoodHigh:
		return core.ColorBrightMagenta
	default:
		return core.ColorMagenta
	}
}

// avatarSprite returns the body lines for the current transform.
// Spinning past a quarter turn shows the back of the head.
func avatarSprite(s Snapshot) []string {
	f := face(s.Mood)
	if rot := s.Anchor.Rotation; rot > 90 && rot < 270 {
		f = "   "
	}
	size := s.Anchor.Scale * s.Profile.SizeMultiplier()
	switch {
	case size < 0.8:
		return []string{"(" + f + ")"}
	case size < 1.6:
		return []string{
			"╭───╮",
			"│" + f + "│",
			"╰┬─┬╯",
		}
	default:
		return []string{
			"╭─────╮",
			"│     │",
			"│ " + f + " │",
			"│     │",
			"╰─┬─┬─╯",
		}
	}
}

func drawAvatar(dst *core.Screen, v viewport, s Snapshot, glyph AccessoryGlyph) {
	lines := avatarSprite(s)
	lift := s.Anchor.Hop / s.Field.Height * float64(v.h)
	cx, cy := v.cell(s.Center)
	cy -= int(lift + 0.5)
	top := cy - len(lines)/2
	c := avatarColor(s.Mood)

	for i, line := range lines {
		w := len([]rune(line))
		dst.DrawTextColored(cx-w/2, top+i, line, c)
	}

	if glyph == nil {
		return
	}
	if id, ok := s.Profile.Accessory("hat"); ok {
		if g := glyph("hat", id); g != "" {
			dst.DrawTextColored(cx-len([]rune(g))/2, top-1, g, core.ColorBrightYellow)
		}
	}
	if id, ok := s.Profile.Accessory("scarf"); ok {
		if g := glyph("scarf", id); g != "" {
			dst.DrawTextColored(cx-len([]rune(g))/2, top+len(lines), g, core.ColorBrightRed)
		}
	}
	if id, ok := s.Profile.Accessory("glasses"); ok && len(lines) > 1 {
		if g := glyph("glasses", id); g != "" {
			dst.DrawTextColored(cx-len([]rune(g))/2, top+len(lines)/2, g, core.ColorWhite)
		}
	}
	if id, ok := s.Profile.Accessory("backdrop-charm"); ok {
		if g := glyph("backdrop-charm", id); g != "" {
			dst.DrawTextColored(1, dst.Height()-1, g, core.ColorBrightCyan)
		}
	}
}

func drawHUD(dst *core.Screen, s Snapshot) {
	st := s.Session
	if st.Phase != PhaseActive {
		return
	}
	misses := strings.Repeat("✗", st.MissCount)
	hud := fmt.Sprintf(" Score %d  Combo x%d  Miss %s  %ds ",
		st.Score, st.Combo, misses, int(st.TimeRemaining.Seconds()))
	dst.DrawTextColored(0, 0, hud, core.ColorWhite)
}

// drawUnavailable marks lost capabilities in the bottom-right corner.
func drawUnavailable(dst *core.Screen, s Snapshot) {
	if len(s.Unavailable) == 0 {
		return
	}
	names := make([]string, len(s.Unavailable))
	for i, k := range s.Unavailable {
		names[i] = string(k)
	}
	text := "no " + strings.Join(names, ",")
	dst.DrawTextColored(core.Max(0, dst.Width()-len(text)), dst.Height()-1, text, core.ColorGray)
}

func drawBubble(dst *core.Screen, v viewport, s Snapshot) {
	text := " " + s.Dialogue + " "
	w := len([]rune(text)) + 2
	if w > dst.Width() {
		w = dst.Width()
	}
	cx, cy := v.cell(s.Center)
	top := cy - 6
	if top < 1 {
		top = 1
	}
	left := core.Clamp(cx-w/2, 0, core.Max(0, dst.Width()-w))
	dst.DrawBox(core.NewRect(left, top, w, 3), core.ColorWhite)
	dst.DrawTextColored(left+1, top+1, text, core.ColorBrightYellow)
}

func drawResult(dst *core.Screen, st SessionState) {
	title := "GAME OVER"
	if st.Reason == ReasonTimeout {
		title = "TIME'S UP!"
	}
	midY := dst.Height()/2 - 2
	dst.DrawTextCentered(midY, title, core.ColorBrightYellow)
	dst.DrawTextCentered(midY+1, fmt.Sprintf("Score %d  Caught %d  Best combo %d", st.Score, st.Caught, st.BestCombo), core.ColorWhite)
	dst.DrawTextCentered(midY+2, "S to play again", core.ColorGray)
}
