package touch

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/companion/internal/avatar"
	"github.com/vovakirdan/companion/internal/capability"
	"github.com/vovakirdan/companion/internal/companion"
	"github.com/vovakirdan/companion/internal/config"
	"github.com/vovakirdan/companion/internal/core"
)

const (
	bodyRadius  = 34.0 // avatar radius at scale 1, px
	tiltStep    = 10.0
	textLineGap = 16
)

// Options configures the graphical frontend.
type Options struct {
	Config   config.CompanionConfig
	Seed     int64
	Profile  avatar.Profile
	Sink     companion.ProgressSink
	Recorder companion.RunRecorder
	Tone     capability.Tone
	Logger   *log.Logger
	// WindowScale multiplies the playfield size for the desktop window.
	WindowScale float64
}

// Game implements ebiten.Game around one companion engine.
type Game struct {
	engine  *companion.Engine
	sched   *companion.FrameScheduler
	motion  *capability.SimulatedMotion
	haptics *Haptics
	tracker tracker
	field   config.PlayfieldConfig
	frames  int64
	touches []ebiten.TouchID
	focused bool
}

// NewGame builds the engine and opens it.
func NewGame(opts Options) *Game {
	sched := companion.NewFrameScheduler()
	g := &Game{
		sched:   sched,
		motion:  capability.NewSimulatedMotion(sched.Now),
		haptics: NewHaptics(sched.Now),
		field:   opts.Config.Playfield,
		focused: true,
	}

	caps := capability.NewSet(opts.Logger)
	caps.Motion = g.motion
	caps.Haptics = g.haptics
	caps.Tone = opts.Tone

	g.engine = companion.NewEngine(opts.Config, caps, opts.Sink,
		companion.WithLogger(opts.Logger),
		companion.WithScheduler(sched),
		companion.WithRecorder(opts.Recorder),
		companion.WithSeed(opts.Seed),
	)
	g.engine.Open(opts.Profile)
	return g
}

// Engine exposes the engine for hosts and tests.
func (g *Game) Engine() *companion.Engine { return g.engine }

// now derives frame time from the tick count so the simulation advances in
// even steps whatever the wall clock does.
func (g *Game) now() time.Duration {
	return time.Duration(g.frames) * time.Second / time.Duration(ebiten.TPS())
}

// Update reads input and fires one engine frame.
func (g *Game) Update() error {
	if !g.engine.IsOpen() {
		return ebiten.Termination
	}
	g.frames++
	now := g.now()

	g.readKeys()
	g.readPointer(now)
	g.motion.Hold()
	g.haptics.Pump(now)
	g.sched.Fire(now)
	return nil
}

func (g *Game) readKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyG), inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		g.engine.StartGame()
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		g.engine.EndGame()
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.engine.ThrowOrb()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.engine.FeedTreat()
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		g.motion.Tilt(-tiltStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.motion.Tilt(tiltStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.motion.Level()
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		g.motion.Shake()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.engine.Close()
	}
}

// readPointer collects the current contacts: every touch, or the left
// mouse button when nothing touches the screen.
func (g *Game) readPointer(now time.Duration) {
	if focused := ebiten.IsFocused(); !focused {
		if g.focused {
			for _, ev := range g.tracker.cancel(now) {
				g.engine.Pointer(ev)
			}
		}
		g.focused = false
		return
	}
	g.focused = true

	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	contacts := make([]core.Vec, 0, len(g.touches))
	for _, id := range g.touches {
		x, y := ebiten.TouchPosition(id)
		contacts = append(contacts, core.V(float64(x), float64(y)))
	}
	if len(contacts) == 0 && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		contacts = append(contacts, core.V(float64(x), float64(y)))
	}

	for _, ev := range g.tracker.update(contacts, now) {
		g.engine.Pointer(ev)
	}
}

// Layout keeps the logical screen at playfield size so pointer positions
// need no conversion.
func (g *Game) Layout(_, _ int) (int, int) {
	return int(g.field.Width), int(g.field.Height)
}

// Draw renders the engine snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	s := g.engine.Snapshot()

	if s.Backdrop == companion.BackdropCamera {
		screen.Fill(cameraBackground)
	} else {
		screen.Fill(fantasyBackground)
		drawStars(screen, s)
	}

	for _, p := range s.Particles {
		vector.DrawFilledCircle(screen, float32(p.Pos.X), float32(p.Pos.Y),
			float32(1.5+2.5*p.Life), fade(rgba(p.Color), p.Life), false)
	}
	for _, e := range s.Entities() {
		vector.DrawFilledCircle(screen, float32(e.Pos.X), float32(e.Pos.Y),
			float32(entityRadius(e.Kind)), rgba(e.Color), true)
	}

	drawAvatar(screen, s)
	drawHUD(screen, s)
}

func entityRadius(k companion.Kind) float64 {
	switch k.(type) {
	case companion.Orb:
		return 9
	case companion.Treat:
		return 7
	default:
		return 11
	}
}

func drawStars(screen *ebiten.Image, s companion.Snapshot) {
	// Deterministic scatter; every few ticks a star twinkles off.
	for i := range 40 {
		x := float32((i*97 + 13) % int(math.Max(1, s.Field.Width)))
		y := float32((i*61 + 29) % int(math.Max(1, s.Field.Height)))
		if (uint64(i)+s.Tick/20)%7 == 0 {
			continue
		}
		vector.DrawFilledRect(screen, x, y, 1.5, 1.5, starColor, false)
	}
}

func drawAvatar(screen *ebiten.Image, s companion.Snapshot) {
	r := bodyRadius * s.Anchor.Scale * s.Profile.SizeMultiplier()
	cx := float32(s.Center.X)
	cy := float32(s.Center.Y - s.Anchor.Hop)

	if s.Session.Phase == companion.PhaseActive {
		vector.StrokeCircle(screen, float32(s.Center.X), float32(s.Center.Y),
			float32(s.HitRadius), 1, reachColor, true)
	}
	vector.DrawFilledCircle(screen, cx, cy, float32(r), moodColor(s.Mood), true)

	// Eyes orbit with the spin and vanish while facing away.
	rot := s.Anchor.Rotation * math.Pi / 180
	facing := math.Cos(rot)
	if facing <= 0 {
		return
	}
	eyeR := float32(math.Max(1.5, r*0.12))
	dx := r * 0.35 * facing
	shift := r * 0.6 * math.Sin(rot)
	for _, side := range []float64{-1, 1} {
		ex := cx + float32(side*dx+shift)
		vector.DrawFilledCircle(screen, ex, cy-float32(r*0.15), eyeR, eyeColor, true)
	}
}

func drawHUD(screen *ebiten.Image, s companion.Snapshot) {
	y := 8
	if st := s.Session; st.Phase == companion.PhaseActive {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score %d  Combo x%d  Miss %d  %ds",
			st.Score, st.Combo, st.MissCount, int(st.TimeRemaining/time.Second)), 8, y)
		y += textLineGap
	}
	if s.DialogueVisible {
		ebitenutil.DebugPrintAt(screen, s.Dialogue, 8, y)
	}
	if st := s.Session; st.Phase == companion.PhaseEnded {
		title := "TIME'S UP!"
		if st.Reason == companion.ReasonMissLimit {
			title = "GAME OVER"
		}
		mid := int(s.Field.Height / 3)
		ebitenutil.DebugPrintAt(screen, title, int(s.Field.Width/2)-len(title)*3, mid)
		line := fmt.Sprintf("Score %d  Best combo x%d", st.Score, st.BestCombo)
		ebitenutil.DebugPrintAt(screen, line, int(s.Field.Width/2)-len(line)*3, mid+textLineGap)
	}
}

// Run opens a window and blocks until it closes.
func Run(opts Options) error {
	scale := opts.WindowScale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowSize(int(opts.Config.Playfield.Width*scale), int(opts.Config.Playfield.Height*scale))
	ebiten.SetWindowTitle("Companion")

	g := NewGame(opts)
	defer g.engine.Close()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

var (
	fantasyBackground = color.RGBA{R: 18, G: 14, B: 40, A: 255}
	cameraBackground  = color.RGBA{R: 48, G: 48, B: 52, A: 255}
	starColor         = color.RGBA{R: 200, G: 200, B: 255, A: 180}
	reachColor        = color.RGBA{R: 255, G: 255, B: 255, A: 60}
	eyeColor          = color.RGBA{R: 20, G: 20, B: 30, A: 255}
)
