package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/companion/internal/companion"
	"github.com/vovakirdan/companion/internal/core"
)

// palette maps core.Color to ANSI 256 foreground codes.
var palette = map[core.Color]lipgloss.Color{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightYellow:  "11",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorOrange:        "208",
	core.ColorPink:          "212",
	core.ColorGray:          "245",
}

// backdrops tints the whole playfield. The camera backdrop stands in for a
// live feed with a dim background.
var backdrops = map[companion.Backdrop]lipgloss.Style{
	companion.BackdropFantasy: lipgloss.NewStyle(),
	companion.BackdropCamera:  lipgloss.NewStyle().Background(lipgloss.Color("236")),
}

// themes holds the prebuilt styles for every backdrop.
var themes = map[companion.Backdrop]Styles{
	companion.BackdropFantasy: NewStyles(companion.BackdropFantasy),
	companion.BackdropCamera:  NewStyles(companion.BackdropCamera),
}

func themeFor(b companion.Backdrop) Styles {
	if st, ok := themes[b]; ok {
		return st
	}
	return themes[companion.BackdropFantasy]
}

// Styles caches one lipgloss style per color for a backdrop.
type Styles struct {
	byColor map[core.Color]lipgloss.Style
	base    lipgloss.Style
}

// NewStyles builds the style table for backdrop.
func NewStyles(b companion.Backdrop) Styles {
	base, ok := backdrops[b]
	if !ok {
		base = lipgloss.NewStyle()
	}
	st := Styles{byColor: make(map[core.Color]lipgloss.Style, len(palette)), base: base}
	for c, code := range palette {
		st.byColor[c] = base.Foreground(code)
	}
	return st
}

func (st Styles) style(c core.Color) lipgloss.Style {
	if s, ok := st.byColor[c]; ok {
		return s
	}
	return st.base
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, st Styles) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(st.style(color).Render(run.String()))
		}
	}
	return sb.String()
}
