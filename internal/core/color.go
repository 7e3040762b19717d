package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for companion elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightYellow
	ColorBrightMagenta
	ColorBrightCyan
	ColorOrange
	ColorPink
	ColorGray
)

// Cell is a single character cell with its foreground color.
type Cell struct {
	Rune  rune
	Color Color
}
