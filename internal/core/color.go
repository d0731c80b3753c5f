package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the terminal renderer.
type Color uint8

// Colors used by the starfield renderer.
const (
	ColorDefault Color = iota
	ColorWhite
	ColorGray
	ColorOrange
	ColorBrightRed
	ColorBrightGreen
	ColorBrightCyan
	ColorBrightWhite
)
