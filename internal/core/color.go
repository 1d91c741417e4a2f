package core

import "math"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
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
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// ColorForHue maps a hue angle in degrees to the closest predefined color.
// Values outside [0, 360) wrap around the color wheel.
func ColorForHue(hue float64) Color {
	h := math.Mod(hue, 360)
	if h < 0 {
		h += 360
	}
	switch {
	case h < 15:
		return ColorRed
	case h < 45:
		return ColorOrange
	case h < 70:
		return ColorYellow
	case h < 160:
		return ColorGreen
	case h < 200:
		return ColorCyan
	case h < 260:
		return ColorBlue
	case h < 330:
		return ColorMagenta
	default:
		return ColorBrightRed
	}
}
