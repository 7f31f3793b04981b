package core

// Color is the foreground of a screen cell. The host maps each value to an
// ANSI 256-color code.
type Color uint8

// Accent colors, used for toy faces and frames.
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

// Surface tones, darkest to lightest. Shadows, wells and highlights are
// drawn with these so the light source reads the same on every toy.
const (
	ColorShadow Color = iota + ColorGray + 1
	ColorSurface
	ColorHighlight
)

// ColorCount is the number of defined colors.
const ColorCount = int(ColorHighlight) + 1

// Tone picks the surface tone for a lightness in [0, 1].
func Tone(lightness float64) Color {
	switch {
	case lightness < 1.0/3:
		return ColorShadow
	case lightness < 2.0/3:
		return ColorSurface
	default:
		return ColorHighlight
	}
}
