package cell

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorMode tags which representation a Color carries.
type ColorMode uint8

const (
	ColorDefault ColorMode = iota
	ColorNamed16
	ColorIndexed256
	ColorRGB24
	ColorAdaptive
)

// Color is a tagged terminal color value (spec §3). Adaptive is resolved
// against the active theme's luminance at presentation time, never stored
// resolved.
type Color struct {
	Mode ColorMode
	// Named16/Indexed256 use Index; RGB24 uses R,G,B. Adaptive uses Light
	// and Dark as the two candidate RGB24 triples to choose between.
	Index      uint8
	R, G, B    uint8
	Light      [3]uint8
	Dark       [3]uint8
}

// Default is the terminal's default foreground/background color.
var Default = Color{Mode: ColorDefault}

// Named16 constructs a 16-color palette entry (0-15).
func Named16(index uint8) Color {
	return Color{Mode: ColorNamed16, Index: index & 0x0f}
}

// Indexed256 constructs a 256-color palette entry.
func Indexed256(index uint8) Color {
	return Color{Mode: ColorIndexed256, Index: index}
}

// RGB constructs a 24-bit true color.
func RGB(r, g, b uint8) Color {
	return Color{Mode: ColorRGB24, R: r, G: g, B: b}
}

// Adaptive constructs a color that resolves to light on dark backgrounds
// and dark on light backgrounds, per the active theme's luminance.
func Adaptive(light, dark [3]uint8) Color {
	return Color{Mode: ColorAdaptive, Light: light, Dark: dark}
}

// Resolve collapses Adaptive against bgIsDark, leaving every other mode
// unchanged. The presenter calls this once per frame, never per cell,
// using the theme's background luminance.
func (c Color) Resolve(bgIsDark bool) Color {
	if c.Mode != ColorAdaptive {
		return c
	}
	if bgIsDark {
		return Color{Mode: ColorRGB24, R: c.Light[0], G: c.Light[1], B: c.Light[2]}
	}
	return Color{Mode: ColorRGB24, R: c.Dark[0], G: c.Dark[1], B: c.Dark[2]}
}

// Luminance reports the relative luminance of an RGB24 color (CIE L*),
// used by theme resolution to decide "is this background dark". Non-RGB24
// colors return 0.5 (treated as mid-tone, deferring to explicit theme bits).
func (c Color) Luminance() float64 {
	if c.Mode != ColorRGB24 {
		return 0.5
	}
	cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	l, _, _ := cf.Lab()
	return l / 100
}

// Distance reports the perceptual (Lab) distance between two RGB24 colors,
// used by the presenter's 256-color downgrade path to pick the closest
// palette entry. Non-RGB24 inputs are treated as black.
func (c Color) Distance(other Color) float64 {
	a := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	b := colorful.Color{R: float64(other.R) / 255, G: float64(other.G) / 255, B: float64(other.B) / 255}
	return a.DistanceLab(b)
}

// AsStdColor adapts an RGB24 Color to image/color.Color for interop with
// go-colorful based theme helpers.
func (c Color) AsStdColor() color.Color {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func (c Color) String() string {
	switch c.Mode {
	case ColorDefault:
		return "default"
	case ColorNamed16:
		return fmt.Sprintf("named16(%d)", c.Index)
	case ColorIndexed256:
		return fmt.Sprintf("indexed256(%d)", c.Index)
	case ColorRGB24:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	case ColorAdaptive:
		return fmt.Sprintf("adaptive(light=#%02x%02x%02x dark=#%02x%02x%02x)",
			c.Light[0], c.Light[1], c.Light[2], c.Dark[0], c.Dark[1], c.Dark[2])
	default:
		return "unknown"
	}
}
