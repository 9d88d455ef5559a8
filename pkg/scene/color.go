package scene

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Color is a linear RGB triple with components in [0, 1]
type Color struct {
	R, G, B float64
}

// White is the default material color
var White = Color{R: 1, G: 1, B: 1}

// Hex builds a color from a 0xRRGGBB literal
func Hex(rgb uint32) Color {
	return Color{
		R: float64((rgb>>16)&0xff) / 255,
		G: float64((rgb>>8)&0xff) / 255,
		B: float64(rgb&0xff) / 255,
	}
}

// ParseHex parses "#rrggbb" or "rrggbb"
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Hex(uint32(v)), nil
}

// Lerp blends towards other by t
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
	}
}

// Scale multiplies every component by f
func (c Color) Scale(f float64) Color {
	return Color{R: c.R * f, G: c.G * f, B: c.B * f}
}

// RGBA converts to an 8-bit color, clamping out-of-range components
func (c Color) RGBA(alpha float64) color.RGBA {
	return color.RGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(alpha)}
}

func (c Color) String() string {
	rgba := c.RGBA(1)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

func channel(v float64) uint8 {
	return uint8(math.Round(max(0, min(1, v)) * 255))
}
