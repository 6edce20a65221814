package styles

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a straight-alpha sRGB color. A is in [0,1].
type Color struct {
	R, G, B uint8
	A       float64
}

// Palette.
var (
	White   = Color{255, 255, 255, 1}
	Black   = Color{0, 0, 0, 1}
	Navy    = MustHex("#0A1A34")
	Pacific = MustHex("#0E5AA7")
)

// Hex parses "#RRGGBB" into an opaque Color.
func Hex(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 1}, nil
}

// MustHex is Hex for package-level literals.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Alpha returns c with opacity a.
func (c Color) Alpha(a float64) Color {
	c.A = a
	return c
}

// NRGBA converts to the image/color straight-alpha type.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(clamp01(c.A)*255 + 0.5)}
}

// CSS renders the color as an rgba() expression.
func (c Color) CSS() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, trimFloat(c.A))
}

// MarshalText encodes the color as its CSS expression.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.CSS()), nil
}

// HexString renders the RGB channels as "#rrggbb".
func (c Color) HexString() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Lerp interpolates each channel, alpha included, linearly.
func Lerp(a, b Color, t float64) Color {
	t = clamp01(t)
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return Color{
		R: mix(a.R, b.R),
		G: mix(a.G, b.G),
		B: mix(a.B, b.B),
		A: a.A + (b.A-a.A)*t,
	}
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
