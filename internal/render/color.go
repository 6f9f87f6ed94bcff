package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette returns n visually distinct opaque colors.
//
// Hues are spaced evenly around the color wheel at fixed saturation and
// value. The same n always yields the same colors.
func Palette(n int) []color.NRGBA {
	if n <= 0 {
		return nil
	}
	out := make([]color.NRGBA, n)
	for i := range out {
		hue := float64(i) * 360.0 / float64(n)
		out[i] = toNRGBA(colorful.Hsv(hue, 0.85, 0.9), 255)
	}
	return out
}

// ParseColor parses "#RRGGBB", "#RGB" or "#RRGGBBAA". The leading '#' is
// optional.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if s[0] != '#' {
		s = "#" + s
	}

	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in color %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return toNRGBA(c, alpha), nil
}

// HexColor formats c as "#rrggbb", dropping alpha.
func HexColor(c color.NRGBA) string {
	return fromNRGBA(c).Hex()
}

// blend mixes fill into base by amount (0 keeps base, 1 gives fill).
func blend(base, fill color.NRGBA, amount float64) color.NRGBA {
	mixed := fromNRGBA(base).BlendRgb(fromNRGBA(fill), amount)
	return toNRGBA(mixed, base.A)
}

func toNRGBA(c colorful.Color, alpha uint8) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}
}

func fromNRGBA(c color.NRGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
