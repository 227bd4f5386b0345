package resource

import (
	"fmt"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xff}
}

// String returns the color as "#rrggbb", or "#rrggbbaa" when not opaque.
func (c Color) String() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseColor accepts any CSS color: hex forms, named colors, "transparent",
// and the rgb(), rgba(), hsl(), hsla() and hwb() functions.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("invalid color: empty")
	}
	parsed, err := csscolorparser.Parse(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b, a := parsed.RGBA255()
	return Color{R: r, G: g, B: b, A: a}, nil
}
