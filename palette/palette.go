// Package palette holds the color type shared by the scene graph, the
// frame-driven objects and the parameter panel.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned when a color string cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
)

// FromRGBA converts an 8-bit color.
func FromRGBA(c color.RGBA) Color {
	return Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// RGBA converts c to a premultiplied 8-bit color.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Hex returns c as "#rrggbb", ignoring alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x",
		uint8(clamp01(c.R)*255+0.5), uint8(clamp01(c.G)*255+0.5), uint8(clamp01(c.B)*255+0.5))
}

// Scale multiplies the RGB components by s, leaving alpha untouched.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A}
}

// Modulate multiplies c and d component-wise.
func (c Color) Modulate(d Color) Color {
	return Color{c.R * d.R, c.G * d.G, c.B * d.B, c.A * d.A}
}

// Add sums the RGB components of c and d, keeping c's alpha.
func (c Color) Add(d Color) Color {
	return Color{c.R + d.R, c.G + d.G, c.B + d.B, c.A}
}

// Clamp limits every component to [0, 1].
func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B), clamp01(c.A)}
}

// Parse converts a CSS color name ("skyBlue", case-insensitive) or a hex
// string ("#rgb", "#rrggbb", "#rrggbbaa") to a Color.
func Parse(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return Color{}, fmt.Errorf("%w: empty", ErrInvalidColor)
	}
	if strings.HasPrefix(name, "#") {
		return parseHex(name[1:], s)
	}
	c, ok := colornames.Map[name]
	if !ok {
		return Color{}, fmt.Errorf("%w: unknown name %q", ErrInvalidColor, s)
	}
	return FromRGBA(c), nil
}

// MustParse is like Parse but panics on error. Intended for literal colors.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(h, orig string) (Color, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	return FromRGBA(color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Pair is a two-entry palette: index 0 is shown while hovered, index 1 otherwise.
type Pair [2]Color

// NewPair parses a hovered and an idle color.
func NewPair(hovered, idle string) (Pair, error) {
	h, err := Parse(hovered)
	if err != nil {
		return Pair{}, err
	}
	i, err := Parse(idle)
	if err != nil {
		return Pair{}, err
	}
	return Pair{h, i}, nil
}

// Pick returns p[0] when hovered and p[1] otherwise.
func (p Pair) Pick(hovered bool) Color {
	if hovered {
		return p[0]
	}
	return p[1]
}
