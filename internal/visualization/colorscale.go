package visualization

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/plot/palette"
)

// namedColors are the CSS colors the renderers refer to by name
var namedColors = map[string]string{
	"green":  "#008000",
	"yellow": "#ffff00",
	"red":    "#ff0000",
	"blue":   "#0000ff",
	"purple": "#800080",
	"pink":   "#ffc0cb",
	"orange": "#ffa500",
	"gray":   "#808080",
}

// rgb holds color channels in [0, 1]
type rgb struct {
	r, g, b float64
}

// LinearColorScale maps values in [min, max] onto evenly spaced color stops
// with linear interpolation between neighbors. It implements
// palette.ColorMap so gonum plotters can draw it.
type LinearColorScale struct {
	stops []rgb
	min   float64
	max   float64
	alpha float64
}

var _ palette.ColorMap = (*LinearColorScale)(nil)

// NewLinearColorScale builds a scale from at least two named or "#rrggbb" colors.
// min must be strictly less than max.
func NewLinearColorScale(colors []string, min, max float64) (*LinearColorScale, error) {
	if len(colors) < 2 {
		return nil, fmt.Errorf("color scale needs at least 2 colors, got %d", len(colors))
	}
	if !(min < max) {
		return nil, fmt.Errorf("color scale range is empty: min=%v max=%v", min, max)
	}

	stops := make([]rgb, len(colors))
	for i, name := range colors {
		c, err := parseColor(name)
		if err != nil {
			return nil, err
		}
		stops[i] = c
	}

	return &LinearColorScale{stops: stops, min: min, max: max, alpha: 1}, nil
}

// At returns the color for v
func (s *LinearColorScale) At(v float64) (color.Color, error) {
	c, err := s.interpolate(v)
	if err != nil {
		return nil, err
	}
	return color.NRGBA{
		R: channelByte(c.r),
		G: channelByte(c.g),
		B: channelByte(c.b),
		A: uint8(math.Round(s.alpha * 255)),
	}, nil
}

// Hex returns the color for v as "#rrggbb"
func (s *LinearColorScale) Hex(v float64) (string, error) {
	c, err := s.interpolate(v)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("#%02x%02x%02x", channelByte(c.r), channelByte(c.g), channelByte(c.b)), nil
}

func (s *LinearColorScale) interpolate(v float64) (rgb, error) {
	if math.IsNaN(v) {
		return rgb{}, palette.ErrNaN
	}
	// absorb rounding from callers stepping across the range
	tol := (s.max - s.min) * 1e-9
	switch {
	case v < s.min-tol:
		return rgb{}, palette.ErrUnderflow
	case v > s.max+tol:
		return rgb{}, palette.ErrOverflow
	}

	segments := len(s.stops) - 1
	pos := (v - s.min) / (s.max - s.min) * float64(segments)
	pos = math.Max(0, math.Min(pos, float64(segments)))

	i := int(pos)
	if i == segments {
		return s.stops[segments], nil
	}
	frac := pos - float64(i)
	a, b := s.stops[i], s.stops[i+1]
	return rgb{
		r: a.r + (b.r-a.r)*frac,
		g: a.g + (b.g-a.g)*frac,
		b: a.b + (b.b-a.b)*frac,
	}, nil
}

// Min returns the lower end of the range
func (s *LinearColorScale) Min() float64 { return s.min }

// Max returns the upper end of the range
func (s *LinearColorScale) Max() float64 { return s.max }

// SetMin sets the lower end of the range
func (s *LinearColorScale) SetMin(v float64) { s.min = v }

// SetMax sets the upper end of the range
func (s *LinearColorScale) SetMax(v float64) { s.max = v }

// Alpha returns the opacity applied by At
func (s *LinearColorScale) Alpha() float64 { return s.alpha }

// SetAlpha sets the opacity applied by At
func (s *LinearColorScale) SetAlpha(a float64) { s.alpha = a }

// Palette samples n colors evenly across the range
func (s *LinearColorScale) Palette(n int) palette.Palette {
	colors := make(colorList, n)
	for i := range colors {
		v := s.min
		if n > 1 {
			v = s.min + (s.max-s.min)*float64(i)/float64(n-1)
		}
		c, err := s.At(v)
		if err != nil {
			panic(err)
		}
		colors[i] = c
	}
	return colors
}

type colorList []color.Color

func (l colorList) Colors() []color.Color { return l }

func parseColor(name string) (rgb, error) {
	hex := strings.ToLower(strings.TrimSpace(name))
	if named, ok := namedColors[hex]; ok {
		hex = named
	}
	if len(hex) != 7 || hex[0] != '#' {
		return rgb{}, fmt.Errorf("unknown color %q", name)
	}
	n, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return rgb{}, fmt.Errorf("invalid color %q: %w", name, err)
	}
	return rgb{
		r: float64(n>>16&0xff) / 255,
		g: float64(n>>8&0xff) / 255,
		b: float64(n&0xff) / 255,
	}, nil
}

// NamedColorHex resolves a named color to "#rrggbb". Unknown names are returned as given.
func NamedColorHex(name string) string {
	if hex, ok := namedColors[strings.ToLower(name)]; ok {
		return hex
	}
	return name
}

func channelByte(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Floor(v*255.9999))))
}
