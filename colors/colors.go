/*
Package colors resolves the color inputs of the plot.

Colors may be given as CSS-like strings: a named CSS color, "#rrggbb",
"rgb(R G B [A])", "xyz(X Y Z [A])", "lab(L a b [A])" or "lch(L C h [A])",
or as typed values of a color space. Conversions between the color spaces
are done with go-colorful; the CSS names come from x/image/colornames.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package colors

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/colornames"
)

// tracer writes to trace with key 'colors'
func tracer() tracing.Trace {
	return tracing.Select("colors")
}

// Errors for malformed color inputs.
var (
	ErrUnknownColorName  = errors.New("unknown color name")
	ErrMalformedColor    = errors.New("malformed color")
	ErrUnknownColorSpace = errors.New("unknown color space")
	ErrInvalidGradient   = errors.New("invalid gradient")
	ErrUnknownScale      = errors.New("unknown color scale")
)

// Space is a color space of typed color values.
type Space int8

// Color spaces. Lab and Lch use CSS units: L in [0,100], hue in degrees.
const (
	SRGB Space = iota // 8-bit sRGB values
	XYZ               // CIE XYZ, D65 white point
	Lab               // CIE L*a*b*
	Lch               // CIE LCh(ab)
)

var spaceNames = [...]string{SRGB: "srgb", XYZ: "xyz", Lab: "lab", Lch: "lch"}

func (s Space) String() string {
	if s < 0 || int(s) >= len(spaceNames) {
		return fmt.Sprintf("Space(%d)", int8(s))
	}
	return spaceNames[s]
}

// ParseSpace returns the color space with the given name.
func ParseSpace(name string) (Space, error) {
	for s, n := range spaceNames {
		if strings.EqualFold(n, name) {
			return Space(s), nil
		}
	}
	return SRGB, fmt.Errorf("%w: %q", ErrUnknownColorSpace, name)
}

// Color is a color with transparency.
type Color struct {
	colorful.Color
	Alpha float32
}

// Opaque wraps a go-colorful color with alpha 1.
func Opaque(c colorful.Color) Color {
	return Color{Color: c, Alpha: 1}
}

func (c Color) String() string {
	return fmt.Sprintf("%s/%.3g", c.Clamped().Hex(), c.Alpha)
}

// RGBA returns the clamped sRGB components and alpha, all in [0,1].
func (c Color) RGBA() [4]float32 {
	cl := c.Clamped()
	return [4]float32{float32(cl.R), float32(cl.G), float32(cl.B), c.Alpha}
}

// Values returns the components of the color in space s.
func (c Color) Values(s Space) [3]float32 {
	switch s {
	case XYZ:
		x, y, z := c.Xyz()
		return [3]float32{float32(x), float32(y), float32(z)}
	case Lab:
		l, a, b := c.Lab()
		return [3]float32{float32(l * 100), float32(a * 100), float32(b * 100)}
	case Lch:
		h, ch, l := c.Hcl()
		return [3]float32{float32(l * 100), float32(ch * 100), float32(h)}
	}
	r, g, b := c.Clamped().RGB255()
	return [3]float32{float32(r), float32(g), float32(b)}
}

// Lerp blends c towards d in L*a*b* space, alpha linearly.
func (c Color) Lerp(d Color, t float32) Color {
	return Color{
		Color: c.BlendLab(d.Color, float64(t)),
		Alpha: c.Alpha + (d.Alpha-c.Alpha)*t,
	}
}

// FromValues creates a color from components of space s.
func FromValues(s Space, v [3]float32, alpha float32) (Color, error) {
	if alpha < 0 || alpha > 1 {
		return Color{}, fmt.Errorf("%w: alpha %g outside of [0,1]", ErrMalformedColor, alpha)
	}
	var c colorful.Color
	switch s {
	case SRGB:
		c = colorful.Color{R: float64(v[0]) / 255, G: float64(v[1]) / 255, B: float64(v[2]) / 255}
	case XYZ:
		c = colorful.Xyz(float64(v[0]), float64(v[1]), float64(v[2]))
	case Lab:
		c = colorful.Lab(float64(v[0])/100, float64(v[1])/100, float64(v[2])/100)
	case Lch:
		c = colorful.Hcl(float64(v[2]), float64(v[1])/100, float64(v[0])/100)
	default:
		return Color{}, fmt.Errorf("%w: %v", ErrUnknownColorSpace, s)
	}
	return Color{Color: c, Alpha: alpha}, nil
}

// Named returns the CSS color with the given name.
func Named(name string) (Color, error) {
	rgba, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return Color{}, fmt.Errorf("%w: %q", ErrUnknownColorName, name)
	}
	c, _ := colorful.MakeColor(rgba)
	return Opaque(c), nil
}

// --- Parsing ---------------------------------------------------------------

const (
	byteRx  = `(25[0-5]|2[0-4][0-9]|[0-1]?[0-9]{1,2})`
	floatRx = `([+-]?(?:[0-9]*[.])?[0-9]+)`
)

var (
	rgbRx    = regexp.MustCompile(`^rgb\(` + byteRx + ` ` + byteRx + ` ` + byteRx + `(?: ` + floatRx + `)?\)$`)
	floatsRx = regexp.MustCompile(`^(xyz|lab|lch)\(` + floatRx + ` ` + floatRx + ` ` + floatRx + `(?: ` + floatRx + `)?\)$`)
)

// Parse resolves a CSS-like color string.
func Parse(css string) (Color, error) {
	css = strings.TrimSpace(css)
	switch {
	case strings.HasPrefix(css, "#"):
		c, err := colorful.Hex(css)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q: %v", ErrMalformedColor, css, err)
		}
		return Opaque(c), nil
	case strings.HasPrefix(css, "rgb"):
		m := rgbRx.FindStringSubmatch(css)
		if m == nil {
			return Color{}, fmt.Errorf("%w: %q", ErrMalformedColor, css)
		}
		return fromMatch(SRGB, m[1:], css)
	case strings.HasPrefix(css, "xyz"), strings.HasPrefix(css, "lab"), strings.HasPrefix(css, "lch"):
		m := floatsRx.FindStringSubmatch(css)
		if m == nil {
			return Color{}, fmt.Errorf("%w: %q", ErrMalformedColor, css)
		}
		s, err := ParseSpace(m[1])
		if err != nil {
			return Color{}, err
		}
		return fromMatch(s, m[2:], css)
	}
	return Named(css)
}

// fromMatch converts three components and an optional alpha.
func fromMatch(s Space, m []string, css string) (Color, error) {
	var v [3]float32
	for i := range v {
		f, err := strconv.ParseFloat(m[i], 32)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q: %v", ErrMalformedColor, css, err)
		}
		v[i] = float32(f)
	}
	alpha := float32(1)
	if m[3] != "" {
		a, err := strconv.ParseFloat(m[3], 32)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q: %v", ErrMalformedColor, css, err)
		}
		alpha = float32(a)
	}
	c, err := FromValues(s, v, alpha)
	if err == nil {
		tracer().Debugf("parsed color %q as %s", css, c)
	}
	return c, err
}

// Query is an unresolved color input: either a CSS string or typed values.
type Query struct {
	CSS    string
	Space  Space
	Values [3]float32
	Alpha  *float32
}

// Resolve converts the query into a color.
func (q Query) Resolve() (Color, error) {
	if q.CSS != "" {
		return Parse(q.CSS)
	}
	alpha := float32(1)
	if q.Alpha != nil {
		alpha = *q.Alpha
	}
	return FromValues(q.Space, q.Values, alpha)
}
