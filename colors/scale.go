package colors

import (
	"fmt"
	"slices"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// Stop is one color of a gradient at parameter T.
type Stop struct {
	T     float32
	Color Color
}

// Scale maps values in [0,1] to colors. It always has stops at 0 and 1.
type Scale struct {
	stops []Stop
}

// NewConstant creates a scale of a single color.
func NewConstant(c Color) *Scale {
	return &Scale{stops: []Stop{{T: 0, Color: c}, {T: 1, Color: c}}}
}

// NewGradient creates a scale from stops. T must ascend strictly from 0
// to 1.
func NewGradient(stops []Stop) (*Scale, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 stops, have %d", ErrInvalidGradient, len(stops))
	}
	if stops[0].T != 0 || stops[len(stops)-1].T != 1 {
		return nil, fmt.Errorf("%w: stops must span [0,1]", ErrInvalidGradient)
	}
	for i := 1; i < len(stops); i++ {
		if stops[i-1].T >= stops[i].T {
			return nil, fmt.Errorf("%w: stop %d at %g does not ascend", ErrInvalidGradient, i, stops[i].T)
		}
	}
	return &Scale{stops: slices.Clone(stops)}, nil
}

// Stops returns the stops of the scale.
func (s *Scale) Stops() []Stop {
	return s.stops
}

// Sample returns the color at t. It panics if t lies outside of [0,1].
func (s *Scale) Sample(t float32) Color {
	if t < 0 || t > 1 {
		panic(fmt.Sprintf("color scale sampled at %g", t))
	}
	end := sort.Search(len(s.stops), func(i int) bool { return s.stops[i].T > t })
	start := s.stops[end-1]
	if start.T == t || end == len(s.stops) {
		return start.Color
	}
	stop := s.stops[end]
	return start.Color.Lerp(stop.Color, (t-start.T)/(stop.T-start.T))
}

// --- Named scales ----------------------------------------------------------

func hexStops(hex ...string) []Stop {
	stops := make([]Stop, len(hex))
	for i, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		stops[i] = Stop{T: float32(i) / float32(len(hex)-1), Color: Opaque(c)}
	}
	return stops
}

var namedScales = map[string][]Stop{
	"gray":    hexStops("#000000", "#ffffff"),
	"viridis": hexStops("#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"),
	"magma":   hexStops("#000004", "#51127c", "#b73779", "#fc8961", "#fcfdbf"),
	"plasma":  hexStops("#0d0887", "#7e03a8", "#cc4778", "#f89540", "#f0f921"),
}

// NamedScale returns one of the predefined scales.
func NamedScale(name string) (*Scale, error) {
	stops, ok := namedScales[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScale, name)
	}
	return &Scale{stops: stops}, nil
}

// StopDesc is a gradient stop given as a color string.
type StopDesc struct {
	T     float32 `yaml:"t" toml:"t"`
	Color string  `yaml:"color" toml:"color"`
}

// ScaleDesc describes a scale by name, by a constant color or by a
// gradient. The first field set wins.
type ScaleDesc struct {
	Name     string     `yaml:"name,omitempty" toml:"name,omitempty"`
	Constant string     `yaml:"constant,omitempty" toml:"constant,omitempty"`
	Gradient []StopDesc `yaml:"gradient,omitempty" toml:"gradient,omitempty"`
}

// Scale creates the scale described by d.
func (d ScaleDesc) Scale() (*Scale, error) {
	switch {
	case d.Name != "":
		return NamedScale(d.Name)
	case d.Constant != "":
		c, err := Parse(d.Constant)
		if err != nil {
			return nil, err
		}
		return NewConstant(c), nil
	case len(d.Gradient) > 0:
		stops := make([]Stop, len(d.Gradient))
		for i, sd := range d.Gradient {
			c, err := Parse(sd.Color)
			if err != nil {
				return nil, fmt.Errorf("gradient stop %d: %w", i, err)
			}
			stops[i] = Stop{T: sd.T, Color: c}
		}
		return NewGradient(stops)
	}
	return nil, fmt.Errorf("%w: empty scale description", ErrInvalidGradient)
}
