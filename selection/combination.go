package selection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/parcoords/spline"
)

// ErrUnknownCombination is returned by ParseCombination for unknown names.
var ErrUnknownCombination = errors.New("unknown curve combination")

// Combination decides how overlapping selections form the weight curve.
type Combination int8

// Curve combinations.
const (
	Replace Combination = iota // later selections replace earlier ones
	Maximum                    // the curve is the pointwise maximum
)

func (c Combination) String() string {
	switch c {
	case Replace:
		return "replace"
	case Maximum:
		return "maximum"
	}
	return fmt.Sprintf("Combination(%d)", int8(c))
}

// ParseCombination converts "replace" or "maximum" to a combination.
func ParseCombination(name string) (Combination, error) {
	switch strings.ToLower(name) {
	case "replace":
		return Replace, nil
	case "maximum", "max":
		return Maximum, nil
	}
	return Replace, fmt.Errorf("%w: %q", ErrUnknownCombination, name)
}

// BuildCombined creates the weight spline over rng with combination c. It
// returns false if there are no selections.
func (cb *CurveBuilder) BuildCombined(c Combination, rng [2]float32) (*spline.Spline, bool) {
	if c == Maximum {
		return cb.BuildMaximum(rng)
	}
	return cb.Build(rng)
}
