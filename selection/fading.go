/*
Package selection implements the selections on an axis and the weight curve
built from them.

A Selection is a sequence of segments along an axis: primary segments with
explicit positions and weights, and fading segments which ramp from a
neighboring segment to an end value with an easing curve. A CurveBuilder
holds the selections of one axis for one label, tracks how later selections
cover earlier ones, and builds the weight spline.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package selection

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'selection'
func tracer() tracing.Trace {
	return tracing.Select("selection")
}

// FadingType is the easing of a fading segment.
type FadingType int8

// Fading types.
const (
	Linear FadingType = iota
	EaseIn
	EaseOut
	EaseInOut
)

func (f FadingType) String() string {
	switch f {
	case Linear:
		return "linear"
	case EaseIn:
		return "in"
	case EaseOut:
		return "out"
	case EaseInOut:
		return "inout"
	}
	return fmt.Sprintf("FadingType(%d)", int8(f))
}

// ParseEasing converts an easing name ("linear", "in", "out", "inout") to a
// fading type. Unknown names are reported and default to Linear.
func ParseEasing(name string) FadingType {
	switch name {
	case "linear":
		return Linear
	case "in":
		return EaseIn
	case "out":
		return EaseOut
	case "inout":
		return EaseInOut
	}
	tracer().Errorf("unknown easing type '%s', using linear", name)
	return Linear
}
