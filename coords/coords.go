/*
Package coords implements the coordinate systems of a parallel coordinates
plot and transformations between them.

There are four spaces:

	Screen   origin top-left, y grows downward, unit = pixel
	View     origin bottom-left, y grows upward, unit = pixel
	World    x in [0,N] for N visible axes, y in [0,1]
	Local    per axis, x in [0,1] centered on the axis line, y in [0,1]

Positions, offsets, lengths and bounding boxes are generic over their space,
so mixing values from different spaces is a compile-time error. Transformers
connect two spaces in both directions and compose.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package coords

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'coords'
func tracer() tracing.Trace {
	return tracing.Select("coords")
}

// Space is the type tag of a coordinate system. The interface is sealed;
// the only implementations are Screen, View, World and Local.
type Space interface {
	Name() string
	invertedY() bool
}

// Screen space: pixels, origin top-left, y grows downward.
type Screen struct{}

// View space: pixels, origin bottom-left, y grows upward.
type View struct{}

// World space: one unit per visible axis in x, [0,1] in y.
type World struct{}

// Local space: per-axis space with the axis line at x = 0.5.
type Local struct{}

func (Screen) Name() string    { return "screen" }
func (Screen) invertedY() bool { return true }
func (View) Name() string      { return "view" }
func (View) invertedY() bool   { return false }
func (World) Name() string     { return "world" }
func (World) invertedY() bool  { return false }
func (Local) Name() string     { return "local" }
func (Local) invertedY() bool  { return false }

func spaceName[S Space]() string {
	var s S
	return s.Name()
}

func yInverted[S Space]() bool {
	var s S
	return s.invertedY()
}
