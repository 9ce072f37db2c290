/*
Package parcoords implements the interaction and selection core of an
interactive parallel coordinates plot.

The root package holds numeric helpers shared by all sub-packages:
linear interpolation in both directions, and float32 predicates for
values which "mean" to be zero. Geometry lives in package coords,
weight curves in packages spline and selection, the axis layout in
package axis, and the pointer-driven editing in package action.
Package renderer ties everything together behind an event queue.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package parcoords

import (
	"github.com/chewxy/math32"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'parcoords'
func tracer() tracing.Trace {
	return tracing.Select("parcoords")
}

// === Numeric Helpers =======================================================

// Epsilon : float32 numbers below ε are considered 0
var Epsilon float32 = 1e-6

// Precision is the tolerance used when snapping spline bounds and comparing
// positions along an axis.
const Precision float32 = 1e-5

// Is0 is a predicate: is n = 0 ?
func Is0(n float32) bool {
	return math32.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float32) bool {
	return math32.Abs(1-n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float32) float32 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Equal compares two float32 values within Precision.
func Equal(a, b float32) bool {
	return math32.Abs(a-b) <= Precision
}

// IsFinite is a predicate: is n neither NaN nor ±Inf ?
func IsFinite(n float32) bool {
	return !math32.IsNaN(n) && !math32.IsInf(n, 0)
}

// Clamp restricts n to [lo, hi].
func Clamp(n, lo, hi float32) float32 {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
