/*
Package spline implements piecewise cubic polynomials over an interval.

A Segment is a cubic a⋅t³ + b⋅t² + c⋅t + d in a parameter t ∈ [0,1] which is
mapped linearly onto the x-range of the control points the segment was fitted
to. After clipping, a segment covers only a part of its original x-range;
its t-range records which part of the parameterization remains.

A Spline is a sorted sequence of segments exactly tiling a range [a,b].
Splines are the weight curves of the selections on an axis.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package spline

import (
	"fmt"
	"sort"

	"github.com/npillmayer/parcoords"
	"github.com/npillmayer/parcoords/polyn"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'spline'
func tracer() tracing.Trace {
	return tracing.Select("spline")
}

// FullRange is the t-range of an unclipped segment.
var FullRange = [2]float32{0, 1}

// Segment is one piece of a spline.
type Segment struct {
	Bounds       [2]float32 // x-range covered
	TRange       [2]float32 // part of the parameterization covered, ⊆ [0,1]
	Coefficients [4]float32 // a, b, c, d of a⋅t³ + b⋅t² + c⋅t + d
}

// RemovalOp tells SplitAt which side of a segment to drop.
type RemovalOp int8

// Removal operations for SplitAt.
const (
	RemoveLeft RemovalOp = iota
	RemoveRight
)

func (s Segment) String() string {
	return fmt.Sprintf("seg[%g,%g]t[%g,%g]%v", s.Bounds[0], s.Bounds[1],
		s.TRange[0], s.TRange[1], s.Coefficients)
}

// --- Constructors ----------------------------------------------------------

func checkTRange(tRange [2]float32) {
	if tRange[0] >= tRange[1] || tRange[0] < 0 || tRange[1] > 1 {
		panic(fmt.Sprintf("invalid segment t range %v", tRange))
	}
}

// sortPoints sorts control points by x and panics on duplicate x values.
func sortPoints(points ...[2]float32) [][2]float32 {
	sort.Slice(points, func(i, j int) bool { return points[i][0] < points[j][0] })
	for i := 1; i < len(points); i++ {
		if points[i-1][0] == points[i][0] {
			panic(fmt.Sprintf("each x value must be unique, have %v", points))
		}
	}
	return points
}

// boundsOf computes the bounds of a segment fitted to [x0,x1] and clipped to
// tRange. Bounds close to 0 or 1 are snapped.
func boundsOf(x0, x1 float32, tRange [2]float32) [2]float32 {
	var bounds [2]float32
	if tRange == FullRange {
		bounds = [2]float32{x0, x1}
	} else {
		bounds = [2]float32{parcoords.Lerp(x0, x1, tRange[0]), parcoords.Lerp(x0, x1, tRange[1])}
	}
	return snap(bounds)
}

func snap(bounds [2]float32) [2]float32 {
	if bounds[0] >= 0 && bounds[0] <= parcoords.Precision {
		bounds[0] = 0
	}
	if bounds[1] >= 1-parcoords.Precision && bounds[1] <= 1 {
		bounds[1] = 1
	}
	return bounds
}

// NewConstant creates a segment of constant value over bounds.
func NewConstant(value float32, bounds [2]float32, tRange [2]float32) Segment {
	return NewLinear([2]float32{bounds[0], value}, [2]float32{bounds[1], value}, tRange)
}

// NewLinear creates the segment y(t) = (y1−y0)⋅t + y0 through p0 and p1.
func NewLinear(p0, p1 [2]float32, tRange [2]float32) Segment {
	checkTRange(tRange)
	pts := sortPoints(p0, p1)
	p0, p1 = pts[0], pts[1]
	a := p1[1] - p0[1]
	b := p0[1]
	return Segment{
		Bounds:       boundsOf(p0[0], p1[0], tRange),
		TRange:       tRange,
		Coefficients: [4]float32{0, 0, a, b},
	}
}

// NewQuadratic fits a parabola through three control points.
func NewQuadratic(p0, p1, p2 [2]float32, tRange [2]float32) Segment {
	checkTRange(tRange)
	pts := sortPoints(p0, p1, p2)
	p0, p1, p2 = pts[0], pts[1], pts[2]
	// Lagrange fit with normalized middle x:
	//   y(0) = y0, y(p1x) = y1, y(1) = y2
	p1x := (p1[0] - p0[0]) / (p2[0] - p0[0])
	p1x2 := p1x * p1x
	c := p0[1]
	b := (((p2[1] - p0[1]) * p1x2) + p0[1] - p1[1]) / (p1x2 - p1x)
	a := p2[1] - b - c
	return Segment{
		Bounds:       boundsOf(p0[0], p2[0], tRange),
		TRange:       tRange,
		Coefficients: [4]float32{0, a, b, c},
	}
}

// NewCubic fits a cubic through four control points.
//
// With x normalized to [0,1], P1x and P2x the normalized inner x-values and
// Δi = yi − y0, the coefficients are
//
//	d = y0
//	c = X / Y, with
//	    X = Δ2⋅(P1x³−P1x²) + Δ1⋅(P2x²−P2x³) + Δ3⋅(P1x²P2x³ − P1x³P2x²)
//	    Y = P1x²P2x³ − P1xP2x³ − P1x³P2x² + P1xP2x² + P1x³P2x − P1x²P2x
//	b = ((y1 − P1x³⋅y3) + (P1x³−P1x)⋅c + (P1x³−1)⋅d) / −(P1x³−P1x²)
//	a = y3 − b − c − d
func NewCubic(p0, p1, p2, p3 [2]float32, tRange [2]float32) Segment {
	checkTRange(tRange)
	pts := sortPoints(p0, p1, p2, p3)
	p0, p1, p2, p3 = pts[0], pts[1], pts[2], pts[3]
	length := p3[0] - p0[0]
	p1x := (p1[0] - p0[0]) / length
	p1x2 := p1x * p1x
	p1x3 := p1x2 * p1x
	p2x := (p2[0] - p0[0]) / length
	p2x2 := p2x * p2x
	p2x3 := p2x2 * p2x
	d1, d2, d3 := p1[1]-p0[1], p2[1]-p0[1], p3[1]-p0[1]
	x := (d2 * (p1x3 - p1x2)) + (d1 * (p2x2 - p2x3)) + (d3 * (p1x2*p2x3 - p1x3*p2x2))
	y := p1x2*p2x3 - p1x*p2x3 - p1x3*p2x2 + p1x*p2x2 + p1x3*p2x - p1x2*p2x
	d := p0[1]
	c := x / y
	b := ((p1[1] - (p1x3 * p3[1])) + ((p1x3 - p1x) * c) + ((p1x3 - 1) * d)) / (-(p1x3 - p1x2))
	a := p3[1] - b - c - d
	return Segment{
		Bounds:       boundsOf(p0[0], p3[0], tRange),
		TRange:       tRange,
		Coefficients: [4]float32{a, b, c, d},
	}
}

// NewEaseIn creates an accelerating cubic transition from p0 to p1.
// Equal y-values yield a linear segment.
func NewEaseIn(p0, p1 [2]float32, tRange [2]float32) Segment {
	if p0[1] == p1[1] {
		return NewLinear(p0, p1, tRange)
	}
	checkTRange(tRange)
	pts := sortPoints(p0, p1)
	p0, p1 = pts[0], pts[1]
	s := Segment{Bounds: boundsOf(p0[0], p1[0], tRange), TRange: tRange}
	if p0[1] < p1[1] {
		diff := p1[1] - p0[1]
		s.Coefficients = [4]float32{diff, 0, 0, p0[1]} // (y1−y0)⋅t³ + y0
	} else {
		diff := p0[1] - p1[1]
		s.Coefficients = [4]float32{-diff, 3 * diff, -3 * diff, p0[1]} // (y0−y1)⋅(1−t)³ + y1
	}
	return s
}

// NewEaseOut creates a decelerating cubic transition from p0 to p1.
// Equal y-values yield a linear segment.
func NewEaseOut(p0, p1 [2]float32, tRange [2]float32) Segment {
	if p0[1] == p1[1] {
		return NewLinear(p0, p1, tRange)
	}
	checkTRange(tRange)
	pts := sortPoints(p0, p1)
	p0, p1 = pts[0], pts[1]
	s := Segment{Bounds: boundsOf(p0[0], p1[0], tRange), TRange: tRange}
	if p0[1] < p1[1] {
		diff := p1[1] - p0[1]
		s.Coefficients = [4]float32{diff, -3 * diff, 3 * diff, p0[1]} // (y1−y0)⋅(1−(1−t)³) + y0
	} else {
		diff := p0[1] - p1[1]
		s.Coefficients = [4]float32{-diff, 0, 0, p0[1]} // (y0−y1)⋅(1−t³) + y1
	}
	return s
}

// NewEaseInOut creates a transition from p0 to p1 which accelerates in the
// first half and decelerates in the second. The result has one segment per
// half which intersects tRange, i.e. one or two segments.
func NewEaseInOut(p0, p1 [2]float32, tRange [2]float32) []Segment {
	if p0[1] == p1[1] {
		return []Segment{NewLinear(p0, p1, tRange)}
	}
	checkTRange(tRange)
	pts := sortPoints(p0, p1)
	p0, p1 = pts[0], pts[1]
	bounds := boundsOf(p0[0], p1[0], tRange)
	mid := (p0[0] + p1[0]) / 2
	var first, second [4]float32
	if p0[1] < p1[1] {
		lo, diff := p0[1], p1[1]-p0[1]
		// Δ⋅4t³ + y0 and Δ⋅(4(t−1)³+1) + y0
		first = [4]float32{4 * diff, 0, 0, lo}
		second = [4]float32{4 * diff, -12 * diff, 12 * diff, -3*diff + lo}
	} else {
		lo, diff := p1[1], p0[1]-p1[1]
		// Δ⋅(1−4t³) + y1 and −Δ⋅4(t−1)³ + y1
		first = [4]float32{-4 * diff, 0, 0, p0[1]}
		second = [4]float32{-4 * diff, 12 * diff, -12 * diff, 4*diff + lo}
	}
	var segments []Segment
	if bounds[0] >= p0[0] && bounds[0] <= mid && tRange[0] >= 0 && tRange[0] <= 0.5 {
		t := [2]float32{tRange[0], min(0.5, tRange[1])}
		b := snap([2]float32{bounds[0], parcoords.Lerp(p0[0], p1[0], t[1])})
		segments = appendNonEmpty(segments, Segment{Bounds: b, TRange: t, Coefficients: first})
	}
	if bounds[1] >= mid && bounds[1] <= p1[0] && tRange[1] >= 0.5 && tRange[1] <= 1 {
		t := [2]float32{max(0.5, tRange[0]), tRange[1]}
		b := snap([2]float32{parcoords.Lerp(p0[0], p1[0], t[0]), bounds[1]})
		segments = appendNonEmpty(segments, Segment{Bounds: b, TRange: t, Coefficients: second})
	}
	return segments
}

func appendNonEmpty(segments []Segment, s Segment) []Segment {
	if s.IsEmpty() {
		return segments
	}
	return append(segments, s)
}

// --- Queries ---------------------------------------------------------------

// IsEmpty is true if either the bounds or the t-range are degenerate.
func (s Segment) IsEmpty() bool {
	return s.Bounds[0] == s.Bounds[1] || s.TRange[0] == s.TRange[1]
}

// Covers is true if s and the closed range r share at least one point.
func (s Segment) Covers(r [2]float32) bool {
	in := func(x float32, r [2]float32) bool { return x >= r[0] && x <= r[1] }
	return in(s.Bounds[0], r) || in(s.Bounds[1], r) || in(r[0], s.Bounds) || in(r[1], s.Bounds)
}

// Polynomial returns the coefficients as a polynomial in t.
func (s Segment) Polynomial() polyn.Polynomial {
	c := s.Coefficients
	return polyn.FromCoefficients(float64(c[0]), float64(c[1]), float64(c[2]), float64(c[3]))
}

// EvaluateT evaluates the cubic at parameter t.
func (s Segment) EvaluateT(t float32) float32 {
	c := s.Coefficients
	return ((c[0]*t+c[1])*t+c[2])*t + c[3]
}

// Evaluate returns the value of the segment at position x, which should lie
// inside the bounds of s.
func (s Segment) Evaluate(x float32) float32 {
	if s.Bounds[0] == s.Bounds[1] {
		return s.EvaluateT(s.TRange[0])
	}
	u := parcoords.InvLerp(x, s.Bounds[0], s.Bounds[1])
	return s.EvaluateT(parcoords.Lerp(s.TRange[0], s.TRange[1], u))
}

// --- Splitting -------------------------------------------------------------

// origin reconstructs the unclipped x-range of the segment.
func (s Segment) origin() (start, end float32) {
	dt := s.TRange[1] - s.TRange[0]
	dx := (s.Bounds[1] - s.Bounds[0]) / dt
	start = s.Bounds[0] - s.TRange[0]*dx
	end = s.Bounds[1] + (1-s.TRange[1])*dx
	return
}

// SplitAt cuts s at position and drops the side given by op. Coefficients
// are unchanged; bounds and t-range are trimmed. SplitAt panics if position
// lies outside the bounds of s.
func (s Segment) SplitAt(position float32, op RemovalOp) Segment {
	if position < s.Bounds[0]-parcoords.Precision || position > s.Bounds[1]+parcoords.Precision {
		panic(fmt.Sprintf("invalid split position %g for segment %v", position, s))
	}
	position = parcoords.Clamp(position, s.Bounds[0], s.Bounds[1])
	var t float32
	switch {
	case position == s.Bounds[0]:
		t = s.TRange[0]
	case position == s.Bounds[1]:
		t = s.TRange[1]
	default:
		start, end := s.origin()
		t = parcoords.Clamp(parcoords.InvLerp(position, start, end), s.TRange[0], s.TRange[1])
	}
	r := s
	switch op {
	case RemoveLeft:
		r.Bounds[0], r.TRange[0] = position, t
	case RemoveRight:
		r.Bounds[1], r.TRange[1] = position, t
	}
	return r
}

// Clip restricts s to the range r. The result may be empty.
func (s Segment) Clip(r [2]float32) Segment {
	if s.Bounds[0] < r[0] {
		s = s.SplitAt(r[0], RemoveLeft)
	}
	if s.Bounds[1] > r[1] {
		s = s.SplitAt(r[1], RemoveRight)
	}
	return s
}

// Normalized re-expresses the coefficients for t-range [0,1], i.e. the
// result evaluates at u ∈ [0,1] as s does at t0 + u⋅(t1−t0).
func (s Segment) Normalized() Segment {
	p := s.Polynomial()
	q := p.Substitute(float64(s.TRange[1]-s.TRange[0]), float64(s.TRange[0]))
	c := q.Coefficients(3)
	return Segment{
		Bounds:       s.Bounds,
		TRange:       FullRange,
		Coefficients: [4]float32{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])},
	}
}
