package selection

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/npillmayer/parcoords"
	"github.com/npillmayer/parcoords/spline"
)

// Segment is one of Primary, FadingLeft or FadingRight.
type Segment interface {
	isSegment()
}

// Primary is a segment with explicit positions and weights.
type Primary struct {
	Range  [2]float32 // positions, Range[0] ≤ Range[1]
	Values [2]float32 // weights in [0,1]
}

// FadingLeft precedes a primary segment. It starts at EndPos and ends where
// the next segment starts.
type FadingLeft struct {
	EndPos   float32
	EndValue float32
	Fading   FadingType
}

// FadingRight follows a primary segment. It starts where the previous
// segment ends and ends at EndPos.
type FadingRight struct {
	EndPos   float32
	EndValue float32
	Fading   FadingType
}

func (Primary) isSegment()     {}
func (FadingLeft) isSegment()  {}
func (FadingRight) isSegment() {}

// Selection is a non-empty sequence of segments covering a closed interval
// on an axis.
type Selection struct {
	segments []Segment
}

// New creates a selection with a single primary segment from start to end,
// each given as [position, weight]. It panics if start lies after end or if
// a weight is outside of [0,1].
func New(start, end [2]float32) *Selection {
	if start[0] > end[0] {
		panic(fmt.Sprintf("selection start %g lies after end %g", start[0], end[0]))
	}
	for _, v := range []float32{start[1], end[1]} {
		if v < 0 || v > 1 {
			panic(fmt.Sprintf("selection weight %g outside of [0,1]", v))
		}
	}
	return &Selection{segments: []Segment{
		Primary{Range: [2]float32{start[0], end[0]}, Values: [2]float32{start[1], end[1]}},
	}}
}

// Clone returns a copy of sel.
func (sel *Selection) Clone() *Selection {
	c := &Selection{segments: make([]Segment, len(sel.segments))}
	copy(c.segments, sel.segments)
	return c
}

func (sel *Selection) String() string {
	return fmt.Sprintf("selection%v", sel.segments)
}

// AddFadingLeft prepends a fading segment starting at pos with weight value.
// It panics if pos lies after the current start of the selection.
func (sel *Selection) AddFadingLeft(pos, value float32, fading FadingType) {
	if pos > sel.LowerBound(0) {
		panic(fmt.Sprintf("fading start %g lies after selection start %g", pos, sel.LowerBound(0)))
	}
	sel.segments = append([]Segment{FadingLeft{EndPos: pos, EndValue: value, Fading: fading}},
		sel.segments...)
}

// AddFadingRight appends a fading segment ending at pos with weight value.
// It panics if pos lies before the current end of the selection.
func (sel *Selection) AddFadingRight(pos, value float32, fading FadingType) {
	n := len(sel.segments) - 1
	if pos < sel.UpperBound(n) {
		panic(fmt.Sprintf("fading end %g lies before selection end %g", pos, sel.UpperBound(n)))
	}
	sel.segments = append(sel.segments, FadingRight{EndPos: pos, EndValue: value, Fading: fading})
}

// NumSegments returns the number of segments.
func (sel *Selection) NumSegments() int {
	return len(sel.segments)
}

// Segment returns segment i.
func (sel *Selection) Segment(i int) Segment {
	return sel.segments[i]
}

// --- Accessors -------------------------------------------------------------

// LowerBound returns the start position of segment i.
func (sel *Selection) LowerBound(i int) float32 {
	switch s := sel.segments[i].(type) {
	case Primary:
		return s.Range[0]
	case FadingLeft:
		return s.EndPos
	case FadingRight:
		return sel.UpperBound(i - 1)
	}
	panic("unknown selection segment")
}

// UpperBound returns the end position of segment i.
func (sel *Selection) UpperBound(i int) float32 {
	switch s := sel.segments[i].(type) {
	case Primary:
		return s.Range[1]
	case FadingLeft:
		return sel.LowerBound(i + 1)
	case FadingRight:
		return s.EndPos
	}
	panic("unknown selection segment")
}

// LowerValue returns the weight at the start of segment i.
func (sel *Selection) LowerValue(i int) float32 {
	switch s := sel.segments[i].(type) {
	case Primary:
		return s.Values[0]
	case FadingLeft:
		return s.EndValue
	case FadingRight:
		return sel.UpperValue(i - 1)
	}
	panic("unknown selection segment")
}

// UpperValue returns the weight at the end of segment i.
func (sel *Selection) UpperValue(i int) float32 {
	switch s := sel.segments[i].(type) {
	case Primary:
		return s.Values[1]
	case FadingLeft:
		return sel.LowerValue(i + 1)
	case FadingRight:
		return s.EndValue
	}
	panic("unknown selection segment")
}

// FadingType returns the easing of segment i. Primary segments are linear.
func (sel *Selection) FadingType(i int) FadingType {
	switch s := sel.segments[i].(type) {
	case FadingLeft:
		return s.Fading
	case FadingRight:
		return s.Fading
	}
	return Linear
}

// SetLowerBound moves the start of segment i, clamped between the start of
// segment i−1 and the end of segment i.
func (sel *Selection) SetLowerBound(i int, bound float32) {
	lo := math32.Inf(-1)
	if i > 0 {
		lo = sel.LowerBound(i - 1)
	}
	bound = parcoords.Clamp(bound, lo, sel.UpperBound(i))
	switch s := sel.segments[i].(type) {
	case Primary:
		s.Range[0] = bound
		sel.segments[i] = s
	case FadingLeft:
		s.EndPos = bound
		sel.segments[i] = s
	case FadingRight:
		sel.writeUpperBound(i-1, bound)
	}
}

// SetUpperBound moves the end of segment i, clamped between the start of
// segment i and the end of segment i+1.
func (sel *Selection) SetUpperBound(i int, bound float32) {
	hi := math32.Inf(1)
	if i < len(sel.segments)-1 {
		hi = sel.UpperBound(i + 1)
	}
	bound = parcoords.Clamp(bound, sel.LowerBound(i), hi)
	sel.writeUpperBound(i, bound)
}

func (sel *Selection) writeUpperBound(i int, bound float32) {
	switch s := sel.segments[i].(type) {
	case Primary:
		s.Range[1] = bound
		sel.segments[i] = s
	case FadingLeft:
		sel.SetLowerBound(i+1, bound)
	case FadingRight:
		s.EndPos = bound
		sel.segments[i] = s
	}
}

// SetFadingType sets the easing of all fading segments.
func (sel *Selection) SetFadingType(fading FadingType) {
	for i, seg := range sel.segments {
		switch s := seg.(type) {
		case FadingLeft:
			s.Fading = fading
			sel.segments[i] = s
		case FadingRight:
			s.Fading = fading
			sel.segments[i] = s
		}
	}
}

// Offset shifts every position of the selection by offset.
func (sel *Selection) Offset(offset float32) {
	for i, seg := range sel.segments {
		switch s := seg.(type) {
		case Primary:
			s.Range[0] += offset
			s.Range[1] += offset
			sel.segments[i] = s
		case FadingLeft:
			s.EndPos += offset
			sel.segments[i] = s
		case FadingRight:
			s.EndPos += offset
			sel.segments[i] = s
		}
	}
}

// Range returns the interval covered by the selection.
func (sel *Selection) Range() [2]float32 {
	return [2]float32{sel.LowerBound(0), sel.UpperBound(len(sel.segments) - 1)}
}

// IsPoint is true if the selection covers a single position only.
func (sel *Selection) IsPoint() bool {
	r := sel.Range()
	return r[0] == r[1]
}

// SegmentContaining returns the index of the first segment containing value.
func (sel *Selection) SegmentContaining(value float32) (int, bool) {
	for i := range sel.segments {
		if value >= sel.LowerBound(i) && value <= sel.UpperBound(i) {
			return i, true
		}
	}
	return -1, false
}

// ToSplineSegments converts the selection into spline segments clipped to
// [min,max]. Segments outside of [min,max] and point-like segments are
// skipped.
func (sel *Selection) ToSplineSegments(rng [2]float32) []spline.Segment {
	var segments []spline.Segment
	for i := range sel.segments {
		l, u := sel.LowerBound(i), sel.UpperBound(i)
		if u < rng[0] || l > rng[1] || l == u {
			continue
		}
		tRange := spline.FullRange
		if l < rng[0] {
			tRange[0] = parcoords.InvLerp(rng[0], l, u)
		}
		if u > rng[1] {
			tRange[1] = parcoords.InvLerp(rng[1], l, u)
		}
		if tRange[0] >= tRange[1] {
			continue
		}
		p0 := [2]float32{l, sel.LowerValue(i)}
		p1 := [2]float32{u, sel.UpperValue(i)}
		switch sel.FadingType(i) {
		case Linear:
			segments = append(segments, spline.NewLinear(p0, p1, tRange))
		case EaseIn:
			segments = append(segments, spline.NewEaseIn(p0, p1, tRange))
		case EaseOut:
			segments = append(segments, spline.NewEaseOut(p0, p1, tRange))
		case EaseInOut:
			segments = append(segments, spline.NewEaseInOut(p0, p1, tRange)...)
		}
	}
	return segments
}
