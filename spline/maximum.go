package spline

import (
	"fmt"

	"github.com/npillmayer/parcoords"
)

// segmentCollector appends segments, merging a segment into its predecessor
// when both are pieces of the same cubic. Empty segments are dropped.
type segmentCollector []Segment

func (c *segmentCollector) push(s Segment) {
	if s.IsEmpty() {
		return
	}
	if n := len(*c); n > 0 {
		last := &(*c)[n-1]
		if last.Coefficients == s.Coefficients && last.Bounds[1] == s.Bounds[0] &&
			last.TRange[1] == s.TRange[0] {
			last.Bounds[1] = s.Bounds[1]
			last.TRange[1] = s.TRange[1]
			return
		}
	}
	*c = append(*c, s)
}

// MaximumSegments combines two overlapping segments into a sequence of
// segments which evaluates to the pointwise maximum of both on their
// overlap, and to the respective segment elsewhere.
//
// The overlapping parts are normalized to a common parameter range; the
// zeros of their difference polynomial split the overlap into pieces on
// which one of the two dominates.
func (s Segment) MaximumSegments(other Segment) []Segment {
	if !s.Covers(other.Bounds) {
		panic(fmt.Sprintf("segments %v and %v do not overlap", s, other))
	}
	if s.IsEmpty() && other.IsEmpty() {
		panic("cannot combine two empty segments")
	}
	if s.IsEmpty() {
		return []Segment{other}
	} else if other.IsEmpty() {
		return []Segment{s}
	}
	var segments segmentCollector
	first, second := s, other
	if other.Bounds[0] < s.Bounds[0] {
		first, second = other, s
	}
	// uncovered left part
	segments.push(first.SplitAt(second.Bounds[0], RemoveRight))
	rest := first.SplitAt(second.Bounds[0], RemoveLeft)
	if rest.IsEmpty() {
		segments.push(second)
		return segments
	}
	first = rest
	if second.Bounds[1] < first.Bounds[1] {
		first, second = second, first
	}
	overlapFirst := first
	overlapSecond := second.SplitAt(first.Bounds[1], RemoveRight)
	right := second.SplitAt(first.Bounds[1], RemoveLeft)

	diff := overlapFirst.Normalized().Polynomial().Sub(overlapSecond.Normalized().Polynomial())
	if _, isconst := diff.IsConstant(); isconst {
		if diff.Eval(0.5) >= 0 {
			segments.push(overlapFirst)
		} else {
			segments.push(overlapSecond)
		}
	} else {
		cuts := []float64{0}
		for _, z := range diff.Zeros() {
			if z > 0 && z < 1 {
				cuts = append(cuts, z)
			}
		}
		cuts = append(cuts, 1)
		lo, hi := overlapFirst.Bounds[0], overlapFirst.Bounds[1]
		for i := 1; i < len(cuts); i++ {
			x0, x1 := cuts[i-1], cuts[i]
			if x0 == x1 {
				continue
			}
			winner := overlapSecond
			if diff.Eval((x0+x1)/2) > 0 {
				winner = overlapFirst
			}
			start := parcoords.Lerp(lo, hi, float32(x0))
			end := parcoords.Lerp(lo, hi, float32(x1))
			piece := winner.SplitAt(start, RemoveLeft).SplitAt(end, RemoveRight)
			segments.push(piece)
		}
	}
	segments.push(right)
	return segments
}
