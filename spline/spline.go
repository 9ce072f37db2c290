package spline

import (
	"errors"
	"fmt"
	"sort"

	"github.com/npillmayer/parcoords"
)

// ErrInvalidTiling is returned by Validate for splines whose segments do not
// tile the spline range.
var ErrInvalidTiling = errors.New("spline segments do not tile range")

// Spline is a sequence of segments exactly tiling a range.
type Spline struct {
	rng      [2]float32
	segments []Segment
}

// New creates a spline over rng with a single constant-0 segment.
// It panics if rng[0] ≥ rng[1].
func New(rng [2]float32) *Spline {
	if rng[0] >= rng[1] {
		panic(fmt.Sprintf("invalid spline range %v", rng))
	}
	return &Spline{
		rng:      rng,
		segments: []Segment{NewConstant(0, rng, FullRange)},
	}
}

// Range returns the range of the spline.
func (sp *Spline) Range() [2]float32 {
	return sp.rng
}

// Segments returns the segments of the spline. The slice must not be
// modified by clients.
func (sp *Spline) Segments() []Segment {
	return sp.segments
}

// Clone returns a deep copy of sp.
func (sp *Spline) Clone() *Spline {
	c := &Spline{rng: sp.rng, segments: make([]Segment, len(sp.segments))}
	copy(c.segments, sp.segments)
	return c
}

// Clear resets the spline to a single constant segment.
func (sp *Spline) Clear(value float32) {
	sp.segments = []Segment{NewConstant(value, sp.rng, FullRange)}
}

// SetRange grows the spline by constant-0 segments or trims its end
// segments. It panics if rng[0] ≥ rng[1].
func (sp *Spline) SetRange(rng [2]float32) {
	if rng[0] >= rng[1] {
		panic(fmt.Sprintf("invalid spline range %v", rng))
	}
	if rng[0] >= sp.rng[1] || rng[1] <= sp.rng[0] { // no overlap with old range
		sp.rng = rng
		sp.Clear(0)
		return
	}
	if rng[0] < sp.rng[0] {
		pre := NewConstant(0, [2]float32{rng[0], sp.rng[0]}, FullRange)
		sp.segments = append([]Segment{pre}, sp.segments...)
	} else if rng[0] > sp.rng[0] {
		i := sort.Search(len(sp.segments), func(i int) bool { return sp.segments[i].Bounds[1] > rng[0] })
		sp.segments = sp.segments[i:]
		sp.segments[0] = sp.segments[0].SplitAt(rng[0], RemoveLeft)
	}
	if rng[1] > sp.rng[1] {
		sp.segments = append(sp.segments, NewConstant(0, [2]float32{sp.rng[1], rng[1]}, FullRange))
	} else if rng[1] < sp.rng[1] {
		j := sort.Search(len(sp.segments), func(i int) bool { return sp.segments[i].Bounds[1] >= rng[1] })
		sp.segments = sp.segments[:j+1]
		sp.segments[j] = sp.segments[j].SplitAt(rng[1], RemoveRight)
	}
	sp.rng = rng
}

// clip restricts s to the spline range and reports if anything is left.
func (sp *Spline) clip(s Segment) (Segment, bool) {
	if !s.Covers(sp.rng) {
		return s, false
	}
	s = s.Clip(sp.rng)
	return s, !s.IsEmpty()
}

// searchBounds returns the index of the first segment starting at or after
// s.Bounds[0], and the index of the first segment ending at or after
// s.Bounds[1]. If start > end, s lies strictly inside segment end.
func (sp *Spline) searchBounds(s Segment) (start, end int) {
	start = sort.Search(len(sp.segments), func(i int) bool {
		return sp.segments[i].Bounds[0] >= s.Bounds[0]
	})
	end = sort.Search(len(sp.segments), func(i int) bool {
		return sp.segments[i].Bounds[1] >= s.Bounds[1]
	})
	return
}

// InsertSegment inserts s into the spline, replacing whatever the spline
// held on the bounds of s. Segments outside the spline range are ignored;
// segments partially outside are clipped.
func (sp *Spline) InsertSegment(s Segment) {
	s, ok := sp.clip(s)
	if !ok {
		return
	}
	start, end := sp.searchBounds(s)
	if start > end { // s lies within segment end
		enclosing := sp.segments[end]
		var repl []Segment
		repl = appendNonEmpty(repl, enclosing.SplitAt(s.Bounds[0], RemoveRight))
		repl = append(repl, s)
		repl = appendNonEmpty(repl, enclosing.SplitAt(s.Bounds[1], RemoveLeft))
		sp.replace(end, end+1, repl)
		tracer().Debugf("insert %v inside segment %d", s, end)
		return
	}
	// segments [start,end) lie inside s; start−1 and end overlap its edges
	from, to := start, end+1
	var repl []Segment
	if start > 0 {
		from = start - 1
		repl = appendNonEmpty(repl, sp.segments[start-1].SplitAt(s.Bounds[0], RemoveRight))
	}
	repl = append(repl, s)
	repl = appendNonEmpty(repl, sp.segments[end].SplitAt(s.Bounds[1], RemoveLeft))
	sp.replace(from, to, repl)
	tracer().Debugf("insert %v replacing segments [%d,%d)", s, from, to)
}

// InsertSegmentMax inserts s into the spline such that on the bounds of s
// the spline evaluates to the maximum of its previous value and s.
func (sp *Spline) InsertSegmentMax(s Segment) {
	s, ok := sp.clip(s)
	if !ok {
		return
	}
	start, end := sp.searchBounds(s)
	from := max(0, min(start, end)-1)
	to := min(len(sp.segments), end+1)
	var repl segmentCollector
	for _, seg := range sp.segments[from:to] {
		overlap := [2]float32{max(seg.Bounds[0], s.Bounds[0]), min(seg.Bounds[1], s.Bounds[1])}
		if overlap[0] >= overlap[1] {
			repl.push(seg)
			continue
		}
		for _, m := range seg.MaximumSegments(s.Clip(overlap)) {
			repl.push(m)
		}
	}
	sp.replace(from, to, repl)
}

func (sp *Spline) replace(from, to int, repl []Segment) {
	segments := make([]Segment, 0, len(sp.segments)-(to-from)+len(repl))
	segments = append(segments, sp.segments[:from]...)
	segments = append(segments, repl...)
	segments = append(segments, sp.segments[to:]...)
	sp.segments = segments
}

// Evaluate returns the value of the spline at x, or 0 if x lies outside
// the spline range.
func (sp *Spline) Evaluate(x float32) float32 {
	if x < sp.rng[0] || x > sp.rng[1] {
		return 0
	}
	i := sort.Search(len(sp.segments), func(i int) bool { return sp.segments[i].Bounds[1] >= x })
	if i == len(sp.segments) {
		i--
	}
	return sp.segments[i].Evaluate(x)
}

// Validate checks that the segments are sorted, non-empty, and tile the
// spline range without gaps or overlaps.
func (sp *Spline) Validate() error {
	if len(sp.segments) == 0 {
		return fmt.Errorf("%w: no segments", ErrInvalidTiling)
	}
	if !parcoords.Equal(sp.segments[0].Bounds[0], sp.rng[0]) {
		return fmt.Errorf("%w: first segment starts at %g, range at %g",
			ErrInvalidTiling, sp.segments[0].Bounds[0], sp.rng[0])
	}
	last := sp.segments[len(sp.segments)-1]
	if !parcoords.Equal(last.Bounds[1], sp.rng[1]) {
		return fmt.Errorf("%w: last segment ends at %g, range at %g",
			ErrInvalidTiling, last.Bounds[1], sp.rng[1])
	}
	for i, s := range sp.segments {
		if s.IsEmpty() || s.Bounds[0] > s.Bounds[1] {
			return fmt.Errorf("%w: segment %d %v is empty or inverted", ErrInvalidTiling, i, s)
		}
		if i > 0 && !parcoords.Equal(sp.segments[i-1].Bounds[1], s.Bounds[0]) {
			return fmt.Errorf("%w: gap or overlap between segments %d and %d", ErrInvalidTiling, i-1, i)
		}
	}
	return nil
}

func (sp *Spline) String() string {
	return fmt.Sprintf("spline%v%v", sp.rng, sp.segments)
}
