package selection

import (
	"fmt"
	"slices"
	"sort"

	"github.com/npillmayer/parcoords/spline"
)

// Info is the coverage information of one selection in a CurveBuilder.
type Info struct {
	Range           [2]float32
	CoveredBy       []int // indices of later overlapping selections, newest first
	VisibleRanges   [][2]float32
	InvisibleRanges [][2]float32
	Rank            int // 0 if the selection covers no earlier selection
}

// SegmentInfo describes a visible or covered part of a selection.
type SegmentInfo struct {
	Rank    int
	Range   [2]float32
	Visible bool
}

// CurveBuilder holds the ordered selections of one axis for one label.
// Later selections are drawn on top of earlier ones.
type CurveBuilder struct {
	selections []*Selection
	infos      []Info
}

// NewCurveBuilder creates an empty builder.
func NewCurveBuilder() *CurveBuilder {
	return &CurveBuilder{}
}

// Len returns the number of selections.
func (cb *CurveBuilder) Len() int {
	return len(cb.selections)
}

// Selections returns the selections, oldest first.
func (cb *CurveBuilder) Selections() []*Selection {
	return cb.selections
}

// Selection returns selection i.
func (cb *CurveBuilder) Selection(i int) *Selection {
	return cb.selections[i]
}

// Info returns the coverage information of selection i.
func (cb *CurveBuilder) Info(i int) Info {
	return cb.infos[i]
}

// AddSelection appends sel on top of all other selections.
func (cb *CurveBuilder) AddSelection(sel *Selection) {
	cb.selections = append(cb.selections, sel)
	cb.rebuild()
}

// InsertSelection inserts sel at index i.
func (cb *CurveBuilder) InsertSelection(i int, sel *Selection) {
	cb.selections = slices.Insert(cb.selections, i, sel)
	cb.rebuild()
}

// RemoveSelection removes and returns selection i.
func (cb *CurveBuilder) RemoveSelection(i int) *Selection {
	sel := cb.selections[i]
	cb.selections = slices.Delete(cb.selections, i, i+1)
	cb.rebuild()
	return sel
}

// ReplaceSelection replaces selection i with sel.
func (cb *CurveBuilder) ReplaceSelection(i int, sel *Selection) {
	cb.selections[i] = sel
	cb.rebuild()
}

// Update recomputes the coverage information after selections have been
// modified in place.
func (cb *CurveBuilder) Update() {
	cb.rebuild()
}

// SetFadingType sets the easing of all fading segments of all selections.
func (cb *CurveBuilder) SetFadingType(fading FadingType) {
	for _, sel := range cb.selections {
		sel.SetFadingType(fading)
	}
}

func overlaps(a, b [2]float32) bool {
	return a[0] <= b[1] && b[0] <= a[1]
}

func (cb *CurveBuilder) rebuild() {
	cb.infos = make([]Info, len(cb.selections))
	for i, sel := range cb.selections {
		r := sel.Range()
		cb.infos[i].Range = r
		for j := range i {
			if overlaps(cb.infos[j].Range, r) {
				cb.infos[j].CoveredBy = append([]int{i}, cb.infos[j].CoveredBy...)
			}
		}
	}
	for i := len(cb.infos) - 1; i >= 0; i-- {
		info := &cb.infos[i]
		visible := [][2]float32{info.Range}
		for _, c := range info.CoveredBy {
			visible = removeVisibleRange(visible, cb.infos[c].Range)
		}
		info.VisibleRanges = visible
		info.InvisibleRanges = complementRanges(info.Range, visible)
	}
	// a selection is ranked above every earlier selection it covers
	for i := range cb.infos {
		rank := 0
		for j := range i {
			if slices.Contains(cb.infos[j].CoveredBy, i) {
				rank = max(rank, cb.infos[j].Rank+1)
			}
		}
		cb.infos[i].Rank = rank
	}
	tracer().Debugf("rebuilt selection infos for %d selections", len(cb.infos))
}

// removeVisibleRange cuts r out of the sorted, disjoint ranges in visible.
func removeVisibleRange(visible [][2]float32, r [2]float32) [][2]float32 {
	if len(visible) == 0 {
		return visible
	}
	r[0] = max(r[0], visible[0][0])
	r[1] = min(r[1], visible[len(visible)-1][1])
	if r[0] >= r[1] {
		return visible
	}
	// first range starting at or after r[0]
	start := sort.Search(len(visible), func(i int) bool { return visible[i][0] >= r[0] })
	// first range ending at or after r[1]
	end := sort.Search(len(visible), func(i int) bool { return visible[i][1] >= r[1] })
	if start > end { // r lies inside visible[end]
		v := visible[end]
		repl := appendRange(nil, [2]float32{v[0], r[0]})
		repl = appendRange(repl, [2]float32{r[1], v[1]})
		return slices.Replace(visible, end, end+1, repl...)
	}
	if start > 0 && visible[start-1][1] > r[0] {
		visible[start-1][1] = r[0]
	}
	var repl [][2]float32
	if v := visible[end]; v[0] < r[1] {
		repl = appendRange(repl, [2]float32{r[1], v[1]})
		end++
	}
	return slices.Replace(visible, start, end, repl...)
}

func appendRange(ranges [][2]float32, r [2]float32) [][2]float32 {
	if r[0] < r[1] {
		return append(ranges, r)
	}
	return ranges
}

// complementRanges returns the gaps of visible inside r.
func complementRanges(r [2]float32, visible [][2]float32) [][2]float32 {
	var gaps [][2]float32
	pos := r[0]
	for _, v := range visible {
		gaps = appendRange(gaps, [2]float32{pos, v[0]})
		pos = v[1]
	}
	return appendRange(gaps, [2]float32{pos, r[1]})
}

// SelectionContaining returns the first selection of the given rank whose
// range contains value.
func (cb *CurveBuilder) SelectionContaining(value float32, rank int) (int, bool) {
	for i, info := range cb.infos {
		if info.Rank == rank && value >= info.Range[0] && value <= info.Range[1] {
			return i, true
		}
	}
	return -1, false
}

// VisibleSelectionRanges returns the union of the visible ranges of all
// selections, clipped to [min,max], as sorted and disjoint ranges.
func (cb *CurveBuilder) VisibleSelectionRanges(rng [2]float32) [][2]float32 {
	var ranges [][2]float32
	for _, info := range cb.infos {
		for _, v := range info.VisibleRanges {
			if !overlaps(v, rng) {
				continue
			}
			ranges = append(ranges, [2]float32{max(v[0], rng[0]), min(v[1], rng[1])})
		}
	}
	slices.SortFunc(ranges, func(a, b [2]float32) int {
		switch {
		case a[0] < b[0]:
			return -1
		case a[0] > b[0]:
			return 1
		}
		return 0
	})
	var merged [][2]float32
	for _, r := range ranges {
		if n := len(merged); n > 0 && r[0] <= merged[n-1][1] {
			merged[n-1][1] = max(merged[n-1][1], r[1])
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// SegmentInfoInRange lists the visible and covered parts of all selections
// overlapping [min,max], clipped to it.
func (cb *CurveBuilder) SegmentInfoInRange(rng [2]float32) []SegmentInfo {
	var infos []SegmentInfo
	collect := func(rank int, ranges [][2]float32, visible bool) {
		for _, r := range ranges {
			if !overlaps(r, rng) {
				continue
			}
			infos = append(infos, SegmentInfo{
				Rank:    rank,
				Range:   [2]float32{max(r[0], rng[0]), min(r[1], rng[1])},
				Visible: visible,
			})
		}
	}
	for _, info := range cb.infos {
		collect(info.Rank, info.VisibleRanges, true)
		collect(info.Rank, info.InvisibleRanges, false)
	}
	return infos
}

// MaxRank returns the highest rank of all selections, or 0.
func (cb *CurveBuilder) MaxRank() int {
	rank := 0
	for _, info := range cb.infos {
		rank = max(rank, info.Rank)
	}
	return rank
}

// Build creates the weight spline over rng, later selections replacing
// earlier ones where they overlap. It returns false if there are no
// selections.
func (cb *CurveBuilder) Build(rng [2]float32) (*spline.Spline, bool) {
	return cb.build(rng, (*spline.Spline).InsertSegment)
}

// BuildMaximum creates the weight spline over rng as the pointwise maximum
// of all selections. It returns false if there are no selections.
func (cb *CurveBuilder) BuildMaximum(rng [2]float32) (*spline.Spline, bool) {
	return cb.build(rng, (*spline.Spline).InsertSegmentMax)
}

func (cb *CurveBuilder) build(rng [2]float32, insert func(*spline.Spline, spline.Segment)) (*spline.Spline, bool) {
	if len(cb.selections) == 0 {
		return nil, false
	}
	sp := spline.New(rng)
	for _, sel := range cb.selections {
		for _, seg := range sel.ToSplineSegments(rng) {
			insert(sp, seg)
		}
	}
	return sp, true
}

func (cb *CurveBuilder) String() string {
	return fmt.Sprintf("builder%v", cb.infos)
}

// Clone returns a deep copy of the builder.
func (cb *CurveBuilder) Clone() *CurveBuilder {
	c := &CurveBuilder{selections: make([]*Selection, len(cb.selections))}
	for i, sel := range cb.selections {
		c.selections[i] = sel.Clone()
	}
	c.rebuild()
	return c
}
