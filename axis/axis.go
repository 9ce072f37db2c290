/*
Package axis implements the axes of a parallel coordinates plot.

An Axis holds the datums of one attribute, its range, state and layout
geometry, and the selection curves of every label. Axes is the collection
of all axes. It owns the axes and keeps the visible ones in a doubly-linked
list ordered left to right. Axes link to their siblings and to the
collection through weak pointers.

Geometry is expressed in the local space of an axis, where the axis line
sits at x = 0.5.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package axis

import (
	"fmt"
	"slices"
	"sort"
	"weak"

	"github.com/aclements/go-moremath/vec"
	"github.com/npillmayer/parcoords"
	"github.com/npillmayer/parcoords/coords"
	"github.com/npillmayer/parcoords/selection"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'axis'
func tracer() tracing.Trace {
	return tracing.Select("axis")
}

// Layout constants, in rem unless noted.
const (
	axisLineSizeRem         = 0.05
	axisLinePaddingRem      = 0.1
	axisTopPadding          = 1.0
	localAxisHeight         = 1.0 // local units
	selectionLineSizeRem    = 0.1
	selectionLinePaddingRem = 0.15
	selectionLineMarginRem  = 1.0
	curveLineSizeRem        = 0.075
	dataLineSizeRem         = 0.1
	controlPointsRadiusRem  = 0.3
	labelPaddingRem         = 1.0
	labelMarginRem          = 1.0
	ticksPaddingRem         = 0.5
	minCurveT               = 0.1
	maxCurveT               = 0.95

	densityWindow = 0.05 // normalized units

	// AxisX is the local x of the axis line.
	AxisX float32 = 0.5
	// curveBandStart is the local x where the curves of an expanded axis end.
	curveBandStart float32 = 0.1
)

// State is the display state of an axis.
type State int8

// Axis states.
const (
	Collapsed State = iota
	Expanded
	Hidden
)

func (s State) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case Expanded:
		return "expanded"
	case Hidden:
		return "hidden"
	}
	return fmt.Sprintf("State(%d)", int8(s))
}

// Axis is one axis of the plot.
type Axis struct {
	key      string
	label    string
	minLabel string
	maxLabel string

	state State
	index int // dense index among visible axes, -1 if hidden

	datums     []float32
	normalized []float32
	density    []float32

	dataRange        [2]float32
	visibleRange     [2]float32
	visibleRangeNorm [2]float32

	ticks         []Tick // positions normalized to the visible range
	maxTickHeight float32

	curves      []*selection.Curve
	builders    []*selection.CurveBuilder
	combination selection.Combination

	worldOffset float32

	axes        weak.Pointer[Axes]
	left, right weak.Pointer[Axis]
}

func newAxis(key string, args *Args, index int, numLabels int, axes *Axes) *Axis {
	ax := &Axis{
		key:          key,
		label:        args.label,
		index:        index,
		datums:       args.datums,
		dataRange:    args.rng,
		visibleRange: args.VisibleRange(),
		combination:  axes.combination,
		axes:         weak.Make(axes),
	}
	if args.hidden {
		ax.state = Hidden
	}
	ax.normalized = make([]float32, len(ax.datums))
	for i, d := range ax.datums {
		ax.normalized[i] = parcoords.InvLerpRange(d, ax.dataRange)
	}
	ax.density = dataDensity(ax.normalized)
	ax.visibleRangeNorm = [2]float32{
		parcoords.InvLerpRange(ax.visibleRange[0], ax.dataRange),
		parcoords.InvLerpRange(ax.visibleRange[1], ax.dataRange),
	}
	ax.minLabel = FormatValue(ax.visibleRange[0])
	ax.maxLabel = FormatValue(ax.visibleRange[1])
	ax.ticks = ax.buildTicks(args)
	for _, t := range ax.ticks {
		_, h := axes.textLengthLocal(t.Label)
		ax.maxTickHeight = max(ax.maxTickHeight, h.L)
	}
	for range numLabels {
		ax.PushLabel()
	}
	return ax
}

// dataDensity returns for each datum the fraction of datums within
// ±densityWindow of it.
func dataDensity(normalized []float32) []float32 {
	sorted := slices.Clone(normalized)
	slices.Sort(sorted)
	n := float32(len(sorted))
	density := make([]float32, len(normalized))
	for i, d := range normalized {
		lo := sort.Search(len(sorted), func(j int) bool { return sorted[j] >= d-densityWindow })
		hi := sort.Search(len(sorted), func(j int) bool { return sorted[j] > d+densityWindow })
		density[i] = float32(hi-lo) / n
	}
	return density
}

func (ax *Axis) buildTicks(args *Args) []Tick {
	var ticks []Tick
	if args.hasTicks {
		for _, t := range args.ticks {
			if t.Position < ax.visibleRange[0] || t.Position > ax.visibleRange[1] {
				continue
			}
			label := t.Label
			if label == "" {
				label = FormatValue(t.Position)
			}
			ticks = append(ticks, Tick{
				Position: parcoords.InvLerpRange(t.Position, ax.visibleRange),
				Label:    label,
			})
		}
		return ticks
	}
	for _, t := range vec.Linspace(0, 1, 11) {
		v := parcoords.LerpRange(ax.visibleRange, float32(t))
		ticks = append(ticks, Tick{Position: float32(t), Label: FormatValue(v)})
	}
	return ticks
}

func (ax *Axis) String() string {
	return fmt.Sprintf("axis(%s@%g,%s)", ax.key, ax.worldOffset, ax.state)
}

// Key returns the unique key of the axis.
func (ax *Axis) Key() string { return ax.key }

// Label returns the axis label.
func (ax *Axis) Label() string { return ax.label }

// MinLabel returns the formatted lower end of the visible range.
func (ax *Axis) MinLabel() string { return ax.minLabel }

// MaxLabel returns the formatted upper end of the visible range.
func (ax *Axis) MaxLabel() string { return ax.maxLabel }

// Ticks returns the ticks, positioned relative to the visible range.
func (ax *Axis) Ticks() []Tick { return ax.ticks }

// MaxTickHeight returns the height of the highest tick label in local units.
func (ax *Axis) MaxTickHeight() float32 { return ax.maxTickHeight }

// State returns the display state.
func (ax *Axis) State() State { return ax.state }

// IsCollapsed is true for collapsed axes.
func (ax *Axis) IsCollapsed() bool { return ax.state == Collapsed }

// IsExpanded is true for expanded axes.
func (ax *Axis) IsExpanded() bool { return ax.state == Expanded }

// IsHidden is true for hidden axes.
func (ax *Axis) IsHidden() bool { return ax.state == Hidden }

// Collapse collapses an expanded axis. It panics if the axis is not
// expanded.
func (ax *Axis) Collapse() {
	if ax.state != Expanded {
		panic(fmt.Sprintf("cannot collapse %s axis %q", ax.state, ax.key))
	}
	ax.state = Collapsed
}

// Expand expands a collapsed axis. It panics if the axis is not collapsed.
func (ax *Axis) Expand() {
	if ax.state != Collapsed {
		panic(fmt.Sprintf("cannot expand %s axis %q", ax.state, ax.key))
	}
	ax.state = Expanded
}

// Index returns the dense index among the visible axes.
func (ax *Axis) Index() (int, bool) {
	return ax.index, ax.index >= 0
}

// Datums returns the datums.
func (ax *Axis) Datums() []float32 { return ax.datums }

// DatumsNormalized returns the datums normalized to the data range.
func (ax *Axis) DatumsNormalized() []float32 { return ax.normalized }

// DataDensity returns the density around each datum.
func (ax *Axis) DataDensity() []float32 { return ax.density }

// DataRange returns the min and max of the data range.
func (ax *Axis) DataRange() [2]float32 { return ax.dataRange }

// VisibleDataRange returns the visible part of the data range.
func (ax *Axis) VisibleDataRange() [2]float32 { return ax.visibleRange }

// VisibleDataRangeNormalized returns the visible range, normalized to the
// data range.
func (ax *Axis) VisibleDataRangeNormalized() [2]float32 { return ax.visibleRangeNorm }

// --- Labels and selections -------------------------------------------------

// NumLabels returns the number of labels the axis holds curves for.
func (ax *Axis) NumLabels() int {
	return len(ax.builders)
}

// PushLabel allocates a curve and a curve builder for a new label.
func (ax *Axis) PushLabel() {
	ax.curves = append(ax.curves, selection.NewCurve(ax.visibleRangeNorm))
	ax.builders = append(ax.builders, selection.NewCurveBuilder())
}

// RemoveLabel drops the curve and curve builder of label i.
func (ax *Axis) RemoveLabel(i int) {
	ax.curves = slices.Delete(ax.curves, i, i+1)
	ax.builders = slices.Delete(ax.builders, i, i+1)
}

// Curve returns the selection curve of a label.
func (ax *Axis) Curve(label int) *selection.Curve {
	return ax.curves[label]
}

// CurveBuilder returns the curve builder of a label.
func (ax *Axis) CurveBuilder(label int) *selection.CurveBuilder {
	return ax.builders[label]
}

// SetCurveBuilder replaces the curve builder of a label and rebuilds its
// curve.
func (ax *Axis) SetCurveBuilder(label int, cb *selection.CurveBuilder) {
	ax.builders[label] = cb
	ax.RebuildCurve(label)
}

// RebuildCurve builds the spline of a label from its curve builder, using
// the curve combination of the axes. Without selections the curve is reset
// to the constant 1.
func (ax *Axis) RebuildCurve(label int) {
	sp, _ := ax.builders[label].BuildCombined(ax.combination, ax.visibleRangeNorm)
	ax.curves[label].SetCurve(sp)
}

// --- Position and neighbors ------------------------------------------------

// WorldOffset returns the world x of the axis line.
func (ax *Axis) WorldOffset() float32 { return ax.worldOffset }

// SetWorldOffset moves the axis line to world x = offset.
func (ax *Axis) SetWorldOffset(offset float32) { ax.worldOffset = offset }

// SpaceTransformer maps world space to the local space of the axis.
func (ax *Axis) SpaceTransformer() coords.Transformer[coords.World, coords.Local] {
	return coords.AxisWorldToLocal(ax.worldOffset)
}

// Left returns the left neighbor or nil.
func (ax *Axis) Left() *Axis { return ax.left.Value() }

// Right returns the right neighbor or nil.
func (ax *Axis) Right() *Axis { return ax.right.Value() }

func (ax *Axis) setLeft(n *Axis)  { ax.left = weak.Make(n) }
func (ax *Axis) setRight(n *Axis) { ax.right = weak.Make(n) }

// Axes returns the collection of the axis. It panics if the collection is
// gone.
func (ax *Axis) Axes() *Axes {
	axes := ax.axes.Value()
	if axes == nil {
		panic(fmt.Sprintf("axis %q outlived its collection", ax.key))
	}
	return axes
}

// SwapLeft exchanges the axis with its left neighbor. The neighbor moves one
// unit to the right. It returns false if there is no left neighbor.
func (ax *Axis) SwapLeft() bool {
	left := ax.Left()
	if left == nil {
		return false
	}
	leftLeft, right := left.Left(), ax.Right()
	if leftLeft != nil {
		leftLeft.setRight(ax)
	}
	ax.setLeft(leftLeft)
	ax.setRight(left)
	left.worldOffset++
	left.setLeft(ax)
	left.setRight(right)
	if right != nil {
		right.setLeft(left)
	}
	axes := ax.Axes()
	if axes.first == left {
		axes.first = ax
	}
	if axes.last == ax {
		axes.last = left
	}
	ax.index, left.index = left.index, ax.index
	tracer().Debugf("swapped %s with left neighbor %s", ax.key, left.key)
	return true
}

// SwapRight exchanges the axis with its right neighbor. The neighbor moves
// one unit to the left. It returns false if there is no right neighbor.
func (ax *Axis) SwapRight() bool {
	right := ax.Right()
	if right == nil {
		return false
	}
	offset := ax.worldOffset
	right.SwapLeft()
	ax.worldOffset = offset
	right.worldOffset--
	return true
}
