package axis

import (
	"errors"
	"math"
	"runtime"
	"testing"

	"github.com/npillmayer/parcoords/coords"
	"github.com/npillmayer/parcoords/selection"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-5

func mustPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic, got none")
		}
	}()
	f()
}

func remLength(rem float32) coords.Length[coords.Screen] {
	return coords.Len[coords.Screen](rem * 16)
}

func textLength(text string) (w, h coords.Length[coords.Screen]) {
	return coords.Len[coords.Screen](float32(len(text)) * 8), coords.Len[coords.Screen](16)
}

func newTestAxes() *Axes {
	box := coords.NewAabb(coords.Pos[coords.View](0, 0), coords.Pos[coords.View](800, 600))
	return NewAxes(box, remLength, textLength)
}

func abcAxes() *Axes {
	axes := newTestAxes()
	axes.ConstructAxis("a", NewArgs("A", []float32{0, 1, 2, 3}))
	axes.ConstructAxis("b", NewArgs("B", []float32{10, 20, 30, 40}))
	axes.ConstructAxis("c", NewArgs("C", []float32{5, 5, 5, 6}))
	return axes
}

func offsets(axes *Axes) []float32 {
	var off []float32
	for ax := range axes.VisibleAxes() {
		off = append(off, ax.WorldOffset())
	}
	return off
}

func TestArgs(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	nan := float32(math.NaN())
	args := NewArgs("x", []float32{3, nan, 1, 2})
	assert.Equal(t, 3, args.NumDatums())
	assert.Equal(t, [2]float32{1, 3}, args.Range())
	assert.NoError(t, args.Validate())
	assert.Equal(t, [2]float32{4.5, 5.5}, NewArgs("x", []float32{5, 5}).Range())
	assert.Equal(t, [2]float32{0, 1}, NewArgs("x", nil).Range())

	err := NewArgs("x", []float32{nan}).Validate()
	assert.True(t, errors.Is(err, ErrInvalidArgs))
	err = NewArgs("x", []float32{1, 3}).WithRange(2, 4).Validate()
	assert.True(t, errors.Is(err, ErrInvalidArgs))
	err = NewArgs("x", []float32{1, 3}).WithRange(4, 0).Validate()
	assert.True(t, errors.Is(err, ErrInvalidArgs))
	err = NewArgs("x", []float32{1, 3}).WithVisibleRange(0, 2).Validate()
	assert.True(t, errors.Is(err, ErrInvalidArgs))

	args = NewArgs("x", []float32{1, 3}).WithVisibleRange(1.5, 2.5).WithRange(0, 4)
	assert.NoError(t, args.Validate())
	assert.Equal(t, [2]float32{0, 4}, args.Range())
	assert.Equal(t, [2]float32{1.5, 2.5}, args.VisibleRange())
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "0", FormatValue(0))
	assert.Equal(t, "1.5", FormatValue(1.5))
	assert.Equal(t, "1,234.568", FormatValue(1234.5678))
	assert.Equal(t, "-2", FormatValue(-2))
}

func TestAxisCreation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := newTestAxes()
	a := axes.ConstructAxis("a", NewArgs("A", []float32{0, 1, 2, 3}))
	b := axes.ConstructAxis("b", NewArgs("B", []float32{10, 20, 30, 40}))
	assert.Equal(t, []string{"a", "b"}, axes.Order())
	assert.InDelta(t, 0.5, a.WorldOffset(), delta)
	assert.InDelta(t, 1.5, b.WorldOffset(), delta)
	assert.Equal(t, float32(2), axes.WorldWidth())
	assert.Equal(t, [2]float32{0, 1}, a.VisibleDataRangeNormalized())
	assert.Equal(t, 4, axes.NumDatums())
	assert.Same(t, axes, a.Axes())
	assert.Same(t, b, a.Right())
	assert.Same(t, a, b.Left())
	assert.Nil(t, a.Left())
	i, ok := b.Index()
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	assert.InDeltaSlice(t, []float32{0, 1.0 / 3, 2.0 / 3, 1}, a.DatumsNormalized(), delta)
	assert.Equal(t, []float32{0.25, 0.25, 0.25, 0.25}, a.DataDensity())
	assert.Equal(t, "0", a.MinLabel())
	assert.Equal(t, "3", a.MaxLabel())

	mustPanic(t, func() { axes.ConstructAxis("a", NewArgs("A", []float32{0, 1, 2, 3})) })
	mustPanic(t, func() { axes.ConstructAxis("d", NewArgs("D", []float32{0, 1})) })
	mustPanic(t, func() { axes.ConstructAxis("d", NewArgs("D", []float32{0, 1, 2, 3}).WithRange(1, 2)) })
}

func TestDataDensity(t *testing.T) {
	density := dataDensity([]float32{0, 0.02, 0.5, 0.04, 1})
	assert.InDeltaSlice(t, []float32{0.6, 0.6, 0.2, 0.6, 0.2}, density, delta)
}

func TestTicks(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := newTestAxes()
	a := axes.ConstructAxis("a", NewArgs("A", []float32{0, 1, 2, 3}))
	require.Len(t, a.Ticks(), 11)
	assert.Equal(t, "0", a.Ticks()[0].Label)
	assert.Equal(t, "1.5", a.Ticks()[5].Label)
	assert.InDelta(t, 1, a.Ticks()[10].Position, delta)
	assert.Greater(t, a.MaxTickHeight(), float32(0))

	b := axes.ConstructAxis("b", NewArgs("B", []float32{0, 1, 2, 3}).WithTicks([]Tick{
		{Position: 1}, {Position: 2, Label: "two"}, {Position: 5, Label: "out"},
	}))
	require.Len(t, b.Ticks(), 2)
	assert.Equal(t, "1", b.Ticks()[0].Label)
	assert.Equal(t, "two", b.Ticks()[1].Label)
	assert.InDelta(t, 2.0/3, b.Ticks()[1].Position, delta)
}

func TestHiddenAxis(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := abcAxes()
	h := axes.ConstructAxis("h", NewArgs("H", []float32{1, 2, 3, 4}).WithHidden(true))
	assert.True(t, h.IsHidden())
	_, ok := h.Index()
	assert.False(t, ok)
	assert.Equal(t, 4, axes.Len())
	assert.Equal(t, 3, axes.NumVisibleAxes())
	assert.Equal(t, []string{"a", "b", "c"}, axes.Order())
	axes.RemoveAxis("h")
	assert.Equal(t, 3, axes.Len())
	mustPanic(t, func() { axes.SetOrder([]string{"a", "b", "c", "h"}) })
}

func TestRemoveAxis(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := abcAxes()
	axes.RemoveAxis("b")
	assert.Equal(t, []string{"a", "c"}, axes.Order())
	assert.Equal(t, []float32{0.5, 1.5}, offsets(axes))
	assert.Equal(t, float32(2), axes.WorldWidth())
	c, _ := axes.Axis("c")
	i, _ := c.Index()
	assert.Equal(t, 1, i)
	axes.RemoveAxis("a")
	assert.Same(t, c, axes.First())
	assert.Same(t, c, axes.Last())
	assert.Equal(t, []float32{0.5}, offsets(axes))
	axes.RemoveAxis("c")
	assert.Equal(t, 0, axes.NumDatums())
	assert.Empty(t, axes.Order())
	mustPanic(t, func() { axes.RemoveAxis("c") })
}

func TestSetOrder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := abcAxes()
	axes.SetOrder([]string{"c", "a", "b"})
	assert.Equal(t, []string{"c", "a", "b"}, axes.Order())
	assert.Equal(t, []float32{0.5, 1.5, 2.5}, offsets(axes))
	var backward []string
	for ax := range axes.VisibleAxesBackward() {
		backward = append(backward, ax.Key())
	}
	assert.Equal(t, []string{"b", "a", "c"}, backward)
	mustPanic(t, func() { axes.SetOrder([]string{"c", "a"}) })
	mustPanic(t, func() { axes.SetOrder([]string{"c", "a", "x"}) })
}

func TestSwap(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := abcAxes()
	a, _ := axes.Axis("a")
	b, _ := axes.Axis("b")
	c, _ := axes.Axis("c")
	assert.True(t, a.SwapRight())
	assert.Equal(t, []string{"b", "a", "c"}, axes.Order())
	assert.InDelta(t, 0.5, b.WorldOffset(), delta)
	assert.InDelta(t, 0.5, a.WorldOffset(), delta) // the dragged axis keeps its offset
	assert.Same(t, b, axes.First())
	assert.True(t, c.SwapLeft())
	assert.Equal(t, []string{"b", "c", "a"}, axes.Order())
	assert.InDelta(t, 1.5, a.WorldOffset(), delta)
	assert.Same(t, a, axes.Last())
	assert.False(t, b.SwapLeft())
	assert.False(t, a.SwapRight())
	i, _ := a.Index()
	assert.Equal(t, 2, i)
}

func TestStateChanges(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := abcAxes()
	defer runtime.KeepAlive(axes)
	a, _ := axes.Axis("a")
	mustPanic(t, a.Collapse)
	a.Expand()
	assert.True(t, a.IsExpanded())
	mustPanic(t, a.Expand)
	bb := a.BoundingBox(0, false)
	assert.Equal(t, coords.Pos[coords.Local](0, 0), bb.Start())
	assert.Equal(t, coords.Pos[coords.Local](1, 1), bb.End())
	a.Collapse()
	bb = a.BoundingBox(0, false)
	assert.GreaterOrEqual(t, bb.Start().X, float32(0.1))
	assert.LessOrEqual(t, bb.End().X, float32(0.9))
	assert.Less(t, bb.Start().X, AxisX)
	assert.Greater(t, bb.End().X, AxisX)
}

func TestGeometry(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := abcAxes()
	defer runtime.KeepAlive(axes)
	a, _ := axes.Axis("a")
	start, end := a.AxisLineRange()
	assert.Equal(t, AxisX, start.X)
	assert.Less(t, start.Y, end.Y)
	assert.Less(t, a.MinLabelPosition().Y, start.Y)
	assert.Greater(t, a.MaxLabelPosition().Y, end.Y)
	assert.Greater(t, a.LabelPosition().Y, a.MaxLabelPosition().Y)
	assert.InDelta(t, 0.3, a.AxisValueAt(a.PositionOfValue(0.3)), delta)
	assert.InDelta(t, end.Y-start.Y, a.AxisValueLength(), delta)

	lb := a.LabelBoundingBox()
	assert.True(t, lb.ContainsPoint(a.LabelPosition()))
	line := a.AxisLineBoundingBox()
	assert.True(t, line.ContainsPoint(a.PositionOfValue(0.5)))

	ts, te := a.TicksRange(false)
	assert.Less(t, ts.X, AxisX)
	assert.InDelta(t, te.Y-ts.Y, end.Y-start.Y, delta)
	a.Expand()
	ts, _ = a.TicksRange(true)
	assert.Less(t, ts.X, curveBandStart)
	assert.InDelta(t, 0, a.CurveOffsetAtCurveValue(-minCurveT/(maxCurveT-minCurveT)).X, delta)
	assert.Less(t, a.CurveOffsetAtCurveValue(1).X, float32(0))

	assert.Equal(t, float32(0), a.SelectionOffsetAtRank(0).X)
	r1 := a.SelectionOffsetAtRank(1).X
	assert.InDelta(t, 2*r1, a.SelectionOffsetAtRank(2).X, delta)
}

func TestSelectionRanks(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := abcAxes()
	defer runtime.KeepAlive(axes)
	axes.PushLabel()
	a, _ := axes.Axis("a")
	cb := a.CurveBuilder(0)
	cb.AddSelection(selection.New([2]float32{0.1, 1}, [2]float32{0.9, 1}))
	cb.AddSelection(selection.New([2]float32{0.3, 1}, [2]float32{0.6, 1}))
	rank, ok := a.SelectionRankAtPosition(coords.Pos[coords.Local](AxisX, 0.5), 0)
	assert.True(t, ok)
	assert.Equal(t, 0, rank)
	p := coords.Pos[coords.Local](AxisX+a.SelectionOffsetAtRank(1).X, 0.5)
	rank, ok = a.SelectionRankAtPosition(p, 0)
	assert.True(t, ok)
	assert.Equal(t, 1, rank)
	collapsed := a.SelectionsBoundingBox(0)
	a.Expand()
	expanded := a.SelectionsBoundingBox(0)
	assert.Greater(t, expanded.End().X, collapsed.End().X)
}

func TestLabels(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := abcAxes()
	axes.PushLabel()
	axes.PushLabel()
	a, _ := axes.Axis("a")
	assert.Equal(t, 2, a.NumLabels())
	assert.InDelta(t, 1, a.Curve(1).Evaluate(0.5), delta)
	cb := selection.NewCurveBuilder()
	cb.AddSelection(selection.New([2]float32{0.2, 1}, [2]float32{0.7, 1}))
	a.SetCurveBuilder(1, cb)
	assert.InDelta(t, 1, a.Curve(1).Evaluate(0.5), delta)
	assert.InDelta(t, 0, a.Curve(1).Evaluate(0.1), delta)
	axes.RemoveLabel(0)
	assert.Equal(t, 1, a.NumLabels())
	assert.Same(t, cb, a.CurveBuilder(0))
	d := axes.ConstructAxis("d", NewArgs("D", []float32{1, 2, 3, 4}))
	assert.Equal(t, 1, d.NumLabels())
	mustPanic(t, func() { axes.RemoveLabel(3) })
}

func TestCurveCombination(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := abcAxes()
	defer runtime.KeepAlive(axes)
	axes.PushLabel()
	a, _ := axes.Axis("a")
	cb := selection.NewCurveBuilder()
	cb.AddSelection(selection.New([2]float32{0.1, 1}, [2]float32{0.9, 1}))
	cb.AddSelection(selection.New([2]float32{0.3, 0.5}, [2]float32{0.6, 0.5}))
	a.SetCurveBuilder(0, cb)
	assert.Equal(t, selection.Replace, axes.CurveCombination())
	assert.InDelta(t, 0.5, a.Curve(0).Evaluate(0.4), delta)
	a.Curve(0).ChangedCurve()

	axes.SetCurveCombination(selection.Maximum)
	assert.Equal(t, selection.Maximum, axes.CurveCombination())
	_, changed := a.Curve(0).ChangedCurve()
	assert.True(t, changed)
	assert.InDelta(t, 1, a.Curve(0).Evaluate(0.4), delta)
	d := axes.ConstructAxis("d", NewArgs("D", []float32{1, 2, 3, 4}))
	d.SetCurveBuilder(0, cb.Clone())
	assert.InDelta(t, 1, d.Curve(0).Evaluate(0.4), delta)
}

func screenPos(ax *Axis, p coords.Position[coords.Local]) coords.Position[coords.Screen] {
	w := ax.SpaceTransformer().Inverse().Position(p)
	return ax.Axes().ScreenToWorld().Inverse().Position(w)
}

func TestElementAtPosition(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := abcAxes()
	axes.PushLabel()
	b, _ := axes.Axis("b")

	lb := b.LabelBoundingBox()
	center := lb.Start().Lerp(lb.End(), 0.5)
	el, ok := axes.ElementAtPosition(screenPos(b, center), 0, true)
	require.True(t, ok)
	assert.Equal(t, LabelElement, el.Kind)
	assert.Same(t, b, el.Axis)

	onLine := screenPos(b, b.PositionOfValue(0.5))
	el, ok = axes.ElementAtPosition(onLine, 0, true)
	require.True(t, ok)
	assert.Equal(t, AxisLineElement, el.Kind)

	b.CurveBuilder(0).AddSelection(selection.New([2]float32{0.2, 1}, [2]float32{0.7, 1}))
	el, ok = axes.ElementAtPosition(onLine, 0, true)
	require.True(t, ok)
	assert.Equal(t, BrushElement, el.Kind)
	assert.Equal(t, 0, el.Selection)
	el, ok = axes.ElementAtPosition(onLine, 0, false)
	require.True(t, ok)
	assert.Equal(t, AxisLineElement, el.Kind)

	between := screenPos(b, coords.Pos[coords.Local](1, 0.5))
	_, ok = axes.ElementAtPosition(between, 0, true)
	assert.False(t, ok)
	_, ok = axes.ElementAtPosition(coords.Pos[coords.Screen](-50, 300), 0, true)
	assert.False(t, ok)
}

func TestViewport(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := newTestAxes()
	start, size := axes.Viewport(600, 2)
	assert.Equal(t, [2]float32{0, 0}, start)
	assert.Equal(t, [2]float32{1600, 1200}, size)
	axes.SetViewBoundingBox(coords.NewAabb(coords.Pos[coords.View](10, 20), coords.Pos[coords.View](410, 320)))
	start, size = axes.Viewport(600, 1.5)
	assert.Equal(t, [2]float32{15, 420}, start)
	assert.Equal(t, [2]float32{600, 450}, size)
}
