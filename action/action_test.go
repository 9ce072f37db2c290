package action

import (
	"errors"
	"runtime"
	"testing"

	"github.com/npillmayer/parcoords/axis"
	"github.com/npillmayer/parcoords/coords"
	"github.com/npillmayer/parcoords/event"
	"github.com/npillmayer/parcoords/selection"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-4

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

func testAxes() *axis.Axes {
	box := coords.NewAabb(coords.Pos[coords.View](0, 0), coords.Pos[coords.View](800, 600))
	axes := axis.NewAxes(box, remLength, textLength)
	axes.ConstructAxis("a", axis.NewArgs("Alpha", []float32{0, 1, 2, 3}))
	axes.ConstructAxis("b", axis.NewArgs("Beta", []float32{10, 20, 30, 40}))
	axes.ConstructAxis("c", axis.NewArgs("Gamma", []float32{5, 6, 7, 8}))
	axes.PushLabel()
	return axes
}

var fullCtx = Context{Label: 0, HasLabel: true, Easing: selection.Linear, Mode: Full}

func screenOf(ax *axis.Axis, p coords.Position[coords.Local]) coords.Position[coords.Screen] {
	w := ax.SpaceTransformer().Inverse().Position(p)
	return ax.Axes().ScreenToWorld().Inverse().Position(w)
}

func labelCenter(ax *axis.Axis) coords.Position[coords.Screen] {
	bb := ax.LabelBoundingBox()
	return screenOf(ax, bb.Start().Lerp(bb.End(), 0.5))
}

func valuePos(ax *axis.Axis, v float32) coords.Position[coords.Screen] {
	return screenOf(ax, ax.PositionOfValue(v))
}

func TestInteractionMode(t *testing.T) {
	m, err := ParseInteractionMode("Restricted-Compatibility")
	assert.NoError(t, err)
	assert.Equal(t, RestrictedCompatibility, m)
	_, err = ParseInteractionMode("bogus")
	assert.True(t, errors.Is(err, ErrUnknownMode))
	assert.False(t, Disabled.CanStartActions())
	assert.False(t, Restricted.CanReorderAxes())
	assert.True(t, Compatibility.CanReorderAxes())
	assert.False(t, Compatibility.CanToggleAxisState())
	assert.True(t, Full.CanToggleAxisState())
	assert.True(t, RestrictedCompatibility.CanEditSelections())
	assert.Equal(t, "full", Full.String())
}

func TestReorderByDrag(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := testAxes()
	defer runtime.KeepAlive(axes)
	a, _ := axes.Axis("a")
	b, _ := axes.Axis("b")
	c, _ := axes.Axis("c")

	start := labelCenter(a)
	act, ok := Start(axes, Pointer{Position: start}, fullCtx)
	require.True(t, ok)
	assert.Equal(t, MoveAxis, act.Kind())
	assert.Same(t, a, act.Axis())

	target := axes.ScreenToWorld().Inverse().Position(coords.Pos[coords.World](1.6, 0.5))
	evt := act.Update(Pointer{Position: target, Movement: target.Sub(start)})
	assert.Equal(t, event.AxisPositionChange|event.AxisOrderChange, evt)
	assert.Equal(t, []string{"b", "a", "c"}, axes.Order())
	assert.InDelta(t, 1.6, a.WorldOffset(), delta)

	further := axes.ScreenToWorld().Inverse().Position(coords.Pos[coords.World](1.65, 0.5))
	evt = act.Update(Pointer{Position: further, Movement: further.Sub(target)})
	assert.Equal(t, event.AxisPositionChange, evt)

	evt = act.Finish()
	assert.Equal(t, event.AxisPositionChange, evt)
	assert.InDelta(t, 0.5, b.WorldOffset(), delta)
	assert.InDelta(t, 1.5, a.WorldOffset(), delta)
	assert.InDelta(t, 2.5, c.WorldOffset(), delta)
	assert.True(t, a.IsCollapsed())
	mustPanic(t, func() { act.Finish() })
	mustPanic(t, func() { act.Update(Pointer{Position: start}) })
}

func TestDragClamped(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := testAxes()
	defer runtime.KeepAlive(axes)
	c, _ := axes.Axis("c")
	act := NewMoveAxis(c, Pointer{Position: labelCenter(c)}, fullCtx)
	far := axes.ScreenToWorld().Inverse().Position(coords.Pos[coords.World](10, 0.5))
	act.Update(Pointer{Position: far})
	assert.InDelta(t, 3, c.WorldOffset(), delta)
	act.Finish()
	assert.InDelta(t, 2.5, c.WorldOffset(), delta)
}

func TestCreateSelection(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := testAxes()
	defer runtime.KeepAlive(axes)
	a, _ := axes.Axis("a")

	p0 := valuePos(a, 0.2)
	act, ok := Start(axes, Pointer{Position: p0}, fullCtx)
	require.True(t, ok)
	assert.Equal(t, CreateSelection, act.Kind())
	p1 := valuePos(a, 0.7)
	evt := act.Update(Pointer{Position: p1, Movement: p1.Sub(p0)})
	assert.Equal(t, event.SelectionsChange, evt)

	cb := a.CurveBuilder(0)
	require.Equal(t, 1, cb.Len())
	require.Equal(t, 1, cb.Selection(0).NumSegments())
	prim, isPrimary := cb.Selection(0).Segment(0).(selection.Primary)
	require.True(t, isPrimary)
	assert.InDelta(t, 0.2, prim.Range[0], delta)
	assert.InDelta(t, 0.7, prim.Range[1], delta)
	assert.Equal(t, [2]float32{1, 1}, prim.Values)

	segments := a.Curve(0).Spline().Segments()
	require.Len(t, segments, 3)
	assert.InDelta(t, 0, segments[0].Bounds[0], delta)
	assert.InDelta(t, 0.2, segments[0].Bounds[1], delta)
	assert.InDelta(t, 0.7, segments[2].Bounds[0], delta)
	assert.InDelta(t, 1, segments[2].Bounds[1], delta)

	// dragging above the start grows the other end
	p2 := valuePos(a, 0.1)
	act.Update(Pointer{Position: p2, Movement: p2.Sub(p1)})
	r := a.CurveBuilder(0).Selection(0).Range()
	assert.InDelta(t, 0.1, r[0], delta)
	assert.InDelta(t, 0.2, r[1], delta)

	evt = act.Finish()
	assert.Equal(t, event.SelectionsChange, evt)
	assert.Equal(t, 1, a.CurveBuilder(0).Len())
	assert.InDelta(t, 1, a.Curve(0).Evaluate(0.15), delta)
	assert.InDelta(t, 0, a.Curve(0).Evaluate(0.5), delta)
}

func TestCreateSelectionWithoutMovement(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := testAxes()
	defer runtime.KeepAlive(axes)
	a, _ := axes.Axis("a")
	p0 := valuePos(a, 0.4)
	act, ok := Start(axes, Pointer{Position: p0}, fullCtx)
	require.True(t, ok)
	evt := act.Update(Pointer{Position: p0, Movement: coords.Off[coords.Screen](3, 0)})
	assert.Equal(t, event.None, evt)
	act.Finish()
	assert.Equal(t, 0, a.CurveBuilder(0).Len())
	assert.InDelta(t, 1, a.Curve(0).Evaluate(0.5), delta)

	noLabel := fullCtx
	noLabel.HasLabel = false
	_, ok = Start(axes, Pointer{Position: p0}, noLabel)
	assert.False(t, ok)
}

func TestTranslateSelection(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := testAxes()
	defer runtime.KeepAlive(axes)
	a, _ := axes.Axis("a")
	a.CurveBuilder(0).AddSelection(selection.New([2]float32{0.1, 1}, [2]float32{0.9, 1}))
	a.RebuildCurve(0)

	p0 := valuePos(a, 0.5)
	act, ok := Start(axes, Pointer{Position: p0}, fullCtx)
	require.True(t, ok)
	assert.Equal(t, SelectSelection, act.Kind())
	assert.Equal(t, 1, a.CurveBuilder(0).Len())

	dy := valuePos(a, 0.8).Y - valuePos(a, 0.9).Y
	require.Greater(t, dy, float32(0))
	movement := coords.Off[coords.Screen](0, dy)
	evt := act.Update(Pointer{Position: p0.Add(movement), Movement: movement})
	assert.Equal(t, event.SelectionsChange, evt)
	evt = act.Finish()
	assert.Equal(t, event.SelectionsChange, evt)

	cb := a.CurveBuilder(0)
	require.Equal(t, 1, cb.Len())
	r := cb.Selection(0).Range()
	assert.InDelta(t, 0.0, r[0], delta)
	assert.InDelta(t, 0.8, r[1], delta)
}

func TestTranslateSelectionClamped(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := testAxes()
	defer runtime.KeepAlive(axes)
	a, _ := axes.Axis("a")
	a.CurveBuilder(0).AddSelection(selection.New([2]float32{0.1, 1}, [2]float32{0.9, 1}))
	a.RebuildCurve(0)

	p0 := valuePos(a, 0.5)
	act, ok := Start(axes, Pointer{Position: p0}, fullCtx)
	require.True(t, ok)
	require.Equal(t, SelectSelection, act.Kind())

	down := coords.Off[coords.Screen](0, valuePos(a, 0.6).Y-valuePos(a, 0.9).Y)
	require.Greater(t, down.Y, float32(0))
	p1 := p0.Add(down)
	act.Update(Pointer{Position: p1, Movement: down})
	r := a.CurveBuilder(0).Selection(0).Range()
	assert.InDelta(t, 0.0, r[0], delta)
	assert.InDelta(t, 0.8, r[1], delta)

	up := coords.Off[coords.Screen](0, valuePos(a, 0.9).Y-valuePos(a, 0.4).Y)
	act.Update(Pointer{Position: p1.Add(up), Movement: up})
	act.Finish()
	cb := a.CurveBuilder(0)
	require.Equal(t, 1, cb.Len())
	r = cb.Selection(0).Range()
	assert.InDelta(t, 0.2, r[0], delta)
	assert.InDelta(t, 1.0, r[1], delta)
}

func TestClickSelectionDeletes(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := testAxes()
	defer runtime.KeepAlive(axes)
	a, _ := axes.Axis("a")
	a.CurveBuilder(0).AddSelection(selection.New([2]float32{0.1, 1}, [2]float32{0.9, 1}))
	a.CurveBuilder(0).AddSelection(selection.New([2]float32{0.3, 1}, [2]float32{0.4, 1}))
	a.RebuildCurve(0)

	act, ok := Start(axes, Pointer{Position: valuePos(a, 0.7)}, fullCtx)
	require.True(t, ok)
	assert.Equal(t, SelectSelection, act.Kind())
	act.Finish()
	cb := a.CurveBuilder(0)
	require.Equal(t, 1, cb.Len())
	assert.InDelta(t, 0.3, cb.Selection(0).Range()[0], delta)
}

func TestStateToggle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := testAxes()
	defer runtime.KeepAlive(axes)
	b, _ := axes.Axis("b")

	act, ok := Start(axes, Pointer{Position: labelCenter(b)}, fullCtx)
	require.True(t, ok)
	evt := act.Finish()
	assert.Equal(t, event.AxisStateChange|event.AxisPositionChange, evt)
	assert.True(t, b.IsExpanded())
	bb := b.BoundingBox(0, true)
	assert.Equal(t, coords.Pos[coords.Local](0, 0), bb.Start())
	assert.Equal(t, coords.Pos[coords.Local](1, 1), bb.End())
	assert.InDelta(t, 1.5, b.WorldOffset(), delta)

	act, ok = Start(axes, Pointer{Position: labelCenter(b)}, fullCtx)
	require.True(t, ok)
	act.Finish()
	assert.True(t, b.IsCollapsed())

	h := axes.ConstructAxis("h", axis.NewArgs("Hidden", []float32{1, 2, 3, 4}).WithHidden(true))
	evt = NewMoveAxis(h, Pointer{}, fullCtx).Finish()
	assert.Equal(t, event.AxisPositionChange, evt)
	assert.True(t, h.IsHidden())
}

func TestModes(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := testAxes()
	defer runtime.KeepAlive(axes)
	a, _ := axes.Axis("a")
	ctx := fullCtx

	ctx.Mode = Disabled
	_, ok := Start(axes, Pointer{Position: labelCenter(a)}, ctx)
	assert.False(t, ok)

	ctx.Mode = Restricted
	act, ok := Start(axes, Pointer{Position: labelCenter(a)}, ctx)
	require.True(t, ok)
	target := axes.ScreenToWorld().Inverse().Position(coords.Pos[coords.World](1.6, 0.5))
	assert.Equal(t, event.None, act.Update(Pointer{Position: target}))
	assert.InDelta(t, 0.5, a.WorldOffset(), delta)
	assert.Equal(t, event.AxisPositionChange, act.Finish())
	assert.True(t, a.IsCollapsed())

	act, _ = Start(axes, Pointer{Position: labelCenter(a)}, ctx)
	assert.Equal(t, event.AxisStateChange|event.AxisPositionChange, act.Finish())
	assert.True(t, a.IsExpanded())

	ctx.Mode = Compatibility
	act, _ = Start(axes, Pointer{Position: labelCenter(a)}, ctx)
	assert.Equal(t, event.AxisPositionChange, act.Finish())
	assert.True(t, a.IsExpanded())

	ctx.Mode = RestrictedCompatibility
	act, ok = Start(axes, Pointer{Position: valuePos(a, 0.3)}, ctx)
	require.True(t, ok)
	assert.Equal(t, CreateSelection, act.Kind())
}

func TestEasingApplied(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	axes := testAxes()
	defer runtime.KeepAlive(axes)
	a, _ := axes.Axis("a")
	sel := selection.New([2]float32{0.4, 1}, [2]float32{0.6, 1})
	sel.AddFadingLeft(0.2, 0, selection.Linear)
	a.CurveBuilder(0).AddSelection(sel)
	ctx := fullCtx
	ctx.Easing = selection.EaseIn
	act := NewSelectSelection(a, 0, ctx)
	movement := coords.Off[coords.Screen](0, 1)
	act.Update(Pointer{Position: valuePos(a, 0.5).Add(movement), Movement: movement})
	act.Finish()
	assert.Equal(t, selection.EaseIn, a.CurveBuilder(0).Selection(0).FadingType(0))
}
