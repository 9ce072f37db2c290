package renderer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/npillmayer/parcoords/action"
	"github.com/npillmayer/parcoords/axis"
	"github.com/npillmayer/parcoords/colors"
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

func textLength(text string) (w, h coords.Length[coords.Screen]) {
	return coords.Len[coords.Screen](float32(len(text)) * 8), coords.Len[coords.Screen](16)
}

func newTestRenderer() *Renderer {
	return New(DefaultConfig(), 800, 600, 1, textLength)
}

func mustBuild(t *testing.T, b *Builder) *Transaction {
	t.Helper()
	tx, err := b.Build()
	require.NoError(t, err)
	return tx
}

// abRenderer has axes a [0..3] and b [10..40] and one label "l".
func abRenderer(t *testing.T) *Renderer {
	t.Helper()
	r := newTestRenderer()
	tx := mustBuild(t, NewTransaction().
		AddAxis("a", axis.NewArgs("A", []float32{0, 1, 2, 3})).
		AddAxis("b", axis.NewArgs("B", []float32{10, 20, 30, 40})).
		AddLabel(LabelDesc{ID: "l"}))
	require.NoError(t, r.Commit(tx))
	r.Draw()
	return r
}

func screenOf(ax *axis.Axis, p coords.Position[coords.Local]) coords.Position[coords.Screen] {
	w := ax.SpaceTransformer().Inverse().Position(p)
	return ax.Axes().ScreenToWorld().Inverse().Position(w)
}

func valuePos(ax *axis.Axis, v float32) coords.Position[coords.Screen] {
	return screenOf(ax, ax.PositionOfValue(v))
}

func pointerAt(p coords.Position[coords.Screen], movement coords.Offset[coords.Screen]) PointerEvent {
	return PointerEvent{
		OffsetX: p.X, OffsetY: p.Y,
		MovementX: movement.X, MovementY: movement.Y,
		IsPrimary: true,
	}
}

func TestConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 64, cfg.QueueCapacity)
	assert.Equal(t, float32(16), cfg.RemPixels)
	assert.Equal(t, action.Full, cfg.InteractionMode)
	assert.Equal(t, selection.Linear, cfg.Easing)
	assert.Equal(t, float32(1), cfg.SelectionBounds[1])
	assert.Greater(t, cfg.SelectionBounds[0], float32(0))
	assert.Equal(t, selection.Replace, cfg.Combination)
	bad := DefaultConfig()
	bad.Combination = selection.Combination(9)
	assert.Error(t, bad.Validate())
	cfg.QueueCapacity = 0
	assert.Error(t, cfg.Validate())
	mustPanic(t, func() { New(cfg, 800, 600, 1, nil) })
	mustPanic(t, func() { New(DefaultConfig(), 0, 600, 1, nil) })
}

func TestDefaultTextLength(t *testing.T) {
	w, h := DefaultTextLength("abc")
	assert.Equal(t, float32(21), w.L)
	assert.Equal(t, float32(13), h.L)
}

func TestDebugOptions(t *testing.T) {
	var opts DebugOptions
	assert.True(t, opts.NoneIsActive())
	opts.ShowColorBarBoundingBox = true
	assert.True(t, opts.AnyIsActive())
	assert.False(t, opts.NoneIsActive())
}

func TestTransactionBuilder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	nan := float32(0)
	nan = nan / nan
	_, err := NewTransaction().AddAxis("a", axis.NewArgs("A", []float32{nan})).Build()
	assert.True(t, errors.Is(err, ErrMalformedTransaction))
	assert.True(t, errors.Is(err, axis.ErrInvalidArgs))

	_, err = NewTransaction().SetBackgroundColor(colors.Query{CSS: "no-such-color"}).Build()
	assert.True(t, errors.Is(err, ErrMalformedTransaction))
	assert.True(t, errors.Is(err, colors.ErrUnknownColorName))

	_, err = NewTransaction().SetAxisOrder([]string{"a", "a"}).Build()
	assert.True(t, errors.Is(err, ErrMalformedTransaction))

	_, err = NewTransaction().
		AddAxis("a", axis.NewArgs("A", []float32{1, 2})).
		AddAxis("b", axis.NewArgs("B", []float32{1, 2, 3})).Build()
	assert.True(t, errors.Is(err, ErrMalformedTransaction))

	_, err = NewTransaction().AddLabel(LabelDesc{ID: "x"}).AddLabel(LabelDesc{ID: "x"}).Build()
	assert.True(t, errors.Is(err, ErrMalformedTransaction))

	_, err = NewTransaction().SetBrushes(Brushes{"a": {"l": {{Range: [2]float32{0.5, 0.2}}}}}).Build()
	assert.True(t, errors.Is(err, ErrMalformedTransaction))

	// the first error sticks
	_, err = NewTransaction().AddLabel(LabelDesc{}).SetColorBarVisibility(true).Build()
	assert.True(t, errors.Is(err, ErrMalformedTransaction))

	tx := mustBuild(t, NewTransaction())
	assert.True(t, tx.IsEmpty())
	r := newTestRenderer()
	assert.NoError(t, r.Commit(tx))
	assert.Equal(t, event.None, r.PendingEvents())
}

func TestCommitAxes(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := abRenderer(t)
	assert.Equal(t, []string{"a", "b"}, r.Axes().Order())

	tx := mustBuild(t, NewTransaction().
		AddAxis("c", axis.NewArgs("C", []float32{5, 6, 7, 8})).
		SetAxisOrder([]string{"c", "b", "a"}))
	require.NoError(t, r.Commit(tx))
	assert.Equal(t, []string{"c", "b", "a"}, r.Axes().Order())
	evt := r.PendingEvents()
	assert.True(t, evt.SignaledAll(event.TransactionCommit, event.AxesChange))
	c, _ := r.Axes().Axis("c")
	assert.Equal(t, 1, c.NumLabels())

	// an order missing an axis is rejected as a whole
	tx = mustBuild(t, NewTransaction().RemoveAxis("c").SetAxisOrder([]string{"a", "b", "c"}))
	err := r.Commit(tx)
	assert.True(t, errors.Is(err, ErrMalformedTransaction))
	assert.Equal(t, []string{"c", "b", "a"}, r.Axes().Order())

	tx = mustBuild(t, NewTransaction().RemoveAxis("x"))
	assert.True(t, errors.Is(r.Commit(tx), ErrUnknownAxis))

	tx = mustBuild(t, NewTransaction().AddAxis("d", axis.NewArgs("D", []float32{1, 2})))
	assert.True(t, errors.Is(r.Commit(tx), ErrMalformedTransaction))

	tx = mustBuild(t, NewTransaction().RemoveAxis("b").AddAxis("b", axis.NewArgs("B2", []float32{1, 2, 3, 4})))
	require.NoError(t, r.Commit(tx))
	assert.Equal(t, []string{"c", "a", "b"}, r.Axes().Order())
	b, _ := r.Axes().Axis("b")
	assert.Equal(t, "B2", b.Label())
}

func TestLabels(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := abRenderer(t)
	bounds := [2]float32{-1, 0.5}
	tx := mustBuild(t, NewTransaction().
		AddLabel(LabelDesc{ID: "m", SelectionBounds: &bounds, Easing: "inout"}).
		AddLabel(LabelDesc{ID: "n", Color: &colors.Query{CSS: "red"}}))
	require.NoError(t, r.Commit(tx))
	require.Len(t, r.Labels(), 3)
	assert.Equal(t, 3, r.Axes().NumLabels())
	active, ok := r.ActiveLabel()
	require.True(t, ok)
	assert.Equal(t, "l", active.ID)
	m := r.Labels()[1]
	assert.Equal(t, boundsEpsilon, m.SelectionBounds[0])
	assert.Equal(t, float32(0.5), m.SelectionBounds[1])
	assert.Equal(t, selection.EaseInOut, m.Easing)
	assert.NotNil(t, r.Labels()[2].Color)
	assert.Nil(t, r.Labels()[0].Color)

	tx = mustBuild(t, NewTransaction().SwitchActiveLabel("n"))
	require.NoError(t, r.Commit(tx))
	active, _ = r.ActiveLabel()
	assert.Equal(t, "n", active.ID)
	assert.True(t, r.PendingEvents().Signaled(event.ActiveLabelChange))

	tx = mustBuild(t, NewTransaction().RemoveLabel("n"))
	require.NoError(t, r.Commit(tx))
	active, _ = r.ActiveLabel()
	assert.Equal(t, "l", active.ID)
	assert.Equal(t, 2, r.Axes().NumLabels())

	tx = mustBuild(t, NewTransaction().SetLabelColor("n", nil))
	assert.True(t, errors.Is(r.Commit(tx), ErrUnknownLabel))
	tx = mustBuild(t, NewTransaction().SwitchActiveLabel("n"))
	assert.True(t, errors.Is(r.Commit(tx), ErrUnknownLabel))
	tx = mustBuild(t, NewTransaction().AddLabel(LabelDesc{ID: "l"}))
	assert.True(t, errors.Is(r.Commit(tx), ErrMalformedTransaction))

	tx = mustBuild(t, NewTransaction().SetLabelSelectionBounds("m", nil))
	require.NoError(t, r.Commit(tx))
	assert.Equal(t, DefaultConfig().SelectionBounds, r.Labels()[1].SelectionBounds)

	tx = mustBuild(t, NewTransaction().RemoveLabel("l").RemoveLabel("m"))
	require.NoError(t, r.Commit(tx))
	_, ok = r.ActiveLabel()
	assert.False(t, ok)
}

func TestBrushesAndProbabilities(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := abRenderer(t)
	frame := r.Draw()
	require.Len(t, frame.Labels, 1)
	for _, p := range frame.Labels[0].Probabilities {
		assert.InDelta(t, 1, p, delta)
	}

	tx := mustBuild(t, NewTransaction().SetBrushes(Brushes{
		"a": {"l": {{Range: [2]float32{0, 0.5}}}},
	}))
	require.NoError(t, r.Commit(tx))
	frame = r.Draw()
	assert.True(t, frame.Events.Signaled(event.BrushesChange))
	lf := frame.Labels[0]
	require.Len(t, lf.Probabilities, 4)
	assert.InDelta(t, 1, lf.Probabilities[0], delta)
	assert.InDelta(t, 1, lf.Probabilities[1], delta)
	assert.InDelta(t, 0, lf.Probabilities[2], delta)
	assert.InDelta(t, 0, lf.Probabilities[3], delta)
	assert.Equal(t, []bool{true, true, false, false}, lf.Selected)
	_, _, unselected := r.Colors()
	assert.Equal(t, unselected, frame.Colors[3])
	assert.NotEqual(t, unselected, frame.Colors[0])

	brushes := r.Brushes()
	require.Len(t, brushes["a"]["l"], 1)
	assert.InDelta(t, 0.5, brushes["a"]["l"][0].Range[1], delta)
	assert.Empty(t, brushes["b"])

	// a second brush on b narrows the result
	tx = mustBuild(t, NewTransaction().SetBrushes(Brushes{
		"b": {"l": {{Range: [2]float32{0.2, 1}, FadeLeft: 0.2}}},
	}))
	require.NoError(t, r.Commit(tx))
	lf = r.Draw().Labels[0]
	assert.InDelta(t, 0, lf.Probabilities[0], delta)
	assert.InDelta(t, 1, lf.Probabilities[1], delta)
	brushes = r.Brushes()
	assert.InDelta(t, 0.2, brushes["b"]["l"][0].FadeLeft, delta)

	// frames without changes keep the results
	again := r.Draw()
	assert.Equal(t, event.None, again.Events)
	assert.Equal(t, lf.Probabilities, again.Labels[0].Probabilities)
}

func TestCurveCombination(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// the later brush ramps up from 0 to 1 over [0,0.5] and overlaps the
	// plateau of the earlier one
	brushes := Brushes{"a": {"l": {
		{Range: [2]float32{0.3, 0.7}, FadeLeft: 0.3, FadeRight: 0.3},
		{Range: [2]float32{0.5, 1}, FadeLeft: 0.5},
	}}}
	probabilities := func(cfg Config) []float32 {
		r := New(cfg, 800, 600, 1, textLength)
		require.NoError(t, r.Commit(mustBuild(t, NewTransaction().
			AddAxis("a", axis.NewArgs("A", []float32{0, 1, 2, 3})).
			AddLabel(LabelDesc{ID: "l"}).
			SetBrushes(brushes))))
		a, _ := r.Axes().Axis("a")
		assert.Equal(t, cfg.Combination, a.Axes().CurveCombination())
		return r.Draw().Labels[0].Probabilities
	}
	replaced := probabilities(DefaultConfig())
	require.Len(t, replaced, 4)
	assert.InDeltaSlice(t, []float32{0, 2.0 / 3, 1, 1}, replaced, delta)

	cfg := DefaultConfig()
	cfg.Combination = selection.Maximum
	maximum := probabilities(cfg)
	require.Len(t, maximum, 4)
	assert.InDeltaSlice(t, []float32{0, 1, 1, 1}, maximum, delta)
}

func TestFrameDensity(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := abRenderer(t)
	require.NoError(t, r.Commit(mustBuild(t, NewTransaction().
		AddAxis("c", axis.NewArgs("C", []float32{1, 1, 1, 9}).WithHidden(true)))))
	frame := r.Draw()
	require.Len(t, frame.Density, 2)
	assert.InDeltaSlice(t, []float32{0.25, 0.25, 0.25, 0.25}, frame.Density["a"], delta)
	assert.Len(t, frame.Density["b"], 4)
	assert.NotContains(t, frame.Density, "c")
}

func TestLabelEasing(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := abRenderer(t)
	tx := mustBuild(t, NewTransaction().SetBrushes(Brushes{
		"a": {"l": {{Range: [2]float32{0.4, 0.6}, FadeLeft: 0.2, FadeRight: 0.2}}},
	}))
	require.NoError(t, r.Commit(tx))
	a, _ := r.Axes().Axis("a")
	sel := a.CurveBuilder(0).Selection(0)
	require.Equal(t, 3, sel.NumSegments())
	assert.Equal(t, selection.Linear, sel.FadingType(0))

	tx = mustBuild(t, NewTransaction().SetLabelEasing("l", "in"))
	require.NoError(t, r.Commit(tx))
	sel = a.CurveBuilder(0).Selection(0)
	assert.Equal(t, selection.EaseIn, sel.FadingType(0))
	assert.Equal(t, selection.EaseIn, r.Labels()[0].Easing)

	tx = mustBuild(t, NewTransaction().SetLabelEasing("l", "bogus"))
	require.NoError(t, r.Commit(tx))
	assert.Equal(t, selection.Linear, r.Labels()[0].Easing)
}

func TestRemoveLabelKeepsOtherCurves(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := abRenderer(t)
	tx := mustBuild(t, NewTransaction().
		AddLabel(LabelDesc{ID: "m"}).
		SetBrushes(Brushes{"a": {"m": {{Range: [2]float32{0.6, 0.9}}}}}))
	require.NoError(t, r.Commit(tx))
	tx = mustBuild(t, NewTransaction().RemoveLabel("l"))
	require.NoError(t, r.Commit(tx))
	brushes := r.Brushes()
	require.Len(t, brushes["a"]["m"], 1)
	assert.InDelta(t, 0.6, brushes["a"]["m"][0].Range[0], delta)
	lf := r.Draw().Labels
	require.Len(t, lf, 1)
	assert.Equal(t, "m", lf[0].ID)
	assert.Equal(t, []bool{false, false, true, false}, lf[0].Selected)
}

func TestPointerGestures(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := abRenderer(t)
	a, _ := r.Axes().Axis("a")
	p0, p1 := valuePos(a, 0.2), valuePos(a, 0.6)

	secondary := pointerAt(p0, coords.Off[coords.Screen](0, 0))
	secondary.Button = 2
	r.PointerDown(secondary)
	assert.Nil(t, r.action)

	r.PointerDown(pointerAt(p0, coords.Off[coords.Screen](0, 0)))
	require.NotNil(t, r.action)
	assert.Equal(t, action.CreateSelection, r.action.Kind())
	r.PointerMove(pointerAt(p1, p1.Sub(p0)))
	r.PointerUp(pointerAt(p1, coords.Off[coords.Screen](0, 0)))
	assert.Nil(t, r.action)

	frame := r.Draw()
	assert.True(t, frame.Events.Signaled(event.SelectionsChange))
	assert.Equal(t, []bool{false, true, false, false}, frame.Labels[0].Selected)

	tx := mustBuild(t, NewTransaction().SetInteractionMode(action.Disabled))
	require.NoError(t, r.Commit(tx))
	r.PointerDown(pointerAt(p0, coords.Off[coords.Screen](0, 0)))
	assert.Nil(t, r.action)
}

func TestColorBarLayout(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := abRenderer(t)
	assert.Nil(t, r.Draw().ColorBar)
	assert.Equal(t, float32(800), r.Axes().ViewBoundingBox().Size().X)

	tx := mustBuild(t, NewTransaction().
		SetColorBarVisibility(true).
		SetDataColorMode(DataColorMode{Mode: AttributeColor, Attribute: "b"}))
	require.NoError(t, r.Commit(tx))
	assert.Equal(t, "B", r.ColorBar().Label())
	width := r.Axes().ViewBoundingBox().Size().X
	assert.Less(t, width, float32(800))
	frame := r.Draw()
	require.NotNil(t, frame.ColorBar)
	assert.Equal(t, "B", frame.ColorBar.Label)
	assert.InDelta(t, width, frame.Viewport.Size[0], 1)
	s := r.colorScale
	assert.Equal(t, s.Sample(0), frame.Colors[0])
	assert.Equal(t, s.Sample(1), frame.Colors[3])

	tx = mustBuild(t, NewTransaction().SetDataColorMode(DataColorMode{Mode: ProbabilityColor}))
	require.NoError(t, r.Commit(tx))
	assert.Equal(t, "Probability l", r.ColorBar().Label())

	tx = mustBuild(t, NewTransaction().SetDataColorMode(DataColorMode{Mode: AttributeColor, Attribute: "x"}))
	assert.True(t, errors.Is(r.Commit(tx), ErrUnknownAxis))

	r.Resize(1000, 600, 2)
	assert.True(t, r.PendingEvents().Signaled(event.Resize))
	assert.Greater(t, r.Axes().ViewBoundingBox().Size().X, width)
	r.Resize(-1, 600, 2)
	assert.Equal(t, float32(1000), r.width)
}

func TestDebugBoxes(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := abRenderer(t)
	assert.Empty(t, r.Draw().Debug)
	tx := mustBuild(t, NewTransaction().
		SetColorBarVisibility(true).
		SetDebugOptions(DebugOptions{
			ShowAxisBoundingBox:       true,
			ShowLabelBoundingBox:      true,
			ShowAxisLineBoundingBox:   true,
			ShowSelectionsBoundingBox: true,
			ShowColorBarBoundingBox:   true,
		}))
	require.NoError(t, r.Commit(tx))
	frame := r.Draw()
	kinds := map[string]int{}
	for _, box := range frame.Debug {
		kinds[box.Kind]++
	}
	assert.Equal(t, 2, kinds["axis"])
	assert.Equal(t, 2, kinds["label"])
	assert.Equal(t, 2, kinds["axis-line"])
	assert.Equal(t, 2, kinds["selections"])
	assert.Equal(t, 1, kinds["color-bar"])
	assert.True(t, frame.Events.Signaled(event.DebugOptionsChange))
}

func TestEventLoop(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := abRenderer(t)
	a, _ := r.Axes().Axis("a")
	p0, p1 := valuePos(a, 0.2), valuePos(a, 0.6)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result := make(chan error, 1)
	go func() { result <- r.Run(ctx) }()

	q := r.EventQueue()
	require.NoError(t, q.PointerDown(pointerAt(p0, coords.Off[coords.Screen](0, 0))))
	require.NoError(t, q.PointerMove(pointerAt(p1, p1.Sub(p0))))
	require.NoError(t, q.PointerUp(pointerAt(p1, coords.Off[coords.Screen](0, 0))))
	tx := mustBuild(t, NewTransaction().SetColorBarVisibility(true))
	require.NoError(t, q.CommitTransaction(tx))
	bad := mustBuild(t, NewTransaction().RemoveAxis("x"))
	require.NoError(t, q.CommitTransaction(bad))
	frame, err := q.Draw(ctx)
	require.NoError(t, err)
	assert.True(t, frame.Events.SignaledAll(event.SelectionsChange, event.ColorBarChange))
	assert.Equal(t, []bool{false, true, false, false}, frame.Labels[0].Selected)
	assert.NotNil(t, frame.ColorBar)

	require.NoError(t, q.Exit())
	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("event loop did not exit")
	}
	assert.True(t, errors.Is(q.Resize(10, 10, 1), ErrQueueClosed))
	_, err = q.Draw(ctx)
	assert.True(t, errors.Is(err, ErrQueueClosed))
	_, hasAxis := r.Axes().Axis("x")
	assert.False(t, hasAxis)
}

func TestEventLoopCancel(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := newTestRenderer()
	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() { result <- r.Run(ctx) }()
	cancel()
	select {
	case err := <-result:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(5 * time.Second):
		t.Fatal("event loop did not stop")
	}
}
