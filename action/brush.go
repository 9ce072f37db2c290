package action

import (
	"github.com/npillmayer/parcoords"
	"github.com/npillmayer/parcoords/axis"
	"github.com/npillmayer/parcoords/event"
	"github.com/npillmayer/parcoords/selection"
)

type createSelection struct {
	axis     *axis.Axis
	label    int
	easing   selection.FadingType
	start    float32
	sel      *selection.Selection
	snapshot *selection.CurveBuilder
}

// NewCreateSelection starts drawing a new selection on an axis line, at
// the axis value under the pointer.
func NewCreateSelection(ax *axis.Axis, p Pointer, ctx Context) *Action {
	v := axisValue(ax, p.Position)
	return &Action{
		kind: CreateSelection,
		axis: ax,
		v: &createSelection{
			axis:     ax,
			label:    ctx.Label,
			easing:   ctx.Easing,
			start:    v,
			sel:      selection.New([2]float32{v, 1}, [2]float32{v, 1}),
			snapshot: ax.CurveBuilder(ctx.Label).Clone(),
		},
	}
}

func (c *createSelection) update(p Pointer) event.Event {
	if p.Movement.Y == 0 {
		return event.None
	}
	v := axisValue(c.axis, p.Position)
	if v <= c.start {
		c.sel = selection.New([2]float32{v, 1}, [2]float32{c.start, 1})
	} else {
		c.sel = selection.New([2]float32{c.start, 1}, [2]float32{v, 1})
	}
	cb := c.snapshot.Clone()
	cb.AddSelection(c.sel.Clone())
	commit(c.axis, c.label, cb, c.easing)
	return event.SelectionsChange
}

func (c *createSelection) finish() event.Event {
	if !c.sel.IsPoint() {
		c.snapshot.AddSelection(c.sel)
	} else {
		tracer().Debugf("dropping empty selection on axis %s", c.axis.Key())
	}
	commit(c.axis, c.label, c.snapshot, c.easing)
	return event.SelectionsChange
}

type selectSelection struct {
	axis    *axis.Axis
	label   int
	easing  selection.FadingType
	index   int
	sel     *selection.Selection
	without *selection.CurveBuilder
	moved   bool
}

// NewSelectSelection starts dragging selection i of the active label.
// Releasing the pointer without moving it deletes the selection.
func NewSelectSelection(ax *axis.Axis, i int, ctx Context) *Action {
	without := ax.CurveBuilder(ctx.Label).Clone()
	sel := without.RemoveSelection(i)
	return &Action{
		kind: SelectSelection,
		axis: ax,
		v: &selectSelection{
			axis:    ax,
			label:   ctx.Label,
			easing:  ctx.Easing,
			index:   i,
			sel:     sel,
			without: without,
		},
	}
}

func (s *selectSelection) update(p Pointer) event.Event {
	s.moved = s.moved || p.Movement.Y != 0
	s.sel.Offset(s.clampOffset(axisOffset(s.axis, p.Movement.Y)))
	cb := s.without.Clone()
	cb.InsertSelection(s.index, s.sel.Clone())
	commit(s.axis, s.label, cb, s.easing)
	return event.SelectionsChange
}

// clampOffset limits an offset so that the selection stays inside the
// visible range of the axis. A selection wider than the visible range does
// not move.
func (s *selectSelection) clampOffset(offset float32) float32 {
	vis := s.axis.VisibleDataRangeNormalized()
	r := s.sel.Range()
	lo, hi := vis[0]-r[0], vis[1]-r[1]
	if lo > hi {
		return 0
	}
	return parcoords.Clamp(offset, lo, hi)
}

func (s *selectSelection) finish() event.Event {
	if s.moved {
		s.without.InsertSelection(s.index, s.sel)
	} else {
		tracer().Debugf("deleting selection %d on axis %s", s.index, s.axis.Key())
	}
	commit(s.axis, s.label, s.without, s.easing)
	return event.SelectionsChange
}
