package action

import (
	"github.com/npillmayer/parcoords"
	"github.com/npillmayer/parcoords/axis"
	"github.com/npillmayer/parcoords/coords"
	"github.com/npillmayer/parcoords/event"
)

type moveAxis struct {
	axis     *axis.Axis
	start    coords.Position[coords.Screen]
	moved    bool
	label    int
	hasLabel bool
	mode     InteractionMode
}

// NewMoveAxis starts dragging an axis by its label. Releasing the pointer
// without moving it toggles the axis between collapsed and expanded.
func NewMoveAxis(ax *axis.Axis, p Pointer, ctx Context) *Action {
	return &Action{
		kind: MoveAxis,
		axis: ax,
		v: &moveAxis{
			axis:     ax,
			start:    p.Position,
			label:    ctx.Label,
			hasLabel: ctx.HasLabel,
			mode:     ctx.Mode,
		},
	}
}

func (m *moveAxis) update(p Pointer) event.Event {
	if p.Position.X != m.start.X {
		m.moved = true
	}
	if !m.mode.CanReorderAxes() {
		return event.None
	}
	axes := m.axis.Axes()
	x := axes.ScreenToWorld().Position(coords.Pos[coords.Screen](p.Position.X, 0)).X
	m.axis.SetWorldOffset(parcoords.Clamp(x, -0.5, float32(axes.NumVisibleAxes())))

	bb := m.axis.WorldBoundingBox(m.label, m.hasLabel)
	if left := m.axis.Left(); left != nil && bb.Overlaps(left.WorldBoundingBox(m.label, m.hasLabel)) {
		m.axis.SwapLeft()
		tracer().Debugf("axis %s swapped with %s", m.axis.Key(), left.Key())
		return event.AxisPositionChange | event.AxisOrderChange
	}
	if right := m.axis.Right(); right != nil && bb.Overlaps(right.WorldBoundingBox(m.label, m.hasLabel)) {
		m.axis.SwapRight()
		tracer().Debugf("axis %s swapped with %s", m.axis.Key(), right.Key())
		return event.AxisPositionChange | event.AxisOrderChange
	}
	return event.AxisPositionChange
}

func (m *moveAxis) finish() event.Event {
	if left := m.axis.Left(); left != nil {
		m.axis.SetWorldOffset(left.WorldOffset() + 1)
	} else if right := m.axis.Right(); right != nil {
		m.axis.SetWorldOffset(right.WorldOffset() - 1)
	}
	if m.moved || !m.mode.CanToggleAxisState() {
		return event.AxisPositionChange
	}
	switch m.axis.State() {
	case axis.Collapsed:
		m.axis.Expand()
	case axis.Expanded:
		m.axis.Collapse()
	default:
		return event.AxisPositionChange
	}
	return event.AxisStateChange | event.AxisPositionChange
}
