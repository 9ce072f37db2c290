/*
Package action implements the pointer gestures of a parallel coordinates
plot.

An Action is started when the primary pointer button goes down over an
axis. Moving the pointer calls Update, releasing it calls Finish. Both
return the events the change caused, to be merged into the pending events
of the renderer. There are three kinds of actions: dragging an axis by its
label, drawing a new selection along an axis line, and dragging an
existing selection.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package action

import (
	"fmt"

	"github.com/npillmayer/parcoords"
	"github.com/npillmayer/parcoords/axis"
	"github.com/npillmayer/parcoords/coords"
	"github.com/npillmayer/parcoords/event"
	"github.com/npillmayer/parcoords/selection"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'action'
func tracer() tracing.Trace {
	return tracing.Select("action")
}

// Pointer is the part of a pointer event an action needs: the position and
// the movement since the last event, both in screen pixels.
type Pointer struct {
	Position coords.Position[coords.Screen]
	Movement coords.Offset[coords.Screen]
}

// Kind tells which gesture an action is.
type Kind int8

// Action kinds.
const (
	MoveAxis Kind = iota
	CreateSelection
	SelectSelection
)

func (k Kind) String() string {
	switch k {
	case MoveAxis:
		return "move-axis"
	case CreateSelection:
		return "create-selection"
	case SelectSelection:
		return "select-selection"
	}
	return fmt.Sprintf("Kind(%d)", int8(k))
}

// Context carries the renderer state an action depends on.
type Context struct {
	Label    int                  // index of the active label
	HasLabel bool                 // false if there is no active label
	Easing   selection.FadingType // easing of the active label
	Mode     InteractionMode
}

type variant interface {
	update(p Pointer) event.Event
	finish() event.Event
}

// Action is a running pointer gesture.
type Action struct {
	kind     Kind
	axis     *axis.Axis
	v        variant
	finished bool
}

func (a *Action) String() string {
	return fmt.Sprintf("action(%s on %s)", a.kind, a.axis.Key())
}

// Kind returns the gesture of the action.
func (a *Action) Kind() Kind { return a.kind }

// Axis returns the axis the action works on.
func (a *Action) Axis() *axis.Axis { return a.axis }

// Update applies a pointer move.
func (a *Action) Update(p Pointer) event.Event {
	if a.finished {
		panic(fmt.Sprintf("%s updated after finish", a))
	}
	return a.v.update(p)
}

// Finish ends the action. An action cannot be used after it finished.
func (a *Action) Finish() event.Event {
	if a.finished {
		panic(fmt.Sprintf("%s finished twice", a))
	}
	a.finished = true
	evt := a.v.finish()
	tracer().Debugf("finished %s: %s", a, evt)
	return evt
}

// Start begins the action for the element under a pointer going down. It
// returns false if there is nothing to interact with.
func Start(axes *axis.Axes, p Pointer, ctx Context) (*Action, bool) {
	if !ctx.Mode.CanStartActions() {
		return nil, false
	}
	el, ok := axes.ElementAtPosition(p.Position, ctx.Label, ctx.HasLabel)
	if !ok {
		return nil, false
	}
	var a *Action
	switch el.Kind {
	case axis.LabelElement:
		a = NewMoveAxis(el.Axis, p, ctx)
	case axis.BrushElement:
		if !ctx.Mode.CanEditSelections() {
			return nil, false
		}
		a = NewSelectSelection(el.Axis, el.Selection, ctx)
	case axis.AxisLineElement:
		if !ctx.HasLabel || !ctx.Mode.CanEditSelections() {
			return nil, false
		}
		a = NewCreateSelection(el.Axis, p, ctx)
	default:
		return nil, false
	}
	tracer().Debugf("started %s", a)
	return a, true
}

// axisValue returns the normalized axis value at the height of a screen
// position, clamped to [0,1].
func axisValue(ax *axis.Axis, p coords.Position[coords.Screen]) float32 {
	w := ax.Axes().ScreenToWorld().Position(p)
	return parcoords.Clamp(ax.AxisValueAt(ax.SpaceTransformer().Position(w)), 0, 1)
}

// axisOffset converts a vertical screen movement into a normalized axis
// offset. Moving the pointer down yields a negative offset.
func axisOffset(ax *axis.Axis, dy float32) float32 {
	w := ax.Axes().ScreenToWorld().Offset(coords.Off[coords.Screen](0, dy))
	l := ax.SpaceTransformer().Offset(w)
	return -l.Y / ax.AxisValueLength()
}

// commit installs a curve builder for a label and rebuilds the curve.
func commit(ax *axis.Axis, label int, cb *selection.CurveBuilder, easing selection.FadingType) {
	cb.SetFadingType(easing)
	ax.SetCurveBuilder(label, cb)
}
