/*
Package renderer holds the state of a parallel coordinates plot and runs
its event loop.

A Renderer owns the axes, the labels, the color bar and the colors. All
changes go through a single event queue: the host sends pointer events,
resizes and transactions, and requests frames with Draw. The event loop
processes the queue in order on one goroutine, so the state needs no
locking. Changes are collected as event flags and handed out with the next
frame.

Drawing is the CPU side of a frame: the probability of every record under
every label, the selected flags, the record colors, and the layout
rectangles. Rasterization is left to the host.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package renderer

import (
	"context"
	"fmt"

	"github.com/npillmayer/parcoords/action"
	"github.com/npillmayer/parcoords/axis"
	"github.com/npillmayer/parcoords/colorbar"
	"github.com/npillmayer/parcoords/colors"
	"github.com/npillmayer/parcoords/coords"
	"github.com/npillmayer/parcoords/event"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'renderer'
func tracer() tracing.Trace {
	return tracing.Select("renderer")
}

// Renderer is the state root of a plot.
type Renderer struct {
	cfg                       Config
	width, height, pixelRatio float32
	axes                      *axis.Axes
	colorBar                  *colorbar.ColorBar
	labels                    *labelRegistry
	background                colors.Color
	brush                     colors.Color
	unselected                colors.Color
	colorScale                *colors.Scale
	colorMode                 DataColorMode
	mode                      action.InteractionMode
	debug                     DebugOptions
	action                    *action.Action // running pointer gesture
	events                    event.Event    // pending events
	queue                     chan message
	done                      chan struct{}
}

// New creates a renderer for a canvas of width×height screen pixels. A nil
// text function selects DefaultTextLength. New panics for an invalid
// configuration or canvas size.
func New(cfg Config, width, height, pixelRatio float32, text axis.TextLengthFunc) *Renderer {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("renderer configuration: %v", err))
	}
	if !validSize(width, height, pixelRatio) {
		panic(fmt.Sprintf("invalid canvas size %gx%g@%g", width, height, pixelRatio))
	}
	if text == nil {
		text = DefaultTextLength
	}
	rem := cfg.remLength()
	r := &Renderer{
		cfg:        cfg,
		width:      width,
		height:     height,
		pixelRatio: pixelRatio,
		axes:       axis.NewAxes(viewBox(width, height), rem, text),
		colorBar:   colorbar.New(width, height, rem, text),
		labels:     newLabelRegistry(),
		background: cfg.Background,
		brush:      cfg.Brush,
		unselected: cfg.Unselected,
		colorScale: cfg.ColorScale,
		colorMode:  DataColorMode{Mode: ConstantColor, Value: 0.5},
		mode:       cfg.InteractionMode,
		queue:      make(chan message, cfg.QueueCapacity),
		done:       make(chan struct{}),
	}
	r.axes.SetCurveCombination(cfg.Combination)
	r.layout()
	return r
}

func validSize(width, height, pixelRatio float32) bool {
	return width > 0 && height > 0 && pixelRatio > 0
}

func viewBox(width, height float32) coords.Aabb[coords.View] {
	return coords.NewAabb(coords.Pos[coords.View](0, 0), coords.Pos[coords.View](width, height))
}

// EventQueue returns the producer side of the event loop.
func (r *Renderer) EventQueue() EventQueue {
	return EventQueue{ch: r.queue, done: r.done}
}

// Run processes events until Exit is received or ctx is cancelled. Run
// must be called once.
func (r *Renderer) Run(ctx context.Context) error {
	defer close(r.done)
	tracer().Infof("event loop started")
	for {
		select {
		case <-ctx.Done():
			tracer().Infof("event loop cancelled")
			return ctx.Err()
		case msg := <-r.queue:
			if !r.handle(msg) {
				tracer().Infof("event loop exited")
				return nil
			}
		}
	}
}

// handle processes one message. It returns false for Exit.
func (r *Renderer) handle(msg message) bool {
	switch m := msg.(type) {
	case exitMessage:
		return false
	case resizeMessage:
		r.Resize(m.width, m.height, m.pixelRatio)
	case pointerDownMessage:
		r.PointerDown(m.event)
	case pointerUpMessage:
		r.PointerUp(m.event)
	case pointerMoveMessage:
		r.PointerMove(m.event)
	case commitMessage:
		if err := r.Commit(m.tx); err != nil {
			tracer().Errorf("dropping transaction: %v", err)
		}
	case drawMessage:
		m.completion <- r.Draw()
	default:
		panic(fmt.Sprintf("unknown message %T", msg))
	}
	return true
}

// --- Layout ----------------------------------------------------------------

// Resize changes the canvas size. Invalid sizes are ignored.
func (r *Renderer) Resize(width, height, pixelRatio float32) {
	if !validSize(width, height, pixelRatio) {
		tracer().Errorf("ignoring canvas size %gx%g@%g", width, height, pixelRatio)
		return
	}
	r.width, r.height, r.pixelRatio = width, height, pixelRatio
	r.layout()
	r.events.Signal(event.Resize)
	tracer().Debugf("resized to %gx%g@%g", width, height, pixelRatio)
}

// layout places the axes left of the color bar.
func (r *Renderer) layout() {
	r.colorBar.SetScreenSize(r.width, r.height)
	width := r.width
	if r.colorBar.IsVisible() {
		bb := r.colorBar.BoundingBox()
		width = min(bb.Start().X, bb.End().X)
	}
	r.axes.SetViewBoundingBox(viewBox(max(width, 1), r.height))
}

// updateColorBar shows what the data color mode colors by.
func (r *Renderer) updateColorBar() {
	switch r.colorMode.Mode {
	case AttributeColor:
		if ax, ok := r.axes.Axis(r.colorMode.Attribute); ok {
			r.colorBar.SetToAxis(ax)
			return
		}
	case ProbabilityColor:
		if l, ok := r.labels.activeLabel(); ok {
			r.colorBar.SetToLabelProbability(l.ID)
			return
		}
	}
	r.colorBar.SetToEmpty()
}

// --- Pointer events --------------------------------------------------------

func (r *Renderer) actionContext() action.Context {
	ctx := action.Context{Mode: r.mode}
	if l, ok := r.labels.activeLabel(); ok {
		ctx.Label, _ = r.labels.activeIndex()
		ctx.HasLabel = true
		ctx.Easing = l.Easing
	}
	return ctx
}

// PointerDown starts a gesture on the element under the pointer.
func (r *Renderer) PointerDown(e PointerEvent) {
	if !e.activatesActions() {
		tracer().Debugf("ignoring pointer button %d", e.Button)
		return
	}
	if r.action != nil {
		tracer().Debugf("ignoring pointer down during %s", r.action)
		return
	}
	if a, ok := action.Start(r.axes, e.pointer(), r.actionContext()); ok {
		r.action = a
	}
}

// PointerMove updates the running gesture.
func (r *Renderer) PointerMove(e PointerEvent) {
	if r.action == nil {
		return
	}
	r.events.Signal(r.action.Update(e.pointer()))
}

// PointerUp finishes the running gesture.
func (r *Renderer) PointerUp(e PointerEvent) {
	if !e.activatesActions() || r.action == nil {
		return
	}
	r.events.Signal(r.action.Finish())
	r.action = nil
}

// --- Accessors -------------------------------------------------------------
//
// Accessors must not be called while Run is active.

// Axes returns the axes of the plot.
func (r *Renderer) Axes() *axis.Axes { return r.axes }

// ColorBar returns the color bar.
func (r *Renderer) ColorBar() *colorbar.ColorBar { return r.colorBar }

// Labels returns the labels in the order of their curve indices.
func (r *Renderer) Labels() []*Label { return r.labels.all() }

// ActiveLabel returns the label pointer gestures edit.
func (r *Renderer) ActiveLabel() (*Label, bool) { return r.labels.activeLabel() }

// InteractionMode returns the current interaction mode.
func (r *Renderer) InteractionMode() action.InteractionMode { return r.mode }

// DebugOptions returns the current debug options.
func (r *Renderer) DebugOptions() DebugOptions { return r.debug }

// DataColorMode returns how records are colored.
func (r *Renderer) DataColorMode() DataColorMode { return r.colorMode }

// Colors returns the background, brush and unselected colors.
func (r *Renderer) Colors() (background, brush, unselected colors.Color) {
	return r.background, r.brush, r.unselected
}

// PendingEvents returns the events collected since the last frame.
func (r *Renderer) PendingEvents() event.Event { return r.events }
