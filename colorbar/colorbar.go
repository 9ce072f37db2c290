/*
Package colorbar lays out the color bar of a parallel coordinates plot.

The color bar sits at the right edge of the screen. It shows either the
color scale of the data (colored by one axis) or the probability of the
active label. Its label is drawn centered below the bar and its ticks run
along the left side of the bar.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package colorbar

import (
	"fmt"

	"github.com/aclements/go-moremath/vec"
	"github.com/chewxy/math32"
	"github.com/npillmayer/parcoords/axis"
	"github.com/npillmayer/parcoords/coords"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'colorbar'
func tracer() tracing.Trace {
	return tracing.Select("colorbar")
}

const (
	outerPaddingRem = 2.0
	barPaddingRem   = 1.0
	barWidthRem     = 2.5
	ticksPaddingRem = 0.5
)

// emptyLabel is measured in place of an empty label, so the layout does not
// jump when a label is set.
const emptyLabel = "empty"

// Mode tells what the color bar shows.
type Mode int8

// Color bar modes.
const (
	ColorMode Mode = iota
	ProbabilityMode
)

func (m Mode) String() string {
	switch m {
	case ColorMode:
		return "color"
	case ProbabilityMode:
		return "probability"
	}
	return fmt.Sprintf("Mode(%d)", int8(m))
}

// ColorBar holds the state and layout of the color bar. All lengths are in
// screen pixels.
type ColorBar struct {
	visible      bool
	label        string
	mode         Mode
	ticks        []axis.Tick
	screenWidth  float32
	screenHeight float32
	rem          axis.RemLengthFunc
	text         axis.TextLengthFunc
}

// New creates an invisible, empty color bar for a screen of the given size.
func New(width, height float32, rem axis.RemLengthFunc, text axis.TextLengthFunc) *ColorBar {
	return &ColorBar{
		ticks:        defaultTicks(),
		screenWidth:  width,
		screenHeight: height,
		rem:          rem,
		text:         text,
	}
}

func defaultTicks() []axis.Tick {
	var ticks []axis.Tick
	for _, t := range vec.Linspace(0, 1, 11) {
		ticks = append(ticks, axis.Tick{Position: float32(t), Label: axis.FormatValue(float32(t))})
	}
	return ticks
}

// Label returns the label of the bar.
func (cb *ColorBar) Label() string { return cb.label }

// Mode returns what the bar shows.
func (cb *ColorBar) Mode() Mode { return cb.mode }

// Ticks returns the ticks of the bar, positions normalized to [0,1].
func (cb *ColorBar) Ticks() []axis.Tick { return cb.ticks }

// IsVisible is true if the bar is drawn.
func (cb *ColorBar) IsVisible() bool { return cb.visible }

// SetVisible shows or hides the bar.
func (cb *ColorBar) SetVisible(visible bool) { cb.visible = visible }

// SetToEmpty resets the bar to an unlabeled color bar.
func (cb *ColorBar) SetToEmpty() {
	cb.label = ""
	cb.mode = ColorMode
	cb.ticks = defaultTicks()
}

// SetToAxis shows the color scale of an axis, with its label and ticks.
func (cb *ColorBar) SetToAxis(ax *axis.Axis) {
	cb.label = ax.Label()
	cb.mode = ColorMode
	cb.ticks = ax.Ticks()
	tracer().Debugf("color bar shows axis %s", ax.Key())
}

// SetToLabelProbability shows the probability of a label.
func (cb *ColorBar) SetToLabelProbability(label string) {
	cb.label = "Probability " + label
	cb.mode = ProbabilityMode
	cb.ticks = defaultTicks()
}

// SetScreenSize changes the size of the screen.
func (cb *ColorBar) SetScreenSize(width, height float32) {
	cb.screenWidth, cb.screenHeight = width, height
}

func (cb *ColorBar) labelLength() (w, h float32) {
	label := cb.label
	if label == "" {
		label = emptyLabel
	}
	lw, lh := cb.text(label)
	return lw.L, lh.L
}

func (cb *ColorBar) maxTickWidth() float32 {
	var w float32
	for _, t := range cb.ticks {
		tw, _ := cb.text(t.Label)
		w = math32.Max(w, tw.L)
	}
	return w
}

type lengths struct {
	outer, padding, bar, ticks float32
}

func (cb *ColorBar) lengths() lengths {
	return lengths{
		outer:   cb.rem(outerPaddingRem).L,
		padding: cb.rem(barPaddingRem).L,
		bar:     cb.rem(barWidthRem).L,
		ticks:   cb.rem(ticksPaddingRem).L,
	}
}

func (cb *ColorBar) toScreen(x, y float32) coords.Position[coords.Screen] {
	return coords.ScreenToView(cb.screenHeight).Inverse().Position(coords.Pos[coords.View](x, y))
}

// barSpan returns the view x of the bar center and the view y range of the
// bar.
func (cb *ColorBar) barSpan() (center, startY, endY float32) {
	l := cb.lengths()
	labelWidth, labelHeight := cb.labelLength()
	half := math32.Max(l.bar, labelWidth) / 2
	center = cb.screenWidth - l.outer - l.padding - half
	startY = l.outer
	endY = cb.screenHeight - l.outer - labelHeight - l.padding
	return
}

// LabelPosition returns the top-left position of the label text, centered
// below the bar.
func (cb *ColorBar) LabelPosition() coords.Position[coords.Screen] {
	l := cb.lengths()
	_, labelHeight := cb.labelLength()
	center, _, _ := cb.barSpan()
	return cb.toScreen(center, cb.screenHeight-l.outer-labelHeight)
}

// TicksRange returns the line along which the ticks are drawn, from the
// position of tick 0 to the position of tick 1.
func (cb *ColorBar) TicksRange() (start, end coords.Position[coords.Screen]) {
	l := cb.lengths()
	center, startY, endY := cb.barSpan()
	x := center - l.bar/2 - l.ticks
	return cb.toScreen(x, startY), cb.toScreen(x, endY)
}

// BoundingBox returns the screen area covered by the bar, its label and
// its ticks.
func (cb *ColorBar) BoundingBox() coords.Aabb[coords.Screen] {
	l := cb.lengths()
	labelWidth, _ := cb.labelLength()
	width := math32.Max(l.bar, labelWidth)
	startX := cb.screenWidth - 2*l.outer - 2*l.padding - width - cb.maxTickWidth() - l.ticks
	return coords.NewAabb(cb.toScreen(startX, 0), cb.toScreen(cb.screenWidth, cb.screenHeight-1))
}

// BarViewport returns the pixel rectangle of the bar itself for a device
// pixel ratio, with y measured from the top.
func (cb *ColorBar) BarViewport(pixelRatio float32) (start, size [2]float32) {
	l := cb.lengths()
	center, startY, endY := cb.barSpan()
	startX := center - l.bar/2
	start = [2]float32{
		math32.Floor(startX * pixelRatio),
		math32.Floor((cb.screenHeight - endY) * pixelRatio),
	}
	size = [2]float32{
		math32.Floor(l.bar * pixelRatio),
		math32.Floor((endY - startY) * pixelRatio),
	}
	return
}
