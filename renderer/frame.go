package renderer

import (
	"github.com/npillmayer/parcoords"
	"github.com/npillmayer/parcoords/colors"
	"github.com/npillmayer/parcoords/event"
)

// Frame is the CPU side of a drawn frame.
type Frame struct {
	Events     event.Event // events since the previous frame
	Background colors.Color
	Viewport   Rect // pixel rectangle of the axes
	Order      []string
	Labels     []LabelFrame
	Colors     []colors.Color       // color of every record
	Density    map[string][]float32 // data density of the records on every visible axis
	ColorBar   *ColorBarFrame       // nil if the color bar is hidden
	Debug      []DebugBox
}

// Rect is a pixel rectangle, with y measured from the top.
type Rect struct {
	Start, Size [2]float32
}

// LabelFrame holds the per-record results of a label.
type LabelFrame struct {
	ID            string
	Color         colors.Color
	Probabilities []float32
	Selected      []bool
}

// ColorBarFrame describes the visible color bar.
type ColorBarFrame struct {
	Label    string
	Viewport Rect
}

// recomputeMask lists the events after which all probabilities are
// recomputed.
const recomputeMask = event.AxesChange | event.LabelsChange

// Draw computes a frame and clears the pending events.
func (r *Renderer) Draw() Frame {
	evt := r.events.Clear()
	start, size := r.axes.Viewport(r.height, r.pixelRatio)
	frame := Frame{
		Events:     evt,
		Background: r.background,
		Viewport:   Rect{Start: start, Size: size},
		Order:      r.axes.Order(),
	}
	for i, l := range r.labels.all() {
		changed := r.curvesChanged(i)
		if changed || evt.Signaled(recomputeMask) || len(l.probabilities) != r.axes.NumDatums() {
			r.computeProbabilities(i, l)
		}
		r.computeSelected(l)
		color := r.brush
		if l.Color != nil {
			color = *l.Color
		}
		frame.Labels = append(frame.Labels, LabelFrame{
			ID:            l.ID,
			Color:         color,
			Probabilities: l.probabilities,
			Selected:      l.selected,
		})
	}
	frame.Colors = r.recordColors()
	frame.Density = make(map[string][]float32, r.axes.NumVisibleAxes())
	for ax := range r.axes.VisibleAxes() {
		frame.Density[ax.Key()] = ax.DataDensity()
	}
	if r.colorBar.IsVisible() {
		s, sz := r.colorBar.BarViewport(r.pixelRatio)
		frame.ColorBar = &ColorBarFrame{Label: r.colorBar.Label(), Viewport: Rect{Start: s, Size: sz}}
	}
	frame.Debug = r.debugBoxes()
	tracer().Debugf("drew frame: %s", evt)
	return frame
}

// curvesChanged fetches the changed flag of the curves of a label on every
// axis, resetting it.
func (r *Renderer) curvesChanged(label int) bool {
	changed := false
	for ax := range r.axes.All() {
		if _, ok := ax.Curve(label).ChangedCurve(); ok {
			changed = true
		}
	}
	return changed
}

// computeProbabilities sets the probability of every record to the minimum
// of the curve values of its datums on the visible axes. Without visible
// axes every record has probability 1.
func (r *Renderer) computeProbabilities(label int, l *Label) {
	n := r.axes.NumDatums()
	l.probabilities = make([]float32, n)
	for i := range l.probabilities {
		l.probabilities[i] = 1
	}
	for ax := range r.axes.VisibleAxes() {
		curve := ax.Curve(label)
		for i, d := range ax.DatumsNormalized() {
			l.probabilities[i] = min(l.probabilities[i], curve.Evaluate(d))
		}
	}
	tracer().Debugf("computed %d probabilities of %s", n, l)
}

func (r *Renderer) computeSelected(l *Label) {
	if len(l.selected) != len(l.probabilities) {
		l.selected = make([]bool, len(l.probabilities))
	}
	for i, p := range l.probabilities {
		l.selected[i] = l.IsSelected(p)
	}
}

// recordColors samples the color scale for every record. Records not
// selected by the active label get the unselected color.
func (r *Renderer) recordColors() []colors.Color {
	n := r.axes.NumDatums()
	if n == 0 {
		return nil
	}
	active, hasActive := r.labels.activeLabel()
	var values []float32
	switch r.colorMode.Mode {
	case AttributeColor:
		if ax, ok := r.axes.Axis(r.colorMode.Attribute); ok {
			values = ax.DatumsNormalized()
		}
	case ProbabilityColor:
		if hasActive {
			values = active.probabilities
		}
	}
	result := make([]colors.Color, n)
	for i := range result {
		if hasActive && !active.selected[i] {
			result[i] = r.unselected
			continue
		}
		t := r.colorMode.Value
		if values != nil {
			t = parcoords.Clamp(values[i], 0, 1)
		}
		result[i] = r.colorScale.Sample(t)
	}
	return result
}
