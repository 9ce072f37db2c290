package renderer

import (
	"github.com/npillmayer/parcoords/coords"
)

// DebugOptions switch on the outlines of layout boxes.
type DebugOptions struct {
	ShowAxisBoundingBox       bool `yaml:"axis_bounding_box" toml:"axis_bounding_box"`
	ShowLabelBoundingBox      bool `yaml:"label_bounding_box" toml:"label_bounding_box"`
	ShowCurvesBoundingBox     bool `yaml:"curves_bounding_box" toml:"curves_bounding_box"`
	ShowAxisLineBoundingBox   bool `yaml:"axis_line_bounding_box" toml:"axis_line_bounding_box"`
	ShowSelectionsBoundingBox bool `yaml:"selections_bounding_box" toml:"selections_bounding_box"`
	ShowColorBarBoundingBox   bool `yaml:"color_bar_bounding_box" toml:"color_bar_bounding_box"`
}

// AnyIsActive is true if at least one outline is switched on.
func (o DebugOptions) AnyIsActive() bool {
	return o.ShowAxisBoundingBox || o.ShowLabelBoundingBox || o.ShowCurvesBoundingBox ||
		o.ShowAxisLineBoundingBox || o.ShowSelectionsBoundingBox || o.ShowColorBarBoundingBox
}

// NoneIsActive is true if all outlines are switched off.
func (o DebugOptions) NoneIsActive() bool {
	return !o.AnyIsActive()
}

// DebugBox is an outline to draw on top of a frame.
type DebugBox struct {
	Kind string // "axis", "label", "curves", "axis-line", "selections" or "color-bar"
	Axis string // key of the axis, empty for the color bar
	Box  coords.Aabb[coords.Screen]
}

// debugBoxes collects the outlines requested by the debug options.
func (r *Renderer) debugBoxes() []DebugBox {
	opts := r.debug
	if opts.NoneIsActive() {
		return nil
	}
	var boxes []DebugBox
	label, hasLabel := r.labels.activeIndex()
	toScreen := r.axes.ScreenToWorld().Inverse()
	for ax := range r.axes.VisibleAxes() {
		toWorld := ax.SpaceTransformer().Inverse()
		add := func(kind string, box coords.Aabb[coords.Local]) {
			boxes = append(boxes, DebugBox{Kind: kind, Axis: ax.Key(), Box: toScreen.Aabb(toWorld.Aabb(box))})
		}
		if opts.ShowAxisBoundingBox {
			add("axis", ax.BoundingBox(label, hasLabel))
		}
		if opts.ShowLabelBoundingBox {
			add("label", ax.LabelBoundingBox())
		}
		if opts.ShowCurvesBoundingBox && ax.IsExpanded() {
			add("curves", ax.CurvesBoundingBox())
		}
		if opts.ShowAxisLineBoundingBox {
			add("axis-line", ax.AxisLineBoundingBox())
		}
		if opts.ShowSelectionsBoundingBox && hasLabel {
			add("selections", ax.SelectionsBoundingBox(label))
		}
	}
	if opts.ShowColorBarBoundingBox && r.colorBar.IsVisible() {
		boxes = append(boxes, DebugBox{Kind: "color-bar", Box: r.colorBar.BoundingBox()})
	}
	return boxes
}
