package axis

import (
	"fmt"

	"github.com/npillmayer/parcoords/coords"
)

// ElementKind classifies the element under the pointer.
type ElementKind int8

// Element kinds.
const (
	LabelElement    ElementKind = iota // the axis label
	BrushElement                       // a selection of the active label
	AxisLineElement                    // the axis line outside of selections
)

func (k ElementKind) String() string {
	switch k {
	case LabelElement:
		return "label"
	case BrushElement:
		return "brush"
	case AxisLineElement:
		return "axis-line"
	}
	return fmt.Sprintf("ElementKind(%d)", int8(k))
}

// Element is a part of an axis hit by a pointer.
type Element struct {
	Kind      ElementKind
	Axis      *Axis
	Selection int // index of the selection for BrushElement
}

// ElementAtPosition returns the element at a screen position. Selections
// are only considered if hasLabel is set, using the curve builder of label.
func (a *Axes) ElementAtPosition(p coords.Position[coords.Screen], label int, hasLabel bool) (Element, bool) {
	w := a.ScreenToWorld().Position(p)
	if !a.WorldBoundingBox().ContainsPoint(w) {
		return Element{}, false
	}
	for ax := range a.VisibleAxes() {
		lp := ax.SpaceTransformer().Position(w)
		if !ax.BoundingBox(label, hasLabel).ContainsPoint(lp) {
			continue
		}
		if ax.LabelBoundingBox().ContainsPoint(lp) {
			return Element{Kind: LabelElement, Axis: ax}, true
		}
		if hasLabel {
			if i, ok := ax.selectionAt(lp, label); ok {
				return Element{Kind: BrushElement, Axis: ax, Selection: i}, true
			}
		}
		if ax.AxisLineBoundingBox().ContainsPoint(lp) {
			return Element{Kind: AxisLineElement, Axis: ax}, true
		}
		return Element{}, false
	}
	return Element{}, false
}

// selectionAt finds the selection of label under a local position. Expanded
// axes pick by rank; collapsed axes pick the topmost selection.
func (ax *Axis) selectionAt(p coords.Position[local], label int) (int, bool) {
	if !ax.SelectionsBoundingBox(label).ContainsPoint(p) {
		return -1, false
	}
	cb := ax.builders[label]
	value := ax.AxisValueAt(p)
	if ax.IsExpanded() {
		rank, ok := ax.SelectionRankAtPosition(p, label)
		if !ok {
			return -1, false
		}
		return cb.SelectionContaining(value, rank)
	}
	for i := cb.Len() - 1; i >= 0; i-- {
		r := cb.Selection(i).Range()
		if value >= r[0] && value <= r[1] {
			return i, true
		}
	}
	return -1, false
}
