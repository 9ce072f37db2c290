package renderer

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/parcoords/colors"
	"github.com/npillmayer/parcoords/selection"
)

// Label is a named set of selections. Every label owns one curve builder
// and one curve per axis, at the index of the label in the registry.
type Label struct {
	ID              string
	Color           *colors.Color // nil: drawn with the brush color
	SelectionBounds [2]float32    // probabilities selecting a record
	Easing          selection.FadingType

	probabilities []float32
	selected      []bool
}

func (l *Label) String() string {
	return fmt.Sprintf("label(%s)", l.ID)
}

// Probabilities returns the probability of every record as of the last
// frame.
func (l *Label) Probabilities() []float32 { return l.probabilities }

// Selected returns for every record whether its probability lies within the
// selection bounds, as of the last frame.
func (l *Label) Selected() []bool { return l.selected }

// IsSelected is true if p lies within the selection bounds.
func (l *Label) IsSelected(p float32) bool {
	return p >= l.SelectionBounds[0] && p <= l.SelectionBounds[1]
}

// boundsEpsilon is the float32 machine epsilon.
const boundsEpsilon float32 = 1.1920929e-07

// clampBounds restricts selection bounds to [ε,1].
func clampBounds(b [2]float32) [2]float32 {
	lo := min(max(b[0], boundsEpsilon), 1)
	hi := min(max(b[1], boundsEpsilon), 1)
	return [2]float32{lo, hi}
}

// labelRegistry keeps the labels in the order of their curve indices.
type labelRegistry struct {
	list   *arraylist.List // of *Label
	active int             // -1 if there is no active label
}

func newLabelRegistry() *labelRegistry {
	return &labelRegistry{list: arraylist.New(), active: -1}
}

func (lr *labelRegistry) len() int {
	return lr.list.Size()
}

func (lr *labelRegistry) at(i int) *Label {
	v, ok := lr.list.Get(i)
	if !ok {
		panic(fmt.Sprintf("label index %d out of range", i))
	}
	return v.(*Label)
}

func (lr *labelRegistry) index(id string) (int, bool) {
	i, _ := lr.list.Find(func(_ int, v interface{}) bool {
		return v.(*Label).ID == id
	})
	return i, i >= 0
}

func (lr *labelRegistry) get(id string) (*Label, bool) {
	i, ok := lr.index(id)
	if !ok {
		return nil, false
	}
	return lr.at(i), true
}

// add appends a label. The first label becomes the active one.
func (lr *labelRegistry) add(l *Label) int {
	lr.list.Add(l)
	if lr.active < 0 {
		lr.active = 0
	}
	return lr.list.Size() - 1
}

// remove drops a label and returns its former index. If the active label is
// removed, the first remaining label becomes active.
func (lr *labelRegistry) remove(id string) (int, bool) {
	i, ok := lr.index(id)
	if !ok {
		return -1, false
	}
	lr.list.Remove(i)
	switch {
	case lr.list.Empty():
		lr.active = -1
	case lr.active == i:
		lr.active = 0
	case lr.active > i:
		lr.active--
	}
	return i, true
}

func (lr *labelRegistry) activeIndex() (int, bool) {
	return max(lr.active, 0), lr.active >= 0
}

func (lr *labelRegistry) activeLabel() (*Label, bool) {
	if lr.active < 0 {
		return nil, false
	}
	return lr.at(lr.active), true
}

func (lr *labelRegistry) setActive(id string) bool {
	i, ok := lr.index(id)
	if ok {
		lr.active = i
	}
	return ok
}

func (lr *labelRegistry) all() []*Label {
	labels := make([]*Label, 0, lr.list.Size())
	it := lr.list.Iterator()
	for it.Next() {
		labels = append(labels, it.Value().(*Label))
	}
	return labels
}
