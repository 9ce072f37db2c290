package axis

import (
	"fmt"
	"iter"
	"slices"

	"github.com/chewxy/math32"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/parcoords/coords"
	"github.com/npillmayer/parcoords/selection"
)

// RemLengthFunc returns the screen length of a length given in rem.
type RemLengthFunc func(rem float32) coords.Length[coords.Screen]

// TextLengthFunc returns the screen width and height of a text.
type TextLengthFunc func(text string) (w, h coords.Length[coords.Screen])

type mappings struct {
	viewBox    coords.Aabb[coords.View]
	worldWidth float32
}

// Axes is the collection of all axes of a plot.
type Axes struct {
	axes        *treemap.Map // key → *Axis
	numVisible  int
	first, last *Axis
	numDatums   int
	hasDatums   bool
	numLabels   int
	combination selection.Combination
	mappings    mappings
	remLength   RemLengthFunc
	textLength  TextLengthFunc
}

// NewAxes creates an empty collection drawn into viewBox.
func NewAxes(viewBox coords.Aabb[coords.View], rem RemLengthFunc, text TextLengthFunc) *Axes {
	return &Axes{
		axes:       treemap.NewWithStringComparator(),
		mappings:   mappings{viewBox: viewBox, worldWidth: 1},
		remLength:  rem,
		textLength: text,
	}
}

// NumDatums returns the number of datums of every axis.
func (a *Axes) NumDatums() int { return a.numDatums }

// NumVisibleAxes returns the number of visible axes.
func (a *Axes) NumVisibleAxes() int { return a.numVisible }

// Len returns the number of axes, hidden ones included.
func (a *Axes) Len() int { return a.axes.Size() }

// NumLabels returns the number of labels every axis holds curves for.
func (a *Axes) NumLabels() int { return a.numLabels }

// WorldWidth returns the width of world space, one unit per visible axis.
func (a *Axes) WorldWidth() float32 { return a.mappings.worldWidth }

// WorldBoundingBox returns [0,0]..[WorldWidth,1].
func (a *Axes) WorldBoundingBox() coords.Aabb[coords.World] {
	return coords.NewAabb(coords.Pos[coords.World](0, 0), coords.Pos[coords.World](a.mappings.worldWidth, 1))
}

// ViewBoundingBox returns the box the axes are drawn into.
func (a *Axes) ViewBoundingBox() coords.Aabb[coords.View] { return a.mappings.viewBox }

// SetViewBoundingBox changes the box the axes are drawn into.
func (a *Axes) SetViewBoundingBox(box coords.Aabb[coords.View]) {
	a.mappings.viewBox = box
}

func (a *Axes) updateWorldWidth() {
	a.mappings.worldWidth = max(float32(a.numVisible), 1)
}

// ScreenToWorld returns the transformer from screen space to world space.
func (a *Axes) ScreenToWorld() coords.Transformer[coords.Screen, coords.World] {
	size := a.mappings.viewBox.Size()
	return coords.Compose(
		coords.ScreenToView(size.Y),
		coords.ViewToWorld(size.X, size.Y, a.mappings.worldWidth+1),
	)
}

func (a *Axes) screenToLocalOffsets(w, h coords.Length[coords.Screen]) (coords.Length[coords.Local], coords.Length[coords.Local]) {
	toLocal := coords.Compose(a.ScreenToWorld(), coords.AxisWorldToLocal(0))
	ow := toLocal.Offset(coords.AxisOffset(0, w))
	oh := toLocal.Offset(coords.AxisOffset(1, h))
	return coords.Len[coords.Local](math32.Abs(ow.X)), coords.Len[coords.Local](math32.Abs(oh.Y))
}

// remLengthLocal converts a rem length to local width and height.
func (a *Axes) remLengthLocal(rem float32) (w, h coords.Length[coords.Local]) {
	l := a.remLength(rem)
	return a.screenToLocalOffsets(l, l)
}

// textLengthLocal returns the local width and height of a text.
func (a *Axes) textLengthLocal(text string) (w, h coords.Length[coords.Local]) {
	return a.screenToLocalOffsets(a.textLength(text))
}

func (a *Axes) remLengthWorld(rem float32) (w, h coords.Length[coords.World]) {
	l := a.remLength(rem)
	toWorld := a.ScreenToWorld()
	ow := toWorld.Offset(coords.AxisOffset(0, l))
	oh := toWorld.Offset(coords.AxisOffset(1, l))
	return coords.Len[coords.World](math32.Abs(ow.X)), coords.Len[coords.World](math32.Abs(oh.Y))
}

// AxisLineSize returns the world width and height of an axis line.
func (a *Axes) AxisLineSize() (w, h coords.Length[coords.World]) {
	return a.remLengthWorld(axisLineSizeRem)
}

// DataLineSize returns the world width and height of a data line.
func (a *Axes) DataLineSize() (w, h coords.Length[coords.World]) {
	return a.remLengthWorld(dataLineSizeRem)
}

// SelectionLineSize returns the world width and height of a selection line.
func (a *Axes) SelectionLineSize() (w, h coords.Length[coords.World]) {
	return a.remLengthWorld(selectionLineSizeRem)
}

// CurveLineSize returns the world width and height of a curve line.
func (a *Axes) CurveLineSize() (w, h coords.Length[coords.World]) {
	return a.remLengthWorld(curveLineSizeRem)
}

// ControlPointsRadius returns the screen radius of control points.
func (a *Axes) ControlPointsRadius() coords.Length[coords.Screen] {
	return a.remLength(controlPointsRadiusRem)
}

// CurveTRange returns the parameter range of the probability curves.
func (a *Axes) CurveTRange() [2]float32 {
	return [2]float32{minCurveT, maxCurveT}
}

// Viewport returns the pixel rectangle of the view box on a canvas of
// canvasHeight for a device pixel ratio, with y measured from the top.
func (a *Axes) Viewport(canvasHeight, pixelRatio float32) (start, size [2]float32) {
	box := a.mappings.viewBox
	s, e := box.Start(), box.End()
	start = [2]float32{
		math32.Floor(s.X * pixelRatio),
		math32.Floor((canvasHeight - e.Y) * pixelRatio),
	}
	size = [2]float32{
		math32.Floor((e.X - s.X) * pixelRatio),
		math32.Floor((e.Y - s.Y) * pixelRatio),
	}
	return
}

// CurveCombination returns how overlapping selections form the curves.
func (a *Axes) CurveCombination() selection.Combination { return a.combination }

// SetCurveCombination changes how overlapping selections form the curves
// and rebuilds the curves of all axes.
func (a *Axes) SetCurveCombination(c selection.Combination) {
	if c == a.combination {
		return
	}
	a.combination = c
	for ax := range a.All() {
		ax.combination = c
		for label := range ax.NumLabels() {
			ax.RebuildCurve(label)
		}
	}
	tracer().Infof("curve combination set to %s", c)
}

// --- Construction ----------------------------------------------------------

// ConstructAxis creates an axis from args and inserts it under key. Visible
// axes are appended to the right of the visible order. It panics for
// invalid args, duplicate keys or a datum count differing from the other
// axes.
func (a *Axes) ConstructAxis(key string, args *Args) *Axis {
	if err := args.Validate(); err != nil {
		panic(fmt.Sprintf("axis %q: %v", key, err))
	}
	if _, found := a.axes.Get(key); found {
		panic(fmt.Sprintf("axis %q already exists", key))
	}
	if a.hasDatums && a.numDatums != len(args.datums) {
		panic(fmt.Sprintf("axis %q has %d datums, expected %d", key, len(args.datums), a.numDatums))
	}
	a.numDatums, a.hasDatums = len(args.datums), true
	index := -1
	if !args.hidden {
		index = a.numVisible
	}
	ax := newAxis(key, args, index, a.numLabels, a)
	a.axes.Put(key, ax)
	if !ax.IsHidden() {
		a.numVisible++
		a.updateWorldWidth()
		if a.last == nil {
			ax.worldOffset = 0.5
			a.first, a.last = ax, ax
		} else {
			ax.worldOffset = math32.Floor(a.last.worldOffset) + 1.5
			a.last.setRight(ax)
			ax.setLeft(a.last)
			a.last = ax
		}
	}
	tracer().Infof("created axis %s", ax)
	return ax
}

// RemoveAxis removes the axis with key. Axes right of it move one unit to
// the left. It panics if there is no such axis.
func (a *Axes) RemoveAxis(key string) {
	value, found := a.axes.Get(key)
	if !found {
		panic(fmt.Sprintf("axis %q is missing", key))
	}
	ax := value.(*Axis)
	a.axes.Remove(key)
	if !ax.IsHidden() {
		a.numVisible--
		a.updateWorldWidth()
		left, right := ax.Left(), ax.Right()
		if left != nil {
			left.setRight(right)
		} else {
			a.first = right
		}
		if right != nil {
			right.setLeft(left)
		} else {
			a.last = left
		}
		for other := range a.VisibleAxes() {
			if other.index > ax.index {
				other.index--
			}
			if other.worldOffset > ax.worldOffset {
				other.worldOffset--
			}
		}
	}
	if a.axes.Empty() {
		a.hasDatums, a.numDatums = false, 0
	}
	tracer().Infof("removed axis %s", ax)
}

// Axis returns the axis with key.
func (a *Axes) Axis(key string) (*Axis, bool) {
	value, found := a.axes.Get(key)
	if !found {
		return nil, false
	}
	return value.(*Axis), true
}

// All iterates over all axes, hidden ones included, ordered by key.
func (a *Axes) All() iter.Seq[*Axis] {
	return func(yield func(*Axis) bool) {
		it := a.axes.Iterator()
		for it.Next() {
			if !yield(it.Value().(*Axis)) {
				return
			}
		}
	}
}

// VisibleAxes iterates over the visible axes from left to right.
func (a *Axes) VisibleAxes() iter.Seq[*Axis] {
	return func(yield func(*Axis) bool) {
		n := a.numVisible
		for ax := a.first; ax != nil && n > 0; ax = ax.Right() {
			n--
			if !yield(ax) {
				return
			}
		}
	}
}

// VisibleAxesBackward iterates over the visible axes from right to left.
func (a *Axes) VisibleAxesBackward() iter.Seq[*Axis] {
	return func(yield func(*Axis) bool) {
		n := a.numVisible
		for ax := a.last; ax != nil && n > 0; ax = ax.Left() {
			n--
			if !yield(ax) {
				return
			}
		}
	}
}

// First returns the leftmost visible axis or nil.
func (a *Axes) First() *Axis { return a.first }

// Last returns the rightmost visible axis or nil.
func (a *Axes) Last() *Axis { return a.last }

// Order returns the keys of the visible axes from left to right.
func (a *Axes) Order() []string {
	order := make([]string, 0, a.numVisible)
	for ax := range a.VisibleAxes() {
		order = append(order, ax.key)
	}
	return order
}

// SetOrder rearranges the visible axes. keys must contain every visible
// axis exactly once; SetOrder panics otherwise.
func (a *Axes) SetOrder(keys []string) {
	current := a.Order()
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	slices.Sort(current)
	if !slices.Equal(sorted, current) {
		panic(fmt.Sprintf("axis order %v does not match the visible axes %v", keys, current))
	}
	var prev *Axis
	for i, key := range keys {
		ax, _ := a.Axis(key)
		ax.worldOffset = float32(i) + 0.5
		ax.index = i
		ax.setLeft(prev)
		ax.setRight(nil)
		if prev != nil {
			prev.setRight(ax)
		} else {
			a.first = ax
		}
		prev = ax
	}
	a.last = prev
	tracer().Debugf("set axis order %v", keys)
}

// --- Labels ----------------------------------------------------------------

// PushLabel adds curves for a new label to every axis.
func (a *Axes) PushLabel() {
	a.numLabels++
	for ax := range a.All() {
		ax.PushLabel()
	}
}

// RemoveLabel drops the curves of label i from every axis.
func (a *Axes) RemoveLabel(i int) {
	if i < 0 || i >= a.numLabels {
		panic(fmt.Sprintf("label index %d out of range", i))
	}
	a.numLabels--
	for ax := range a.All() {
		ax.RemoveLabel(i)
	}
}
