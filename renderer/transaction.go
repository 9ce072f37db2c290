package renderer

import (
	"errors"
	"fmt"
	"slices"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/npillmayer/parcoords/action"
	"github.com/npillmayer/parcoords/axis"
	"github.com/npillmayer/parcoords/colors"
	"github.com/npillmayer/parcoords/selection"
)

// Errors reported for transactions.
var (
	ErrMalformedTransaction = errors.New("malformed transaction")
	ErrUnknownLabel         = errors.New("unknown label")
	ErrUnknownAxis          = errors.New("unknown axis")
)

// LabelDesc describes a label to add.
type LabelDesc struct {
	ID              string
	Color           *colors.Query // nil: drawn with the brush color
	SelectionBounds *[2]float32   // nil: default bounds
	Easing          string        // "linear", "in", "out" or "inout"; empty: default easing
}

// Brush describes a selection on an axis in normalized axis values. Fading
// parts extend the range to the left and right with falling weight.
type Brush struct {
	Range     [2]float32 `yaml:"range" toml:"range"`
	FadeLeft  float32    `yaml:"fade_left,omitempty" toml:"fade_left,omitempty"`
	FadeRight float32    `yaml:"fade_right,omitempty" toml:"fade_right,omitempty"`
}

// Brushes maps axis keys to label ids to the selections of the label on
// the axis.
type Brushes map[string]map[string][]Brush

// ColorMode selects how records are colored.
type ColorMode int8

// Data color modes.
const (
	ConstantColor    ColorMode = iota // one position of the color scale
	AttributeColor                    // normalized value on an axis
	ProbabilityColor                  // probability of the active label
)

// DataColorMode is a color mode with its parameter.
type DataColorMode struct {
	Mode      ColorMode
	Value     float32 // scale position for ConstantColor
	Attribute string  // axis key for AttributeColor
}

type labelUpdate struct {
	color     *colors.Color
	hasColor  bool
	bounds    *[2]float32
	hasBounds bool
	easing    *selection.FadingType
}

// Transaction is a batch of state changes, applied in one step by the event
// loop. Create it with NewTransaction.
type Transaction struct {
	removeAxes   *hashset.Set    // of string
	addAxes      *arraylist.List // of axisAddition
	order        []string
	background   *colors.Color
	brush        *colors.Color
	unselected   *colors.Color
	colorScale   *colors.Scale
	colorMode    *DataColorMode
	colorBar     *bool
	removeLabels *hashset.Set    // of string
	addLabels    *arraylist.List // of *labelAddition
	labelUpdates map[string]*labelUpdate
	activeLabel  *string
	brushes      Brushes
	mode         *action.InteractionMode
	debug        *DebugOptions
}

type axisAddition struct {
	key  string
	args *axis.Args
}

type labelAddition struct {
	id     string
	color  *colors.Color
	bounds *[2]float32
	easing *selection.FadingType
}

// IsEmpty is true if the transaction changes nothing.
func (tx *Transaction) IsEmpty() bool {
	return tx.removeAxes.Empty() && tx.addAxes.Empty() && tx.order == nil &&
		tx.background == nil && tx.brush == nil && tx.unselected == nil &&
		tx.colorScale == nil && tx.colorMode == nil && tx.colorBar == nil &&
		tx.removeLabels.Empty() && tx.addLabels.Empty() && len(tx.labelUpdates) == 0 &&
		tx.activeLabel == nil && tx.brushes == nil && tx.mode == nil && tx.debug == nil
}

// Builder collects the operations of a transaction. Operations are checked
// when added; the first error sticks and is returned by Build.
type Builder struct {
	tx  *Transaction
	err error
}

// NewTransaction starts an empty transaction.
func NewTransaction() *Builder {
	return &Builder{tx: &Transaction{
		removeAxes:   hashset.New(),
		addAxes:      arraylist.New(),
		removeLabels: hashset.New(),
		addLabels:    arraylist.New(),
		labelUpdates: make(map[string]*labelUpdate),
	}}
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Build returns the transaction or the first error of its operations.
func (b *Builder) Build() (*Transaction, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

// AddAxis adds an axis under key.
func (b *Builder) AddAxis(key string, args *axis.Args) *Builder {
	if key == "" {
		return b.fail(fmt.Errorf("%w: empty axis key", ErrMalformedTransaction))
	}
	if err := args.Validate(); err != nil {
		return b.fail(fmt.Errorf("%w: axis %q: %w", ErrMalformedTransaction, key, err))
	}
	if _, dup := b.tx.addAxes.Find(func(_ int, v interface{}) bool {
		return v.(axisAddition).key == key
	}); dup != nil {
		return b.fail(fmt.Errorf("%w: axis %q added twice", ErrMalformedTransaction, key))
	}
	if b.tx.addAxes.Size() > 0 {
		first, _ := b.tx.addAxes.Get(0)
		if n := first.(axisAddition).args.NumDatums(); n != args.NumDatums() {
			return b.fail(fmt.Errorf("%w: axis %q has %d datums, expected %d",
				ErrMalformedTransaction, key, args.NumDatums(), n))
		}
	}
	b.tx.addAxes.Add(axisAddition{key: key, args: args})
	return b
}

// RemoveAxis removes the axis with key.
func (b *Builder) RemoveAxis(key string) *Builder {
	b.tx.removeAxes.Add(key)
	return b
}

// SetAxisOrder sets the left-to-right order of the visible axes.
func (b *Builder) SetAxisOrder(keys []string) *Builder {
	seen := hashset.New()
	for _, k := range keys {
		if seen.Contains(k) {
			return b.fail(fmt.Errorf("%w: axis %q ordered twice", ErrMalformedTransaction, k))
		}
		seen.Add(k)
	}
	b.tx.order = slices.Clone(keys)
	if b.tx.order == nil {
		b.tx.order = []string{}
	}
	return b
}

func (b *Builder) resolve(q colors.Query, what string) (*colors.Color, bool) {
	c, err := q.Resolve()
	if err != nil {
		b.fail(fmt.Errorf("%w: %s: %w", ErrMalformedTransaction, what, err))
		return nil, false
	}
	return &c, true
}

// SetBackgroundColor sets the color of the background.
func (b *Builder) SetBackgroundColor(q colors.Query) *Builder {
	if c, ok := b.resolve(q, "background color"); ok {
		b.tx.background = c
	}
	return b
}

// SetBrushColor sets the color of the selection lines.
func (b *Builder) SetBrushColor(q colors.Query) *Builder {
	if c, ok := b.resolve(q, "brush color"); ok {
		b.tx.brush = c
	}
	return b
}

// SetUnselectedColor sets the color of unselected records.
func (b *Builder) SetUnselectedColor(q colors.Query) *Builder {
	if c, ok := b.resolve(q, "unselected color"); ok {
		b.tx.unselected = c
	}
	return b
}

// SetColorScale sets the scale records are colored with.
func (b *Builder) SetColorScale(d colors.ScaleDesc) *Builder {
	s, err := d.Scale()
	if err != nil {
		return b.fail(fmt.Errorf("%w: color scale: %w", ErrMalformedTransaction, err))
	}
	b.tx.colorScale = s
	return b
}

// SetDataColorMode sets how records are colored.
func (b *Builder) SetDataColorMode(m DataColorMode) *Builder {
	switch m.Mode {
	case ConstantColor:
		if m.Value < 0 || m.Value > 1 {
			return b.fail(fmt.Errorf("%w: constant color %g outside of [0,1]", ErrMalformedTransaction, m.Value))
		}
	case AttributeColor:
		if m.Attribute == "" {
			return b.fail(fmt.Errorf("%w: color attribute without axis", ErrMalformedTransaction))
		}
	case ProbabilityColor:
	default:
		return b.fail(fmt.Errorf("%w: unknown color mode %d", ErrMalformedTransaction, m.Mode))
	}
	b.tx.colorMode = &m
	return b
}

// SetColorBarVisibility shows or hides the color bar.
func (b *Builder) SetColorBarVisibility(visible bool) *Builder {
	b.tx.colorBar = &visible
	return b
}

func (b *Builder) easing(name string) *selection.FadingType {
	if name == "" {
		return nil
	}
	e := selection.ParseEasing(name)
	return &e
}

func checkBounds(bounds *[2]float32) error {
	if bounds != nil && bounds[0] > bounds[1] {
		return fmt.Errorf("%w: selection bounds %v are inverted", ErrMalformedTransaction, *bounds)
	}
	return nil
}

// AddLabel adds a label. The first label becomes the active one.
func (b *Builder) AddLabel(d LabelDesc) *Builder {
	if d.ID == "" {
		return b.fail(fmt.Errorf("%w: empty label id", ErrMalformedTransaction))
	}
	if _, dup := b.tx.addLabels.Find(func(_ int, v interface{}) bool {
		return v.(*labelAddition).id == d.ID
	}); dup != nil {
		return b.fail(fmt.Errorf("%w: label %q added twice", ErrMalformedTransaction, d.ID))
	}
	if err := checkBounds(d.SelectionBounds); err != nil {
		return b.fail(err)
	}
	add := &labelAddition{id: d.ID, easing: b.easing(d.Easing)}
	if d.SelectionBounds != nil {
		bounds := clampBounds(*d.SelectionBounds)
		add.bounds = &bounds
	}
	if d.Color != nil {
		c, ok := b.resolve(*d.Color, "label color")
		if !ok {
			return b
		}
		add.color = c
	}
	b.tx.addLabels.Add(add)
	return b
}

// RemoveLabel removes the label with id.
func (b *Builder) RemoveLabel(id string) *Builder {
	b.tx.removeLabels.Add(id)
	return b
}

func (b *Builder) labelUpdate(id string) *labelUpdate {
	u, ok := b.tx.labelUpdates[id]
	if !ok {
		u = &labelUpdate{}
		b.tx.labelUpdates[id] = u
	}
	return u
}

// SetLabelColor sets the color of a label. A nil query resets it to the
// brush color.
func (b *Builder) SetLabelColor(id string, q *colors.Query) *Builder {
	var color *colors.Color
	if q != nil {
		c, ok := b.resolve(*q, "label color")
		if !ok {
			return b
		}
		color = c
	}
	u := b.labelUpdate(id)
	u.color, u.hasColor = color, true
	return b
}

// SetLabelSelectionBounds sets the probabilities which select a record. Nil
// bounds reset them to the default.
func (b *Builder) SetLabelSelectionBounds(id string, bounds *[2]float32) *Builder {
	if err := checkBounds(bounds); err != nil {
		return b.fail(err)
	}
	u := b.labelUpdate(id)
	u.bounds, u.hasBounds = nil, true
	if bounds != nil {
		clamped := clampBounds(*bounds)
		u.bounds = &clamped
	}
	return b
}

// SetLabelEasing sets the easing of the fading parts of a label's
// selections. Unknown names fall back to linear.
func (b *Builder) SetLabelEasing(id string, easing string) *Builder {
	e := selection.ParseEasing(easing)
	b.labelUpdate(id).easing = &e
	return b
}

// SwitchActiveLabel makes a label the one pointer gestures edit.
func (b *Builder) SwitchActiveLabel(id string) *Builder {
	b.tx.activeLabel = &id
	return b
}

// SetBrushes replaces the selections of the labels on the axes given.
// Axis and label pairs not mentioned keep their selections.
func (b *Builder) SetBrushes(brushes Brushes) *Builder {
	for key, byLabel := range brushes {
		for id, list := range byLabel {
			for _, br := range list {
				if br.Range[0] > br.Range[1] || br.FadeLeft < 0 || br.FadeRight < 0 {
					return b.fail(fmt.Errorf("%w: brush %v of label %q on axis %q",
						ErrMalformedTransaction, br, id, key))
				}
			}
		}
	}
	if b.tx.brushes == nil {
		b.tx.brushes = make(Brushes)
	}
	for key, byLabel := range brushes {
		if b.tx.brushes[key] == nil {
			b.tx.brushes[key] = make(map[string][]Brush)
		}
		for id, list := range byLabel {
			b.tx.brushes[key][id] = slices.Clone(list)
		}
	}
	return b
}

// SetInteractionMode restricts the pointer gestures.
func (b *Builder) SetInteractionMode(mode action.InteractionMode) *Builder {
	b.tx.mode = &mode
	return b
}

// SetDebugOptions sets the debug outlines.
func (b *Builder) SetDebugOptions(opts DebugOptions) *Builder {
	b.tx.debug = &opts
	return b
}

// selection converts a brush into a selection.
func (br Brush) selection(easing selection.FadingType) *selection.Selection {
	sel := selection.New([2]float32{br.Range[0], 1}, [2]float32{br.Range[1], 1})
	if br.FadeLeft > 0 {
		sel.AddFadingLeft(br.Range[0]-br.FadeLeft, 0, easing)
	}
	if br.FadeRight > 0 {
		sel.AddFadingRight(br.Range[1]+br.FadeRight, 0, easing)
	}
	return sel
}
