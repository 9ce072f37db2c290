package renderer

import (
	"fmt"
	"slices"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/npillmayer/parcoords/event"
	"github.com/npillmayer/parcoords/selection"
)

// Commit applies a transaction. A transaction which does not fit the
// current state is rejected as a whole and nothing changes. Commit must not
// be called while Run is active; use the event queue then.
func (r *Renderer) Commit(tx *Transaction) error {
	if tx == nil || tx.IsEmpty() {
		tracer().Debugf("dropping empty transaction")
		return nil
	}
	if err := r.validate(tx); err != nil {
		return err
	}
	r.apply(tx)
	return nil
}

// validate checks a transaction against the state it will be applied to.
func (r *Renderer) validate(tx *Transaction) error {
	axes := hashset.New()
	visible := hashset.New()
	numDatums := -1
	for ax := range r.axes.All() {
		if tx.removeAxes.Contains(ax.Key()) {
			continue
		}
		axes.Add(ax.Key())
		if !ax.IsHidden() {
			visible.Add(ax.Key())
		}
		numDatums = r.axes.NumDatums()
	}
	for _, v := range tx.removeAxes.Values() {
		if _, ok := r.axes.Axis(v.(string)); !ok {
			return fmt.Errorf("%w: cannot remove %q", ErrUnknownAxis, v)
		}
	}
	it := tx.addAxes.Iterator()
	for it.Next() {
		add := it.Value().(axisAddition)
		if axes.Contains(add.key) {
			return fmt.Errorf("%w: axis %q exists", ErrMalformedTransaction, add.key)
		}
		if numDatums >= 0 && add.args.NumDatums() != numDatums {
			return fmt.Errorf("%w: axis %q has %d datums, expected %d",
				ErrMalformedTransaction, add.key, add.args.NumDatums(), numDatums)
		}
		axes.Add(add.key)
		if !add.args.Hidden() {
			visible.Add(add.key)
		}
	}
	if tx.order != nil {
		if len(tx.order) != visible.Size() || !visible.Contains(toInterfaces(tx.order)...) {
			return fmt.Errorf("%w: order %v does not match the visible axes", ErrMalformedTransaction, tx.order)
		}
	}
	labels := hashset.New()
	for _, l := range r.labels.all() {
		if !tx.removeLabels.Contains(l.ID) {
			labels.Add(l.ID)
		}
	}
	for _, v := range tx.removeLabels.Values() {
		if _, ok := r.labels.index(v.(string)); !ok {
			return fmt.Errorf("%w: cannot remove %q", ErrUnknownLabel, v)
		}
	}
	it = tx.addLabels.Iterator()
	for it.Next() {
		add := it.Value().(*labelAddition)
		if labels.Contains(add.id) {
			return fmt.Errorf("%w: label %q exists", ErrMalformedTransaction, add.id)
		}
		labels.Add(add.id)
	}
	for id := range tx.labelUpdates {
		if !labels.Contains(id) {
			return fmt.Errorf("%w: cannot update %q", ErrUnknownLabel, id)
		}
	}
	if tx.activeLabel != nil && !labels.Contains(*tx.activeLabel) {
		return fmt.Errorf("%w: cannot activate %q", ErrUnknownLabel, *tx.activeLabel)
	}
	for key, byLabel := range tx.brushes {
		if !axes.Contains(key) {
			return fmt.Errorf("%w: brushes for %q", ErrUnknownAxis, key)
		}
		for id := range byLabel {
			if !labels.Contains(id) {
				return fmt.Errorf("%w: brushes for %q", ErrUnknownLabel, id)
			}
		}
	}
	if tx.colorMode != nil && tx.colorMode.Mode == AttributeColor && !axes.Contains(tx.colorMode.Attribute) {
		return fmt.Errorf("%w: color attribute %q", ErrUnknownAxis, tx.colorMode.Attribute)
	}
	return nil
}

func toInterfaces(keys []string) []interface{} {
	values := make([]interface{}, len(keys))
	for i, k := range keys {
		values[i] = k
	}
	return values
}

// apply changes the state in a fixed order: removals, additions, axis
// order, colors, color bar visibility, label edits, the active label,
// brushes, interaction mode and debug options.
func (r *Renderer) apply(tx *Transaction) {
	evt := event.TransactionCommit
	active, hadActive := r.labels.activeLabel()
	structural := !tx.removeAxes.Empty() || !tx.addAxes.Empty() ||
		!tx.removeLabels.Empty() || !tx.addLabels.Empty()
	if structural && r.action != nil {
		tracer().Debugf("transaction cancels %s", r.action)
		r.action = nil
	}
	// removals
	for _, v := range sortedStrings(tx.removeAxes) {
		r.axes.RemoveAxis(v)
		evt.Signal(event.AxesChange)
	}
	for _, id := range sortedStrings(tx.removeLabels) {
		i, _ := r.labels.remove(id)
		r.axes.RemoveLabel(i)
		evt.Signal(event.LabelsChange)
	}
	// additions
	it := tx.addAxes.Iterator()
	for it.Next() {
		add := it.Value().(axisAddition)
		r.axes.ConstructAxis(add.key, add.args)
		evt.Signal(event.AxesChange)
	}
	it = tx.addLabels.Iterator()
	for it.Next() {
		add := it.Value().(*labelAddition)
		l := &Label{
			ID:              add.id,
			Color:           add.color,
			SelectionBounds: r.cfg.SelectionBounds,
			Easing:          r.cfg.Easing,
		}
		if add.bounds != nil {
			l.SelectionBounds = *add.bounds
		}
		if add.easing != nil {
			l.Easing = *add.easing
		}
		r.axes.PushLabel()
		r.labels.add(l)
		evt.Signal(event.LabelsChange)
	}
	if tx.order != nil {
		r.axes.SetOrder(tx.order)
		evt.Signal(event.AxesChange)
	}
	// colors
	if tx.background != nil {
		r.background = *tx.background
		evt.Signal(event.ColorsChange)
	}
	if tx.brush != nil {
		r.brush = *tx.brush
		evt.Signal(event.ColorsChange)
	}
	if tx.unselected != nil {
		r.unselected = *tx.unselected
		evt.Signal(event.ColorsChange)
	}
	if tx.colorScale != nil {
		r.colorScale = tx.colorScale
		evt.Signal(event.ColorsChange)
	}
	if tx.colorMode != nil {
		r.colorMode = *tx.colorMode
		evt.SignalMany(event.ColorsChange, event.ColorBarChange)
	}
	if tx.colorBar != nil {
		r.colorBar.SetVisible(*tx.colorBar)
		evt.Signal(event.ColorBarChange)
	}
	// label edits
	for id, u := range tx.labelUpdates {
		i, _ := r.labels.index(id)
		l := r.labels.at(i)
		if u.hasColor {
			l.Color = u.color
		}
		if u.hasBounds {
			l.SelectionBounds = r.cfg.SelectionBounds
			if u.bounds != nil {
				l.SelectionBounds = *u.bounds
			}
		}
		if u.easing != nil && *u.easing != l.Easing {
			l.Easing = *u.easing
			for ax := range r.axes.All() {
				ax.CurveBuilder(i).SetFadingType(l.Easing)
				ax.RebuildCurve(i)
			}
		}
		evt.Signal(event.LabelsChange)
	}
	if tx.activeLabel != nil {
		r.labels.setActive(*tx.activeLabel)
	}
	if now, hasActive := r.labels.activeLabel(); hasActive != hadActive || now != active {
		evt.Signal(event.ActiveLabelChange)
	}
	if tx.brushes != nil {
		r.applyBrushes(tx.brushes)
		evt.Signal(event.BrushesChange)
	}
	if tx.mode != nil {
		r.mode = *tx.mode
		evt.Signal(event.InteractionModeChange)
	}
	if tx.debug != nil {
		r.debug = *tx.debug
		evt.Signal(event.DebugOptionsChange)
	}
	if evt.SignaledAny(event.AxesChange, event.LabelsChange, event.ActiveLabelChange, event.ColorBarChange) {
		r.updateColorBar()
		r.layout()
	}
	r.events.Signal(evt)
	tracer().Infof("committed transaction: %s", evt)
}

func sortedStrings(set *hashset.Set) []string {
	keys := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		keys = append(keys, v.(string))
	}
	slices.Sort(keys)
	return keys
}

func (r *Renderer) applyBrushes(brushes Brushes) {
	for key, byLabel := range brushes {
		ax, _ := r.axes.Axis(key)
		for id, list := range byLabel {
			i, _ := r.labels.index(id)
			l := r.labels.at(i)
			cb := selection.NewCurveBuilder()
			for _, br := range list {
				cb.AddSelection(br.selection(l.Easing))
			}
			ax.SetCurveBuilder(i, cb)
			tracer().Debugf("set %d brushes of %s on axis %s", len(list), l, key)
		}
	}
}

// Brushes returns the selections of every label on every axis.
func (r *Renderer) Brushes() Brushes {
	brushes := make(Brushes)
	for ax := range r.axes.All() {
		for i, l := range r.labels.all() {
			cb := ax.CurveBuilder(i)
			if cb.Len() == 0 {
				continue
			}
			if brushes[ax.Key()] == nil {
				brushes[ax.Key()] = make(map[string][]Brush)
			}
			for _, sel := range cb.Selections() {
				brushes[ax.Key()][l.ID] = append(brushes[ax.Key()][l.ID], brushOf(sel))
			}
		}
	}
	return brushes
}

// brushOf describes a selection as a brush.
func brushOf(sel *selection.Selection) Brush {
	var br Brush
	lo, hi := sel.LowerBound(0), sel.UpperBound(sel.NumSegments()-1)
	for i := 0; i < sel.NumSegments(); i++ {
		if p, ok := sel.Segment(i).(selection.Primary); ok {
			br.Range = p.Range
		}
	}
	br.FadeLeft = br.Range[0] - lo
	br.FadeRight = hi - br.Range[1]
	return br
}
