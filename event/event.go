/*
Package event implements the change flags emitted by edits of the plot state.

Flags are bits of a 32-bit value and compose with the usual bit operators.
Bits 0 to 19 are reserved for external events, bits 20 to 31 for internal
ones.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package event

import (
	"fmt"
	"strings"
)

// Event is a set of change flags.
type Event uint32

// None is the empty event set.
const None Event = 0

// External events.
const (
	Resize Event = 1 << iota
	TransactionCommit
	AxesChange
	ColorsChange
	LabelsChange
	ActiveLabelChange
	ColorBarChange
	BrushesChange
	InteractionModeChange
	DebugOptionsChange
)

// Internal events.
const (
	AxisStateChange Event = 1 << (20 + iota)
	AxisPositionChange
	AxisOrderChange
	SelectionsChange
)

const (
	// External is the mask of all bits reserved for external events.
	External Event = 1<<20 - 1
	// Internal is the mask of all bits reserved for internal events.
	Internal = ^External
)

var names = []struct {
	e    Event
	name string
}{
	{Resize, "Resize"},
	{TransactionCommit, "TransactionCommit"},
	{AxesChange, "AxesChange"},
	{ColorsChange, "ColorsChange"},
	{LabelsChange, "LabelsChange"},
	{ActiveLabelChange, "ActiveLabelChange"},
	{ColorBarChange, "ColorBarChange"},
	{BrushesChange, "BrushesChange"},
	{InteractionModeChange, "InteractionModeChange"},
	{DebugOptionsChange, "DebugOptionsChange"},
	{AxisStateChange, "AxisStateChange"},
	{AxisPositionChange, "AxisPositionChange"},
	{AxisOrderChange, "AxisOrderChange"},
	{SelectionsChange, "SelectionsChange"},
}

// IsEmpty is true if no flag is set.
func (e Event) IsEmpty() bool {
	return e == None
}

// HasEvents is true if at least one flag is set.
func (e Event) HasEvents() bool {
	return e != None
}

// Signal sets the flags of other.
func (e *Event) Signal(other Event) {
	*e |= other
}

// SignalMany sets the flags of all events.
func (e *Event) SignalMany(events ...Event) {
	for _, other := range events {
		*e |= other
	}
}

// Clear resets e and returns its previous value.
func (e *Event) Clear() Event {
	prev := *e
	*e = None
	return prev
}

// Signaled is true if any flag of mask is set.
func (e Event) Signaled(mask Event) bool {
	return e&mask != None
}

// SignaledAny is true if any of the masks is signaled.
func (e Event) SignaledAny(masks ...Event) bool {
	for _, m := range masks {
		if e.Signaled(m) {
			return true
		}
	}
	return false
}

// SignaledAll is true if every mask is signaled.
func (e Event) SignaledAll(masks ...Event) bool {
	for _, m := range masks {
		if !e.Signaled(m) {
			return false
		}
	}
	return true
}

func (e Event) String() string {
	if e == None {
		return "None"
	}
	var b strings.Builder
	rest := e
	for _, n := range names {
		if e&n.e == None {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(n.name)
		rest &^= n.e
	}
	if rest != None {
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		fmt.Fprintf(&b, "%#x", uint32(rest))
	}
	return b.String()
}
