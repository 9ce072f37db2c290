package action

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned by ParseInteractionMode for unknown names.
var ErrUnknownMode = errors.New("unknown interaction mode")

// InteractionMode limits what the user may do with the pointer.
type InteractionMode int8

// Interaction modes, from most to least restrictive.
const (
	Disabled InteractionMode = iota
	RestrictedCompatibility
	Compatibility
	Restricted
	Full
)

var modeNames = [...]string{
	Disabled:                "disabled",
	RestrictedCompatibility: "restricted-compatibility",
	Compatibility:           "compatibility",
	Restricted:              "restricted",
	Full:                    "full",
}

func (m InteractionMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("InteractionMode(%d)", int8(m))
	}
	return modeNames[m]
}

// ParseInteractionMode returns the mode with the given name.
func ParseInteractionMode(name string) (InteractionMode, error) {
	for m, n := range modeNames {
		if strings.EqualFold(n, name) {
			return InteractionMode(m), nil
		}
	}
	return Disabled, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// CanStartActions is false for Disabled only.
func (m InteractionMode) CanStartActions() bool {
	return m != Disabled
}

// CanReorderAxes is true if axes may be dragged.
func (m InteractionMode) CanReorderAxes() bool {
	return m == Compatibility || m == Full
}

// CanToggleAxisState is true if clicking an axis label expands or collapses
// the axis.
func (m InteractionMode) CanToggleAxisState() bool {
	return m == Restricted || m == Full
}

// CanEditSelections is true if selections may be created and moved.
func (m InteractionMode) CanEditSelections() bool {
	return m != Disabled
}
