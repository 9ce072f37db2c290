package axis

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/npillmayer/parcoords"
)

// ErrInvalidArgs is returned by Args.Validate for inconsistent axis
// descriptors.
var ErrInvalidArgs = errors.New("invalid axis arguments")

// Tick is a tick mark on an axis. An empty Label is replaced by the
// formatted position.
type Tick struct {
	Position float32
	Label    string
}

// Args describes an axis to be constructed. Use NewArgs and the With
// methods to set it up.
type Args struct {
	label        string
	datums       []float32
	allNaN       bool
	dataBounds   [2]float32 // min/max of the datums
	rng          [2]float32
	visibleRange *[2]float32
	ticks        []Tick
	hasTicks     bool
	hidden       bool
	err          error
}

// NewArgs creates axis arguments from a label and the datums of the axis.
// NaN datums are dropped. The range defaults to the min and max of the
// datums, widened by ±0.5 if they are equal, or to (0,1) without datums.
func NewArgs(label string, datums []float32) *Args {
	a := &Args{label: label, datums: make([]float32, 0, len(datums))}
	xs := make([]float64, 0, len(datums))
	for _, d := range datums {
		if math.IsNaN(float64(d)) {
			continue
		}
		a.datums = append(a.datums, d)
		xs = append(xs, float64(d))
	}
	a.allNaN = len(datums) > 0 && len(xs) == 0
	if len(xs) == 0 {
		a.rng = [2]float32{0, 1}
	} else {
		lo, hi := stats.Bounds(xs)
		a.rng = [2]float32{float32(lo), float32(hi)}
		if a.rng[0] == a.rng[1] {
			a.rng[0] -= 0.5
			a.rng[1] += 0.5
		}
	}
	a.dataBounds = a.rng
	return a
}

func checkRange(min, max float32) error {
	if !parcoords.IsFinite(min) || !parcoords.IsFinite(max) {
		return fmt.Errorf("%w: range (%g,%g) is not finite", ErrInvalidArgs, min, max)
	}
	if min >= max {
		return fmt.Errorf("%w: range min %g must be smaller than max %g", ErrInvalidArgs, min, max)
	}
	return nil
}

func (a *Args) fail(err error) *Args {
	if a.err == nil {
		a.err = err
	}
	return a
}

// WithRange sets the data range of the axis. It must contain all datums.
func (a *Args) WithRange(min, max float32) *Args {
	if err := checkRange(min, max); err != nil {
		return a.fail(err)
	}
	if min > a.dataBounds[0] || max < a.dataBounds[1] {
		return a.fail(fmt.Errorf("%w: range (%g,%g) must contain the datums (%g,%g)",
			ErrInvalidArgs, min, max, a.dataBounds[0], a.dataBounds[1]))
	}
	a.rng = [2]float32{min, max}
	if a.visibleRange != nil {
		a.visibleRange[0] = parcoords.Clamp(a.visibleRange[0], min, max)
		a.visibleRange[1] = parcoords.Clamp(a.visibleRange[1], min, max)
	}
	return a
}

// WithVisibleRange sets the visible part of the data range.
func (a *Args) WithVisibleRange(min, max float32) *Args {
	if err := checkRange(min, max); err != nil {
		return a.fail(err)
	}
	if min < a.rng[0] || max > a.rng[1] {
		return a.fail(fmt.Errorf("%w: visible range (%g,%g) outside of range (%g,%g)",
			ErrInvalidArgs, min, max, a.rng[0], a.rng[1]))
	}
	a.visibleRange = &[2]float32{min, max}
	return a
}

// WithTicks sets explicit ticks, given in data units. Ticks outside of the
// visible range are dropped when the axis is built.
func (a *Args) WithTicks(ticks []Tick) *Args {
	a.ticks = ticks
	a.hasTicks = true
	return a
}

// WithHidden creates the axis in hidden state.
func (a *Args) WithHidden(hidden bool) *Args {
	a.hidden = hidden
	return a
}

// Validate returns the first error of the descriptor.
func (a *Args) Validate() error {
	if a.allNaN {
		return fmt.Errorf("%w: axis %q has only NaN datums", ErrInvalidArgs, a.label)
	}
	return a.err
}

// Label returns the axis label.
func (a *Args) Label() string {
	return a.label
}

// NumDatums returns the number of non-NaN datums.
func (a *Args) NumDatums() int {
	return len(a.datums)
}

// Range returns the data range.
func (a *Args) Range() [2]float32 {
	return a.rng
}

// VisibleRange returns the visible range, which defaults to the data range.
func (a *Args) VisibleRange() [2]float32 {
	if a.visibleRange != nil {
		return *a.visibleRange
	}
	return a.rng
}

// Hidden is true if the axis is created in hidden state.
func (a *Args) Hidden() bool {
	return a.hidden
}
