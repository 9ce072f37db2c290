package selection

import (
	"fmt"

	"github.com/npillmayer/parcoords/spline"
)

// Curve is the weight curve of one axis for one label. It starts out as the
// constant 1 and remembers whether it changed since it was last fetched.
type Curve struct {
	rng     [2]float32
	spline  *spline.Spline
	changed bool
}

// NewCurve creates a constant curve over rng.
func NewCurve(rng [2]float32) *Curve {
	if rng[0] >= rng[1] {
		panic(fmt.Sprintf("invalid curve range %v", rng))
	}
	sp := spline.New(rng)
	sp.Clear(1)
	return &Curve{rng: rng, spline: sp, changed: true}
}

// Spline returns the current spline.
func (c *Curve) Spline() *spline.Spline {
	return c.spline
}

// Range returns the range of the curve.
func (c *Curve) Range() [2]float32 {
	return c.rng
}

// SetCurve replaces the spline. A nil spline resets the curve to the
// constant 1.
func (c *Curve) SetCurve(sp *spline.Spline) {
	if sp == nil {
		c.spline.Clear(1)
	} else {
		sp.SetRange(c.rng)
		c.spline = sp
	}
	c.changed = true
}

// SetRange changes the range of the curve, keeping its values.
func (c *Curve) SetRange(rng [2]float32) {
	if rng[0] >= rng[1] {
		panic(fmt.Sprintf("invalid curve range %v", rng))
	}
	c.rng = rng
	c.spline.SetRange(rng)
	c.changed = true
}

// ChangedCurve returns the spline and true if it changed since the last
// call, and resets the changed flag.
func (c *Curve) ChangedCurve() (*spline.Spline, bool) {
	if !c.changed {
		return nil, false
	}
	c.changed = false
	return c.spline, true
}

// Evaluate returns the weight at x.
func (c *Curve) Evaluate(x float32) float32 {
	return c.spline.Evaluate(x)
}
