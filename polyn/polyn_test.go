package polyn

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestNewPolyn(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, err := New(1, X{1, 2}, X{3, -1})
	assert.NoError(t, err)
	assert.Equal(t, 3, p.Degree())
	assert.Equal(t, 2.0, p.Coeff(1))
	assert.Equal(t, 0.0, p.Coeff(2))
	_, err = New(1, X{0, 2})
	assert.Error(t, err)
	t.Logf("p = %s", p)
}

func TestConstant(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := Constant(0.5)
	c, ok := p.IsConstant()
	assert.True(t, ok)
	assert.Equal(t, 0.5, c)
	assert.Equal(t, 0, p.Degree())
	assert.Empty(t, p.Zeros())
	assert.Equal(t, "0.5", p.String())
	var z Polynomial
	assert.Equal(t, 0, z.Degree())
	assert.Equal(t, 0.0, z.Eval(3))
}

func TestFromCoefficients(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := FromCoefficients(1, 0, -2, 3) // t³ - 2t + 3
	assert.Equal(t, 3, p.Degree())
	assert.Equal(t, []float64{1, 0, -2, 3}, p.Coefficients(3))
	assert.InDelta(t, 2.0, p.Eval(1), 1e-12)
	assert.InDelta(t, 7.0, p.Eval(2), 1e-12)
}

func TestArithmetic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := FromCoefficients(1, 1)  // t + 1
	q := FromCoefficients(1, -1) // t - 1
	r := p.Mul(q)                // t² - 1
	assert.Equal(t, []float64{1, 0, -1}, r.Coefficients(2))
	s := r.Add(p) // t² + t
	assert.Equal(t, []float64{1, 1, 0}, s.Coefficients(2))
	d := s.Sub(s)
	c, isconst := d.IsConstant()
	assert.True(t, isconst)
	assert.Equal(t, 0.0, c)
	assert.Equal(t, []float64{2, 0}, p.Add(q).Coefficients(1))
	assert.Equal(t, []float64{1, 1}, p.Coefficients(1), "operands are not altered")
	assert.Equal(t, "1 + 1t", p.String())
	assert.Equal(t, []float64{3, 0}, p.Scale(1.5).Coefficients(1))
}

func TestDerivative(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := FromCoefficients(2, -3, 1, 5)
	assert.Equal(t, []float64{6, -6, 1}, p.Derivative().Coefficients(2))
}

func TestSubstitute(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := FromCoefficients(1, -2, 0.5, 3)
	q := p.Substitute(0.5, 0.25) // q(s) = p(0.5s + 0.25)
	for _, s := range []float64{0, 0.3, 1, 2} {
		assert.InDelta(t, p.Eval(0.5*s+0.25), q.Eval(s), 1e-12)
	}
}

func TestZeros(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	lin := FromCoefficients(2, -1)
	assert.InDeltaSlice(t, []float64{0.5}, lin.Zeros(), 1e-12)
	quad := FromCoefficients(1, -3, 2) // (t-1)(t-2)
	assert.InDeltaSlice(t, []float64{1, 2}, quad.Zeros(), 1e-12)
	assert.Empty(t, FromCoefficients(1, 0, 1).Zeros())
	double := FromCoefficients(1, -2, 1)
	assert.InDeltaSlice(t, []float64{1}, double.Zeros(), 1e-9)
	// (t-0.1)(t-0.5)(t-0.9)
	c3 := FromCoefficients(1, -0.1).Mul(FromCoefficients(1, -0.5)).
		Mul(FromCoefficients(1, -0.9))
	assert.InDeltaSlice(t, []float64{0.1, 0.5, 0.9}, c3.Zeros(), 1e-9)
	one := FromCoefficients(1, 0, 0, -8) // t³ - 8
	assert.InDeltaSlice(t, []float64{2}, one.Zeros(), 1e-9)
	assert.InDeltaSlice(t, []float64{0.5}, c3.ZerosIn(0.2, 0.8), 1e-9)
}

func TestZerosHighDegreePanics(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic for degree 4")
		}
	}()
	FromCoefficients(1, 0, 0, 0, 1).Zeros()
}
