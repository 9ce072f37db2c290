// Package polyn is for arithmetic with univariate polynomials of small degree.
/*
BSD 3-Clause License

Copyright (c) 2017–21, Norbert Pillmayer.

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
   list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
   this list of conditions and the following disclaimer in the documentation
   and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
   contributors may be used to endorse or promote products derived from
   this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package polyn

import (
	"fmt"
	"math"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'polyn'
func tracer() tracing.Trace {
	return tracing.Select("polyn")
}

// coefficients with absolute value ≤ epsilon are dropped
const epsilon = 1e-9

func is0(n float64) bool {
	return math.Abs(n) <= epsilon
}

// X is a term C⋅tᴵ with I ≥ 1, for quick construction of polynomials.
type X struct {
	I int     // exponent
	C float64 // coefficient
}

// Polynomial is a univariate polynomial
//
//	a₀ + a₁t + a₂t² + … + aₙtⁿ
//
// Non-zero coefficients are held in a tree map keyed by exponent. The
// constant term is always present, so the zero polynomial is {0: 0}.
// Operations return new polynomials and leave their operands alone.
type Polynomial struct {
	terms *treemap.Map // int → float64
}

func zero() Polynomial {
	p := Polynomial{terms: treemap.NewWithIntComparator()}
	p.terms.Put(0, 0.0)
	return p
}

// Constant returns the polynomial p(t) = c.
func Constant(c float64) Polynomial {
	return zero().with(0, c)
}

// New creates c + Σ tms. Terms with exponent < 1 are skipped and reported
// as an error:
//
//	polyn.New(8, polyn.X{2, 5}, polyn.X{1, 0.5})  // 8 + 0.5t + 5t²
func New(c float64, tms ...X) (Polynomial, error) {
	p := Constant(c)
	var err error
	for _, x := range tms {
		if x.I < 1 {
			err = fmt.Errorf("polynomial term %g⋅t^%d: exponent must be ≥ 1", x.C, x.I)
			continue
		}
		p = p.with(x.I, p.Coeff(x.I)+x.C)
	}
	return p, err
}

// FromCoefficients creates a polynomial from coefficients ordered by
// descending exponent:
//
//	FromCoefficients(a, b, c, d) = a⋅t³ + b⋅t² + c⋅t + d
func FromCoefficients(coeffs ...float64) Polynomial {
	p := zero()
	n := len(coeffs) - 1
	for i, c := range coeffs {
		p.put(n-i, c)
	}
	return p
}

// put sets a coefficient in place, dropping it if it is 0.
func (p Polynomial) put(i int, c float64) {
	if is0(c) {
		if i == 0 {
			p.terms.Put(0, 0.0)
		} else {
			p.terms.Remove(i)
		}
		return
	}
	p.terms.Put(i, c)
}

// with returns a copy of p with coefficient aᵢ = c.
func (p Polynomial) with(i int, c float64) Polynomial {
	q := p.clone()
	q.put(i, c)
	return q
}

func (p Polynomial) clone() Polynomial {
	q := zero()
	p.each(func(i int, c float64) { q.terms.Put(i, c) })
	return q
}

// each calls f for every stored term in ascending exponent order.
func (p Polynomial) each(f func(i int, c float64)) {
	if p.terms == nil {
		return
	}
	it := p.terms.Iterator()
	for it.Next() {
		f(it.Key().(int), it.Value().(float64))
	}
}

// Coeff returns the coefficient aᵢ.
func (p Polynomial) Coeff(i int) float64 {
	if p.terms == nil {
		return 0
	}
	if c, ok := p.terms.Get(i); ok {
		return c.(float64)
	}
	return 0
}

// Coefficients returns a₀ … aₙ ordered by descending exponent, the inverse
// of FromCoefficients.
func (p Polynomial) Coefficients(n int) []float64 {
	c := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		c[n-i] = p.Coeff(i)
	}
	return c
}

// Degree returns the highest exponent with a non-zero coefficient, 0 for
// constants.
func (p Polynomial) Degree() int {
	if p.terms == nil {
		return 0
	}
	if k, _ := p.terms.Max(); k != nil {
		return k.(int)
	}
	return 0
}

// IsConstant returns a₀ and whether p has no other terms.
func (p Polynomial) IsConstant() (float64, bool) {
	return p.Coeff(0), p.Degree() == 0
}

// Add returns p + q.
func (p Polynomial) Add(q Polynomial) Polynomial {
	r := p.clone()
	q.each(func(i int, c float64) { r.put(i, r.Coeff(i)+c) })
	return r
}

// Sub returns p − q.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	return p.Add(q.Scale(-1))
}

// Mul returns p⋅q.
func (p Polynomial) Mul(q Polynomial) Polynomial {
	r := zero()
	p.each(func(i int, a float64) {
		q.each(func(j int, b float64) {
			r.put(i+j, r.Coeff(i+j)+a*b)
		})
	})
	return r
}

// Scale returns c⋅p.
func (p Polynomial) Scale(c float64) Polynomial {
	r := zero()
	p.each(func(i int, a float64) { r.put(i, c*a) })
	return r
}

// Substitute returns q(t) = p(scale⋅t + shift).
func (p Polynomial) Substitute(scale, shift float64) Polynomial {
	lin := FromCoefficients(scale, shift)
	q := zero()
	for k := p.Degree(); k >= 0; k-- {
		q = q.Mul(lin).Add(Constant(p.Coeff(k)))
	}
	tracer().Debugf("substitute %g⋅t%+g in %s = %s", scale, shift, p, q)
	return q
}

// Derivative returns dp/dt.
func (p Polynomial) Derivative() Polynomial {
	d := zero()
	p.each(func(i int, c float64) {
		if i > 0 {
			d.put(i-1, float64(i)*c)
		}
	})
	return d
}

// Eval evaluates p at t.
func (p Polynomial) Eval(t float64) float64 {
	r := 0.0
	for k := p.Degree(); k >= 0; k-- {
		r = r*t + p.Coeff(k)
	}
	return r
}

// String prints the terms in ascending order, e.g. "1 - 2t + 0.5t^3".
func (p Polynomial) String() string {
	var sb strings.Builder
	p.each(func(i int, c float64) {
		switch {
		case i == 0:
			fmt.Fprintf(&sb, "%g", c)
		case c < 0:
			fmt.Fprintf(&sb, " - %g", -c)
		default:
			fmt.Fprintf(&sb, " + %g", c)
		}
		switch {
		case i == 1:
			sb.WriteString("t")
		case i > 1:
			fmt.Fprintf(&sb, "t^%d", i)
		}
	})
	if sb.Len() == 0 {
		return "0"
	}
	return sb.String()
}
