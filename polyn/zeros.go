package polyn

import (
	"fmt"
	"math"
	"sort"
)

// Zeros returns the real roots of p in ascending order. Double roots are
// reported once. The zero polynomial and non-zero constants have no roots.
//
// Only polynomials up to degree 3 are supported; Zeros panics for higher
// degrees.
func (p Polynomial) Zeros() []float64 {
	var roots []float64
	switch d := p.Degree(); d {
	case 0:
		return nil
	case 1:
		roots = []float64{-p.Coeff(0) / p.Coeff(1)}
	case 2:
		roots = quadraticRoots(p.Coeff(2), p.Coeff(1), p.Coeff(0))
	case 3:
		roots = cubicRoots(p.Coeff(3), p.Coeff(2),
			p.Coeff(1), p.Coeff(0))
		roots = p.polish(roots)
	default:
		panic(fmt.Sprintf("cannot find zeros of polynomial of degree %d", d))
	}
	return dedupe(roots)
}

// ZerosIn returns the real roots of p inside the closed interval [lo,hi].
func (p Polynomial) ZerosIn(lo, hi float64) []float64 {
	var r []float64
	for _, z := range p.Zeros() {
		if z >= lo-epsilon && z <= hi+epsilon {
			r = append(r, math.Max(lo, math.Min(hi, z)))
		}
	}
	return r
}

// a⋅t² + b⋅t + c, numerically stable form
func quadraticRoots(a, b, c float64) []float64 {
	disc := b*b - 4*a*c
	switch {
	case disc < -epsilon:
		return nil
	case disc <= epsilon:
		return []float64{-b / (2 * a)}
	}
	q := -0.5 * (b + math.Copysign(math.Sqrt(disc), b))
	if q == 0 {
		return []float64{0}
	}
	return []float64{q / a, c / q}
}

// a⋅t³ + b⋅t² + c⋅t + d, Cardano for one real root, trigonometric
// method for three real roots
func cubicRoots(a, b, c, d float64) []float64 {
	A, B, C := b/a, c/a, d/a
	shift := A / 3
	p := B - A*A/3
	q := 2*A*A*A/27 - A*B/3 + C
	D := q*q/4 + p*p*p/27
	var xs []float64
	switch {
	case math.Abs(D) <= 1e-14:
		if math.Abs(p) <= 1e-14 {
			xs = []float64{0}
		} else {
			xs = []float64{3 * q / p, -3 * q / (2 * p)}
		}
	case D > 0:
		sq := math.Sqrt(D)
		xs = []float64{math.Cbrt(-q/2+sq) + math.Cbrt(-q/2-sq)}
	default:
		r := 2 * math.Sqrt(-p/3)
		arg := 3 * q / (2 * p) * math.Sqrt(-3/p)
		phi := math.Acos(math.Max(-1, math.Min(1, arg)))
		xs = make([]float64, 3)
		for k := range 3 {
			xs[k] = r * math.Cos(phi/3-2*math.Pi*float64(k)/3)
		}
	}
	for i := range xs {
		xs[i] -= shift
	}
	return xs
}

// polish improves roots with a few Newton steps.
func (p Polynomial) polish(roots []float64) []float64 {
	dp := p.Derivative()
	for i, z := range roots {
		for range 3 {
			d := dp.Eval(z)
			if is0(d) {
				break
			}
			z -= p.Eval(z) / d
		}
		roots[i] = z
	}
	return roots
}

func dedupe(roots []float64) []float64 {
	sort.Float64s(roots)
	r := roots[:0]
	for i, z := range roots {
		if i > 0 && math.Abs(z-r[len(r)-1]) <= 1e-7 {
			continue
		}
		r = append(r, z)
	}
	return r
}
