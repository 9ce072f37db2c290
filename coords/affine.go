package coords

import (
	"fmt"
	"math"
)

// === Affine Transformations ================================================

// AT is an affine transform, a matrix type used for transforming vectors.
// Computation is done in float64 to keep round trips between spaces stable.
type AT []float64 // a 3x3 matrix, flattened by rows

func newAT() AT {
	return make(AT, 9)
}

func (m AT) get(row, col int) float64 {
	return m[row*3+col]
}

func (m AT) set(row, col int, value float64) {
	m[row*3+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*3 : (row+1)*3]
}

func (m AT) col(col int) []float64 {
	return []float64{m[col], m[3+col], m[6+col]}
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	return m
}

// Translation transform. Translate a point by (dx,dy).
func Translation(dx, dy float64) AT {
	m := Identity()
	m.set(0, 2, dx)
	m.set(1, 2, dy)
	return m
}

// Scaling transform. Scale x by sx and y by sy.
func Scaling(sx, sy float64) AT {
	m := Identity()
	m.set(0, 0, sx)
	m.set(1, 1, sy)
	return m
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	s := fmt.Sprintf("[%g,%g,%g|%g,%g,%g|%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
	return s
}

func dotProd(u, v []float64) float64 {
	return u[0]*v[0] + u[1]*v[1] + u[2]*v[2]
}

// Combine 2 affine transformation to a new one: m is applied first, then n.
// Returns a new transformation without changing the argument(s).
func (m AT) Combine(n AT) AT {
	o := newAT()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			o.set(row, col, dotProd(n.row(row), m.col(col)))
		}
	}
	return o
}

// Linear returns the linear part of m, i.e. m without its translation.
func (m AT) Linear() AT {
	o := append(newAT()[:0], m...)
	o.set(0, 2, 0)
	o.set(1, 2, 0)
	return o
}

// Inverse returns the inverse transform of m. It panics if m is singular.
func (m AT) Inverse() AT {
	a, b, c := m.get(0, 0), m.get(0, 1), m.get(0, 2)
	d, e, f := m.get(1, 0), m.get(1, 1), m.get(1, 2)
	det := a*e - b*d
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		panic(fmt.Sprintf("affine transform %v is not invertible", m))
	}
	o := newAT()
	o.set(0, 0, e/det)
	o.set(0, 1, -b/det)
	o.set(1, 0, -d/det)
	o.set(1, 1, a/det)
	o.set(0, 2, (b*f-c*e)/det)
	o.set(1, 2, (c*d-a*f)/det)
	o.set(2, 2, 1.0)
	return o
}

// Apply transforms the point (x,y) and returns the result.
func (m AT) Apply(x, y float32) (float32, float32) {
	v := []float64{float64(x), float64(y), 1.0}
	return float32(dotProd(m.row(0), v)), float32(dotProd(m.row(1), v))
}
