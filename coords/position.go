package coords

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/npillmayer/parcoords"
)

// Components is the number of components of positions and offsets.
const Components = 2

// --- Position --------------------------------------------------------------

// Position is a point in space S.
type Position[S Space] struct {
	X, Y float32
}

// Pos creates a position in space S.
func Pos[S Space](x, y float32) Position[S] {
	return Position[S]{X: x, Y: y}
}

// String is a debug Stringer for positions.
func (p Position[S]) String() string {
	return fmt.Sprintf("%s(%g,%g)", spaceName[S](), p.X, p.Y)
}

// Sub returns the offset p − q.
func (p Position[S]) Sub(q Position[S]) Offset[S] {
	return Offset[S]{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add shifts p by o.
func (p Position[S]) Add(o Offset[S]) Position[S] {
	return Position[S]{X: p.X + o.X, Y: p.Y + o.Y}
}

// SubOffset shifts p by −o.
func (p Position[S]) SubOffset(o Offset[S]) Position[S] {
	return Position[S]{X: p.X - o.X, Y: p.Y - o.Y}
}

// Lerp interpolates between p and q.
func (p Position[S]) Lerp(q Position[S], t float32) Position[S] {
	return Position[S]{X: parcoords.Lerp(p.X, q.X, t), Y: parcoords.Lerp(p.Y, q.Y, t)}
}

// Equal compares two positions within parcoords.Precision.
func (p Position[S]) Equal(q Position[S]) bool {
	return parcoords.Equal(p.X, q.X) && parcoords.Equal(p.Y, q.Y)
}

// Component returns the component at index i (0 = x, 1 = y).
// It panics if i is out of range.
func (p Position[S]) Component(i int) float32 {
	switch i {
	case 0:
		return p.X
	case 1:
		return p.Y
	}
	panic(fmt.Sprintf("position component index %d out of range", i))
}

// SetComponent sets the component at index i. It panics if i is out of range.
func (p *Position[S]) SetComponent(i int, v float32) {
	switch i {
	case 0:
		p.X = v
	case 1:
		p.Y = v
	default:
		panic(fmt.Sprintf("position component index %d out of range", i))
	}
}

// CmpComponent compares component i of p and q in the ordering of space S:
// in screen space smaller y means "higher up", so the y ordering is reversed.
// The result is −1, 0 or +1; ok is false if one of the values is NaN.
// It panics if i is out of range.
func (p Position[S]) CmpComponent(q Position[S], i int) (cmp int, ok bool) {
	a, b := p.Component(i), q.Component(i)
	if i == 1 && yInverted[S]() {
		a, b = b, a
	}
	return compare(a, b)
}

func compare(a, b float32) (int, bool) {
	if math32.IsNaN(a) || math32.IsNaN(b) {
		return 0, false
	}
	if a < b {
		return -1, true
	} else if a > b {
		return 1, true
	}
	return 0, true
}

// --- Offset ----------------------------------------------------------------

// Offset is a difference between two positions in space S.
type Offset[S Space] struct {
	X, Y float32
}

// Off creates an offset in space S.
func Off[S Space](x, y float32) Offset[S] {
	return Offset[S]{X: x, Y: y}
}

// AxisOffset creates an offset of length l along component i.
func AxisOffset[S Space](i int, l Length[S]) Offset[S] {
	var o Offset[S]
	o.SetComponent(i, l.L)
	return o
}

// String is a debug Stringer for offsets.
func (o Offset[S]) String() string {
	return fmt.Sprintf("%s<%g,%g>", spaceName[S](), o.X, o.Y)
}

// Add returns o + v.
func (o Offset[S]) Add(v Offset[S]) Offset[S] {
	return Offset[S]{X: o.X + v.X, Y: o.Y + v.Y}
}

// Sub returns o − v.
func (o Offset[S]) Sub(v Offset[S]) Offset[S] {
	return Offset[S]{X: o.X - v.X, Y: o.Y - v.Y}
}

// Neg returns −o.
func (o Offset[S]) Neg() Offset[S] {
	return Offset[S]{X: -o.X, Y: -o.Y}
}

// Scale multiplies both components by l.
func (o Offset[S]) Scale(l Length[S]) Offset[S] {
	return Offset[S]{X: o.X * l.L, Y: o.Y * l.L}
}

// Div divides both components by l.
func (o Offset[S]) Div(l Length[S]) Offset[S] {
	return Offset[S]{X: o.X / l.L, Y: o.Y / l.L}
}

// Norm is the Euclidean length of o.
func (o Offset[S]) Norm() Length[S] {
	return Length[S]{L: math32.Hypot(o.X, o.Y)}
}

// Lerp interpolates between o and v.
func (o Offset[S]) Lerp(v Offset[S], t float32) Offset[S] {
	return Offset[S]{X: parcoords.Lerp(o.X, v.X, t), Y: parcoords.Lerp(o.Y, v.Y, t)}
}

// Component returns the component at index i. It panics if i is out of range.
func (o Offset[S]) Component(i int) float32 {
	switch i {
	case 0:
		return o.X
	case 1:
		return o.Y
	}
	panic(fmt.Sprintf("offset component index %d out of range", i))
}

// SetComponent sets the component at index i. It panics if i is out of range.
func (o *Offset[S]) SetComponent(i int, v float32) {
	switch i {
	case 0:
		o.X = v
	case 1:
		o.Y = v
	default:
		panic(fmt.Sprintf("offset component index %d out of range", i))
	}
}

// CmpComponent compares component i of o and v, reversing y in screen space.
func (o Offset[S]) CmpComponent(v Offset[S], i int) (cmp int, ok bool) {
	a, b := o.Component(i), v.Component(i)
	if i == 1 && yInverted[S]() {
		a, b = b, a
	}
	return compare(a, b)
}

// --- Length ----------------------------------------------------------------

// Length is a scalar distance in space S.
type Length[S Space] struct {
	L float32
}

// Len creates a length in space S.
func Len[S Space](l float32) Length[S] {
	return Length[S]{L: l}
}

// String is a debug Stringer for lengths.
func (l Length[S]) String() string {
	return fmt.Sprintf("%s|%g|", spaceName[S](), l.L)
}

// Add returns l + m.
func (l Length[S]) Add(m Length[S]) Length[S] { return Length[S]{L: l.L + m.L} }

// Sub returns l − m.
func (l Length[S]) Sub(m Length[S]) Length[S] { return Length[S]{L: l.L - m.L} }

// Mul returns l · m.
func (l Length[S]) Mul(m Length[S]) Length[S] { return Length[S]{L: l.L * m.L} }

// Max returns the larger of l and m.
func (l Length[S]) Max(m Length[S]) Length[S] { return Length[S]{L: math32.Max(l.L, m.L)} }

// Lerp interpolates between l and m.
func (l Length[S]) Lerp(m Length[S], t float32) Length[S] {
	return Length[S]{L: parcoords.Lerp(l.L, m.L, t)}
}

// InvLerp returns t such that a.Lerp(b, t) = l.
func (l Length[S]) InvLerp(a, b Length[S]) float32 {
	return parcoords.InvLerp(l.L, a.L, b.L)
}
