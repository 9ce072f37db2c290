package coords

import (
	"fmt"

	"github.com/npillmayer/parcoords"
)

// AxisLocalYScale is the height of the interior band of local space, which
// is centered vertically in world space.
const AxisLocalYScale float32 = 0.8

// Transformer maps positions, offsets and bounding boxes from space From to
// space To. Positions use the full affine transform; offsets use a separate
// matrix, usually the linear part of the position transform.
type Transformer[From, To Space] struct {
	pos AT
	off AT
}

// NewTransformer creates a transformer from an affine transform for
// positions and one for offsets.
func NewTransformer[From, To Space](pos, off AT) Transformer[From, To] {
	return Transformer[From, To]{pos: pos, off: off}
}

// String is a debug Stringer for transformers.
func (t Transformer[From, To]) String() string {
	return fmt.Sprintf("%s→%s %v", spaceName[From](), spaceName[To](), t.pos)
}

// Position transforms a position.
func (t Transformer[From, To]) Position(p Position[From]) Position[To] {
	x, y := t.pos.Apply(p.X, p.Y)
	return Position[To]{X: x, Y: y}
}

// Offset transforms an offset.
func (t Transformer[From, To]) Offset(o Offset[From]) Offset[To] {
	x, y := t.off.Apply(o.X, o.Y)
	return Offset[To]{X: x, Y: y}
}

// Aabb transforms a bounding box corner by corner.
func (t Transformer[From, To]) Aabb(b Aabb[From]) Aabb[To] {
	return Aabb[To]{start: t.Position(b.start), end: t.Position(b.end)}
}

// Inverse returns the transformer for the opposite direction.
func (t Transformer[From, To]) Inverse() Transformer[To, From] {
	return Transformer[To, From]{pos: t.pos.Inverse(), off: t.off.Inverse()}
}

// Compose chains two transformers: first t1, then t2.
func Compose[A, B, C Space](t1 Transformer[A, B], t2 Transformer[B, C]) Transformer[A, C] {
	return Transformer[A, C]{pos: t1.pos.Combine(t2.pos), off: t1.off.Combine(t2.off)}
}

// ScreenToView flips y for a view of the given height: y' = (height−1) − y.
// Offsets pass through unchanged.
func ScreenToView(height float32) Transformer[Screen, View] {
	pos := Scaling(1, -1).Combine(Translation(0, float64(height)-1))
	return Transformer[Screen, View]{pos: pos, off: Identity()}
}

// ViewToWorld scales x by 1/r with r = (viewWidth−1)/(worldWidth−1) and y by
// 1/(viewHeight−1). A world width ≤ 1 is treated as if worldWidth−1 = 1.
func ViewToWorld(viewWidth, viewHeight, worldWidth float32) Transformer[View, World] {
	den := float64(worldWidth) - 1
	if den <= 0 {
		tracer().Debugf("view→world: degenerate world width %g", worldWidth)
		den = 1
	}
	r := (float64(viewWidth) - 1) / den
	h := float64(viewHeight) - 1
	if r == 0 || h == 0 {
		panic(fmt.Sprintf("view→world: degenerate view size %gx%g", viewWidth, viewHeight))
	}
	m := Scaling(1/r, 1/h)
	return Transformer[View, World]{pos: m, off: m}
}

// WorldToLocal maps world space to the local space of an axis whose local
// origin sits at world x = originX. Local y is the world y inverse-lerped
// into the band [(1−yScale)/2, 1−(1−yScale)/2]. Offsets scale y by 1/yScale.
func WorldToLocal(originX, yScale float32) Transformer[World, Local] {
	lo := float64(1-yScale) / 2
	hi := 1 - lo
	s := 1 / (hi - lo)
	pos := Translation(-float64(originX), -lo).Combine(Scaling(1, s))
	return Transformer[World, Local]{pos: pos, off: pos.Linear()}
}

// AxisWorldToLocal maps world space to the local space of an axis centered
// at world x = worldOffset, using AxisLocalYScale: world (o+0.5, 0.1) maps
// to local (0.5, 0) for o = worldOffset − 0.5.
func AxisWorldToLocal(worldOffset float32) Transformer[World, Local] {
	return WorldToLocal(worldOffset-0.5, AxisLocalYScale)
}

// LocalBand returns the world y range occupied by local y ∈ [0,1].
func LocalBand(yScale float32) [2]float32 {
	lo := (1 - yScale) / 2
	return [2]float32{lo, parcoords.Lerp(lo, 1-lo, 1)}
}
