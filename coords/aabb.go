package coords

import "fmt"

// Aabb is an axis-aligned bounding box in space S. Start is the corner which
// is smaller in both components, in the ordering of S.
type Aabb[S Space] struct {
	start, end Position[S]
}

// Relation describes how a bounding box relates to another one.
type Relation int8

// Relations between bounding boxes.
const (
	Disjoint  Relation = iota // no common points
	Equal                     // all points shared
	Intersect                 // exactly one corner of the box lies inside the other
	Contained                 // both corners of the box lie inside the other
)

func (r Relation) String() string {
	switch r {
	case Disjoint:
		return "Disjoint"
	case Equal:
		return "Equal"
	case Intersect:
		return "Intersect"
	case Contained:
		return "Contained"
	}
	return fmt.Sprintf("Relation(%d)", int8(r))
}

// NewAabb creates a bounding box from two corners.
func NewAabb[S Space](start, end Position[S]) Aabb[S] {
	return Aabb[S]{start: start, end: end}
}

// String is a debug Stringer for bounding boxes.
func (b Aabb[S]) String() string {
	return fmt.Sprintf("[%v..%v]", b.start, b.end)
}

// Start returns the start corner.
func (b Aabb[S]) Start() Position[S] { return b.start }

// End returns the end corner.
func (b Aabb[S]) End() Position[S] { return b.end }

// Size returns end − start.
func (b Aabb[S]) Size() Offset[S] {
	return b.end.Sub(b.start)
}

// IsDegenerate is true if at least one side has a length ≤ 0.
func (b Aabb[S]) IsDegenerate() bool {
	for i := range Components {
		if c, ok := b.start.CmpComponent(b.end, i); !ok || c >= 0 {
			return true
		}
	}
	return false
}

// ContainsPoint checks if p lies inside b or on its border.
func (b Aabb[S]) ContainsPoint(p Position[S]) bool {
	for i := range Components {
		c, ok := b.start.CmpComponent(p, i)
		if !ok || c > 0 {
			return false
		}
		c, ok = p.CmpComponent(b.end, i)
		if !ok || c > 0 {
			return false
		}
	}
	return true
}

// Relation returns the relation of b to rhs: Equal if both boxes are equal,
// Contained if both corners of b lie in rhs, Intersect if exactly one does,
// Disjoint otherwise.
func (b Aabb[S]) Relation(rhs Aabb[S]) Relation {
	if b == rhs {
		return Equal
	}
	startIn := rhs.ContainsPoint(b.start)
	endIn := rhs.ContainsPoint(b.end)
	if startIn && endIn {
		return Contained
	} else if startIn || endIn {
		return Intersect
	}
	return Disjoint
}

// Overlaps is true if b and rhs share at least one point.
// Unlike Relation it also detects boxes crossing each other without any
// corner inside the other one.
func (b Aabb[S]) Overlaps(rhs Aabb[S]) bool {
	for i := range Components {
		if c, ok := b.end.CmpComponent(rhs.start, i); !ok || c < 0 {
			return false
		}
		if c, ok := rhs.end.CmpComponent(b.start, i); !ok || c < 0 {
			return false
		}
	}
	return true
}

// Union returns the smallest box containing b and rhs.
func (b Aabb[S]) Union(rhs Aabb[S]) Aabb[S] {
	u := b
	for i := range Components {
		if c, _ := rhs.start.CmpComponent(u.start, i); c < 0 {
			u.start.SetComponent(i, rhs.start.Component(i))
		}
		if c, _ := rhs.end.CmpComponent(u.end, i); c > 0 {
			u.end.SetComponent(i, rhs.end.Component(i))
		}
	}
	return u
}
