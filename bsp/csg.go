package bsp

// Op selects the boolean operation performed by Combine.
type Op uint8

const (
	OpUnion Op = iota
	OpIntersect
	OpSubtract
)

func (op Op) String() string {
	switch op {
	case OpUnion:
		return "union"
	case OpIntersect:
		return "intersect"
	case OpSubtract:
		return "subtract"
	default:
		return "unknown"
	}
}

// Combine merges two solids. All three operations run through the same merge
// traversal; intersect and subtract are phrased through the complement
// identities A∩B = ¬(¬A∪¬B) and A−B = ¬(¬A∪B). Inputs are left untouched.
func Combine(a, b *Tree, op Op) *Tree {
	eps := a.eps
	if a.IsEmpty() {
		eps = b.eps
	}

	switch {
	case a.IsEmpty() && b.IsEmpty():
		return &Tree{eps: eps}
	case a.IsEmpty():
		if op == OpUnion {
			return b.Clone()
		}
		return &Tree{eps: eps} // nothing to intersect with or subtract from
	case b.IsEmpty():
		if op == OpIntersect {
			return &Tree{eps: eps}
		}
		return a.Clone()
	}

	x, y := a.Clone(), b.Clone()
	switch op {
	case OpUnion:
		return merge(x, y)
	case OpIntersect:
		x.Invert()
		y.Invert()
		r := merge(x, y)
		r.Invert()
		return r
	case OpSubtract:
		x.Invert()
		r := merge(x, y)
		r.Invert()
		return r
	default:
		return merge(x, y)
	}
}

// merge performs the union traversal in place: each tree's polygons are
// clipped to the other solid, coplanar duplicates are removed from the second
// operand, and the surviving polygons of b are inserted into a.
func merge(a, b *Tree) *Tree {
	eps := a.eps
	a.root.clipTo(b.root, eps)
	b.root.clipTo(a.root, eps)
	b.Invert()
	b.root.clipTo(a.root, eps)
	b.Invert()
	a.root.insert(b.Polygons(), eps)
	return a
}
