package bsp

import "gonavcsg/common"

// Node owns a partitioning plane, the polygon fragments lying on it, and its
// front/back subtrees. An absent child is a tagged leaf: a nil Front denotes
// empty space, a nil Back denotes solid. Ownership is strictly hierarchical.
type Node struct {
	Plane   Plane
	OnPlane []Polygon
	Front   *Node
	Back    *Node
}

// Tree is a solid represented as a BSP over its boundary polygons. The zero
// tree (nil root) is entirely empty space.
type Tree struct {
	root *Node
	eps  float32
}

// Build constructs a tree from boundary polygons. The splitter choice per
// recursion minimizes the number of straddling polygons, tie-broken by the
// balance of front/back counts, first candidate winning ties. The result
// depends only on input slice order.
func Build(polys []Polygon, eps float32) *Tree {
	t := &Tree{eps: eps}
	if len(polys) > 0 {
		t.root = &Node{}
		t.root.insert(clonePolygons(polys), eps)
	}
	return t
}

// TreeFromBrush builds the solid tree for one convex brush.
func TreeFromBrush(b Brush, eps float32) *Tree {
	return Build(b.Polygons, eps)
}

func pickSplitter(polys []Polygon, eps float32) int {
	if len(polys) <= 1 {
		return 0
	}
	best := 0
	bestSpan, bestSkew := int(^uint(0)>>1), int(^uint(0)>>1)
	for i := range polys {
		plane := polys[i].Plane
		span, front, back := 0, 0, 0
		for j := range polys {
			if j == i {
				continue
			}
			switch classifyPolygon(plane, polys[j], eps) {
			case SideSpanning:
				span++
			case SideFront:
				front++
			case SideBack:
				back++
			}
		}
		skew := front - back
		if skew < 0 {
			skew = -skew
		}
		if span < bestSpan || (span == bestSpan && skew < bestSkew) {
			best, bestSpan, bestSkew = i, span, skew
		}
	}
	return best
}

func classifyPolygon(plane Plane, poly Polygon, eps float32) Side {
	kind := SideOn
	for _, v := range poly.Verts {
		s := plane.ClassifyPoint(v, eps)
		if s == SideOn {
			continue
		}
		if kind == SideOn {
			kind = s
		} else if s != kind {
			return SideSpanning
		}
	}
	return kind
}

// insert adds polygons below this node, growing subtrees where a leaf is
// reached.
func (n *Node) insert(polys []Polygon, eps float32) {
	if len(polys) == 0 {
		return
	}
	if n.Plane.Normal == (common.Vec3{}) {
		// fresh node: adopt a splitter
		i := pickSplitter(polys, eps)
		polys[0], polys[i] = polys[i], polys[0]
		n.Plane = polys[0].Plane
	}
	var front, back []Polygon
	for _, p := range polys {
		n.Plane.SplitPolygon(p, eps, &n.OnPlane, &n.OnPlane, &front, &back)
	}
	if len(front) > 0 {
		if n.Front == nil {
			n.Front = &Node{}
		}
		n.Front.insert(front, eps)
	}
	if len(back) > 0 {
		if n.Back == nil {
			n.Back = &Node{}
		}
		n.Back.insert(back, eps)
	}
}

// invert swaps solid and empty space.
func (n *Node) invert() {
	for i := range n.OnPlane {
		n.OnPlane[i] = n.OnPlane[i].Flipped()
	}
	n.Plane = n.Plane.Flipped()
	if n.Front != nil {
		n.Front.invert()
	}
	if n.Back != nil {
		n.Back.invert()
	}
	n.Front, n.Back = n.Back, n.Front
}

// clipPolygons removes the parts of the given polygons that lie inside this
// solid.
func (n *Node) clipPolygons(polys []Polygon, eps float32) []Polygon {
	var front, back []Polygon
	for _, p := range polys {
		n.Plane.SplitPolygon(p, eps, &front, &back, &front, &back)
	}
	if n.Front != nil {
		front = n.Front.clipPolygons(front, eps)
	}
	if n.Back != nil {
		back = n.Back.clipPolygons(back, eps)
		front = append(front, back...)
	}
	// a nil back child is solid space; fragments there are dropped
	return front
}

// clipTo clips every polygon stored in this tree against the other solid.
func (n *Node) clipTo(other *Node, eps float32) {
	n.OnPlane = other.clipPolygons(n.OnPlane, eps)
	if n.Front != nil {
		n.Front.clipTo(other, eps)
	}
	if n.Back != nil {
		n.Back.clipTo(other, eps)
	}
}

func (n *Node) allPolygons(out []Polygon) []Polygon {
	out = append(out, n.OnPlane...)
	if n.Front != nil {
		out = n.Front.allPolygons(out)
	}
	if n.Back != nil {
		out = n.Back.allPolygons(out)
	}
	return out
}

func (n *Node) clone() *Node {
	if n == nil {
		return nil
	}
	return &Node{
		Plane:   n.Plane,
		OnPlane: clonePolygons(n.OnPlane),
		Front:   n.Front.clone(),
		Back:    n.Back.clone(),
	}
}

// Polygons returns the boundary polygons stored in the tree.
func (t *Tree) Polygons() []Polygon {
	if t.root == nil {
		return nil
	}
	return t.root.allPolygons(nil)
}

// Clone deep-copies the tree.
func (t *Tree) Clone() *Tree {
	return &Tree{root: t.root.clone(), eps: t.eps}
}

// Invert flips solid and empty space in place.
func (t *Tree) Invert() {
	if t.root != nil {
		t.root.invert()
	}
}

// IsEmpty reports whether the tree holds no geometry.
func (t *Tree) IsEmpty() bool {
	return t.root == nil
}

// ClipPolygons returns the parts of polys lying outside this solid.
func (t *Tree) ClipPolygons(polys []Polygon) []Polygon {
	if t.root == nil {
		return clonePolygons(polys)
	}
	return t.root.clipPolygons(clonePolygons(polys), t.eps)
}

// Contains classifies a point against the solid. Points on the boundary
// count as inside.
func (t *Tree) Contains(p common.Vec3) bool {
	return containsPoint(t.root, p, t.eps)
}

func containsPoint(n *Node, p common.Vec3, eps float32) bool {
	if n == nil {
		return false
	}
	d := n.Plane.DistanceTo(p)
	switch {
	case d > eps:
		if n.Front == nil {
			return false
		}
		return containsPoint(n.Front, p, eps)
	case d < -eps:
		if n.Back == nil {
			return true
		}
		return containsPoint(n.Back, p, eps)
	default:
		front := n.Front != nil && containsPoint(n.Front, p, eps)
		back := n.Back == nil || containsPoint(n.Back, p, eps)
		return front || back
	}
}
