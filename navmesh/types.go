package navmesh

import (
	"gonavcsg/bsp"
	"gonavcsg/common"
)

// PolyID identifies a polygon within one generated navmesh. IDs are stable
// for the lifetime of that mesh and invalidated wholesale on regeneration.
type PolyID int32

const NoPoly PolyID = -1

// LinkID indexes into the mesh's link arena.
type LinkID int32

const NoLink LinkID = -1

type LinkKind uint8

const (
	// LinkWalk is a regular portal: a shared coplanar border.
	LinkWalk LinkKind = iota
	// LinkStep connects vertically offset but horizontally adjacent
	// surfaces.
	LinkStep
)

func (k LinkKind) String() string {
	if k == LinkStep {
		return "step"
	}
	return "walk"
}

// Edge is a boundary segment in world space.
type Edge struct {
	A, B common.Vec3
}

func (e Edge) Midpoint() common.Vec3 {
	return e.A.Add(e.B).Mul(0.5)
}

// Reversed swaps the endpoint order, mirroring the shared-boundary
// direction for the opposite traversal.
func (e Edge) Reversed() Edge {
	return Edge{A: e.B, B: e.A}
}

// ClipRay intersects a ground-projected ray with the edge and clamps the hit
// to the segment. Used to pick A* entry points and to validate funnel
// crossings.
func (e Edge) ClipRay(origin, dir common.Vec3) (common.Vec3, bool) {
	ed := e.B.Sub(e.A)
	n := ed.Cross(common.Up)
	denom := dir.Dot(n)
	if common.Abs(denom) < 1e-7 {
		return common.Vec3{}, false
	}
	t := e.A.Sub(origin).Dot(n) / denom
	if t < 0 {
		return common.Vec3{}, false
	}
	hit := origin.Add(dir.Mul(t))
	l := ed.Dot(ed)
	if l < 1e-12 {
		return e.A, true
	}
	u := common.Clamp(hit.Sub(e.A).Dot(ed)/l, 0, 1)
	return e.A.Add(ed.Mul(u)), true
}

// Link joins two polygons across a boundary. Links are stored once per
// traversal direction: the mirror of every link is present with swapped
// endpoints and negated height delta.
type Link struct {
	From PolyID
	To   PolyID
	Kind LinkKind
	// HeightDelta is the vertical offset of the transition, positive when
	// traversal steps up. Always zero for walk portals. Step-down is
	// unconditionally traversable; step-up is gated at query time against
	// the agent's climb capability.
	HeightDelta float32
	// SourceEdge and DestEdge are the transition segments on the departing
	// and arriving surfaces. They coincide for walk portals.
	SourceEdge Edge
	DestEdge   Edge
}

// Reverse mirrors the link for the opposite traversal direction.
func (l Link) Reverse() Link {
	return Link{
		From:        l.To,
		To:          l.From,
		Kind:        l.Kind,
		HeightDelta: -l.HeightDelta,
		SourceEdge:  l.DestEdge.Reversed(),
		DestEdge:    l.SourceEdge.Reversed(),
	}
}

// Polygon is one convex walkable surface fragment of a built navmesh.
type Polygon struct {
	ID    PolyID
	Verts []common.Vec3
	Plane bsp.Plane
	// Links holds the outgoing link IDs, walk portals and step links alike.
	Links []LinkID
}

func (p Polygon) Centroid() common.Vec3 {
	var c common.Vec3
	for _, v := range p.Verts {
		c = c.Add(v)
	}
	return c.Mul(1 / float32(len(p.Verts)))
}
