package bsp

import (
	"fmt"

	"gonavcsg/common"
)

// Polygon is an ordered convex loop of coplanar vertices together with its
// supporting plane. Winding is consistent: the right-hand rule over the loop
// matches the plane normal.
type Polygon struct {
	Verts []common.Vec3
	Plane Plane
}

// NewPolygon validates host-supplied geometry. Zero-area loops, loops with
// fewer than three distinct vertices, and loops whose vertices stray from a
// common plane beyond eps are rejected with ErrDegenerateGeometry.
func NewPolygon(verts []common.Vec3, eps float32) (Polygon, error) {
	if len(verts) < 3 {
		return Polygon{}, fmt.Errorf("polygon with %d vertices: %w", len(verts), ErrDegenerateGeometry)
	}
	plane, ok := newellPlane(verts, eps)
	if !ok {
		return Polygon{}, fmt.Errorf("zero-area polygon: %w", ErrDegenerateGeometry)
	}
	for i, v := range verts {
		if common.Abs(plane.DistanceTo(v)) > eps*4 {
			return Polygon{}, fmt.Errorf("vertex %d off plane by %v: %w", i, plane.DistanceTo(v), ErrDegenerateGeometry)
		}
	}
	for i := range verts {
		if verts[i].Sub(verts[(i+1)%len(verts)]).Len() <= eps {
			return Polygon{}, fmt.Errorf("coincident vertices %d and %d: %w", i, (i+1)%len(verts), ErrDegenerateGeometry)
		}
	}
	p := Polygon{Verts: verts, Plane: plane}
	if p.Area() <= eps {
		return Polygon{}, fmt.Errorf("zero-area polygon: %w", ErrDegenerateGeometry)
	}
	return p, nil
}

// polygonOnPlane builds a clip fragment lying on a known plane. Fragments
// that collapse below tolerance report false instead of producing degenerate
// geometry.
func polygonOnPlane(verts []common.Vec3, plane Plane, eps float32) (Polygon, bool) {
	if len(verts) < 3 {
		return Polygon{}, false
	}
	p := Polygon{Verts: verts, Plane: plane}
	if p.Area() <= common.Sqr(eps) {
		return Polygon{}, false
	}
	return p, true
}

// newellPlane is robust against slightly non-convex vertex ordering, unlike
// taking the first three vertices.
func newellPlane(verts []common.Vec3, eps float32) (Plane, bool) {
	var n common.Vec3
	for i, v := range verts {
		w := verts[(i+1)%len(verts)]
		n = n.Add(common.Vec3{
			(v.Y() - w.Y()) * (v.Z() + w.Z()),
			(v.Z() - w.Z()) * (v.X() + w.X()),
			(v.X() - w.X()) * (v.Y() + w.Y()),
		})
	}
	l := n.Len()
	if l <= eps {
		return Plane{}, false
	}
	n = n.Mul(1 / l)
	var c common.Vec3
	for _, v := range verts {
		c = c.Add(v)
	}
	c = c.Mul(1 / float32(len(verts)))
	return Plane{Normal: n, Dist: n.Dot(c)}, true
}

func (p Polygon) Flipped() Polygon {
	verts := make([]common.Vec3, len(p.Verts))
	for i, v := range p.Verts {
		verts[len(verts)-1-i] = v
	}
	return Polygon{Verts: verts, Plane: p.Plane.Flipped()}
}

func (p Polygon) Centroid() common.Vec3 {
	var c common.Vec3
	for _, v := range p.Verts {
		c = c.Add(v)
	}
	return c.Mul(1 / float32(len(p.Verts)))
}

func (p Polygon) Area() float32 {
	var n common.Vec3
	for i := 1; i < len(p.Verts)-1; i++ {
		n = n.Add(p.Verts[i].Sub(p.Verts[0]).Cross(p.Verts[i+1].Sub(p.Verts[0])))
	}
	return n.Len() / 2
}

func (p Polygon) clone() Polygon {
	verts := make([]common.Vec3, len(p.Verts))
	copy(verts, p.Verts)
	return Polygon{Verts: verts, Plane: p.Plane}
}

func clonePolygons(polys []Polygon) []Polygon {
	out := make([]Polygon, len(polys))
	for i, p := range polys {
		out[i] = p.clone()
	}
	return out
}
