package bsp

import (
	"gonavcsg/common"
)

// Side classifies a point or polygon against a plane.
type Side int8

const (
	SideOn Side = iota
	SideFront
	SideBack
	SideSpanning
)

// Plane is a unit normal plus its signed distance from the origin. Points p
// with Normal·p > Dist lie in front.
type Plane struct {
	Normal common.Vec3
	Dist   float32
}

// PlaneFromPoints derives the plane through three points, wound so that the
// normal follows the right-hand rule. Returns false when the points are
// collinear within eps.
func PlaneFromPoints(a, b, c common.Vec3, eps float32) (Plane, bool) {
	n := b.Sub(a).Cross(c.Sub(a))
	l := n.Len()
	if l <= eps {
		return Plane{}, false
	}
	n = n.Mul(1 / l)
	return Plane{Normal: n, Dist: n.Dot(a)}, true
}

// DistanceTo returns the signed distance from the plane to the point.
func (p Plane) DistanceTo(v common.Vec3) float32 {
	return p.Normal.Dot(v) - p.Dist
}

func (p Plane) Flipped() Plane {
	return Plane{Normal: p.Normal.Mul(-1), Dist: -p.Dist}
}

// ClassifyPoint places a point on, in front of, or behind the plane within
// the given tolerance.
func (p Plane) ClassifyPoint(v common.Vec3, eps float32) Side {
	d := p.DistanceTo(v)
	switch {
	case d > eps:
		return SideFront
	case d < -eps:
		return SideBack
	default:
		return SideOn
	}
}

// SplitPolygon partitions poly by the plane into the four destination lists.
// Coplanar polygons go to coplanarFront or coplanarBack depending on their
// facing; spanning polygons are clipped into one fragment per side, each
// keeping the original polygon's supporting plane. Fragments that collapse
// below the area tolerance are discarded.
func (p Plane) SplitPolygon(poly Polygon, eps float32, coplanarFront, coplanarBack, front, back *[]Polygon) {
	kind := SideOn
	sides := make([]Side, len(poly.Verts))
	for i, v := range poly.Verts {
		s := p.ClassifyPoint(v, eps)
		sides[i] = s
		if kind == SideOn {
			kind = s
		} else if s != SideOn && s != kind {
			kind = SideSpanning
		}
	}

	switch kind {
	case SideOn:
		if p.Normal.Dot(poly.Plane.Normal) > 0 {
			*coplanarFront = append(*coplanarFront, poly)
		} else {
			*coplanarBack = append(*coplanarBack, poly)
		}
	case SideFront:
		*front = append(*front, poly)
	case SideBack:
		*back = append(*back, poly)
	case SideSpanning:
		var f, b []common.Vec3
		n := len(poly.Verts)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			vi, vj := poly.Verts[i], poly.Verts[j]
			si, sj := sides[i], sides[j]
			if si != SideBack {
				f = append(f, vi)
			}
			if si != SideFront {
				b = append(b, vi)
			}
			if (si == SideFront && sj == SideBack) || (si == SideBack && sj == SideFront) {
				di := p.DistanceTo(vi)
				dj := p.DistanceTo(vj)
				t := di / (di - dj)
				cut := common.Vlerp(vi, vj, t)
				f = append(f, cut)
				b = append(b, cut)
			}
		}
		if fp, ok := polygonOnPlane(f, poly.Plane, eps); ok {
			*front = append(*front, fp)
		}
		if bp, ok := polygonOnPlane(b, poly.Plane, eps); ok {
			*back = append(*back, bp)
		}
	}
}
