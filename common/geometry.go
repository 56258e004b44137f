package common

import "math"

// Span is a closed interval on an axis. Used for edge overlap tests when
// stitching polygons into a graph.
type Span struct {
	Min, Max float32
}

func NewSpan(min, max float32) Span {
	return Span{Min: min, Max: max}
}

func (s Span) IsEmpty() bool {
	return s.Min >= s.Max
}

func (s Span) Length() float32 {
	if s.IsEmpty() {
		return 0
	}
	return s.Max - s.Min
}

func (s Span) Intersect(o Span) Span {
	if s.IsEmpty() || o.IsEmpty() {
		return Span{}
	}
	return Span{Min: max(s.Min, o.Min), Max: min(s.Max, o.Max)}
}

// VerticalPlane is a plane parallel to the up axis, described by a horizontal
// unit normal and its signed distance from the origin. Polygon boundary edges
// are bucketed by the vertical plane they span so that adjacency and step
// detection only compare edges that can actually touch.
type VerticalPlane struct {
	Normal Vec3
	Dist   float32
	Angle  float32
}

func NewVerticalPlane(normal Vec3, dist float32) VerticalPlane {
	return VerticalPlane{
		Normal: normal,
		Dist:   dist,
		Angle:  Atan232(normal.Z(), normal.X()),
	}
}

// VerticalPlaneFromEdge builds the vertical plane containing the segment ab.
// Returns false for degenerate or near-vertical segments, which span no
// usable vertical plane.
func VerticalPlaneFromEdge(a, b Vec3, eps float32) (VerticalPlane, bool) {
	dir := b.Sub(a)
	n := dir.Cross(Up)
	l := n.Len()
	if l <= eps {
		return VerticalPlane{}, false
	}
	n = n.Mul(1 / l)
	return NewVerticalPlane(n, n.Dot(a)), true
}

// Tangent is the horizontal in-plane axis; together with Up it forms the
// plane's 2D coordinate frame.
func (p VerticalPlane) Tangent() Vec3 {
	return p.Normal.Cross(Up)
}

// UV projects a world point into the plane's (tangent, up) frame.
func (p VerticalPlane) UV(point Vec3) Vec2 {
	return Vec2{point.Dot(p.Tangent()), point.Y()}
}

// World maps a plane-frame point back into world space.
func (p VerticalPlane) World(uv Vec2) Vec3 {
	return p.Tangent().Mul(uv.X()).Add(p.Normal.Mul(p.Dist)).Add(Up.Mul(uv.Y()))
}

// Canonical snaps near-zero normal components and flips the plane to a
// canonical orientation so that both sides of a shared boundary hash to the
// same plane.
func (p VerticalPlane) Canonical(eps float32) VerticalPlane {
	x, y, z := p.Normal.X(), p.Normal.Y(), p.Normal.Z()
	d := p.Dist
	if Abs(x) < eps {
		x = 0
	}
	if Abs(y) < eps {
		y = 0
	}
	if Abs(z) < eps {
		z = 0
	}
	flip := x < 0 || (x == 0 && y < 0) || (x == 0 && y == 0 && z < 0)
	if flip {
		return NewVerticalPlane(Vec3{-x, -y, -z}, -d)
	}
	return NewVerticalPlane(Vec3{x, y, z}, d)
}

// PlaneKey is a discretized vertical plane identity used as a bucket key.
type PlaneKey struct {
	Angle int32
	Dist  int32
}

const (
	planeAngleScale = 1024
	planeDistScale  = 256
)

// Key discretizes the canonical plane. The resolution constants keep planes
// that differ by less than the geometric tolerance in the same bucket.
func (p VerticalPlane) Key() PlaneKey {
	const tau = 2 * math.Pi
	angle := math.Mod(float64(p.Angle)+tau, tau)
	a := int32(math.Round(angle * planeAngleScale))
	// the angle wraps; tau and zero are the same plane orientation
	if a >= int32(math.Round(tau*planeAngleScale)) {
		a = 0
	}
	return PlaneKey{
		Angle: a,
		Dist:  int32(math.Round(float64(p.Dist) * planeDistScale)),
	}
}
