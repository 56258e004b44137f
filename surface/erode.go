package surface

import (
	"gonavcsg/bsp"
	"gonavcsg/common"
)

// freeEdge is an uncovered stretch of walkable boundary: no opposing
// walkable edge within step height faces it across its vertical plane.
// Agents must keep AgentRadius away from it.
type freeEdge struct {
	a, b     common.Vec3
	interior common.Vec3 // horizontal unit normal pointing into the surface
}

// subtractSpans removes the covered intervals from the initial span.
func subtractSpans(initial common.Span, covered []common.Span) []common.Span {
	remaining := []common.Span{initial}
	for _, c := range covered {
		var next []common.Span
		for _, r := range remaining {
			if c.Max <= r.Min || c.Min >= r.Max {
				next = append(next, r)
				continue
			}
			if c.Min > r.Min {
				next = append(next, common.NewSpan(r.Min, c.Min))
			}
			if c.Max < r.Max {
				next = append(next, common.NewSpan(c.Max, r.Max))
			}
		}
		remaining = next
	}
	return remaining
}

// freeEdges finds the uncovered boundary stretches of the walkable set.
func freeEdges(polys []bsp.Polygon, cfg Config) []freeEdge {
	eps := cfg.Tolerance
	buckets, keys := bsp.BucketEdges(polys, eps)

	var out []freeEdge
	emit := func(bucket *bsp.EdgeBucket, e bsp.BoundaryEdge, opposing []bsp.BoundaryEdge) {
		span := e.Span()
		if span.Length() <= 2*eps {
			return
		}
		var covered []common.Span
		for _, o := range opposing {
			overlap := span.Intersect(o.Span())
			if overlap.Length() <= eps {
				continue
			}
			mid := (overlap.Min + overlap.Max) / 2
			delta := common.Abs(e.HeightAt(mid) - o.HeightAt(mid))
			if delta <= cfg.MaxStepHeight+eps {
				covered = append(covered, overlap)
			}
		}
		dir := e.B.Sub(e.A)
		interior := common.Vec3{dir.Z(), 0, -dir.X()}
		l := interior.Len()
		if l <= eps {
			return
		}
		interior = interior.Mul(1 / l)
		for _, s := range subtractSpans(span, covered) {
			if s.Length() <= 2*eps {
				continue
			}
			p1 := bucket.Plane.World(common.Vec2{s.Min, e.HeightAt(s.Min)})
			p2 := bucket.Plane.World(common.Vec2{s.Max, e.HeightAt(s.Max)})
			out = append(out, freeEdge{a: p1, b: p2, interior: interior})
		}
	}

	for _, k := range keys {
		bucket := buckets[k]
		for _, e := range bucket.Front {
			emit(bucket, e, bucket.Back)
		}
		for _, e := range bucket.Back {
			emit(bucket, e, bucket.Front)
		}
	}
	return out
}

// erode clips the walkable set against a slab of width AgentRadius inward of
// every free boundary edge. End caps extend beyond the edge span by the
// radius so that convex corners are cleared as well.
func erode(polys []bsp.Polygon, cfg Config) []bsp.Polygon {
	eps := cfg.Tolerance
	r := cfg.AgentRadius
	climb := cfg.MaxStepHeight + r

	for _, fe := range freeEdges(polys, cfg) {
		planes := fe.slabPlanes(r, climb, eps)
		var next []bsp.Polygon
		for _, p := range polys {
			if !fe.near(p, r, climb, eps) {
				next = append(next, p)
				continue
			}
			next = append(next, subtractSlab(p, planes, eps)...)
		}
		polys = next
	}
	return polys
}

// slabPlanes bounds the removal region; all normals point into the slab.
// The vertical extent is clamped around the edge heights so that surfaces
// passing overhead (a bridge above a floor edge) are unaffected.
func (fe freeEdge) slabPlanes(r, climb, eps float32) [6]bsp.Plane {
	h := fe.interior
	dir := fe.b.Sub(fe.a)
	dir[1] = 0
	t := dir.Normalize()
	yLo := min(fe.a.Y(), fe.b.Y()) - climb
	yHi := max(fe.a.Y(), fe.b.Y()) + climb
	return [6]bsp.Plane{
		{Normal: h, Dist: h.Dot(fe.a) - eps},
		{Normal: h.Mul(-1), Dist: -(h.Dot(fe.a) + r)},
		{Normal: t, Dist: t.Dot(fe.a) - r},
		{Normal: t.Mul(-1), Dist: -(t.Dot(fe.b) + r)},
		{Normal: common.Up, Dist: yLo},
		{Normal: common.Up.Mul(-1), Dist: -yHi},
	}
}

func (fe freeEdge) near(p bsp.Polygon, r, climb, eps float32) bool {
	loX := min(fe.a.X(), fe.b.X()) - r - eps
	hiX := max(fe.a.X(), fe.b.X()) + r + eps
	loZ := min(fe.a.Z(), fe.b.Z()) - r - eps
	hiZ := max(fe.a.Z(), fe.b.Z()) + r + eps
	loY := min(fe.a.Y(), fe.b.Y()) - climb - eps
	hiY := max(fe.a.Y(), fe.b.Y()) + climb + eps

	pLoX, pHiX := p.Verts[0].X(), p.Verts[0].X()
	pLoY, pHiY := p.Verts[0].Y(), p.Verts[0].Y()
	pLoZ, pHiZ := p.Verts[0].Z(), p.Verts[0].Z()
	for _, v := range p.Verts[1:] {
		pLoX, pHiX = min(pLoX, v.X()), max(pHiX, v.X())
		pLoY, pHiY = min(pLoY, v.Y()), max(pHiY, v.Y())
		pLoZ, pHiZ = min(pLoZ, v.Z()), max(pHiZ, v.Z())
	}
	return pHiX >= loX && pLoX <= hiX &&
		pHiY >= loY && pLoY <= hiY &&
		pHiZ >= loZ && pLoZ <= hiZ
}

// subtractSlab returns the parts of p outside the convex slab. Pieces are
// produced by peeling one bounding half-space at a time; whatever remains
// inside every half-space is the eroded area and is dropped.
func subtractSlab(p bsp.Polygon, planes [6]bsp.Plane, eps float32) []bsp.Polygon {
	var out []bsp.Polygon
	remaining := []bsp.Polygon{p}
	for _, pl := range planes {
		var inside []bsp.Polygon
		for _, piece := range remaining {
			var front, back []bsp.Polygon
			pl.SplitPolygon(piece, eps, &front, &back, &front, &back)
			out = append(out, back...) // outside the slab, kept as-is
			inside = append(inside, front...)
		}
		remaining = inside
	}
	return out
}
