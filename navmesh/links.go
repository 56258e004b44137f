package navmesh

import (
	"gonavcsg/bsp"
	"gonavcsg/common"
)

// buildLinks derives the adjacency graph: walk portals between coplanar
// neighbors and step links between vertically offset but horizontally
// adjacent surfaces. Boundary edges are bucketed by canonical vertical plane
// so only edges that can actually touch are compared; bucket keys are
// visited in sorted order and edges in insertion order, so the result is
// deterministic for identical input.
func buildLinks(polys []Polygon, cfg Config) []Link {
	eps := cfg.Tolerance
	minOverlap := max(cfg.MinOverlap, eps)

	boundary := make([]bsp.Polygon, len(polys))
	for i, p := range polys {
		boundary[i] = bsp.Polygon{Verts: p.Verts, Plane: p.Plane}
	}
	buckets, keys := bsp.BucketEdges(boundary, eps)

	var links []Link
	attach := func(l Link) {
		id := LinkID(len(links))
		links = append(links, l)
		polys[l.From].Links = append(polys[l.From].Links, id)

		rev := l.Reverse()
		rid := LinkID(len(links))
		links = append(links, rev)
		polys[rev.From].Links = append(polys[rev.From].Links, rid)
	}

	for _, k := range keys {
		bucket := buckets[k]
		for _, s := range bucket.Back {
			for _, d := range bucket.Front {
				if s.Poly == d.Poly {
					continue
				}
				pairLinks(bucket.Plane, s, d, cfg, minOverlap, func(l Link) {
					attach(l)
				})
			}
		}
	}
	return links
}

// pairLinks inspects one back/front edge pair sharing a vertical plane and
// emits the portal or step links their overlap produces. Links run from the
// back-side polygon to the front-side polygon; the caller inserts mirrors.
func pairLinks(plane common.VerticalPlane, s, d bsp.BoundaryEdge, cfg Config, minOverlap float32, emit func(Link)) {
	eps := cfg.Tolerance
	overlap := s.Span().Intersect(d.Span())
	if overlap.Length() < minOverlap {
		return
	}

	sd := s.UV2.X() - s.UV1.X()
	dd := d.UV2.X() - d.UV1.X()
	if common.Abs(sd) < eps || common.Abs(dd) < eps {
		return
	}
	ms := (s.UV2.Y() - s.UV1.Y()) / sd
	md := (d.UV2.Y() - d.UV1.Y()) / dd
	cs := s.UV1.Y() - ms*s.UV1.X()
	cd := d.UV1.Y() - md*d.UV1.X()

	deltaM := md - ms
	deltaC := cd - cs

	spans := []common.Span{overlap}
	if common.Abs(deltaM) > eps {
		// the surfaces approach each other at an angle; only the stretch
		// where the height difference stays within the step limit links
		walkU := -deltaC / deltaM
		upU := (cfg.MaxStepHeight - deltaC) / deltaM
		downU := (-cfg.MaxStepHeight - deltaC) / deltaM
		lo := min(upU, downU)
		hi := max(upU, downU)
		traversable := common.NewSpan(lo, hi).Intersect(overlap)
		if traversable.Length() < minOverlap {
			return
		}
		if walkU > traversable.Min+eps && walkU < traversable.Max-eps {
			spans = []common.Span{
				common.NewSpan(traversable.Min, walkU),
				common.NewSpan(walkU, traversable.Max),
			}
		} else {
			spans = []common.Span{traversable}
		}
	}

	for _, span := range spans {
		if span.Length() < minOverlap {
			continue
		}
		mid := (span.Min + span.Max) / 2
		delta := deltaM*mid + deltaC
		if common.Abs(delta) > cfg.MaxStepHeight+eps {
			continue
		}
		src := Edge{
			A: plane.World(common.Vec2{span.Min, ms*span.Min + cs}),
			B: plane.World(common.Vec2{span.Max, ms*span.Max + cs}),
		}
		dst := Edge{
			A: plane.World(common.Vec2{span.Min, md*span.Min + cd}),
			B: plane.World(common.Vec2{span.Max, md*span.Max + cd}),
		}
		kind := LinkStep
		if common.Abs(delta) <= eps {
			kind = LinkWalk
			delta = 0
			dst = src
		}
		emit(Link{
			From:        PolyID(s.Poly),
			To:          PolyID(d.Poly),
			Kind:        kind,
			HeightDelta: delta,
			SourceEdge:  src,
			DestEdge:    dst,
		})
	}
}
