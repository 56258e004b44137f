package bsp

import (
	"sort"

	"gonavcsg/common"
)

// BoundaryEdge is one directed polygon boundary edge projected into the
// frame of the canonical vertical plane it spans.
type BoundaryEdge struct {
	Poly int // index of the owning polygon in the bucketed slice
	A, B common.Vec3
	UV1  common.Vec2
	UV2  common.Vec2
}

func (e BoundaryEdge) Span() common.Span {
	return common.NewSpan(min(e.UV1.X(), e.UV2.X()), max(e.UV1.X(), e.UV2.X()))
}

// HeightAt evaluates the edge's plane-frame height at plane-frame u.
func (e BoundaryEdge) HeightAt(u float32) float32 {
	du := e.UV2.X() - e.UV1.X()
	if common.Abs(du) < 1e-7 {
		return e.UV1.Y()
	}
	t := (u - e.UV1.X()) / du
	return common.Lerp(e.UV1.Y(), e.UV2.Y(), t)
}

// EdgeBucket holds the edges spanning one canonical vertical plane, split by
// which side of the plane their surface lies on. Two surfaces can only be
// adjacent across edges from opposite sides of the same bucket.
type EdgeBucket struct {
	Plane common.VerticalPlane
	Front []BoundaryEdge
	Back  []BoundaryEdge
}

// BucketEdges groups the boundary edges of the polygons by canonical
// vertical plane. The returned key order is sorted so iteration is
// deterministic.
func BucketEdges(polys []Polygon, eps float32) (map[common.PlaneKey]*EdgeBucket, []common.PlaneKey) {
	buckets := make(map[common.PlaneKey]*EdgeBucket)
	for pi, p := range polys {
		for i := range p.Verts {
			a := p.Verts[i]
			b := p.Verts[(i+1)%len(p.Verts)]
			vp, ok := common.VerticalPlaneFromEdge(a, b, eps)
			if !ok {
				continue
			}
			canon := vp.Canonical(eps)
			key := canon.Key()
			bucket := buckets[key]
			if bucket == nil {
				bucket = &EdgeBucket{Plane: canon}
				buckets[key] = bucket
			}
			e := BoundaryEdge{Poly: pi, A: a, B: b, UV1: canon.UV(a), UV2: canon.UV(b)}
			if vp.Normal.Dot(canon.Normal) > 0 {
				bucket.Front = append(bucket.Front, e)
			} else {
				bucket.Back = append(bucket.Back, e)
			}
		}
	}
	keys := make([]common.PlaneKey, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Angle != keys[j].Angle {
			return keys[i].Angle < keys[j].Angle
		}
		return keys[i].Dist < keys[j].Dist
	})
	return buckets, keys
}
