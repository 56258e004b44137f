package bsp

import (
	"testing"

	"gonavcsg/common"
)

// Two squares sharing the x=1 border must land in the same bucket on
// opposite sides.
func TestBucketEdgesSharedBorder(t *testing.T) {
	left := quad(
		common.Vec3{0, 0, 0},
		common.Vec3{0, 0, 1},
		common.Vec3{1, 0, 1},
		common.Vec3{1, 0, 0},
	)
	right := quad(
		common.Vec3{1, 0, 0},
		common.Vec3{1, 0, 1},
		common.Vec3{2, 0, 1},
		common.Vec3{2, 0, 0},
	)
	buckets, keys := BucketEdges([]Polygon{left, right}, testEps)
	if len(keys) == 0 {
		t.Fatalf("no buckets produced")
	}

	shared := 0
	for _, b := range buckets {
		if common.Abs(common.Abs(b.Plane.Normal.X())-1) > 1e-4 {
			continue
		}
		if common.Abs(common.Abs(b.Plane.Dist)-1) > 1e-3 {
			continue
		}
		if len(b.Front) == 1 && len(b.Back) == 1 {
			shared++
			if b.Front[0].Poly == b.Back[0].Poly {
				t.Errorf("shared border edges must come from different polygons")
			}
		}
	}
	if shared != 1 {
		t.Errorf("found %d shared-border buckets, want 1", shared)
	}
}

// Vertically offset squares with the same footprint walk their borders in
// the same direction, so their edges stay on the same side and never pair.
func TestBucketEdgesStackedSurfaces(t *testing.T) {
	low := quad(
		common.Vec3{0, 0, 0},
		common.Vec3{0, 0, 1},
		common.Vec3{1, 0, 1},
		common.Vec3{1, 0, 0},
	)
	high := quad(
		common.Vec3{0, 2, 0},
		common.Vec3{0, 2, 1},
		common.Vec3{1, 2, 1},
		common.Vec3{1, 2, 0},
	)
	buckets, _ := BucketEdges([]Polygon{low, high}, testEps)
	for _, b := range buckets {
		if len(b.Front) > 0 && len(b.Back) > 0 {
			t.Errorf("stacked identical footprints must not produce opposing edges")
		}
	}
}

func TestBoundaryEdgeHeightAt(t *testing.T) {
	e := BoundaryEdge{
		UV1: common.Vec2{0, 1},
		UV2: common.Vec2{2, 3},
	}
	if common.Abs(e.HeightAt(1)-2) > 1e-5 {
		t.Errorf("HeightAt(1) = %v, want 2", e.HeightAt(1))
	}
	if common.Abs(e.HeightAt(0)-1) > 1e-5 {
		t.Errorf("HeightAt(0) = %v, want 1", e.HeightAt(0))
	}
}
