package bsp

import (
	"testing"

	"gonavcsg/common"
)

const testEps = 1e-4

func quad(a, b, c, d common.Vec3) Polygon {
	p, err := NewPolygon([]common.Vec3{a, b, c, d}, testEps)
	if err != nil {
		panic(err)
	}
	return p
}

func TestClassifyPoint(t *testing.T) {
	p := Plane{Normal: common.Vec3{0, 1, 0}, Dist: 1}
	if p.ClassifyPoint(common.Vec3{0, 2, 0}, testEps) != SideFront {
		t.Errorf("point above plane must be front")
	}
	if p.ClassifyPoint(common.Vec3{0, 0, 0}, testEps) != SideBack {
		t.Errorf("point below plane must be back")
	}
	if p.ClassifyPoint(common.Vec3{5, 1, -3}, testEps) != SideOn {
		t.Errorf("point on plane must be on")
	}
	if p.ClassifyPoint(common.Vec3{0, 1 + testEps/2, 0}, testEps) != SideOn {
		t.Errorf("point within tolerance must be on")
	}
}

func TestSplitPolygonSpanning(t *testing.T) {
	poly := quad(
		common.Vec3{0, 0, 0},
		common.Vec3{0, 0, 2},
		common.Vec3{2, 0, 2},
		common.Vec3{2, 0, 0},
	)
	split := Plane{Normal: common.Vec3{1, 0, 0}, Dist: 1}

	var cf, cb, front, back []Polygon
	split.SplitPolygon(poly, testEps, &cf, &cb, &front, &back)

	if len(cf) != 0 || len(cb) != 0 {
		t.Errorf("spanning polygon produced coplanar output")
	}
	if len(front) != 1 || len(back) != 1 {
		t.Fatalf("split produced %d front and %d back pieces, want 1 and 1", len(front), len(back))
	}
	if common.Abs(front[0].Area()-2) > 1e-3 || common.Abs(back[0].Area()-2) > 1e-3 {
		t.Errorf("4-area square split in half gave areas %v and %v", front[0].Area(), back[0].Area())
	}
	for _, v := range front[0].Verts {
		if split.DistanceTo(v) < -testEps {
			t.Errorf("front piece vertex %v lies behind the splitter", v)
		}
	}
	for _, v := range back[0].Verts {
		if split.DistanceTo(v) > testEps {
			t.Errorf("back piece vertex %v lies in front of the splitter", v)
		}
	}
	// fragments keep the supporting plane of the original
	if front[0].Plane != poly.Plane || back[0].Plane != poly.Plane {
		t.Errorf("fragments must keep the original supporting plane")
	}
}

func TestSplitPolygonCoplanar(t *testing.T) {
	poly := quad(
		common.Vec3{0, 1, 0},
		common.Vec3{0, 1, 1},
		common.Vec3{1, 1, 1},
		common.Vec3{1, 1, 0},
	)
	up := Plane{Normal: common.Vec3{0, 1, 0}, Dist: 1}

	var cf, cb, front, back []Polygon
	up.SplitPolygon(poly, testEps, &cf, &cb, &front, &back)
	if len(cf) != 1 || len(cb) != 0 || len(front) != 0 || len(back) != 0 {
		t.Errorf("same-facing coplanar polygon must land in coplanarFront")
	}

	cf, cb, front, back = nil, nil, nil, nil
	up.Flipped().SplitPolygon(poly, testEps, &cf, &cb, &front, &back)
	if len(cb) != 1 || len(cf) != 0 {
		t.Errorf("opposite-facing coplanar polygon must land in coplanarBack")
	}
}

func TestSplitPolygonGrazing(t *testing.T) {
	// splitter passes exactly through one edge; no fragment may collapse
	poly := quad(
		common.Vec3{0, 0, 0},
		common.Vec3{0, 0, 1},
		common.Vec3{1, 0, 1},
		common.Vec3{1, 0, 0},
	)
	split := Plane{Normal: common.Vec3{1, 0, 0}, Dist: 0}

	var cf, cb, front, back []Polygon
	split.SplitPolygon(poly, testEps, &cf, &cb, &front, &back)
	if len(front) != 1 || len(back) != 0 {
		t.Errorf("grazing split gave %d front and %d back pieces, want 1 and 0", len(front), len(back))
	}
}
