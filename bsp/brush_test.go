package bsp

import (
	"testing"

	"gonavcsg/common"
)

func TestBoxBrushWindings(t *testing.T) {
	b := BoxBrush(common.Vec3{0, 0, 0}, common.Vec3{2, 1, 3})
	if len(b.Polygons) != 6 {
		t.Fatalf("box has %d faces, want 6", len(b.Polygons))
	}
	center := common.Vec3{1, 0.5, 1.5}
	for i, p := range b.Polygons {
		// outward normal: the box center lies behind every face
		if p.Plane.DistanceTo(center) >= 0 {
			t.Errorf("face %d normal %v does not point out of the solid", i, p.Plane.Normal)
		}
		for j, v := range p.Verts {
			if common.Abs(p.Plane.DistanceTo(v)) > 1e-4 {
				t.Errorf("face %d vertex %d off its plane", i, j)
			}
		}
	}
}

func TestNewBrushRejectsDegenerateLoop(t *testing.T) {
	_, err := NewBrush([][]common.Vec3{
		{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}},
	}, testEps)
	if err == nil {
		t.Errorf("collinear loop must be rejected")
	}
}

// Inflating a box grows it by the radius on every side; hosts use this to
// pad obstacle solids before carving.
func TestBrushInflated(t *testing.T) {
	b := BoxBrush(common.Vec3{0, 0, 0}, common.Vec3{2, 2, 2}).Inflated(0.5)
	tree := TreeFromBrush(b, testEps)
	if !tree.Contains(common.Vec3{-0.25, 1, 1}) {
		t.Errorf("inflated box must cover the padding shell")
	}
	if tree.Contains(common.Vec3{-0.75, 1, 1}) {
		t.Errorf("inflated box grew past the padding radius")
	}
	if !tree.Contains(common.Vec3{1, 1, 1}) {
		t.Errorf("inflated box lost its interior")
	}
}
