package bsp

import (
	"fmt"

	"gonavcsg/common"
)

// Brush is a convex solid described by its boundary polygons, wound with
// normals facing out of the solid.
type Brush struct {
	Polygons []Polygon
}

// NewBrush validates every boundary polygon at ingestion.
func NewBrush(loops [][]common.Vec3, eps float32) (Brush, error) {
	polys := make([]Polygon, 0, len(loops))
	for i, loop := range loops {
		p, err := NewPolygon(loop, eps)
		if err != nil {
			return Brush{}, fmt.Errorf("brush polygon %d: %w", i, err)
		}
		polys = append(polys, p)
	}
	return Brush{Polygons: polys}, nil
}

// BoxBrush builds an axis-aligned solid box between the two corners.
func BoxBrush(min, max common.Vec3) Brush {
	v := func(x, y, z float32) common.Vec3 { return common.Vec3{x, y, z} }
	x0, y0, z0 := min.X(), min.Y(), min.Z()
	x1, y1, z1 := max.X(), max.Y(), max.Z()
	quads := [][]common.Vec3{
		{v(x0, y1, z0), v(x0, y1, z1), v(x1, y1, z1), v(x1, y1, z0)}, // top
		{v(x0, y0, z0), v(x1, y0, z0), v(x1, y0, z1), v(x0, y0, z1)}, // bottom
		{v(x0, y0, z0), v(x0, y0, z1), v(x0, y1, z1), v(x0, y1, z0)}, // -x
		{v(x1, y0, z1), v(x1, y0, z0), v(x1, y1, z0), v(x1, y1, z1)}, // +x
		{v(x1, y0, z0), v(x0, y0, z0), v(x0, y1, z0), v(x1, y1, z0)}, // -z
		{v(x0, y0, z1), v(x1, y0, z1), v(x1, y1, z1), v(x0, y1, z1)}, // +z
	}
	polys := make([]Polygon, 0, 6)
	for _, q := range quads {
		plane, _ := PlaneFromPoints(q[0], q[1], q[2], 1e-7)
		polys = append(polys, Polygon{Verts: q, Plane: plane})
	}
	return Brush{Polygons: polys}
}

// Inflated grows the brush outward by r, moving every vertex away from the
// brush centroid one axis at a time. Exact for axis-aligned boxes and a
// conservative over-approximation for other convex solids.
func (b Brush) Inflated(r float32) Brush {
	var c common.Vec3
	n := 0
	for _, p := range b.Polygons {
		for _, v := range p.Verts {
			c = c.Add(v)
			n++
		}
	}
	if n > 0 {
		c = c.Mul(1 / float32(n))
	}
	sign := func(v float32) float32 {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		default:
			return 0
		}
	}
	polys := make([]Polygon, 0, len(b.Polygons))
	for _, p := range b.Polygons {
		verts := make([]common.Vec3, len(p.Verts))
		for i, v := range p.Verts {
			d := v.Sub(c)
			verts[i] = v.Add(common.Vec3{sign(d.X()) * r, sign(d.Y()) * r, sign(d.Z()) * r})
		}
		plane, ok := newellPlane(verts, 1e-7)
		if !ok {
			plane = p.Plane
		}
		polys = append(polys, Polygon{Verts: verts, Plane: plane})
	}
	return Brush{Polygons: polys}
}
