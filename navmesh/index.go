package navmesh

import (
	"math"

	"gonavcsg/common"
)

// gridIndex buckets polygons into ground-plane cells by bounding rectangle
// for point-to-polygon lookups. Built once per mesh and read-only after.
type gridIndex struct {
	cell  float32
	cells map[[2]int32][]PolyID
}

func newGridIndex(polys []Polygon, cell float32) *gridIndex {
	if cell <= 0 {
		cell = 2
	}
	g := &gridIndex{cell: cell, cells: make(map[[2]int32][]PolyID)}
	for _, p := range polys {
		loX, hiX := p.Verts[0].X(), p.Verts[0].X()
		loZ, hiZ := p.Verts[0].Z(), p.Verts[0].Z()
		for _, v := range p.Verts[1:] {
			loX, hiX = min(loX, v.X()), max(hiX, v.X())
			loZ, hiZ = min(loZ, v.Z()), max(hiZ, v.Z())
		}
		x0, z0 := g.coord(loX), g.coord(loZ)
		x1, z1 := g.coord(hiX), g.coord(hiZ)
		for x := x0; x <= x1; x++ {
			for z := z0; z <= z1; z++ {
				key := [2]int32{x, z}
				g.cells[key] = append(g.cells[key], p.ID)
			}
		}
	}
	return g
}

func (g *gridIndex) coord(v float32) int32 {
	return int32(math.Floor(float64(v / g.cell)))
}

// ring collects the candidate polygons in the square ring of cells at the
// given radius around the center cell. Candidates keep arena order so ties
// resolve deterministically.
func (g *gridIndex) ring(cx, cz int32, radius int32, seen map[PolyID]struct{}, out []PolyID) []PolyID {
	appendCell := func(x, z int32) {
		for _, id := range g.cells[[2]int32{x, z}] {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	if radius == 0 {
		appendCell(cx, cz)
		return out
	}
	for x := cx - radius; x <= cx+radius; x++ {
		appendCell(x, cz-radius)
		appendCell(x, cz+radius)
	}
	for z := cz - radius + 1; z <= cz+radius-1; z++ {
		appendCell(cx-radius, z)
		appendCell(cx+radius, z)
	}
	return out
}

// NearestPolygon locates the polygon closest to the position, expanding the
// search ring by ring until a hit cannot be beaten by a farther ring.
// Positions farther than MaxQueryRange from every polygon fail with
// ErrOutOfRange.
func (nm *Navmesh) NearestPolygon(pos common.Vec3) (PolyID, error) {
	g := nm.index
	cx, cz := g.coord(pos.X()), g.coord(pos.Z())
	maxRings := int32(nm.cfg.MaxQueryRange/g.cell) + 1

	best := NoPoly
	bestDist := float32(math.MaxFloat32)
	seen := make(map[PolyID]struct{})
	var candidates []PolyID

	for r := int32(0); r <= maxRings; r++ {
		// a ring at radius r cannot contain anything nearer than this
		if best != NoPoly && float32(r-1)*g.cell > bestDist {
			break
		}
		candidates = g.ring(cx, cz, r, seen, candidates[:0])
		for _, id := range candidates {
			d := nm.distanceToPolygon(pos, nm.polys[id])
			if d < bestDist {
				best, bestDist = id, d
			}
		}
	}

	if best == NoPoly || bestDist > nm.cfg.MaxQueryRange {
		return NoPoly, ErrOutOfRange
	}
	return best, nil
}

// distanceToPolygon is the distance from pos to the closest point of the
// polygon: the plane projection when it falls inside the boundary, the
// nearest boundary point otherwise.
func (nm *Navmesh) distanceToPolygon(pos common.Vec3, p Polygon) float32 {
	eps := nm.cfg.Tolerance
	if pointInPolygonXZ(pos, p.Verts, eps) {
		// vertical distance to the supporting plane, walking straight down
		ny := p.Plane.Normal.Y()
		if common.Abs(ny) > eps {
			return common.Abs(p.Plane.DistanceTo(pos) / ny)
		}
	}
	bestSq := float32(math.MaxFloat32)
	for i := range p.Verts {
		a := p.Verts[i]
		b := p.Verts[(i+1)%len(p.Verts)]
		c := closestOnSegment(pos, a, b)
		d := pos.Sub(c)
		if sq := d.Dot(d); sq < bestSq {
			bestSq = sq
		}
	}
	return common.Sqrt32(bestSq)
}

func closestOnSegment(p, a, b common.Vec3) common.Vec3 {
	ab := b.Sub(a)
	l := ab.Dot(ab)
	if l < 1e-12 {
		return a
	}
	t := common.Clamp(p.Sub(a).Dot(ab)/l, 0, 1)
	return a.Add(ab.Mul(t))
}

// pointInPolygonXZ tests ground-projected containment for a convex loop.
func pointInPolygonXZ(pos common.Vec3, verts []common.Vec3, eps float32) bool {
	sign := 0
	for i := range verts {
		a := verts[i]
		b := verts[(i+1)%len(verts)]
		area := common.TriArea2D(a, b, pos)
		switch {
		case area > eps:
			if sign < 0 {
				return false
			}
			sign = 1
		case area < -eps:
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return true
}
