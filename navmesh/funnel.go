package navmesh

import (
	"gonavcsg/common"
)

// stringPull collapses a portal corridor into a minimal-waypoint path. It is
// the classic funnel pass: keep a taut string between a left and a right
// convergence point, advance the apex and emit a waypoint whenever the next
// portal would force the string across itself. Every emitted point lies on a
// portal edge or is the start/goal, so the path never leaves the traversed
// polygon sequence.
func stringPull(start, goal common.Vec3, portals []Edge, eps float32) []common.Vec3 {
	if len(portals) == 0 {
		return []common.Vec3{start, goal}
	}
	epsSq := eps * eps

	// orient each portal against the direction of travel
	lefts := make([]common.Vec3, len(portals)+1)
	rights := make([]common.Vec3, len(portals)+1)
	ref := start
	for i, e := range portals {
		mid := e.Midpoint()
		if common.TriArea2D(ref, mid, e.A) > 0 {
			lefts[i], rights[i] = e.A, e.B
		} else {
			lefts[i], rights[i] = e.B, e.A
		}
		if mid.Sub(ref).Dot(mid.Sub(ref)) > epsSq {
			ref = mid
		}
	}
	// final pseudo-portal pinches the funnel onto the goal
	lefts[len(portals)] = goal
	rights[len(portals)] = goal

	path := []common.Vec3{start}
	apex, left, right := start, start, start
	apexIdx, leftIdx, rightIdx := 0, 0, 0

	vequal := func(a, b common.Vec3) bool {
		d := b.Sub(a)
		return d.Dot(d) < epsSq
	}
	appendPoint := func(p common.Vec3) {
		if !vequal(path[len(path)-1], p) {
			path = append(path, p)
		}
	}

	for i := 0; i <= len(portals); i++ {
		l, r := lefts[i], rights[i]

		// tighten the right side
		if common.TriArea2D(apex, right, r) >= 0 {
			if vequal(apex, right) || common.TriArea2D(apex, left, r) < 0 {
				right = r
				rightIdx = i
			} else {
				// right would cross left: the left point becomes a waypoint
				appendPoint(left)
				apex = left
				apexIdx = leftIdx
				left, right = apex, apex
				leftIdx, rightIdx = apexIdx, apexIdx
				i = apexIdx
				continue
			}
		}

		// tighten the left side
		if common.TriArea2D(apex, left, l) <= 0 {
			if vequal(apex, left) || common.TriArea2D(apex, right, l) > 0 {
				left = l
				leftIdx = i
			} else {
				appendPoint(right)
				apex = right
				apexIdx = rightIdx
				left, right = apex, apex
				leftIdx, rightIdx = apexIdx, apexIdx
				i = apexIdx
				continue
			}
		}
	}

	appendPoint(goal)
	return path
}
