package navmesh

import (
	"fmt"

	"gonavcsg/common"
)

// Agent is the per-query traversal capability. The same mesh serves agents
// with different capabilities: step-up eligibility is evaluated here, not
// baked into the graph.
type Agent struct {
	// MaxClimbHeight gates step-up links. Step-down is always legal.
	MaxClimbHeight float32
}

// PathResult is one answered query, owned by the caller. Waypoints run from
// start to goal; Polys lists the polygons traversed in order; Links records
// every crossed link so callers can count step transitions.
type PathResult struct {
	Waypoints []common.Vec3
	Polys     []PolyID
	Links     []LinkID
}

// StepCrossings counts how many traversed links were step links.
func (r *PathResult) StepCrossings(nm *Navmesh) int {
	n := 0
	for _, id := range r.Links {
		if nm.links[id].Kind == LinkStep {
			n++
		}
	}
	return n
}

// searchNode tracks how a polygon was reached, one record per polygon per
// query. Queries never mutate the mesh, so concurrent searches do not
// interfere.
type searchNode struct {
	poly   PolyID
	point  common.Vec3 // where the corridor enters the polygon
	link   LinkID      // link crossed to get here, NoLink for the start
	parent PolyID
	cost   float32 // accumulated cost from the start
	total  float32 // cost plus heuristic
	closed bool
	opened bool
}

// FindPath locates the polygons containing (or nearest to) start and goal
// and runs A* over the link graph, followed by funnel smoothing. Cost ties
// in the frontier prefer the larger accumulated cost for deterministic
// output.
func (nm *Navmesh) FindPath(start, goal common.Vec3, agent Agent) (*PathResult, error) {
	eps := nm.cfg.Tolerance

	startPoly, err := nm.NearestPolygon(start)
	if err != nil {
		return nil, fmt.Errorf("start position: %w", err)
	}
	goalPoly, err := nm.NearestPolygon(goal)
	if err != nil {
		return nil, fmt.Errorf("goal position: %w", err)
	}

	if startPoly == goalPoly {
		return &PathResult{
			Waypoints: []common.Vec3{start, goal},
			Polys:     []PolyID{startPoly},
		}, nil
	}

	heuristic := func(p common.Vec3) float32 {
		return common.Vdist(p, goal) * nm.cfg.HeuristicScale
	}

	nodes := make([]searchNode, len(nm.polys))
	for i := range nodes {
		nodes[i].poly = PolyID(i)
		nodes[i].link = NoLink
		nodes[i].parent = NoPoly
	}

	// frontier entries are immutable snapshots; improved nodes are pushed
	// again and stale entries skipped once the polygon is closed
	type heapEntry struct {
		poly  PolyID
		cost  float32
		total float32
	}
	open := newNodeQueue[heapEntry](func(a, b heapEntry) bool {
		if a.total != b.total {
			return a.total < b.total
		}
		return a.cost > b.cost
	})

	sn := &nodes[startPoly]
	sn.point = start
	sn.cost = 0
	sn.total = heuristic(start)
	sn.opened = true
	open.Offer(heapEntry{poly: startPoly, total: sn.total})

	expanded := 0
	for !open.Empty() {
		current := open.Poll().poly
		cur := &nodes[current]
		if cur.closed {
			continue
		}
		cur.closed = true

		if current == goalPoly {
			return nm.finishPath(start, goal, goalPoly, nodes)
		}

		expanded++
		if nm.cfg.MaxNodes > 0 && expanded > nm.cfg.MaxNodes {
			return nil, fmt.Errorf("expanded %d nodes: %w", expanded, ErrSearchBudgetExceeded)
		}

		for _, lid := range nm.polys[current].Links {
			link := nm.links[lid]
			next := link.To
			if nodes[next].closed {
				continue
			}
			if link.Kind == LinkStep && link.HeightDelta > agent.MaxClimbHeight+eps {
				continue // step-up beyond this agent's climb capability
			}

			entry, ok := link.DestEdge.ClipRay(cur.point, goal.Sub(cur.point))
			if !ok {
				entry = link.DestEdge.Midpoint()
			}
			cost := cur.cost + common.Vdist(cur.point, entry)
			if link.Kind == LinkStep && link.HeightDelta > eps {
				cost += nm.cfg.StepUpCost
			}

			nn := &nodes[next]
			if nn.opened && cost >= nn.cost {
				continue
			}
			nn.point = entry
			nn.link = lid
			nn.parent = current
			nn.cost = cost
			nn.total = cost + heuristic(entry)
			nn.opened = true
			open.Offer(heapEntry{poly: next, cost: nn.cost, total: nn.total})
		}
	}

	return nil, fmt.Errorf("polygon %d to %d: %w", startPoly, goalPoly, ErrNoPath)
}

// finishPath backtraces the corridor and runs the funnel pass over it.
func (nm *Navmesh) finishPath(start, goal common.Vec3, goalPoly PolyID, nodes []searchNode) (*PathResult, error) {
	var polys []PolyID
	var linkIDs []LinkID
	for id := goalPoly; id != NoPoly; id = nodes[id].parent {
		polys = append(polys, id)
		if nodes[id].link != NoLink {
			linkIDs = append(linkIDs, nodes[id].link)
		}
	}
	reverse(polys)
	reverse(linkIDs)

	portals := make([]Edge, len(linkIDs))
	for i, lid := range linkIDs {
		portals[i] = nm.links[lid].DestEdge
	}
	waypoints := stringPull(start, goal, portals, nm.cfg.Tolerance)

	return &PathResult{
		Waypoints: waypoints,
		Polys:     polys,
		Links:     linkIDs,
	}, nil
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
