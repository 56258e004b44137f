// Package navmesh builds walkable navigation meshes from CSG-carved scene
// geometry and answers any-angle path queries over them. A built Navmesh is
// immutable and may be shared by concurrent queries without locking; every
// query allocates its own search state.
package navmesh

import (
	"time"

	"go.uber.org/zap"

	"gonavcsg/bsp"
	"gonavcsg/common"
	"gonavcsg/surface"
)

// Config carries the agent parameters, geometric tolerances and search
// limits for one generation pass. Tolerances are threaded explicitly into
// every predicate; there are no ambient globals.
type Config struct {
	// Agent parameters.
	AgentRadius    float32
	MaxSlopeDeg    float32
	MaxStepHeight  float32
	MaxClimbHeight float32

	// Geometric tolerance used by every predicate.
	Tolerance float32
	// MinOverlap is the shortest shared boundary that still produces a
	// portal or step link.
	MinOverlap float32
	// CellSize of the point-location grid.
	CellSize float32
	// MaxQueryRange bounds nearest-polygon lookups; positions further from
	// every polygon fail with ErrOutOfRange.
	MaxQueryRange float32

	// Search tuning.
	HeuristicScale float32 // kept <= 1 to preserve admissibility
	StepUpCost     float32 // added cost per step-up traversal
	MaxNodes       int     // node expansion budget, 0 = unbounded

	Logger *zap.Logger
}

func DefaultConfig() Config {
	return Config{
		AgentRadius:    0.2,
		MaxSlopeDeg:    45,
		MaxStepHeight:  0.4,
		MaxClimbHeight: 0.4,
		Tolerance:      1e-3,
		MinOverlap:     0.01,
		CellSize:       2,
		MaxQueryRange:  10,
		HeuristicScale: 0.999,
		StepUpCost:     0.5,
		MaxNodes:       0,
	}
}

func (cfg Config) logger() *zap.Logger {
	if cfg.Logger == nil {
		return zap.NewNop()
	}
	return cfg.Logger
}

// Geometry is the host-facing scene description: solid brushes carved by the
// boolean pipeline, obstacle brushes subtracted from the walkable set with
// agent-radius padding, plus optional pre-extracted candidate surfaces that
// skip the solid stage (they are still slope-filtered and eroded).
type Geometry struct {
	Brushes   []bsp.Brush
	Obstacles []bsp.Brush
	Surfaces  []bsp.Polygon
}

// Navmesh is the immutable result of one generation pass.
type Navmesh struct {
	polys []Polygon
	links []Link
	index *gridIndex
	cfg   Config
}

// Build runs the full pipeline: surface extraction, portal derivation and
// step-link stitching. A failed build leaves any previously built mesh
// untouched; the caller decides what to discard.
func Build(geometry Geometry, cfg Config) (*Navmesh, error) {
	start := time.Now()
	log := cfg.logger()

	walkable, err := surface.Extract(geometry.Brushes, geometry.Obstacles, geometry.Surfaces, surface.Config{
		AgentRadius:   cfg.AgentRadius,
		MaxSlopeDeg:   cfg.MaxSlopeDeg,
		MaxStepHeight: cfg.MaxStepHeight,
		Tolerance:     cfg.Tolerance,
		Logger:        cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	polys := make([]Polygon, len(walkable))
	for i, p := range walkable {
		verts := make([]common.Vec3, len(p.Verts))
		copy(verts, p.Verts)
		polys[i] = Polygon{ID: PolyID(i), Verts: verts, Plane: p.Plane}
	}

	links := buildLinks(polys, cfg)

	nm := &Navmesh{
		polys: polys,
		links: links,
		cfg:   cfg,
	}
	nm.index = newGridIndex(polys, cfg.CellSize)

	walks, steps := 0, 0
	for _, l := range links {
		if l.Kind == LinkStep {
			steps++
		} else {
			walks++
		}
	}
	log.Info("navmesh built",
		zap.Int("polygons", len(polys)),
		zap.Int("portals", walks),
		zap.Int("step_links", steps),
		zap.Duration("elapsed", time.Since(start)))
	return nm, nil
}

// PolygonCount reports the number of walkable polygons.
func (nm *Navmesh) PolygonCount() int {
	return len(nm.polys)
}

// LinkCount reports walk portals and step links separately. Every adjacency
// is counted once per direction.
func (nm *Navmesh) LinkCount() (walks, steps int) {
	for _, l := range nm.links {
		if l.Kind == LinkStep {
			steps++
		} else {
			walks++
		}
	}
	return walks, steps
}

// Polygons exposes read-only iteration for host-side rendering.
func (nm *Navmesh) Polygons() []Polygon {
	return nm.polys
}

// Links exposes read-only iteration over the link arena.
func (nm *Navmesh) Links() []Link {
	return nm.links
}

// Polygon looks a polygon up by ID.
func (nm *Navmesh) Polygon(id PolyID) (Polygon, bool) {
	if id < 0 || int(id) >= len(nm.polys) {
		return Polygon{}, false
	}
	return nm.polys[id], true
}

// PolygonLinks returns the outgoing links of one polygon.
func (nm *Navmesh) PolygonLinks(id PolyID) []Link {
	p, ok := nm.Polygon(id)
	if !ok {
		return nil
	}
	out := make([]Link, 0, len(p.Links))
	for _, lid := range p.Links {
		out = append(out, nm.links[lid])
	}
	return out
}
