// Package surface carves walkable surfaces out of scene solids: boolean
// union of the input brushes, slope filtering against the up axis, and
// agent-radius clearance erosion along unconnected boundary edges.
package surface

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"gonavcsg/bsp"
	"gonavcsg/common"
)

type Config struct {
	// AgentRadius erodes the walkable boundary inward so that no walkable
	// point lies closer than this to a wall, drop-off or excluded slope.
	AgentRadius float32
	// MaxSlopeDeg is the steepest walkable surface angle. The interval is
	// closed: a surface at exactly this angle is walkable.
	MaxSlopeDeg float32
	// MaxStepHeight: boundaries onto surfaces within this height delta are
	// traversable steps, not drop-offs, and are not eroded.
	MaxStepHeight float32
	// Tolerance is the geometric epsilon threaded through every predicate.
	Tolerance float32

	Logger *zap.Logger
}

func (cfg Config) logger() *zap.Logger {
	if cfg.Logger == nil {
		return zap.NewNop()
	}
	return cfg.Logger
}

// Extract produces the walkable surface polygons for a scene. Brushes are
// solid volumes; obstacles are blocking volumes whose footprint, padded by
// the agent radius, is cut out of the walkable set; surfaces are
// pre-extracted candidate polygons that skip the boolean stage (thin
// host-supplied floors). Overlapping regions at different heights are kept
// as distinct polygons.
func Extract(brushes, obstacles []bsp.Brush, surfaces []bsp.Polygon, cfg Config) ([]bsp.Polygon, error) {
	start := time.Now()
	log := cfg.logger()
	eps := cfg.Tolerance

	scene := &bsp.Tree{}
	for i, b := range brushes {
		if len(b.Polygons) == 0 {
			return nil, fmt.Errorf("brush %d has no polygons: %w", i, bsp.ErrDegenerateGeometry)
		}
		scene = bsp.Combine(scene, bsp.TreeFromBrush(b, eps), bsp.OpUnion)
	}

	candidates := scene.Polygons()
	candidates = append(candidates, surfaces...)

	cosMax := common.Cos32(cfg.MaxSlopeDeg * math.Pi / 180)
	walkable := make([]bsp.Polygon, 0, len(candidates))
	for _, p := range candidates {
		// closed interval: angle <= max is walkable
		if p.Plane.Normal.Dot(common.Up) >= cosMax-eps {
			walkable = append(walkable, p)
		}
	}
	filtered := len(candidates) - len(walkable)

	if cfg.AgentRadius > eps {
		walkable = erode(walkable, cfg)
	}

	// Obstacles are clipped after erosion so their clearance comes from the
	// inflation alone; the cut boundary is not eroded a second time.
	for i, ob := range obstacles {
		if len(ob.Polygons) == 0 {
			return nil, fmt.Errorf("obstacle %d has no polygons: %w", i, bsp.ErrDegenerateGeometry)
		}
		clip := bsp.TreeFromBrush(ob.Inflated(cfg.AgentRadius), eps)
		walkable = clip.ClipPolygons(walkable)
	}

	out := walkable[:0]
	for _, p := range walkable {
		if p.Area() > common.Sqr(eps) {
			out = append(out, p)
		}
	}

	log.Info("surface extraction",
		zap.Int("brushes", len(brushes)),
		zap.Int("obstacles", len(obstacles)),
		zap.Int("candidates", len(candidates)),
		zap.Int("slope_filtered", filtered),
		zap.Int("walkable", len(out)),
		zap.Duration("elapsed", time.Since(start)))
	return out, nil
}
