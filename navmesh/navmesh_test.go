package navmesh

import (
	"testing"

	"gonavcsg/bsp"
	"gonavcsg/common"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.AgentRadius = 0 // geometry in these tests is already eroded
	cfg.MaxStepHeight = 0.5
	cfg.MaxClimbHeight = 0.5
	return cfg
}

func square(t *testing.T, x0, z0, x1, z1, y float32) bsp.Polygon {
	t.Helper()
	p, err := bsp.NewPolygon([]common.Vec3{
		{x0, y, z0},
		{x0, y, z1},
		{x1, y, z1},
		{x1, y, z0},
	}, 1e-3)
	if err != nil {
		t.Fatalf("test square: %v", err)
	}
	return p
}

func buildMesh(t *testing.T, cfg Config, surfaces ...bsp.Polygon) *Navmesh {
	t.Helper()
	nm, err := Build(Geometry{Surfaces: surfaces}, cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return nm
}

func TestBuildTwoSquares(t *testing.T) {
	nm := buildMesh(t, testConfig(),
		square(t, 0, 0, 1, 1, 0),
		square(t, 1, 0, 2, 1, 0),
	)
	if nm.PolygonCount() != 2 {
		t.Fatalf("polygon count = %d, want 2", nm.PolygonCount())
	}
	walks, steps := nm.LinkCount()
	if walks != 2 || steps != 0 {
		t.Errorf("links = %d walks, %d steps, want 2 and 0", walks, steps)
	}
	for _, p := range nm.Polygons() {
		if len(p.Links) != 1 {
			t.Errorf("polygon %d has %d links, want 1", p.ID, len(p.Links))
		}
	}
}

// Every link has its mirror stored alongside: swapped endpoints, negated
// height delta, reversed edges.
func TestLinkMirrors(t *testing.T) {
	nm := buildMesh(t, testConfig(),
		square(t, 0, 0, 1, 1, 0),
		square(t, 1, 0, 2, 1, 0.3),
		square(t, 2, 0, 3, 1, 0.3),
	)
	links := nm.Links()
	if len(links)%2 != 0 {
		t.Fatalf("odd link count %d", len(links))
	}
	for i := 0; i < len(links); i += 2 {
		fwd, rev := links[i], links[i+1]
		if fwd.From != rev.To || fwd.To != rev.From {
			t.Errorf("link %d mirror has wrong endpoints", i)
		}
		if fwd.Kind != rev.Kind {
			t.Errorf("link %d mirror changed kind", i)
		}
		if fwd.HeightDelta != -rev.HeightDelta {
			t.Errorf("link %d mirror delta = %v, want %v", i, rev.HeightDelta, -fwd.HeightDelta)
		}
	}
}

func TestStepLinkWithinLimit(t *testing.T) {
	nm := buildMesh(t, testConfig(),
		square(t, 0, 0, 1, 1, 0),
		square(t, 1, 0, 2, 1, 0.3),
	)
	walks, steps := nm.LinkCount()
	if walks != 0 || steps != 2 {
		t.Fatalf("links = %d walks, %d steps, want 0 and 2", walks, steps)
	}
	var up *Link
	for i := range nm.Links() {
		if nm.Links()[i].HeightDelta > 0 {
			up = &nm.Links()[i]
		}
	}
	if up == nil {
		t.Fatalf("no step-up link found")
	}
	if common.Abs(up.HeightDelta-0.3) > 1e-3 {
		t.Errorf("step-up delta = %v, want 0.3", up.HeightDelta)
	}
	low, _ := nm.Polygon(up.From)
	high, _ := nm.Polygon(up.To)
	if low.Centroid().Y() >= high.Centroid().Y() {
		t.Errorf("step-up link must run from the lower polygon to the higher one")
	}
}

func TestNoLinkBeyondStepHeight(t *testing.T) {
	nm := buildMesh(t, testConfig(),
		square(t, 0, 0, 1, 1, 0),
		square(t, 1, 0, 2, 1, 5),
	)
	walks, steps := nm.LinkCount()
	if walks != 0 || steps != 0 {
		t.Errorf("links across a 5 unit cliff: %d walks, %d steps, want none", walks, steps)
	}
}

// Surfaces that overlap in plan at different heights stay separate polygons
// with no connection between them.
func TestOverlappingHeightsStaySeparate(t *testing.T) {
	nm := buildMesh(t, testConfig(),
		square(t, 0, 0, 2, 2, 0),
		square(t, 0, 0, 2, 2, 3),
	)
	if nm.PolygonCount() != 2 {
		t.Fatalf("polygon count = %d, want 2", nm.PolygonCount())
	}
	walks, steps := nm.LinkCount()
	if walks != 0 || steps != 0 {
		t.Errorf("stacked surfaces must not link: %d walks, %d steps", walks, steps)
	}
}

// Two identical builds must agree exactly: polygon order, link order, and
// query results.
func TestBuildDeterministic(t *testing.T) {
	surfaces := func() []bsp.Polygon {
		return []bsp.Polygon{
			square(t, 0, 0, 1, 1, 0),
			square(t, 1, 0, 2, 1, 0.3),
			square(t, 2, 0, 3, 1, 0.3),
			square(t, 0, 1, 1, 2, 0),
		}
	}
	a := buildMesh(t, testConfig(), surfaces()...)
	b := buildMesh(t, testConfig(), surfaces()...)

	if a.PolygonCount() != b.PolygonCount() || len(a.Links()) != len(b.Links()) {
		t.Fatalf("builds disagree on counts")
	}
	for i := range a.Links() {
		if a.Links()[i] != b.Links()[i] {
			t.Errorf("link %d differs between identical builds", i)
		}
	}

	agent := Agent{MaxClimbHeight: 0.5}
	p1, err1 := a.FindPath(common.Vec3{0.5, 0, 0.5}, common.Vec3{2.5, 0.3, 0.5}, agent)
	p2, err2 := b.FindPath(common.Vec3{0.5, 0, 0.5}, common.Vec3{2.5, 0.3, 0.5}, agent)
	if err1 != nil || err2 != nil {
		t.Fatalf("path errors: %v, %v", err1, err2)
	}
	if len(p1.Waypoints) != len(p2.Waypoints) {
		t.Fatalf("identical builds produced different paths")
	}
	for i := range p1.Waypoints {
		if p1.Waypoints[i] != p2.Waypoints[i] {
			t.Errorf("waypoint %d differs between identical builds", i)
		}
	}
}
