package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Agent.Radius <= 0 {
		t.Errorf("default agent radius = %v", cfg.Agent.Radius)
	}
	if cfg.Search.HeuristicScale > 1 {
		t.Errorf("default heuristic scale %v breaks admissibility", cfg.Search.HeuristicScale)
	}
	if cfg.HTTP.Addr == "" {
		t.Errorf("default http addr must be set")
	}
	nav := cfg.Navmesh()
	if nav.AgentRadius != cfg.Agent.Radius || nav.CellSize != cfg.Build.CellSize {
		t.Errorf("Navmesh() dropped fields")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("empty path must return defaults")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "navcsg.hjson")
	body := `
{
  // agent tuning, comments allowed
  agent: {
    radius: 0.35
    max_step_height: 0.25
  }
  search: {
    max_nodes: 4096
  }
}
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Agent.Radius != 0.35 {
		t.Errorf("agent.radius = %v, want 0.35", cfg.Agent.Radius)
	}
	if cfg.Agent.MaxStepHeight != 0.25 {
		t.Errorf("agent.max_step_height = %v, want 0.25", cfg.Agent.MaxStepHeight)
	}
	if cfg.Search.MaxNodes != 4096 {
		t.Errorf("search.max_nodes = %d, want 4096", cfg.Search.MaxNodes)
	}
	// untouched sections keep their defaults
	if cfg.Build.CellSize != Default().Build.CellSize {
		t.Errorf("unset build.cell_size lost its default")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"negative radius": `{agent: {radius: -1}}`,
		"slope over 90":   `{agent: {max_slope_deg: 120}}`,
		"zero tolerance":  `{build: {tolerance: 0}}`,
		"inflated scale":  `{search: {heuristic_scale: 1.5}}`,
	}
	for name, body := range cases {
		path := filepath.Join(t.TempDir(), "bad.hjson")
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: config accepted", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.hjson")); err == nil {
		t.Errorf("missing file must report an error")
	}
}
