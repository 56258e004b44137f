// Package config loads tool configuration from an hjson file and maps it
// onto the generation and search parameters.
package config

import (
	"fmt"
	"os"

	"github.com/hjson/hjson-go/v4"

	"gonavcsg/logger"
	"gonavcsg/navmesh"
)

type AgentConfig struct {
	Radius         float32 `json:"radius"`
	MaxSlopeDeg    float32 `json:"max_slope_deg"`
	MaxStepHeight  float32 `json:"max_step_height"`
	MaxClimbHeight float32 `json:"max_climb_height"`
}

type BuildConfig struct {
	Tolerance  float32 `json:"tolerance"`
	MinOverlap float32 `json:"min_overlap"`
	CellSize   float32 `json:"cell_size"`
}

type SearchConfig struct {
	MaxQueryRange  float32 `json:"max_query_range"`
	HeuristicScale float32 `json:"heuristic_scale"`
	StepUpCost     float32 `json:"step_up_cost"`
	MaxNodes       int     `json:"max_nodes"`
}

type HTTPConfig struct {
	Addr string `json:"addr"`
}

type Config struct {
	Agent  AgentConfig   `json:"agent"`
	Build  BuildConfig   `json:"build"`
	Search SearchConfig  `json:"search"`
	HTTP   HTTPConfig    `json:"http"`
	Log    logger.Config `json:"log"`
}

// Default mirrors navmesh.DefaultConfig plus tool-level settings.
func Default() Config {
	nav := navmesh.DefaultConfig()
	return Config{
		Agent: AgentConfig{
			Radius:         nav.AgentRadius,
			MaxSlopeDeg:    nav.MaxSlopeDeg,
			MaxStepHeight:  nav.MaxStepHeight,
			MaxClimbHeight: nav.MaxClimbHeight,
		},
		Build: BuildConfig{
			Tolerance:  nav.Tolerance,
			MinOverlap: nav.MinOverlap,
			CellSize:   nav.CellSize,
		},
		Search: SearchConfig{
			MaxQueryRange:  nav.MaxQueryRange,
			HeuristicScale: nav.HeuristicScale,
			StepUpCost:     nav.StepUpCost,
			MaxNodes:       nav.MaxNodes,
		},
		HTTP: HTTPConfig{Addr: "127.0.0.1:8080"},
		Log: logger.Config{
			Level:      "info",
			File:       "",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// Load reads an hjson config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	fileData, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := hjson.Unmarshal(fileData, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Agent.Radius < 0 {
		return fmt.Errorf("agent.radius must be >= 0, got %v", c.Agent.Radius)
	}
	if c.Agent.MaxSlopeDeg < 0 || c.Agent.MaxSlopeDeg > 90 {
		return fmt.Errorf("agent.max_slope_deg must be in [0, 90], got %v", c.Agent.MaxSlopeDeg)
	}
	if c.Build.Tolerance <= 0 {
		return fmt.Errorf("build.tolerance must be > 0, got %v", c.Build.Tolerance)
	}
	if c.Build.CellSize <= 0 {
		return fmt.Errorf("build.cell_size must be > 0, got %v", c.Build.CellSize)
	}
	if c.Search.HeuristicScale > 1 {
		return fmt.Errorf("search.heuristic_scale must be <= 1 to keep paths optimal, got %v", c.Search.HeuristicScale)
	}
	return nil
}

// Navmesh maps the file-level sections onto a generation config.
func (c Config) Navmesh() navmesh.Config {
	return navmesh.Config{
		AgentRadius:    c.Agent.Radius,
		MaxSlopeDeg:    c.Agent.MaxSlopeDeg,
		MaxStepHeight:  c.Agent.MaxStepHeight,
		MaxClimbHeight: c.Agent.MaxClimbHeight,
		Tolerance:      c.Build.Tolerance,
		MinOverlap:     c.Build.MinOverlap,
		CellSize:       c.Build.CellSize,
		MaxQueryRange:  c.Search.MaxQueryRange,
		HeuristicScale: c.Search.HeuristicScale,
		StepUpCost:     c.Search.StepUpCost,
		MaxNodes:       c.Search.MaxNodes,
	}
}
