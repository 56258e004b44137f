package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"gonavcsg/bsp"
	"gonavcsg/common"
	"gonavcsg/navmesh"
)

// Scene file format. Boxes are a shorthand for axis-aligned brushes; brushes
// carry explicit convex polygon loops; obstacles are axis-aligned blocking
// volumes cut out of the walkable set with agent-radius padding; surfaces
// are pre-extracted walkable candidates that bypass the solid stage.
type sceneFile struct {
	Boxes     []sceneBox `json:"boxes"`
	Obstacles []sceneBox `json:"obstacles"`
	Brushes   []struct {
		Polygons [][][3]float32 `json:"polygons"`
	} `json:"brushes"`
	Surfaces [][][3]float32 `json:"surfaces"`
}

type sceneBox struct {
	Min [3]float32 `json:"min"`
	Max [3]float32 `json:"max"`
}

func (b sceneBox) brush() (bsp.Brush, error) {
	min := common.Vec3{b.Min[0], b.Min[1], b.Min[2]}
	max := common.Vec3{b.Max[0], b.Max[1], b.Max[2]}
	for k := 0; k < 3; k++ {
		if min[k] >= max[k] {
			return bsp.Brush{}, fmt.Errorf("min must be strictly below max on every axis")
		}
	}
	return bsp.BoxBrush(min, max), nil
}

func loadScene(path string, tolerance float32) (navmesh.Geometry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return navmesh.Geometry{}, fmt.Errorf("read scene: %w", err)
	}
	var scene sceneFile
	if err := json.Unmarshal(data, &scene); err != nil {
		return navmesh.Geometry{}, fmt.Errorf("parse scene %s: %w", path, err)
	}
	geo, err := sceneGeometry(scene, tolerance)
	if err != nil {
		return geo, fmt.Errorf("scene %s: %w", path, err)
	}
	return geo, nil
}

func sceneGeometry(scene sceneFile, tolerance float32) (navmesh.Geometry, error) {
	var geo navmesh.Geometry
	for i, b := range scene.Boxes {
		brush, err := b.brush()
		if err != nil {
			return geo, fmt.Errorf("box %d: %w", i, err)
		}
		geo.Brushes = append(geo.Brushes, brush)
	}

	for i, b := range scene.Obstacles {
		brush, err := b.brush()
		if err != nil {
			return geo, fmt.Errorf("obstacle %d: %w", i, err)
		}
		geo.Obstacles = append(geo.Obstacles, brush)
	}

	for i, b := range scene.Brushes {
		loops := make([][]common.Vec3, len(b.Polygons))
		for j, loop := range b.Polygons {
			loops[j] = toVecs(loop)
		}
		brush, err := bsp.NewBrush(loops, tolerance)
		if err != nil {
			return geo, fmt.Errorf("brush %d: %w", i, err)
		}
		geo.Brushes = append(geo.Brushes, brush)
	}

	for i, loop := range scene.Surfaces {
		poly, err := bsp.NewPolygon(toVecs(loop), tolerance)
		if err != nil {
			return geo, fmt.Errorf("surface %d: %w", i, err)
		}
		geo.Surfaces = append(geo.Surfaces, poly)
	}

	if len(geo.Brushes) == 0 && len(geo.Surfaces) == 0 {
		return geo, fmt.Errorf("no geometry")
	}
	return geo, nil
}

// queryVec3 parses x, y, z query parameters into a position.
func queryVec3(r *http.Request) (common.Vec3, error) {
	var pos common.Vec3
	q := r.URL.Query()
	for i, key := range []string{"x", "y", "z"} {
		raw := q.Get(key)
		if raw == "" {
			return pos, fmt.Errorf("missing query parameter %q", key)
		}
		v, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return pos, fmt.Errorf("bad query parameter %q: %w", key, err)
		}
		pos[i] = float32(v)
	}
	return pos, nil
}

func toVecs(loop [][3]float32) []common.Vec3 {
	out := make([]common.Vec3, len(loop))
	for i, v := range loop {
		out[i] = common.Vec3{v[0], v[1], v[2]}
	}
	return out
}
