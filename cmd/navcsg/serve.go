package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gonavcsg/common"
	"gonavcsg/config"
	"gonavcsg/logger"
	"gonavcsg/navmesh"
)

// server holds the current mesh behind an atomic pointer. Rebuilds swap the
// pointer; in-flight queries keep using the mesh they loaded.
type server struct {
	mesh atomic.Pointer[navmesh.Navmesh]
	cfg  config.Config
	log  *zap.Logger
}

func ServeCmd() *cobra.Command {
	var configFile string
	var snapshotFile string
	c := &cobra.Command{
		Use:   "serve",
		Short: "serve navmesh build and path queries over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			log := logger.Init(cfg.Log)
			defer logger.Sync()

			s := &server{cfg: cfg, log: log}
			if snapshotFile != "" {
				data, err := os.ReadFile(snapshotFile)
				if err != nil {
					return err
				}
				nm, err := navmesh.FromData(data)
				if err != nil {
					return err
				}
				s.mesh.Store(nm)
				log.Info("snapshot loaded", zap.String("path", snapshotFile),
					zap.Int("polygons", nm.PolygonCount()))
			}

			r := mux.NewRouter()
			api := r.PathPrefix("/api").Subrouter()
			api.HandleFunc("/build", s.handleBuild).Methods("POST")
			api.HandleFunc("/path", s.handlePath).Methods("POST")
			api.HandleFunc("/nearest", s.handleNearest).Methods("GET")
			api.HandleFunc("/polygons", s.handlePolygons).Methods("GET")
			api.HandleFunc("/links", s.handleLinks).Methods("GET")
			api.HandleFunc("/mesh", s.handleMesh).Methods("GET")

			handler := cors.New(cors.Options{
				AllowedOrigins: []string{"*"},
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders: []string{"*"},
			}).Handler(r)

			log.Info("listening", zap.String("addr", cfg.HTTP.Addr))
			return http.ListenAndServe(cfg.HTTP.Addr, handler)
		},
	}
	c.Flags().StringVar(&configFile, "config", "", "hjson config file")
	c.Flags().StringVar(&snapshotFile, "snapshot", "", "navmesh snapshot to preload")
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

var errNoMesh = errors.New("no navmesh built or loaded yet")

func (s *server) current() (*navmesh.Navmesh, error) {
	nm := s.mesh.Load()
	if nm == nil {
		return nil, errNoMesh
	}
	return nm, nil
}

type buildRequest struct {
	Scene sceneFile `json:"scene"`
}

type buildResponse struct {
	Polygons  int `json:"polygons"`
	Portals   int `json:"portals"`
	StepLinks int `json:"step_links"`
}

func (s *server) handleBuild(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	navCfg := s.cfg.Navmesh()
	navCfg.Logger = s.log

	geo, err := sceneGeometry(req.Scene, navCfg.Tolerance)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	nm, err := navmesh.Build(geo, navCfg)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.mesh.Store(nm)
	walks, steps := nm.LinkCount()
	writeJSON(w, http.StatusOK, buildResponse{
		Polygons:  nm.PolygonCount(),
		Portals:   walks,
		StepLinks: steps,
	})
}

type pathRequest struct {
	Start          [3]float32 `json:"start"`
	End            [3]float32 `json:"end"`
	MaxClimbHeight *float32   `json:"max_climb_height,omitempty"`
}

type pathResponse struct {
	Waypoints     [][3]float32 `json:"waypoints"`
	Polygons      []int32      `json:"polygons"`
	StepCrossings int          `json:"step_crossings"`
}

func (s *server) handlePath(w http.ResponseWriter, r *http.Request) {
	nm, err := s.current()
	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	var req pathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	agent := navmesh.Agent{MaxClimbHeight: s.cfg.Agent.MaxClimbHeight}
	if req.MaxClimbHeight != nil {
		agent.MaxClimbHeight = *req.MaxClimbHeight
	}
	res, err := nm.FindPath(
		common.Vec3{req.Start[0], req.Start[1], req.Start[2]},
		common.Vec3{req.End[0], req.End[1], req.End[2]},
		agent,
	)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, navmesh.ErrNoPath) || errors.Is(err, navmesh.ErrOutOfRange) {
			status = http.StatusNotFound
		}
		writeError(w, status, err)
		return
	}
	resp := pathResponse{
		Waypoints:     make([][3]float32, len(res.Waypoints)),
		Polygons:      make([]int32, len(res.Polys)),
		StepCrossings: res.StepCrossings(nm),
	}
	for i, p := range res.Waypoints {
		resp.Waypoints[i] = [3]float32{p[0], p[1], p[2]}
	}
	for i, id := range res.Polys {
		resp.Polygons[i] = int32(id)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleNearest(w http.ResponseWriter, r *http.Request) {
	nm, err := s.current()
	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	pos, err := queryVec3(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	id, err := nm.NearestPolygon(pos)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int32{"polygon": int32(id)})
}

type polygonJSON struct {
	ID    int32        `json:"id"`
	Verts [][3]float32 `json:"verts"`
}

func (s *server) handlePolygons(w http.ResponseWriter, r *http.Request) {
	nm, err := s.current()
	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	polys := nm.Polygons()
	out := make([]polygonJSON, len(polys))
	for i, p := range polys {
		pj := polygonJSON{ID: int32(p.ID), Verts: make([][3]float32, len(p.Verts))}
		for j, v := range p.Verts {
			pj.Verts[j] = [3]float32{v[0], v[1], v[2]}
		}
		out[i] = pj
	}
	writeJSON(w, http.StatusOK, out)
}

type linkJSON struct {
	From        int32   `json:"from"`
	To          int32   `json:"to"`
	Kind        string  `json:"kind"`
	HeightDelta float32 `json:"height_delta"`
}

func (s *server) handleLinks(w http.ResponseWriter, r *http.Request) {
	nm, err := s.current()
	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	links := nm.Links()
	out := make([]linkJSON, len(links))
	for i, l := range links {
		out[i] = linkJSON{
			From:        int32(l.From),
			To:          int32(l.To),
			Kind:        l.Kind.String(),
			HeightDelta: l.HeightDelta,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleMesh(w http.ResponseWriter, r *http.Request) {
	nm, err := s.current()
	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(nm.Data())
}
