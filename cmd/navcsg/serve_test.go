package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"gonavcsg/config"
)

func testServer(t *testing.T) *server {
	t.Helper()
	return &server{cfg: config.Default(), log: zap.NewNop()}
}

func buildTestMesh(t *testing.T, s *server) {
	t.Helper()
	body := `{"scene": {"boxes": [
		{"min": [0, 0, 0], "max": [4, 1, 4]},
		{"min": [4, 0, 0], "max": [8, 1.3, 4]}
	]}}`
	req := httptest.NewRequest("POST", "/api/build", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	s.handleBuild(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("build returned %d: %s", w.Code, w.Body.String())
	}
}

func TestHandleBuild(t *testing.T) {
	s := testServer(t)
	buildTestMesh(t, s)

	var resp buildResponse
	// rebuild to inspect the response body
	body := `{"scene": {"boxes": [{"min": [0, 0, 0], "max": [4, 1, 4]}]}}`
	req := httptest.NewRequest("POST", "/api/build", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	s.handleBuild(w, req)
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Polygons == 0 {
		t.Errorf("build reported zero polygons")
	}
}

func TestHandleBuildRejectsEmptyScene(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest("POST", "/api/build", bytes.NewBufferString(`{"scene": {}}`))
	w := httptest.NewRecorder()
	s.handleBuild(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty scene returned %d, want 400", w.Code)
	}
}

func TestHandlePath(t *testing.T) {
	s := testServer(t)
	buildTestMesh(t, s)

	body := `{"start": [1, 1, 2], "end": [7, 1.3, 2]}`
	req := httptest.NewRequest("POST", "/api/path", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	s.handlePath(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("path returned %d: %s", w.Code, w.Body.String())
	}
	var resp pathResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Waypoints) < 2 {
		t.Errorf("path has %d waypoints", len(resp.Waypoints))
	}
	if resp.StepCrossings != 1 {
		t.Errorf("path reported %d step crossings, want 1", resp.StepCrossings)
	}
}

func TestHandlePathWithoutMesh(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest("POST", "/api/path", bytes.NewBufferString(`{"start": [0, 0, 0], "end": [1, 0, 1]}`))
	w := httptest.NewRecorder()
	s.handlePath(w, req)
	if w.Code != http.StatusConflict {
		t.Errorf("path without mesh returned %d, want 409", w.Code)
	}
}

func TestHandleNearest(t *testing.T) {
	s := testServer(t)
	buildTestMesh(t, s)

	req := httptest.NewRequest("GET", "/api/nearest?x=1&y=1&z=2", nil)
	w := httptest.NewRecorder()
	s.handleNearest(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("nearest returned %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/nearest?x=1&y=1", nil)
	w = httptest.NewRecorder()
	s.handleNearest(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing z returned %d, want 400", w.Code)
	}
}
