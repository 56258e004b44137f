package bsp

import "errors"

// ErrDegenerateGeometry is returned when an input polygon is malformed:
// fewer than three vertices, zero area, or vertices off its plane beyond
// tolerance. It is raised at ingestion and is fatal to that build call only.
var ErrDegenerateGeometry = errors.New("degenerate geometry")
