package navmesh

import "errors"

var (
	// ErrNoPath: start and goal lie in disconnected regions. Recoverable;
	// no partial route is returned.
	ErrNoPath = errors.New("no path")
	// ErrOutOfRange: the query position is too far from any polygon.
	ErrOutOfRange = errors.New("position out of range")
	// ErrSearchBudgetExceeded: the caller-imposed node expansion cap was
	// reached before the goal.
	ErrSearchBudgetExceeded = errors.New("search budget exceeded")
)
