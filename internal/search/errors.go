package search

import "errors"

var (
	// ErrInfeasible means the catalog cannot be satisfied even once: some
	// requirement has no compatible (slot, room) option, or total demand
	// exceeds what the universe can hold. Detected before any search runs.
	ErrInfeasible = errors.New("catalog cannot satisfy its own constraints")

	// ErrNoSolutions means the search space was exhausted without producing
	// a single valid timetable.
	ErrNoSolutions = errors.New("no valid timetable exists for the catalog")
)
