package search

import (
	"context"

	"github.com/botcarlos-dev/horarios/internal/model"
)

// Engine lazily enumerates complete, conflict-free timetables in a fixed
// deterministic order. A consumer pulls one solution at a time and may stop
// at any point; the suspended search state is kept between calls, so the
// next pull resumes where the previous one left off instead of restarting.
type Engine interface {
	// Next produces the next solution. ok is false once the search space is
	// exhausted. A non-nil error is only returned when the context is
	// cancelled or its deadline expires, in which case the search state is
	// discarded and subsequent calls report exhaustion.
	Next(ctx context.Context) (solution model.Solution, ok bool, err error)
}

// NewEngine prepares a search over the catalog within a day/period universe
// of the given sizes. It fails with ErrInfeasible when the catalog is
// structurally unsatisfiable, without exploring any assignment.
func NewEngine(catalog model.Catalog, days, periods uint64) (Engine, error) {
	evaluator := model.NewConstraintEvaluator(catalog, days, periods)
	domains := buildDomains(catalog, evaluator, days, periods)

	if err := checkFeasible(catalog, domains, periods); err != nil {
		return nil, err
	}

	return newCursor(catalog, evaluator, domains, days, periods), nil
}
