package search

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/botcarlos-dev/horarios/internal/model"
)

// Outcome tags how a generation run ended.
type Outcome int

const (
	// Complete: every requested solution was found.
	Complete Outcome = iota
	// Partial: the search space was exhausted before reaching the requested
	// count; the returned solutions are all that exist under the threshold.
	Partial
	// Cancelled: generation was halted by the caller's cancellation signal
	// or deadline; the returned solutions were accepted before the halt.
	Cancelled
)

func (outcome Outcome) String() string {
	switch outcome {
	case Complete:
		return "complete"
	case Partial:
		return "partial"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Request carries one generation run's full configuration: the catalog
// snapshot, the day and period universes, the desired solution count and
// the diversity threshold two solutions must stay below to both be kept.
type Request struct {
	Catalog             model.Catalog
	Days                []string
	Periods             []string
	Count               int
	SimilarityThreshold float64
	Logger              *zap.Logger
}

// Result is an ordered, index-addressable list of pairwise-diverse
// solutions. The order is fully determined by the catalog and request, so
// a solution's index is stable across identical runs.
type Result struct {
	Solutions []model.Solution
	Outcome   Outcome
}

// Generate pulls solutions lazily from the search engine and keeps one only
// when its similarity to every already-kept solution is below the
// threshold, stopping at the requested count or on exhaustion. Fewer than
// requested is not an error; zero is (ErrNoSolutions), and a structurally
// unsatisfiable catalog fails fast with ErrInfeasible before any search.
func Generate(ctx context.Context, request Request) (Result, error) {
	logger := request.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if request.Count < 0 {
		return Result{}, fmt.Errorf("desired solution count must not be negative: %v", request.Count)
	}
	if request.SimilarityThreshold < 0 || request.SimilarityThreshold > 1 {
		return Result{}, fmt.Errorf("similarity threshold must lie within [0, 1]: %v", request.SimilarityThreshold)
	}

	days, periods := uint64(len(request.Days)), uint64(len(request.Periods))
	if err := request.Catalog.Validate(days, periods); err != nil {
		return Result{}, err
	}

	accepted := make([]model.Solution, 0, request.Count)
	if request.Count == 0 {
		return Result{Solutions: accepted, Outcome: Complete}, nil
	}

	engine, err := NewEngine(request.Catalog, days, periods)
	if err != nil {
		return Result{}, err
	}

	pulled := 0
	for len(accepted) < request.Count {
		solution, ok, err := engine.Next(ctx)
		if err != nil {
			logger.Info("timetable generation halted",
				zap.Int("accepted", len(accepted)),
				zap.Int("pulled", pulled),
				zap.Error(err),
			)
			return Result{Solutions: accepted, Outcome: Cancelled}, nil
		}
		if !ok {
			if len(accepted) == 0 {
				return Result{}, ErrNoSolutions
			}
			logger.Info("search exhausted",
				zap.Int("accepted", len(accepted)),
				zap.Int("requested", request.Count),
				zap.Int("pulled", pulled),
			)
			return Result{Solutions: accepted, Outcome: Partial}, nil
		}
		pulled++

		// Keep the solution only if it is diverse against everything kept so far
		if lo.SomeBy(accepted, func(kept model.Solution) bool {
			return model.Similarity(kept, solution) >= request.SimilarityThreshold
		}) {
			logger.Debug("solution rejected as too similar", zap.Int("pulled", pulled))
			continue
		}

		accepted = append(accepted, solution)
		logger.Debug("solution accepted",
			zap.Int("index", len(accepted)-1),
			zap.Int("pulled", pulled),
		)
	}

	return Result{Solutions: accepted, Outcome: Complete}, nil
}
