package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/botcarlos-dev/horarios/internal/model"
)

var (
	oneSlot   = []string{"Mon"}
	onePeriod = []string{"P1"}

	threeDays    = []string{"Mon", "Tue", "Wed"}
	threePeriods = []string{"P1", "P2", "P3"}
)

func TestGenerateZeroCount(t *testing.T) {
	// Arrange: the catalog is unsatisfiable, but a zero-count request must
	// not even construct the engine
	request := Request{
		Catalog:             contendedCatalog(),
		Days:                oneSlot,
		Periods:             onePeriod,
		Count:               0,
		SimilarityThreshold: 1,
	}

	// Act
	result, err := Generate(context.Background(), request)

	// Assert
	assert.Nil(t, err)
	assert.NotNil(t, result.Solutions)
	assert.Empty(t, result.Solutions)
	assert.Equal(t, Complete, result.Outcome)
}

func TestGenerateValidation(t *testing.T) {
	t.Run("negative count", func(t *testing.T) {
		_, err := Generate(context.Background(), Request{
			Catalog: singleCatalog(), Days: oneSlot, Periods: onePeriod,
			Count: -1, SimilarityThreshold: 1,
		})
		assert.ErrorContains(t, err, "must not be negative")
	})

	t.Run("threshold outside the unit interval", func(t *testing.T) {
		_, err := Generate(context.Background(), Request{
			Catalog: singleCatalog(), Days: oneSlot, Periods: onePeriod,
			Count: 1, SimilarityThreshold: 1.5,
		})
		assert.ErrorContains(t, err, "similarity threshold")
	})

	t.Run("broken catalog", func(t *testing.T) {
		catalog := singleCatalog()
		catalog.Requirements[0].Teacher = 9

		_, err := Generate(context.Background(), Request{
			Catalog: catalog, Days: oneSlot, Periods: onePeriod,
			Count: 1, SimilarityThreshold: 1,
		})
		assert.ErrorContains(t, err, "unknown teacher")
	})
}

func TestGenerateInfeasible(t *testing.T) {
	// Act
	_, err := Generate(context.Background(), Request{
		Catalog:             contendedCatalog(),
		Days:                oneSlot,
		Periods:             onePeriod,
		Count:               1,
		SimilarityThreshold: 1,
	})

	// Assert
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestGenerateNoSolutions(t *testing.T) {
	// Act
	_, err := Generate(context.Background(), Request{
		Catalog:             clashCatalog(),
		Days:                oneSlot,
		Periods:             onePeriod,
		Count:               1,
		SimilarityThreshold: 1,
	})

	// Assert
	assert.ErrorIs(t, err, ErrNoSolutions)
}

func TestGeneratePartialResult(t *testing.T) {
	// Arrange: exactly one timetable exists, three are requested
	request := Request{
		Catalog:             singleCatalog(),
		Days:                oneSlot,
		Periods:             onePeriod,
		Count:               3,
		SimilarityThreshold: 1,
	}

	// Act
	result, err := Generate(context.Background(), request)

	// Assert
	assert.Nil(t, err)
	assert.Equal(t, Partial, result.Outcome)
	assert.Len(t, result.Solutions, 1)
	assert.Equal(t, []model.Placement{
		{Requirement: 0, Slot: model.TimeSlot{Day: 0, Period: 0}, Room: 0},
	}, result.Solutions[0].Placements)

	// Indexed selection is stable and validates its bounds
	first, err := model.SelectSolution(result.Solutions, 0)
	assert.Nil(t, err)
	again, err := model.SelectSolution(result.Solutions, 0)
	assert.Nil(t, err)
	assert.Equal(t, first, again)

	_, err = model.SelectSolution(result.Solutions, 1)
	assert.ErrorIs(t, err, model.ErrIndexOutOfRange)
}

func TestGenerateRoomSwapDiversity(t *testing.T) {
	request := Request{
		Catalog: twoRoomCatalog(),
		Days:    oneSlot,
		Periods: onePeriod,
		Count:   3,
	}

	t.Run("a permissive threshold keeps the room swap", func(t *testing.T) {
		// Arrange
		request := request
		request.SimilarityThreshold = 1

		// Act
		result, err := Generate(context.Background(), request)

		// Assert: the two arrangements share no placement
		assert.Nil(t, err)
		assert.Equal(t, Partial, result.Outcome)
		assert.Len(t, result.Solutions, 2)
		assert.Equal(t, 0.0, model.Similarity(result.Solutions[0], result.Solutions[1]))
	})

	t.Run("a zero threshold keeps only the first timetable", func(t *testing.T) {
		// Arrange
		request := request
		request.SimilarityThreshold = 0

		// Act
		result, err := Generate(context.Background(), request)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, Partial, result.Outcome)
		assert.Len(t, result.Solutions, 1)
	})
}

func TestGenerateDiverseSolutions(t *testing.T) {
	// Arrange
	catalog := richCatalog()
	request := Request{
		Catalog:             catalog,
		Days:                threeDays,
		Periods:             threePeriods,
		Count:               3,
		SimilarityThreshold: 0.6,
	}

	// Act
	result, err := Generate(context.Background(), request)

	// Assert
	assert.Nil(t, err)
	assert.Equal(t, Complete, result.Outcome)
	assert.Len(t, result.Solutions, 3)

	for _, solution := range result.Solutions {
		assert.True(t, model.Verify(solution, catalog, 3, 3))
	}
	for i := range result.Solutions {
		for j := i + 1; j < len(result.Solutions); j++ {
			assert.Less(t, model.Similarity(result.Solutions[i], result.Solutions[j]), request.SimilarityThreshold)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	// Arrange
	request := Request{
		Catalog:             richCatalog(),
		Days:                threeDays,
		Periods:             threePeriods,
		Count:               3,
		SimilarityThreshold: 0.6,
	}

	// Act
	first, err1 := Generate(context.Background(), request)
	second, err2 := Generate(context.Background(), request)

	// Assert
	assert.Nil(t, err1)
	assert.Nil(t, err2)
	assert.Equal(t, first, second)
}

func TestGenerateCancelled(t *testing.T) {
	// Arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	result, err := Generate(ctx, Request{
		Catalog:             richCatalog(),
		Days:                threeDays,
		Periods:             threePeriods,
		Count:               3,
		SimilarityThreshold: 0.6,
	})

	// Assert: cancellation is an outcome carrying what was accepted, not an error
	assert.Nil(t, err)
	assert.Equal(t, Cancelled, result.Outcome)
	assert.Empty(t, result.Solutions)
}
