package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/botcarlos-dev/horarios/internal/model"
	"github.com/botcarlos-dev/horarios/internal/search"
)

type solutionOutput struct {
	Index   int                   `json:"index"`
	Days    []string              `json:"days"`
	Periods []string              `json:"periods"`
	Grid    [][][]placementOutput `json:"grid"`
}

type placementOutput struct {
	Course     string `json:"course"`
	Teacher    string `json:"teacher"`
	Room       string `json:"room"`
	LessonType string `json:"lessonType"`
	Group      string `json:"group"`
}

type generationOutput struct {
	Outcome   string           `json:"outcome"`
	Solutions []solutionOutput `json:"solutions"`
}

func main() {
	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the input catalog file")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	countPtr := flag.Int("count", 3, "Number of diverse timetables to generate")
	similarityPtr := flag.Float64("similarity", 0.75, "Similarity threshold (between 0 and 1): two kept timetables must share fewer identical placements than this fraction, where 0.75 is the default")
	timeoutPtr := flag.Duration("timeout", 0, "Deadline for the whole generation; 0 means no deadline")
	verbosePtr := flag.Bool("verbose", false, "Log accepted and rejected candidate timetables")
	flag.Parse()
	filePath := *filePathPtr
	outFile := *outFilePathPtr

	logger := buildLogger(*verbosePtr)
	defer logger.Sync()

	// Validate arguments
	if filePath == "" {
		logger.Fatal("an input file must be specified")
	} else if *countPtr < 0 {
		logger.Fatal("count must not be negative", zap.Int("count", *countPtr))
	} else if *similarityPtr < 0 || *similarityPtr > 1 {
		logger.Fatal("similarity threshold must lie within [0, 1]", zap.Float64("similarity", *similarityPtr))
	}

	// Extract input
	input, err := model.InputFromJson(filePath)
	if err != nil {
		logger.Fatal("cannot parse input file", zap.Error(err))
	}

	ctx := context.Background()
	if *timeoutPtr > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeoutPtr)
		defer cancel()
	}

	// Generate timetables
	started := time.Now()
	result, err := search.Generate(ctx, search.Request{
		Catalog:             input.Catalog,
		Days:                input.Days,
		Periods:             input.Periods,
		Count:               *countPtr,
		SimilarityThreshold: *similarityPtr,
		Logger:              logger,
	})
	if errors.Is(err, search.ErrInfeasible) || errors.Is(err, search.ErrNoSolutions) {
		logger.Error("no timetable satisfies the catalog", zap.Error(err))
		os.Exit(20)
	} else if err != nil {
		logger.Fatal("an error occurred during timetable generation", zap.Error(err))
	}

	logger.Info("generation finished",
		zap.Int("solutions", len(result.Solutions)),
		zap.String("outcome", result.Outcome.String()),
		zap.Duration("elapsed", time.Since(started)),
	)

	// Verify every emitted timetable before handing it out
	days, periods := uint64(len(input.Days)), uint64(len(input.Periods))
	for i, solution := range result.Solutions {
		if !model.Verify(solution, input.Catalog, days, periods) {
			logger.Fatal("emitted timetable violates an invariant", zap.Int("index", i))
		}
	}

	// Build output from solutions
	output := generationOutput{
		Outcome: result.Outcome.String(),
		Solutions: lo.Map(result.Solutions, func(solution model.Solution, i int) solutionOutput {
			grid := solution.Grid(input.Catalog, days, periods)
			return solutionOutput{
				Index:   i,
				Days:    input.Days,
				Periods: input.Periods,
				Grid: lo.Map(grid, func(day [][]model.PlacementView, _ int) [][]placementOutput {
					return lo.Map(day, func(cell []model.PlacementView, _ int) []placementOutput {
						return lo.Map(cell, func(view model.PlacementView, _ int) placementOutput {
							return placementOutput{
								Course:     view.Course,
								Teacher:    view.Teacher,
								Room:       view.Room,
								LessonType: view.LessonType,
								Group:      view.Group,
							}
						})
					})
				}),
			}
		}),
	}

	// Marshal output into json
	outputJson, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		logger.Fatal("an error occurred while building output json", zap.Error(err))
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		fmt.Println(string(outputJson))
	} else if err := os.WriteFile(outFile, outputJson, 0666); err != nil {
		logger.Fatal("an error occurred while writing to the output file", zap.Error(err))
	}
}

func buildLogger(verbose bool) *zap.Logger {
	config := zap.NewProductionConfig()
	if verbose {
		config = zap.NewDevelopmentConfig()
	}
	logger, err := config.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot initialize logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}
