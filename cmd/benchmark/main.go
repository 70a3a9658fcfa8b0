package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/botcarlos-dev/horarios/internal/model"
	"github.com/botcarlos-dev/horarios/internal/search"
)

type scenario struct {
	Name        string
	Courses     int
	Teachers    int
	Rooms       int
	Groups      int
	Days        int
	Periods     int
	Occurrences uint64
}

var scenarios = []scenario{
	{Name: "tiny", Courses: 6, Teachers: 3, Rooms: 3, Groups: 2, Days: 5, Periods: 4, Occurrences: 1},
	{Name: "small", Courses: 12, Teachers: 6, Rooms: 5, Groups: 3, Days: 5, Periods: 6, Occurrences: 1},
	{Name: "medium", Courses: 20, Teachers: 10, Rooms: 8, Groups: 4, Days: 5, Periods: 8, Occurrences: 2},
	{Name: "large", Courses: 30, Teachers: 15, Rooms: 10, Groups: 6, Days: 5, Periods: 10, Occurrences: 2},
}

func main() {
	runsPtr := flag.Int("runs", 3, "Number of timed runs per scenario")
	countPtr := flag.Int("count", 3, "Number of diverse timetables requested per run")
	similarityPtr := flag.Float64("similarity", 0.75, "Similarity threshold passed to the generator")
	timeoutPtr := flag.Duration("timeout", 30*time.Second, "Deadline per run")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	for _, s := range scenarios {
		input := buildInput(s)

		for run := range *runsPtr {
			ctx, cancel := context.WithTimeout(context.Background(), *timeoutPtr)

			started := time.Now()
			result, err := search.Generate(ctx, search.Request{
				Catalog:             input.Catalog,
				Days:                input.Days,
				Periods:             input.Periods,
				Count:               *countPtr,
				SimilarityThreshold: *similarityPtr,
			})
			elapsed := time.Since(started)
			cancel()

			if err != nil {
				logger.Error("run failed",
					zap.String("scenario", s.Name),
					zap.Int("run", run),
					zap.Error(err),
				)
				continue
			}

			logger.Info("run finished",
				zap.String("scenario", s.Name),
				zap.Int("run", run),
				zap.Int("solutions", len(result.Solutions)),
				zap.String("outcome", result.Outcome.String()),
				zap.Duration("elapsed", elapsed),
			)
		}
	}
}

// buildInput derives a deterministic synthetic catalog from the scenario
// dimensions: courses spread round-robin over teachers and groups, lectures
// hostable anywhere, labs only in the first half of the rooms.
func buildInput(s scenario) model.Input {
	raw := model.RawInput{
		Days:    make([]string, s.Days),
		Periods: make([]string, s.Periods),
		LessonTypes: []model.LessonType{
			{Name: "lecture"},
			{Name: "lab"},
		},
	}

	for day := range raw.Days {
		raw.Days[day] = fmt.Sprintf("D%v", day+1)
	}
	for period := range raw.Periods {
		raw.Periods[period] = fmt.Sprintf("P%v", period+1)
	}

	for teacher := range s.Teachers {
		raw.Teachers = append(raw.Teachers, model.Teacher{Name: fmt.Sprintf("T%v", teacher+1)})
	}
	for room := range s.Rooms {
		lessonTypes := []uint64{0}
		if room < s.Rooms/2 {
			lessonTypes = append(lessonTypes, 1)
		}
		raw.Rooms = append(raw.Rooms, model.Room{
			Name:        fmt.Sprintf("R%v", room+1),
			Capacity:    40,
			LessonTypes: lessonTypes,
		})
	}
	for group := range s.Groups {
		raw.Groups = append(raw.Groups, model.ClassGroup{Name: fmt.Sprintf("G%v", group+1), Size: 25})
	}
	for course := range s.Courses {
		raw.Courses = append(raw.Courses, model.Course{Name: fmt.Sprintf("C%v", course+1)})
		raw.Requirements = append(raw.Requirements, model.RawRequirement{
			Course:      uint64(course),
			Group:       uint64(course % s.Groups),
			Teacher:     uint64(course % s.Teachers),
			LessonType:  uint64(course % 2),
			Occurrences: s.Occurrences,
		})
	}

	input, err := model.ProcessRawInput(raw)
	if err != nil {
		panic(fmt.Sprintf("invalid synthetic catalog %v: %v", s.Name, err))
	}
	return input
}
