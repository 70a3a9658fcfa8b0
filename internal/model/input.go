package model

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type RawRequirement struct {
	Course      uint64
	Group       uint64
	Teacher     uint64
	LessonType  uint64 `mapstructure:"lessonType"`
	Occurrences uint64
	Duration    uint64
}

type RawInput struct {
	Days         []string
	Periods      []string
	Teachers     []Teacher
	Rooms        []Room
	Groups       []ClassGroup
	LessonTypes  []LessonType     `mapstructure:"lessonTypes"`
	Courses      []Course
	Requirements []RawRequirement
}

// Input is a processed catalog snapshot together with the day and period
// universes it was authored against.
type Input struct {
	Days    []string
	Periods []string
	Catalog Catalog
}

func InputFromJson(file string) (Input, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Input{}, err
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Input{}, err
	}

	var rawInput RawInput
	if err := mapstructure.Decode(inputJson, &rawInput); err != nil {
		return Input{}, fmt.Errorf("cannot decode input: %w", err)
	}

	return ProcessRawInput(rawInput)
}

// ProcessRawInput normalizes a raw catalog: ids are assigned positionally,
// omitted occurrence counts and durations default to one lesson and one
// period, and course conflicts are mirrored so that the relation is
// symmetric regardless of which side declared it.
func ProcessRawInput(rawInput RawInput) (Input, error) {
	catalog := Catalog{
		Teachers:    rawInput.Teachers,
		Rooms:       rawInput.Rooms,
		Groups:      rawInput.Groups,
		LessonTypes: rawInput.LessonTypes,
		Courses:     rawInput.Courses,
	}

	for i := range catalog.Teachers {
		catalog.Teachers[i].Id = uint64(i)
	}
	for i := range catalog.Rooms {
		catalog.Rooms[i].Id = uint64(i)
	}
	for i := range catalog.Groups {
		catalog.Groups[i].Id = uint64(i)
	}
	for i := range catalog.LessonTypes {
		catalog.LessonTypes[i].Id = uint64(i)
	}
	for i := range catalog.Courses {
		catalog.Courses[i].Id = uint64(i)
	}

	//** Mirror course conflicts
	for i := range catalog.Courses {
		for _, conflict := range catalog.Courses[i].Conflicts {
			if conflict >= uint64(len(catalog.Courses)) {
				return Input{}, fmt.Errorf("course \"%v\" references unknown conflicting course %v", catalog.Courses[i].Name, conflict)
			}
			mirrored := &catalog.Courses[conflict]
			if !slices.Contains(mirrored.Conflicts, uint64(i)) {
				mirrored.Conflicts = append(mirrored.Conflicts, uint64(i))
			}
		}
	}
	for i := range catalog.Courses {
		slices.Sort(catalog.Courses[i].Conflicts)
	}

	//** Expand requirements
	catalog.Requirements = lo.Map(rawInput.Requirements, func(raw RawRequirement, i int) Requirement {
		requirement := Requirement{
			Id:          uint64(i),
			Course:      raw.Course,
			Group:       raw.Group,
			Teacher:     raw.Teacher,
			LessonType:  raw.LessonType,
			Occurrences: raw.Occurrences,
			Duration:    raw.Duration,
		}
		if requirement.Occurrences == 0 {
			requirement.Occurrences = 1
		}
		if requirement.Duration == 0 {
			requirement.Duration = 1
		}
		return requirement
	})

	if err := catalog.Validate(uint64(len(rawInput.Days)), uint64(len(rawInput.Periods))); err != nil {
		return Input{}, err
	}

	return Input{
		Days:    rawInput.Days,
		Periods: rawInput.Periods,
		Catalog: catalog,
	}, nil
}
