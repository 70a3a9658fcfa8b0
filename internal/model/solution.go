package model

import (
	"errors"
	"slices"

	"github.com/samber/lo"
)

var ErrIndexOutOfRange = errors.New("solution index out of range")

// Placement schedules one occurrence of a requirement: its lessons start at
// Slot in Room and run for the requirement's duration in consecutive periods.
type Placement struct {
	Requirement uint64
	Slot        TimeSlot
	Room        uint64
}

// Solution is one complete, conflict-free weekly timetable. Placements are
// kept sorted by (day, period, room, requirement), which makes two equal
// timetables byte-for-byte identical.
type Solution struct {
	Placements []Placement
}

func NewSolution(placements []Placement) Solution {
	sorted := make([]Placement, len(placements))
	copy(sorted, placements)
	slices.SortFunc(sorted, comparePlacements)
	return Solution{Placements: sorted}
}

func comparePlacements(a, b Placement) int {
	if comparison := a.Slot.Compare(b.Slot); comparison != 0 {
		return comparison
	}
	if a.Room != b.Room {
		if a.Room < b.Room {
			return -1
		}
		return 1
	}
	if a.Requirement != b.Requirement {
		if a.Requirement < b.Requirement {
			return -1
		}
		return 1
	}
	return 0
}

// Similarity is the fraction of placements the two solutions have in common.
// Two complete solutions of one catalog hold the same number of placements,
// so the divisor is simply the larger of the two counts.
func Similarity(a, b Solution) float64 {
	if len(a.Placements) == 0 && len(b.Placements) == 0 {
		return 1
	}

	placements := make(map[Placement]bool, len(a.Placements))
	for _, placement := range a.Placements {
		placements[placement] = true
	}

	identical := lo.CountBy(b.Placements, func(placement Placement) bool {
		return placements[placement]
	})

	return float64(identical) / float64(max(len(a.Placements), len(b.Placements)))
}

// SelectSolution picks the solution at the given zero-based index of one
// generation's output. It performs no re-validation: every emitted solution
// already satisfies the timetable invariants.
func SelectSolution(solutions []Solution, index int) (Solution, error) {
	if index < 0 || index >= len(solutions) {
		return Solution{}, ErrIndexOutOfRange
	}
	return solutions[index], nil
}

// PlacementView carries the display fields a rendering grid needs.
type PlacementView struct {
	Course     string
	Teacher    string
	Room       string
	LessonType string
	Group      string
}

// Grid projects the solution onto the weekly grid: Grid(...)[day][period]
// lists the lessons running at that slot, with multi-period occurrences
// present in every period they cover. Empty slots hold an empty list, never
// nil, so renderers can iterate without care.
func (solution Solution) Grid(catalog Catalog, days, periods uint64) [][][]PlacementView {
	grid := make([][][]PlacementView, days)
	for day := range grid {
		grid[day] = make([][]PlacementView, periods)
		for period := range grid[day] {
			grid[day][period] = []PlacementView{}
		}
	}

	for _, placement := range solution.Placements {
		requirement := catalog.Requirements[placement.Requirement]
		view := PlacementView{
			Course:     catalog.Courses[requirement.Course].Name,
			Teacher:    catalog.Teachers[requirement.Teacher].Name,
			Room:       catalog.Rooms[placement.Room].Name,
			LessonType: catalog.LessonTypes[requirement.LessonType].Name,
			Group:      catalog.Groups[requirement.Group].Name,
		}

		for offset := uint64(0); offset < requirement.Duration; offset++ {
			day, period := placement.Slot.Day, placement.Slot.Period+offset
			grid[day][period] = append(grid[day][period], view)
		}
	}

	return grid
}
