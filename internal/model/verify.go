package model

import (
	"github.com/samber/lo"
)

// Verify checks a complete timetable against every invariant: no teacher,
// room or class group double-booked, no conflicting courses sharing a slot,
// rooms compatible with their lessons, slots drawn from the universe, and
// every requirement's weekly occurrence count met exactly.
func Verify(solution Solution, catalog Catalog, days, periods uint64) bool {
	//** Initialize dependencies
	evaluator := NewConstraintEvaluator(catalog, days, periods)

	//** Initialize teacher-assistance
	teacherAssistance := make([][][]bool, len(catalog.Teachers))
	for teacher := range teacherAssistance {
		teacherAssistance[teacher] = emptyAssistance(days, periods)
	}

	//** Initialize group-assistance
	groupAssistance := make([][][]bool, len(catalog.Groups))
	for group := range groupAssistance {
		groupAssistance[group] = emptyAssistance(days, periods)
	}

	//** Initialize room-assistance
	roomAssistance := make([][][]bool, len(catalog.Rooms))
	for room := range roomAssistance {
		roomAssistance[room] = emptyAssistance(days, periods)
	}

	//** Initialize course-assistance
	courseAssistance := make([][][]bool, len(catalog.Courses))
	for course := range courseAssistance {
		courseAssistance[course] = emptyAssistance(days, periods)
	}

	scheduled := make(map[uint64]uint64)

	for _, placement := range solution.Placements {
		if placement.Requirement >= uint64(len(catalog.Requirements)) {
			return false
		}
		requirement := catalog.Requirements[placement.Requirement]
		day, start := placement.Slot.Day, placement.Slot.Period

		// The occurrence must lie inside the universe and not run past the last period of its day
		if day >= days || start+requirement.Duration > periods || placement.Room >= uint64(len(catalog.Rooms)) {
			return false
		}

		for period := start; period < start+requirement.Duration; period++ {
			// Check that:
			// - Teacher is available in the period and day
			// - Teacher is not already lecturing in the period and day
			// - Class group is not already attending in the period and day
			// - Room can host the lesson type and the group fits in it
			// - Room is not already occupied in the period and day
			// - No conflicting course is scheduled in the period and day
			if !evaluator.TeacherAvailable(requirement.Teacher, day, period) ||
				teacherAssistance[requirement.Teacher][period][day] ||
				groupAssistance[requirement.Group][period][day] ||
				!evaluator.Supports(placement.Room, requirement.LessonType) ||
				!evaluator.Fits(requirement.Group, placement.Room) ||
				roomAssistance[placement.Room][period][day] ||
				conflictScheduled(evaluator, courseAssistance, requirement.Course, period, day) {
				return false
			}

			teacherAssistance[requirement.Teacher][period][day] = true // Store teacher assistance
			groupAssistance[requirement.Group][period][day] = true     // Store group assistance
			roomAssistance[placement.Room][period][day] = true         // Store room assistance
			courseAssistance[requirement.Course][period][day] = true   // Store course assistance
		}

		scheduled[placement.Requirement]++
	}

	// Check whether the number of occurrences scheduled for each requirement matches its weekly demand
	return !lo.SomeBy(catalog.Requirements, func(requirement Requirement) bool {
		return scheduled[requirement.Id] != requirement.Occurrences
	})
}

// Checks whether a course conflicting with the given one is already scheduled in the same period and day
func conflictScheduled(evaluator ConstraintEvaluator, courseAssistance [][][]bool, course, period, day uint64) bool {
	for other := range courseAssistance {
		if courseAssistance[other][period][day] && evaluator.Conflicting(course, uint64(other)) {
			return true
		}
	}
	return false
}

func emptyAssistance(days, periods uint64) [][]bool {
	assistance := make([][]bool, periods)
	for period := range assistance {
		assistance[period] = make([]bool, days)
	}
	return assistance
}
