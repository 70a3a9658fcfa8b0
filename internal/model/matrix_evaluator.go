package model

import (
	"log"

	"github.com/samber/lo"
)

// matrixConstraintEvaluator answers every constraint query from matrices
// materialized once per catalog, so the hot search path never walks the
// catalog itself.
type matrixConstraintEvaluator struct {
	availability [][][]bool // Teacher's availability for each period of each day
	supports     [][]bool   // supports[room][lessonType]
	fits         [][]bool   // fits[group][room]
	conflicts    [][]bool   // conflicts[course1][course2]
	allowedRooms [][]uint64 // Compatible rooms per requirement, sorted by id
}

func newMatrixConstraintEvaluator(catalog Catalog, days, periods uint64) *matrixConstraintEvaluator {
	evaluator := matrixConstraintEvaluator{}

	//** Materialize availability, treating a nil matrix as fully available
	evaluator.availability = lo.Map(catalog.Teachers, func(teacher Teacher, _ int) [][]bool {
		if teacher.Availability != nil {
			return teacher.Availability
		}
		availability := make([][]bool, periods)
		for period := range availability {
			availability[period] = make([]bool, days)
			for day := range availability[period] {
				availability[period][day] = true
			}
		}
		return availability
	})

	//** Build room-capability matrix, where an empty capability list hosts every lesson type
	evaluator.supports = lo.Map(catalog.Rooms, func(room Room, _ int) []bool {
		row := make([]bool, len(catalog.LessonTypes))
		for lessonType := range row {
			row[lessonType] = len(room.LessonTypes) == 0 || lo.Contains(room.LessonTypes, uint64(lessonType))
		}
		return row
	})

	//** Build group-fits-room matrix
	evaluator.fits = lo.Map(catalog.Groups, func(group ClassGroup, _ int) []bool {
		return lo.Map(catalog.Rooms, func(room Room, _ int) bool {
			return group.Size <= room.Capacity
		})
	})

	//** Build course-conflict matrix
	evaluator.conflicts = make([][]bool, len(catalog.Courses))
	for course := range evaluator.conflicts {
		evaluator.conflicts[course] = make([]bool, len(catalog.Courses))
	}
	for _, course := range catalog.Courses {
		for _, conflict := range course.Conflicts {
			evaluator.conflicts[course.Id][conflict] = true
			evaluator.conflicts[conflict][course.Id] = true
		}
	}

	//** Derive allowed-rooms domain per requirement
	evaluator.allowedRooms = lo.Map(catalog.Requirements, func(requirement Requirement, _ int) []uint64 {
		rooms := make([]uint64, 0, len(catalog.Rooms))
		for _, room := range catalog.Rooms {
			if evaluator.supports[room.Id][requirement.LessonType] && evaluator.fits[requirement.Group][room.Id] {
				rooms = append(rooms, room.Id)
			}
		}
		return rooms
	})

	return &evaluator
}

func (evaluator *matrixConstraintEvaluator) TeacherAvailable(teacher, day, period uint64) bool {
	if teacher >= uint64(len(evaluator.availability)) {
		log.Panicf("teacher %v not found", teacher)
	}
	return evaluator.availability[teacher][period][day]
}

func (evaluator *matrixConstraintEvaluator) Supports(room, lessonType uint64) bool {
	if room >= uint64(len(evaluator.supports)) {
		log.Panicf("room %v not found", room)
	}
	return evaluator.supports[room][lessonType]
}

func (evaluator *matrixConstraintEvaluator) Fits(group, room uint64) bool {
	if group >= uint64(len(evaluator.fits)) {
		log.Panicf("class group %v not found", group)
	}
	return evaluator.fits[group][room]
}

func (evaluator *matrixConstraintEvaluator) Conflicting(course1, course2 uint64) bool {
	if course1 >= uint64(len(evaluator.conflicts)) || course2 >= uint64(len(evaluator.conflicts)) {
		log.Panicf("course pair %v~%v not found", course1, course2)
	}
	return evaluator.conflicts[course1][course2]
}

func (evaluator *matrixConstraintEvaluator) AllowedRooms(requirement uint64) []uint64 {
	if requirement >= uint64(len(evaluator.allowedRooms)) {
		log.Panicf("requirement %v not found", requirement)
	}
	return evaluator.allowedRooms[requirement]
}
