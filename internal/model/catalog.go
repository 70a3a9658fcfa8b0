package model

import (
	"fmt"
)

type Teacher struct {
	Id   uint64
	Name string

	// Availability[period][day] is true when the teacher can lecture at that
	// slot. A nil matrix means the teacher is always available.
	Availability [][]bool
}

type Room struct {
	Id       uint64
	Name     string
	Capacity uint64

	// LessonTypes lists the lesson-type ids the room can host. An empty list
	// means the room hosts any lesson type.
	LessonTypes []uint64
}

type ClassGroup struct {
	Id   uint64
	Name string
	Size uint64
}

type LessonType struct {
	Id   uint64
	Name string
}

type Course struct {
	Id   uint64
	Name string

	// Conflicts lists course ids whose lessons may never share a time slot
	// with lessons of this course.
	Conflicts []uint64
}

// Requirement is one teaching unit of a course: a number of weekly lesson
// occurrences taught by a fixed teacher to a class group, each occurrence
// spanning Duration consecutive periods of a single day.
type Requirement struct {
	Id          uint64
	Course      uint64
	Group       uint64
	Teacher     uint64
	LessonType  uint64
	Occurrences uint64
	Duration    uint64
}

// Catalog is the immutable snapshot the engine schedules against. It is
// loaded once per generation request and never mutated afterwards.
type Catalog struct {
	Teachers     []Teacher
	Rooms        []Room
	Groups       []ClassGroup
	LessonTypes  []LessonType
	Courses      []Course
	Requirements []Requirement
}

// Validate checks internal consistency of the catalog against a day/period
// universe of the given sizes.
func (catalog Catalog) Validate(days, periods uint64) error {
	if days == 0 || periods == 0 {
		return fmt.Errorf("day and period universes must not be empty: %v days, %v periods", days, periods)
	}

	for i, teacher := range catalog.Teachers {
		if teacher.Id != uint64(i) {
			return fmt.Errorf("teacher %v has id %v but is stored at index %v", teacher.Name, teacher.Id, i)
		}
		if teacher.Availability == nil {
			continue
		}
		if uint64(len(teacher.Availability)) != periods {
			return fmt.Errorf("availability of teacher \"%v\" must have one row per period: got %v rows, want %v", teacher.Name, len(teacher.Availability), periods)
		}
		for _, row := range teacher.Availability {
			if uint64(len(row)) != days {
				return fmt.Errorf("availability of teacher \"%v\" must have one column per day: got %v columns, want %v", teacher.Name, len(row), days)
			}
		}
	}

	for i, room := range catalog.Rooms {
		if room.Id != uint64(i) {
			return fmt.Errorf("room %v has id %v but is stored at index %v", room.Name, room.Id, i)
		}
		for _, lessonType := range room.LessonTypes {
			if lessonType >= uint64(len(catalog.LessonTypes)) {
				return fmt.Errorf("room \"%v\" references unknown lesson type %v", room.Name, lessonType)
			}
		}
	}

	for i, group := range catalog.Groups {
		if group.Id != uint64(i) {
			return fmt.Errorf("class group %v has id %v but is stored at index %v", group.Name, group.Id, i)
		}
	}

	for i, lessonType := range catalog.LessonTypes {
		if lessonType.Id != uint64(i) {
			return fmt.Errorf("lesson type %v has id %v but is stored at index %v", lessonType.Name, lessonType.Id, i)
		}
	}

	for i, course := range catalog.Courses {
		if course.Id != uint64(i) {
			return fmt.Errorf("course %v has id %v but is stored at index %v", course.Name, course.Id, i)
		}
		for _, conflict := range course.Conflicts {
			if conflict >= uint64(len(catalog.Courses)) {
				return fmt.Errorf("course \"%v\" references unknown conflicting course %v", course.Name, conflict)
			}
			if conflict == course.Id {
				return fmt.Errorf("course \"%v\" cannot conflict with itself", course.Name)
			}
		}
	}

	for i, requirement := range catalog.Requirements {
		if requirement.Id != uint64(i) {
			return fmt.Errorf("requirement %v is stored at index %v", requirement.Id, i)
		}
		if requirement.Course >= uint64(len(catalog.Courses)) {
			return fmt.Errorf("requirement %v references unknown course %v", requirement.Id, requirement.Course)
		}
		if requirement.Group >= uint64(len(catalog.Groups)) {
			return fmt.Errorf("requirement %v references unknown class group %v", requirement.Id, requirement.Group)
		}
		if requirement.Teacher >= uint64(len(catalog.Teachers)) {
			return fmt.Errorf("requirement %v references unknown teacher %v", requirement.Id, requirement.Teacher)
		}
		if requirement.LessonType >= uint64(len(catalog.LessonTypes)) {
			return fmt.Errorf("requirement %v references unknown lesson type %v", requirement.Id, requirement.LessonType)
		}
		if requirement.Occurrences == 0 {
			return fmt.Errorf("requirement %v must have at least one weekly occurrence", requirement.Id)
		}
		if requirement.Duration == 0 || requirement.Duration > periods {
			return fmt.Errorf("requirement %v has duration %v which does not fit into %v periods", requirement.Id, requirement.Duration, periods)
		}
	}

	return nil
}
