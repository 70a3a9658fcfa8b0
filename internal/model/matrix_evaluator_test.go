package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstraintEvaluator(t *testing.T) {
	// Arrange
	catalog := Catalog{
		Teachers: []Teacher{
			{Id: 0, Name: "Ana"}, // nil availability: always free
			{Id: 1, Name: "Rui", Availability: [][]bool{
				{true, false},
				{false, true},
			}},
		},
		// A101 hosts any lesson type, Lab1 labs only, Aud lectures only
		Rooms: []Room{
			{Id: 0, Name: "A101", Capacity: 40},
			{Id: 1, Name: "Lab1", Capacity: 15, LessonTypes: []uint64{1}},
			{Id: 2, Name: "Aud", Capacity: 100, LessonTypes: []uint64{0}},
		},
		Groups: []ClassGroup{
			{Id: 0, Name: "EI-1A", Size: 25},
			{Id: 1, Name: "EI-1B", Size: 12},
		},
		LessonTypes: []LessonType{
			{Id: 0, Name: "lecture"},
			{Id: 1, Name: "lab"},
		},
		Courses: []Course{
			{Id: 0, Name: "Programming", Conflicts: []uint64{1}},
			{Id: 1, Name: "Mathematics"},
			{Id: 2, Name: "Physics"},
		},
		Requirements: []Requirement{
			{Id: 0, Course: 0, Group: 0, Teacher: 0, LessonType: 0, Occurrences: 1, Duration: 1},
			{Id: 1, Course: 1, Group: 1, Teacher: 1, LessonType: 1, Occurrences: 1, Duration: 1},
		},
	}

	// Act
	evaluator := NewConstraintEvaluator(catalog, 2, 2)

	t.Run("teacher availability", func(t *testing.T) {
		// A nil matrix means always available
		assert.True(t, evaluator.TeacherAvailable(0, 0, 0))
		assert.True(t, evaluator.TeacherAvailable(0, 1, 1))

		// Availability[period][day]
		assert.True(t, evaluator.TeacherAvailable(1, 0, 0))
		assert.False(t, evaluator.TeacherAvailable(1, 1, 0))
		assert.False(t, evaluator.TeacherAvailable(1, 0, 1))
		assert.True(t, evaluator.TeacherAvailable(1, 1, 1))
	})

	t.Run("room capabilities", func(t *testing.T) {
		assert.True(t, evaluator.Supports(0, 0))
		assert.True(t, evaluator.Supports(0, 1))
		assert.False(t, evaluator.Supports(1, 0))
		assert.True(t, evaluator.Supports(1, 1))
		assert.True(t, evaluator.Supports(2, 0))
		assert.False(t, evaluator.Supports(2, 1))
	})

	t.Run("group fits room", func(t *testing.T) {
		assert.True(t, evaluator.Fits(0, 0))
		assert.False(t, evaluator.Fits(0, 1))
		assert.True(t, evaluator.Fits(1, 1))
	})

	t.Run("course conflicts are symmetric", func(t *testing.T) {
		assert.True(t, evaluator.Conflicting(0, 1))
		assert.True(t, evaluator.Conflicting(1, 0))
		assert.False(t, evaluator.Conflicting(0, 2))
		assert.False(t, evaluator.Conflicting(0, 0))
	})

	t.Run("allowed rooms per requirement", func(t *testing.T) {
		// Lecture for a group of 25: A101 and Aud
		assert.Equal(t, []uint64{0, 2}, evaluator.AllowedRooms(0))
		// Lab for a group of 12: A101 and Lab1
		assert.Equal(t, []uint64{0, 1}, evaluator.AllowedRooms(1))
	})
}
