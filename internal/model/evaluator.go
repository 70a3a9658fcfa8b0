package model

type ConstraintEvaluator interface {
	// Checks whether the teacher can lecture at the given day and period
	TeacherAvailable(teacher, day, period uint64) bool

	// Checks whether the room can host lessons of the given type
	Supports(room, lessonType uint64) bool

	// Checks whether the group's size is smaller than or equal to the room's capacity (i.e. the group fits in the room)
	Fits(group, room uint64) bool

	// Checks whether the two courses may never share a time slot
	Conflicting(course1, course2 uint64) bool

	// Returns the rooms compatible with the requirement's lesson type and group size, ordered by room id
	AllowedRooms(requirement uint64) []uint64
}

func NewConstraintEvaluator(catalog Catalog, days, periods uint64) ConstraintEvaluator {
	return newMatrixConstraintEvaluator(catalog, days, periods)
}
