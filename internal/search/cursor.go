package search

import (
	"context"

	"github.com/botcarlos-dev/horarios/internal/model"
)

// frame is one suspended decision point of the backtracking search: the
// requirement chosen at this depth and its legal candidates, in the order
// they are to be tried.
type frame struct {
	requirement uint64
	candidates  []candidate
	next        int  // index of the next candidate to try
	committed   bool // whether candidates[next-1] is currently committed
}

// cursor is the backtracking search over partial assignments. The recursion
// is held as an explicit frame stack so that the search suspends between
// solutions and resumes on the following Next call. All bookkeeping follows
// a strict commit/undo discipline: undoing the top frame restores the exact
// state the frame was pushed under.
type cursor struct {
	catalog   model.Catalog
	evaluator model.ConstraintEvaluator
	days      uint64
	periods   uint64

	domains [][]candidate // static candidates per requirement, in (day, period, room) order

	remaining []uint64 // occurrences still unscheduled per requirement
	unplaced  uint64

	// Occupancy indexes over flat slot coordinates, for O(1) conflict checks
	roomBusy    [][]bool
	teacherBusy [][]bool
	groupBusy   [][]bool
	courseBusy  [][]uint64 // lessons of the course running at the slot

	starts     [][]model.TimeSlot // start slots committed per requirement, in commit order
	placements []model.Placement

	stack   []*frame
	pending bool // a solution was emitted and is still committed on the stack
	done    bool
}

func newCursor(catalog model.Catalog, evaluator model.ConstraintEvaluator, domains [][]candidate, days, periods uint64) *cursor {
	slots := days * periods

	c := &cursor{
		catalog:   catalog,
		evaluator: evaluator,
		days:      days,
		periods:   periods,
		domains:   domains,

		remaining: make([]uint64, len(catalog.Requirements)),

		roomBusy:    emptyIndex(len(catalog.Rooms), slots),
		teacherBusy: emptyIndex(len(catalog.Teachers), slots),
		groupBusy:   emptyIndex(len(catalog.Groups), slots),

		starts:     make([][]model.TimeSlot, len(catalog.Requirements)),
		placements: make([]model.Placement, 0),
		stack:      make([]*frame, 0, len(catalog.Requirements)),
	}

	c.courseBusy = make([][]uint64, len(catalog.Courses))
	for course := range c.courseBusy {
		c.courseBusy[course] = make([]uint64, slots)
	}

	for _, requirement := range catalog.Requirements {
		c.remaining[requirement.Id] = requirement.Occurrences
		c.unplaced += requirement.Occurrences
	}

	return c
}

func emptyIndex(rows int, slots uint64) [][]bool {
	index := make([][]bool, rows)
	for row := range index {
		index[row] = make([]bool, slots)
	}
	return index
}

func (c *cursor) Next(ctx context.Context) (model.Solution, bool, error) {
	if c.done {
		return model.Solution{}, false, nil
	}

	// The previously emitted solution is still committed; advance past it
	if c.pending {
		c.pending = false
		if !c.backtrack() {
			c.done = true
			return model.Solution{}, false, nil
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			c.teardown()
			return model.Solution{}, false, err
		}

		if c.unplaced == 0 {
			c.pending = true
			return model.NewSolution(c.placements), true, nil
		}

		requirement, candidates := c.pickRequirement()
		if candidates == nil {
			// Some requirement has no legal option left under this partial assignment
			if !c.backtrack() {
				c.done = true
				return model.Solution{}, false, nil
			}
			continue
		}

		c.stack = append(c.stack, &frame{requirement: requirement, candidates: candidates})
		if !c.advanceTop() {
			c.stack = c.stack[:len(c.stack)-1]
			if !c.backtrack() {
				c.done = true
				return model.Solution{}, false, nil
			}
		}
	}
}

// pickRequirement applies most-constrained-first ordering: among
// requirements with unscheduled occurrences, the one with the fewest legal
// candidates is chosen, ties broken by lower requirement id. Returns a nil
// candidate list when some requirement has no legal option at all.
func (c *cursor) pickRequirement() (uint64, []candidate) {
	chosen, best := uint64(0), []candidate(nil)

	for id := range c.remaining {
		requirement := uint64(id)
		if c.remaining[requirement] == 0 {
			continue
		}

		legal := c.legalCandidates(requirement)
		if len(legal) == 0 {
			return requirement, nil
		}
		if best == nil || len(legal) < len(best) {
			chosen, best = requirement, legal
		}
	}

	return chosen, best
}

// legalCandidates filters the requirement's static domain against the
// current occupancy, preserving the deterministic (day, period, room) order.
func (c *cursor) legalCandidates(requirement uint64) []candidate {
	legal := make([]candidate, 0, len(c.domains[requirement]))
	for _, option := range c.domains[requirement] {
		if c.isCompatible(requirement, option) {
			legal = append(legal, option)
		}
	}
	return legal
}

// isCompatible reports whether placing the requirement's next occurrence at
// the candidate violates no invariant against the committed placements.
// Occurrences of one requirement are interchangeable, so each later one must
// start strictly after the previously committed start: this breaks the
// permutation symmetry without losing any distinct timetable.
func (c *cursor) isCompatible(requirement uint64, option candidate) bool {
	spec := c.catalog.Requirements[requirement]

	if placed := c.starts[requirement]; len(placed) > 0 && !placed[len(placed)-1].Before(option.slot) {
		return false
	}

	for offset := uint64(0); offset < spec.Duration; offset++ {
		slot := model.TimeSlot{Day: option.slot.Day, Period: option.slot.Period + offset}.Index(c.periods)

		if c.roomBusy[option.room][slot] ||
			c.teacherBusy[spec.Teacher][slot] ||
			c.groupBusy[spec.Group][slot] {
			return false
		}
		for course := range c.courseBusy {
			if c.courseBusy[course][slot] > 0 && c.evaluator.Conflicting(spec.Course, uint64(course)) {
				return false
			}
		}
	}

	return true
}

// forwardCheck prunes a branch early: every requirement with unscheduled
// occurrences must retain at least one legal candidate.
func (c *cursor) forwardCheck() bool {
	for id := range c.remaining {
		requirement := uint64(id)
		if c.remaining[requirement] == 0 {
			continue
		}
		alive := false
		for _, option := range c.domains[requirement] {
			if c.isCompatible(requirement, option) {
				alive = true
				break
			}
		}
		if !alive {
			return false
		}
	}
	return true
}

// advanceTop commits the top frame's next candidate that survives the
// forward check. Returns false when the frame's candidates are exhausted.
func (c *cursor) advanceTop() bool {
	top := c.stack[len(c.stack)-1]

	for top.next < len(top.candidates) {
		option := top.candidates[top.next]
		top.next++

		c.commit(top.requirement, option)
		top.committed = true

		if c.unplaced == 0 || c.forwardCheck() {
			return true
		}

		c.undo(top.requirement, option)
		top.committed = false
	}

	return false
}

// backtrack undoes the top frame's commitment and advances it to its next
// viable candidate, popping exhausted frames as it goes. Returns false once
// the root is exhausted.
func (c *cursor) backtrack() bool {
	for len(c.stack) > 0 {
		top := c.stack[len(c.stack)-1]
		if top.committed {
			c.undo(top.requirement, top.candidates[top.next-1])
			top.committed = false
		}
		if c.advanceTop() {
			return true
		}
		c.stack = c.stack[:len(c.stack)-1]
	}
	return false
}

func (c *cursor) commit(requirement uint64, option candidate) {
	spec := c.catalog.Requirements[requirement]

	for offset := uint64(0); offset < spec.Duration; offset++ {
		slot := model.TimeSlot{Day: option.slot.Day, Period: option.slot.Period + offset}.Index(c.periods)
		c.roomBusy[option.room][slot] = true
		c.teacherBusy[spec.Teacher][slot] = true
		c.groupBusy[spec.Group][slot] = true
		c.courseBusy[spec.Course][slot]++
	}

	c.starts[requirement] = append(c.starts[requirement], option.slot)
	c.placements = append(c.placements, model.Placement{
		Requirement: requirement,
		Slot:        option.slot,
		Room:        option.room,
	})
	c.remaining[requirement]--
	c.unplaced--
}

func (c *cursor) undo(requirement uint64, option candidate) {
	spec := c.catalog.Requirements[requirement]

	for offset := uint64(0); offset < spec.Duration; offset++ {
		slot := model.TimeSlot{Day: option.slot.Day, Period: option.slot.Period + offset}.Index(c.periods)
		c.roomBusy[option.room][slot] = false
		c.teacherBusy[spec.Teacher][slot] = false
		c.groupBusy[spec.Group][slot] = false
		c.courseBusy[spec.Course][slot]--
	}

	c.starts[requirement] = c.starts[requirement][:len(c.starts[requirement])-1]
	c.placements = c.placements[:len(c.placements)-1]
	c.remaining[requirement]++
	c.unplaced++
}

// teardown discards the suspended search state after cancellation.
func (c *cursor) teardown() {
	c.stack = nil
	c.placements = nil
	c.pending = false
	c.done = true
}
