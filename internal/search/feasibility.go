package search

import (
	"fmt"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"

	"github.com/botcarlos-dev/horarios/internal/model"
)

// candidate is one legal starting option for a requirement occurrence: the
// occurrence begins at slot in room and covers the requirement's duration.
type candidate struct {
	slot model.TimeSlot
	room uint64
}

// buildDomains computes the static candidate list of every requirement:
// starting slots where the occurrence fits into the day, the teacher is
// available for every covered period, and the room hosts the lesson type and
// the group. Candidates are ordered by day, then period, then room id, which
// fixes the exploration order of the whole search.
func buildDomains(catalog model.Catalog, evaluator model.ConstraintEvaluator, days, periods uint64) [][]candidate {
	return lo.Map(catalog.Requirements, func(requirement model.Requirement, _ int) []candidate {
		rooms := evaluator.AllowedRooms(requirement.Id)
		domain := make([]candidate, 0, days*periods*uint64(len(rooms)))

		for day := uint64(0); day < days; day++ {
			for start := uint64(0); start+requirement.Duration <= periods; start++ {
				available := true
				for period := start; period < start+requirement.Duration; period++ {
					if !evaluator.TeacherAvailable(requirement.Teacher, day, period) {
						available = false
						break
					}
				}
				if !available {
					continue
				}

				for _, room := range rooms {
					domain = append(domain, candidate{
						slot: model.TimeSlot{Day: day, Period: start},
						room: room,
					})
				}
			}
		}

		return domain
	})
}

type occurrence struct {
	requirement uint64
	index       uint64
}

// checkFeasible rejects structurally unsatisfiable catalogs before any
// search: a requirement whose candidate domain is empty or smaller than its
// weekly demand, and catalogs where no perfect matching exists between
// occurrences and distinct (slot, room) starting options. The matching is a
// necessary condition only; genuinely exhausting the space is the search's
// job.
func checkFeasible(catalog model.Catalog, domains [][]candidate, periods uint64) error {
	occurrences := make([]any, 0)
	options := make(map[[2]uint64]bool)
	reachable := make([]map[[2]uint64]bool, len(catalog.Requirements))

	for _, requirement := range catalog.Requirements {
		domain := domains[requirement.Id]
		if len(domain) == 0 {
			return fmt.Errorf("%w: requirement %v of course \"%v\" has no compatible (slot, room) option", ErrInfeasible, requirement.Id, catalog.Courses[requirement.Course].Name)
		}

		// Occurrences of one requirement must start on distinct slots
		starts := lo.UniqBy(domain, func(option candidate) model.TimeSlot { return option.slot })
		if uint64(len(starts)) < requirement.Occurrences {
			return fmt.Errorf("%w: requirement %v of course \"%v\" needs %v weekly occurrences but only %v starting slots exist", ErrInfeasible, requirement.Id, catalog.Courses[requirement.Course].Name, requirement.Occurrences, len(starts))
		}

		reachable[requirement.Id] = make(map[[2]uint64]bool, len(domain))
		for _, option := range domain {
			key := [2]uint64{option.slot.Index(periods), option.room}
			options[key] = true
			reachable[requirement.Id][key] = true
		}

		for index := range requirement.Occurrences {
			occurrences = append(occurrences, occurrence{requirement: requirement.Id, index: index})
		}
	}

	if len(occurrences) == 0 {
		return nil
	}

	optionKeys := lo.Keys(options)
	optionsAny := lo.Map(optionKeys, func(key [2]uint64, _ int) any { return key })

	// Build neighbors predicate based on each requirement's reachable options
	neighbors := func(occurrenceAny any, optionAny any) (bool, error) {
		occ := occurrenceAny.(occurrence)
		key := optionAny.([2]uint64)
		return reachable[occ.requirement][key], nil
	}

	graph, err := bipartitegraph.NewBipartiteGraph(occurrences, optionsAny, neighbors)
	if err != nil {
		return err
	}

	matching := graph.LargestMatching()
	if len(matching) < len(occurrences) {
		return fmt.Errorf("%w: only %v of %v lesson occurrences can be given a distinct (slot, room)", ErrInfeasible, len(matching), len(occurrences))
	}

	return nil
}
