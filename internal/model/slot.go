package model

// TimeSlot is one (day, period) coordinate of the weekly grid. Both fields
// are indices into the day and period universes of the generation request.
type TimeSlot struct {
	Day    uint64
	Period uint64
}

// Compare orders slots by day first, then period.
func (slot TimeSlot) Compare(other TimeSlot) int {
	if slot.Day != other.Day {
		if slot.Day < other.Day {
			return -1
		}
		return 1
	}
	if slot.Period != other.Period {
		if slot.Period < other.Period {
			return -1
		}
		return 1
	}
	return 0
}

// Before reports whether slot strictly precedes other in (day, period) order.
func (slot TimeSlot) Before(other TimeSlot) bool {
	return slot.Compare(other) < 0
}

// Index returns a unique flat coordinate for the slot given the size of the
// period universe.
func (slot TimeSlot) Index(periods uint64) uint64 {
	return slot.Period + periods*slot.Day
}

// SlotOf is the inverse of Index.
func SlotOf(index, periods uint64) TimeSlot {
	return TimeSlot{
		Day:    index / periods,
		Period: index % periods,
	}
}
