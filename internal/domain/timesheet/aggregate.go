package timesheet

import (
	"slices"
	"time"
)

// CalculateTotalTime sums the closed work intervals of one day in seconds.
// Each TIME_IN is paired with the next BREAK or TIME_OUT. A later TIME_IN
// before any close replaces the open one, and a trailing TIME_IN adds nothing.
func CalculateTotalTime(events []ClockEvent) int64 {
	ordered := slices.Clone(events)
	slices.SortStableFunc(ordered, func(a, b ClockEvent) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	var (
		total  time.Duration
		openIn *time.Time
	)
	for i := range ordered {
		switch ordered[i].Type {
		case EventTimeIn:
			openIn = &ordered[i].Timestamp
		case EventBreak, EventTimeOut:
			if openIn != nil {
				total += ordered[i].Timestamp.Sub(*openIn)
				openIn = nil
			}
		}
	}

	return int64(total / time.Second)
}
