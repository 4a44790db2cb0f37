package timesheet

// State is the position of an employee-day in the ledger state machine.
type State int

const (
	StateNone State = iota
	StateClockedIn
	StateOnBreak
	StateClockedOut
)

func (s State) String() string {
	switch s {
	case StateClockedIn:
		return "CLOCKED_IN"
	case StateOnBreak:
		return "ON_BREAK"
	case StateClockedOut:
		return "CLOCKED_OUT"
	default:
		return "NONE"
	}
}

// StateAfter derives the current state from the latest event of the day.
// A nil latest means nothing was recorded yet.
func StateAfter(latest *EventType) State {
	if latest == nil {
		return StateNone
	}
	switch *latest {
	case EventTimeIn:
		return StateClockedIn
	case EventBreak:
		return StateOnBreak
	case EventTimeOut:
		return StateClockedOut
	}
	return StateNone
}

// Transition applies action to current and returns the next state.
// BREAK and TIME_OUT are only legal straight after a TIME_IN; TIME_IN is
// legal until the day is closed.
func Transition(current State, action EventType) (State, error) {
	switch action {
	case EventTimeIn:
		if current == StateClockedOut {
			return current, ErrTimeInAfterTimeOut
		}
		return StateClockedIn, nil
	case EventBreak:
		if current != StateClockedIn {
			return current, ErrBreakWithoutTimeIn
		}
		return StateOnBreak, nil
	case EventTimeOut:
		if current != StateClockedIn {
			return current, ErrTimeOutWithoutTimeIn
		}
		return StateClockedOut, nil
	}
	return current, ErrInvalidAction
}
