package timesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventPtr(t EventType) *EventType {
	return &t
}

func TestStateAfter(t *testing.T) {
	assert.Equal(t, StateNone, StateAfter(nil))
	assert.Equal(t, StateClockedIn, StateAfter(eventPtr(EventTimeIn)))
	assert.Equal(t, StateOnBreak, StateAfter(eventPtr(EventBreak)))
	assert.Equal(t, StateClockedOut, StateAfter(eventPtr(EventTimeOut)))
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    State
		action  EventType
		want    State
		wantErr error
	}{
		{"time in on empty day", StateNone, EventTimeIn, StateClockedIn, nil},
		{"time in again while clocked in", StateClockedIn, EventTimeIn, StateClockedIn, nil},
		{"time in after break", StateOnBreak, EventTimeIn, StateClockedIn, nil},
		{"time in after time out", StateClockedOut, EventTimeIn, StateClockedOut, ErrTimeInAfterTimeOut},
		{"break while clocked in", StateClockedIn, EventBreak, StateOnBreak, nil},
		{"break on empty day", StateNone, EventBreak, StateNone, ErrBreakWithoutTimeIn},
		{"break during break", StateOnBreak, EventBreak, StateOnBreak, ErrBreakWithoutTimeIn},
		{"break after time out", StateClockedOut, EventBreak, StateClockedOut, ErrBreakWithoutTimeIn},
		{"time out while clocked in", StateClockedIn, EventTimeOut, StateClockedOut, nil},
		{"time out on empty day", StateNone, EventTimeOut, StateNone, ErrTimeOutWithoutTimeIn},
		{"time out from break", StateOnBreak, EventTimeOut, StateOnBreak, ErrTimeOutWithoutTimeIn},
		{"time out twice", StateClockedOut, EventTimeOut, StateClockedOut, ErrTimeOutWithoutTimeIn},
		{"unknown action", StateNone, EventType("LUNCH"), StateNone, ErrInvalidAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.from, tt.action)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsInvalidTransition(t *testing.T) {
	assert.True(t, IsInvalidTransition(ErrTimeInAfterTimeOut))
	assert.True(t, IsInvalidTransition(ErrBreakWithoutTimeIn))
	assert.True(t, IsInvalidTransition(ErrTimeOutWithoutTimeIn))
	assert.False(t, IsInvalidTransition(ErrInvalidAction))
	assert.False(t, IsInvalidTransition(ErrLogsAlreadyExist))
}

func TestParseEventType(t *testing.T) {
	for _, in := range []string{"TIME_IN", "time_in", " Time In ", "time-in"} {
		got, ok := ParseEventType(in)
		assert.True(t, ok, in)
		assert.Equal(t, EventTimeIn, got, in)
	}

	got, ok := ParseEventType("break")
	assert.True(t, ok)
	assert.Equal(t, EventBreak, got)

	_, ok = ParseEventType("LUNCH")
	assert.False(t, ok)
}
