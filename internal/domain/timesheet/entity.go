package timesheet

import (
	"fmt"
	"strings"
	"time"
)

type EventType string

const (
	EventTimeIn  EventType = "TIME_IN"
	EventBreak   EventType = "BREAK"
	EventTimeOut EventType = "TIME_OUT"
)

func (t EventType) IsValid() bool {
	switch t {
	case EventTimeIn, EventBreak, EventTimeOut:
		return true
	}
	return false
}

// ParseEventType normalizes case, spaces and hyphens: "time in" -> TIME_IN.
func ParseEventType(s string) (EventType, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	t := EventType(normalized)
	return t, t.IsValid()
}

// ClockEvent is one append-only ledger entry.
type ClockEvent struct {
	ID         string
	EmployeeID string
	Type       EventType
	Timestamp  time.Time
	CreatedAt  time.Time

	// Joined fields
	EmployeeNo   *string
	EmployeeName *string
}

// DailySummary holds the worked time of one employee for one UTC day.
type DailySummary struct {
	ID           string
	EmployeeID   string
	Date         time.Time
	TotalSeconds int64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	FirstEventAt *time.Time
	LastEventAt  *time.Time
}

// RecomputeDay asks the aggregator to rebuild one employee-day total.
type RecomputeDay struct {
	EmployeeID string
	Day        time.Time
}

const (
	DateLayout        = time.DateOnly
	DisplayDateLayout = "Mon, Jan 2, 2006"
	DisplayTimeLayout = "03:04 PM"
)

// DayStart truncates t to UTC midnight.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayBounds returns the half-open interval [start, start+24h) containing t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := DayStart(t)
	return start, start.AddDate(0, 0, 1)
}

// FormatDuration renders seconds as HH:MM:SS. Hours may exceed 99.
func FormatDuration(totalSeconds int64) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
