package timesheet

import (
	"context"
)

// Live feed of recorded clock actions, carrying RecentEventResponse values.
const (
	RecentFeedTopic    = "timesheet.recent"
	ClockEventFeedName = "clock_event"
)

// TimesheetService covers the clock-event ledger and its read models.
type TimesheetService interface {
	// RecordAction appends TIME_IN, BREAK or TIME_OUT for the acting employee.
	RecordAction(ctx context.Context, req ClockActionRequest) (ClockActionResponse, error)

	// Import ingests historical logs for the acting employee, all or nothing.
	Import(ctx context.Context, req ImportRequest) (ImportResponse, error)

	// GetSummary returns today's last action and every daily summary, newest first.
	GetSummary(ctx context.Context) (SummaryResponse, error)

	// ListRecent returns the latest clock events across employees.
	ListRecent(ctx context.Context, limit int) ([]RecentEventResponse, error)
}

// Aggregator handles RecomputeDay commands issued by the ledger.
type Aggregator interface {
	Recompute(ctx context.Context, cmd RecomputeDay) (DailySummary, error)
}
