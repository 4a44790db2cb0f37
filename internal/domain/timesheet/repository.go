package timesheet

import (
	"context"
	"time"
)

type ClockEventRepository interface {
	// LockDay serializes ledger writes for one employee-day until the
	// surrounding transaction ends.
	LockDay(ctx context.Context, employeeID string, day time.Time) error

	// GetLatestInRange returns the newest event in [from, to), or nil.
	GetLatestInRange(ctx context.Context, employeeID string, from, to time.Time) (*ClockEvent, error)

	// ListInRange returns events in [from, to) ordered by timestamp ascending.
	ListInRange(ctx context.Context, employeeID string, from, to time.Time) ([]ClockEvent, error)

	Create(ctx context.Context, event ClockEvent) (ClockEvent, error)
	CreateBatch(ctx context.Context, events []ClockEvent) (int64, error)

	// ListRecent returns the newest events across all employees with names joined.
	ListRecent(ctx context.Context, limit int) ([]ClockEvent, error)
}

type DailySummaryRepository interface {
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*DailySummary, error)

	// EnsureExists creates a zero summary if none exists for the day.
	EnsureExists(ctx context.Context, employeeID string, date time.Time) (DailySummary, error)

	// Upsert writes the recomputed total for (employeeID, date).
	Upsert(ctx context.Context, summary DailySummary) (DailySummary, error)

	// Create inserts a new summary; a duplicate day returns ErrLogsAlreadyExist.
	Create(ctx context.Context, summary DailySummary) (DailySummary, error)

	// ExistingDates returns which of dates already have a summary.
	ExistingDates(ctx context.Context, employeeID string, dates []time.Time) ([]time.Time, error)

	// ListByEmployee returns summaries newest first with first/last event times joined.
	ListByEmployee(ctx context.Context, employeeID string) ([]DailySummary, error)

	// ListSince returns summaries with date >= from, oldest first.
	ListSince(ctx context.Context, employeeID string, from time.Time) ([]DailySummary, error)
}
