package timesheet

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
)

type aggregator struct {
	clockEventRepo   timesheet.ClockEventRepository
	dailySummaryRepo timesheet.DailySummaryRepository
}

// NewAggregator rebuilds daily totals from the ledger. Recompute replays the
// whole day, so repeated commands for the same day converge on one value.
func NewAggregator(clockEventRepo timesheet.ClockEventRepository, dailySummaryRepo timesheet.DailySummaryRepository) timesheet.Aggregator {
	return &aggregator{
		clockEventRepo:   clockEventRepo,
		dailySummaryRepo: dailySummaryRepo,
	}
}

// Recompute implements timesheet.Aggregator.
func (a *aggregator) Recompute(ctx context.Context, cmd timesheet.RecomputeDay) (timesheet.DailySummary, error) {
	from, to := timesheet.DayBounds(cmd.Day)

	events, err := a.clockEventRepo.ListInRange(ctx, cmd.EmployeeID, from, to)
	if err != nil {
		return timesheet.DailySummary{}, fmt.Errorf("failed to load day events: %w", err)
	}

	summary, err := a.dailySummaryRepo.Upsert(ctx, timesheet.DailySummary{
		EmployeeID:   cmd.EmployeeID,
		Date:         from,
		TotalSeconds: timesheet.CalculateTotalTime(events),
	})
	if err != nil {
		return timesheet.DailySummary{}, fmt.Errorf("failed to store daily summary: %w", err)
	}
	return summary, nil
}
