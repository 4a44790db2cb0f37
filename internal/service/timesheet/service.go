package timesheet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/storage"
	"golang.org/x/sync/errgroup"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

type TimesheetServiceImpl struct {
	tx               database.Transactor
	employeeRepo     employee.EmployeeRepository
	clockEventRepo   timesheet.ClockEventRepository
	dailySummaryRepo timesheet.DailySummaryRepository
	aggregator       timesheet.Aggregator
	archive          storage.FileStorage
	feed             *sse.Hub
	maxImportRows    int
	now              func() time.Time
}

func NewTimesheetService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	clockEventRepo timesheet.ClockEventRepository,
	dailySummaryRepo timesheet.DailySummaryRepository,
	aggregator timesheet.Aggregator,
	archive storage.FileStorage,
	feed *sse.Hub,
	maxImportRows int,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		tx:               tx,
		employeeRepo:     employeeRepo,
		clockEventRepo:   clockEventRepo,
		dailySummaryRepo: dailySummaryRepo,
		aggregator:       aggregator,
		archive:          archive,
		feed:             feed,
		maxImportRows:    maxImportRows,
		now:              time.Now,
	}
}

// currentEmployee resolves the acting employee from the session.
func (s *TimesheetServiceImpl) currentEmployee(ctx context.Context) (employee.Employee, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	emp, err := s.employeeRepo.GetByEmployeeNo(ctx, claims.EmployeeNo)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, jwt.ErrNoSession
		}
		return employee.Employee{}, fmt.Errorf("failed to resolve employee: %w", err)
	}
	return emp, nil
}

// RecordAction implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) RecordAction(ctx context.Context, req timesheet.ClockActionRequest) (timesheet.ClockActionResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.ClockActionResponse{}, err
	}

	emp, err := s.currentEmployee(ctx)
	if err != nil {
		return timesheet.ClockActionResponse{}, err
	}

	now := s.now().UTC().Truncate(time.Second)
	from, to := timesheet.DayBounds(now)

	var (
		created timesheet.ClockEvent
		next    timesheet.State
		summary timesheet.DailySummary
	)

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.clockEventRepo.LockDay(ctx, emp.ID, from); err != nil {
			return err
		}

		latest, err := s.clockEventRepo.GetLatestInRange(ctx, emp.ID, from, to)
		if err != nil {
			return err
		}

		var latestType *timesheet.EventType
		if latest != nil {
			latestType = &latest.Type
		}

		next, err = timesheet.Transition(timesheet.StateAfter(latestType), req.Type)
		if err != nil {
			return err
		}

		created, err = s.clockEventRepo.Create(ctx, timesheet.ClockEvent{
			EmployeeID: emp.ID,
			Type:       req.Type,
			Timestamp:  now,
		})
		if err != nil {
			return err
		}

		if req.Type == timesheet.EventTimeIn {
			summary, err = s.dailySummaryRepo.EnsureExists(ctx, emp.ID, from)
			return err
		}

		summary, err = s.aggregator.Recompute(ctx, timesheet.RecomputeDay{EmployeeID: emp.ID, Day: from})
		return err
	})
	if err != nil {
		if timesheet.IsInvalidTransition(err) {
			slog.Warn("clock action rejected", "employee_no", emp.EmployeeNo, "action", req.Type, "error", err)
		}
		return timesheet.ClockActionResponse{}, err
	}

	slog.Info("clock action recorded",
		"employee_no", emp.EmployeeNo,
		"action", req.Type,
		"state", next.String(),
		"total_seconds", summary.TotalSeconds,
	)

	if s.feed != nil {
		s.feed.Publish(timesheet.RecentFeedTopic, sse.Event{
			Name: timesheet.ClockEventFeedName,
			Data: timesheet.RecentEventResponse{
				ID:         created.ID,
				EmployeeNo: emp.EmployeeNo,
				FullName:   emp.FullName(),
				Type:       created.Type,
				Time:       created.Timestamp,
			},
		})
	}

	return timesheet.ClockActionResponse{
		Action:       created.Type,
		Time:         created.Timestamp,
		State:        next.String(),
		TotalTime:    timesheet.FormatDuration(summary.TotalSeconds),
		TotalSeconds: summary.TotalSeconds,
	}, nil
}

// Import implements timesheet.TimesheetService.
// The whole batch is parsed and checked before anything is written.
func (s *TimesheetServiceImpl) Import(ctx context.Context, req timesheet.ImportRequest) (timesheet.ImportResponse, error) {
	if err := req.Validate(s.maxImportRows); err != nil {
		return timesheet.ImportResponse{}, err
	}

	emp, err := s.currentEmployee(ctx)
	if err != nil {
		return timesheet.ImportResponse{}, err
	}

	rows, err := timesheet.ParseLogRows(req.Logs)
	if err != nil {
		slog.Warn("timesheet import rejected", "employee_no", emp.EmployeeNo, "rows", len(req.Logs), "error", err)
		return timesheet.ImportResponse{}, err
	}

	batches := timesheet.GroupByDay(rows)
	dates := make([]time.Time, len(batches))
	for i, b := range batches {
		dates[i] = b.Date
	}

	resp := timesheet.ImportResponse{Days: make([]timesheet.ImportedDay, 0, len(batches))}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, day := range dates {
			if err := s.clockEventRepo.LockDay(ctx, emp.ID, day); err != nil {
				return err
			}
		}

		existing, err := s.dailySummaryRepo.ExistingDates(ctx, emp.ID, dates)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return &timesheet.ConflictError{Date: existing[0]}
		}

		if err := timesheet.CheckOrdering(batches); err != nil {
			return err
		}

		for _, batch := range batches {
			for i := range batch.Events {
				batch.Events[i].EmployeeID = emp.ID
			}

			if _, err := s.clockEventRepo.CreateBatch(ctx, batch.Events); err != nil {
				return err
			}

			summary, err := s.dailySummaryRepo.Create(ctx, timesheet.DailySummary{
				EmployeeID:   emp.ID,
				Date:         batch.Date,
				TotalSeconds: timesheet.CalculateTotalTime(batch.Events),
			})
			if err != nil {
				return err
			}

			resp.Imported += len(batch.Events)
			resp.Days = append(resp.Days, timesheet.ImportedDay{
				Date:         batch.Date.Format(timesheet.DateLayout),
				Events:       len(batch.Events),
				TotalTime:    timesheet.FormatDuration(summary.TotalSeconds),
				TotalSeconds: summary.TotalSeconds,
			})
		}
		return nil
	})
	if err != nil {
		var (
			conflict *timesheet.ConflictError
			ordering *timesheet.OrderingError
		)
		if errors.As(err, &conflict) || errors.As(err, &ordering) {
			slog.Warn("timesheet import rejected", "employee_no", emp.EmployeeNo, "rows", len(req.Logs), "error", err)
		}
		return timesheet.ImportResponse{}, err
	}

	slog.Info("timesheet logs imported", "employee_no", emp.EmployeeNo, "events", resp.Imported, "days", len(resp.Days))

	if len(req.Archive) > 0 && s.archive != nil {
		key := storage.ImportArchiveKey(emp.EmployeeNo, req.ArchiveName, s.now())
		if _, err := s.archive.Save(ctx, bytes.NewReader(req.Archive), key); err != nil {
			// The import is committed; a lost archive copy is not fatal.
			slog.Error("failed to archive imported logs", "key", key, "error", err)
		}
	}

	return resp, nil
}

// GetSummary implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetSummary(ctx context.Context) (timesheet.SummaryResponse, error) {
	emp, err := s.currentEmployee(ctx)
	if err != nil {
		return timesheet.SummaryResponse{}, err
	}

	from, to := timesheet.DayBounds(s.now())

	var (
		summaries []timesheet.DailySummary
		latest    *timesheet.ClockEvent
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summaries, err = s.dailySummaryRepo.ListByEmployee(gctx, emp.ID)
		return err
	})
	g.Go(func() error {
		var err error
		latest, err = s.clockEventRepo.GetLatestInRange(gctx, emp.ID, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return timesheet.SummaryResponse{}, fmt.Errorf("failed to load timesheet summary: %w", err)
	}

	resp := timesheet.SummaryResponse{
		DailySummaries: make([]timesheet.DailySummaryResponse, 0, len(summaries)),
	}
	if latest != nil {
		resp.LastAction = string(latest.Type)
	}
	for _, summary := range summaries {
		resp.DailySummaries = append(resp.DailySummaries, timesheet.NewDailySummaryResponse(emp.FullName(), summary))
	}

	return resp, nil
}

// ListRecent implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ListRecent(ctx context.Context, limit int) ([]timesheet.RecentEventResponse, error) {
	if _, err := jwt.ClaimsFromContext(ctx); err != nil {
		return nil, err
	}
	switch {
	case limit <= 0:
		limit = defaultRecentLimit
	case limit > maxRecentLimit:
		limit = maxRecentLimit
	}

	events, err := s.clockEventRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	resp := make([]timesheet.RecentEventResponse, 0, len(events))
	for _, ev := range events {
		item := timesheet.RecentEventResponse{
			ID:   ev.ID,
			Type: ev.Type,
			Time: ev.Timestamp,
		}
		if ev.EmployeeNo != nil {
			item.EmployeeNo = *ev.EmployeeNo
		}
		if ev.EmployeeName != nil {
			item.FullName = *ev.EmployeeName
		}
		resp = append(resp, item)
	}
	return resp, nil
}
