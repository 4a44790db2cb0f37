package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type dailySummaryRepositoryImpl struct {
	db *database.DB
}

func NewDailySummaryRepository(db *database.DB) timesheet.DailySummaryRepository {
	return &dailySummaryRepositoryImpl{db: db}
}

const dailySummaryColumns = `id, employee_id, date, total_seconds, created_at, updated_at`

func scanDailySummary(row pgx.Row) (timesheet.DailySummary, error) {
	var s timesheet.DailySummary
	err := row.Scan(&s.ID, &s.EmployeeID, &s.Date, &s.TotalSeconds, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// GetByEmployeeAndDate implements timesheet.DailySummaryRepository.
func (r *dailySummaryRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*timesheet.DailySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + dailySummaryColumns + ` FROM daily_summaries WHERE employee_id = $1 AND date = $2`
	s, err := scanDailySummary(q.QueryRow(ctx, query, employeeID, timesheet.DayStart(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get daily summary: %w", err)
	}
	return &s, nil
}

// EnsureExists implements timesheet.DailySummaryRepository.
func (r *dailySummaryRepositoryImpl) EnsureExists(ctx context.Context, employeeID string, date time.Time) (timesheet.DailySummary, error) {
	q := GetQuerier(ctx, r.db)

	// The no-op update makes RETURNING yield the existing row on conflict.
	query := `
		INSERT INTO daily_summaries (employee_id, date, total_seconds)
		VALUES ($1, $2, 0)
		ON CONFLICT (employee_id, date) DO UPDATE SET employee_id = EXCLUDED.employee_id
		RETURNING ` + dailySummaryColumns

	s, err := scanDailySummary(q.QueryRow(ctx, query, employeeID, timesheet.DayStart(date)))
	if err != nil {
		return timesheet.DailySummary{}, fmt.Errorf("failed to ensure daily summary: %w", err)
	}
	return s, nil
}

// Upsert implements timesheet.DailySummaryRepository.
func (r *dailySummaryRepositoryImpl) Upsert(ctx context.Context, summary timesheet.DailySummary) (timesheet.DailySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO daily_summaries (employee_id, date, total_seconds)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			total_seconds = EXCLUDED.total_seconds,
			updated_at = NOW()
		RETURNING ` + dailySummaryColumns

	s, err := scanDailySummary(q.QueryRow(ctx, query,
		summary.EmployeeID, timesheet.DayStart(summary.Date), summary.TotalSeconds,
	))
	if err != nil {
		return timesheet.DailySummary{}, fmt.Errorf("failed to upsert daily summary: %w", err)
	}
	return s, nil
}

// Create implements timesheet.DailySummaryRepository.
func (r *dailySummaryRepositoryImpl) Create(ctx context.Context, summary timesheet.DailySummary) (timesheet.DailySummary, error) {
	q := GetQuerier(ctx, r.db)

	day := timesheet.DayStart(summary.Date)
	query := `
		INSERT INTO daily_summaries (employee_id, date, total_seconds)
		VALUES ($1, $2, $3)
		RETURNING ` + dailySummaryColumns

	s, err := scanDailySummary(q.QueryRow(ctx, query, summary.EmployeeID, day, summary.TotalSeconds))
	if err != nil {
		if isUniqueViolation(err, "daily_summaries_employee_id_date_key") {
			return timesheet.DailySummary{}, &timesheet.ConflictError{Date: day}
		}
		return timesheet.DailySummary{}, fmt.Errorf("failed to create daily summary: %w", err)
	}
	return s, nil
}

// ExistingDates implements timesheet.DailySummaryRepository.
func (r *dailySummaryRepositoryImpl) ExistingDates(ctx context.Context, employeeID string, dates []time.Time) ([]time.Time, error) {
	if len(dates) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	days := make([]time.Time, len(dates))
	for i, d := range dates {
		days[i] = timesheet.DayStart(d)
	}

	rows, err := q.Query(ctx, `
		SELECT date FROM daily_summaries
		WHERE employee_id = $1 AND date = ANY($2::date[])
		ORDER BY date
	`, employeeID, days)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing summaries: %w", err)
	}
	defer rows.Close()

	var existing []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		existing = append(existing, d)
	}
	return existing, rows.Err()
}

// ListByEmployee implements timesheet.DailySummaryRepository.
func (r *dailySummaryRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]timesheet.DailySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ds.id, ds.employee_id, ds.date, ds.total_seconds, ds.created_at, ds.updated_at,
			MIN(ce.occurred_at), MAX(ce.occurred_at)
		FROM daily_summaries ds
		LEFT JOIN clock_events ce
			ON ce.employee_id = ds.employee_id
			AND ce.occurred_at >= ds.date::timestamp AT TIME ZONE 'UTC'
			AND ce.occurred_at < (ds.date + 1)::timestamp AT TIME ZONE 'UTC'
		WHERE ds.employee_id = $1
		GROUP BY ds.id
		ORDER BY ds.date DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily summaries: %w", err)
	}
	defer rows.Close()

	var summaries []timesheet.DailySummary
	for rows.Next() {
		var s timesheet.DailySummary
		err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.Date, &s.TotalSeconds, &s.CreatedAt, &s.UpdatedAt,
			&s.FirstEventAt, &s.LastEventAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// ListSince implements timesheet.DailySummaryRepository.
func (r *dailySummaryRepositoryImpl) ListSince(ctx context.Context, employeeID string, from time.Time) ([]timesheet.DailySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + dailySummaryColumns + `
		FROM daily_summaries
		WHERE employee_id = $1 AND date >= $2
		ORDER BY date ASC`

	rows, err := q.Query(ctx, query, employeeID, timesheet.DayStart(from))
	if err != nil {
		return nil, fmt.Errorf("failed to list daily summaries: %w", err)
	}
	defer rows.Close()

	var summaries []timesheet.DailySummary
	for rows.Next() {
		s, err := scanDailySummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
