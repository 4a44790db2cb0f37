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

type clockEventRepositoryImpl struct {
	db *database.DB
}

func NewClockEventRepository(db *database.DB) timesheet.ClockEventRepository {
	return &clockEventRepositoryImpl{db: db}
}

// LockDay implements timesheet.ClockEventRepository.
// Must run inside a transaction; the lock is released on commit or rollback.
func (r *clockEventRepositoryImpl) LockDay(ctx context.Context, employeeID string, day time.Time) error {
	q := GetQuerier(ctx, r.db)

	key := employeeID + ":" + timesheet.DayStart(day).Format(timesheet.DateLayout)
	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return fmt.Errorf("failed to lock employee day %s: %w", key, err)
	}
	return nil
}

// GetLatestInRange implements timesheet.ClockEventRepository.
func (r *clockEventRepositoryImpl) GetLatestInRange(ctx context.Context, employeeID string, from, to time.Time) (*timesheet.ClockEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, type, occurred_at, created_at
		FROM clock_events
		WHERE employee_id = $1 AND occurred_at >= $2 AND occurred_at < $3
		ORDER BY occurred_at DESC, created_at DESC
		LIMIT 1
	`

	var ev timesheet.ClockEvent
	err := q.QueryRow(ctx, query, employeeID, from, to).Scan(
		&ev.ID, &ev.EmployeeID, &ev.Type, &ev.Timestamp, &ev.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest clock event: %w", err)
	}
	return &ev, nil
}

// ListInRange implements timesheet.ClockEventRepository.
func (r *clockEventRepositoryImpl) ListInRange(ctx context.Context, employeeID string, from, to time.Time) ([]timesheet.ClockEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, type, occurred_at, created_at
		FROM clock_events
		WHERE employee_id = $1 AND occurred_at >= $2 AND occurred_at < $3
		ORDER BY occurred_at ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list clock events: %w", err)
	}
	defer rows.Close()

	var events []timesheet.ClockEvent
	for rows.Next() {
		var ev timesheet.ClockEvent
		if err := rows.Scan(&ev.ID, &ev.EmployeeID, &ev.Type, &ev.Timestamp, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan clock event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Create implements timesheet.ClockEventRepository.
func (r *clockEventRepositoryImpl) Create(ctx context.Context, event timesheet.ClockEvent) (timesheet.ClockEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO clock_events (employee_id, type, occurred_at)
		VALUES ($1, $2, $3)
		RETURNING id, employee_id, type, occurred_at, created_at
	`

	var created timesheet.ClockEvent
	err := q.QueryRow(ctx, query, event.EmployeeID, event.Type, event.Timestamp.UTC()).Scan(
		&created.ID, &created.EmployeeID, &created.Type, &created.Timestamp, &created.CreatedAt,
	)
	if err != nil {
		return timesheet.ClockEvent{}, fmt.Errorf("failed to create clock event: %w", err)
	}
	return created, nil
}

// CreateBatch implements timesheet.ClockEventRepository.
func (r *clockEventRepositoryImpl) CreateBatch(ctx context.Context, events []timesheet.ClockEvent) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, r.db)

	n, err := q.CopyFrom(ctx,
		pgx.Identifier{"clock_events"},
		[]string{"employee_id", "type", "occurred_at"},
		pgx.CopyFromSlice(len(events), func(i int) ([]any, error) {
			return []any{events[i].EmployeeID, string(events[i].Type), events[i].Timestamp.UTC()}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk insert clock events: %w", err)
	}
	return n, nil
}

// ListRecent implements timesheet.ClockEventRepository.
func (r *clockEventRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]timesheet.ClockEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ce.id, ce.employee_id, ce.type, ce.occurred_at, ce.created_at,
			e.employee_no, e.first_name || ' ' || e.last_name
		FROM clock_events ce
		JOIN employees e ON e.id = ce.employee_id
		ORDER BY ce.occurred_at DESC, ce.created_at DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent clock events: %w", err)
	}
	defer rows.Close()

	var events []timesheet.ClockEvent
	for rows.Next() {
		var ev timesheet.ClockEvent
		err := rows.Scan(
			&ev.ID, &ev.EmployeeID, &ev.Type, &ev.Timestamp, &ev.CreatedAt,
			&ev.EmployeeNo, &ev.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clock event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
