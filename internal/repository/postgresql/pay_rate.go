package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payRateRepositoryImpl struct {
	db *database.DB
}

func NewPayRateRepository(db *database.DB) payroll.PayRateRepository {
	return &payRateRepositoryImpl{db: db}
}

const payRateColumns = `id, employee_id, rate, schedule, effective_date, created_at, updated_at`

func scanPayRate(row pgx.Row) (payroll.PayRate, error) {
	var p payroll.PayRate
	err := row.Scan(&p.ID, &p.EmployeeID, &p.Rate, &p.Schedule, &p.EffectiveDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayRate{}, payroll.ErrPayRateNotFound
		}
		return payroll.PayRate{}, err
	}
	return p, nil
}

// Upsert implements payroll.PayRateRepository.
func (r *payRateRepositoryImpl) Upsert(ctx context.Context, rate payroll.PayRate) (payroll.PayRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pay_rates (employee_id, rate, schedule, effective_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id) DO UPDATE SET
			rate = EXCLUDED.rate,
			schedule = EXCLUDED.schedule,
			effective_date = EXCLUDED.effective_date,
			updated_at = NOW()
		RETURNING ` + payRateColumns

	saved, err := scanPayRate(q.QueryRow(ctx, query,
		rate.EmployeeID, rate.Rate, rate.Schedule, timesheet.DayStart(rate.EffectiveDate),
	))
	if err != nil {
		return payroll.PayRate{}, fmt.Errorf("failed to upsert pay rate: %w", err)
	}
	return saved, nil
}

// GetByEmployeeID implements payroll.PayRateRepository.
func (r *payRateRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (payroll.PayRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payRateColumns + ` FROM pay_rates WHERE employee_id = $1`
	p, err := scanPayRate(q.QueryRow(ctx, query, employeeID))
	if err != nil && !errors.Is(err, payroll.ErrPayRateNotFound) {
		return payroll.PayRate{}, fmt.Errorf("failed to get pay rate: %w", err)
	}
	return p, err
}

// List implements payroll.PayRateRepository.
func (r *payRateRepositoryImpl) List(ctx context.Context) ([]payroll.PayRate, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+payRateColumns+` FROM pay_rates ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay rates: %w", err)
	}
	defer rows.Close()

	var rates []payroll.PayRate
	for rows.Next() {
		p, err := scanPayRate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pay rate: %w", err)
		}
		rates = append(rates, p)
	}
	return rates, rows.Err()
}
