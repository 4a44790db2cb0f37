package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type paymentRecordRepositoryImpl struct {
	db *database.DB
}

func NewPaymentRecordRepository(db *database.DB) payroll.PaymentRecordRepository {
	return &paymentRecordRepositoryImpl{db: db}
}

const paymentRecordColumns = `id, employee_id, daily_summary_id, date, pay_amount, status, created_at, updated_at`

// Upsert implements payroll.PaymentRecordRepository.
// Paid records are left as they are and returned unchanged.
func (r *paymentRecordRepositoryImpl) Upsert(ctx context.Context, record payroll.PaymentRecord) (payroll.PaymentRecord, error) {
	q := GetQuerier(ctx, r.db)

	status := record.Status
	if status == "" {
		status = payroll.PaymentStatusUnpaid
	}

	query := `
		INSERT INTO payment_records (employee_id, daily_summary_id, date, pay_amount, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			daily_summary_id = EXCLUDED.daily_summary_id,
			pay_amount = EXCLUDED.pay_amount,
			updated_at = NOW()
		WHERE payment_records.status = 'Unpaid'
		RETURNING ` + paymentRecordColumns

	day := timesheet.DayStart(record.Date)

	var saved payroll.PaymentRecord
	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.DailySummaryID, day, record.PayAmount, status,
	).Scan(
		&saved.ID, &saved.EmployeeID, &saved.DailySummaryID, &saved.Date,
		&saved.PayAmount, &saved.Status, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		err = q.QueryRow(ctx,
			`SELECT `+paymentRecordColumns+` FROM payment_records WHERE employee_id = $1 AND date = $2`,
			record.EmployeeID, day,
		).Scan(
			&saved.ID, &saved.EmployeeID, &saved.DailySummaryID, &saved.Date,
			&saved.PayAmount, &saved.Status, &saved.CreatedAt, &saved.UpdatedAt,
		)
	}
	if err != nil {
		return payroll.PaymentRecord{}, fmt.Errorf("failed to upsert payment record: %w", err)
	}
	saved.TotalSeconds = record.TotalSeconds
	return saved, nil
}

// List implements payroll.PaymentRecordRepository.
func (r *paymentRecordRepositoryImpl) List(ctx context.Context, filter payroll.PaymentRecordFilter) ([]payroll.PaymentRecord, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions = []string{"pr.employee_id = $1"}
		args       = []any{filter.EmployeeID}
	)
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("pr.status = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, timesheet.DayStart(*filter.From))
		conditions = append(conditions, fmt.Sprintf("pr.date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, timesheet.DayStart(*filter.To))
		conditions = append(conditions, fmt.Sprintf("pr.date <= $%d", len(args)))
	}

	order := "ASC"
	if filter.NewestFirst {
		order = "DESC"
	}

	query := `
		SELECT pr.id, pr.employee_id, pr.daily_summary_id, pr.date, pr.pay_amount, pr.status,
			pr.created_at, pr.updated_at, ds.total_seconds
		FROM payment_records pr
		JOIN daily_summaries ds ON ds.id = pr.daily_summary_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY pr.date ` + order

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PaymentRecord
	for rows.Next() {
		var rec payroll.PaymentRecord
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.DailySummaryID, &rec.Date, &rec.PayAmount, &rec.Status,
			&rec.CreatedAt, &rec.UpdatedAt, &rec.TotalSeconds,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// MarkPaid implements payroll.PaymentRecordRepository.
func (r *paymentRecordRepositoryImpl) MarkPaid(ctx context.Context, employeeID string, from, to time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE payment_records
		SET status = $1, updated_at = NOW()
		WHERE employee_id = $2 AND status = $3 AND date >= $4 AND date <= $5
	`, payroll.PaymentStatusPaid, employeeID, payroll.PaymentStatusUnpaid, timesheet.DayStart(from), timesheet.DayStart(to))
	if err != nil {
		return 0, fmt.Errorf("failed to mark payments paid: %w", err)
	}
	return tag.RowsAffected(), nil
}
