package payroll

import (
	"context"
	"time"
)

type PayRateRepository interface {
	// Upsert replaces the employee's rate; no history is kept.
	Upsert(ctx context.Context, rate PayRate) (PayRate, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (PayRate, error)
	List(ctx context.Context) ([]PayRate, error)
}

// PaymentRecordFilter bounds are inclusive days.
type PaymentRecordFilter struct {
	EmployeeID  string
	Status      *PaymentStatus
	From        *time.Time
	To          *time.Time
	NewestFirst bool
}

type PaymentRecordRepository interface {
	// Upsert writes the record keyed by (employee, date). Status is preserved on update.
	Upsert(ctx context.Context, record PaymentRecord) (PaymentRecord, error)

	// List returns records with the source summary's worked seconds joined.
	List(ctx context.Context, filter PaymentRecordFilter) ([]PaymentRecord, error)

	// MarkPaid flips unpaid records in [from, to] to Paid.
	MarkPaid(ctx context.Context, employeeID string, from, to time.Time) (int64, error)
}
