package payroll

import (
	"context"
	"slices"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/google/uuid"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	byNo map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f.byNo {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByEmployeeNo(ctx context.Context, employeeNo string) (employee.Employee, error) {
	e, ok := f.byNo[employeeNo]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	f.byNo[e.EmployeeNo] = e
	return e, nil
}

func (f *fakeEmployeeRepo) ExistsByEmployeeNo(ctx context.Context, employeeNo string) (bool, error) {
	_, ok := f.byNo[employeeNo]
	return ok, nil
}

// fakeSummaries only serves ListSince; the rest is unused by payroll.
type fakeSummaries struct {
	timesheet.DailySummaryRepository
	rows []timesheet.DailySummary
}

func (f *fakeSummaries) add(employeeID, date string, seconds int64) {
	d, _ := time.Parse(time.DateOnly, date)
	f.rows = append(f.rows, timesheet.DailySummary{
		ID:           uuid.NewString(),
		EmployeeID:   employeeID,
		Date:         d,
		TotalSeconds: seconds,
	})
}

func (f *fakeSummaries) ListSince(ctx context.Context, employeeID string, from time.Time) ([]timesheet.DailySummary, error) {
	var out []timesheet.DailySummary
	for _, s := range f.rows {
		if s.EmployeeID == employeeID && !s.Date.Before(from) {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b timesheet.DailySummary) int { return a.Date.Compare(b.Date) })
	return out, nil
}

type fakePayRates struct {
	byEmployee map[string]payroll.PayRate
}

func (f *fakePayRates) Upsert(ctx context.Context, rate payroll.PayRate) (payroll.PayRate, error) {
	if existing, ok := f.byEmployee[rate.EmployeeID]; ok {
		rate.ID = existing.ID
	} else {
		rate.ID = uuid.NewString()
	}
	f.byEmployee[rate.EmployeeID] = rate
	return rate, nil
}

func (f *fakePayRates) GetByEmployeeID(ctx context.Context, employeeID string) (payroll.PayRate, error) {
	rate, ok := f.byEmployee[employeeID]
	if !ok {
		return payroll.PayRate{}, payroll.ErrPayRateNotFound
	}
	return rate, nil
}

func (f *fakePayRates) List(ctx context.Context) ([]payroll.PayRate, error) {
	var out []payroll.PayRate
	for _, r := range f.byEmployee {
		out = append(out, r)
	}
	return out, nil
}

type fakePaymentRecords struct {
	rows []payroll.PaymentRecord
}

func (f *fakePaymentRecords) Upsert(ctx context.Context, record payroll.PaymentRecord) (payroll.PaymentRecord, error) {
	for i, r := range f.rows {
		if r.EmployeeID == record.EmployeeID && r.Date.Equal(record.Date) {
			if r.Status == payroll.PaymentStatusPaid {
				return r, nil
			}
			record.ID = r.ID
			record.Status = r.Status
			f.rows[i] = record
			return record, nil
		}
	}
	record.ID = uuid.NewString()
	f.rows = append(f.rows, record)
	return record, nil
}

func (f *fakePaymentRecords) List(ctx context.Context, filter payroll.PaymentRecordFilter) ([]payroll.PaymentRecord, error) {
	var out []payroll.PaymentRecord
	for _, r := range f.rows {
		if r.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.From != nil && r.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && r.Date.After(*filter.To) {
			continue
		}
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b payroll.PaymentRecord) int { return a.Date.Compare(b.Date) })
	if filter.NewestFirst {
		slices.Reverse(out)
	}
	return out, nil
}

func (f *fakePaymentRecords) MarkPaid(ctx context.Context, employeeID string, from, to time.Time) (int64, error) {
	var n int64
	for i, r := range f.rows {
		if r.EmployeeID == employeeID && r.Status == payroll.PaymentStatusUnpaid && !r.Date.Before(from) && !r.Date.After(to) {
			f.rows[i].Status = payroll.PaymentStatusPaid
			n++
		}
	}
	return n, nil
}
