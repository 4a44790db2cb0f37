package timesheet

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
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

type fakeClockEvents struct {
	mu     sync.Mutex
	events []timesheet.ClockEvent
	locks  int
}

func (f *fakeClockEvents) LockDay(ctx context.Context, employeeID string, day time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locks++
	return nil
}

func (f *fakeClockEvents) inRange(employeeID string, from, to time.Time) []timesheet.ClockEvent {
	var out []timesheet.ClockEvent
	for _, ev := range f.events {
		if ev.EmployeeID == employeeID && !ev.Timestamp.Before(from) && ev.Timestamp.Before(to) {
			out = append(out, ev)
		}
	}
	slices.SortStableFunc(out, func(a, b timesheet.ClockEvent) int { return a.Timestamp.Compare(b.Timestamp) })
	return out
}

func (f *fakeClockEvents) GetLatestInRange(ctx context.Context, employeeID string, from, to time.Time) (*timesheet.ClockEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	events := f.inRange(employeeID, from, to)
	if len(events) == 0 {
		return nil, nil
	}
	latest := events[len(events)-1]
	return &latest, nil
}

func (f *fakeClockEvents) ListInRange(ctx context.Context, employeeID string, from, to time.Time) ([]timesheet.ClockEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inRange(employeeID, from, to), nil
}

func (f *fakeClockEvents) Create(ctx context.Context, ev timesheet.ClockEvent) (timesheet.ClockEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ev.ID = uuid.NewString()
	ev.CreatedAt = ev.Timestamp
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeClockEvents) CreateBatch(ctx context.Context, events []timesheet.ClockEvent) (int64, error) {
	for _, ev := range events {
		if _, err := f.Create(ctx, ev); err != nil {
			return 0, err
		}
	}
	return int64(len(events)), nil
}

func (f *fakeClockEvents) ListRecent(ctx context.Context, limit int) ([]timesheet.ClockEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := slices.Clone(f.events)
	slices.SortStableFunc(out, func(a, b timesheet.ClockEvent) int { return b.Timestamp.Compare(a.Timestamp) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type summaryKey struct {
	employeeID string
	date       string
}

type fakeDailySummaries struct {
	mu   sync.Mutex
	rows map[summaryKey]timesheet.DailySummary
}

func newFakeDailySummaries() *fakeDailySummaries {
	return &fakeDailySummaries{rows: make(map[summaryKey]timesheet.DailySummary)}
}

func keyFor(employeeID string, date time.Time) summaryKey {
	return summaryKey{employeeID, timesheet.DayStart(date).Format(timesheet.DateLayout)}
}

func (f *fakeDailySummaries) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*timesheet.DailySummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.rows[keyFor(employeeID, date)]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeDailySummaries) EnsureExists(ctx context.Context, employeeID string, date time.Time) (timesheet.DailySummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := keyFor(employeeID, date)
	if s, ok := f.rows[k]; ok {
		return s, nil
	}
	s := timesheet.DailySummary{ID: uuid.NewString(), EmployeeID: employeeID, Date: timesheet.DayStart(date)}
	f.rows[k] = s
	return s, nil
}

func (f *fakeDailySummaries) Upsert(ctx context.Context, summary timesheet.DailySummary) (timesheet.DailySummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := keyFor(summary.EmployeeID, summary.Date)
	if existing, ok := f.rows[k]; ok {
		existing.TotalSeconds = summary.TotalSeconds
		f.rows[k] = existing
		return existing, nil
	}
	summary.ID = uuid.NewString()
	summary.Date = timesheet.DayStart(summary.Date)
	f.rows[k] = summary
	return summary, nil
}

func (f *fakeDailySummaries) Create(ctx context.Context, summary timesheet.DailySummary) (timesheet.DailySummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := keyFor(summary.EmployeeID, summary.Date)
	if _, ok := f.rows[k]; ok {
		return timesheet.DailySummary{}, &timesheet.ConflictError{Date: timesheet.DayStart(summary.Date)}
	}
	summary.ID = uuid.NewString()
	summary.Date = timesheet.DayStart(summary.Date)
	f.rows[k] = summary
	return summary, nil
}

func (f *fakeDailySummaries) ExistingDates(ctx context.Context, employeeID string, dates []time.Time) ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []time.Time
	for _, d := range dates {
		if _, ok := f.rows[keyFor(employeeID, d)]; ok {
			out = append(out, timesheet.DayStart(d))
		}
	}
	return out, nil
}

func (f *fakeDailySummaries) list(employeeID string) []timesheet.DailySummary {
	var out []timesheet.DailySummary
	for _, s := range f.rows {
		if s.EmployeeID == employeeID {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b timesheet.DailySummary) int { return a.Date.Compare(b.Date) })
	return out
}

func (f *fakeDailySummaries) ListByEmployee(ctx context.Context, employeeID string) ([]timesheet.DailySummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.list(employeeID)
	slices.Reverse(out)
	return out, nil
}

func (f *fakeDailySummaries) ListSince(ctx context.Context, employeeID string, from time.Time) ([]timesheet.DailySummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []timesheet.DailySummary
	for _, s := range f.list(employeeID) {
		if !s.Date.Before(timesheet.DayStart(from)) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeArchive struct {
	saved map[string][]byte
	err   error
}

func (f *fakeArchive) Save(ctx context.Context, r io.Reader, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if f.saved == nil {
		f.saved = make(map[string][]byte)
	}
	f.saved[key] = b
	return key, nil
}

func (f *fakeArchive) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeArchive) Delete(ctx context.Context, key string) error { return nil }

func (f *fakeArchive) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.saved[key]
	return ok, nil
}
