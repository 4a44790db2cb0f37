package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockEventRepository_LatestAndRange(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewClockEventRepository(db)
	emp := createTestEmployee(t, db, "C0FFEE")

	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	from, to := timesheet.DayBounds(day)

	latest, err := repo.GetLatestInRange(ctx, emp.ID, from, to)
	require.NoError(t, err)
	assert.Nil(t, latest)

	_, err = repo.Create(ctx, timesheet.ClockEvent{EmployeeID: emp.ID, Type: timesheet.EventTimeIn, Timestamp: day.Add(9 * time.Hour)})
	require.NoError(t, err)
	_, err = repo.Create(ctx, timesheet.ClockEvent{EmployeeID: emp.ID, Type: timesheet.EventBreak, Timestamp: day.Add(12 * time.Hour)})
	require.NoError(t, err)
	// Next day, outside the range.
	_, err = repo.Create(ctx, timesheet.ClockEvent{EmployeeID: emp.ID, Type: timesheet.EventTimeIn, Timestamp: day.Add(33 * time.Hour)})
	require.NoError(t, err)

	latest, err = repo.GetLatestInRange(ctx, emp.ID, from, to)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, timesheet.EventBreak, latest.Type)

	events, err := repo.ListInRange(ctx, emp.ID, from, to)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, timesheet.EventTimeIn, events[0].Type)

	recent, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.NotNil(t, recent[0].EmployeeNo)
	assert.Equal(t, "C0FFEE", *recent[0].EmployeeNo)
}

func TestClockEventRepository_CreateBatchWithinTx(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewClockEventRepository(db)
	tx := postgresql.NewTransactor(db)
	emp := createTestEmployee(t, db, "BA7C40")

	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	batch := []timesheet.ClockEvent{
		{EmployeeID: emp.ID, Type: timesheet.EventTimeIn, Timestamp: day.Add(8 * time.Hour)},
		{EmployeeID: emp.ID, Type: timesheet.EventTimeOut, Timestamp: day.Add(17 * time.Hour)},
	}

	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := repo.LockDay(ctx, emp.ID, day); err != nil {
			return err
		}
		n, err := repo.CreateBatch(ctx, batch)
		assert.Equal(t, int64(2), n)
		return err
	})
	require.NoError(t, err)

	from, to := timesheet.DayBounds(day)
	events, err := repo.ListInRange(ctx, emp.ID, from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(9*3600), timesheet.CalculateTotalTime(events))
}

func TestDailySummaryRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewDailySummaryRepository(db)
	emp := createTestEmployee(t, db, "5AFE01")

	day := time.Date(2024, 3, 4, 15, 0, 0, 0, time.UTC)

	ensured, err := repo.EnsureExists(ctx, emp.ID, day)
	require.NoError(t, err)
	assert.Equal(t, int64(0), ensured.TotalSeconds)

	again, err := repo.EnsureExists(ctx, emp.ID, day)
	require.NoError(t, err)
	assert.Equal(t, ensured.ID, again.ID)

	updated, err := repo.Upsert(ctx, timesheet.DailySummary{EmployeeID: emp.ID, Date: day, TotalSeconds: 3600})
	require.NoError(t, err)
	assert.Equal(t, ensured.ID, updated.ID)
	assert.Equal(t, int64(3600), updated.TotalSeconds)

	_, err = repo.Create(ctx, timesheet.DailySummary{EmployeeID: emp.ID, Date: day, TotalSeconds: 10})
	var conflict *timesheet.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.ErrorIs(t, err, timesheet.ErrLogsAlreadyExist)

	next := day.AddDate(0, 0, 1)
	_, err = repo.Create(ctx, timesheet.DailySummary{EmployeeID: emp.ID, Date: next, TotalSeconds: 7200})
	require.NoError(t, err)

	existing, err := repo.ExistingDates(ctx, emp.ID, []time.Time{day, day.AddDate(0, 0, 5)})
	require.NoError(t, err)
	require.Len(t, existing, 1)
	assert.Equal(t, "2024-03-04", existing[0].Format(time.DateOnly))

	list, err := repo.ListByEmployee(ctx, emp.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2024-03-05", list[0].Date.Format(time.DateOnly))

	since, err := repo.ListSince(ctx, emp.ID, next)
	require.NoError(t, err)
	require.Len(t, since, 1)
	assert.Equal(t, int64(7200), since[0].TotalSeconds)

	got, err := repo.GetByEmployeeAndDate(ctx, emp.ID, day.AddDate(0, 0, 9))
	require.NoError(t, err)
	assert.Nil(t, got)
}
