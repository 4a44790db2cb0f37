package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// setupTestDB returns a clean database or skips the test.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	ctx := context.Background()

	setup, err := NewTestDatabase(ctx)
	if errors.Is(err, ErrNoTestDatabase) {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}
	require.NoError(t, err)
	t.Cleanup(setup.Close)

	require.NoError(t, setup.TruncateAllTables(ctx))
	return setup.DB
}

func createTestEmployee(t *testing.T, db *database.DB, employeeNo string) employee.Employee {
	t.Helper()
	repo := postgresql.NewEmployeeRepository(db)
	emp, err := repo.Create(context.Background(), employee.Employee{
		EmployeeNo: employeeNo,
		FirstName:  "Test",
		LastName:   "Employee",
		Gender:     employee.GenderOther,
	})
	require.NoError(t, err)
	return emp
}
