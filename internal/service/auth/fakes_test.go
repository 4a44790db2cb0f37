package auth

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	byUsername map[string]user.User
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	if _, ok := f.byUsername[u.Username]; ok {
		return user.User{}, user.ErrUsernameTaken
	}
	u.ID = fmt.Sprintf("user-%d", len(f.byUsername)+1)
	f.byUsername[u.Username] = u
	return u, nil
}

func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, ok := f.byUsername[username]
	return ok, nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.byUsername)), nil
}

type fakeEmployeeRepo struct {
	byID  map[string]employee.Employee
	taken map[string]bool
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByEmployeeNo(ctx context.Context, employeeNo string) (employee.Employee, error) {
	for _, e := range f.byID {
		if e.EmployeeNo == employeeNo {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	e.ID = fmt.Sprintf("emp-%d", len(f.byID)+1)
	f.byID[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) ExistsByEmployeeNo(ctx context.Context, employeeNo string) (bool, error) {
	if f.taken[employeeNo] {
		return true, nil
	}
	_, err := f.GetByEmployeeNo(ctx, employeeNo)
	return err == nil, nil
}

// alwaysTaken reports every candidate number as used.
type alwaysTaken struct {
	*fakeEmployeeRepo
}

func (alwaysTaken) ExistsByEmployeeNo(ctx context.Context, employeeNo string) (bool, error) {
	return true, nil
}
