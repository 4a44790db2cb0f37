package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmployeeNo(ctx context.Context, employeeNo string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	ExistsByEmployeeNo(ctx context.Context, employeeNo string) (bool, error)
}
