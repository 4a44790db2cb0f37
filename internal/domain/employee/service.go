package employee

import "context"

type EmployeeService interface {
	// GetCurrent returns the employee bound to the acting session.
	GetCurrent(ctx context.Context) (EmployeeResponse, error)
}
