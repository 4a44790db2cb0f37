package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/inquiry"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Import errors carry the offending day
	var orderingErr *timesheet.OrderingError
	if errors.As(err, &orderingErr) {
		OrderingError(w, orderingErr.Error())
		return
	}
	var conflictErr *timesheet.ConflictError
	if errors.As(err, &conflictErr) {
		Conflict(w, conflictErr.Error())
		return
	}

	if timesheet.IsInvalidTransition(err) {
		InvalidTransition(w, err.Error())
		return
	}

	switch {
	// Session and auth errors
	case errors.Is(err, jwt.ErrNoSession):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrUsernameTaken):
		Conflict(w, "Username is already taken")

	// Not found
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, payroll.ErrPayRateNotFound):
		NotFound(w, "Pay rate not found")
	case errors.Is(err, inquiry.ErrInquiryNotFound):
		NotFound(w, "Inquiry not found")

	// Bad input that slipped past DTO validation
	case errors.Is(err, timesheet.ErrInvalidAction):
		BadRequest(w, "Invalid action", nil)
	case errors.Is(err, payroll.ErrInvalidPayoutMethod):
		BadRequest(w, "Invalid payout method", nil)
	case errors.Is(err, payroll.ErrInvalidFrequency):
		BadRequest(w, "Invalid payout frequency", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
