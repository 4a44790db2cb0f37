package auth

import (
	"strings"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

type RegisterRequest struct {
	Username  string          `json:"username"`
	Password  string          `json:"password"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Gender    employee.Gender `json:"gender"`
	Status    user.Status     `json:"status,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Username = strings.TrimSpace(r.Username)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Gender = employee.Gender(strings.ToUpper(strings.TrimSpace(string(r.Gender))))
	if r.Status == "" {
		r.Status = user.StatusActive
	}

	if validator.IsEmpty(r.Username) {
		errs.Add("username", "username is required")
	} else if !validator.IsValidUsername(r.Username) {
		errs.Add("username", "username must be 3-50 letters, numbers, dots, underscores or hyphens")
	}

	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	} else if len(r.Password) < 8 {
		errs.Add("password", "password must be at least 8 characters long")
	} else if len(r.Password) > 72 {
		errs.Add("password", "password must not exceed 72 characters")
	}

	if validator.IsEmpty(r.FirstName) {
		errs.Add("firstName", "firstName is required")
	} else if len(r.FirstName) > 100 {
		errs.Add("firstName", "firstName must not exceed 100 characters")
	}

	if validator.IsEmpty(r.LastName) {
		errs.Add("lastName", "lastName is required")
	} else if len(r.LastName) > 100 {
		errs.Add("lastName", "lastName must not exceed 100 characters")
	}

	if !r.Gender.IsValid() {
		errs.Add("gender", "gender must be one of MALE, FEMALE, OTHER")
	}

	if r.Status != user.StatusActive && r.Status != user.StatusInactive {
		errs.Add("status", "status must be ACTIVE or INACTIVE")
	}

	return errs.Err()
}

type RegisterResponse struct {
	Username   string `json:"username"`
	EmployeeNo string `json:"employee_no"`
	Role       string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Username = strings.TrimSpace(r.Username)
	if validator.IsEmpty(r.Username) {
		errs.Add("username", "username is required")
	}
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	}

	return errs.Err()
}

type TokenResponse struct {
	AccessToken string                    `json:"access_token"`
	TokenType   string                    `json:"token_type"`
	ExpiresAt   int64                     `json:"expires_at"`
	Role        string                    `json:"role"`
	Employee    employee.EmployeeResponse `json:"employee"`
}
