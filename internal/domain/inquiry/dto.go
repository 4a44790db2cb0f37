package inquiry

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

type CreateInquiryRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	ContactNo    string `json:"contactNo"`
	EmailAddress string `json:"emailAddress"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
}

func (r *CreateInquiryRequest) normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.ContactNo = strings.TrimSpace(r.ContactNo)
	r.EmailAddress = strings.TrimSpace(r.EmailAddress)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
}

func (r *CreateInquiryRequest) collect(errs *validator.ValidationErrors) {
	r.normalize()

	if validator.IsEmpty(r.FirstName) {
		errs.Add("firstName", "First name is required")
	} else if len(r.FirstName) > 100 {
		errs.Add("firstName", "First name must not exceed 100 characters")
	}

	if validator.IsEmpty(r.LastName) {
		errs.Add("lastName", "Last name is required")
	} else if len(r.LastName) > 100 {
		errs.Add("lastName", "Last name must not exceed 100 characters")
	}

	if validator.IsEmpty(r.ContactNo) {
		errs.Add("contactNo", "Contact number is required")
	} else if !validator.IsValidContactNo(r.ContactNo) {
		errs.Add("contactNo", "Contact number must be exactly 11 digits")
	}

	if validator.IsEmpty(r.EmailAddress) {
		errs.Add("emailAddress", "Email is required")
	} else if !validator.IsValidEmail(r.EmailAddress) {
		errs.Add("emailAddress", "Invalid email address")
	}

	if validator.IsEmpty(r.Subject) {
		errs.Add("subject", "Subject is required")
	} else if len(r.Subject) > 255 {
		errs.Add("subject", "Subject must not exceed 255 characters")
	}

	if validator.IsEmpty(r.Message) {
		errs.Add("message", "Message is required")
	}
}

func (r *CreateInquiryRequest) Validate() error {
	var errs validator.ValidationErrors
	r.collect(&errs)
	return errs.Err()
}

type UpdateInquiryRequest struct {
	TransactionNo string `json:"-"`
	CreateInquiryRequest
	Status Status `json:"status"`
}

func (r *UpdateInquiryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TransactionNo) {
		errs.Add("transactionNo", "transactionNo is required")
	}
	r.CreateInquiryRequest.collect(&errs)
	if r.Status == "" {
		r.Status = StatusPending
	}
	if !r.Status.IsValid() {
		errs.Add("status", "status must be one of Pending, In Progress, Resolved, Closed")
	}

	return errs.Err()
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

type InquiryFilter struct {
	Status *Status
	Page   int
	Limit  int
}

func (f *InquiryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit == 0 {
		f.Limit = DefaultPageLimit
	}
	if f.Page < 1 {
		errs.Add("page", "page must be at least 1")
	}
	if f.Limit < 1 || f.Limit > MaxPageLimit {
		errs.Add("limit", "limit must be between 1 and 100")
	}
	if f.Status != nil && !f.Status.IsValid() {
		errs.Add("status", "status must be one of Pending, In Progress, Resolved, Closed")
	}

	return errs.Err()
}

// Offset is the number of rows skipped before the current page.
func (f InquiryFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type ListInquiryResponse struct {
	TotalCount int64             `json:"totalCount"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
	Inquiries  []InquiryResponse `json:"inquiries"`
}

type InquiryResponse struct {
	TransactionNo string    `json:"transactionNo"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	ContactNo     string    `json:"contactNo"`
	EmailAddress  string    `json:"emailAddress"`
	Subject       string    `json:"subject"`
	Message       string    `json:"message"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewInquiryResponse(i Inquiry) InquiryResponse {
	return InquiryResponse{
		TransactionNo: i.TransactionNo,
		FirstName:     i.FirstName,
		LastName:      i.LastName,
		ContactNo:     i.ContactNo,
		EmailAddress:  i.EmailAddress,
		Subject:       i.Subject,
		Message:       i.Message,
		Status:        i.Status,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}
