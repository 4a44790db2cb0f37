package inquiry

import "time"

type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
	StatusClosed     Status = "Closed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// Inquiry is a contact-form submission routed to staff.
type Inquiry struct {
	ID            string
	TransactionNo string
	FirstName     string
	LastName      string
	ContactNo     string
	EmailAddress  string
	Subject       string
	Message       string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (i Inquiry) FullName() string {
	return i.FirstName + " " + i.LastName
}
