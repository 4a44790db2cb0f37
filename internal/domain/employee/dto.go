package employee

import "time"

type EmployeeResponse struct {
	ID         string    `json:"id"`
	EmployeeNo string    `json:"employee_no"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	FullName   string    `json:"full_name"`
	Gender     Gender    `json:"gender"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		EmployeeNo: e.EmployeeNo,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		FullName:   e.FullName(),
		Gender:     e.Gender,
		CreatedAt:  e.CreatedAt,
	}
}
