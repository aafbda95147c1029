package employee

import "time"

const (
	StatusActive     = "active"
	StatusOnLeave    = "on_leave"
	StatusInactive   = "inactive"
	StatusTerminated = "terminated"
)

type Employee struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Position     string    `json:"position"`
	Status       string    `json:"status"`
	BasicSalary  float64   `json:"basicSalary"`
	DepartmentID *int64    `json:"departmentId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
