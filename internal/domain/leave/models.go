package leave

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type LeaveType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	MaxDays     int    `json:"maxDays"`
	Description string `json:"description"`
}

type LeaveRequest struct {
	ID          int64     `json:"id"`
	EmployeeID  int64     `json:"employeeId"`
	LeaveTypeID int64     `json:"leaveTypeId"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	RequestDate time.Time `json:"requestDate"`
	Status      string    `json:"status"`
	ApprovedBy  string    `json:"approvedBy"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Statistics summarizes leave requests for dashboards. Explicit fields
// instead of a loose counter map so nothing can be silently dropped.
type Statistics struct {
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	ThisMonth int `json:"thisMonth"`
}

// ProposedRequest is a request as entered, before any record exists.
type ProposedRequest struct {
	EmployeeID  int64     `json:"employeeId"`
	LeaveTypeID int64     `json:"leaveTypeId"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Reason      string    `json:"reason"`
}
