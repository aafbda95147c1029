package leave

import (
	"context"
	"time"
)

type StoreAPI interface {
	GetLeaveType(ctx context.Context, id int64) (LeaveType, error)
	ListTypes(ctx context.Context) ([]LeaveType, error)
	GetRequest(ctx context.Context, id int64) (LeaveRequest, error)
	GetApprovedRequests(ctx context.Context, employeeID, leaveTypeID int64, year int) ([]LeaveRequest, error)
	GetAllRequests(ctx context.Context, employeeID int64) ([]LeaveRequest, error)
	CreateRequest(ctx context.Context, req LeaveRequest) (int64, error)
	UpdateRequestStatus(ctx context.Context, id int64, status, approvedBy string) error
	Statistics(ctx context.Context, now time.Time) (Statistics, error)
}
