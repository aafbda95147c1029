package leave

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"hris/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) GetLeaveType(ctx context.Context, id int64) (LeaveType, error) {
	var lt LeaveType
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, max_days, description
    FROM leave_types
    WHERE id = $1
  `, id).Scan(&lt.ID, &lt.Name, &lt.MaxDays, &lt.Description)
	if err != nil {
		return LeaveType{}, err
	}
	return lt, nil
}

func (s *Store) ListTypes(ctx context.Context) ([]LeaveType, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, max_days, description
    FROM leave_types
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []LeaveType
	for rows.Next() {
		var lt LeaveType
		if err := rows.Scan(&lt.ID, &lt.Name, &lt.MaxDays, &lt.Description); err != nil {
			return nil, err
		}
		types = append(types, lt)
	}
	return types, rows.Err()
}

func (s *Store) GetRequest(ctx context.Context, id int64) (LeaveRequest, error) {
	var req LeaveRequest
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, leave_type_id, start_date, end_date, request_date, status, approved_by, reason, created_at
    FROM leave_requests
    WHERE id = $1
  `, id).Scan(&req.ID, &req.EmployeeID, &req.LeaveTypeID, &req.StartDate, &req.EndDate, &req.RequestDate, &req.Status, &req.ApprovedBy, &req.Reason, &req.CreatedAt)
	if err != nil {
		return LeaveRequest{}, err
	}
	return req, nil
}

func (s *Store) GetApprovedRequests(ctx context.Context, employeeID, leaveTypeID int64, year int) ([]LeaveRequest, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, leave_type_id, start_date, end_date, request_date, status, approved_by, reason, created_at
    FROM leave_requests
    WHERE employee_id = $1 AND leave_type_id = $2 AND status = $3
      AND EXTRACT(YEAR FROM start_date) = $4
    ORDER BY start_date
  `, employeeID, leaveTypeID, StatusApproved, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (s *Store) GetAllRequests(ctx context.Context, employeeID int64) ([]LeaveRequest, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, leave_type_id, start_date, end_date, request_date, status, approved_by, reason, created_at
    FROM leave_requests
    WHERE employee_id = $1
    ORDER BY start_date
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (s *Store) CreateRequest(ctx context.Context, req LeaveRequest) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, leave_type_id, start_date, end_date, request_date, status, approved_by, reason)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, req.EmployeeID, req.LeaveTypeID, req.StartDate, req.EndDate, req.RequestDate, req.Status, req.ApprovedBy, req.Reason).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) UpdateRequestStatus(ctx context.Context, id int64, status, approvedBy string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE leave_requests SET status = $1, approved_by = $2, decided_at = now() WHERE id = $3
  `, status, approvedBy, id)
	return err
}

func (s *Store) Statistics(ctx context.Context, now time.Time) (Statistics, error) {
	var stats Statistics
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	err := s.DB.QueryRow(ctx, `
    SELECT
      COUNT(1) FILTER (WHERE status = $1),
      COUNT(1) FILTER (WHERE status = $2),
      COUNT(1) FILTER (WHERE status = $3),
      COUNT(1) FILTER (WHERE request_date >= $4 AND request_date < $5)
    FROM leave_requests
  `, StatusPending, StatusApproved, StatusRejected, monthStart, monthStart.AddDate(0, 1, 0)).
		Scan(&stats.Pending, &stats.Approved, &stats.Rejected, &stats.ThisMonth)
	if err != nil {
		return Statistics{}, err
	}
	return stats, nil
}

func scanRequests(rows pgx.Rows) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	for rows.Next() {
		var req LeaveRequest
		if err := rows.Scan(&req.ID, &req.EmployeeID, &req.LeaveTypeID, &req.StartDate, &req.EndDate, &req.RequestDate, &req.Status, &req.ApprovedBy, &req.Reason, &req.CreatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
