package leave

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"hris/internal/domain/auth"
)

// Authorizer gates approve/reject transitions. Implemented by the auth
// service: role membership plus a live credential re-entry check.
type Authorizer interface {
	AuthorizeAction(ctx context.Context, username, submittedCredential string, requiredRoles []string) (bool, error)
}

type Service struct {
	Store StoreAPI
	Auth  Authorizer
}

func NewService(store StoreAPI, authorizer Authorizer) *Service {
	return &Service{Store: store, Auth: authorizer}
}

// RemainingBalance returns MaxDays minus the days consumed by approved
// requests whose start date falls in asOfYear. Prior years never count,
// so balances reset each January without a rollover job. A missing
// leave type reads as balance 0, matching the historical behavior the
// UI depends on. The result may be negative on inconsistent data;
// callers must treat negative as no remaining days.
func (s *Service) RemainingBalance(ctx context.Context, employeeID, leaveTypeID int64, asOfYear int) (int, error) {
	leaveType, err := s.Store.GetLeaveType(ctx, leaveTypeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}

	approved, err := s.Store.GetApprovedRequests(ctx, employeeID, leaveTypeID, asOfYear)
	if err != nil {
		return 0, err
	}

	used := 0
	for _, req := range approved {
		span, err := DaySpan(req.StartDate, req.EndDate)
		if err != nil {
			// Inconsistent row; it cannot consume balance.
			continue
		}
		used += span
	}
	return leaveType.MaxDays - used, nil
}

// ValidateRequest runs the full rule pass without creating anything.
// An empty slice means the request is valid.
func (s *Service) ValidateRequest(ctx context.Context, proposed ProposedRequest, now time.Time) ([]string, error) {
	if proposed.EmployeeID <= 0 || proposed.LeaveTypeID <= 0 {
		return Validate(proposed, LeaveType{}, nil, 0, now), nil
	}

	leaveType, err := s.Store.GetLeaveType(ctx, proposed.LeaveTypeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []string{"leave type not found"}, nil
		}
		return nil, err
	}

	existing, err := s.Store.GetAllRequests(ctx, proposed.EmployeeID)
	if err != nil {
		return nil, err
	}

	remaining, err := s.RemainingBalance(ctx, proposed.EmployeeID, proposed.LeaveTypeID, proposed.StartDate.Year())
	if err != nil {
		return nil, err
	}

	return Validate(proposed, leaveType, existing, remaining, now), nil
}

type SubmitResult struct {
	ID         int64    `json:"id,omitempty"`
	Violations []string `json:"violations,omitempty"`
}

// SubmitRequest validates and, when clean, persists the request as
// pending. The stored request date is clamped to min(now, StartDate) so
// it is never later than the leave itself.
func (s *Service) SubmitRequest(ctx context.Context, proposed ProposedRequest, now time.Time) (SubmitResult, error) {
	violations, err := s.ValidateRequest(ctx, proposed, now)
	if err != nil {
		return SubmitResult{}, err
	}
	if len(violations) > 0 {
		return SubmitResult{Violations: violations}, nil
	}

	requestDate := DateOnly(now)
	if start := DateOnly(proposed.StartDate); start.Before(requestDate) {
		requestDate = start
	}

	id, err := s.Store.CreateRequest(ctx, LeaveRequest{
		EmployeeID:  proposed.EmployeeID,
		LeaveTypeID: proposed.LeaveTypeID,
		StartDate:   DateOnly(proposed.StartDate),
		EndDate:     DateOnly(proposed.EndDate),
		RequestDate: requestDate,
		Status:      StatusPending,
		ApprovedBy:  "",
		Reason:      proposed.Reason,
	})
	if err != nil {
		return SubmitResult{}, err
	}
	return SubmitResult{ID: id}, nil
}

// Approve moves a pending request to the approved terminal state. The
// employee's balance shrinks on the next balance query; no separate
// ledger is kept.
func (s *Service) Approve(ctx context.Context, requestID int64, actingUser, submittedCredential string) error {
	return s.decide(ctx, requestID, StatusApproved, actingUser, submittedCredential)
}

// Reject moves a pending request to the rejected terminal state.
func (s *Service) Reject(ctx context.Context, requestID int64, actingUser, submittedCredential string) error {
	return s.decide(ctx, requestID, StatusRejected, actingUser, submittedCredential)
}

func (s *Service) decide(ctx context.Context, requestID int64, status, actingUser, submittedCredential string) error {
	req, err := s.Store.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if req.Status != StatusPending {
		return ErrInvalidState
	}

	authorized, err := s.Auth.AuthorizeAction(ctx, actingUser, submittedCredential, auth.ApproverRoles)
	if err != nil {
		return err
	}
	if !authorized {
		return ErrNotAuthorized
	}

	return s.Store.UpdateRequestStatus(ctx, requestID, status, actingUser)
}

func (s *Service) ListTypes(ctx context.Context) ([]LeaveType, error) {
	return s.Store.ListTypes(ctx)
}

func (s *Service) RequestsForEmployee(ctx context.Context, employeeID int64) ([]LeaveRequest, error) {
	return s.Store.GetAllRequests(ctx, employeeID)
}

func (s *Service) Statistics(ctx context.Context, now time.Time) (Statistics, error) {
	return s.Store.Statistics(ctx, now)
}
