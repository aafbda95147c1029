package leavehandler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"hris/internal/domain/auth"
	"hris/internal/domain/leave"
	"hris/internal/transport/http/middleware"
)

type fakeLeaveStore struct {
	types    map[int64]leave.LeaveType
	requests map[int64]*leave.LeaveRequest
	nextID   int64
}

func newFakeLeaveStore() *fakeLeaveStore {
	return &fakeLeaveStore{
		types:    map[int64]leave.LeaveType{},
		requests: map[int64]*leave.LeaveRequest{},
	}
}

func (f *fakeLeaveStore) GetLeaveType(_ context.Context, id int64) (leave.LeaveType, error) {
	lt, ok := f.types[id]
	if !ok {
		return leave.LeaveType{}, fmt.Errorf("leave type %d: %w", id, leave.ErrNotFound)
	}
	return lt, nil
}

func (f *fakeLeaveStore) ListTypes(_ context.Context) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for _, lt := range f.types {
		out = append(out, lt)
	}
	return out, nil
}

func (f *fakeLeaveStore) GetRequest(_ context.Context, id int64) (leave.LeaveRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, fmt.Errorf("request %d: %w", id, leave.ErrNotFound)
	}
	return *req, nil
}

func (f *fakeLeaveStore) GetApprovedRequests(_ context.Context, employeeID, leaveTypeID int64, year int) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range f.requests {
		if req.EmployeeID == employeeID && req.LeaveTypeID == leaveTypeID &&
			req.Status == leave.StatusApproved && req.StartDate.Year() == year {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *fakeLeaveStore) GetAllRequests(_ context.Context, employeeID int64) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range f.requests {
		if req.EmployeeID == employeeID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *fakeLeaveStore) CreateRequest(_ context.Context, req leave.LeaveRequest) (int64, error) {
	f.nextID++
	req.ID = f.nextID
	f.requests[req.ID] = &req
	return req.ID, nil
}

func (f *fakeLeaveStore) UpdateRequestStatus(_ context.Context, id int64, status, approvedBy string) error {
	req, ok := f.requests[id]
	if !ok {
		return leave.ErrNotFound
	}
	req.Status = status
	req.ApprovedBy = approvedBy
	return nil
}

func (f *fakeLeaveStore) Statistics(_ context.Context, _ time.Time) (leave.Statistics, error) {
	var stats leave.Statistics
	for _, req := range f.requests {
		switch req.Status {
		case leave.StatusPending:
			stats.Pending++
		case leave.StatusApproved:
			stats.Approved++
		case leave.StatusRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

type fakeAuthorizer struct {
	password string
}

func (f *fakeAuthorizer) AuthorizeAction(_ context.Context, _, submittedCredential string, _ []string) (bool, error) {
	return submittedCredential == f.password, nil
}

func newTestRouter(store *fakeLeaveStore, user auth.UserContext) http.Handler {
	svc := leave.NewService(store, &fakeAuthorizer{password: "correct-horse"})
	handler := NewHandler(svc, nil)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUser(r.Context(), user)))
		})
	})
	handler.RegisterRoutes(router)
	return router
}

func hrUser() auth.UserContext {
	return auth.UserContext{UserID: 1, Username: "hr", RoleName: auth.RoleHR}
}

func seedStore() *fakeLeaveStore {
	store := newFakeLeaveStore()
	store.types[1] = leave.LeaveType{ID: 1, Name: "Annual Leave", MaxDays: 15}
	return store
}

func submitBody(start, end string) string {
	return fmt.Sprintf(`{"employeeId":1,"leaveTypeId":1,"startDate":"%s","endDate":"%s","reason":"trip"}`, start, end)
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func TestSubmitRequest_CreatesPendingRequest(t *testing.T) {
	store := seedStore()
	router := newTestRouter(store, hrUser())

	req := httptest.NewRequest(http.MethodPost, "/leave/requests", strings.NewReader(submitBody(futureDate(10), futureDate(12))))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(store.requests) != 1 {
		t.Fatalf("expected 1 stored request, got %d", len(store.requests))
	}
	for _, stored := range store.requests {
		if stored.Status != leave.StatusPending {
			t.Fatalf("expected pending status, got %s", stored.Status)
		}
	}
}

func TestSubmitRequest_ViolationsReturn422(t *testing.T) {
	store := seedStore()
	router := newTestRouter(store, hrUser())

	// End before start plus no advance notice.
	req := httptest.NewRequest(http.MethodPost, "/leave/requests", strings.NewReader(submitBody(futureDate(12), futureDate(10))))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(store.requests) != 0 {
		t.Fatalf("expected no stored request, got %d", len(store.requests))
	}
}

func TestValidateRequest_DryRunStoresNothing(t *testing.T) {
	store := seedStore()
	router := newTestRouter(store, hrUser())

	req := httptest.NewRequest(http.MethodPost, "/leave/requests/validate", strings.NewReader(submitBody(futureDate(10), futureDate(12))))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(store.requests) != 0 {
		t.Fatalf("dry run must not persist, got %d requests", len(store.requests))
	}

	var envelope struct {
		Data struct {
			Valid bool `json:"valid"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !envelope.Data.Valid {
		t.Fatalf("expected valid dry run: %s", rec.Body.String())
	}
}

func decide(router http.Handler, id int64, action, password string) *httptest.ResponseRecorder {
	body := fmt.Sprintf(`{"password":"%s"}`, password)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/leave/requests/%d/%s", id, action), strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestApprove_RequiresCorrectPassword(t *testing.T) {
	store := seedStore()
	router := newTestRouter(store, hrUser())

	start, _ := time.Parse("2006-01-02", futureDate(10))
	store.requests[1] = &leave.LeaveRequest{ID: 1, EmployeeID: 1, LeaveTypeID: 1, StartDate: start, EndDate: start, Status: leave.StatusPending}
	store.nextID = 1

	rec := decide(router, 1, "approve", "wrong")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 on wrong password, got %d", rec.Code)
	}
	if store.requests[1].Status != leave.StatusPending {
		t.Fatalf("declined approval must not change state, got %s", store.requests[1].Status)
	}

	rec = decide(router, 1, "approve", "correct-horse")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.requests[1].Status != leave.StatusApproved {
		t.Fatalf("expected approved, got %s", store.requests[1].Status)
	}
	if store.requests[1].ApprovedBy != "hr" {
		t.Fatalf("expected approver stamped, got %q", store.requests[1].ApprovedBy)
	}
}

func TestDecide_TerminalStateConflicts(t *testing.T) {
	store := seedStore()
	router := newTestRouter(store, hrUser())

	start, _ := time.Parse("2006-01-02", futureDate(10))
	store.requests[1] = &leave.LeaveRequest{ID: 1, EmployeeID: 1, LeaveTypeID: 1, StartDate: start, EndDate: start, Status: leave.StatusApproved}
	store.nextID = 1

	rec := decide(router, 1, "reject", "correct-horse")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for decided request, got %d", rec.Code)
	}
	if store.requests[1].Status != leave.StatusApproved {
		t.Fatalf("terminal state must not change, got %s", store.requests[1].Status)
	}
}

func TestDecide_UnknownRequest404(t *testing.T) {
	router := newTestRouter(seedStore(), hrUser())

	rec := decide(router, 99, "approve", "correct-horse")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
