package leavehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"hris/internal/domain/audit"
	"hris/internal/domain/auth"
	"hris/internal/domain/leave"
	"hris/internal/transport/http/api"
	"hris/internal/transport/http/middleware"
	"hris/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
	Audit   *audit.Service
}

func NewHandler(service *leave.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/types", h.handleListTypes)
		r.With(middleware.RequireAuth).Get("/balance", h.handleBalance)
		r.With(middleware.RequireAuth).Get("/requests", h.handleListRequests)
		r.With(middleware.RequireAuth).Post("/requests", h.handleSubmitRequest)
		r.With(middleware.RequireAuth).Post("/requests/validate", h.handleValidateRequest)
		r.With(middleware.RequireRole(auth.ApproverRoles...)).Post("/requests/{requestID}/approve", h.handleApprove)
		r.With(middleware.RequireRole(auth.ApproverRoles...)).Post("/requests/{requestID}/reject", h.handleReject)
		r.With(middleware.RequireRole(auth.ApproverRoles...)).Get("/statistics", h.handleStatistics)
	})
}

func (h *Handler) handleListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.ListTypes(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_types_failed", "failed to list leave types", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, types, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	employeeID := parseInt64Query(r, "employeeId")
	leaveTypeID := parseInt64Query(r, "leaveTypeId")
	v.PositiveID("employeeId", employeeID)
	v.PositiveID("leaveTypeId", leaveTypeID)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			year = parsed
		}
	}

	remaining, err := h.Service.RemainingBalance(r.Context(), employeeID, leaveTypeID, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "balance_failed", "failed to compute balance", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"employeeId":  employeeID,
		"leaveTypeId": leaveTypeID,
		"year":        year,
		"remaining":   remaining,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	employeeID := parseInt64Query(r, "employeeId")
	if employeeID <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_request", "employee id required", middleware.GetRequestID(r.Context()))
		return
	}
	requests, err := h.Service.RequestsForEmployee(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_requests_failed", "failed to list requests", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

type leaveRequestPayload struct {
	EmployeeID  int64  `json:"employeeId"`
	LeaveTypeID int64  `json:"leaveTypeId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Reason      string `json:"reason"`
}

func (h *Handler) decodeProposed(w http.ResponseWriter, r *http.Request) (leave.ProposedRequest, bool) {
	var payload leaveRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return leave.ProposedRequest{}, false
	}

	v := shared.NewValidator()
	startDate, _ := v.Date("startDate", payload.StartDate)
	endDate, _ := v.Date("endDate", payload.EndDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return leave.ProposedRequest{}, false
	}

	return leave.ProposedRequest{
		EmployeeID:  payload.EmployeeID,
		LeaveTypeID: payload.LeaveTypeID,
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      payload.Reason,
	}, true
}

func (h *Handler) handleValidateRequest(w http.ResponseWriter, r *http.Request) {
	proposed, ok := h.decodeProposed(w, r)
	if !ok {
		return
	}
	violations, err := h.Service.ValidateRequest(r.Context(), proposed, time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "validate_failed", "failed to validate request", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"valid":      len(violations) == 0,
		"violations": violations,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSubmitRequest(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	proposed, ok := h.decodeProposed(w, r)
	if !ok {
		return
	}

	result, err := h.Service.SubmitRequest(r.Context(), proposed, time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_request_failed", "failed to submit request", middleware.GetRequestID(r.Context()))
		return
	}
	if len(result.Violations) > 0 {
		api.FailWithDetails(w, http.StatusUnprocessableEntity, "validation_failed", "leave request violates policy",
			map[string]any{"violations": result.Violations}, middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), user.Username, "leave.request.submit", "leave_request", result.ID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), proposed); err != nil {
		slog.Warn("audit leave.request.submit failed", "err", err)
	}
	api.Created(w, result, middleware.GetRequestID(r.Context()))
}

type decisionPayload struct {
	Password string `json:"password"`
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "approve")
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "reject")
}

// decide routes both terminal transitions. The acting user must re-enter
// their password; the domain layer verifies it against the stored hash
// before any state change.
func (h *Handler) decide(w http.ResponseWriter, r *http.Request, action string) {
	user, _ := middleware.GetUser(r.Context())

	requestID, err := strconv.ParseInt(chi.URLParam(r, "requestID"), 10, 64)
	if err != nil || requestID <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_request", "invalid request id", middleware.GetRequestID(r.Context()))
		return
	}

	var payload decisionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	if action == "approve" {
		err = h.Service.Approve(r.Context(), requestID, user.Username, payload.Password)
	} else {
		err = h.Service.Reject(r.Context(), requestID, user.Username, payload.Password)
	}
	if err != nil {
		switch {
		case errors.Is(err, leave.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", middleware.GetRequestID(r.Context()))
		case errors.Is(err, leave.ErrInvalidState):
			api.Fail(w, http.StatusConflict, "invalid_state", "request already decided", middleware.GetRequestID(r.Context()))
		case errors.Is(err, leave.ErrNotAuthorized):
			api.Fail(w, http.StatusForbidden, "not_authorized", "credential check failed", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "decision_failed", "failed to decide request", middleware.GetRequestID(r.Context()))
		}
		return
	}

	if err := h.Audit.Record(r.Context(), user.Username, "leave.request."+action, "leave_request", requestID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil); err != nil {
		slog.Warn("audit leave decision failed", "action", action, "err", err)
	}

	status := leave.StatusApproved
	if action == "reject" {
		status = leave.StatusRejected
	}
	api.Success(w, map[string]string{"status": status}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Statistics(r.Context(), time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "statistics_failed", "failed to load statistics", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, stats, middleware.GetRequestID(r.Context()))
}

func parseInt64Query(r *http.Request, key string) int64 {
	value, err := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	if err != nil {
		return 0
	}
	return value
}
