package payrollhandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"hris/internal/domain/audit"
	"hris/internal/domain/auth"
	"hris/internal/domain/payroll"
	"hris/internal/platform/jobs"
	"hris/internal/transport/http/api"
	"hris/internal/transport/http/middleware"
	"hris/internal/transport/http/shared"
)

type Handler struct {
	Service *payroll.Service
	Audit   *audit.Service
	Jobs    *jobs.Service
}

func NewHandler(service *payroll.Service, auditSvc *audit.Service, jobsSvc *jobs.Service) *Handler {
	return &Handler{Service: service, Audit: auditSvc, Jobs: jobsSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.PayrollRoles...)).Post("/runs", h.handleGenerateRun)
		r.With(middleware.RequireRole(auth.PayrollRoles...)).Get("/records", h.handleListRecords)
		r.With(middleware.RequireAuth).Get("/records/{recordID}/payslip", h.handlePayslip)
		r.With(middleware.RequireRole(auth.PayrollRoles...)).Get("/preview/deductions", h.handlePreviewDeductions)
		r.With(middleware.RequireRole(auth.PayrollRoles...)).Get("/preview/bonus", h.handlePreviewBonus)
	})
}

type runPayload struct {
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd"`
}

func (h *Handler) handleGenerateRun(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload runPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	periodStart, _ := v.Date("periodStart", payload.PeriodStart)
	periodEnd, _ := v.Date("periodEnd", payload.PeriodEnd)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	now := time.Now()
	var summary payroll.RunSummary
	var err error
	if h.Jobs != nil {
		result, runErr := h.Jobs.RunNow(r.Context(), jobs.JobPayrollRun, func(runCtx context.Context) (any, error) {
			return h.Service.GenerateRun(runCtx, periodStart, periodEnd, now)
		})
		err = runErr
		if s, ok := result.(payroll.RunSummary); ok {
			summary = s
		}
	} else {
		summary, err = h.Service.GenerateRun(r.Context(), periodStart, periodEnd, now)
	}
	if err != nil {
		switch {
		case errors.Is(err, payroll.ErrInvalidPeriod):
			api.Fail(w, http.StatusBadRequest, "invalid_period", "period end before period start", middleware.GetRequestID(r.Context()))
		case errors.Is(err, payroll.ErrDuplicateRun):
			api.Fail(w, http.StatusConflict, "duplicate_run", "payroll already generated for this period or month", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "run_failed", "failed to generate payroll run", middleware.GetRequestID(r.Context()))
		}
		return
	}

	if err := h.Audit.Record(r.Context(), user.Username, "payroll.run.generate", "payroll_run", 0, middleware.GetRequestID(r.Context()), shared.ClientIP(r), map[string]any{
		"periodStart": payload.PeriodStart,
		"periodEnd":   payload.PeriodEnd,
		"succeeded":   summary.Succeeded,
		"failed":      summary.Failed,
	}); err != nil {
		slog.Warn("audit payroll.run.generate failed", "err", err)
	}
	api.Created(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRecords(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if rawEmployee := query.Get("employeeId"); rawEmployee != "" {
		employeeID, err := strconv.ParseInt(rawEmployee, 10, 64)
		if err != nil || employeeID <= 0 {
			api.Fail(w, http.StatusBadRequest, "invalid_request", "invalid employee id", middleware.GetRequestID(r.Context()))
			return
		}
		page := shared.ParsePagination(r, 50, 200)
		records, err := h.Service.RecordsForEmployee(r.Context(), employeeID, page.Limit, page.Offset)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "records_failed", "failed to list payroll records", middleware.GetRequestID(r.Context()))
			return
		}
		api.Success(w, records, middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	periodStart, _ := v.Date("periodStart", query.Get("periodStart"))
	periodEnd, _ := v.Date("periodEnd", query.Get("periodEnd"))
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	records, err := h.Service.RecordsForPeriod(r.Context(), periodStart, periodEnd)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "records_failed", "failed to list payroll records", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	recordID, err := strconv.ParseInt(chi.URLParam(r, "recordID"), 10, 64)
	if err != nil || recordID <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_request", "invalid record id", middleware.GetRequestID(r.Context()))
		return
	}

	pdf, err := h.Service.Payslip(r.Context(), recordID)
	if err != nil {
		if errors.Is(err, payroll.ErrRecordNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "payroll record not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to render payslip", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=payslip.pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		slog.Warn("payslip write failed", "recordId", recordID, "err", err)
	}
}

// handlePreviewDeductions exposes the statutory formula for a given pay
// figure without touching storage.
func (h *Handler) handlePreviewDeductions(w http.ResponseWriter, r *http.Request) {
	basicPay, err := strconv.ParseFloat(r.URL.Query().Get("basicPay"), 64)
	if err != nil || basicPay < 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_request", "invalid basic pay", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, payroll.ComputeDeductions(basicPay), middleware.GetRequestID(r.Context()))
}

// handlePreviewBonus reports the tier base and draw bounds for a
// position. The actual draw only happens inside a run.
func (h *Handler) handlePreviewBonus(w http.ResponseWriter, r *http.Request) {
	position := r.URL.Query().Get("position")
	if position == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_request", "position is required", middleware.GetRequestID(r.Context()))
		return
	}
	base, min, max := payroll.BonusRange(position)
	api.Success(w, map[string]any{
		"position": position,
		"base":     base,
		"min":      min,
		"max":      max,
	}, middleware.GetRequestID(r.Context()))
}
