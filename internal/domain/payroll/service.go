package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5"

	"hris/internal/domain/employee"
)

type Service struct {
	Store     StoreAPI
	Employees employee.StoreAPI
	rng       *rand.Rand
}

// NewService wires the payroll core. The random source drives bonus
// variation and is injected so runs can be reproduced under test.
func NewService(store StoreAPI, employees employee.StoreAPI, rng *rand.Rand) *Service {
	return &Service{Store: store, Employees: employees, rng: rng}
}

// GenerateRun produces one payroll record per payable employee for the
// period. The run is duplicate-guarded twice: an identical period and
// any prior run in the same calendar month both refuse with
// ErrDuplicateRun. Per-employee failures are counted and logged but do
// not abort the run, so a partial run leaves its successful records in
// place.
func (s *Service) GenerateRun(ctx context.Context, periodStart, periodEnd time.Time, now time.Time) (RunSummary, error) {
	if periodEnd.Before(periodStart) {
		return RunSummary{}, ErrInvalidPeriod
	}

	exists, err := s.Store.ExistsForPeriod(ctx, periodStart, periodEnd)
	if err != nil {
		return RunSummary{}, fmt.Errorf("checking period duplicate: %w", err)
	}
	if exists {
		return RunSummary{}, ErrDuplicateRun
	}

	exists, err = s.Store.ExistsForMonth(ctx, periodStart.Year(), periodStart.Month())
	if err != nil {
		return RunSummary{}, fmt.Errorf("checking month duplicate: %w", err)
	}
	if exists {
		return RunSummary{}, ErrDuplicateRun
	}

	payable, err := s.Employees.ListByStatus(ctx, []string{employee.StatusActive, employee.StatusOnLeave})
	if err != nil {
		return RunSummary{}, fmt.Errorf("listing payable employees: %w", err)
	}

	var summary RunSummary
	for _, emp := range payable {
		if err := s.generateRecord(ctx, emp, periodStart, periodEnd, now); err != nil {
			slog.Warn("payroll record failed", "employee_id", emp.ID, "error", err)
			summary.Failed++
			continue
		}
		summary.Succeeded++
	}
	return summary, nil
}

func (s *Service) generateRecord(ctx context.Context, emp employee.Employee, periodStart, periodEnd, now time.Time) error {
	if emp.ID <= 0 {
		return fmt.Errorf("invalid employee id %d", emp.ID)
	}
	if emp.BasicSalary <= 0 {
		return fmt.Errorf("non-positive basic salary for employee %d", emp.ID)
	}

	basicPay, err := s.ProratedPay(ctx, emp, periodStart, periodEnd)
	if err != nil {
		return err
	}

	deductions := ComputeDeductions(basicPay)
	bonus := ComputeBonus(emp.Position, s.rng)

	record := PayrollRecord{
		EmployeeID:    emp.ID,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		BasicSalary:   basicPay,
		Bonuses:       bonus,
		Deductions:    deductions.Total,
		NetPay:        basicPay + bonus - deductions.Total,
		GeneratedDate: now,
	}
	if _, err := s.Store.CreateRecord(ctx, record); err != nil {
		return fmt.Errorf("persisting record: %w", err)
	}
	return nil
}

// ProratedPay resolves the unpaid-leave windows for the employee and
// delegates to the proration formula. Only employees on leave trigger
// the lookup.
func (s *Service) ProratedPay(ctx context.Context, emp employee.Employee, periodStart, periodEnd time.Time) (float64, error) {
	var unpaid []LeaveWindow
	if emp.Status == employee.StatusOnLeave {
		var err error
		unpaid, err = s.Store.ListUnpaidLeaveWindows(ctx, emp.ID, periodStart, periodEnd, UnpaidLeaveTypeNames)
		if err != nil {
			return 0, fmt.Errorf("listing unpaid leave: %w", err)
		}
	}
	return ProratedBasicPay(emp, periodStart, periodEnd, unpaid)
}

func (s *Service) RecordsForPeriod(ctx context.Context, periodStart, periodEnd time.Time) ([]PayrollRecord, error) {
	return s.Store.ListRecordsForPeriod(ctx, periodStart, periodEnd)
}

func (s *Service) RecordsForEmployee(ctx context.Context, employeeID int64, limit, offset int) ([]PayrollRecord, error) {
	return s.Store.ListRecordsForEmployee(ctx, employeeID, limit, offset)
}

// Payslip renders the PDF payslip for a record.
func (s *Service) Payslip(ctx context.Context, recordID int64) ([]byte, error) {
	data, err := s.Store.PayslipData(ctx, recordID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return RenderPayslipPDF(data)
}
