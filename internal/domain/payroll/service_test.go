package payroll

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"hris/internal/domain/employee"
)

type fakePayrollStore struct {
	records      []PayrollRecord
	monthRuns    map[string]bool
	createErrFor map[int64]error
	nextID       int64
}

func newFakePayrollStore() *fakePayrollStore {
	return &fakePayrollStore{monthRuns: map[string]bool{}, createErrFor: map[int64]error{}}
}

func (f *fakePayrollStore) ExistsForPeriod(_ context.Context, periodStart, periodEnd time.Time) (bool, error) {
	for _, r := range f.records {
		if r.PeriodStart.Equal(periodStart) && r.PeriodEnd.Equal(periodEnd) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePayrollStore) ExistsForMonth(_ context.Context, year int, month time.Month) (bool, error) {
	if f.monthRuns[monthKey(year, month)] {
		return true, nil
	}
	for _, r := range f.records {
		if r.PeriodStart.Year() == year && r.PeriodStart.Month() == month {
			return true, nil
		}
	}
	return false, nil
}

func monthKey(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

func (f *fakePayrollStore) CreateRecord(_ context.Context, record PayrollRecord) (int64, error) {
	if err := f.createErrFor[record.EmployeeID]; err != nil {
		return 0, err
	}
	f.nextID++
	record.ID = f.nextID
	f.records = append(f.records, record)
	return record.ID, nil
}

func (f *fakePayrollStore) ListRecordsForPeriod(_ context.Context, periodStart, periodEnd time.Time) ([]PayrollRecord, error) {
	var out []PayrollRecord
	for _, r := range f.records {
		if r.PeriodStart.Equal(periodStart) && r.PeriodEnd.Equal(periodEnd) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePayrollStore) ListRecordsForEmployee(_ context.Context, employeeID int64, _, _ int) ([]PayrollRecord, error) {
	var out []PayrollRecord
	for _, r := range f.records {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePayrollStore) ListUnpaidLeaveWindows(_ context.Context, _ int64, _, _ time.Time, _ []string) ([]LeaveWindow, error) {
	return nil, nil
}

func (f *fakePayrollStore) PayslipData(_ context.Context, _ int64) (PayslipData, error) {
	return PayslipData{}, errors.New("not implemented")
}

type fakeEmployeeStore struct {
	employees []employee.Employee
}

func (f *fakeEmployeeStore) GetEmployee(_ context.Context, id int64) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, errors.New("employee not found")
}

func (f *fakeEmployeeStore) ListByStatus(_ context.Context, statuses []string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		for _, s := range statuses {
			if e.Status == s {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

func newPayrollService(employees []employee.Employee) (*Service, *fakePayrollStore) {
	store := newFakePayrollStore()
	svc := NewService(store, &fakeEmployeeStore{employees: employees}, rand.New(rand.NewSource(1)))
	return svc, store
}

func juneRun() (time.Time, time.Time, time.Time) {
	return day(2025, time.June, 1), day(2025, time.June, 30), day(2025, time.July, 1)
}

func TestGenerateRun_CreatesRecordsForPayableEmployees(t *testing.T) {
	svc, store := newPayrollService([]employee.Employee{
		{ID: 1, Position: "Clerk", Status: employee.StatusActive, BasicSalary: 30000},
		{ID: 2, Position: "Senior Analyst", Status: employee.StatusOnLeave, BasicSalary: 50000},
		{ID: 3, Position: "Clerk", Status: employee.StatusTerminated, BasicSalary: 30000},
	})
	start, end, now := juneRun()

	summary, err := svc.GenerateRun(context.Background(), start, end, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Succeeded != 2 || summary.Failed != 0 {
		t.Fatalf("expected 2 succeeded 0 failed, got %+v", summary)
	}
	if len(store.records) != 2 {
		t.Fatalf("expected 2 persisted records, got %d", len(store.records))
	}

	for _, r := range store.records {
		deductions := ComputeDeductions(r.BasicSalary)
		if r.Deductions != deductions.Total {
			t.Fatalf("employee %d: deductions %v do not match recomputation %v", r.EmployeeID, r.Deductions, deductions.Total)
		}
		if r.NetPay != r.BasicSalary+r.Bonuses-r.Deductions {
			t.Fatalf("employee %d: net pay %v is not basic+bonus-deductions", r.EmployeeID, r.NetPay)
		}
		if !r.GeneratedDate.Equal(now) {
			t.Fatalf("employee %d: generated date not stamped", r.EmployeeID)
		}
	}
}

func TestGenerateRun_RefusesExactPeriodDuplicate(t *testing.T) {
	svc, _ := newPayrollService([]employee.Employee{
		{ID: 1, Position: "Clerk", Status: employee.StatusActive, BasicSalary: 30000},
	})
	start, end, now := juneRun()

	if _, err := svc.GenerateRun(context.Background(), start, end, now); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if _, err := svc.GenerateRun(context.Background(), start, end, now); !errors.Is(err, ErrDuplicateRun) {
		t.Fatalf("expected ErrDuplicateRun, got %v", err)
	}
}

func TestGenerateRun_RefusesSameMonthDifferentPeriod(t *testing.T) {
	svc, _ := newPayrollService([]employee.Employee{
		{ID: 1, Position: "Clerk", Status: employee.StatusActive, BasicSalary: 30000},
	})

	if _, err := svc.GenerateRun(context.Background(), day(2025, time.June, 1), day(2025, time.June, 15), day(2025, time.June, 16)); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	_, err := svc.GenerateRun(context.Background(), day(2025, time.June, 16), day(2025, time.June, 30), day(2025, time.July, 1))
	if !errors.Is(err, ErrDuplicateRun) {
		t.Fatalf("expected ErrDuplicateRun for same month, got %v", err)
	}
}

func TestGenerateRun_InvalidPeriod(t *testing.T) {
	svc, _ := newPayrollService(nil)
	_, err := svc.GenerateRun(context.Background(), day(2025, time.June, 30), day(2025, time.June, 1), day(2025, time.July, 1))
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestGenerateRun_CountsInvalidEmployeesAsFailures(t *testing.T) {
	svc, store := newPayrollService([]employee.Employee{
		{ID: 0, Position: "Clerk", Status: employee.StatusActive, BasicSalary: 30000},
		{ID: 2, Position: "Clerk", Status: employee.StatusActive, BasicSalary: 0},
		{ID: 3, Position: "Clerk", Status: employee.StatusActive, BasicSalary: 30000},
	})
	start, end, now := juneRun()

	summary, err := svc.GenerateRun(context.Background(), start, end, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Succeeded != 1 || summary.Failed != 2 {
		t.Fatalf("expected 1 succeeded 2 failed, got %+v", summary)
	}
	if len(store.records) != 1 || store.records[0].EmployeeID != 3 {
		t.Fatalf("expected only employee 3 persisted, got %+v", store.records)
	}
}

func TestGenerateRun_PersistFailureDoesNotAbortRun(t *testing.T) {
	svc, store := newPayrollService([]employee.Employee{
		{ID: 1, Position: "Clerk", Status: employee.StatusActive, BasicSalary: 30000},
		{ID: 2, Position: "Clerk", Status: employee.StatusActive, BasicSalary: 30000},
		{ID: 3, Position: "Clerk", Status: employee.StatusActive, BasicSalary: 30000},
	})
	store.createErrFor[2] = errors.New("connection reset")
	start, end, now := juneRun()

	summary, err := svc.GenerateRun(context.Background(), start, end, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Succeeded != 2 || summary.Failed != 1 {
		t.Fatalf("expected 2 succeeded 1 failed, got %+v", summary)
	}
	// Records written before the failure stay in place.
	if len(store.records) != 2 {
		t.Fatalf("expected 2 persisted records, got %d", len(store.records))
	}
}
