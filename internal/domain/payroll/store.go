package payroll

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"hris/internal/domain/leave"
	"hris/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) ExistsForPeriod(ctx context.Context, periodStart, periodEnd time.Time) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM payroll_records WHERE period_start = $1 AND period_end = $2
  `, periodStart, periodEnd).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) ExistsForMonth(ctx context.Context, year int, month time.Month) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM payroll_records
    WHERE EXTRACT(YEAR FROM period_start) = $1 AND EXTRACT(MONTH FROM period_start) = $2
  `, year, int(month)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CreateRecord(ctx context.Context, record PayrollRecord) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO payroll_records (employee_id, period_start, period_end, basic_salary, bonuses, deductions, net_pay, generated_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, record.EmployeeID, record.PeriodStart, record.PeriodEnd, record.BasicSalary, record.Bonuses, record.Deductions, record.NetPay, record.GeneratedDate).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) ListRecordsForPeriod(ctx context.Context, periodStart, periodEnd time.Time) ([]PayrollRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, period_start, period_end, basic_salary, bonuses, deductions, net_pay, generated_date
    FROM payroll_records
    WHERE period_start = $1 AND period_end = $2
    ORDER BY employee_id
  `, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *Store) ListRecordsForEmployee(ctx context.Context, employeeID int64, limit, offset int) ([]PayrollRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, period_start, period_end, basic_salary, bonuses, deductions, net_pay, generated_date
    FROM payroll_records
    WHERE employee_id = $1
    ORDER BY period_start DESC
    LIMIT $2 OFFSET $3
  `, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListUnpaidLeaveWindows returns approved spans of the named leave
// types fully contained in the period. Partially overlapping spans are
// excluded on purpose.
func (s *Store) ListUnpaidLeaveWindows(ctx context.Context, employeeID int64, periodStart, periodEnd time.Time, typeNames []string) ([]LeaveWindow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT r.start_date, r.end_date
    FROM leave_requests r
    JOIN leave_types t ON r.leave_type_id = t.id
    WHERE r.employee_id = $1 AND r.status = $2
      AND t.name = ANY($3)
      AND r.start_date >= $4 AND r.end_date <= $5
    ORDER BY r.start_date
  `, employeeID, leave.StatusApproved, typeNames, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var windows []LeaveWindow
	for rows.Next() {
		var w LeaveWindow
		if err := rows.Scan(&w.StartDate, &w.EndDate); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

func (s *Store) PayslipData(ctx context.Context, recordID int64) (PayslipData, error) {
	var data PayslipData
	err := s.DB.QueryRow(ctx, `
    SELECT p.id, p.employee_id, p.period_start, p.period_end, p.basic_salary, p.bonuses, p.deductions, p.net_pay, p.generated_date,
           e.first_name, e.last_name, e.position
    FROM payroll_records p
    JOIN employees e ON p.employee_id = e.id
    WHERE p.id = $1
  `, recordID).Scan(
		&data.Record.ID, &data.Record.EmployeeID, &data.Record.PeriodStart, &data.Record.PeriodEnd,
		&data.Record.BasicSalary, &data.Record.Bonuses, &data.Record.Deductions, &data.Record.NetPay,
		&data.Record.GeneratedDate, &data.FirstName, &data.LastName, &data.Position)
	if err != nil {
		return PayslipData{}, err
	}
	return data, nil
}

func scanRecords(rows pgx.Rows) ([]PayrollRecord, error) {
	var records []PayrollRecord
	for rows.Next() {
		var r PayrollRecord
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.PeriodStart, &r.PeriodEnd, &r.BasicSalary, &r.Bonuses, &r.Deductions, &r.NetPay, &r.GeneratedDate); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
