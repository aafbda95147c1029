package payroll

import (
	"context"
	"time"
)

type StoreAPI interface {
	ExistsForPeriod(ctx context.Context, periodStart, periodEnd time.Time) (bool, error)
	ExistsForMonth(ctx context.Context, year int, month time.Month) (bool, error)
	CreateRecord(ctx context.Context, record PayrollRecord) (int64, error)
	ListRecordsForPeriod(ctx context.Context, periodStart, periodEnd time.Time) ([]PayrollRecord, error)
	ListRecordsForEmployee(ctx context.Context, employeeID int64, limit, offset int) ([]PayrollRecord, error)
	ListUnpaidLeaveWindows(ctx context.Context, employeeID int64, periodStart, periodEnd time.Time, typeNames []string) ([]LeaveWindow, error)
	PayslipData(ctx context.Context, recordID int64) (PayslipData, error)
}
