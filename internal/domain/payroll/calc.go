package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"hris/internal/domain/employee"
	"hris/internal/domain/leave"
)

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// ProratedBasicPay computes an employee's base pay for a period.
// Active employees draw the nominal salary untouched regardless of
// period length. Employees on leave lose the daily rate for each
// unpaid-leave day fully contained in the period; paid leave categories
// do not reduce working days. Any other status pays zero.
func ProratedBasicPay(emp employee.Employee, periodStart, periodEnd time.Time, unpaid []LeaveWindow) (float64, error) {
	switch emp.Status {
	case employee.StatusActive:
		return emp.BasicSalary, nil
	case employee.StatusOnLeave:
		totalDays, err := leave.DaySpan(periodStart, periodEnd)
		if err != nil {
			return 0, err
		}

		unpaidDays := 0
		for _, window := range unpaid {
			span, err := leave.DaySpan(window.StartDate, window.EndDate)
			if err != nil {
				continue
			}
			unpaidDays += span
		}

		workingDays := totalDays - unpaidDays
		if workingDays < 0 {
			workingDays = 0
		}

		dailyRate := decimal.NewFromFloat(emp.BasicSalary).Div(decimal.NewFromInt(int64(totalDays)))
		return round2(dailyRate.Mul(decimal.NewFromInt(int64(workingDays)))), nil
	default:
		return 0, nil
	}
}
