package payroll

import "errors"

var (
	ErrDuplicateRun   = errors.New("a payroll run already exists for this period or month")
	ErrInvalidPeriod  = errors.New("period end before period start")
	ErrRecordNotFound = errors.New("payroll record not found")
)
