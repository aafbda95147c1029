package payroll

import "time"

// PayrollRecord is written once per employee per run and never mutated;
// correcting a run means deleting and regenerating outside this core.
// BasicSalary holds the computed prorated figure, not the nominal one.
type PayrollRecord struct {
	ID            int64     `json:"id"`
	EmployeeID    int64     `json:"employeeId"`
	PeriodStart   time.Time `json:"periodStart"`
	PeriodEnd     time.Time `json:"periodEnd"`
	BasicSalary   float64   `json:"basicSalary"`
	Bonuses       float64   `json:"bonuses"`
	Deductions    float64   `json:"deductions"`
	NetPay        float64   `json:"netPay"`
	GeneratedDate time.Time `json:"generatedDate"`
}

// LeaveWindow is an approved unpaid-leave span fully contained in the
// pay period.
type LeaveWindow struct {
	StartDate time.Time
	EndDate   time.Time
}

type DeductionBreakdown struct {
	SSS        float64 `json:"sss"`
	PhilHealth float64 `json:"philHealth"`
	PagIBIG    float64 `json:"pagIbig"`
	IncomeTax  float64 `json:"incomeTax"`
	Total      float64 `json:"total"`
}

// RunSummary reports a payroll run. The run is not transactional:
// failures after the first persisted record leave earlier records in
// place.
type RunSummary struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// PayslipData joins a record with employee identity for PDF rendering.
type PayslipData struct {
	Record    PayrollRecord
	FirstName string
	LastName  string
	Position  string
}
