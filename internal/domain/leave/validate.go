package leave

import (
	"fmt"
	"strings"
	"time"
)

const (
	maternityMinimumDays = 60
	advanceNoticeDays    = 3
)

// Validate runs every applicable business rule over a proposed request
// and returns the full ordered list of violations. It does not stop at
// the first failure; only the missing-selection preconditions
// short-circuit, since nothing else can be checked without them.
//
// existing must be the employee's own requests, any status. remaining
// is the balance for the leave type in the calendar year of StartDate.
func Validate(proposed ProposedRequest, leaveType LeaveType, existing []LeaveRequest, remaining int, today time.Time) []string {
	var violations []string

	if proposed.EmployeeID <= 0 {
		violations = append(violations, "an employee must be selected")
	}
	if proposed.LeaveTypeID <= 0 {
		violations = append(violations, "a leave type must be selected")
	}
	if len(violations) > 0 {
		return violations
	}

	span, spanErr := DaySpan(proposed.StartDate, proposed.EndDate)
	if spanErr != nil {
		violations = append(violations, "start date must be on or before end date")
	}

	if DateOnly(proposed.StartDate).Before(DateOnly(today)) {
		violations = append(violations, "start date cannot be in the past")
	}

	// Duration rules only apply to a well-formed range.
	if spanErr == nil {
		if span > leaveType.MaxDays {
			violations = append(violations, fmt.Sprintf("requested %d days exceeds the %d-day annual cap for %s", span, leaveType.MaxDays, leaveType.Name))
		}
		if span > remaining {
			violations = append(violations, fmt.Sprintf("requested %d days exceeds the remaining balance of %d days", span, remaining))
		}

		typeName := strings.ToLower(leaveType.Name)
		if strings.Contains(typeName, "maternity") && span < maternityMinimumDays {
			violations = append(violations, fmt.Sprintf("maternity leave requires a minimum of %d days", maternityMinimumDays))
		}
		if strings.Contains(typeName, "annual") || strings.Contains(typeName, "vacation") {
			if DaysUntil(today, proposed.StartDate) < advanceNoticeDays {
				violations = append(violations, fmt.Sprintf("%s requires at least %d days advance notice", leaveType.Name, advanceNoticeDays))
			}
		}
	}

	for _, req := range existing {
		if req.LeaveTypeID == proposed.LeaveTypeID &&
			SameDate(req.StartDate, proposed.StartDate) &&
			SameDate(req.EndDate, proposed.EndDate) &&
			SameDate(req.RequestDate, today) {
			violations = append(violations, "an identical request was already submitted today")
			break
		}
	}

	for _, req := range existing {
		if req.Status == StatusRejected {
			continue
		}
		if Overlaps(proposed.StartDate, proposed.EndDate, req.StartDate, req.EndDate) {
			violations = append(violations, fmt.Sprintf("dates overlap an existing leave request from %s to %s",
				req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02")))
			break
		}
	}

	// Cross-type overlaps get their own, more specific message.
	for _, req := range existing {
		if req.Status == StatusRejected || req.LeaveTypeID == proposed.LeaveTypeID {
			continue
		}
		if Overlaps(proposed.StartDate, proposed.EndDate, req.StartDate, req.EndDate) {
			violations = append(violations, fmt.Sprintf("dates conflict with leave of a different type already requested from %s to %s",
				req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02")))
			break
		}
	}

	return violations
}
