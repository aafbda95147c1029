package payroll

// Leave types that reduce payable working days. An explicit closed set:
// paid categories (Annual, Sick, Maternity, Paternity) stay fully
// compensated during a pay period.
var UnpaidLeaveTypeNames = []string{"Personal Leave", "Emergency Leave"}

// Statutory deduction rates and monthly caps.
const (
	sssRate       = 0.045
	sssCap        = 1125
	philHealthRate = 0.0275
	philHealthCap  = 1750
	pagIBIGRate   = 0.02
	pagIBIGCap    = 100
	taxExemption  = 25000
	taxRate       = 0.15
)

// Base bonus tiers keyed by position keywords, checked in order.
const (
	bonusExecutive  = 5000
	bonusSupervisor = 3000
	bonusSenior     = 2000
	bonusJunior     = 1000
	bonusDefault    = 500
)

// Bonus variation is drawn uniformly from [-bonusSpread, +bonusSpread].
const bonusSpread = 0.30
