package auth

const (
	RoleAdmin    = "admin"
	RoleHR       = "hr_officer"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// ApproverRoles is the set allowed to decide leave requests.
var ApproverRoles = []string{RoleAdmin, RoleHR}

// PayrollRoles is the set allowed to generate payroll runs.
var PayrollRoles = []string{RoleAdmin, RoleHR}

func RoleIn(role string, set []string) bool {
	for _, candidate := range set {
		if candidate == role {
			return true
		}
	}
	return false
}
