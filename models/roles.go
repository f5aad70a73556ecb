package models

// Role is the closed set of account roles. Route access is declared
// against these values at registration time.
type Role string

const (
	RoleStudent      Role = "student"
	RoleCollegeAdmin Role = "college_admin"
	RoleSuperAdmin   Role = "super_admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleCollegeAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// SignupRoles lists the roles an account may self-select at signup.
// super_admin accounts are only created by promotion.
func SignupRoles() []Role {
	return []Role{RoleStudent, RoleCollegeAdmin}
}
