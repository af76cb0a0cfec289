package constants

const (
	RoleStudent   = "student"
	RoleFaculty   = "faculty"
	RoleHOD       = "hod"
	RolePrincipal = "principal"
	RoleAdmin     = "admin"
)

// AdministrativeRoles may operate on any class inside their own
// department; department mismatch still denies.
var AdministrativeRoles = []string{RoleHOD, RolePrincipal, RoleAdmin}

func IsAdministrative(role string) bool {
	for _, r := range AdministrativeRoles {
		if r == role {
			return true
		}
	}
	return false
}

const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)
