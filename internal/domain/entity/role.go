package entity

// Role names as stored in users.role and carried in JWT claims.
const (
	RoleSuperAdmin    = "Super Admin"
	RoleAdministrator = "Administrador"
	RoleSpecialist    = "Especialista"
	RolePatient       = "Paciente"
)

// IsValidTenantRole reports whether role can be assigned to a tenant user.
func IsValidTenantRole(role string) bool {
	switch role {
	case RoleAdministrator, RoleSpecialist, RolePatient:
		return true
	}
	return false
}
