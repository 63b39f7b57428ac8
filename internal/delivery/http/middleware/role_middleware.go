package middleware

import (
	"net/http"
	"strconv"

	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/pkg/response"

	"github.com/gorilla/mux"
)

// RequireRole creates a middleware that checks if the user has any of the required roles
// Role is read from context (set by AuthMiddleware from JWT claims)
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, ok := GetSubjectFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed := false
			for _, role := range allowedRoles {
				if subject.Role == role {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireTenantAccess rejects requests whose {tenantId} path variable differs
// from the caller's tenant. Super Admins may address any tenant.
func RequireTenantAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, ok := GetSubjectFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "")
			return
		}

		tenantID, err := strconv.ParseUint(mux.Vars(r)["tenantId"], 10, 64)
		if err != nil {
			response.BadRequest(w, "Invalid tenant ID")
			return
		}

		if subject.Role != entity.RoleSuperAdmin {
			if subject.TenantID == nil || uint64(*subject.TenantID) != tenantID {
				response.Forbidden(w, "You don't have access to this tenant")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// RequireSuperAdmin is a convenience middleware for platform-wide endpoints
func RequireSuperAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleSuperAdmin)(next)
}

// RequireAdmin allows tenant administrators and Super Admins
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleSuperAdmin, entity.RoleAdministrator)(next)
}

// RequireSpecialist is a convenience middleware for specialist-only endpoints
func RequireSpecialist(next http.Handler) http.Handler {
	return RequireRole(entity.RoleSpecialist)(next)
}

// RequirePatient is a convenience middleware for patient-only endpoints
func RequirePatient(next http.Handler) http.Handler {
	return RequireRole(entity.RolePatient)(next)
}
