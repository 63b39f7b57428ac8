package handler

import (
	"errors"
	"net/http"
	"strconv"

	"clinic-scheduling-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

var errNoTenant = errors.New("no tenant in token")

// pathID reads a positive numeric path variable.
func pathID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return uint(id), nil
}

// tenantFromToken returns the caller's tenant. Super Admins have none.
func tenantFromToken(r *http.Request) (uint, error) {
	subject, ok := middleware.GetSubjectFromContext(r.Context())
	if !ok || subject.TenantID == nil {
		return 0, errNoTenant
	}
	return *subject.TenantID, nil
}
