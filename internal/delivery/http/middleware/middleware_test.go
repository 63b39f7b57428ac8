package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-scheduling-api/config"
	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/pkg/jwt"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func newTestAuth(t *testing.T) (*AuthMiddleware, *jwt.JWTService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test", AccessExpiry: time.Minute, RefreshExpiry: time.Hour})
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	return NewAuthMiddleware(jwtService, client, log), jwtService, mr
}

func subjectEcho(t *testing.T, got *jwt.Subject) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := GetSubjectFromContext(r.Context())
		require.True(t, ok)
		*got = s
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthenticate_AllowsListedToken(t *testing.T) {
	auth, jwtService, mr := newTestAuth(t)
	subject := jwt.Subject{UserID: 5, Username: "ana", Role: entity.RolePatient, TenantID: uintPtr(2)}

	token, tokenID, err := jwtService.GenerateAccessToken(subject)
	require.NoError(t, err)
	require.NoError(t, mr.Set(jwt.AccessTokenKey(5, tokenID), "valid"))

	var got jwt.Subject
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	auth.Authenticate(subjectEcho(t, &got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, subject, got)
}

func TestAuthenticate_Rejects(t *testing.T) {
	auth, jwtService, _ := newTestAuth(t)
	subject := jwt.Subject{UserID: 5, Role: entity.RolePatient}

	revoked, _, err := jwtService.GenerateAccessToken(subject)
	require.NoError(t, err)
	refresh, _, err := jwtService.GenerateRefreshToken(subject)
	require.NoError(t, err)

	tests := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic abc",
		"garbage token":  "Bearer nope",
		"refresh token":  "Bearer " + refresh,
		"revoked token":  "Bearer " + revoked,
	}

	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			auth.Authenticate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Fatal("next handler must not run")
			})).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	guard := RequireRole(entity.RoleAdministrator, entity.RoleSuperAdmin)(ok)

	serve := func(ctx context.Context) int {
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, serve(context.Background()))
	assert.Equal(t, http.StatusForbidden, serve(WithSubject(context.Background(), jwt.Subject{Role: entity.RolePatient})))
	assert.Equal(t, http.StatusOK, serve(WithSubject(context.Background(), jwt.Subject{Role: entity.RoleAdministrator})))
}

func TestRequireTenantAccess(t *testing.T) {
	router := mux.NewRouter()
	router.Handle("/tenants/{tenantId}/x", RequireTenantAccess(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	serve := func(path string, subject jwt.Subject) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req = req.WithContext(WithSubject(req.Context(), subject))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	own := jwt.Subject{Role: entity.RoleAdministrator, TenantID: uintPtr(3)}
	assert.Equal(t, http.StatusOK, serve("/tenants/3/x", own))
	assert.Equal(t, http.StatusForbidden, serve("/tenants/4/x", own))
	assert.Equal(t, http.StatusBadRequest, serve("/tenants/abc/x", own))
	assert.Equal(t, http.StatusOK, serve("/tenants/4/x", jwt.Subject{Role: entity.RoleSuperAdmin}))
	assert.Equal(t, http.StatusForbidden, serve("/tenants/4/x", jwt.Subject{Role: entity.RolePatient}))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	h := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"path":"/api/v1/health"`)
}
