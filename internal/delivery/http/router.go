package http

import (
	"net/http"

	"clinic-scheduling-api/internal/delivery/http/handler"
	"clinic-scheduling-api/internal/delivery/http/middleware"
	"clinic-scheduling-api/internal/domain/entity"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router                    *mux.Router
	log                       *logrus.Logger
	gatherer                  prometheus.Gatherer
	authHandler               *handler.AuthHandler
	tenantHandler             *handler.TenantHandler
	userHandler               *handler.UserHandler
	specialistScheduleHandler *handler.SpecialistScheduleHandler
	availabilityHandler       *handler.AvailabilityHandler
	appointmentHandler        *handler.AppointmentHandler
	auditLogHandler           *handler.AuditLogHandler
	authMiddleware            *middleware.AuthMiddleware
}

func NewRouter(
	log *logrus.Logger,
	gatherer prometheus.Gatherer,
	authHandler *handler.AuthHandler,
	tenantHandler *handler.TenantHandler,
	userHandler *handler.UserHandler,
	specialistScheduleHandler *handler.SpecialistScheduleHandler,
	availabilityHandler *handler.AvailabilityHandler,
	appointmentHandler *handler.AppointmentHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		router:                    mux.NewRouter(),
		log:                       log,
		gatherer:                  gatherer,
		authHandler:               authHandler,
		tenantHandler:             tenantHandler,
		userHandler:               userHandler,
		specialistScheduleHandler: specialistScheduleHandler,
		availabilityHandler:       availabilityHandler,
		appointmentHandler:        appointmentHandler,
		auditLogHandler:           auditLogHandler,
		authMiddleware:            authMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.Use(middleware.RequestLogger(r.log))

	if r.gatherer != nil {
		r.router.Handle("/metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Everything below needs a valid access token
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/auth/logout", r.authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Tenants (Super Admin)
	tenants := protected.PathPrefix("/tenants").Subrouter()
	tenants.Handle("", middleware.RequireSuperAdmin(http.HandlerFunc(r.tenantHandler.CreateTenant))).Methods(http.MethodPost)
	tenants.Handle("", middleware.RequireSuperAdmin(http.HandlerFunc(r.tenantHandler.GetAllTenants))).Methods(http.MethodGet)

	// Tenant-scoped routes
	tenant := protected.PathPrefix("/tenants/{tenantId:[0-9]+}").Subrouter()
	tenant.Use(middleware.RequireTenantAccess)

	tenant.Handle("", middleware.RequireSuperAdmin(http.HandlerFunc(r.tenantHandler.GetTenant))).Methods(http.MethodGet)
	tenant.Handle("", middleware.RequireSuperAdmin(http.HandlerFunc(r.tenantHandler.UpdateTenant))).Methods(http.MethodPut)
	tenant.Handle("", middleware.RequireSuperAdmin(http.HandlerFunc(r.tenantHandler.DeleteTenant))).Methods(http.MethodDelete)

	tenant.Handle("/users", middleware.RequireAdmin(http.HandlerFunc(r.userHandler.CreateUser))).Methods(http.MethodPost)
	tenant.Handle("/users", middleware.RequireAdmin(http.HandlerFunc(r.userHandler.GetUsersByTenant))).Methods(http.MethodGet)
	tenant.Handle("/pacientes", middleware.RequireRole(entity.RoleSuperAdmin, entity.RoleAdministrator, entity.RoleSpecialist)(http.HandlerFunc(r.userHandler.RegisterPatient))).Methods(http.MethodPost)

	tenant.HandleFunc("/specialists/{specialistId:[0-9]+}/schedule", r.specialistScheduleHandler.GetSchedule).Methods(http.MethodGet)
	tenant.Handle("/specialists/{specialistId:[0-9]+}/schedule", middleware.RequireAdmin(http.HandlerFunc(r.specialistScheduleHandler.ReplaceSchedule))).Methods(http.MethodPut)
	tenant.Handle("/specialists/{specialistId:[0-9]+}/breaks", middleware.RequireAdmin(http.HandlerFunc(r.specialistScheduleHandler.ReplaceBreaks))).Methods(http.MethodPut)

	tenant.HandleFunc("/specialists/{specialistId:[0-9]+}/available-slots", r.availabilityHandler.GetTenantAvailableSlots).Methods(http.MethodGet)
	tenant.HandleFunc("/specialists/{specialistId:[0-9]+}/availability", r.availabilityHandler.CheckTenantAvailability).Methods(http.MethodGet)

	tenant.Handle("/appointments", middleware.RequirePatient(http.HandlerFunc(r.appointmentHandler.CreateAppointment))).Methods(http.MethodPost)

	// Specialist self-service
	specialist := protected.PathPrefix("/specialists").Subrouter()
	specialist.Handle("/my-schedule", middleware.RequireSpecialist(http.HandlerFunc(r.specialistScheduleHandler.GetMySchedule))).Methods(http.MethodGet)
	specialist.Handle("/my-schedule", middleware.RequireSpecialist(http.HandlerFunc(r.specialistScheduleHandler.ReplaceMySchedule))).Methods(http.MethodPut)
	specialist.Handle("/my-breaks", middleware.RequireSpecialist(http.HandlerFunc(r.specialistScheduleHandler.ReplaceMyBreaks))).Methods(http.MethodPut)

	// Availability in the caller's own tenant
	specialist.HandleFunc("/{specialistId:[0-9]+}/available-slots", r.availabilityHandler.GetAvailableSlots).Methods(http.MethodGet)
	specialist.HandleFunc("/{specialistId:[0-9]+}/availability", r.availabilityHandler.CheckAvailability).Methods(http.MethodGet)

	// Appointments
	appointments := protected.PathPrefix("/appointments").Subrouter()
	appointments.Handle("", middleware.RequireRole(entity.RolePatient, entity.RoleSpecialist)(http.HandlerFunc(r.appointmentHandler.GetMyAppointments))).Methods(http.MethodGet)
	appointments.Handle("/{id:[0-9]+}/notes", middleware.RequireSpecialist(http.HandlerFunc(r.appointmentHandler.UpdateNotes))).Methods(http.MethodPut)
	appointments.HandleFunc("/{id:[0-9]+}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPatch)

	// Audit logs
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.ListAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id:[0-9]+}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
