package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"clinic-scheduling-api/config"
	deliveryHttp "clinic-scheduling-api/internal/delivery/http"
	"clinic-scheduling-api/internal/delivery/http/handler"
	"clinic-scheduling-api/internal/delivery/http/middleware"
	"clinic-scheduling-api/internal/infrastructure/cache"
	"clinic-scheduling-api/internal/infrastructure/database"
	"clinic-scheduling-api/internal/infrastructure/metrics"
	"clinic-scheduling-api/internal/repository"
	"clinic-scheduling-api/internal/service"
	"clinic-scheduling-api/internal/usecase"
	"clinic-scheduling-api/pkg/jwt"
	"clinic-scheduling-api/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New loads configuration from envFile, falling back to process environment
// variables, and connects every dependency.
func New(ctx context.Context, envFile string) (*App, error) {
	app := &App{}

	cfg, err := config.LoadConfigFrom(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	log := setupLogger(cfg.App.LogLevel)
	app.Log = log
	log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	app.Server = initializeServer(cfg, log, db, redisClient)

	return app, nil
}

// setupLogger configures a JSON logrus logger at the configured level
func setupLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
		log.Warnf("Unknown LOG_LEVEL %q, using info", level)
	}
	log.SetLevel(parsed)
	return log
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client) *http.Server {
	location := cfg.DB.Location()

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	availabilityMetrics := metrics.NewAvailabilityMetrics(registry)

	// Initialize repositories
	tenantRepo := repository.NewTenantRepository()
	userRepo := repository.NewUserRepository()
	scheduleRepo := repository.NewSpecialistScheduleRepository()
	breakRepo := repository.NewSpecialistBreakRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	slotCache := service.NewSlotCache(redisClient, log, cfg.Availability.CacheTTL)
	sources := service.NewRepositorySources(db, scheduleRepo, breakRepo, appointmentRepo)
	availabilityEngine := service.NewAvailabilityEngine(log, sources, sources, sources)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, auditService, jwtService, redisClient)
	tenantUsecase := usecase.NewTenantUsecase(db, log, tenantRepo, auditService)
	userUsecase := usecase.NewUserUsecase(db, log, userRepo, tenantRepo, auditService)
	scheduleUsecase := usecase.NewSpecialistScheduleUsecase(db, log, userRepo, scheduleRepo, breakRepo, auditService, slotCache)
	availabilityUsecase := usecase.NewAvailabilityUsecase(log, availabilityEngine, slotCache, availabilityMetrics, location, cfg.Availability.QueryTimeout)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, userRepo, sources, auditService, slotCache, availabilityMetrics, location)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	tenantHandler := handler.NewTenantHandler(tenantUsecase, customValidator)
	userHandler := handler.NewUserHandler(userUsecase, customValidator)
	scheduleHandler := handler.NewSpecialistScheduleHandler(scheduleUsecase, customValidator)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase, log)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient, log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		log,
		registry,
		authHandler,
		tenantHandler,
		userHandler,
		scheduleHandler,
		availabilityHandler,
		appointmentHandler,
		auditLogHandler,
		authMiddleware,
	)

	// Create server
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests and
// releases the database and Redis connections.
func (app *App) Run(ctx context.Context) error {
	defer app.Close()

	serveErr := make(chan error, 1)
	go func() {
		app.Log.WithFields(logrus.Fields{
			"port": app.Config.App.Port,
			"env":  app.Config.App.Env,
		}).Info("Server starting")
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	app.Log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	app.Log.Info("Server shutdown complete")
	return nil
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		_ = app.RedisClient.Close()
	}
}
