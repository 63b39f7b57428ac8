package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"clinic-scheduling-api/internal/delivery/http/middleware"
	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/internal/repository"
	"clinic-scheduling-api/internal/service"
	"clinic-scheduling-api/pkg/jwt"

	"github.com/DATA-DOG/go-sqlmock"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 2024-06-03 is a Monday.
var monday = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func uintPtr(v uint) *uint { return &v }

func contextAs(subject jwt.Subject) context.Context {
	return middleware.WithSubject(context.Background(), subject)
}

func patientContext() context.Context {
	return contextAs(jwt.Subject{UserID: 20, Username: "paciente", Role: entity.RolePatient, TenantID: uintPtr(3)})
}

func newAuditService() service.AuditService {
	return service.NewAuditService(newTestLogger(), repository.NewAuditLogRepository())
}

var (
	userColumns     = []string{"id", "tenant_id", "username", "email", "password", "role", "identification_number", "area", "specialty"}
	scheduleColumns = []string{"id", "specialist_id", "tenant_id", "day_of_week", "start_time", "end_time", "is_available"}
	breakColumns    = []string{"id", "specialist_id", "tenant_id", "day_of_week", "start_time", "end_time", "description"}
)

func specialistRow() *sqlmock.Rows {
	return sqlmock.NewRows(userColumns).
		AddRow(7, 3, "dra.ruiz", "ruiz@clinic.test", "hash", entity.RoleSpecialist, "1234567890", "Medicina", "Cardiología")
}
