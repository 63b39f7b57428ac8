package repository

import (
	"context"
	"testing"
	"time"

	"clinic-scheduling-api/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogRepository_FindAllFiltersAndPages(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditLogRepository()
	tenantID := uint(3)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs" WHERE tenant_id = \$1 AND action = \$2`).
		WithArgs(3, entity.AuditActionAppointmentCreate).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))
	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE tenant_id = \$1 AND action = \$2 ORDER BY created_at DESC, id DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "tenant_id", "action", "metadata", "created_at"}).
			AddRow(9, 20, 3, entity.AuditActionAppointmentCreate, []byte(`{"entity":"appointment","entity_id":"42"}`), time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(20, "paciente"))

	logs, total, err := repo.FindAll(context.Background(), db, entity.AuditLogFilter{
		TenantID: &tenantID,
		Action:   entity.AuditActionAppointmentCreate,
		Limit:    20,
		Offset:   40,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(41), total)
	require.Len(t, logs, 1)
	assert.Equal(t, "42", logs[0].Metadata["entity_id"])
	require.NotNil(t, logs[0].User)
	assert.Equal(t, "paciente", logs[0].User.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogRepository_FindAllUnscopedEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditLogRepository()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "audit_logs" ORDER BY created_at DESC, id DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	logs, total, err := repo.FindAll(context.Background(), db, entity.AuditLogFilter{Limit: 20})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, logs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogRepository_FindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditLogRepository()

	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	log, err := repo.FindByID(context.Background(), db, 77)
	require.NoError(t, err)
	assert.Nil(t, log)
	assert.NoError(t, mock.ExpectationsWereMet())
}
