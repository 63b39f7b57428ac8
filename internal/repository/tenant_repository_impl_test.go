package repository

import (
	"context"
	"testing"

	"clinic-scheduling-api/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantRepository_UpdateWritesNameAndAddress(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTenantRepository()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tenants" SET "name"=\$1,"address"=\$2`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), db, &entity.Tenant{ID: 3, Name: "Clínica Norte"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTenantRepository_DeleteReportsAffectedRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTenantRepository()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tenants" WHERE id = \$1`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	deleted, err := repo.Delete(context.Background(), db, 99)
	require.NoError(t, err)
	assert.Zero(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
