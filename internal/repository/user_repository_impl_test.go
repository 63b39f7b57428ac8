package repository

import (
	"context"
	"testing"

	"clinic-scheduling-api/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_FindSpecialist(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository()

	rows := sqlmock.NewRows([]string{"id", "tenant_id", "username", "email", "role", "specialty"}).
		AddRow(7, 3, "dra.lopez", "lopez@clinic.test", entity.RoleSpecialist, "Cardiología")
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 AND tenant_id = \$2 AND role = \$3`).
		WillReturnRows(rows)

	user, err := repo.FindSpecialist(context.Background(), db, 7, 3)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.True(t, user.IsSpecialist())
	assert.True(t, user.BelongsTo(3))
	assert.Equal(t, "Cardiología", *user.Specialty)
}

func TestUserRepository_FindByUsernameNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	user, err := repo.FindByUsername(context.Background(), db, "ghost")
	require.NoError(t, err)
	assert.Nil(t, user)
}
