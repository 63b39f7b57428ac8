package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/internal/repository"
	"clinic-scheduling-api/internal/service"
	"clinic-scheduling-api/pkg/jwt"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestScheduleUsecase(t *testing.T, db *gorm.DB) (SpecialistScheduleUsecase, *service.SlotCache) {
	t.Helper()
	client, _ := newTestRedis(t)
	cache := service.NewSlotCache(client, newTestLogger(), time.Minute)
	uc := NewSpecialistScheduleUsecase(db, newTestLogger(),
		repository.NewUserRepository(),
		repository.NewSpecialistScheduleRepository(),
		repository.NewSpecialistBreakRepository(),
		newAuditService(),
		cache,
	)
	return uc, cache
}

func adminContext() context.Context {
	return contextAs(jwt.Subject{UserID: 1, Username: "admin", Role: entity.RoleAdministrator, TenantID: uintPtr(3)})
}

func intPtr(v int) *int { return &v }

func TestReplaceSchedule_Success(t *testing.T) {
	db, mock := newMockDB(t)
	uc, cache := newTestScheduleUsecase(t, db)
	cache.Set(context.Background(), 3, 7, monday, 0, []string{"08:00"})
	cache.Set(context.Background(), 3, 7, monday.AddDate(0, 0, 1), 0, []string{"08:00"})

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(specialistRow())
	mock.ExpectQuery(`SELECT \* FROM "specialist_schedules"`).
		WillReturnRows(sqlmock.NewRows(scheduleColumns).AddRow(1, 7, 3, 1, "08:00:00", "12:00:00", true))
	mock.ExpectExec(`DELETE FROM "specialist_schedules"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "specialist_schedules"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10).AddRow(11))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "specialist_schedules"`).
		WillReturnRows(sqlmock.NewRows(scheduleColumns).
			AddRow(10, 7, 3, 1, "09:00:00", "13:00:00", true).
			AddRow(11, 7, 3, 3, "14:00:00", "18:00:00", false))
	mock.ExpectQuery(`SELECT \* FROM "specialist_breaks"`).WillReturnRows(sqlmock.NewRows(breakColumns))
	mock.ExpectCommit()

	req := &dto.ReplaceScheduleRequest{Schedules: []dto.ScheduleEntryRequest{
		{DayOfWeek: intPtr(1), StartTime: "09:00", EndTime: "13:00"},
		{DayOfWeek: intPtr(3), StartTime: "14:00", EndTime: "18:00", IsAvailable: new(bool)},
	}}
	resp, err := uc.ReplaceSchedule(adminContext(), 3, 7, req)
	require.NoError(t, err)

	require.Len(t, resp.Schedules, 2)
	assert.Equal(t, "09:00", resp.Schedules[0].StartTime)
	assert.False(t, resp.Schedules[1].IsAvailable)
	assert.Equal(t, uint(7), resp.Specialist.ID)
	assert.NotNil(t, resp.Breaks)
	assert.NoError(t, mock.ExpectationsWereMet())

	_, ok := cache.Get(context.Background(), 3, 7, monday)
	assert.False(t, ok)
	_, ok = cache.Get(context.Background(), 3, 7, monday.AddDate(0, 0, 1))
	assert.False(t, ok)
}

func TestReplaceSchedule_InvalidRangeTouchesNothing(t *testing.T) {
	db, mock := newMockDB(t)
	uc, _ := newTestScheduleUsecase(t, db)

	req := &dto.ReplaceScheduleRequest{Schedules: []dto.ScheduleEntryRequest{
		{DayOfWeek: intPtr(1), StartTime: "08:00", EndTime: "12:00"},
		{DayOfWeek: intPtr(2), StartTime: "12:00", EndTime: "08:00"},
	}}
	_, err := uc.ReplaceSchedule(adminContext(), 3, 7, req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
	assert.Contains(t, err.Error(), "schedules[1]")

	req = &dto.ReplaceScheduleRequest{Schedules: []dto.ScheduleEntryRequest{
		{DayOfWeek: intPtr(1), StartTime: "8am", EndTime: "12:00"},
	}}
	_, err = uc.ReplaceSchedule(adminContext(), 3, 7, req)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceBreaks_SpecialistNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	uc, _ := newTestScheduleUsecase(t, db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectRollback()

	req := &dto.ReplaceBreaksRequest{Breaks: []dto.BreakEntryRequest{
		{DayOfWeek: intPtr(1), StartTime: "10:00", EndTime: "10:30", Description: "Descanso"},
	}}
	_, err := uc.ReplaceBreaks(adminContext(), 3, 99, req)
	assert.ErrorIs(t, err, ErrSpecialistNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSchedule(t *testing.T) {
	db, mock := newMockDB(t)
	uc, _ := newTestScheduleUsecase(t, db)

	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(specialistRow())
	mock.ExpectQuery(`SELECT \* FROM "specialist_schedules"`).
		WillReturnRows(sqlmock.NewRows(scheduleColumns).AddRow(1, 7, 3, 1, "08:00:00", "12:00:00", true))
	mock.ExpectQuery(`SELECT \* FROM "specialist_breaks"`).
		WillReturnRows(sqlmock.NewRows(breakColumns).AddRow(1, 7, 3, 1, "10:00:00", "10:30:00", "Descanso"))

	resp, err := uc.GetSchedule(context.Background(), 3, 7)
	require.NoError(t, err)
	require.Len(t, resp.Breaks, 1)
	assert.Equal(t, "10:30", resp.Breaks[0].EndTime)
	assert.Equal(t, "Descanso", resp.Breaks[0].Description)
}
