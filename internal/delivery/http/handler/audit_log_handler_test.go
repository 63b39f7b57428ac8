package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/usecase"
	"clinic-scheduling-api/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuditLogUsecase struct {
	query dto.AuditLogQuery
	total int64
	err   error
}

func (f *fakeAuditLogUsecase) ListAuditLogs(_ context.Context, query dto.AuditLogQuery) (*dto.AuditLogPage, error) {
	f.query = query
	if f.err != nil {
		return nil, f.err
	}
	return &dto.AuditLogPage{Logs: []dto.AuditLogResponse{}, Page: query.Page, Limit: query.Limit, Total: f.total}, nil
}

func (f *fakeAuditLogUsecase) GetAuditLog(_ context.Context, id int64) (*dto.AuditLogResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.AuditLogResponse{ID: id}, nil
}

func TestAuditLogHandler_ListWritesPageMeta(t *testing.T) {
	uc := &fakeAuditLogUsecase{total: 41}
	h := NewAuditLogHandler(uc, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/admin/audit-logs?page=2&limit=20&action=user.login", nil)
	rec := serve("/admin/audit-logs", http.MethodGet, h.ListAuditLogs, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []dto.AuditLogResponse `json:"data"`
		Meta struct {
			Page       int   `json:"page"`
			Limit      int   `json:"limit"`
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Meta.Page)
	assert.Equal(t, 20, body.Meta.Limit)
	assert.Equal(t, int64(41), body.Meta.Total)
	assert.Equal(t, 3, body.Meta.TotalPages)
	assert.Equal(t, "user.login", uc.query.Action)
}

func TestAuditLogHandler_ListDefaults(t *testing.T) {
	uc := &fakeAuditLogUsecase{}
	h := NewAuditLogHandler(uc, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/admin/audit-logs", nil)
	rec := serve("/admin/audit-logs", http.MethodGet, h.ListAuditLogs, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, uc.query.Page)
	assert.Equal(t, 20, uc.query.Limit)
}

func TestAuditLogHandler_ListRejectsBadPaging(t *testing.T) {
	h := NewAuditLogHandler(&fakeAuditLogUsecase{}, validator.NewValidator())

	for _, query := range []string{"page=abc", "limit=x", "page=0", "limit=500"} {
		req := httptest.NewRequest(http.MethodGet, "/admin/audit-logs?"+query, nil)
		rec := serve("/admin/audit-logs", http.MethodGet, h.ListAuditLogs, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestAuditLogHandler_ErrorStatuses(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{usecase.ErrAuditLogNotFound, http.StatusNotFound},
		{usecase.ErrForbidden, http.StatusForbidden},
		{usecase.ErrUnauthenticated, http.StatusUnauthorized},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		h := NewAuditLogHandler(&fakeAuditLogUsecase{err: tt.err}, validator.NewValidator())
		req := httptest.NewRequest(http.MethodGet, "/admin/audit-logs/4", nil)
		rec := serve("/admin/audit-logs/{id}", http.MethodGet, h.GetAuditLog, req)
		assert.Equal(t, tt.want, rec.Code, tt.err.Error())
	}
}
