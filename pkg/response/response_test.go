package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeta(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		pages int
	}{
		{total: 0, limit: 20, pages: 0},
		{total: 20, limit: 20, pages: 1},
		{total: 41, limit: 20, pages: 3},
		{total: 5, limit: 0, pages: 0},
	}
	for _, tt := range tests {
		meta := NewMeta(1, tt.limit, tt.total)
		assert.Equal(t, tt.pages, meta.TotalPages, "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestConflictCarriesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	Conflict(rec, "Slot is not available", map[string]string{"reason": "Especialista en descanso"})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"message":"Slot is not available","error":{"reason":"Especialista en descanso"}}`, rec.Body.String())
}

func TestHelpersFallBackToDefaultMessage(t *testing.T) {
	tests := []struct {
		write func(http.ResponseWriter)
		code  int
		msg   string
	}{
		{func(w http.ResponseWriter) { BadRequest(w, "") }, http.StatusBadRequest, "Bad request"},
		{func(w http.ResponseWriter) { Unauthorized(w, "") }, http.StatusUnauthorized, "Unauthorized"},
		{func(w http.ResponseWriter) { Forbidden(w, "") }, http.StatusForbidden, "Forbidden"},
		{func(w http.ResponseWriter) { NotFound(w, "") }, http.StatusNotFound, "Resource not found"},
		{func(w http.ResponseWriter) { InternalServerError(w, "") }, http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		tt.write(rec)

		var body Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tt.code, rec.Code)
		assert.False(t, body.Success)
		assert.Equal(t, tt.msg, body.Message)
	}
}

func TestJSONWritesBarePayload(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string][]string{"availableSlots": {}})
	assert.JSONEq(t, `{"availableSlots":[]}`, rec.Body.String())
}
