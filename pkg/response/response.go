package response

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope used by every endpoint except the availability
// reads, which return their payload bare.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewMeta derives the page count from total rows and page size.
func NewMeta(page, limit int, total int64) *Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// JSON writes data as-is with the given status.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	JSON(w, statusCode, Response{Success: true, Message: message, Data: data})
}

func SuccessWithMeta(w http.ResponseWriter, statusCode int, message string, data interface{}, meta *Meta) {
	JSON(w, statusCode, Response{Success: true, Message: message, Data: data, Meta: meta})
}

func Error(w http.ResponseWriter, statusCode int, message string, err interface{}) {
	JSON(w, statusCode, Response{Success: false, Message: message, Error: err})
}

// ValidationError reports field-level failures keyed by JSON field name.
func ValidationError(w http.ResponseWriter, errors interface{}) {
	Error(w, http.StatusBadRequest, "Validation failed", errors)
}

func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, orDefault(message, "Bad request"), nil)
}

func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, orDefault(message, "Unauthorized"), nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, orDefault(message, "Forbidden"), nil)
}

func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, orDefault(message, "Resource not found"), nil)
}

// Conflict carries an optional detail, e.g. the reason a slot cannot be booked.
func Conflict(w http.ResponseWriter, message string, detail interface{}) {
	Error(w, http.StatusConflict, orDefault(message, "Conflict"), detail)
}

func InternalServerError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, orDefault(message, "Internal server error"), nil)
}

func orDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}
