package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required,hhmm"`
}

type entry struct {
	StartTime string `json:"start_time" validate:"required,hhmm"`
}

type batchRequest struct {
	Entries []entry `json:"entries" validate:"required,dive"`
}

func TestValidator_HHMM(t *testing.T) {
	v := NewValidator()

	for _, ok := range []string{"00:00", "09:30", "23:59"} {
		assert.NoError(t, v.Validate(&slotRequest{Date: "2024-06-03", Time: ok}), ok)
	}
	for _, bad := range []string{"24:00", "9:30", "09:60", "09:30:00", "noon"} {
		assert.Error(t, v.Validate(&slotRequest{Date: "2024-06-03", Time: bad}), bad)
	}
}

func TestValidator_FormatUsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&slotRequest{Date: "03/06/2024", Time: "25:00"})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "date must be a date in YYYY-MM-DD format", errs["date"])
	assert.Equal(t, "time must be a time in HH:MM format", errs["time"])
}

func TestValidator_FormatKeepsIndexOfDivedFields(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&batchRequest{Entries: []entry{{StartTime: "08:00"}, {StartTime: "8"}}})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Contains(t, errs, "entries[1].start_time")
}

func TestValidator_ValidateVar(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateVar("10:15", "required,hhmm"))
	assert.Error(t, v.ValidateVar("", "required,hhmm"))
}
