package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "09:00", want: NewTimeOfDay(9, 0)},
		{in: "23:59", want: NewTimeOfDay(23, 59)},
		{in: "10:15:30", want: NewTimeOfDay(10, 15) + 30},
		{in: " 08:30 ", want: NewTimeOfDay(8, 30)},
		{in: "24:00", wantErr: true},
		{in: "9:00", wantErr: true},
		{in: "09:60", wantErr: true},
		{in: "09", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeOfDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDay_OrderingAndFormatting(t *testing.T) {
	nine := NewTimeOfDay(9, 0)
	half := nine.Add(30 * time.Minute)

	assert.Equal(t, "09:30", half.String())
	assert.True(t, nine.Before(half))
	assert.True(t, half.After(nine))
	assert.True(t, (half + 45).SameMinute(half))
	assert.False(t, half.SameMinute(nine))
	assert.False(t, NewTimeOfDay(23, 30).Add(time.Hour).Valid())
}

func TestTimeOfDay_Scan(t *testing.T) {
	var tod TimeOfDay

	require.NoError(t, tod.Scan("14:05:00"))
	assert.Equal(t, NewTimeOfDay(14, 5), tod)

	require.NoError(t, tod.Scan([]byte("07:45:00.000000")))
	assert.Equal(t, NewTimeOfDay(7, 45), tod)

	require.NoError(t, tod.Scan(time.Date(2000, 1, 1, 18, 30, 0, 0, time.UTC)))
	assert.Equal(t, NewTimeOfDay(18, 30), tod)

	assert.Error(t, tod.Scan(42))
}

func TestTimeOfDay_ValueAndJSON(t *testing.T) {
	tod := NewTimeOfDay(8, 15)

	v, err := tod.Value()
	require.NoError(t, err)
	assert.Equal(t, "08:15:00", v)

	raw, err := json.Marshal(tod)
	require.NoError(t, err)
	assert.JSONEq(t, `"08:15"`, string(raw))

	var decoded TimeOfDay
	require.NoError(t, json.Unmarshal([]byte(`"08:15:00"`), &decoded))
	assert.Equal(t, tod, decoded)

	assert.Error(t, json.Unmarshal([]byte(`830`), &decoded))
}
