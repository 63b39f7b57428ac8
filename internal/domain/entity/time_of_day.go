package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeOfDay is returned when a value cannot be read as HH:MM or HH:MM:SS.
var ErrInvalidTimeOfDay = errors.New("invalid time of day, use HH:MM")

const secondsPerDay = 24 * 60 * 60

// TimeOfDay is a wall-clock time without a date, stored as seconds since midnight.
// It maps to PostgreSQL TIME columns.
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from hour and minute.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60)
}

// TimeOfDayFrom extracts the wall-clock part of t in t's own location.
func TimeOfDayFrom(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// ParseTimeOfDay accepts "HH:MM" and "HH:MM:SS" (24-hour).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, ErrInvalidTimeOfDay
	}

	limits := []int{23, 59, 59}
	values := make([]int, 3)
	for i, p := range parts {
		if len(p) != 2 {
			return 0, ErrInvalidTimeOfDay
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > limits[i] {
			return 0, ErrInvalidTimeOfDay
		}
		values[i] = n
	}

	return TimeOfDay(values[0]*3600 + values[1]*60 + values[2]), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 3600 }
func (t TimeOfDay) Minute() int { return int(t) % 3600 / 60 }

// Add returns t shifted by d. The result may pass 24:00 so that loops over
// an interval terminate on the interval end.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d/time.Second)
}

func (t TimeOfDay) Before(u TimeOfDay) bool { return t < u }
func (t TimeOfDay) After(u TimeOfDay) bool  { return t > u }

// SameMinute reports hour-and-minute equality, ignoring seconds.
func (t TimeOfDay) SameMinute(u TimeOfDay) bool {
	return t.Hour() == u.Hour() && t.Minute() == u.Minute()
}

// String renders HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Value implements driver.Valuer.
func (t TimeOfDay) Value() (driver.Value, error) {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), int(t)%60), nil
}

// Scan implements sql.Scanner for TIME columns.
func (t *TimeOfDay) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = 0
		return nil
	case time.Time:
		*t = TimeOfDayFrom(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", value)
	}
}

func (t *TimeOfDay) scanString(s string) error {
	// TIME values may carry fractional seconds.
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON renders the time as "HH:MM".
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts "HH:MM" or "HH:MM:SS".
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidTimeOfDay
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Valid reports whether t falls within a single day.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < secondsPerDay
}
