package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the length of a calendar day in minutes.
const MinutesPerDay = 1440

var (
	// ErrInvalidTimeFormat is returned when a string is not in HH:MM format
	ErrInvalidTimeFormat = errors.New("invalid time string format")

	// ErrTimeOutOfRange is returned when a value is outside [0, 1439]
	ErrTimeOutOfRange = errors.New("time of day out of range")
)

// TimeOfDay is a time of day expressed in minutes since midnight, 0 <= v < 1440.
// It is timezone and DST agnostic.
type TimeOfDay int

// NewTimeOfDay validates v and returns it as a TimeOfDay
func NewTimeOfDay(v int) (TimeOfDay, error) {
	t := TimeOfDay(v)
	if err := t.Validate(); err != nil {
		return 0, err
	}
	return t, nil
}

// ParseTimeOfDay parses "HH:MM" (two digits each) into minutes since midnight
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hours, err := parseTwoDigits(s[:2])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	minutes, err := parseTwoDigits(s[3:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrTimeOutOfRange, s)
	}

	return TimeOfDay(hours*60 + minutes), nil
}

// MustParseTimeOfDay is like ParseTimeOfDay but panics on error. Intended for constants and tests.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// TimeOfDayFromTime returns the wall-clock time of day of t in its own location
func TimeOfDayFromTime(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

func parseTwoDigits(s string) (int, error) {
	if strings.TrimLeft(s, "0123456789") != "" {
		return 0, ErrInvalidTimeFormat
	}
	return strconv.Atoi(s)
}

// String formats the value as "HH:MM"
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Minutes returns the raw number of minutes since midnight
func (t TimeOfDay) Minutes() int {
	return int(t)
}

// Validate checks the 0 <= v < 1440 invariant
func (t TimeOfDay) Validate() error {
	if t < 0 || t >= MinutesPerDay {
		return fmt.Errorf("%w: %d", ErrTimeOutOfRange, int(t))
	}
	return nil
}

// AddMinutes adds n minutes, returning an error if the result leaves the day
func (t TimeOfDay) AddMinutes(n int) (TimeOfDay, error) {
	return NewTimeOfDay(int(t) + n)
}

// IsAligned reports whether t falls on the granularity grid counted from midnight
func (t TimeOfDay) IsAligned(granularity int) bool {
	if granularity <= 0 {
		return true
	}
	return int(t)%granularity == 0
}

// IsBefore reports whether t is strictly earlier than other
func (t TimeOfDay) IsBefore(other TimeOfDay) bool {
	return t < other
}

// IsAfter reports whether t is strictly later than other
func (t TimeOfDay) IsAfter(other TimeOfDay) bool {
	return t > other
}

// On returns the instant at which this time of day occurs on the calendar date of date in loc
func (t TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(time.Duration(t) * time.Minute)
}

// Value implements driver.Valuer; time of day is stored as an integer column
func (t TimeOfDay) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return int64(t), nil
}

// Scan implements sql.Scanner
func (t *TimeOfDay) Scan(src interface{}) error {
	var v int64
	switch s := src.(type) {
	case int64:
		v = s
	case int32:
		v = int64(s)
	case []byte:
		n, err := strconv.ParseInt(string(s), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
		}
		v = n
	case string:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
		}
		v = n
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeFormat, src)
	}

	parsed, err := NewTimeOfDay(int(v))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
