package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// AvailabilityRule weekly recurring opening window of a court.
// DayOfWeek follows time.Weekday: 0 = Sunday.
// End < Start means the window runs past midnight; it is attributed to DayOfWeek only.
type AvailabilityRule struct {
	ID        int64
	CourtID   int64
	DayOfWeek int
	Start     types.TimeOfDay
	End       types.TimeOfDay
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the opening window
func (r *AvailabilityRule) Interval() types.Interval {
	return types.Interval{Start: r.Start, End: r.End}
}

// Validate checks field ranges
func (r *AvailabilityRule) Validate() error {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return fmt.Errorf("%w: dayOfWeek must be in 0..6, got %d", ErrInvalidRule, r.DayOfWeek)
	}
	if err := r.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidRule, err)
	}
	if err := r.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidRule, err)
	}
	if r.Start == r.End {
		return fmt.Errorf("%w: empty window %s", ErrInvalidRule, r.Interval())
	}
	return nil
}

// AppliesTo returns true if the rule is active for the weekday of date
func (r *AvailabilityRule) AppliesTo(date time.Time) bool {
	return r.Active && r.DayOfWeek == int(date.Weekday())
}
