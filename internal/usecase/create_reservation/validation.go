package create_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, granularity int) error {
	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidInput, err)
	}
	if err := req.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidInput, err)
	}

	// end = 0 - окончание ровно в полночь
	endsAtMidnight := req.End == 0 && req.Start > 0
	if req.Start >= req.End && !endsAtMidnight {
		return fmt.Errorf("%w: %s", ErrInvalidTimeRange, types.Interval{Start: req.Start, End: req.End})
	}

	if !req.Start.IsAligned(granularity) || !req.End.IsAligned(granularity) {
		return fmt.Errorf("%w: %d minutes", ErrMisaligned, granularity)
	}

	return nil
}

// validatePolicy проверяет длительность и дату по политике корта
func validatePolicy(req *Request, policy domain.Policy, now time.Time, loc *time.Location) error {
	duration := types.Duration(req.Start, req.End)
	if duration < policy.MinDurationMinutes {
		return fmt.Errorf("%w: minimum is %d minutes", ErrDurationTooShort, policy.MinDurationMinutes)
	}
	if policy.HasMaxDuration() && duration > policy.MaxDurationMinutes {
		return fmt.Errorf("%w: maximum is %d minutes", ErrDurationTooLong, policy.MaxDurationMinutes)
	}

	local := now.In(loc)
	today := domain.DateOnly(local)
	day := domain.DateOnly(req.Date)

	if day.Before(today) {
		return fmt.Errorf("%w: %s", ErrDateInPast, req.Date.Format(domain.DateFormat))
	}
	if day.Equal(today) && req.Start <= types.TimeOfDayFromTime(local) {
		return fmt.Errorf("%w: %s has already started", ErrDateInPast, req.Start)
	}

	if policy.HasAdvanceLimit() && day.After(today.AddDate(0, 0, policy.MaxAdvanceDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, policy.MaxAdvanceDays)
	}

	return nil
}

// containedIn проверяет, что span целиком лежит внутри одного из интервалов
func containedIn(span types.Span, within []types.Span) bool {
	for _, w := range within {
		if w.Contains(span) {
			return true
		}
	}
	return false
}
