package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusRejected  ReservationStatus = "rejected"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
	StatusExpired   ReservationStatus = "expired"
)

// transitions допустимые переходы статусов
var transitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled, StatusExpired},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
}

// CanTransition reports whether a reservation may move from one status to another
func CanTransition(from, to ReservationStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ParseReservationStatus validates a status string
func ParseReservationStatus(s string) (ReservationStatus, error) {
	status := ReservationStatus(s)
	switch status {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled, StatusCompleted, StatusExpired:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// Reservation a requester's hold on [Start, End) of a court on a calendar date.
// Rows are never deleted; only Status, StatusReason and ExpiresAt change after creation.
type Reservation struct {
	ID          int64
	CourtID     int64
	FacilityID  int64
	RequesterID int64
	Date        time.Time
	Start       types.TimeOfDay
	End         types.TimeOfDay
	Status      ReservationStatus

	StatusReason *string
	ExpiresAt    *time.Time // only set while pending

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the reserved window
func (r *Reservation) Interval() types.Interval {
	return types.Interval{Start: r.Start, End: r.End}
}

// StartsAt returns the instant the reservation begins in loc
func (r *Reservation) StartsAt(loc *time.Location) time.Time {
	return r.Start.On(r.Date, loc)
}

// EndsAt returns the instant the reservation ends in loc; a wrap reservation ends on the next date
func (r *Reservation) EndsAt(loc *time.Location) time.Time {
	if r.Interval().Wraps() {
		return r.End.On(r.Date.AddDate(0, 0, 1), loc)
	}
	return r.End.On(r.Date, loc)
}

// HasStarted returns true once now reaches the reservation start
func (r *Reservation) HasStarted(now time.Time, loc *time.Location) bool {
	return !now.Before(r.StartsAt(loc))
}

// IsActive is the lazy-expiration predicate: whether the reservation still
// obstructs its window at instant now. A pending row past its expiry is not
// active even if its stored status was never rewritten.
func (r *Reservation) IsActive(now time.Time, loc *time.Location) bool {
	switch r.Status {
	case StatusConfirmed:
		return true
	case StatusCompleted:
		return r.EndsAt(loc).After(now)
	case StatusPending:
		return r.ExpiresAt != nil && r.ExpiresAt.After(now)
	default:
		return false
	}
}

// EffectiveStatus returns the status as observed at now:
// an expired pending row reads as expired, a confirmed row whose end has passed reads as completed
func (r *Reservation) EffectiveStatus(now time.Time, loc *time.Location) ReservationStatus {
	switch r.Status {
	case StatusPending:
		if r.ExpiresAt == nil || !r.ExpiresAt.After(now) {
			return StatusExpired
		}
	case StatusConfirmed:
		if !r.EndsAt(loc).After(now) {
			return StatusCompleted
		}
	}
	return r.Status
}

// ReservationFilter фильтр для списков бронирований. Nil поля не ограничивают выборку.
type ReservationFilter struct {
	RequesterID *int64
	FacilityID  *int64
	CourtID     *int64
	DateFrom    *time.Time // включительно
	DateTo      *time.Time // включительно
}
