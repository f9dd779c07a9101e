package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CourtBookingService/pkg/ptr"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from ReservationStatus
		to   ReservationStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusExpired, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusRejected, false},
		{StatusConfirmed, StatusPending, false},
		{StatusRejected, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusExpired, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestParseReservationStatus(t *testing.T) {
	s, err := ParseReservationStatus("confirmed")
	assert.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	_, err = ParseReservationStatus("in_progress")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestReservation_IsActiveAndEffectiveStatus(t *testing.T) {
	loc := time.UTC
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	newReservation := func(status ReservationStatus, start, end int, expiresAt *time.Time) *Reservation {
		return &Reservation{
			Date:      date,
			Start:     types.TimeOfDay(start),
			End:       types.TimeOfDay(end),
			Status:    status,
			ExpiresAt: expiresAt,
		}
	}

	tests := []struct {
		name          string
		reservation   *Reservation
		wantActive    bool
		wantEffective ReservationStatus
	}{
		{
			name:          "pending not expired",
			reservation:   newReservation(StatusPending, 900, 960, ptr.Ptr(now.Add(time.Hour))),
			wantActive:    true,
			wantEffective: StatusPending,
		},
		{
			name:          "pending expired but never swept",
			reservation:   newReservation(StatusPending, 900, 960, ptr.Ptr(now.Add(-time.Minute))),
			wantActive:    false,
			wantEffective: StatusExpired,
		},
		{
			name:          "pending expiring exactly now",
			reservation:   newReservation(StatusPending, 900, 960, ptr.Ptr(now)),
			wantActive:    false,
			wantEffective: StatusExpired,
		},
		{
			name:          "confirmed in the future",
			reservation:   newReservation(StatusConfirmed, 900, 960, nil),
			wantActive:    true,
			wantEffective: StatusConfirmed,
		},
		{
			name:          "confirmed already ended",
			reservation:   newReservation(StatusConfirmed, 540, 600, nil),
			wantActive:    true,
			wantEffective: StatusCompleted,
		},
		{
			name:          "completed still in progress",
			reservation:   newReservation(StatusCompleted, 690, 750, nil),
			wantActive:    true,
			wantEffective: StatusCompleted,
		},
		{
			name:          "completed elapsed",
			reservation:   newReservation(StatusCompleted, 540, 600, nil),
			wantActive:    false,
			wantEffective: StatusCompleted,
		},
		{
			name:          "rejected",
			reservation:   newReservation(StatusRejected, 900, 960, nil),
			wantActive:    false,
			wantEffective: StatusRejected,
		},
		{
			name:          "cancelled",
			reservation:   newReservation(StatusCancelled, 900, 960, nil),
			wantActive:    false,
			wantEffective: StatusCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantActive, tt.reservation.IsActive(now, loc))
			assert.Equal(t, tt.wantEffective, tt.reservation.EffectiveStatus(now, loc))
		})
	}
}

func TestReservation_HasStarted(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	r := &Reservation{
		Date:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Start: types.MustParseTimeOfDay("10:00"),
		End:   types.MustParseTimeOfDay("11:00"),
	}

	assert.False(t, r.HasStarted(time.Date(2025, 3, 10, 6, 59, 0, 0, time.UTC), loc))
	assert.True(t, r.HasStarted(time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC), loc))
}

func TestReservation_EndsAt_Wrap(t *testing.T) {
	r := &Reservation{
		Date:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Start: 1380,
		End:   60,
	}

	assert.True(t, time.Date(2025, 3, 11, 1, 0, 0, 0, time.UTC).Equal(r.EndsAt(time.UTC)))
	assert.True(t, time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC).Equal(r.StartsAt(time.UTC)))
}
