package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/ptr"
)

const selectColumns = "SELECT id, court_id, facility_id, requester_id, reservation_date, start_minute, end_minute, " +
	"status, status_reason, expires_at, created_at, updated_at FROM reservations"

func TestBuildListObstructingQuery(t *testing.T) {
	date := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)

	query, args, err := buildListObstructingQuery(7, date, now, false)
	require.NoError(t, err)

	assert.Equal(t, selectColumns+
		" WHERE court_id = $1 AND reservation_date = $2 AND status IN ($3,$4,$5)"+
		" AND (status <> $6 OR expires_at > $7) ORDER BY start_minute ASC, id ASC", query)
	assert.Equal(t, []interface{}{
		int64(7),
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		"pending", "confirmed", "completed",
		"pending",
		now,
	}, args)

	lockedQuery, _, err := buildListObstructingQuery(7, date, now, true)
	require.NoError(t, err)
	assert.Equal(t, query+" FOR UPDATE", lockedQuery)
}

func TestBuildGetByIDQuery(t *testing.T) {
	query, args, err := buildGetByIDQuery(42, true)
	require.NoError(t, err)

	assert.Equal(t, selectColumns+" WHERE id = $1 FOR UPDATE", query)
	assert.Equal(t, []interface{}{int64(42)}, args)
}

func TestBuildUpdateStatusQuery(t *testing.T) {
	now := time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		from      domain.ReservationStatus
		to        domain.ReservationStatus
		reason    *string
		wantQuery string
		wantArgs  []interface{}
	}{
		{
			name:   "pending requires unexpired hold",
			from:   domain.StatusPending,
			to:     domain.StatusRejected,
			reason: ptr.Ptr("court maintenance"),
			wantQuery: "UPDATE reservations SET status = $1, expires_at = $2, updated_at = NOW(), status_reason = $3" +
				" WHERE id = $4 AND status = $5 AND expires_at > $6" +
				" RETURNING id, court_id, facility_id, requester_id, reservation_date, start_minute, end_minute," +
				" status, status_reason, expires_at, created_at, updated_at",
			wantArgs: []interface{}{domain.StatusRejected, nil, "court maintenance", int64(42), domain.StatusPending, now},
		},
		{
			name: "accept",
			from: domain.StatusPending,
			to:   domain.StatusConfirmed,
			wantQuery: "UPDATE reservations SET status = $1, expires_at = $2, updated_at = NOW()" +
				" WHERE id = $3 AND status = $4 AND expires_at > $5" +
				" RETURNING id, court_id, facility_id, requester_id, reservation_date, start_minute, end_minute," +
				" status, status_reason, expires_at, created_at, updated_at",
			wantArgs: []interface{}{domain.StatusConfirmed, nil, int64(42), domain.StatusPending, now},
		},
		{
			name: "confirmed has no expiry condition",
			from: domain.StatusConfirmed,
			to:   domain.StatusCancelled,
			wantQuery: "UPDATE reservations SET status = $1, expires_at = $2, updated_at = NOW()" +
				" WHERE id = $3 AND status = $4" +
				" RETURNING id, court_id, facility_id, requester_id, reservation_date, start_minute, end_minute," +
				" status, status_reason, expires_at, created_at, updated_at",
			wantArgs: []interface{}{domain.StatusCancelled, nil, int64(42), domain.StatusConfirmed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildUpdateStatusQuery(42, tt.from, tt.to, tt.reason, now)
			require.NoError(t, err)

			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildListQuery(t *testing.T) {
	from := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    domain.ReservationFilter
		wantWhere string
		wantArgs  []interface{}
	}{
		{
			name:      "no filter",
			filter:    domain.ReservationFilter{},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "requester with period",
			filter:    domain.ReservationFilter{RequesterID: ptr.Ptr(int64(200)), DateFrom: &from, DateTo: &to},
			wantWhere: " WHERE requester_id = $1 AND reservation_date >= $2 AND reservation_date <= $3",
			wantArgs:  []interface{}{int64(200), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), to},
		},
		{
			name:      "facility and court",
			filter:    domain.ReservationFilter{FacilityID: ptr.Ptr(int64(9)), CourtID: ptr.Ptr(int64(5))},
			wantWhere: " WHERE facility_id = $1 AND court_id = $2",
			wantArgs:  []interface{}{int64(9), int64(5)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildListQuery(tt.filter)
			require.NoError(t, err)

			assert.Equal(t, selectColumns+tt.wantWhere+" ORDER BY reservation_date DESC, start_minute DESC, id DESC", query)
			if tt.wantArgs == nil {
				assert.Empty(t, args)
				return
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
