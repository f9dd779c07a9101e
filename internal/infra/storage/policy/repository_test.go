package policy

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/ptr"
)

func TestBuildOverridesQuery(t *testing.T) {
	query, args, err := buildOverridesQuery(7, 42)
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, scope, facility_id, court_id, max_advance_days, min_duration_minutes,"+
		" max_duration_minutes, buffer_minutes, pending_expiration_hours, created_at, updated_at"+
		" FROM booking_policies"+
		" WHERE ((scope = $1 AND court_id = $2) OR (scope = $3 AND facility_id = $4 AND court_id IS NULL))", query)
	assert.Equal(t, []interface{}{"court", int64(42), "facility", int64(7)}, args)
}

func TestBuildUpsertQuery(t *testing.T) {
	query, args, err := buildUpsertQuery(&domain.PolicyOverride{
		Scope:          domain.PolicyScopeCourt,
		FacilityID:     7,
		CourtID:        ptr.Ptr(int64(42)),
		BufferMinutes:  ptr.Ptr(15),
		MaxAdvanceDays: ptr.Ptr(14),
	})
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO booking_policies (scope,facility_id,court_id,")
	assert.Contains(t, query, "ON CONFLICT (scope, facility_id, COALESCE(court_id, 0)) DO UPDATE SET")
	assert.Contains(t, query, "RETURNING id, scope, facility_id")
	require.Len(t, args, 8)
	assert.Equal(t, "court", args[0])
	assert.Equal(t, int64(7), args[1])
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		if s, ok := d.(sql.Scanner); ok {
			if err := s.Scan(r.values[i]); err != nil {
				return err
			}
			continue
		}
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *string:
			*p = r.values[i].(string)
		default:
			return errors.New("unsupported destination")
		}
	}
	return nil
}

func TestScanOverride(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	override, err := scanOverride(fakeRow{values: []any{
		int64(1), "facility", int64(7), nil,
		int64(10), nil, int64(0), int64(15), nil,
		now, now,
	}})
	require.NoError(t, err)

	assert.Equal(t, domain.PolicyScopeFacility, override.Scope)
	assert.Nil(t, override.CourtID)
	assert.Equal(t, 10, *override.MaxAdvanceDays)
	assert.Nil(t, override.MinDurationMinutes)
	assert.Equal(t, 0, *override.MaxDurationMinutes)
	assert.Equal(t, 15, *override.BufferMinutes)
	assert.Nil(t, override.PendingExpirationHours)
	assert.True(t, now.Equal(override.CreatedAt))
}
