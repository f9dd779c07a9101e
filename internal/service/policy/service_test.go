package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/facilityservice"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/policy/models"
	"github.com/m04kA/SMC-CourtBookingService/pkg/ptr"
)

type fakeRepo struct {
	court    *domain.PolicyOverride
	facility *domain.PolicyOverride
	err      error
	saved    *domain.PolicyOverride
}

func (r *fakeRepo) GetOverrides(_ context.Context, _, _ int64) (*domain.PolicyOverride, *domain.PolicyOverride, error) {
	return r.court, r.facility, r.err
}

func (r *fakeRepo) Upsert(_ context.Context, o *domain.PolicyOverride) (*domain.PolicyOverride, error) {
	saved := *o
	saved.ID = 77
	r.saved = &saved
	return &saved, nil
}

type fakeFacilities struct {
	courts     map[int64]*domain.Court
	facilities map[int64]*domain.Facility
	err        error
}

func (f *fakeFacilities) GetCourt(_ context.Context, id int64) (*domain.Court, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.courts[id]
	if !ok {
		return nil, facilityservice.ErrCourtNotFound
	}
	return c, nil
}

func (f *fakeFacilities) GetFacility(_ context.Context, id int64) (*domain.Facility, error) {
	fac, ok := f.facilities[id]
	if !ok {
		return nil, facilityservice.ErrFacilityNotFound
	}
	return fac, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newFacilities() *fakeFacilities {
	return &fakeFacilities{
		courts:     map[int64]*domain.Court{5: {ID: 5, FacilityID: 9, Active: true}},
		facilities: map[int64]*domain.Facility{9: {ID: 9, OwnerIDs: []int64{100}}},
	}
}

func TestService_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		court    *domain.PolicyOverride
		facility *domain.PolicyOverride
		want     domain.Policy
	}{
		{
			name: "defaults",
			want: domain.DefaultPolicy(),
		},
		{
			name:     "court wins over facility field by field",
			court:    &domain.PolicyOverride{BufferMinutes: ptr.Ptr(10)},
			facility: &domain.PolicyOverride{BufferMinutes: ptr.Ptr(30), MaxAdvanceDays: ptr.Ptr(7)},
			want: domain.Policy{
				MaxAdvanceDays:         7,
				MinDurationMinutes:     domain.DefaultMinDurationMinutes,
				MaxDurationMinutes:     domain.DefaultMaxDurationMinutes,
				BufferMinutes:          10,
				PendingExpirationHours: domain.DefaultPendingExpirationHours,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeRepo{court: tt.court, facility: tt.facility}, newFacilities(), nopLogger{})

			got, err := svc.Resolve(context.Background(), 5)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Resolve_Errors(t *testing.T) {
	svc := NewService(&fakeRepo{}, newFacilities(), nopLogger{})
	_, err := svc.Resolve(context.Background(), 404)
	assert.ErrorIs(t, err, ErrCourtNotFound)

	svc = NewService(&fakeRepo{err: errors.New("db down")}, newFacilities(), nopLogger{})
	_, err = svc.Resolve(context.Background(), 5)
	assert.ErrorIs(t, err, ErrInternal)

	facilities := newFacilities()
	facilities.err = facilityservice.ErrInternal
	svc = NewService(&fakeRepo{}, facilities, nopLogger{})
	_, err = svc.Resolve(context.Background(), 5)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Upsert(t *testing.T) {
	t.Run("court override by owner", func(t *testing.T) {
		repo := &fakeRepo{facility: &domain.PolicyOverride{MinDurationMinutes: ptr.Ptr(60)}}
		svc := NewService(repo, newFacilities(), nopLogger{})

		resp, err := svc.Upsert(context.Background(), &models.UpsertOverrideRequest{
			UserID:             100,
			CourtID:            ptr.Ptr(int64(5)),
			MaxDurationMinutes: ptr.Ptr(120),
		})
		require.NoError(t, err)
		assert.Equal(t, "court", resp.Scope)
		assert.Equal(t, int64(9), resp.FacilityID)
		require.NotNil(t, repo.saved)
		assert.Equal(t, 120, *repo.saved.MaxDurationMinutes)
	})

	t.Run("not an owner", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, newFacilities(), nopLogger{})

		_, err := svc.Upsert(context.Background(), &models.UpsertOverrideRequest{UserID: 1, FacilityID: 9})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("merged policy invalid", func(t *testing.T) {
		repo := &fakeRepo{facility: &domain.PolicyOverride{MinDurationMinutes: ptr.Ptr(90)}}
		svc := NewService(repo, newFacilities(), nopLogger{})

		_, err := svc.Upsert(context.Background(), &models.UpsertOverrideRequest{
			UserID:             100,
			CourtID:            ptr.Ptr(int64(5)),
			MaxDurationMinutes: ptr.Ptr(60),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, repo.saved)
	})

	t.Run("negative value", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, newFacilities(), nopLogger{})

		_, err := svc.Upsert(context.Background(), &models.UpsertOverrideRequest{
			UserID:        100,
			FacilityID:    9,
			BufferMinutes: ptr.Ptr(-5),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown facility", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, newFacilities(), nopLogger{})

		_, err := svc.Upsert(context.Background(), &models.UpsertOverrideRequest{UserID: 100, FacilityID: 1})
		assert.ErrorIs(t, err, ErrFacilityNotFound)
	})
}
