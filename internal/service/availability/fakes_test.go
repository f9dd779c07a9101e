package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/facilityservice"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

type fakeRules struct {
	rules []*domain.AvailabilityRule
	err   error
}

func (f *fakeRules) GetActiveByCourtAndDay(_ context.Context, courtID int64, dayOfWeek int) ([]*domain.AvailabilityRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.AvailabilityRule, 0)
	for _, r := range f.rules {
		if r.CourtID == courtID && r.DayOfWeek == dayOfWeek && r.Active {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeBlocks struct {
	blocks []*domain.Block
}

func (f *fakeBlocks) GetForCourtOnDate(_ context.Context, _, _ int64, _ time.Time) ([]*domain.Block, error) {
	return f.blocks, nil
}

type fakeReservations struct {
	reservations []*domain.Reservation
}

func (f *fakeReservations) ListObstructing(_ context.Context, courtID int64, date time.Time, _ time.Time) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0)
	for _, r := range f.reservations {
		if r.CourtID == courtID && domain.SameDate(r.Date, date) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeCourts struct {
	courts map[int64]*domain.Court
}

func (f *fakeCourts) GetCourt(_ context.Context, id int64) (*domain.Court, error) {
	c, ok := f.courts[id]
	if !ok {
		return nil, facilityservice.ErrCourtNotFound
	}
	return c, nil
}

type fixedPolicy struct {
	policy domain.Policy
}

func (f fixedPolicy) ResolveForCourt(context.Context, *domain.Court) (domain.Policy, error) {
	return f.policy, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// monday 2025-03-10
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func mondayRule(start, end int) *domain.AvailabilityRule {
	return &domain.AvailabilityRule{ID: 1, CourtID: 5, DayOfWeek: 1, Start: types.TimeOfDay(start), End: types.TimeOfDay(end), Active: true}
}
