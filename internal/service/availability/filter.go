package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Filter вычитает блокировки и активные бронирования из базовой доступности
type Filter struct {
	blockRepo       BlockRepository
	reservationRepo ReservationRepository
	loc             *time.Location
}

// NewFilter создает фильтр доступности. loc - часовой пояс площадок.
func NewFilter(blockRepo BlockRepository, reservationRepo ReservationRepository, loc *time.Location) *Filter {
	if loc == nil {
		loc = time.UTC
	}
	return &Filter{
		blockRepo:       blockRepo,
		reservationRepo: reservationRepo,
		loc:             loc,
	}
}

// Filter возвращает свободные интервалы корта на дату.
// Внутри транзакции репозитории читают строки FOR UPDATE, поэтому тот же вызов
// используется и для чтения, и для проверки при создании бронирования.
func (f *Filter) Filter(
	ctx context.Context,
	base []types.Interval,
	court *domain.Court,
	date time.Time,
	policy domain.Policy,
	now time.Time,
	opts domain.FilterOptions,
) (*domain.FreeAvailability, error) {
	blocks, err := f.blockRepo.GetForCourtOnDate(ctx, court.FacilityID, court.ID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: Filter - get blocks: %v", ErrInternal, err)
	}

	reservations, err := f.reservationRepo.ListObstructing(ctx, court.ID, date, now)
	if err != nil {
		return nil, fmt.Errorf("%w: Filter - get reservations: %v", ErrInternal, err)
	}

	// 1. Блокировки, совпавшие с датой
	obstacles := make([]types.Span, 0, len(blocks)+len(reservations))
	blocked := make([]domain.BlockedInterval, 0, len(blocks))
	for _, b := range blocks {
		if !b.MatchesDate(date) {
			continue
		}
		if b.Scope == domain.BlockScopeCourt && (b.CourtID == nil || *b.CourtID != court.ID) {
			continue
		}
		obstacles = append(obstacles, b.Span())
		blocked = append(blocked, domain.BlockedInterval{
			BlockID:  b.ID,
			Scope:    b.Scope,
			Type:     b.Type,
			Interval: b.Interval(),
			Reason:   b.Reason,
		})
	}

	// 2. Активные бронирования с буфером с обеих сторон
	active := make([]*domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if !r.IsActive(now, f.loc) {
			continue
		}
		active = append(active, r)
		obstacles = append(obstacles, r.Interval().Span().Widen(policy.BufferMinutes))
	}

	// 3-5. Вычитание из объединения базовых интервалов
	spans := types.SubtractSpans(BaseSpans(base), obstacles)
	free, overnight := types.ClockIntervals(spans)

	result := &domain.FreeAvailability{
		Free:      free,
		Overnight: overnight,
		Spans:     spans,
		Blocks:    blocked,
	}
	if opts.IncludeReservations {
		result.Reservations = active
	}

	return result, nil
}
