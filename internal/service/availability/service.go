package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/facilityservice"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/availability/models"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Service сервис чтения доступности кортов. Работает без блокировок.
type Service struct {
	generator      *Generator
	filter         *Filter
	facilityClient FacilityServiceClient
	policyResolver PolicyResolver
	granularity    int
	loc            *time.Location
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	generator *Generator,
	filter *Filter,
	facilityClient FacilityServiceClient,
	policyResolver PolicyResolver,
	granularity int,
	loc *time.Location,
	logger Logger,
) *Service {
	if granularity <= 0 {
		granularity = domain.DefaultGranularityMinutes
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		generator:      generator,
		filter:         filter,
		facilityClient: facilityClient,
		policyResolver: policyResolver,
		granularity:    granularity,
		loc:            loc,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetBaseAvailability интервалы работы корта на дату до вычитания блокировок и бронирований
func (s *Service) GetBaseAvailability(ctx context.Context, courtID int64, date time.Time) (*models.BaseAvailabilityResponse, error) {
	s.logger.Info("GetBaseAvailability: court=%d, date=%s", courtID, date.Format(domain.DateFormat))

	if err := validateCourtDate(courtID, date); err != nil {
		s.logger.Warn("GetBaseAvailability: validation failed: %v", err)
		return nil, err
	}

	court, err := s.getCourt(ctx, "GetBaseAvailability", courtID)
	if err != nil {
		return nil, err
	}

	base, err := s.base(ctx, court, date)
	if err != nil {
		s.logger.Error("GetBaseAvailability: %v", err)
		return nil, err
	}

	return &models.BaseAvailabilityResponse{
		CourtID:   courtID,
		Date:      date.Format(domain.DateFormat),
		Intervals: models.FromIntervals(base),
	}, nil
}

// GetFreeAvailability свободные интервалы корта на дату
func (s *Service) GetFreeAvailability(ctx context.Context, courtID int64, date time.Time, includeReservations bool) (*models.FreeAvailabilityResponse, error) {
	s.logger.Info("GetFreeAvailability: court=%d, date=%s, includeReservations=%t",
		courtID, date.Format(domain.DateFormat), includeReservations)

	if err := validateCourtDate(courtID, date); err != nil {
		s.logger.Warn("GetFreeAvailability: validation failed: %v", err)
		return nil, err
	}

	now := s.timeProvider.Now()
	free, err := s.free(ctx, "GetFreeAvailability", courtID, date, now, domain.FilterOptions{IncludeReservations: includeReservations})
	if err != nil {
		return nil, err
	}

	return models.FromFreeAvailability(courtID, date, free, now, s.loc), nil
}

// GetSlots слоты заданных длительностей внутри свободных интервалов.
// Для сегодняшней даты слоты, начало которых уже прошло, отбрасываются.
func (s *Service) GetSlots(ctx context.Context, req domain.SlotsRequest) (*models.SlotsResult, error) {
	s.logger.Info("GetSlots: court=%d, date=%s, durations=%v", req.CourtID, req.Date.Format(domain.DateFormat), req.Durations)

	if err := validateSlotsRequest(req); err != nil {
		s.logger.Warn("GetSlots: validation failed: %v", err)
		return nil, err
	}
	durations := uniqueDurations(req.Durations)

	now := s.timeProvider.Now()
	result := &models.SlotsResult{
		CourtID:    req.CourtID,
		Date:       req.Date,
		Durations:  durations,
		ByDuration: make(map[int][]models.IntervalResponse, len(durations)),
	}

	free, err := s.free(ctx, "GetSlots", req.CourtID, req.Date, now, domain.FilterOptions{})
	if err != nil {
		return nil, err
	}

	today := domain.DateOnly(now.In(s.loc))
	day := domain.DateOnly(req.Date)

	for d, slots := range ComposeMultiple(free.Spans, durations, s.granularity) {
		switch {
		case day.Before(today):
			slots = []types.Interval{}
		case day.Equal(today):
			slots = dropStarted(slots, types.TimeOfDayFromTime(now.In(s.loc)))
		}
		result.ByDuration[d] = models.FromIntervals(slots)
	}

	s.logger.Info("GetSlots: court=%d, date=%s, %d free intervals", req.CourtID, req.Date.Format(domain.DateFormat), len(free.Free))
	return result, nil
}

func (s *Service) free(ctx context.Context, op string, courtID int64, date, now time.Time, opts domain.FilterOptions) (*domain.FreeAvailability, error) {
	court, err := s.getCourt(ctx, op, courtID)
	if err != nil {
		return nil, err
	}

	policy, err := s.policyResolver.ResolveForCourt(ctx, court)
	if err != nil {
		s.logger.Error("%s: failed to resolve policy for court=%d: %v", op, courtID, err)
		return nil, fmt.Errorf("%w: failed to resolve policy: %v", ErrInternal, err)
	}

	base, err := s.base(ctx, court, date)
	if err != nil {
		s.logger.Error("%s: %v", op, err)
		return nil, err
	}

	free, err := s.filter.Filter(ctx, base, court, date, policy, now, opts)
	if err != nil {
		s.logger.Error("%s: %v", op, err)
		return nil, err
	}

	return free, nil
}

func (s *Service) base(ctx context.Context, court *domain.Court, date time.Time) ([]types.Interval, error) {
	if !court.Active {
		return []types.Interval{}, nil
	}
	return s.generator.GenerateBase(ctx, court.ID, date)
}

func (s *Service) getCourt(ctx context.Context, op string, courtID int64) (*domain.Court, error) {
	court, err := s.facilityClient.GetCourt(ctx, courtID)
	if err != nil {
		if errors.Is(err, facilityservice.ErrCourtNotFound) {
			s.logger.Warn("%s: court id=%d not found", op, courtID)
			return nil, ErrCourtNotFound
		}
		s.logger.Error("%s: failed to get court id=%d: %v", op, courtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}
	return court, nil
}

func validateCourtDate(courtID int64, date time.Time) error {
	if courtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

func validateSlotsRequest(req domain.SlotsRequest) error {
	if err := validateCourtDate(req.CourtID, req.Date); err != nil {
		return err
	}
	if len(req.Durations) == 0 {
		return fmt.Errorf("%w: at least one duration is required", ErrInvalidInput)
	}
	if len(req.Durations) > domain.MaxRequestedSlotDurations {
		return fmt.Errorf("%w: at most %d durations per request", ErrInvalidInput, domain.MaxRequestedSlotDurations)
	}
	for _, d := range req.Durations {
		if d <= 0 || d > types.MinutesPerDay {
			return fmt.Errorf("%w: duration must be in 1..%d, got %d", ErrInvalidInput, types.MinutesPerDay, d)
		}
	}
	return nil
}

func uniqueDurations(durations []int) []int {
	seen := make(map[int]struct{}, len(durations))
	out := make([]int, 0, len(durations))
	for _, d := range durations {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

func dropStarted(slots []types.Interval, now types.TimeOfDay) []types.Interval {
	out := make([]types.Interval, 0, len(slots))
	for _, slot := range slots {
		if slot.Start > now {
			out = append(out, slot)
		}
	}
	return out
}
