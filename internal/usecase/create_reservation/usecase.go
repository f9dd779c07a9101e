package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/facilityservice"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/availability"
	"github.com/m04kA/SMC-CourtBookingService/pkg/lockmanager"
	"github.com/m04kA/SMC-CourtBookingService/pkg/tracing"
	"github.com/m04kA/SMC-CourtBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	facilityClient  FacilityServiceClient
	policyResolver  PolicyResolver
	generator       BaseGenerator
	filter          AvailabilityFilter
	section         ExclusiveSection
	publisher       EventPublisher
	metrics         Metrics
	granularity     int
	loc             *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	facilityClient FacilityServiceClient,
	policyResolver PolicyResolver,
	generator BaseGenerator,
	filter AvailabilityFilter,
	section ExclusiveSection,
	publisher EventPublisher,
	metrics Metrics,
	granularity int,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if granularity <= 0 {
		granularity = domain.DefaultGranularityMinutes
	}
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		facilityClient:  facilityClient,
		policyResolver:  policyResolver,
		generator:       generator,
		filter:          filter,
		section:         section,
		publisher:       publisher,
		metrics:         metrics,
		granularity:     granularity,
		loc:             loc,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
// Проверка свободного интервала и вставка выполняются в эксклюзивной секции по (корт, дата),
// поэтому два пересекающихся запроса не могут оба завершиться успешно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracing.Start(ctx, "create_reservation.Execute")
	defer span.End()

	uc.logger.Info("CreateReservation: user=%d, court=%d, date=%s, interval=%s-%s",
		req.RequesterID, req.CourtID, req.Date.Format(domain.DateFormat), req.Start, req.End)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.granularity); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := domain.DateOnly(req.Date)

	// 2. Корт и его политика
	court, err := uc.facilityClient.GetCourt(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, facilityservice.ErrCourtNotFound) {
			uc.logger.Warn("CreateReservation: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("CreateReservation: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	policy, err := uc.policyResolver.ResolveForCourt(ctx, court)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to resolve policy for court id=%d: %v", court.ID, err)
		return nil, fmt.Errorf("%w: failed to resolve policy: %v", ErrInternal, err)
	}

	// 3. Ограничения политики: длительность и горизонт бронирования
	if err := validatePolicy(req, policy, now, uc.loc); err != nil {
		uc.logger.Warn("CreateReservation: policy check failed for court id=%d: %v", court.ID, err)
		return nil, err
	}

	// 4. Интервал должен лежать внутри часов работы корта
	requested := types.Interval{Start: req.Start, End: req.End}.Span()

	var base []types.Interval
	if court.Active {
		base, err = uc.generator.GenerateBase(ctx, court.ID, date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to generate base availability: %v", err)
			return nil, fmt.Errorf("%w: failed to generate base availability: %v", ErrInternal, err)
		}
	}
	if !containedIn(requested, availability.BaseSpans(base)) {
		uc.logger.Warn("CreateReservation: %s is outside availability of court id=%d on %s",
			types.Interval{Start: req.Start, End: req.End}, court.ID, date.Format(domain.DateFormat))
		return nil, ErrOutsideAvailability
	}

	// 5. Проверка свободного интервала и вставка в эксклюзивной секции
	var created *domain.Reservation
	key := lockmanager.CourtDateKey(court.ID, date)
	err = uc.section.Do(ctx, key, func(txCtx context.Context) error {
		free, err := uc.filter.Filter(txCtx, base, court, date, policy, now, domain.FilterOptions{})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to filter availability: %v", err)
			return fmt.Errorf("%w: failed to filter availability: %w", ErrInternal, err)
		}

		if !containedIn(requested, free.Spans) {
			uc.metrics.SlotConflict()
			uc.logger.Warn("CreateReservation: %s on %s is not free for court id=%d",
				types.Interval{Start: req.Start, End: req.End}, date.Format(domain.DateFormat), court.ID)
			return ErrSlotConflict
		}

		expiresAt := now.Add(policy.PendingExpiration())
		created, err = uc.reservationRepo.Create(txCtx, &domain.Reservation{
			CourtID:     court.ID,
			FacilityID:  court.FacilityID,
			RequesterID: req.RequesterID,
			Date:        date,
			Start:       req.Start,
			End:         req.End,
			Status:      domain.StatusPending,
			ExpiresAt:   &expiresAt,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, uc.mapSectionError(err)
	}

	// 6. После коммита: метрики и событие
	uc.metrics.ReservationCreated()
	event := events.NewReservationEvent(events.TypeReservationCreated, created, req.RequesterID, now)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateReservation: publish %s for reservation id=%d failed: %v", event.EventType, created.ID, err)
	}

	uc.logger.Info("CreateReservation: reservation id=%d created, pending until %s",
		created.ID, created.ExpiresAt.Format(time.RFC3339))

	return toResponse(created), nil
}

func (uc *UseCase) mapSectionError(err error) error {
	// внутри секции ошибки обернуты через %w, иначе txmanager не распознает конфликт сериализации
	switch {
	case errors.Is(err, lockmanager.ErrLockTimeout), txmanager.IsSerializationFailure(err):
		uc.logger.Warn("CreateReservation: court is busy: %v", err)
		return fmt.Errorf("%w: %v", ErrBusy, err)
	case errors.Is(err, ErrSlotConflict), errors.Is(err, ErrInternal):
		return err
	default:
		uc.logger.Error("CreateReservation: exclusive section failed: %v", err)
		return fmt.Errorf("%w: exclusive section failed: %v", ErrInternal, err)
	}
}

func toResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:          r.ID,
		CourtID:     r.CourtID,
		FacilityID:  r.FacilityID,
		RequesterID: r.RequesterID,
		Date:        r.Date,
		Start:       r.Start,
		End:         r.End,
		Status:      string(r.Status),
		ExpiresAt:   r.ExpiresAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
