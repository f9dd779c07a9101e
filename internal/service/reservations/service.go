package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/facilityservice"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-CourtBookingService/pkg/lockmanager"
	"github.com/m04kA/SMC-CourtBookingService/pkg/tracing"
	"github.com/m04kA/SMC-CourtBookingService/pkg/txmanager"
)

// Service сервис жизненного цикла бронирований: просмотр, подтверждение, отклонение, отмена
type Service struct {
	reservationRepo ReservationRepository
	facilityClient  FacilityServiceClient
	txManager       TransactionManager
	section         ExclusiveSection
	publisher       EventPublisher
	metrics         Metrics
	loc             *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	facilityClient FacilityServiceClient,
	txManager TransactionManager,
	section ExclusiveSection,
	publisher EventPublisher,
	metrics Metrics,
	loc *time.Location,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		reservationRepo: reservationRepo,
		facilityClient:  facilityClient,
		txManager:       txManager,
		section:         section,
		publisher:       publisher,
		metrics:         metrics,
		loc:             loc,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// transition описание одного перехода статуса
type transition struct {
	op      string
	to      domain.ReservationStatus
	allowed []domain.ReservationStatus
	// authorize проверяет права актора на бронирование
	authorize func(r *domain.Reservation, f *domain.Facility, actorID int64) bool
	// beforeStart переход разрешен только до начала бронирования
	beforeStart bool
	// exclusive переход выполняется в секции (корт, дата), как и создание брони
	exclusive bool
}

func ownerOnly(_ *domain.Reservation, f *domain.Facility, actorID int64) bool {
	return f.IsOwner(actorID)
}

func requesterOrOwner(r *domain.Reservation, f *domain.Facility, actorID int64) bool {
	return r.RequesterID == actorID || f.IsOwner(actorID)
}

// Get получает бронирование по ID.
// Видеть бронирование могут автор и владельцы площадки.
func (s *Service) Get(ctx context.Context, id int64, actorID int64) (*models.ReservationResponse, error) {
	s.logger.Info("Get: fetching reservation id=%d for user=%d", id, actorID)

	reservation, err := s.getReservation(ctx, "Get", id)
	if err != nil {
		return nil, err
	}

	if reservation.RequesterID != actorID {
		facility, err := s.getFacility(ctx, "Get", reservation.FacilityID)
		if err != nil {
			return nil, err
		}
		if !facility.IsOwner(actorID) {
			s.logger.Warn("Get: access denied for user=%d to reservation id=%d", actorID, id)
			return nil, ErrAccessDenied
		}
	}

	return models.FromDomainReservation(reservation, s.timeProvider.Now(), s.loc), nil
}

// ListForRequester история бронирований пользователя. Видна только ему самому.
// Опционально фильтрует по эффективному статусу и периоду.
func (s *Service) ListForRequester(ctx context.Context, req *models.ListRequesterRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListForRequester: fetching reservations for user=%d, status=%v", req.RequesterID, req.Status)

	if req.ActorID != req.RequesterID {
		s.logger.Warn("ListForRequester: access denied for user=%d to reservations of user=%d", req.ActorID, req.RequesterID)
		return nil, ErrAccessDenied
	}

	status, err := parseListParams(req.Status, req.DateFrom, req.DateTo)
	if err != nil {
		s.logger.Warn("ListForRequester: invalid params for user=%d: %v", req.RequesterID, err)
		return nil, err
	}

	list, err := s.reservationRepo.List(ctx, domain.ReservationFilter{
		RequesterID: &req.RequesterID,
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
	})
	if err != nil {
		s.logger.Error("ListForRequester: repository error for user=%d: %v", req.RequesterID, err)
		return nil, fmt.Errorf("%w: ListForRequester - repository error: %v", ErrInternal, err)
	}

	result := models.FromDomainReservationList(list, status, s.timeProvider.Now(), s.loc)
	s.logger.Info("ListForRequester: fetched %d reservations for user=%d", len(result.Reservations), req.RequesterID)
	return result, nil
}

// ListForFacility бронирования площадки, опционально по одному корту. Только владельцы площадки.
func (s *Service) ListForFacility(ctx context.Context, req *models.ListFacilityRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListForFacility: fetching reservations for facility=%d, user=%d", req.FacilityID, req.ActorID)

	status, err := parseListParams(req.Status, req.DateFrom, req.DateTo)
	if err != nil {
		s.logger.Warn("ListForFacility: invalid params for facility=%d: %v", req.FacilityID, err)
		return nil, err
	}

	facility, err := s.getFacility(ctx, "ListForFacility", req.FacilityID)
	if err != nil {
		return nil, err
	}
	if !facility.IsOwner(req.ActorID) {
		s.logger.Warn("ListForFacility: access denied for user=%d to facility=%d", req.ActorID, req.FacilityID)
		return nil, ErrAccessDenied
	}

	list, err := s.reservationRepo.List(ctx, domain.ReservationFilter{
		FacilityID: &req.FacilityID,
		CourtID:    req.CourtID,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
	})
	if err != nil {
		s.logger.Error("ListForFacility: repository error for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: ListForFacility - repository error: %v", ErrInternal, err)
	}

	result := models.FromDomainReservationList(list, status, s.timeProvider.Now(), s.loc)
	s.logger.Info("ListForFacility: fetched %d reservations for facility=%d", len(result.Reservations), req.FacilityID)
	return result, nil
}

// Accept подтверждает ожидающее бронирование. Только владелец площадки.
func (s *Service) Accept(ctx context.Context, id int64, req *models.TransitionRequest) (*models.ReservationResponse, error) {
	return s.apply(ctx, id, req, transition{
		op:        "Accept",
		to:        domain.StatusConfirmed,
		allowed:   []domain.ReservationStatus{domain.StatusPending},
		authorize: ownerOnly,
		exclusive: true,
	})
}

// Reject отклоняет ожидающее бронирование с причиной. Только владелец площадки.
func (s *Service) Reject(ctx context.Context, id int64, req *models.TransitionRequest) (*models.ReservationResponse, error) {
	return s.apply(ctx, id, req, transition{
		op:        "Reject",
		to:        domain.StatusRejected,
		allowed:   []domain.ReservationStatus{domain.StatusPending},
		authorize: ownerOnly,
	})
}

// Cancel отменяет ожидающее или подтвержденное бронирование до его начала.
// Доступно автору и владельцам площадки.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.TransitionRequest) (*models.ReservationResponse, error) {
	return s.apply(ctx, id, req, transition{
		op:          "Cancel",
		to:          domain.StatusCancelled,
		allowed:     []domain.ReservationStatus{domain.StatusPending, domain.StatusConfirmed},
		authorize:   requesterOrOwner,
		beforeStart: true,
	})
}

// SweepExpired переводит просроченные pending в expired. Для корректности не требуется.
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	now := s.timeProvider.Now()

	n, err := s.reservationRepo.ExpirePending(ctx, now)
	if err != nil {
		s.logger.Error("SweepExpired: repository error: %v", err)
		return 0, fmt.Errorf("%w: SweepExpired - repository error: %v", ErrInternal, err)
	}

	if n > 0 {
		s.logger.Info("SweepExpired: expired %d pending reservations", n)
	}
	s.metrics.Swept(n)
	return n, nil
}

func (s *Service) apply(ctx context.Context, id int64, req *models.TransitionRequest, t transition) (*models.ReservationResponse, error) {
	ctx, span := tracing.Start(ctx, "reservations."+t.op)
	defer span.End()

	s.logger.Info("%s: reservation id=%d by user=%d", t.op, id, req.ActorID)

	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	// 1. Права проверяем до транзакции: площадка бронирования не меняется
	current, err := s.getReservation(ctx, t.op, id)
	if err != nil {
		return nil, err
	}
	facility, err := s.getFacility(ctx, t.op, current.FacilityID)
	if err != nil {
		return nil, err
	}
	if !t.authorize(current, facility, req.ActorID) {
		s.logger.Warn("%s: access denied for user=%d to reservation id=%d", t.op, req.ActorID, id)
		return nil, ErrAccessDenied
	}

	// 2. Переход под блокировкой строки и с условием на текущий статус
	var (
		updated *domain.Reservation
		now     time.Time
	)
	run := func(txCtx context.Context) error {
		now = s.timeProvider.Now()
		locked, err := s.getReservation(txCtx, t.op, id)
		if err != nil {
			return err
		}

		effective := locked.EffectiveStatus(now, s.loc)
		if !containsStatus(t.allowed, effective) || !domain.CanTransition(effective, t.to) {
			s.logger.Warn("%s: reservation id=%d is %s, cannot move to %s", t.op, id, effective, t.to)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, effective, t.to)
		}
		if t.beforeStart && locked.HasStarted(now, s.loc) {
			s.logger.Warn("%s: reservation id=%d has already started", t.op, id)
			return ErrAlreadyStarted
		}

		updated, err = s.reservationRepo.UpdateStatus(txCtx, id, locked.Status, t.to, req.Reason, now)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrStatusChanged) {
				s.logger.Warn("%s: reservation id=%d changed concurrently", t.op, id)
				return fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
			}
			s.logger.Error("%s: repository error for reservation id=%d: %v", t.op, id, err)
			return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, t.op, err)
		}
		return nil
	}

	if t.exclusive {
		err = s.section.Do(ctx, lockmanager.CourtDateKey(current.CourtID, current.Date), run)
	} else {
		err = s.txManager.Do(ctx, run)
	}
	if err != nil {
		return nil, s.mapTxError(t.op, id, err)
	}

	s.metrics.Transition(string(t.to))
	s.publish(ctx, updated, req.ActorID, now)

	s.logger.Info("%s: reservation id=%d is now %s", t.op, id, updated.Status)
	return models.FromDomainReservation(updated, now, s.loc), nil
}

func (s *Service) mapTxError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, lockmanager.ErrLockTimeout), txmanager.IsSerializationFailure(err):
		s.logger.Warn("%s: court of reservation id=%d is busy: %v", op, id, err)
		return fmt.Errorf("%w: %v", ErrBusy, err)
	case errors.Is(err, ErrReservationNotFound), errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrAlreadyStarted), errors.Is(err, ErrInternal):
		return err
	default:
		s.logger.Error("%s: transaction failed for reservation id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - transaction failed: %v", ErrInternal, op, err)
	}
}

func (s *Service) publish(ctx context.Context, r *domain.Reservation, actorID int64, at time.Time) {
	eventType := events.TypeForStatus(r.Status)
	if eventType == "" {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewReservationEvent(eventType, r, actorID, at)); err != nil {
		s.logger.Warn("publish: %s for reservation id=%d failed: %v", eventType, r.ID, err)
	}
}

func (s *Service) getReservation(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}

func (s *Service) getFacility(ctx context.Context, op string, facilityID int64) (*domain.Facility, error) {
	facility, err := s.facilityClient.GetFacility(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facilityservice.ErrFacilityNotFound) {
			// площадка удалена, владельцев нет
			s.logger.Warn("%s: facility id=%d not found", op, facilityID)
			return &domain.Facility{ID: facilityID}, nil
		}
		s.logger.Error("%s: failed to get facility id=%d: %v", op, facilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}
	return facility, nil
}

func containsStatus(list []domain.ReservationStatus, status domain.ReservationStatus) bool {
	for _, s := range list {
		if s == status {
			return true
		}
	}
	return false
}

func parseListParams(status *string, from, to *time.Time) (*domain.ReservationStatus, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("%w: dateTo is before dateFrom", ErrInvalidInput)
	}
	if status == nil {
		return nil, nil
	}
	parsed, err := domain.ParseReservationStatus(*status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &parsed, nil
}
