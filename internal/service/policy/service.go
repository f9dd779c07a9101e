package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/facilityservice"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/policy/models"
)

// Service резолвер политики бронирования: корт -> площадка -> системные значения
type Service struct {
	policyRepo     PolicyRepository
	facilityClient FacilityServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса политик
func NewService(policyRepo PolicyRepository, facilityClient FacilityServiceClient, logger Logger) *Service {
	return &Service{
		policyRepo:     policyRepo,
		facilityClient: facilityClient,
		logger:         logger,
	}
}

// Resolve возвращает эффективную политику корта.
// NotFound только если корт не существует, отсутствие переопределений не ошибка.
func (s *Service) Resolve(ctx context.Context, courtID int64) (domain.Policy, error) {
	court, err := s.getCourt(ctx, "Resolve", courtID)
	if err != nil {
		return domain.Policy{}, err
	}
	return s.ResolveForCourt(ctx, court)
}

// ResolveForCourt то же, что Resolve, для уже загруженного корта
func (s *Service) ResolveForCourt(ctx context.Context, court *domain.Court) (domain.Policy, error) {
	courtOverride, facilityOverride, err := s.policyRepo.GetOverrides(ctx, court.FacilityID, court.ID)
	if err != nil {
		s.logger.Error("ResolveForCourt: repository error for court=%d: %v", court.ID, err)
		return domain.Policy{}, fmt.Errorf("%w: ResolveForCourt - repository error: %v", ErrInternal, err)
	}

	return domain.ResolvePolicy(courtOverride, facilityOverride), nil
}

// GetEffective эффективная политика корта для отображения
func (s *Service) GetEffective(ctx context.Context, courtID int64) (*models.PolicyResponse, error) {
	s.logger.Info("GetEffective: fetching policy for court=%d", courtID)

	court, err := s.getCourt(ctx, "GetEffective", courtID)
	if err != nil {
		return nil, err
	}

	policy, err := s.ResolveForCourt(ctx, court)
	if err != nil {
		return nil, err
	}

	return models.FromDomainPolicy(court, policy), nil
}

// Upsert сохраняет переопределение уровня площадки или корта.
// Доступно только владельцам площадки. Итоговая политика после изменения должна быть валидной.
func (s *Service) Upsert(ctx context.Context, req *models.UpsertOverrideRequest) (*models.OverrideResponse, error) {
	s.logger.Info("Upsert: saving policy override facility=%d court=%v by user=%d", req.FacilityID, req.CourtID, req.UserID)

	// 1. Для уровня корта площадку берем из самого корта
	if req.CourtID != nil {
		court, err := s.getCourt(ctx, "Upsert", *req.CourtID)
		if err != nil {
			return nil, err
		}
		req.FacilityID = court.FacilityID
	}

	// 2. Права доступа
	facility, err := s.facilityClient.GetFacility(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityservice.ErrFacilityNotFound) {
			s.logger.Warn("Upsert: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("Upsert: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}
	if !facility.IsOwner(req.UserID) {
		s.logger.Warn("Upsert: user=%d is not an owner of facility=%d", req.UserID, req.FacilityID)
		return nil, ErrAccessDenied
	}

	// 3. Проверяем политику, которая получится после изменения
	override := req.ToDomainOverride()
	if err := s.validateMerged(ctx, override); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	// 4. Сохраняем
	saved, err := s.policyRepo.Upsert(ctx, override)
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: saved policy override id=%d scope=%s", saved.ID, saved.Scope)
	return models.FromDomainOverride(saved), nil
}

func (s *Service) validateMerged(ctx context.Context, override *domain.PolicyOverride) error {
	for _, v := range []*int{
		override.MaxAdvanceDays,
		override.MinDurationMinutes,
		override.MaxDurationMinutes,
		override.BufferMinutes,
		override.PendingExpirationHours,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%w: values must not be negative", ErrInvalidInput)
		}
	}

	var merged domain.Policy
	if override.Scope == domain.PolicyScopeCourt {
		_, facilityOverride, err := s.policyRepo.GetOverrides(ctx, override.FacilityID, *override.CourtID)
		if err != nil {
			return fmt.Errorf("%w: validateMerged - repository error: %v", ErrInternal, err)
		}
		merged = domain.ResolvePolicy(override, facilityOverride)
	} else {
		// переопределения кортов проверяются при их сохранении
		merged = domain.ResolvePolicy(nil, override)
	}

	if err := merged.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
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
