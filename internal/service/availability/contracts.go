package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	GetActiveByCourtAndDay(ctx context.Context, courtID int64, dayOfWeek int) ([]*domain.AvailabilityRule, error)
}

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	GetForCourtOnDate(ctx context.Context, facilityID, courtID int64, date time.Time) ([]*domain.Block, error)
}

// ReservationRepository интерфейс чтения бронирований, которые могут занимать окно
type ReservationRepository interface {
	ListObstructing(ctx context.Context, courtID int64, date time.Time, now time.Time) ([]*domain.Reservation, error)
}

// FacilityServiceClient интерфейс клиента FacilityService
type FacilityServiceClient interface {
	GetCourt(ctx context.Context, courtID int64) (*domain.Court, error)
}

// PolicyResolver интерфейс резолвера политики
type PolicyResolver interface {
	ResolveForCourt(ctx context.Context, court *domain.Court) (domain.Policy, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
