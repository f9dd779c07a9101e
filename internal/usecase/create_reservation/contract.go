package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// FacilityServiceClient интерфейс клиента FacilityService
type FacilityServiceClient interface {
	GetCourt(ctx context.Context, courtID int64) (*domain.Court, error)
}

// PolicyResolver интерфейс резолвера политики корта
type PolicyResolver interface {
	ResolveForCourt(ctx context.Context, court *domain.Court) (domain.Policy, error)
}

// BaseGenerator интерфейс генератора базовой доступности
type BaseGenerator interface {
	GenerateBase(ctx context.Context, courtID int64, date time.Time) ([]types.Interval, error)
}

// AvailabilityFilter интерфейс фильтра доступности
type AvailabilityFilter interface {
	Filter(
		ctx context.Context,
		base []types.Interval,
		court *domain.Court,
		date time.Time,
		policy domain.Policy,
		now time.Time,
		opts domain.FilterOptions,
	) (*domain.FreeAvailability, error)
}

// ExclusiveSection интерфейс эксклюзивной секции по ключу (корт, дата).
// fn выполняется внутри транзакции, ctx которой передается в fn.
type ExclusiveSection interface {
	Do(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий жизненного цикла
type EventPublisher interface {
	Publish(ctx context.Context, event events.ReservationEvent) error
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	ReservationCreated()
	SlotConflict()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
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
