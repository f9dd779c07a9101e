package policy

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// PolicyRepository интерфейс репозитория переопределений политики
type PolicyRepository interface {
	GetOverrides(ctx context.Context, facilityID, courtID int64) (court *domain.PolicyOverride, facility *domain.PolicyOverride, err error)
	Upsert(ctx context.Context, override *domain.PolicyOverride) (*domain.PolicyOverride, error)
}

// FacilityServiceClient интерфейс клиента FacilityService
type FacilityServiceClient interface {
	GetCourt(ctx context.Context, courtID int64) (*domain.Court, error)
	GetFacility(ctx context.Context, facilityID int64) (*domain.Facility, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
