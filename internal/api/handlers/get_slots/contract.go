package get_slots

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetSlots(ctx context.Context, req domain.SlotsRequest) (*models.SlotsResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
