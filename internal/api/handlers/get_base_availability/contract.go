package get_base_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetBaseAvailability(ctx context.Context, courtID int64, date time.Time) (*models.BaseAvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
