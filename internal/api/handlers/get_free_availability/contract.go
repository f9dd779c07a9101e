package get_free_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetFreeAvailability(ctx context.Context, courtID int64, date time.Time, includeReservations bool) (*models.FreeAvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
