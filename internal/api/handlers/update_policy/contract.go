package update_policy

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/service/policy/models"
)

type PolicyService interface {
	Upsert(ctx context.Context, req *models.UpsertOverrideRequest) (*models.OverrideResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
