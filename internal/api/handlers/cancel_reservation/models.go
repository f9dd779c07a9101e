package cancel_reservation

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/service/reservations/models"
)

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelReservationRequest) ToServiceRequest(actorID int64) *models.TransitionRequest {
	return &models.TransitionRequest{
		ActorID: actorID,
		Reason:  r.Reason,
	}
}
