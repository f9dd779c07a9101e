package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	createReservation "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// CreateReservationRequest HTTP request model.
// Время передается в минутах от полуночи.
type CreateReservationRequest struct {
	CourtID int64  `json:"courtId" validate:"required,gt=0"`
	Date    string `json:"date" validate:"required"` // "2025-03-10"
	Start   *int   `json:"start" validate:"required,min=0,max=1439"`
	End     *int   `json:"end" validate:"required,min=0,max=1439"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID          int64   `json:"id"`
	CourtID     int64   `json:"courtId"`
	FacilityID  int64   `json:"facilityId"`
	RequesterID int64   `json:"requesterId"`
	Date        string  `json:"date"`
	Start       int     `json:"start"`
	End         int     `json:"end"`
	Status      string  `json:"status"`
	ExpiresAt   *string `json:"expiresAt,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(requesterID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		RequesterID: requesterID,
		CourtID:     r.CourtID,
		Date:        date,
		Start:       types.TimeOfDay(*r.Start),
		End:         types.TimeOfDay(*r.End),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	out := &ReservationResponse{
		ID:          resp.ID,
		CourtID:     resp.CourtID,
		FacilityID:  resp.FacilityID,
		RequesterID: resp.RequesterID,
		Date:        resp.Date.Format(domain.DateFormat),
		Start:       resp.Start.Minutes(),
		End:         resp.End.Minutes(),
		Status:      resp.Status,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
	if resp.ExpiresAt != nil {
		expiresAt := resp.ExpiresAt.Format(time.RFC3339)
		out.ExpiresAt = &expiresAt
	}
	return out
}
