package models

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// TransitionRequest запрос на смену статуса бронирования
type TransitionRequest struct {
	ActorID int64
	Reason  *string
}

// ReservationResponse бронирование с эффективным статусом на момент чтения
type ReservationResponse struct {
	ID          int64      `json:"id"`
	CourtID     int64      `json:"courtId"`
	FacilityID  int64      `json:"facilityId"`
	RequesterID int64      `json:"requesterId"`
	Date        string     `json:"date"`
	Start       int        `json:"start"`
	End         int        `json:"end"`
	Status      string     `json:"status"`
	Reason      *string    `json:"reason,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation, now time.Time, loc *time.Location) *ReservationResponse {
	if r == nil {
		return nil
	}

	status := r.EffectiveStatus(now, loc)
	resp := &ReservationResponse{
		ID:          r.ID,
		CourtID:     r.CourtID,
		FacilityID:  r.FacilityID,
		RequesterID: r.RequesterID,
		Date:        r.Date.Format(domain.DateFormat),
		Start:       r.Start.Minutes(),
		End:         r.End.Minutes(),
		Status:      string(status),
		Reason:      r.StatusReason,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if status == domain.StatusPending {
		resp.ExpiresAt = r.ExpiresAt
	}

	return resp
}

// ListRequesterRequest запрос истории бронирований пользователя
type ListRequesterRequest struct {
	ActorID     int64
	RequesterID int64
	Status      *string
	DateFrom    *time.Time
	DateTo      *time.Time
}

// ListFacilityRequest запрос бронирований площадки (для владельцев)
type ListFacilityRequest struct {
	ActorID    int64
	FacilityID int64
	CourtID    *int64
	Status     *string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
}

// FromDomainReservationList конвертирует список, оставляя только записи с нужным эффективным статусом
func FromDomainReservationList(list []*domain.Reservation, status *domain.ReservationStatus, now time.Time, loc *time.Location) *ReservationListResponse {
	resp := &ReservationListResponse{Reservations: make([]*ReservationResponse, 0, len(list))}
	for _, r := range list {
		if status != nil && r.EffectiveStatus(now, loc) != *status {
			continue
		}
		resp.Reservations = append(resp.Reservations, FromDomainReservation(r, now, loc))
	}
	return resp
}
