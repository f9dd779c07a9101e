package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// Типы событий жизненного цикла бронирования
const (
	TypeReservationCreated   = "reservation.created"
	TypeReservationConfirmed = "reservation.confirmed"
	TypeReservationRejected  = "reservation.rejected"
	TypeReservationCancelled = "reservation.cancelled"
)

// ReservationEvent полезная нагрузка сообщения
type ReservationEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	ReservationID int64     `json:"reservation_id"`
	CourtID       int64     `json:"court_id"`
	FacilityID    int64     `json:"facility_id"`
	RequesterID   int64     `json:"requester_id"`
	ActorID       int64     `json:"actor_id"`
	Date          string    `json:"date"`
	Start         int       `json:"start"`
	End           int       `json:"end"`
	Status        string    `json:"status"`
	Reason        *string   `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewReservationEvent собирает событие по бронированию
func NewReservationEvent(eventType string, r *domain.Reservation, actorID int64, at time.Time) ReservationEvent {
	return ReservationEvent{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		ReservationID: r.ID,
		CourtID:       r.CourtID,
		FacilityID:    r.FacilityID,
		RequesterID:   r.RequesterID,
		ActorID:       actorID,
		Date:          r.Date.Format(domain.DateFormat),
		Start:         r.Start.Minutes(),
		End:           r.End.Minutes(),
		Status:        string(r.Status),
		Reason:        r.StatusReason,
		OccurredAt:    at.UTC(),
	}
}

// TypeForStatus тип события для перехода в статус, пустая строка если событие не публикуется
func TypeForStatus(status domain.ReservationStatus) string {
	switch status {
	case domain.StatusPending:
		return TypeReservationCreated
	case domain.StatusConfirmed:
		return TypeReservationConfirmed
	case domain.StatusRejected:
		return TypeReservationRejected
	case domain.StatusCancelled:
		return TypeReservationCancelled
	default:
		return ""
	}
}
