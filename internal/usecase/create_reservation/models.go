package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	RequesterID int64           // ID пользователя
	CourtID     int64           // ID корта
	Date        time.Time       // Дата бронирования (без времени)
	Start       types.TimeOfDay // Начало, минуты от полуночи
	End         types.TimeOfDay // Конец, минуты от полуночи
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	CourtID     int64
	FacilityID  int64
	RequesterID int64
	Date        time.Time
	Start       types.TimeOfDay
	End         types.TimeOfDay
	Status      string
	ExpiresAt   *time.Time // до какого момента бронирование ждет подтверждения
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
