package create_reservation

import "errors"

// Ошибки валидации
var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInvalidTimeRange возвращается, когда начало не раньше конца
	ErrInvalidTimeRange = errors.New("create_reservation: start must be before end")

	// ErrMisaligned возвращается, когда время не кратно шагу сетки
	ErrMisaligned = errors.New("create_reservation: time is not aligned to the slot grid")

	// ErrDateInPast возвращается для прошедшей даты или уже наступившего времени начала
	ErrDateInPast = errors.New("create_reservation: reservation start is in the past")

	// ErrOutsideAvailability возвращается, когда интервал выходит за часы работы корта
	ErrOutsideAvailability = errors.New("create_reservation: interval is outside court availability")
)

// Нарушения политики
var (
	// ErrDurationTooShort возвращается, когда длительность меньше minDurationMinutes
	ErrDurationTooShort = errors.New("create_reservation: duration is shorter than allowed")

	// ErrDurationTooLong возвращается, когда длительность больше maxDurationMinutes
	ErrDurationTooLong = errors.New("create_reservation: duration is longer than allowed")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение maxAdvanceDays
	ErrDateTooFarInFuture = errors.New("create_reservation: date is too far in the future")
)

var (
	// ErrSlotConflict возвращается, когда интервал уже занят
	ErrSlotConflict = errors.New("create_reservation: interval is not free")

	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("create_reservation: court not found")

	// ErrBusy возвращается, когда секция не захвачена за отведенное время или транзакция не прошла сериализацию
	ErrBusy = errors.New("create_reservation: court is busy, retry later")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
