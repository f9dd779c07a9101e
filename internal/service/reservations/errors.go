package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservations: reservation not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("reservations: access denied")

	// ErrInvalidTransition возвращается, когда переход из текущего статуса недопустим
	ErrInvalidTransition = errors.New("reservations: invalid status transition")

	// ErrAlreadyStarted возвращается при попытке отменить начавшееся бронирование
	ErrAlreadyStarted = errors.New("reservations: reservation has already started")

	// ErrBusy возвращается, когда секцию корта не удалось получить вовремя
	ErrBusy = errors.New("reservations: court is busy, retry later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservations: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)
