package policy

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("policy: court not found")

	// ErrFacilityNotFound возвращается, когда площадка не найдена
	ErrFacilityNotFound = errors.New("policy: facility not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец площадки
	ErrAccessDenied = errors.New("policy: access denied")

	// ErrInvalidInput возвращается при некорректных значениях политики
	ErrInvalidInput = errors.New("policy: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("policy: internal error")
)
