package facilityservice

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не существует
	ErrCourtNotFound = errors.New("facilityservice client: court not found")

	// ErrFacilityNotFound возвращается, когда площадка не существует
	ErrFacilityNotFound = errors.New("facilityservice client: facility not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("facilityservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("facilityservice client: invalid response")
)
