package domain

import "errors"

var (
	// ErrInvalidStatus неизвестная строка статуса бронирования
	ErrInvalidStatus = errors.New("domain: invalid reservation status")

	// ErrInvalidRule правило доступности заполнено некорректно
	ErrInvalidRule = errors.New("domain: invalid availability rule")

	// ErrInvalidBlock блокировка заполнена некорректно для своего типа
	ErrInvalidBlock = errors.New("domain: invalid block")

	// ErrInvalidPolicy значения политики вне допустимых границ
	ErrInvalidPolicy = errors.New("domain: invalid policy")
)
