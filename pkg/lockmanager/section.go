package lockmanager

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	StrategySerializable = "serializable"
	StrategyAdvisory     = "advisory"
	StrategyRedis        = "redis"
)

var (
	// ErrLockTimeout не удалось захватить блокировку за отведённое время
	ErrLockTimeout = errors.New("lockmanager: lock acquisition timed out")

	// ErrLock ошибка работы с блокировкой
	ErrLock = errors.New("lockmanager: lock error")

	// ErrUnknownStrategy в конфиге указана неизвестная стратегия
	ErrUnknownStrategy = errors.New("lockmanager: unknown lock strategy")
)

// Section эксклюзивная секция по ключу.
// fn выполняется внутри транзакции (контекст несет её через dbmetrics.WithTx) и
// не может выполняться одновременно с другим fn с тем же ключом, в том числе
// на других экземплярах сервиса.
type Section interface {
	Do(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// TransactionManager то, что нужно секциям от txmanager.Manager
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CourtDateKey ключ секции для корта и календарной даты
func CourtDateKey(courtID int64, date time.Time) string {
	return fmt.Sprintf("court:%d:%s", courtID, date.Format("2006-01-02"))
}

// SerializableSection полагается на изоляцию SERIALIZABLE: конфликтующие транзакции
// откатываются базой и повторяются менеджером транзакций
type SerializableSection struct {
	txManager TransactionManager
}

func NewSerializableSection(txManager TransactionManager) *SerializableSection {
	return &SerializableSection{txManager: txManager}
}

func (s *SerializableSection) Do(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return s.txManager.DoSerializable(ctx, fn)
}

// Observer получает длительность работы секции (метрики)
type Observer interface {
	ObserveSection(strategy string, err error, d time.Duration)
}

// ObservedSection декоратор, записывающий длительность секции
type ObservedSection struct {
	inner    Section
	strategy string
	observer Observer
}

func NewObservedSection(inner Section, strategy string, observer Observer) *ObservedSection {
	return &ObservedSection{inner: inner, strategy: strategy, observer: observer}
}

func (s *ObservedSection) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	start := time.Now()
	err := s.inner.Do(ctx, key, fn)
	s.observer.ObserveSection(s.strategy, err, time.Since(start))
	return err
}
