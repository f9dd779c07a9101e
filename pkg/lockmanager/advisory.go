package lockmanager

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
)

const advisoryLockQuery = "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))"

// AdvisorySection открывает READ COMMITTED транзакцию и первым делом берет
// транзакционную advisory-блокировку PostgreSQL по хешу ключа.
// Блокировка снимается автоматически при commit/rollback.
type AdvisorySection struct {
	txManager TransactionManager
	db        dbmetrics.DBExecutor
}

func NewAdvisorySection(txManager TransactionManager, db dbmetrics.DBExecutor) *AdvisorySection {
	return &AdvisorySection{txManager: txManager, db: db}
}

func (s *AdvisorySection) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		executor := dbmetrics.GetExecutor(txCtx, s.db)
		if _, err := executor.ExecContext(txCtx, advisoryLockQuery, key); err != nil {
			return fmt.Errorf("%w: advisory lock %s: %w", ErrLock, key, err)
		}
		return fn(txCtx)
	})
}
