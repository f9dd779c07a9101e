package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/metrics"
)

// SqlTxWrapper обёртка над *sql.Tx с записью метрик
type SqlTxWrapper struct {
	tx      *sql.Tx
	metrics *metrics.Metrics
}

// WrapTx оборачивает уже открытую транзакцию
func WrapTx(tx *sql.Tx, m *metrics.Metrics) *SqlTxWrapper {
	return &SqlTxWrapper{tx: tx, metrics: m}
}

func (w *SqlTxWrapper) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := w.tx.ExecContext(ctx, query, args...)
	w.observe(operation(query), err, start)
	return res, err
}

func (w *SqlTxWrapper) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := w.tx.QueryContext(ctx, query, args...)
	w.observe(operation(query), err, start)
	return rows, err
}

func (w *SqlTxWrapper) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := w.tx.QueryRowContext(ctx, query, args...)
	w.observe(operation(query), row.Err(), start)
	return row
}

func (w *SqlTxWrapper) Commit() error {
	start := time.Now()
	err := w.tx.Commit()
	w.observe("commit", err, start)
	return err
}

func (w *SqlTxWrapper) Rollback() error {
	start := time.Now()
	err := w.tx.Rollback()
	if err == sql.ErrTxDone {
		return err
	}
	w.observe("rollback", err, start)
	return err
}

func (w *SqlTxWrapper) observe(op string, err error, start time.Time) {
	if w.metrics == nil {
		return
	}
	w.metrics.ObserveQuery(op, err, time.Since(start))
}

type txKey struct{}

// WithTx кладет транзакцию в контекст
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext достает транзакцию из контекста
func TxFromContext(ctx context.Context) (TxExecutor, bool) {
	tx, ok := ctx.Value(txKey{}).(TxExecutor)
	return tx, ok && tx != nil
}

// IsInTransaction сообщает, выполняется ли вызов внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	_, ok := TxFromContext(ctx)
	return ok
}

// GetExecutor возвращает транзакцию из контекста или fallback, если транзакции нет
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return fallback
}
