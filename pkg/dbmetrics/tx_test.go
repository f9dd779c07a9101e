package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

type fakeDB struct {
	DBExecutor
}

func TestGetExecutor(t *testing.T) {
	db := &fakeDB{}
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	tx := &fakeTx{}
	txCtx := WithTx(ctx, tx)

	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("SELECT id FROM reservations"))
	assert.Equal(t, "update", operation("\n  UPDATE reservations SET status = $1"))
	assert.Equal(t, "unknown", operation("  "))
}

var _ DBExecutor = (*sql.DB)(nil)
var _ DBExecutor = (*sql.Tx)(nil)
var _ TxExecutor = (*sql.Tx)(nil)
var _ TxExecutor = (*SqlTxWrapper)(nil)
