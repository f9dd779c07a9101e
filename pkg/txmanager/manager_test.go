package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	txs       []*fakeTx
	opts      []*sql.TxOptions
	commitErr error
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx := &fakeTx{commitErr: b.commitErr}
	b.txs = append(b.txs, tx)
	b.opts = append(b.opts, opts)
	return tx, nil
}

func TestManager_Do_CommitAndRollback(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})
	require.NoError(t, err)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].committed)
	assert.Equal(t, sql.LevelReadCommitted, db.opts[0].Isolation)

	boom := errors.New("boom")
	err = m.Do(context.Background(), func(ctx context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
	require.Len(t, db.txs, 2)
	assert.True(t, db.txs[1].rolledBack)
	assert.False(t, db.txs[1].committed)
}

func TestManager_NestedCallsJoinOuterTransaction(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Len(t, db.txs, 1)
}

func TestManager_DoSerializable_RetriesSerializationFailures(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db, WithSerializableRetries(3), WithRetryDelay(time.Millisecond))

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return fmt.Errorf("select: %w", &pq.Error{Code: "40001"})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, sql.LevelSerializable, db.opts[0].Isolation)
}

func TestManager_DoSerializable_GivesUp(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db, WithSerializableRetries(2), WithRetryDelay(time.Millisecond))

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return &pq.Error{Code: "40P01"}
	})

	assert.True(t, IsSerializationFailure(err))
	assert.Equal(t, 2, attempts)
}

func TestManager_DoSerializable_DoesNotRetryOtherErrors(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db, WithRetryDelay(time.Millisecond))

	conflict := errors.New("slot conflict")
	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return conflict
	})

	assert.ErrorIs(t, err, conflict)
	assert.Equal(t, 1, attempts)
}

func TestManager_CommitFailureIsRetried(t *testing.T) {
	db := &fakeBeginner{commitErr: &pq.Error{Code: "40001"}}
	m := NewTransactionManager(db, WithSerializableRetries(2), WithRetryDelay(time.Millisecond))

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrCommitTx)
	assert.Len(t, db.txs, 2)
}
