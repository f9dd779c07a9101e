package lockmanager

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
)

type fakeTxManager struct {
	doCalls           int
	serializableCalls int
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.doCalls++
	return fn(dbmetrics.WithTx(ctx, &recordingExecutor{}))
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.serializableCalls++
	return fn(ctx)
}

type recordingExecutor struct {
	dbmetrics.DBExecutor
	mu      sync.Mutex
	queries []string
	args    [][]interface{}
}

func (e *recordingExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.queries = append(e.queries, query)
	e.args = append(e.args, args)
	return nil, nil
}

func (e *recordingExecutor) Commit() error   { return nil }
func (e *recordingExecutor) Rollback() error { return nil }

func TestCourtDateKey(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "court:42:2025-03-10", CourtDateKey(42, date))
}

func TestAdvisorySection_TakesLockInsideTransaction(t *testing.T) {
	var tx *recordingExecutor
	txm := &txManagerWithExecutor{}
	section := NewAdvisorySection(txm, nil)

	called := false
	err := section.Do(context.Background(), "court:1:2025-03-10", func(ctx context.Context) error {
		called = true
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)

	tx = txm.tx
	require.Len(t, tx.queries, 1)
	assert.Equal(t, advisoryLockQuery, tx.queries[0])
	assert.Equal(t, []interface{}{"court:1:2025-03-10"}, tx.args[0])
}

type txManagerWithExecutor struct {
	tx *recordingExecutor
}

func (m *txManagerWithExecutor) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.tx = &recordingExecutor{}
	return fn(dbmetrics.WithTx(ctx, m.tx))
}

func (m *txManagerWithExecutor) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

func TestSerializableSection_Delegates(t *testing.T) {
	txm := &fakeTxManager{}
	section := NewSerializableSection(txm)

	err := section.Do(context.Background(), "k", func(ctx context.Context) error { return nil })

	require.NoError(t, err)
	assert.Equal(t, 1, txm.serializableCalls)
	assert.Equal(t, 0, txm.doCalls)
}

type fakeRedis struct {
	redis.Scripter
	mu   sync.Mutex
	keys map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{keys: make(map[string]string)}
}

func (r *fakeRedis) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.keys[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	r.keys[key] = value.(string)
	return redis.NewBoolResult(true, nil)
}

func (r *fakeRedis) EvalSha(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.keys[keys[0]] == args[0] {
		delete(r.keys, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}

func TestRedisSection_SerializesSameKey(t *testing.T) {
	client := newFakeRedis()
	section := NewRedisSection(client, &txManagerWithExecutor{}, WithPollInterval(time.Millisecond))

	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
		wg      sync.WaitGroup
	)

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := section.Do(context.Background(), "court:1:2025-03-10", func(ctx context.Context) error {
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()

				time.Sleep(2 * time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, client.keys)
}

func TestRedisSection_Timeout(t *testing.T) {
	client := newFakeRedis()
	client.keys[redisKeyPrefix+"busy"] = "someone-else"

	section := NewRedisSection(client, &txManagerWithExecutor{},
		WithPollInterval(time.Millisecond), WithWaitTimeout(10*time.Millisecond))

	err := section.Do(context.Background(), "busy", func(ctx context.Context) error {
		t.Fatal("must not enter the section")
		return nil
	})

	assert.ErrorIs(t, err, ErrLockTimeout)
	assert.Equal(t, "someone-else", client.keys[redisKeyPrefix+"busy"])
}

func TestRedisSection_ReleasesOnError(t *testing.T) {
	client := newFakeRedis()
	section := NewRedisSection(client, &txManagerWithExecutor{})

	boom := errors.New("boom")
	err := section.Do(context.Background(), "k", func(ctx context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, client.keys)
}

func TestNew(t *testing.T) {
	txm := &fakeTxManager{}

	s, err := New(StrategySerializable, txm, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &SerializableSection{}, s)

	s, err = New("", txm, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &AdvisorySection{}, s)

	_, err = New(StrategyRedis, txm, nil, nil)
	assert.ErrorIs(t, err, ErrUnknownStrategy)

	_, err = New("mutex", txm, nil, nil)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}
