package lockmanager

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultRedisLockTTL      = 10 * time.Second
	DefaultRedisWaitTimeout  = 5 * time.Second
	DefaultRedisPollInterval = 25 * time.Millisecond

	redisKeyPrefix = "court-booking:lock:"
)

// releaseScript удаляет ключ только если он все еще принадлежит нашему токену
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisClient часть go-redis клиента, нужная для блокировки
type RedisClient interface {
	redis.Scripter
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// RedisSection распределенная блокировка SET NX PX вокруг READ COMMITTED транзакции
type RedisSection struct {
	client       RedisClient
	txManager    TransactionManager
	ttl          time.Duration
	waitTimeout  time.Duration
	pollInterval time.Duration
}

// RedisOption настройка RedisSection
type RedisOption func(*RedisSection)

func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisSection) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithWaitTimeout(d time.Duration) RedisOption {
	return func(s *RedisSection) {
		if d > 0 {
			s.waitTimeout = d
		}
	}
}

func WithPollInterval(d time.Duration) RedisOption {
	return func(s *RedisSection) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

func NewRedisSection(client RedisClient, txManager TransactionManager, opts ...RedisOption) *RedisSection {
	s := &RedisSection{
		client:       client,
		txManager:    txManager,
		ttl:          DefaultRedisLockTTL,
		waitTimeout:  DefaultRedisWaitTimeout,
		pollInterval: DefaultRedisPollInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisSection) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	redisKey := redisKeyPrefix + key
	token := uuid.NewString()

	if err := s.acquire(ctx, redisKey, token); err != nil {
		return err
	}
	defer s.release(redisKey, token)

	return s.txManager.Do(ctx, fn)
}

func (s *RedisSection) acquire(ctx context.Context, key, token string) error {
	waitCtx, cancel := context.WithTimeout(ctx, s.waitTimeout)
	defer cancel()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		ok, err := s.client.SetNX(waitCtx, key, token, s.ttl).Result()
		if err != nil {
			if waitCtx.Err() != nil {
				return fmt.Errorf("%w: %s", ErrLockTimeout, key)
			}
			return fmt.Errorf("%w: SETNX %s: %w", ErrLock, key, err)
		}
		if ok {
			return nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: %s", ErrLockTimeout, key)
		case <-ticker.C:
		}
	}
}

// release не использует контекст запроса: блокировку нужно снять даже если запрос отменен
func (s *RedisSection) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = releaseScript.Run(ctx, s.client, []string{key}, token).Err()
}
