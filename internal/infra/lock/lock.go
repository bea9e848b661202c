package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix      = "timber:lock:"
	retryInterval  = 50 * time.Millisecond
	releaseTimeout = 2 * time.Second
	defaultWait    = 5 * time.Second
)

// ErrLockTimeout возвращается, если блокировку не удалось взять за отведённое время
var ErrLockTimeout = errors.New("lock: timed out waiting for lock")

// releaseScript удаляет ключ, только если он всё ещё принадлежит владельцу
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// Unlock освобождает блокировку
type Unlock func()

type Logger interface {
	Warn(format string, v ...interface{})
}

// RedisClient подмножество команд go-redis для блокировки
type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisLock распределённая блокировка по ключу (SET NX + TTL)
// Работает между несколькими экземплярами сервиса
type RedisLock struct {
	client RedisClient
	ttl    time.Duration
	wait   time.Duration
	logger Logger
}

func NewRedisLock(client RedisClient, ttl, wait time.Duration, logger Logger) *RedisLock {
	if wait <= 0 {
		wait = defaultWait
	}
	return &RedisLock{client: client, ttl: ttl, wait: wait, logger: logger}
}

// Lock ждёт блокировку не дольше wait
func (l *RedisLock) Lock(ctx context.Context, key string) (Unlock, error) {
	lockKey := keyPrefix + key
	token := uuid.NewString()

	acquire := func() (bool, error) {
		ok, err := l.client.SetNX(ctx, lockKey, token, l.ttl).Result()
		if err != nil {
			return false, backoff.Permanent(fmt.Errorf("lock.RedisLock.Lock: %w", err))
		}
		if !ok {
			return false, ErrLockTimeout
		}
		return true, nil
	}

	_, err := backoff.Retry[bool](ctx, acquire,
		backoff.WithBackOff(backoff.NewConstantBackOff(retryInterval)),
		backoff.WithMaxElapsedTime(l.wait),
	)
	if err != nil {
		return nil, err
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()

		if err := l.client.Eval(releaseCtx, releaseScript, []string{lockKey}, token).Err(); err != nil {
			l.logger.Warn("lock.RedisLock.Unlock: failed to release %s: %v", lockKey, err)
		}
	}, nil
}

// LocalLock блокировка по ключу внутри одного процесса
type LocalLock struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func NewLocalLock() *LocalLock {
	return &LocalLock{slots: make(map[string]*slot)}
}

// Lock ждёт блокировку, пока не отменён ctx
func (l *LocalLock) Lock(ctx context.Context, key string) (Unlock, error) {
	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, s)
		return nil, fmt.Errorf("%w: %v", ErrLockTimeout, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.release(key, s)
		})
	}, nil
}

func (l *LocalLock) release(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}
