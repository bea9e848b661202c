package lock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

type fakeRedis struct {
	mu     sync.Mutex
	values map[string]string
	err    error
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}
	if _, ok := f.values[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.values[key] = value.(string)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Eval(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.values[keys[0]] == args[0].(string) {
		delete(f.values, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}

func TestRedisLock_AcquireRelease(t *testing.T) {
	client := &fakeRedis{values: map[string]string{}}
	l := NewRedisLock(client, 10*time.Second, 200*time.Millisecond, nopLogger{})
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "date:2024-06-10")
	require.NoError(t, err)

	_, err = l.Lock(ctx, "date:2024-06-10")
	assert.ErrorIs(t, err, ErrLockTimeout)

	other, err := l.Lock(ctx, "date:2024-06-11")
	require.NoError(t, err)
	other()

	unlock()
	unlock2, err := l.Lock(ctx, "date:2024-06-10")
	require.NoError(t, err)
	unlock2()
	assert.Empty(t, client.values)
}

func TestRedisLock_ReleaseKeepsForeignLock(t *testing.T) {
	client := &fakeRedis{values: map[string]string{}}
	l := NewRedisLock(client, 10*time.Second, 100*time.Millisecond, nopLogger{})

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	// TTL истёк и ключ захватил другой экземпляр
	client.values[keyPrefix+"k"] = "someone-else"
	unlock()

	assert.Equal(t, "someone-else", client.values[keyPrefix+"k"])
}

func TestRedisLock_RedisError(t *testing.T) {
	client := &fakeRedis{values: map[string]string{}, err: errors.New("connection refused")}
	l := NewRedisLock(client, time.Second, time.Second, nopLogger{})

	start := time.Now()
	_, err := l.Lock(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrLockTimeout)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestLocalLock_SerializesSameKey(t *testing.T) {
	l := NewLocalLock()
	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "date:2024-06-10")
			require.NoError(t, err)
			defer unlock()

			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Empty(t, l.slots)
}

func TestLocalLock_ContextCancelled(t *testing.T) {
	l := NewLocalLock()
	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, ErrLockTimeout)

	other, err := l.Lock(context.Background(), "other")
	require.NoError(t, err)
	other()
}
