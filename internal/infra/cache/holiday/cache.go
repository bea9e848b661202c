package holiday

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TimberService/internal/domain"
)

const listKey = "timber:holidays:all"

var (
	// ErrCacheUnavailable возвращается при ошибке обращения к Redis
	ErrCacheUnavailable = errors.New("holiday.cache: cache unavailable")

	// ErrDecode возвращается, если значение в кэше повреждено
	ErrDecode = errors.New("holiday.cache: failed to decode cached value")
)

// RedisClient подмножество команд go-redis, которое использует кэш
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// cachedHoliday формат хранения в Redis
type cachedHoliday struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsRecurring bool      `json:"isRecurring"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Cache кэш списка праздников в Redis
// Список маленький, поэтому кэшируется целиком, а совпадение с датой считается в памяти
type Cache struct {
	client RedisClient
	ttl    time.Duration
}

func NewCache(client RedisClient, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// GetAll возвращает список праздников из кэша. found=false при промахе
func (c *Cache) GetAll(ctx context.Context) ([]domain.Holiday, bool, error) {
	raw, err := c.client.Get(ctx, listKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: GetAll: %v", ErrCacheUnavailable, err)
	}

	var cached []cachedHoliday
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	holidays := make([]domain.Holiday, 0, len(cached))
	for _, h := range cached {
		date, err := time.Parse(domain.DateFormat, h.Date)
		if err != nil {
			return nil, false, fmt.Errorf("%w: holiday id=%d: %v", ErrDecode, h.ID, err)
		}
		holidays = append(holidays, domain.Holiday{
			ID:          h.ID,
			Date:        date,
			Name:        h.Name,
			Description: h.Description,
			IsRecurring: h.IsRecurring,
			CreatedAt:   h.CreatedAt,
		})
	}

	return holidays, true, nil
}

// SetAll сохраняет список праздников с TTL
func (c *Cache) SetAll(ctx context.Context, holidays []domain.Holiday) error {
	cached := make([]cachedHoliday, 0, len(holidays))
	for _, h := range holidays {
		cached = append(cached, cachedHoliday{
			ID:          h.ID,
			Date:        h.Date.Format(domain.DateFormat),
			Name:        h.Name,
			Description: h.Description,
			IsRecurring: h.IsRecurring,
			CreatedAt:   h.CreatedAt,
		})
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("holiday.cache: encode: %w", err)
	}

	if err := c.client.Set(ctx, listKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: SetAll: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// Invalidate удаляет список из кэша
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, listKey).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// NoopCache используется, когда Redis выключен: всегда промах
type NoopCache struct{}

func (NoopCache) GetAll(context.Context) ([]domain.Holiday, bool, error) { return nil, false, nil }
func (NoopCache) SetAll(context.Context, []domain.Holiday) error { return nil }
func (NoopCache) Invalidate(context.Context) error { return nil }
