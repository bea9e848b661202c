package check_availability

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"github.com/m04kA/SMC-TimberService/internal/domain"
)

// BreakerSettings параметры circuit breaker для чтения расписания
type BreakerSettings struct {
	MaxRequests      uint32        // запросов в half-open
	Interval         time.Duration // период сброса счётчиков в closed
	Timeout          time.Duration // время в open до перехода в half-open
	FailureThreshold uint32        // подряд идущих ошибок до размыкания
}

// NewScheduleBreaker создает circuit breaker и публикует его состояние в метрики
func NewScheduleBreaker(settings BreakerSettings, metrics Metrics, logger Logger) *gobreaker.CircuitBreaker {
	threshold := settings.FailureThreshold
	if threshold == 0 {
		threshold = 1
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "schedule_lookup",
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker %s: %s -> %s", name, from, to)
			metrics.SetBreakerState(name, int(to))
		},
		IsSuccessful: func(err error) bool {
			// отмена запроса клиентом не говорит о здоровье БД
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	metrics.SetBreakerState(cb.Name(), int(cb.State()))
	return cb
}

// fullLookup читает блоки из репозитория через circuit breaker
type fullLookup struct {
	repo    ScheduleBlockRepository
	breaker *gobreaker.CircuitBreaker
}

func (l *fullLookup) BlocksForDate(ctx context.Context, date time.Time) ([]*domain.ScheduleBlock, error) {
	res, err := l.breaker.Execute(func() (interface{}, error) {
		return l.repo.GetActiveByDate(ctx, date)
	})
	if err != nil {
		return nil, err
	}
	return res.([]*domain.ScheduleBlock), nil
}

func (l *fullLookup) available() bool {
	return l.breaker.State() != gobreaker.StateOpen
}

// degradedLookup используется, когда расписание недоступно: блоков нет
type degradedLookup struct{}

func (degradedLookup) BlocksForDate(context.Context, time.Time) ([]*domain.ScheduleBlock, error) {
	return nil, nil
}
