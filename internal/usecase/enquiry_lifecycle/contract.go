package enquiry_lifecycle

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	"github.com/m04kA/SMC-TimberService/internal/infra/lock"
	"github.com/m04kA/SMC-TimberService/internal/usecase/check_availability"
)

// EnquiryRepository интерфейс репозитория заявок
type EnquiryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Enquiry, error)
	Update(ctx context.Context, enquiry *domain.Enquiry) (*domain.Enquiry, error)
}

// AvailabilityChecker проверка доступности окна
type AvailabilityChecker interface {
	Execute(ctx context.Context, req *check_availability.Request) (*domain.AvailabilityResult, error)
}

// Locker блокировка по ключу (даты)
type Locker interface {
	Lock(ctx context.Context, key string) (lock.Unlock, error)
}

// Notifier публикация событий заявки
type Notifier interface {
	Publish(ctx context.Context, event domain.EnquiryEvent) error
}

// PaymentStatusReader чтение статуса онлайн-оплаты у провайдера
type PaymentStatusReader interface {
	PaymentStatus(ctx context.Context, reference string) (*domain.OnlinePayment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс метрик переходов
type Metrics interface {
	RecordTransition(transition, result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
