package enquiries

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	enquiryRepo "github.com/m04kA/SMC-TimberService/internal/infra/storage/enquiry"
)

// EnquiryRepository интерфейс репозитория заявок
type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *domain.Enquiry) (*domain.Enquiry, error)
	GetByID(ctx context.Context, id int64) (*domain.Enquiry, error)
	List(ctx context.Context, filter domain.EnquiryFilter) ([]*domain.Enquiry, error)
	Update(ctx context.Context, enquiry *domain.Enquiry) (*domain.Enquiry, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) ([]enquiryRepo.StatsRow, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
