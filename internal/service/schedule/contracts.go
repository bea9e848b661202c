package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TimberService/internal/domain"
)

// BlockRepository интерфейс репозитория блоков расписания
type BlockRepository interface {
	Create(ctx context.Context, block *domain.ScheduleBlock) (*domain.ScheduleBlock, error)
	GetByID(ctx context.Context, id int64) (*domain.ScheduleBlock, error)
	GetByDate(ctx context.Context, date time.Time) ([]*domain.ScheduleBlock, error)
	List(ctx context.Context, filter domain.ScheduleBlockFilter) ([]*domain.ScheduleBlock, error)
	Update(ctx context.Context, block *domain.ScheduleBlock) (*domain.ScheduleBlock, error)
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
