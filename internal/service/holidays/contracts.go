package holidays

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TimberService/internal/domain"
)

// HolidayRepository интерфейс репозитория праздников
type HolidayRepository interface {
	Create(ctx context.Context, holiday *domain.Holiday) (*domain.Holiday, error)
	GetByID(ctx context.Context, id int64) (*domain.Holiday, error)
	List(ctx context.Context) ([]domain.Holiday, error)
	GetMatching(ctx context.Context, date time.Time) ([]domain.Holiday, error)
	Delete(ctx context.Context, id int64) error
}

// HolidayCache интерфейс кэша списка праздников
type HolidayCache interface {
	GetAll(ctx context.Context) ([]domain.Holiday, bool, error)
	SetAll(ctx context.Context, holidays []domain.Holiday) error
	Invalidate(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
