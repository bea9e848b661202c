package get_free_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TimberService/internal/domain"
)

// HolidayCalendar интерфейс календаря праздников
type HolidayCalendar interface {
	IsHoliday(ctx context.Context, date time.Time) (*domain.HolidayCheck, error)
}

// ScheduleBlockRepository интерфейс репозитория блоков расписания
type ScheduleBlockRepository interface {
	GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.ScheduleBlock, error)
}

// EnquiryRepository интерфейс репозитория заявок
type EnquiryRepository interface {
	GetBlockingByDate(ctx context.Context, date time.Time) ([]*domain.Enquiry, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
