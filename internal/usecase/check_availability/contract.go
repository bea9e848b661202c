package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TimberService/internal/domain"
)

// HolidayCalendar интерфейс праздничного календаря
type HolidayCalendar interface {
	IsHoliday(ctx context.Context, date time.Time) (*domain.HolidayCheck, error)
	IsHolidayFresh(ctx context.Context, date time.Time) (*domain.HolidayCheck, error)
}

// ScheduleBlockRepository интерфейс чтения блоков расписания
type ScheduleBlockRepository interface {
	GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.ScheduleBlock, error)
}

// EnquiryRepository интерфейс чтения заявок, занимающих время
type EnquiryRepository interface {
	GetBlockingByDate(ctx context.Context, date time.Time) ([]*domain.Enquiry, error)
}

// ScheduleLookup источник блоков расписания для проверки
type ScheduleLookup interface {
	BlocksForDate(ctx context.Context, date time.Time) ([]*domain.ScheduleBlock, error)
}

// Metrics интерфейс метрик проверки доступности
type Metrics interface {
	RecordAvailabilityCheck(outcome string, degraded bool)
	SetBreakerState(name string, state int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
