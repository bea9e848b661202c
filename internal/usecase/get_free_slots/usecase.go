package get_free_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/m04kA/SMC-TimberService/internal/domain"
)

// UseCase поиск свободных окон на дату
type UseCase struct {
	holidays    HolidayCalendar
	blockRepo   ScheduleBlockRepository
	enquiryRepo EnquiryRepository
	breaker     *gobreaker.CircuitBreaker
	settings    Settings
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
// breaker общий с проверкой доступности: оба читают одно расписание
func NewUseCase(
	holidays HolidayCalendar,
	blockRepo ScheduleBlockRepository,
	enquiryRepo EnquiryRepository,
	breaker *gobreaker.CircuitBreaker,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.DefaultDurationMinutes <= 0 {
		settings.DefaultDurationMinutes = domain.DefaultEnquiryDurationMinutes
	}
	return &UseCase{
		holidays:    holidays,
		blockRepo:   blockRepo,
		enquiryRepo: enquiryRepo,
		breaker:     breaker,
		settings:    settings,
		logger:      logger,
	}
}

// Execute возвращает занятые окна и свободные промежутки рабочего дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.DaySchedule, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrMissingDate)
	}
	if req.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	date := domain.DateOnly(req.Date)
	uc.logger.Info("GetFreeSlots: date=%s, duration=%d", date.Format(domain.DateFormat), req.DurationMinutes)

	day := &domain.DaySchedule{
		Date:         date,
		WorkingHours: uc.settings.WorkingHours,
		Booked:       make([]domain.Conflict, 0),
		Free:         make([]domain.FreeSlot, 0),
	}

	// 1. Праздник: свободных окон нет
	check, err := uc.holidays.IsHoliday(ctx, date)
	if err != nil {
		uc.logger.Warn("GetFreeSlots: holiday lookup failed for %s: %v", date.Format(domain.DateFormat), err)
		day.Degraded = true
		day.Warnings = append(day.Warnings, warnHolidayUnavailable)
	} else if check.IsHoliday {
		day.IsHoliday = true
		day.Holiday = check.Holiday
		return day, nil
	}

	// 2. Блоки расписания
	blocks, err := uc.scheduleBlocks(ctx, date)
	if err != nil {
		uc.logger.Warn("GetFreeSlots: schedule lookup failed for %s: %v", date.Format(domain.DateFormat), err)
		day.Degraded = true
		day.Warnings = append(day.Warnings, warnScheduleUnavailable)
	}
	for _, b := range blocks {
		if b.IsActive() {
			day.Booked = append(day.Booked, domain.BlockConflict(b))
		}
	}

	// 3. Заявки, занимающие время
	enquiries, err := uc.enquiryRepo.GetBlockingByDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetFreeSlots: failed to get enquiries for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get enquiries: %v", ErrInternal, err)
	}
	for _, e := range enquiries {
		window := e.OccupiedWindow(uc.settings.DefaultDurationMinutes)
		if e.IsBlocking() && domain.SameDate(window.Date, date) {
			day.Booked = append(day.Booked, domain.EnquiryConflict(e, window))
		}
	}

	// 4. Свободные промежутки
	sortBooked(day.Booked)
	day.Free = freeGaps(uc.settings.WorkingHours, day.Booked, req.DurationMinutes)

	uc.logger.Info("GetFreeSlots: date=%s, booked=%d, free=%d, degraded=%t",
		date.Format(domain.DateFormat), len(day.Booked), len(day.Free), day.Degraded)
	return day, nil
}

func (uc *UseCase) scheduleBlocks(ctx context.Context, date time.Time) ([]*domain.ScheduleBlock, error) {
	res, err := uc.breaker.Execute(func() (interface{}, error) {
		return uc.blockRepo.GetActiveByDate(ctx, date)
	})
	if err != nil {
		return nil, err
	}
	blocks, _ := res.([]*domain.ScheduleBlock)
	return blocks, nil
}
