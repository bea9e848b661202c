package check_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	"github.com/m04kA/SMC-TimberService/pkg/dbmetrics"
)

const (
	warnScheduleUnavailable = "schedule blocks could not be checked"
	warnHolidayUnavailable  = "holiday calendar could not be checked"
)

// UseCase проверка доступности окна: праздники, блоки расписания, занятые заявки
// Ничего не изменяет в хранилищах
type UseCase struct {
	holidays        HolidayCalendar
	enquiryRepo     EnquiryRepository
	full            *fullLookup
	degraded        ScheduleLookup
	defaultDuration int
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	holidays HolidayCalendar,
	blockRepo ScheduleBlockRepository,
	enquiryRepo EnquiryRepository,
	breaker *gobreaker.CircuitBreaker,
	defaultDuration int,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if defaultDuration <= 0 {
		defaultDuration = domain.DefaultEnquiryDurationMinutes
	}
	return &UseCase{
		holidays:        holidays,
		enquiryRepo:     enquiryRepo,
		full:            &fullLookup{repo: blockRepo, breaker: breaker},
		degraded:        degradedLookup{},
		defaultDuration: defaultDuration,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute возвращает вердикт по окну
//
// Порядок проверки:
//  1. праздник (сразу недоступно);
//  2. активные блоки расписания, пересекающиеся с окном;
//  3. заявки в блокирующих статусах, кроме ExcludeEnquiryID.
//
// Окна, которые только соприкасаются, не конфликтуют.
// Если расписание недоступно, проверка продолжается без него с Degraded=true.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.AvailabilityResult, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrMissingDate)
	}
	date := domain.DateOnly(req.Date)
	result := &domain.AvailabilityResult{}

	// Календарь и расписание читаются вне транзакции вызывающего:
	// их ошибка не должна обрывать транзакцию фиксации
	readCtx := dbmetrics.WithoutTransaction(ctx)

	// 1. Праздник
	holiday, err := uc.checkHoliday(readCtx, date, req.Fresh)
	if err != nil {
		if req.Fresh {
			uc.metrics.RecordAvailabilityCheck(OutcomeError, false)
			return nil, fmt.Errorf("%w: %v", ErrHolidayLookup, err)
		}
		uc.logger.Warn("CheckAvailability: holiday lookup failed for date=%s, continuing degraded: %v",
			date.Format(domain.DateFormat), err)
		result.Degraded = true
		result.Warnings = append(result.Warnings, warnHolidayUnavailable)
	}
	if holiday != nil && holiday.IsHoliday {
		result.Available = false
		result.Reason = domain.ReasonHoliday
		result.Holiday = holiday.Holiday
		uc.metrics.RecordAvailabilityCheck(OutcomeHoliday, result.Degraded)
		return result, nil
	}

	// 2. Окно
	window, err := domain.NewTimeWindow(date, req.StartTime, req.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Блоки расписания
	blocks := uc.scheduleBlocks(readCtx, date, result)
	for _, b := range blocks {
		if !b.IsActive() {
			continue
		}
		if b.Window().Overlaps(window) {
			result.Conflicts = append(result.Conflicts, domain.BlockConflict(b))
		}
	}

	// 4. Заявки (в транзакции вызывающего, если она есть)
	enquiries, err := uc.enquiryRepo.GetBlockingByDate(ctx, date)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get enquiries for date=%s: %v", date.Format(domain.DateFormat), err)
		uc.metrics.RecordAvailabilityCheck(OutcomeError, result.Degraded)
		return nil, fmt.Errorf("%w: failed to get enquiries: %w", ErrInternal, err)
	}
	for _, e := range enquiries {
		if !e.IsBlocking() {
			continue
		}
		if req.ExcludeEnquiryID != nil && e.ID == *req.ExcludeEnquiryID {
			continue
		}
		occupied := e.OccupiedWindow(uc.defaultDuration)
		if occupied.Overlaps(window) {
			result.Conflicts = append(result.Conflicts, domain.EnquiryConflict(e, occupied))
		}
	}

	// 5. Вердикт
	if len(result.Conflicts) > 0 {
		result.Available = false
		result.Reason = domain.ReasonBooked
		uc.metrics.RecordAvailabilityCheck(OutcomeBooked, result.Degraded)
		return result, nil
	}

	result.Available = true
	uc.metrics.RecordAvailabilityCheck(OutcomeAvailable, result.Degraded)
	return result, nil
}

func (uc *UseCase) checkHoliday(ctx context.Context, date time.Time, fresh bool) (*domain.HolidayCheck, error) {
	if fresh {
		return uc.holidays.IsHolidayFresh(ctx, date)
	}
	return uc.holidays.IsHoliday(ctx, date)
}

// scheduleBlocks выбирает полный или деградированный источник блоков
func (uc *UseCase) scheduleBlocks(ctx context.Context, date time.Time, result *domain.AvailabilityResult) []*domain.ScheduleBlock {
	var lookup ScheduleLookup = uc.full
	if !uc.full.available() {
		uc.logger.Warn("CheckAvailability: schedule lookup circuit is open, using degraded lookup")
		lookup = uc.degraded
		result.Degraded = true
		result.Warnings = append(result.Warnings, warnScheduleUnavailable)
	}

	blocks, err := lookup.BlocksForDate(ctx, date)
	if err == nil {
		return blocks
	}

	uc.logger.Warn("CheckAvailability: schedule lookup failed for date=%s, using degraded lookup: %v",
		date.Format(domain.DateFormat), err)
	result.Degraded = true
	result.Warnings = append(result.Warnings, warnScheduleUnavailable)

	blocks, _ = uc.degraded.BlocksForDate(ctx, date)
	return blocks
}
