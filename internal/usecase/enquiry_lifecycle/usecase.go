package enquiry_lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	enquiryRepo "github.com/m04kA/SMC-TimberService/internal/infra/storage/enquiry"
	"github.com/m04kA/SMC-TimberService/internal/usecase/check_availability"
)

// UseCase машина состояний заявки
//
// Переходы, занимающие время (accept, propose, schedule), выполняются так:
// блокировка даты -> SERIALIZABLE транзакция (чтение заявки FOR UPDATE,
// проверка перехода, проверка доступности, запись) -> снятие блокировки -> уведомление.
type UseCase struct {
	enquiryRepo  EnquiryRepository
	availability AvailabilityChecker
	locker       Locker
	txManager    TransactionManager
	notifier     Notifier
	payments     PaymentStatusReader
	metrics      Metrics
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	enquiryRepo EnquiryRepository,
	availability AvailabilityChecker,
	locker Locker,
	txManager TransactionManager,
	notifier Notifier,
	payments PaymentStatusReader,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.MinDurationMinutes <= 0 {
		settings.MinDurationMinutes = domain.DefaultMinDurationMinutes
	}
	if settings.DefaultDurationMinutes <= 0 {
		settings.DefaultDurationMinutes = domain.DefaultEnquiryDurationMinutes
	}
	return &UseCase{
		enquiryRepo:  enquiryRepo,
		availability: availability,
		locker:       locker,
		txManager:    txManager,
		notifier:     notifier,
		payments:     payments,
		metrics:      metrics,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// mutation описывает один переход
type mutation struct {
	transition domain.Transition

	// window возвращает окно, которое нужно проверить на доступность.
	// nil для переходов, не занимающих время
	window func(e *domain.Enquiry) (domain.TimeWindow, error)

	// apply изменяет заявку. window нулевой для переходов без окна
	apply func(e *domain.Enquiry, window domain.TimeWindow) error

	// event отправляется после фиксации, если задан
	event domain.EnquiryEventType
}

// run выполняет переход и отправляет уведомление
func (uc *UseCase) run(ctx context.Context, id int64, m mutation) (*Response, error) {
	uc.logger.Info("EnquiryLifecycle: %s enquiry id=%d", m.transition, id)

	resp, window, err := uc.commit(ctx, id, m)
	if err != nil {
		uc.recordFailure(m.transition, id, err)
		return nil, err
	}

	if resp.Noop {
		uc.metrics.RecordTransition(string(m.transition), resultNoop)
		uc.logger.Info("EnquiryLifecycle: %s enquiry id=%d is a no-op, status=%s", m.transition, id, resp.Enquiry.Status)
		return resp, nil
	}

	uc.metrics.RecordTransition(string(m.transition), resultOK)
	uc.logger.Info("EnquiryLifecycle: %s enquiry id=%d done, status=%s", m.transition, id, resp.Enquiry.Status)

	if m.event != "" {
		uc.notify(ctx, m.event, resp.Enquiry, window)
	}

	return resp, nil
}

// commit выполняет критическую секцию перехода
func (uc *UseCase) commit(ctx context.Context, id int64, m mutation) (*Response, *domain.TimeWindow, error) {
	if m.window == nil {
		resp, err := uc.transact(ctx, id, m, nil)
		return resp, nil, err
	}

	// Окно определяется по текущему состоянию, чтобы знать, какую дату блокировать
	current, err := uc.getEnquiry(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if _, err := domain.CheckTransition(current, m.transition); err != nil {
		return nil, nil, err
	}
	window, err := m.window(current)
	if err != nil {
		return nil, nil, err
	}

	lockKey := "date:" + window.Date.Format(domain.DateFormat)
	unlock, err := uc.locker.Lock(ctx, lockKey)
	if err != nil {
		uc.logger.Warn("EnquiryLifecycle: failed to lock %s: %v", lockKey, err)
		return nil, nil, fmt.Errorf("%w: %v", ErrDateBusy, err)
	}
	defer unlock()

	resp, err := uc.transact(ctx, id, m, &window)
	if err != nil {
		return nil, nil, err
	}
	return resp, &window, nil
}

// transact читает заявку с блокировкой строки, проверяет переход и доступность, сохраняет
func (uc *UseCase) transact(ctx context.Context, id int64, m mutation, locked *domain.TimeWindow) (*Response, error) {
	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		resp = nil

		enquiry, err := uc.getEnquiry(txCtx, id)
		if err != nil {
			return err
		}

		noop, err := domain.CheckTransition(enquiry, m.transition)
		if err != nil {
			return err
		}
		if noop {
			resp = &Response{Enquiry: enquiry, Noop: true}
			return nil
		}

		result := &Response{}
		var window domain.TimeWindow

		if locked != nil {
			window, err = m.window(enquiry)
			if err != nil {
				return err
			}
			if !domain.SameDate(window.Date, locked.Date) {
				return fmt.Errorf("%w: window date changed from %s to %s", ErrConcurrentUpdate,
					locked.Date.Format(domain.DateFormat), window.Date.Format(domain.DateFormat))
			}

			availability, err := uc.availability.Execute(txCtx, &check_availability.Request{
				Date:             window.Date,
				StartTime:        window.Start,
				DurationMinutes:  window.DurationMinutes,
				ExcludeEnquiryID: &enquiry.ID,
				Fresh:            true,
			})
			if err != nil {
				return err
			}
			if !availability.Available {
				return newConflictError(enquiry.ID, window, availability)
			}
			result.AvailabilityDegraded = availability.Degraded
			result.Warnings = availability.Warnings
		}

		if err := m.apply(enquiry, window); err != nil {
			return err
		}

		updated, err := uc.enquiryRepo.Update(txCtx, enquiry)
		if err != nil {
			if errors.Is(err, enquiryRepo.ErrEnquiryNotFound) {
				return ErrEnquiryNotFound
			}
			return fmt.Errorf("%w: failed to update enquiry: %w", ErrInternal, err)
		}

		result.Enquiry = updated
		resp = result
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (uc *UseCase) getEnquiry(ctx context.Context, id int64) (*domain.Enquiry, error) {
	enquiry, err := uc.enquiryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, enquiryRepo.ErrEnquiryNotFound) {
			return nil, ErrEnquiryNotFound
		}
		return nil, fmt.Errorf("%w: failed to get enquiry: %w", ErrInternal, err)
	}
	return enquiry, nil
}

// notify отправляет событие после фиксации. Ошибка доставки не откатывает переход
func (uc *UseCase) notify(ctx context.Context, eventType domain.EnquiryEventType, e *domain.Enquiry, window *domain.TimeWindow) {
	event := domain.NewEnquiryEvent(eventType, e, window, uc.timeProvider.Now())
	if err := uc.notifier.Publish(context.WithoutCancel(ctx), event); err != nil {
		uc.logger.Warn("EnquiryLifecycle: failed to publish %s for enquiry id=%d: %v", eventType, e.ID, err)
	}
}

func (uc *UseCase) recordFailure(t domain.Transition, id int64, err error) {
	switch {
	case errors.Is(err, domain.ErrConflict):
		uc.metrics.RecordTransition(string(t), resultConflict)
		uc.logger.Warn("EnquiryLifecycle: %s enquiry id=%d rejected: %v", t, id, err)
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound):
		uc.metrics.RecordTransition(string(t), resultInvalid)
		uc.logger.Warn("EnquiryLifecycle: %s enquiry id=%d rejected: %v", t, id, err)
	default:
		uc.metrics.RecordTransition(string(t), resultError)
		uc.logger.Error("EnquiryLifecycle: %s enquiry id=%d failed: %v", t, id, err)
	}
}
