package enquiry_lifecycle

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	"github.com/m04kA/SMC-TimberService/pkg/ptr"
)

// MarkUnderReview ENQUIRY_RECEIVED -> UNDER_REVIEW
func (uc *UseCase) MarkUnderReview(ctx context.Context, id int64) (*Response, error) {
	return uc.run(ctx, id, uc.statusMutation(domain.TransitionReview, nil))
}

// AcceptRequestedTime принимает запрошенное клиентом время
// Окно: запрошенные дата и время + длительность (по умолчанию из настроек)
func (uc *UseCase) AcceptRequestedTime(ctx context.Context, id int64, req *AcceptRequest) (*Response, error) {
	if err := validateNotes(req.AdminNotes); err != nil {
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = uc.settings.DefaultDurationMinutes
	}

	return uc.run(ctx, id, mutation{
		transition: domain.TransitionAcceptTime,
		window: func(e *domain.Enquiry) (domain.TimeWindow, error) {
			return uc.validateWindow(e.RequestedDate, e.RequestedTime, duration)
		},
		apply: func(e *domain.Enquiry, w domain.TimeWindow) error {
			setAccepted(e, w)
			e.Status = domain.StatusTimeAccepted
			if req.AdminNotes != nil {
				e.AdminNotes = req.AdminNotes
			}
			return nil
		},
		event: domain.EventTimeAccepted,
	})
}

// ProposeAlternateTime предлагает клиенту другое время
func (uc *UseCase) ProposeAlternateTime(ctx context.Context, id int64, req *ProposeRequest) (*Response, error) {
	if err := validateNotes(req.AdminNotes); err != nil {
		return nil, err
	}

	return uc.run(ctx, id, mutation{
		transition: domain.TransitionProposeTime,
		window: func(*domain.Enquiry) (domain.TimeWindow, error) {
			return uc.validateWindow(req.Date, req.StartTime, req.DurationMinutes)
		},
		apply: func(e *domain.Enquiry, w domain.TimeWindow) error {
			end := w.End()
			e.ProposedDate = ptr.Ptr(w.Date)
			e.ProposedStart = ptr.Ptr(w.Start)
			e.ProposedEnd = &end
			e.Status = domain.StatusAlternateTimeProposed
			if req.AdminNotes != nil {
				e.AdminNotes = req.AdminNotes
			}
			return nil
		},
		event: domain.EventAlternateTimeProposed,
	})
}

// Schedule назначает работу на принятое или предложенное окно
// Предложенное окно становится принятым
func (uc *UseCase) Schedule(ctx context.Context, id int64) (*Response, error) {
	return uc.run(ctx, id, mutation{
		transition: domain.TransitionSchedule,
		window: func(e *domain.Enquiry) (domain.TimeWindow, error) {
			var (
				w  domain.TimeWindow
				ok bool
			)
			if e.Status == domain.StatusAlternateTimeProposed {
				w, ok = e.ProposedWindow()
			} else {
				w, ok = e.AcceptedWindow()
			}
			if !ok {
				return domain.TimeWindow{}, &domain.InvalidTransitionError{
					EnquiryID:  e.ID,
					From:       e.Status,
					Transition: domain.TransitionSchedule,
					Reason:     "enquiry has no time window to schedule",
				}
			}
			return uc.validateWindow(w.Date, w.Start, w.DurationMinutes)
		},
		apply: func(e *domain.Enquiry, w domain.TimeWindow) error {
			setAccepted(e, w)
			e.ScheduledDate = ptr.Ptr(w.Date)
			e.ScheduledTime = ptr.Ptr(w.Start)
			e.Status = domain.StatusScheduled
			return nil
		},
		event: domain.EventScheduled,
	})
}

// MarkInProgress SCHEDULED|TIME_ACCEPTED -> IN_PROGRESS
func (uc *UseCase) MarkInProgress(ctx context.Context, id int64) (*Response, error) {
	return uc.run(ctx, id, uc.statusMutation(domain.TransitionStart, nil))
}

// MarkCompleted завершает работу и фиксирует время завершения
func (uc *UseCase) MarkCompleted(ctx context.Context, id int64) (*Response, error) {
	m := uc.statusMutation(domain.TransitionComplete, func(e *domain.Enquiry) {
		if e.CompletedAt == nil {
			e.CompletedAt = ptr.Ptr(uc.timeProvider.Now())
		}
	})
	m.event = domain.EventCompleted
	return uc.run(ctx, id, m)
}

// Cancel отменяет заявку из любого нетерминального состояния
func (uc *UseCase) Cancel(ctx context.Context, id int64) (*Response, error) {
	return uc.run(ctx, id, uc.statusMutation(domain.TransitionCancel, nil))
}

// Reject отклоняет заявку из любого нетерминального состояния
func (uc *UseCase) Reject(ctx context.Context, id int64) (*Response, error) {
	return uc.run(ctx, id, uc.statusMutation(domain.TransitionReject, nil))
}

// MarkOfflinePaymentReceived фиксирует оплату вне системы
// Фактическая стоимость по умолчанию равна оценке
func (uc *UseCase) MarkOfflinePaymentReceived(ctx context.Context, id int64, req *OfflinePaymentRequest) (*Response, error) {
	if err := validateNotes(req.Note); err != nil {
		return nil, err
	}

	return uc.run(ctx, id, mutation{
		transition: domain.TransitionOfflinePayment,
		apply: func(e *domain.Enquiry, _ domain.TimeWindow) error {
			e.PaymentStatus = domain.PaymentPaid
			e.PaymentMethod = domain.PaymentMethodOffline
			e.OfflinePaymentNote = req.Note
			e.PaymentDate = ptr.Ptr(uc.timeProvider.Now())
			defaultActualCost(e)
			return nil
		},
	})
}

// SyncOnlinePayment читает статус онлайн-оплаты у провайдера и сохраняет его
func (uc *UseCase) SyncOnlinePayment(ctx context.Context, id int64) (*Response, error) {
	current, err := uc.getEnquiry(ctx, id)
	if err != nil {
		uc.recordFailure(domain.TransitionSyncPayment, id, err)
		return nil, err
	}
	if current.PaymentReference == nil || *current.PaymentReference == "" {
		uc.recordFailure(domain.TransitionSyncPayment, id, ErrNoPaymentReference)
		return nil, ErrNoPaymentReference
	}

	// Обращение к провайдеру вне транзакции
	payment, err := uc.payments.PaymentStatus(ctx, *current.PaymentReference)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrPaymentLookup, err)
		uc.recordFailure(domain.TransitionSyncPayment, id, err)
		return nil, err
	}

	return uc.run(ctx, id, mutation{
		transition: domain.TransitionSyncPayment,
		apply: func(e *domain.Enquiry, _ domain.TimeWindow) error {
			if e.PaymentReference == nil || *e.PaymentReference != payment.Reference {
				return fmt.Errorf("%w: payment reference changed", ErrConcurrentUpdate)
			}
			if e.IsPaid() {
				return nil
			}

			e.PaymentStatus = payment.Status
			if payment.Status == domain.PaymentPaid {
				e.PaymentMethod = domain.PaymentMethodOnline
				e.PaymentDate = payment.PaidAt
				if e.PaymentDate == nil {
					e.PaymentDate = ptr.Ptr(uc.timeProvider.Now())
				}
				defaultActualCost(e)
			}
			return nil
		},
	})
}

// statusMutation переход, меняющий только статус
func (uc *UseCase) statusMutation(t domain.Transition, extra func(e *domain.Enquiry)) mutation {
	return mutation{
		transition: t,
		apply: func(e *domain.Enquiry, _ domain.TimeWindow) error {
			target, ok := t.Target()
			if !ok {
				return fmt.Errorf("%w: transition %s has no target status", ErrInternal, t)
			}
			e.Status = target
			if extra != nil {
				extra(e)
			}
			return nil
		},
	}
}

func setAccepted(e *domain.Enquiry, w domain.TimeWindow) {
	end := w.End()
	e.AcceptedDate = ptr.Ptr(w.Date)
	e.AcceptedStart = ptr.Ptr(w.Start)
	e.AcceptedEnd = &end
}

func defaultActualCost(e *domain.Enquiry) {
	if e.ActualCost == nil && e.EstimatedCost != nil {
		e.ActualCost = ptr.Ptr(*e.EstimatedCost)
	}
}
