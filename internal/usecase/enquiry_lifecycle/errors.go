package enquiry_lifecycle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TimberService/internal/domain"
)

var (
	// ErrEnquiryNotFound возвращается, когда заявка не найдена
	ErrEnquiryNotFound = fmt.Errorf("%w: enquiry", domain.ErrNotFound)

	// ErrSlotNotAvailable возвращается, когда окно занято или выпадает на праздник
	ErrSlotNotAvailable = fmt.Errorf("%w: slot is not available", domain.ErrConflict)

	// ErrDateBusy возвращается, если дату сейчас меняет другой запрос
	ErrDateBusy = fmt.Errorf("%w: date is being modified by another request, retry later", domain.ErrConflict)

	// ErrConcurrentUpdate возвращается, если окно заявки изменилось во время операции
	ErrConcurrentUpdate = fmt.Errorf("%w: enquiry was modified concurrently", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid lifecycle request", domain.ErrValidation)

	// ErrOutsideWorkingHours возвращается, если окно выходит за рабочие часы
	ErrOutsideWorkingHours = fmt.Errorf("%w: time window is outside working hours", domain.ErrValidation)

	// ErrNoPaymentReference возвращается, если у заявки нет ссылки на онлайн-оплату
	ErrNoPaymentReference = fmt.Errorf("%w: enquiry has no online payment reference", domain.ErrValidation)

	// ErrPaymentLookup возвращается при ошибке обращения к платёжному провайдеру
	ErrPaymentLookup = errors.New("enquiry_lifecycle: payment provider error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("enquiry_lifecycle: internal error")
)

// ConflictError окно недоступно: праздник или пересечения
type ConflictError struct {
	EnquiryID int64
	Window    domain.TimeWindow
	Reason    domain.AvailabilityReason
	Holiday   *domain.Holiday
	Conflicts []domain.Conflict
}

func (e *ConflictError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "enquiry %d: window %s %s-%s is not available",
		e.EnquiryID, e.Window.Date.Format(domain.DateFormat), e.Window.Start, e.Window.End())

	if e.Reason == domain.ReasonHoliday && e.Holiday != nil {
		fmt.Fprintf(&b, ": holiday %q", e.Holiday.Name)
		return b.String()
	}

	for i, c := range e.Conflicts {
		if i == 0 {
			b.WriteString(": conflicts with ")
		} else {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s %d (%s-%s)", c.Source, c.ID, c.Window.Start, c.End())
	}
	return b.String()
}

func (e *ConflictError) Unwrap() error {
	return ErrSlotNotAvailable
}

func newConflictError(id int64, window domain.TimeWindow, res *domain.AvailabilityResult) *ConflictError {
	return &ConflictError{
		EnquiryID: id,
		Window:    window,
		Reason:    res.Reason,
		Holiday:   res.Holiday,
		Conflicts: res.Conflicts,
	}
}
