package enquiry_lifecycle

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	"github.com/m04kA/SMC-TimberService/pkg/types"
)

// validateWindow проверяет окно: формат, минимальная длительность, рабочие часы
func (uc *UseCase) validateWindow(date time.Time, start types.TimeString, duration int) (domain.TimeWindow, error) {
	if duration < uc.settings.MinDurationMinutes {
		return domain.TimeWindow{}, fmt.Errorf("%w: duration must be at least %d minutes", ErrInvalidInput, uc.settings.MinDurationMinutes)
	}

	window, err := domain.NewTimeWindow(date, start, duration)
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !uc.settings.WorkingHours.Contains(window) {
		return domain.TimeWindow{}, fmt.Errorf("%w: %s-%s is outside %s-%s", ErrOutsideWorkingHours,
			window.Start, window.End(), uc.settings.WorkingHours.Start, uc.settings.WorkingHours.End)
	}

	return window, nil
}

func validateNotes(notes *string) error {
	if notes != nil && len(*notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}
