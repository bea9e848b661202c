package check_availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TimberService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректном окне проверки
	ErrInvalidInput = fmt.Errorf("%w: invalid availability request", domain.ErrValidation)

	// ErrHolidayLookup возвращается, если календарь недоступен при проверке с фиксацией
	ErrHolidayLookup = errors.New("check_availability: holiday calendar unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
