package holidays

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TimberService/internal/domain"
)

var (
	// ErrHolidayNotFound возвращается, когда праздник не найден
	ErrHolidayNotFound = fmt.Errorf("%w: holiday", domain.ErrNotFound)

	// ErrHolidayAlreadyExists возвращается, когда праздник на эту дату уже есть
	ErrHolidayAlreadyExists = fmt.Errorf("%w: holiday already exists for this date", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid holiday data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("holidays.service: internal error")
)
