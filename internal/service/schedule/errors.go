package schedule

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TimberService/internal/domain"
)

var (
	// ErrBlockNotFound возвращается, когда блок расписания не найден
	ErrBlockNotFound = fmt.Errorf("%w: schedule block", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid schedule block data", domain.ErrValidation)

	// ErrOutsideWorkingHours возвращается, если блок выходит за рабочие часы
	ErrOutsideWorkingHours = fmt.Errorf("%w: outside working hours", ErrInvalidInput)

	// ErrInvalidStatus возвращается при неизвестном статусе блока
	ErrInvalidStatus = fmt.Errorf("%w: invalid schedule block status", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule.service: internal error")
)
