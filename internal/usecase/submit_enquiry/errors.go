package submit_enquiry

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TimberService/internal/domain"
)

var (
	// ErrRequestedDateIsHoliday возвращается, если запрошенная дата праздничная
	ErrRequestedDateIsHoliday = fmt.Errorf("%w: requested date is a holiday", domain.ErrValidation)

	// ErrRequestedTimeUnavailable возвращается, если запрошенное время уже занято
	ErrRequestedTimeUnavailable = fmt.Errorf("%w: requested time is not available", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_enquiry: internal error")
)
