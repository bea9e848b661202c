package enquiries

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TimberService/internal/domain"
)

var (
	// ErrEnquiryNotFound возвращается, когда заявка не найдена
	ErrEnquiryNotFound = fmt.Errorf("%w: enquiry", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid enquiry data", domain.ErrValidation)

	// ErrInvalidStatus возвращается при неизвестном статусе заявки
	ErrInvalidStatus = fmt.Errorf("%w: invalid enquiry status", domain.ErrValidation)

	// ErrInvalidWorkType возвращается при неизвестном типе работ
	ErrInvalidWorkType = fmt.Errorf("%w: invalid work type", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("enquiries.service: internal error")
)
