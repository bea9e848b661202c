package payment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TimberService/internal/domain"
)

var (
	// ErrPaymentNotFound возвращается, если провайдер не знает такой платёж
	ErrPaymentNotFound = fmt.Errorf("%w: payment", domain.ErrNotFound)

	// ErrDisabled возвращается, если онлайн-оплата не настроена
	ErrDisabled = fmt.Errorf("%w: online payments are not configured", domain.ErrValidation)

	// ErrInternal возвращается при ошибках обращения к провайдеру
	ErrInternal = errors.New("payment client: internal error")
)
