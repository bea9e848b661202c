package notification

import "errors"

var (
	// ErrPublish возвращается, если событие не удалось доставить
	ErrPublish = errors.New("notification: publish failed")

	// ErrInvalidResponse возвращается при неожиданном ответе webhook-получателя
	ErrInvalidResponse = errors.New("notification: invalid response")

	// ErrInternal возвращается при внутренних ошибках публикации
	ErrInternal = errors.New("notification: internal error")
)
