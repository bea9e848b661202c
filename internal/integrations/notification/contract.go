package notification

import "context"

// Transport доставка сериализованного события в конкретный канал
type Transport interface {
	Send(ctx context.Context, msg *Message, body []byte) error
	Close() error
}

// Metrics интерфейс метрик доставки
type Metrics interface {
	RecordNotification(event string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
