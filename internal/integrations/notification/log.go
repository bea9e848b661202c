package notification

import "context"

// LogTransport только пишет событие в лог (локальная разработка)
type LogTransport struct {
	log Logger
}

func NewLogTransport(log Logger) *LogTransport {
	return &LogTransport{log: log}
}

func (t *LogTransport) Send(_ context.Context, msg *Message, body []byte) error {
	t.log.Info("Notification %s for enquiry id=%d: %s", msg.EventType, msg.EnquiryID, string(body))
	return nil
}

func (t *LogTransport) Close() error { return nil }

// NoopTransport отбрасывает события
type NoopTransport struct{}

func (NoopTransport) Send(context.Context, *Message, []byte) error { return nil }

func (NoopTransport) Close() error { return nil }
