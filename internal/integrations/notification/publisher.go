package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TimberService/internal/domain"
)

const defaultPublishTimeout = 5 * time.Second

// Publisher публикует события заявок через выбранный транспорт
type Publisher struct {
	transport Transport
	timeout   time.Duration
	metrics   Metrics
	log       Logger
}

// NewPublisher создает новый экземпляр публикатора
func NewPublisher(transport Transport, timeout time.Duration, metrics Metrics, log Logger) *Publisher {
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return &Publisher{
		transport: transport,
		timeout:   timeout,
		metrics:   metrics,
		log:       log,
	}
}

// Publish сериализует событие и отправляет его с ограничением по времени
func (p *Publisher) Publish(ctx context.Context, event domain.EnquiryEvent) error {
	msg := NewMessage(event)

	body, err := json.Marshal(msg)
	if err != nil {
		p.metrics.RecordNotification(msg.EventType, err)
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.transport.Send(ctx, msg, body)
	p.metrics.RecordNotification(msg.EventType, err)
	if err != nil {
		return fmt.Errorf("%w: %s for enquiry id=%d: %w", ErrPublish, msg.EventType, msg.EnquiryID, err)
	}

	p.log.Info("Published %s event_id=%s for enquiry id=%d", msg.EventType, msg.EventID, msg.EnquiryID)
	return nil
}

// Close освобождает ресурсы транспорта
func (p *Publisher) Close() error {
	return p.transport.Close()
}
