package notification

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-TimberService/pkg/tracing"
)

// Channel часть amqp.Channel, нужная транспорту
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPTransport публикует события в topic exchange RabbitMQ
// Routing key = тип события
type AMQPTransport struct {
	conn     *amqp.Connection
	ch       Channel
	exchange string
}

// DialAMQP подключается к брокеру и объявляет exchange
func DialAMQP(url, exchange string) (*AMQPTransport, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to amqp: %v", ErrInternal, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: failed to open amqp channel: %v", ErrInternal, err)
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: failed to declare exchange %s: %v", ErrInternal, exchange, err)
	}

	return &AMQPTransport{conn: conn, ch: ch, exchange: exchange}, nil
}

// NewAMQPTransport создает транспорт поверх открытого канала
func NewAMQPTransport(ch Channel, exchange string) *AMQPTransport {
	return &AMQPTransport{ch: ch, exchange: exchange}
}

func (t *AMQPTransport) Send(ctx context.Context, msg *Message, body []byte) error {
	headers := amqp.Table{
		"event_id":   msg.EventID,
		"event_type": msg.EventType,
	}
	for k, v := range tracing.InjectMap(ctx) {
		headers[k] = v
	}

	return t.ch.PublishWithContext(ctx, t.exchange, msg.EventType, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.EventID,
		Type:         msg.EventType,
		Timestamp:    msg.OccurredAt,
		Headers:      headers,
		Body:         body,
	})
}

func (t *AMQPTransport) Close() error {
	err := t.ch.Close()
	if t.conn != nil {
		if cerr := t.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
