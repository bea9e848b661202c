package notification

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-TimberService/pkg/tracing"
)

// MessageWriter часть kafka.Writer, нужная транспорту
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaTransport публикует события в топик Kafka
// Ключ сообщения = ID заявки, поэтому события одной заявки попадают в одну партицию
type KafkaTransport struct {
	writer MessageWriter
}

// NewKafkaWriter создает writer с балансировкой по ключу
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
}

// NewKafkaTransport создает транспорт поверх writer
func NewKafkaTransport(writer MessageWriter) *KafkaTransport {
	return &KafkaTransport{writer: writer}
}

func (t *KafkaTransport) Send(ctx context.Context, msg *Message, body []byte) error {
	headers := []kafka.Header{
		{Key: "event_id", Value: []byte(msg.EventID)},
		{Key: "event_type", Value: []byte(msg.EventType)},
	}
	for k, v := range tracing.InjectMap(ctx) {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}

	return t.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(msg.Key()),
		Value:   body,
		Headers: headers,
	})
}

func (t *KafkaTransport) Close() error {
	return t.writer.Close()
}
