package notification

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	"github.com/m04kA/SMC-TimberService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeMetrics struct {
	events []string
	errs   []error
}

func (m *fakeMetrics) RecordNotification(event string, err error) {
	m.events = append(m.events, event)
	m.errs = append(m.errs, err)
}

type fakeTransport struct {
	msgs        []*Message
	bodies      [][]byte
	hadDeadline bool
	err         error
}

func (t *fakeTransport) Send(ctx context.Context, msg *Message, body []byte) error {
	_, t.hadDeadline = ctx.Deadline()
	t.msgs = append(t.msgs, msg)
	t.bodies = append(t.bodies, body)
	return t.err
}

func (t *fakeTransport) Close() error { return nil }

func scheduledEvent() domain.EnquiryEvent {
	return domain.EnquiryEvent{
		Type:          domain.EventScheduled,
		EnquiryID:     42,
		Status:        domain.StatusScheduled,
		CustomerName:  "Alice",
		CustomerEmail: ptr.Ptr("alice@example.com"),
		Window: &domain.TimeWindow{
			Date:            time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			Start:           "09:00",
			DurationMinutes: 90,
		},
		OccurredAt: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestNewMessage(t *testing.T) {
	msg := NewMessage(scheduledEvent())

	assert.NotEmpty(t, msg.EventID)
	assert.Equal(t, "enquiry.scheduled", msg.EventType)
	assert.Equal(t, "42", msg.Key())
	assert.Equal(t, "2024-06-10", *msg.Date)
	assert.Equal(t, "09:00", *msg.StartTime)
	assert.Equal(t, "10:30", *msg.EndTime)

	other := NewMessage(scheduledEvent())
	assert.NotEqual(t, msg.EventID, other.EventID)

	event := scheduledEvent()
	event.Window = nil
	assert.Nil(t, NewMessage(event).Date)
}

func TestPublisher_Publish(t *testing.T) {
	transport := &fakeTransport{}
	metrics := &fakeMetrics{}
	p := NewPublisher(transport, 0, metrics, nopLogger{})

	require.NoError(t, p.Publish(context.Background(), scheduledEvent()))

	require.Len(t, transport.msgs, 1)
	assert.True(t, transport.hadDeadline)

	var decoded Message
	require.NoError(t, json.Unmarshal(transport.bodies[0], &decoded))
	assert.Equal(t, transport.msgs[0].EventID, decoded.EventID)
	assert.Equal(t, "Alice", decoded.CustomerName)

	assert.Equal(t, []string{"enquiry.scheduled"}, metrics.events)
	assert.NoError(t, metrics.errs[0])
}

func TestPublisher_PublishError(t *testing.T) {
	transport := &fakeTransport{err: errors.New("broker down")}
	metrics := &fakeMetrics{}
	p := NewPublisher(transport, time.Second, metrics, nopLogger{})

	err := p.Publish(context.Background(), scheduledEvent())
	assert.ErrorIs(t, err, ErrPublish)
	assert.ErrorIs(t, err, transport.err)
	assert.Error(t, metrics.errs[0])
}

type fakeWriter struct {
	msgs []kafka.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestKafkaTransport_Send(t *testing.T) {
	writer := &fakeWriter{}
	transport := NewKafkaTransport(writer)
	msg := NewMessage(scheduledEvent())

	require.NoError(t, transport.Send(context.Background(), msg, []byte(`{}`)))

	require.Len(t, writer.msgs, 1)
	sent := writer.msgs[0]
	assert.Equal(t, []byte("42"), sent.Key)
	assert.Equal(t, []byte(`{}`), sent.Value)

	headers := map[string]string{}
	for _, h := range sent.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, msg.EventID, headers["event_id"])
	assert.Equal(t, "enquiry.scheduled", headers["event_type"])
}

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg
	return nil
}

func (c *fakeChannel) Close() error { return nil }

func TestAMQPTransport_Send(t *testing.T) {
	ch := &fakeChannel{}
	transport := NewAMQPTransport(ch, "timber.enquiries")
	msg := NewMessage(scheduledEvent())

	require.NoError(t, transport.Send(context.Background(), msg, []byte(`{}`)))
	assert.Equal(t, "timber.enquiries", ch.exchange)
	assert.Equal(t, "enquiry.scheduled", ch.key)
	assert.Equal(t, msg.EventID, ch.msg.MessageId)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, msg.EventID, ch.msg.Headers["event_id"])
	require.NoError(t, transport.Close())
}

func TestWebhookTransport_Send(t *testing.T) {
	var gotType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("X-Event-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	transport := NewWebhookTransport(server.URL, time.Second)
	require.NoError(t, transport.Send(context.Background(), NewMessage(scheduledEvent()), []byte(`{"a":1}`)))
	assert.Equal(t, "enquiry.scheduled", gotType)
	assert.JSONEq(t, `{"a":1}`, string(gotBody))
}

func TestWebhookTransport_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	transport := NewWebhookTransport(server.URL, time.Second)
	err := transport.Send(context.Background(), NewMessage(scheduledEvent()), []byte(`{}`))
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "500")
}
