package notification

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TimberService/internal/domain"
)

// Message событие заявки в формате, который уходит в брокер или webhook
type Message struct {
	EventID       string    `json:"eventId"`
	EventType     string    `json:"eventType"`
	EnquiryID     int64     `json:"enquiryId"`
	Status        string    `json:"status"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail *string   `json:"customerEmail,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	Date          *string   `json:"date,omitempty"`
	StartTime     *string   `json:"startTime,omitempty"`
	EndTime       *string   `json:"endTime,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// NewMessage строит сообщение с новым eventId
func NewMessage(event domain.EnquiryEvent) *Message {
	msg := &Message{
		EventID:       uuid.NewString(),
		EventType:     string(event.Type),
		EnquiryID:     event.EnquiryID,
		Status:        string(event.Status),
		CustomerName:  event.CustomerName,
		CustomerEmail: event.CustomerEmail,
		Phone:         event.Phone,
		OccurredAt:    event.OccurredAt.UTC(),
	}

	if event.Window != nil {
		date := event.Window.Date.Format(domain.DateFormat)
		start := event.Window.Start.String()
		end := event.Window.End().String()
		msg.Date = &date
		msg.StartTime = &start
		msg.EndTime = &end
	}

	return msg
}

// Key ключ партиционирования: события одной заявки идут по порядку
func (m *Message) Key() string {
	return strconv.FormatInt(m.EnquiryID, 10)
}
