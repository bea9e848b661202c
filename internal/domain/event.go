package domain

import "time"

// EnquiryEventType names a customer-visible change of an enquiry
type EnquiryEventType string

const (
	EventTimeAccepted          EnquiryEventType = "enquiry.time_accepted"
	EventAlternateTimeProposed EnquiryEventType = "enquiry.alternate_time_proposed"
	EventScheduled             EnquiryEventType = "enquiry.scheduled"
	EventCompleted             EnquiryEventType = "enquiry.completed"
)

// EnquiryEvent is handed to the notification publisher after a transition commits
type EnquiryEvent struct {
	Type          EnquiryEventType
	EnquiryID     int64
	Status        EnquiryStatus
	CustomerName  string
	CustomerEmail *string
	Phone         *string
	Window        *TimeWindow
	OccurredAt    time.Time
}

// NewEnquiryEvent snapshots the enquiry fields a notification needs
func NewEnquiryEvent(t EnquiryEventType, e *Enquiry, window *TimeWindow, at time.Time) EnquiryEvent {
	return EnquiryEvent{
		Type:          t,
		EnquiryID:     e.ID,
		Status:        e.Status,
		CustomerName:  e.CustomerName,
		CustomerEmail: e.CustomerEmail,
		Phone:         e.Phone,
		Window:        window,
		OccurredAt:    at,
	}
}
