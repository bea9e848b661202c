package domain

import (
	"time"

	"github.com/m04kA/SMC-TimberService/pkg/types"
)

// EnquiryStatus represents the lifecycle state of a service enquiry
type EnquiryStatus string

const (
	StatusEnquiryReceived       EnquiryStatus = "ENQUIRY_RECEIVED"
	StatusUnderReview           EnquiryStatus = "UNDER_REVIEW"
	StatusTimeAccepted          EnquiryStatus = "TIME_ACCEPTED"
	StatusAlternateTimeProposed EnquiryStatus = "ALTERNATE_TIME_PROPOSED"
	StatusScheduled             EnquiryStatus = "SCHEDULED"
	StatusInProgress            EnquiryStatus = "IN_PROGRESS"
	StatusCompleted             EnquiryStatus = "COMPLETED"
	StatusCancelled             EnquiryStatus = "CANCELLED"
	StatusRejected              EnquiryStatus = "REJECTED"
)

// IsValid returns true for a known status
func (s EnquiryStatus) IsValid() bool {
	switch s {
	case StatusEnquiryReceived, StatusUnderReview, StatusTimeAccepted, StatusAlternateTimeProposed,
		StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// IsTerminal returns true for states with no outgoing transitions
func (s EnquiryStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

// IsBlocking returns true if an enquiry in this state occupies calendar time
func (s EnquiryStatus) IsBlocking() bool {
	for _, b := range BlockingStatuses {
		if s == b {
			return true
		}
	}
	return false
}

// WorkType is the kind of timber processing requested
type WorkType string

const (
	WorkTypePlaning   WorkType = "Planing"
	WorkTypeResawing  WorkType = "Resawing"
	WorkTypeDebarking WorkType = "Debarking"
	WorkTypeSawing    WorkType = "Sawing"
	WorkTypeOther     WorkType = "Other"
)

// IsValid returns true for a known work type
func (w WorkType) IsValid() bool {
	switch w {
	case WorkTypePlaning, WorkTypeResawing, WorkTypeDebarking, WorkTypeSawing, WorkTypeOther:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

func (p PaymentStatus) IsValid() bool {
	return p == PaymentPending || p == PaymentPaid || p == PaymentFailed
}

type PaymentMethod string

const (
	PaymentMethodNone    PaymentMethod = "NONE"
	PaymentMethodOnline  PaymentMethod = "ONLINE"
	PaymentMethodOffline PaymentMethod = "OFFLINE"
)

// LogItem is one batch of logs of a single wood type
type LogItem struct {
	WoodType     string  `json:"woodType"`
	NumberOfLogs int     `json:"numberOfLogs"`
	Thickness    float64 `json:"thickness"`
	Width        float64 `json:"width"`
	Length       float64 `json:"length"`
	CubicFeet    float64 `json:"cubicFeet"`
}

// Enquiry represents one customer request for a timber-processing service
type Enquiry struct {
	ID              int64
	CustomerName    string
	CustomerEmail   *string
	Phone           *string
	WorkType        WorkType
	LogItems        []LogItem
	CubicFeet       float64
	NumberOfLogs    *int
	ProcessingHours int
	RatePerHour     float64
	RequestedDate   time.Time
	RequestedTime   types.TimeString
	Notes           *string

	Status     EnquiryStatus
	AdminNotes *string

	// Accepted window (staff accepted the requested or proposed time)
	AcceptedDate  *time.Time
	AcceptedStart *types.TimeString
	AcceptedEnd   *types.TimeString

	// Alternate window proposed by staff
	ProposedDate  *time.Time
	ProposedStart *types.TimeString
	ProposedEnd   *types.TimeString

	ScheduledDate *time.Time
	ScheduledTime *types.TimeString

	EstimatedCost *float64
	ActualCost    *float64

	PaymentStatus      PaymentStatus
	PaymentMethod      PaymentMethod
	PaymentReference   *string
	OfflinePaymentNote *string
	PaymentDate        *time.Time

	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AcceptedWindow returns the accepted window if all of its parts are set
func (e *Enquiry) AcceptedWindow() (TimeWindow, bool) {
	if e.AcceptedDate == nil || e.AcceptedStart == nil || e.AcceptedEnd == nil {
		return TimeWindow{}, false
	}
	duration := e.AcceptedStart.MinutesUntil(*e.AcceptedEnd)
	if duration <= 0 {
		return TimeWindow{}, false
	}
	return TimeWindow{Date: *e.AcceptedDate, Start: *e.AcceptedStart, DurationMinutes: duration}, true
}

// ProposedWindow returns the alternate window proposed by staff if set
func (e *Enquiry) ProposedWindow() (TimeWindow, bool) {
	if e.ProposedDate == nil || e.ProposedStart == nil || e.ProposedEnd == nil {
		return TimeWindow{}, false
	}
	duration := e.ProposedStart.MinutesUntil(*e.ProposedEnd)
	if duration <= 0 {
		return TimeWindow{}, false
	}
	return TimeWindow{Date: *e.ProposedDate, Start: *e.ProposedStart, DurationMinutes: duration}, true
}

// OccupiedWindow returns the calendar window a blocking enquiry holds.
// Priority: accepted window, then scheduled date/time, then requested date/time.
// The last two use defaultDuration because they carry no end.
func (e *Enquiry) OccupiedWindow(defaultDuration int) TimeWindow {
	if w, ok := e.AcceptedWindow(); ok {
		return w
	}

	if e.ScheduledDate != nil && e.ScheduledTime != nil && !e.ScheduledTime.IsZero() {
		return TimeWindow{Date: *e.ScheduledDate, Start: *e.ScheduledTime, DurationMinutes: clampDuration(*e.ScheduledTime, defaultDuration)}
	}

	return TimeWindow{Date: e.RequestedDate, Start: e.RequestedTime, DurationMinutes: clampDuration(e.RequestedTime, defaultDuration)}
}

// IsBlocking returns true if the enquiry occupies calendar time
func (e *Enquiry) IsBlocking() bool {
	return e.Status.IsBlocking()
}

// IsPaid returns true if payment has been recorded
func (e *Enquiry) IsPaid() bool {
	return e.PaymentStatus == PaymentPaid
}

// clampDuration keeps a defaulted window inside the day it starts on
func clampDuration(start types.TimeString, duration int) int {
	remaining := lastMinuteOfDay - start.Minutes()
	if remaining < 1 {
		return 1
	}
	if duration > remaining {
		return remaining
	}
	return duration
}

// EnquiryFilter фильтр для списка заявок
type EnquiryFilter struct {
	Status    *EnquiryStatus
	WorkType  *WorkType
	StartDate *time.Time // по дате запроса, включительно
	EndDate   *time.Time // по дате запроса, включительно
}

// EnquiryStats сводка по заявкам
type EnquiryStats struct {
	Total               int
	ByStatus            map[EnquiryStatus]int
	ByWorkType          map[WorkType]int
	CubicFeetByWorkType map[WorkType]float64
	PendingPayment      int
}
