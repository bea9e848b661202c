package domain

import "github.com/m04kA/SMC-TimberService/pkg/types"

// AvailabilityReason explains why a window is unavailable
type AvailabilityReason string

const (
	ReasonHoliday AvailabilityReason = "holiday"
	ReasonBooked  AvailabilityReason = "booked"
)

// ConflictSource identifies the collection a conflicting entry came from
type ConflictSource string

const (
	ConflictSourceSchedule ConflictSource = "schedule"
	ConflictSourceEnquiry  ConflictSource = "enquiry"
)

// Conflict is an existing entry that overlaps the requested window
type Conflict struct {
	Source ConflictSource
	ID     int64
	Title  string
	Status string
	Window TimeWindow
}

// End of the conflicting window
func (c Conflict) End() types.TimeString {
	return c.Window.End()
}

// AvailabilityResult is the verdict for a requested window.
// Degraded means part of the check could not be performed; Warnings say which.
type AvailabilityResult struct {
	Available bool
	Reason    AvailabilityReason
	Holiday   *Holiday
	Conflicts []Conflict
	Degraded  bool
	Warnings  []string
}

// BlockConflict converts an overlapping schedule block into a Conflict
func BlockConflict(b *ScheduleBlock) Conflict {
	return Conflict{
		Source: ConflictSourceSchedule,
		ID:     b.ID,
		Title:  b.Title,
		Status: string(b.Status),
		Window: b.Window(),
	}
}

// EnquiryConflict converts an overlapping enquiry into a Conflict
func EnquiryConflict(e *Enquiry, window TimeWindow) Conflict {
	return Conflict{
		Source: ConflictSourceEnquiry,
		ID:     e.ID,
		Title:  e.CustomerName + " (" + string(e.WorkType) + ")",
		Status: string(e.Status),
		Window: window,
	}
}
