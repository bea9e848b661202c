package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TimberService/pkg/types"
)

// WorkingHours is the daily interval in which work can be scheduled
type WorkingHours struct {
	Start types.TimeString
	End   types.TimeString
}

// NewWorkingHours validates that start is before end
func NewWorkingHours(start, end string) (WorkingHours, error) {
	s, err := types.NewTimeStringFromString(start)
	if err != nil {
		return WorkingHours{}, fmt.Errorf("%w: work start: %v", ErrValidation, err)
	}
	e, err := types.NewTimeStringFromString(end)
	if err != nil {
		return WorkingHours{}, fmt.Errorf("%w: work end: %v", ErrValidation, err)
	}
	if !s.IsBefore(e) {
		return WorkingHours{}, fmt.Errorf("%w: work start %s must be before end %s", ErrValidation, s, e)
	}
	return WorkingHours{Start: s, End: e}, nil
}

// Contains returns true if the window lies fully inside working hours
func (h WorkingHours) Contains(w TimeWindow) bool {
	end := w.End()
	if end.IsZero() {
		return false
	}
	return !w.Start.IsBefore(h.Start) && !end.IsAfter(h.End)
}

// FreeSlot is a gap in the day's calendar
type FreeSlot struct {
	Start           types.TimeString
	End             types.TimeString
	DurationMinutes int
}

// Fits returns true if a window of the given duration fits into the slot
func (s *FreeSlot) Fits(durationMinutes int) bool {
	return s.DurationMinutes >= durationMinutes
}

// DaySchedule is the calendar view of one date
type DaySchedule struct {
	Date         time.Time
	WorkingHours WorkingHours
	IsHoliday    bool
	Holiday      *Holiday
	Booked       []Conflict
	Free         []FreeSlot
	Degraded     bool
	Warnings     []string
}
