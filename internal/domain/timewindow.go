package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TimberService/pkg/types"
)

var (
	ErrInvalidDuration = fmt.Errorf("%w: duration must be positive", ErrValidation)
	ErrWindowOverflow  = fmt.Errorf("%w: time window crosses midnight", ErrValidation)
	ErrInvalidTime     = fmt.Errorf("%w: time must be HH:MM", ErrValidation)
	ErrMissingDate     = fmt.Errorf("%w: date is required", ErrValidation)
)

// TimeWindow is a half-open interval [Start, End) on a single calendar date.
type TimeWindow struct {
	Date            time.Time
	Start           types.TimeString
	DurationMinutes int
}

// NewTimeWindow validates the window: date set, start in HH:MM, positive duration
// and an end that stays within the same day.
func NewTimeWindow(date time.Time, start types.TimeString, durationMinutes int) (TimeWindow, error) {
	if date.IsZero() {
		return TimeWindow{}, ErrMissingDate
	}
	if _, err := EndTime(start, durationMinutes); err != nil {
		return TimeWindow{}, err
	}
	return TimeWindow{
		Date:            DateOnly(date),
		Start:           start,
		DurationMinutes: durationMinutes,
	}, nil
}

// End returns Start + DurationMinutes. Only meaningful for a validated window.
func (w TimeWindow) End() types.TimeString {
	end, err := EndTime(w.Start, w.DurationMinutes)
	if err != nil {
		return ""
	}
	return end
}

// Overlaps reports whether both windows fall on the same date and intersect.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return SameDate(w.Date, other.Date) && Overlaps(w.Start, w.End(), other.Start, other.End())
}

// EndTime computes start + durationMinutes. Durations that are not positive or
// that would reach or cross midnight are rejected instead of wrapping.
func EndTime(start types.TimeString, durationMinutes int) (types.TimeString, error) {
	if err := start.Validate(); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, start)
	}
	if durationMinutes <= 0 {
		return "", fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMinutes)
	}

	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		if errors.Is(err, types.ErrCrossesMidnight) {
			return "", fmt.Errorf("%w: %s + %d minutes", ErrWindowOverflow, start, durationMinutes)
		}
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return end, nil
}

// Overlaps uses half-open semantics: windows that only touch at an endpoint do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}

// DateOnly strips the clock part and normalizes to UTC midnight.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate compares calendar dates ignoring clock and location.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrMissingDate
	}
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD: %q", ErrValidation, s)
	}
	return d, nil
}
