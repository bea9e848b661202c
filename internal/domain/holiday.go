package domain

import (
	"sort"
	"time"
)

// Holiday is a calendar date on which no work can be booked.
// Recurring holidays match the same month and day in every year.
type Holiday struct {
	ID          int64
	Date        time.Time
	Name        string
	Description *string
	IsRecurring bool
	CreatedAt   time.Time
}

// Matches reports whether the holiday falls on date.
func (h *Holiday) Matches(date time.Time) bool {
	if h.IsRecurring {
		return h.Date.Month() == date.Month() && h.Date.Day() == date.Day()
	}
	return SameDate(h.Date, date)
}

// HolidayCheck is the answer to "is this date a holiday".
type HolidayCheck struct {
	IsHoliday bool
	Holiday   *Holiday
}

// FirstMatchingHoliday returns the earliest-created holiday matching date, or nil.
// Ties on CreatedAt are broken by ID.
func FirstMatchingHoliday(holidays []Holiday, date time.Time) *Holiday {
	matches := make([]Holiday, 0, 1)
	for _, h := range holidays {
		if h.Matches(date) {
			matches = append(matches, h)
		}
	}
	if len(matches) == 0 {
		return nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.Before(matches[j].CreatedAt)
		}
		return matches[i].ID < matches[j].ID
	})

	first := matches[0]
	return &first
}

// CheckHoliday builds a HolidayCheck for date from a candidate list.
func CheckHoliday(holidays []Holiday, date time.Time) HolidayCheck {
	h := FirstMatchingHoliday(holidays, date)
	return HolidayCheck{IsHoliday: h != nil, Holiday: h}
}
