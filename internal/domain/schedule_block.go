package domain

import (
	"time"

	"github.com/m04kA/SMC-TimberService/pkg/types"
)

// ScheduleBlockStatus represents the status of a manual schedule block
type ScheduleBlockStatus string

const (
	BlockStatusBlocked   ScheduleBlockStatus = "blocked"
	BlockStatusBooked    ScheduleBlockStatus = "booked"
	BlockStatusCompleted ScheduleBlockStatus = "completed"
	BlockStatusCancelled ScheduleBlockStatus = "cancelled"
)

// IsValid returns true for a known status
func (s ScheduleBlockStatus) IsValid() bool {
	switch s {
	case BlockStatusBlocked, BlockStatusBooked, BlockStatusCompleted, BlockStatusCancelled:
		return true
	}
	return false
}

// ScheduleBlock is a staff-created reservation on the calendar, independent of enquiries
type ScheduleBlock struct {
	ID              int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Title           string
	Status          ScheduleBlockStatus

	CustomerName  *string
	CustomerPhone *string
	ServiceType   *string
	Notes         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window returns the time window occupied by the block
func (b *ScheduleBlock) Window() TimeWindow {
	return TimeWindow{Date: b.Date, Start: b.StartTime, DurationMinutes: b.DurationMinutes}
}

// EndTime is derived from start and duration
func (b *ScheduleBlock) EndTime() types.TimeString {
	return b.Window().End()
}

// IsActive returns true if the block still occupies time.
// Cancelled and completed blocks free the space.
func (b *ScheduleBlock) IsActive() bool {
	return b.Status != BlockStatusCancelled && b.Status != BlockStatusCompleted
}

// ScheduleBlockFilter фильтр для списка блоков
type ScheduleBlockFilter struct {
	StartDate *time.Time           // включительно
	EndDate   *time.Time           // включительно
	Status    *ScheduleBlockStatus // опционально
}
