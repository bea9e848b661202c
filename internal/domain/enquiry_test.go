package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TimberService/pkg/ptr"
	"github.com/m04kA/SMC-TimberService/pkg/types"
)

func TestEnquiry_OccupiedWindow(t *testing.T) {
	requested := date(2024, 6, 10)
	accepted := date(2024, 6, 11)
	scheduled := date(2024, 6, 12)

	tests := []struct {
		name    string
		enquiry Enquiry
		want    TimeWindow
	}{
		{
			name: "accepted window wins",
			enquiry: Enquiry{
				RequestedDate: requested, RequestedTime: "09:00",
				AcceptedDate: &accepted, AcceptedStart: ptr.Ptr(types.TimeString("10:00")), AcceptedEnd: ptr.Ptr(types.TimeString("10:45")),
				ScheduledDate: &scheduled, ScheduledTime: ptr.Ptr(types.TimeString("13:00")),
			},
			want: TimeWindow{Date: accepted, Start: "10:00", DurationMinutes: 45},
		},
		{
			name: "scheduled with default duration",
			enquiry: Enquiry{
				RequestedDate: requested, RequestedTime: "09:00",
				ScheduledDate: &scheduled, ScheduledTime: ptr.Ptr(types.TimeString("13:00")),
			},
			want: TimeWindow{Date: scheduled, Start: "13:00", DurationMinutes: DefaultEnquiryDurationMinutes},
		},
		{
			name:    "falls back to requested",
			enquiry: Enquiry{RequestedDate: requested, RequestedTime: "09:00"},
			want:    TimeWindow{Date: requested, Start: "09:00", DurationMinutes: DefaultEnquiryDurationMinutes},
		},
		{
			name:    "default window clamped to the day",
			enquiry: Enquiry{RequestedDate: requested, RequestedTime: "23:00"},
			want:    TimeWindow{Date: requested, Start: "23:00", DurationMinutes: 59},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.enquiry.OccupiedWindow(DefaultEnquiryDurationMinutes))
		})
	}
}

func TestEnquiryStatus_Blocking(t *testing.T) {
	blocking := map[EnquiryStatus]bool{
		StatusEnquiryReceived:       false,
		StatusUnderReview:           false,
		StatusTimeAccepted:          true,
		StatusAlternateTimeProposed: false,
		StatusScheduled:             true,
		StatusInProgress:            true,
		StatusCompleted:             false,
		StatusCancelled:             false,
		StatusRejected:              false,
	}

	for status, want := range blocking {
		assert.Equal(t, want, status.IsBlocking(), status)
		assert.True(t, status.IsValid())
	}
	assert.False(t, EnquiryStatus("DONE").IsValid())
}

func TestPricing(t *testing.T) {
	assert.Equal(t, 1, ProcessingHours(5))
	assert.Equal(t, 1, ProcessingHours(10))
	assert.Equal(t, 2, ProcessingHours(10.5))
	assert.Equal(t, 0, ProcessingHours(0))

	assert.Equal(t, 600.0, EstimateCost(5))
	assert.Equal(t, 1800.0, EstimateCost(15))
}

func TestScheduleBlock_IsActive(t *testing.T) {
	for _, s := range []ScheduleBlockStatus{BlockStatusBlocked, BlockStatusBooked} {
		b := ScheduleBlock{Status: s}
		assert.True(t, b.IsActive(), s)
	}
	for _, s := range []ScheduleBlockStatus{BlockStatusCancelled, BlockStatusCompleted} {
		b := ScheduleBlock{Status: s}
		assert.False(t, b.IsActive(), s)
	}

	b := ScheduleBlock{Date: date(2024, 7, 1), StartTime: "14:00", DurationMinutes: 120}
	assert.Equal(t, types.TimeString("16:00"), b.EndTime())
}

func TestWorkingHours_Contains(t *testing.T) {
	hours, err := NewWorkingHours("09:00", "17:00")
	assert.NoError(t, err)

	d := date(2024, 6, 10)
	assert.True(t, hours.Contains(TimeWindow{Date: d, Start: "09:00", DurationMinutes: 480}))
	assert.False(t, hours.Contains(TimeWindow{Date: d, Start: "08:45", DurationMinutes: 30}))
	assert.False(t, hours.Contains(TimeWindow{Date: d, Start: "16:30", DurationMinutes: 45}))

	_, err = NewWorkingHours("17:00", "09:00")
	assert.ErrorIs(t, err, ErrValidation)
}
