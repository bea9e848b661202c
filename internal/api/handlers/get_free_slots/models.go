package get_free_slots

import (
	"github.com/m04kA/SMC-TimberService/internal/api/handlers/check_availability"
	"github.com/m04kA/SMC-TimberService/internal/domain"
)

// SlotResponse свободный промежуток
type SlotResponse struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// WorkingHoursResponse рабочие часы
type WorkingHoursResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayScheduleResponse HTTP response model
type DayScheduleResponse struct {
	Date         string                                `json:"date"`
	WorkingHours WorkingHoursResponse                  `json:"workingHours"`
	IsHoliday    bool                                  `json:"isHoliday"`
	HolidayName  *string                               `json:"holidayName,omitempty"`
	Booked       []check_availability.ConflictResponse `json:"booked"`
	Free         []SlotResponse                        `json:"free"`
	Degraded     bool                                  `json:"degraded"`
	Warnings     []string                              `json:"warnings,omitempty"`
}

// FromUseCaseResponse конвертирует календарь дня в HTTP response
func FromUseCaseResponse(day *domain.DaySchedule) *DayScheduleResponse {
	resp := &DayScheduleResponse{
		Date: day.Date.Format(domain.DateFormat),
		WorkingHours: WorkingHoursResponse{
			Start: day.WorkingHours.Start.String(),
			End:   day.WorkingHours.End.String(),
		},
		IsHoliday: day.IsHoliday,
		Booked:    check_availability.FromDomainConflicts(day.Booked),
		Free:      make([]SlotResponse, 0, len(day.Free)),
		Degraded:  day.Degraded,
		Warnings:  day.Warnings,
	}
	if day.Holiday != nil {
		name := day.Holiday.Name
		resp.HolidayName = &name
	}
	for _, s := range day.Free {
		resp.Free = append(resp.Free, SlotResponse{
			StartTime:       s.Start.String(),
			EndTime:         s.End.String(),
			DurationMinutes: s.DurationMinutes,
		})
	}
	return resp
}
