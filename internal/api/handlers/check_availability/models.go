package check_availability

import (
	"github.com/m04kA/SMC-TimberService/internal/domain"
)

// HolidayResponse праздник, на который выпала дата
type HolidayResponse struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Name        string `json:"name"`
	IsRecurring bool   `json:"isRecurring"`
}

// ConflictResponse пересекающаяся запись
type ConflictResponse struct {
	Source    string `json:"source"`
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date            string             `json:"date"`
	StartTime       string             `json:"startTime"`
	EndTime         string             `json:"endTime,omitempty"`
	DurationMinutes int                `json:"durationMinutes"`
	Available       bool               `json:"available"`
	Reason          string             `json:"reason,omitempty"`
	Holiday         *HolidayResponse   `json:"holiday,omitempty"`
	Conflicts       []ConflictResponse `json:"conflicts"`
	Degraded        bool               `json:"degraded"`
	Warnings        []string           `json:"warnings,omitempty"`
}

// FromDomainConflicts конвертирует пересечения
func FromDomainConflicts(conflicts []domain.Conflict) []ConflictResponse {
	out := make([]ConflictResponse, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, ConflictResponse{
			Source:    string(c.Source),
			ID:        c.ID,
			Title:     c.Title,
			Status:    c.Status,
			Date:      c.Window.Date.Format(domain.DateFormat),
			StartTime: c.Window.Start.String(),
			EndTime:   c.End().String(),
		})
	}
	return out
}

// FromUseCaseResponse конвертирует вердикт в HTTP response
func FromUseCaseResponse(window domain.TimeWindow, res *domain.AvailabilityResult) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		Date:            window.Date.Format(domain.DateFormat),
		StartTime:       window.Start.String(),
		EndTime:         window.End().String(),
		DurationMinutes: window.DurationMinutes,
		Available:       res.Available,
		Reason:          string(res.Reason),
		Conflicts:       FromDomainConflicts(res.Conflicts),
		Degraded:        res.Degraded,
		Warnings:        res.Warnings,
	}
	resp.Holiday = FromDomainHoliday(res.Holiday)
	return resp
}

// FromDomainHoliday конвертирует праздник, nil остаётся nil
func FromDomainHoliday(h *domain.Holiday) *HolidayResponse {
	if h == nil {
		return nil
	}
	return &HolidayResponse{
		ID:          h.ID,
		Date:        h.Date.Format(domain.DateFormat),
		Name:        h.Name,
		IsRecurring: h.IsRecurring,
	}
}
