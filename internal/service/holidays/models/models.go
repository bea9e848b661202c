package models

import (
	"time"

	"github.com/m04kA/SMC-TimberService/internal/domain"
)

// Request модели

// CreateHolidayRequest запрос на создание праздника
type CreateHolidayRequest struct {
	Date        string  `json:"date"` // "2024-12-25"
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsRecurring bool    `json:"isRecurring"`
}

// Response модели

// HolidayResponse ответ с данными праздника
type HolidayResponse struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsRecurring bool      `json:"isRecurring"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HolidayListResponse ответ со списком праздников
type HolidayListResponse struct {
	Holidays []HolidayResponse `json:"holidays"`
}

// HolidayCheckResponse ответ на проверку даты
type HolidayCheckResponse struct {
	Date      string           `json:"date"`
	IsHoliday bool             `json:"isHoliday"`
	Holiday   *HolidayResponse `json:"holiday,omitempty"`
}

// Методы конвертации

// FromDomainHoliday конвертирует domain модель в DTO
func FromDomainHoliday(h *domain.Holiday) *HolidayResponse {
	if h == nil {
		return nil
	}

	return &HolidayResponse{
		ID:          h.ID,
		Date:        h.Date.Format(domain.DateFormat),
		Name:        h.Name,
		Description: h.Description,
		IsRecurring: h.IsRecurring,
		CreatedAt:   h.CreatedAt,
	}
}

// FromDomainHolidayList конвертирует список domain моделей в DTO
func FromDomainHolidayList(holidays []domain.Holiday) *HolidayListResponse {
	resp := &HolidayListResponse{
		Holidays: make([]HolidayResponse, 0, len(holidays)),
	}

	for i := range holidays {
		resp.Holidays = append(resp.Holidays, *FromDomainHoliday(&holidays[i]))
	}

	return resp
}

// FromDomainHolidayCheck конвертирует результат проверки даты
func FromDomainHolidayCheck(date time.Time, check *domain.HolidayCheck) *HolidayCheckResponse {
	return &HolidayCheckResponse{
		Date:      date.Format(domain.DateFormat),
		IsHoliday: check.IsHoliday,
		Holiday:   FromDomainHoliday(check.Holiday),
	}
}
