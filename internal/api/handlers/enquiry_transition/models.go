package enquiry_transition

import (
	"time"

	availabilityHandler "github.com/m04kA/SMC-TimberService/internal/api/handlers/check_availability"
	"github.com/m04kA/SMC-TimberService/internal/domain"
	"github.com/m04kA/SMC-TimberService/internal/service/enquiries/models"
	lifecycle "github.com/m04kA/SMC-TimberService/internal/usecase/enquiry_lifecycle"
	"github.com/m04kA/SMC-TimberService/pkg/types"
)

// AcceptTimeRequest HTTP request model для accept-time
type AcceptTimeRequest struct {
	DurationMinutes int     `json:"durationMinutes"` // 0 = длительность по умолчанию
	AdminNotes      *string `json:"adminNotes,omitempty"`
}

// ProposeTimeRequest HTTP request model для propose-time
type ProposeTimeRequest struct {
	Date            string  `json:"date"`      // "2024-06-12"
	StartTime       string  `json:"startTime"` // "13:00"
	DurationMinutes int     `json:"durationMinutes"`
	AdminNotes      *string `json:"adminNotes,omitempty"`
}

// OfflinePaymentRequest HTTP request model для offline-payment
type OfflinePaymentRequest struct {
	Note *string `json:"note,omitempty"`
}

// TransitionResponse HTTP response model
type TransitionResponse struct {
	Enquiry              *models.EnquiryResponse `json:"enquiry"`
	Noop                 bool                    `json:"noop"`
	AvailabilityDegraded bool                    `json:"availabilityDegraded"`
	Warnings             []string                `json:"warnings,omitempty"`
}

// SlotConflictResponse тело 409, когда окно занято или выпало на праздник
type SlotConflictResponse struct {
	Code      int                                    `json:"code"`
	Message   string                                 `json:"message"`
	Date      string                                 `json:"date"`
	StartTime string                                 `json:"startTime"`
	EndTime   string                                 `json:"endTime"`
	Reason    string                                 `json:"reason"`
	Holiday   *availabilityHandler.HolidayResponse   `json:"holiday,omitempty"`
	Conflicts []availabilityHandler.ConflictResponse `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AcceptTimeRequest) ToUseCaseRequest() *lifecycle.AcceptRequest {
	return &lifecycle.AcceptRequest{
		DurationMinutes: r.DurationMinutes,
		AdminNotes:      r.AdminNotes,
	}
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *ProposeTimeRequest) ToUseCaseRequest() (*lifecycle.ProposeRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &lifecycle.ProposeRequest{
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		AdminNotes:      r.AdminNotes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *lifecycle.Response) *TransitionResponse {
	return &TransitionResponse{
		Enquiry:              models.FromDomainEnquiry(resp.Enquiry),
		Noop:                 resp.Noop,
		AvailabilityDegraded: resp.AvailabilityDegraded,
		Warnings:             resp.Warnings,
	}
}

// FromConflictError собирает тело 409 из ошибки use case
func FromConflictError(status int, message string, err *lifecycle.ConflictError) *SlotConflictResponse {
	return &SlotConflictResponse{
		Code:      status,
		Message:   message,
		Date:      err.Window.Date.Format(domain.DateFormat),
		StartTime: err.Window.Start.String(),
		EndTime:   err.Window.End().String(),
		Reason:    string(err.Reason),
		Holiday:   availabilityHandler.FromDomainHoliday(err.Holiday),
		Conflicts: availabilityHandler.FromDomainConflicts(err.Conflicts),
	}
}
