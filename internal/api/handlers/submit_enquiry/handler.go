package submit_enquiry

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TimberService/internal/api/handlers"
	"github.com/m04kA/SMC-TimberService/internal/service/enquiries/models"
	submitEnquiry "github.com/m04kA/SMC-TimberService/internal/usecase/submit_enquiry"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidEnquiry     = "некорректные данные заявки"
	msgDateIsHoliday      = "запрошенная дата выпадает на праздник"
	msgTimeUnavailable    = "запрошенное время занято"
)

type Handler struct {
	useCase SubmitEnquiryUseCase
	logger  Logger
}

func NewHandler(useCase SubmitEnquiryUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/enquiries
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitEnquiryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /enquiries - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, submitEnquiry.ErrRequestedDateIsHoliday):
			h.logger.Warn("POST /enquiries - Requested date is a holiday: date=%s", req.RequestedDate)
			handlers.RespondDomainError(w, err, msgDateIsHoliday)

		case errors.Is(err, submitEnquiry.ErrRequestedTimeUnavailable):
			h.logger.Warn("POST /enquiries - Requested time unavailable: date=%s, time=%s", req.RequestedDate, req.RequestedTime)
			handlers.RespondDomainError(w, err, msgTimeUnavailable)

		case handlers.StatusForError(err) < http.StatusInternalServerError:
			h.logger.Warn("POST /enquiries - Invalid enquiry: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidEnquiry)

		default:
			h.logger.Error("POST /enquiries - Failed to submit enquiry: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /enquiries - Enquiry received: enquiry_id=%d, degraded=%t",
		result.Enquiry.ID, result.AvailabilityDegraded)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
