package holidays

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TimberService/internal/api/handlers"
	"github.com/m04kA/SMC-TimberService/internal/domain"
	"github.com/m04kA/SMC-TimberService/internal/service/holidays/models"
)

const (
	msgInvalidHolidayID   = "некорректный ID праздника"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgHolidayError       = "не удалось обработать праздник"
)

type Handler struct {
	service HolidayService
	logger  Logger
}

func NewHandler(service HolidayService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/holidays
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.respondError(w, "GET /holidays", 0, err)
		return
	}

	h.logger.Info("GET /holidays - Holidays retrieved: count=%d", len(result.Holidays))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/holidays
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateHolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /holidays - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /holidays", 0, err)
		return
	}

	h.logger.Info("POST /holidays - Holiday created: holiday_id=%d, date=%s, recurring=%t",
		result.ID, result.Date, result.IsRecurring)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Check GET /api/v1/holidays/check?date=YYYY-MM-DD
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.RequiredQueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /holidays/check - Invalid date: %v", err)
		if errors.Is(err, handlers.ErrMissingParam) {
			handlers.RespondBadRequest(w, msgMissingDate)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.service.Check(r.Context(), date)
	if err != nil {
		h.respondError(w, "GET /holidays/check", 0, err)
		return
	}

	h.logger.Info("GET /holidays/check - Date checked: date=%s, holiday=%t", date.Format(domain.DateFormat), result.IsHoliday)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/holidays/{holidayId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.holidayID(w, r, "GET /holidays/{id}")
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /holidays/{id}", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/holidays/{holidayId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.holidayID(w, r, "DELETE /holidays/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /holidays/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /holidays/{id} - Holiday deleted: holiday_id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) holidayID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	id, err := handlers.PathID(r, "holidayId")
	if err != nil {
		h.logger.Warn("%s - Invalid holiday ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidHolidayID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error) {
	if handlers.StatusForError(err) == http.StatusInternalServerError {
		h.logger.Error("%s - Failed: holiday_id=%d, error=%v", route, id, err)
	} else {
		h.logger.Warn("%s - Rejected: holiday_id=%d, error=%v", route, id, err)
	}
	handlers.RespondDomainError(w, err, msgHolidayError)
}
