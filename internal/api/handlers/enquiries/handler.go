package enquiries

import (
	"net/http"

	"github.com/m04kA/SMC-TimberService/internal/api/handlers"
	"github.com/m04kA/SMC-TimberService/internal/service/enquiries/models"
)

const (
	msgInvalidEnquiryID   = "некорректный ID заявки"
	msgInvalidFilter      = "некорректный фильтр, даты ожидаются в формате YYYY-MM-DD"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEnquiryError       = "не удалось обработать заявку"
	msgInvalidPatch       = "некорректное обновление заявки"
)

type Handler struct {
	service EnquiryService
	logger  Logger
}

func NewHandler(service EnquiryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/enquiries
// Query params: status, workType, startDate, endDate (все опциональны)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req, err := ToListRequest(r)
	if err != nil {
		h.logger.Warn("GET /enquiries - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, "GET /enquiries", 0, err, msgInvalidFilter)
		return
	}

	h.logger.Info("GET /enquiries - Enquiries retrieved: count=%d", result.Count)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Stats GET /api/v1/enquiries/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Stats(r.Context())
	if err != nil {
		h.respondError(w, "GET /enquiries/stats", 0, err, msgEnquiryError)
		return
	}

	h.logger.Info("GET /enquiries/stats - Stats retrieved: total=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/enquiries/{enquiryId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.enquiryID(w, r, "GET /enquiries/{id}")
	if !ok {
		return
	}

	result, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /enquiries/{id}", id, err, msgEnquiryError)
		return
	}

	h.logger.Info("GET /enquiries/{id} - Enquiry retrieved: enquiry_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Patch PATCH /api/v1/enquiries/{enquiryId}
// Административное обновление полей без проверки переходов
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.enquiryID(w, r, "PATCH /enquiries/{id}")
	if !ok {
		return
	}

	var req models.PatchEnquiryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /enquiries/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Patch(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PATCH /enquiries/{id}", id, err, msgInvalidPatch)
		return
	}

	h.logger.Info("PATCH /enquiries/{id} - Enquiry updated: enquiry_id=%d, status=%s", id, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/enquiries/{enquiryId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.enquiryID(w, r, "DELETE /enquiries/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /enquiries/{id}", id, err, msgEnquiryError)
		return
	}

	h.logger.Info("DELETE /enquiries/{id} - Enquiry deleted: enquiry_id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) enquiryID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	id, err := handlers.PathID(r, "enquiryId")
	if err != nil {
		h.logger.Warn("%s - Invalid enquiry ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidEnquiryID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error, msg string) {
	if handlers.StatusForError(err) == http.StatusInternalServerError {
		h.logger.Error("%s - Failed: enquiry_id=%d, error=%v", route, id, err)
	} else {
		h.logger.Warn("%s - Rejected: enquiry_id=%d, error=%v", route, id, err)
	}
	handlers.RespondDomainError(w, err, msg)
}
