package schedule_blocks

import (
	"net/http"

	"github.com/m04kA/SMC-TimberService/internal/api/handlers"
	"github.com/m04kA/SMC-TimberService/internal/service/schedule/models"
)

const (
	msgInvalidBlockID     = "некорректный ID блока расписания"
	msgInvalidFilter      = "некорректный фильтр, даты ожидаются в формате YYYY-MM-DD"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBlock       = "некорректные данные блока расписания"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/schedule-blocks
// Query params: date (блоки одной даты) либо startDate, endDate, status
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /schedule-blocks - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	var result *models.BlockListResponse
	if date != nil {
		result, err = h.service.ListForDate(r.Context(), *date)
	} else {
		req, parseErr := ToListRequest(r)
		if parseErr != nil {
			h.logger.Warn("GET /schedule-blocks - Invalid filter: %v", parseErr)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		result, err = h.service.List(r.Context(), req)
	}
	if err != nil {
		h.respondError(w, "GET /schedule-blocks", 0, err, msgInvalidFilter)
		return
	}

	h.logger.Info("GET /schedule-blocks - Blocks retrieved: count=%d", len(result.Blocks))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/schedule-blocks
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule-blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /schedule-blocks", 0, err, msgInvalidBlock)
		return
	}

	h.logger.Info("POST /schedule-blocks - Block created: block_id=%d, date=%s, start=%s",
		result.ID, result.Date, result.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Get GET /api/v1/schedule-blocks/{blockId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.blockID(w, r, "GET /schedule-blocks/{id}")
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /schedule-blocks/{id}", id, err, msgInvalidBlock)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/v1/schedule-blocks/{blockId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.blockID(w, r, "PUT /schedule-blocks/{id}")
	if !ok {
		return
	}

	var req models.UpdateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule-blocks/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /schedule-blocks/{id}", id, err, msgInvalidBlock)
		return
	}

	h.logger.Info("PUT /schedule-blocks/{id} - Block updated: block_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/schedule-blocks/{blockId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.blockID(w, r, "DELETE /schedule-blocks/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /schedule-blocks/{id}", id, err, msgInvalidBlock)
		return
	}

	h.logger.Info("DELETE /schedule-blocks/{id} - Block deleted: block_id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) blockID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	id, err := handlers.PathID(r, "blockId")
	if err != nil {
		h.logger.Warn("%s - Invalid block ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error, msg string) {
	if handlers.StatusForError(err) == http.StatusInternalServerError {
		h.logger.Error("%s - Failed: block_id=%d, error=%v", route, id, err)
	} else {
		h.logger.Warn("%s - Rejected: block_id=%d, error=%v", route, id, err)
	}
	handlers.RespondDomainError(w, err, msg)
}

