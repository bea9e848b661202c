package get_free_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TimberService/internal/api/handlers"
	"github.com/m04kA/SMC-TimberService/internal/domain"
	getFreeSlots "github.com/m04kA/SMC-TimberService/internal/usecase/get_free_slots"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate     = "дата обязательна"
	msgInvalidDuration = "длительность должна быть положительным числом минут"
	msgInvalidRequest  = "некорректный запрос"
)

type Handler struct {
	useCase GetFreeSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetFreeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/free-slots
// Query params: date (required), duration (optional, минимальная длительность окна)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.RequiredQueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /availability/free-slots - Invalid date: %v", err)
		if errors.Is(err, handlers.ErrMissingParam) {
			handlers.RespondBadRequest(w, msgMissingDate)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	duration := domain.DefaultMinDurationMinutes
	if raw := r.URL.Query().Get("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil || duration <= 0 {
			h.logger.Warn("GET /availability/free-slots - Invalid duration: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getFreeSlots.Request{
		Date:            date,
		DurationMinutes: duration,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.logger.Warn("GET /availability/free-slots - Invalid request: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidRequest)
			return
		}
		h.logger.Error("GET /availability/free-slots - Failed to get free slots: date=%s, error=%v",
			date.Format(domain.DateFormat), err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability/free-slots - Slots retrieved: date=%s, free=%d, degraded=%t",
		date.Format(domain.DateFormat), len(result.Free), result.Degraded)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
