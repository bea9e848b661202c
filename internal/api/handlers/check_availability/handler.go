package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TimberService/internal/api/handlers"
	"github.com/m04kA/SMC-TimberService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-TimberService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-TimberService/pkg/types"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate      = "дата обязательна"
	msgInvalidTime      = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidDuration  = "длительность должна быть положительным числом минут"
	msgInvalidExcludeID = "некорректный ID исключаемой заявки"
	msgInvalidWindow    = "некорректное временное окно"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date, startTime, duration (required), excludeEnquiryId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.RequiredQueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %v", err)
		if errors.Is(err, handlers.ErrMissingParam) {
			handlers.RespondBadRequest(w, msgMissingDate)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	startTime, err := types.NewTimeStringFromString(r.URL.Query().Get("startTime"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	duration, err := strconv.Atoi(r.URL.Query().Get("duration"))
	if err != nil || duration <= 0 {
		h.logger.Warn("GET /availability - Invalid duration: %q", r.URL.Query().Get("duration"))
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	excludeID, err := handlers.QueryInt(r, "excludeEnquiryId")
	if err != nil {
		h.logger.Warn("GET /availability - Invalid exclude enquiry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExcludeID)
		return
	}

	window, err := domain.NewTimeWindow(date, startTime, duration)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid window: %v", err)
		handlers.RespondDomainError(w, err, msgInvalidWindow)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		Date:             window.Date,
		StartTime:        window.Start,
		DurationMinutes:  window.DurationMinutes,
		ExcludeEnquiryID: excludeID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.logger.Warn("GET /availability - Invalid request: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidWindow)
			return
		}
		h.logger.Error("GET /availability - Failed to check availability: date=%s, start=%s, error=%v",
			date.Format(domain.DateFormat), startTime, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability - Checked: date=%s, start=%s, duration=%d, available=%t, degraded=%t",
		window.Date.Format(domain.DateFormat), window.Start, window.DurationMinutes, result.Available, result.Degraded)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(window, result))
}
