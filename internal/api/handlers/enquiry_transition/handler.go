package enquiry_transition

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-TimberService/internal/api/handlers"
	lifecycle "github.com/m04kA/SMC-TimberService/internal/usecase/enquiry_lifecycle"
)

const (
	msgInvalidEnquiryID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidProposal    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgTransitionFailed   = "переход заявки невозможен"
	msgSlotNotAvailable   = "окно недоступно"
	msgPaymentProvider    = "платёжный провайдер недоступен"
)

type transitionFunc func(ctx context.Context, id int64) (*lifecycle.Response, error)

type Handler struct {
	useCase LifecycleUseCase
	logger  Logger
}

func NewHandler(useCase LifecycleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Review POST /api/v1/enquiries/{enquiryId}/review
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "review", h.useCase.MarkUnderReview)
}

// AcceptTime POST /api/v1/enquiries/{enquiryId}/accept-time
// Тело опционально: {"durationMinutes": 90, "adminNotes": "..."}
func (h *Handler) AcceptTime(w http.ResponseWriter, r *http.Request) {
	var req AcceptTimeRequest
	if !h.decodeOptional(w, r, "accept-time", &req) {
		return
	}
	h.handle(w, r, "accept-time", func(ctx context.Context, id int64) (*lifecycle.Response, error) {
		return h.useCase.AcceptRequestedTime(ctx, id, req.ToUseCaseRequest())
	})
}

// ProposeTime POST /api/v1/enquiries/{enquiryId}/propose-time
func (h *Handler) ProposeTime(w http.ResponseWriter, r *http.Request) {
	var req ProposeTimeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /enquiries/{id}/propose-time - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /enquiries/{id}/propose-time - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProposal)
		return
	}

	h.handle(w, r, "propose-time", func(ctx context.Context, id int64) (*lifecycle.Response, error) {
		return h.useCase.ProposeAlternateTime(ctx, id, useCaseReq)
	})
}

// Schedule POST /api/v1/enquiries/{enquiryId}/schedule
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "schedule", h.useCase.Schedule)
}

// Start POST /api/v1/enquiries/{enquiryId}/start
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "start", h.useCase.MarkInProgress)
}

// Complete POST /api/v1/enquiries/{enquiryId}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "complete", h.useCase.MarkCompleted)
}

// Cancel POST /api/v1/enquiries/{enquiryId}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "cancel", h.useCase.Cancel)
}

// Reject POST /api/v1/enquiries/{enquiryId}/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "reject", h.useCase.Reject)
}

// OfflinePayment POST /api/v1/enquiries/{enquiryId}/offline-payment
func (h *Handler) OfflinePayment(w http.ResponseWriter, r *http.Request) {
	var req OfflinePaymentRequest
	if !h.decodeOptional(w, r, "offline-payment", &req) {
		return
	}
	h.handle(w, r, "offline-payment", func(ctx context.Context, id int64) (*lifecycle.Response, error) {
		return h.useCase.MarkOfflinePaymentReceived(ctx, id, &lifecycle.OfflinePaymentRequest{Note: req.Note})
	})
}

// SyncPayment POST /api/v1/enquiries/{enquiryId}/sync-payment
func (h *Handler) SyncPayment(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "sync-payment", h.useCase.SyncOnlinePayment)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, action string, fn transitionFunc) {
	id, err := handlers.PathID(r, "enquiryId")
	if err != nil {
		h.logger.Warn("POST /enquiries/{id}/%s - Invalid enquiry ID: %v", action, err)
		handlers.RespondBadRequest(w, msgInvalidEnquiryID)
		return
	}

	result, err := fn(r.Context(), id)
	if err != nil {
		status := handlers.StatusForError(err)
		var conflictErr *lifecycle.ConflictError
		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /enquiries/{id}/%s - Slot not available: enquiry_id=%d, reason=%s, conflicts=%d",
				action, id, conflictErr.Reason, len(conflictErr.Conflicts))
			handlers.RespondJSON(w, status, FromConflictError(status, msgSlotNotAvailable, conflictErr))

		case status < http.StatusInternalServerError:
			h.logger.Warn("POST /enquiries/{id}/%s - Rejected: enquiry_id=%d, error=%v", action, id, err)
			handlers.RespondDomainError(w, err, msgTransitionFailed)

		case errors.Is(err, lifecycle.ErrPaymentLookup):
			h.logger.Error("POST /enquiries/{id}/%s - Payment provider failed: enquiry_id=%d, error=%v", action, id, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentProvider)

		default:
			h.logger.Error("POST /enquiries/{id}/%s - Failed: enquiry_id=%d, error=%v", action, id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /enquiries/{id}/%s - Done: enquiry_id=%d, status=%s, noop=%t",
		action, id, result.Enquiry.Status, result.Noop)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// decodeOptional декодирует тело, если оно есть
func (h *Handler) decodeOptional(w http.ResponseWriter, r *http.Request, action string, v interface{}) bool {
	if r.ContentLength == 0 {
		return true
	}
	if err := handlers.DecodeJSON(r, v); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /enquiries/{id}/%s - Invalid request body: %v", action, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return false
	}
	return true
}
