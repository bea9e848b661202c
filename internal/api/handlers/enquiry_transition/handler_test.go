package enquiry_transition

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	lifecycle "github.com/m04kA/SMC-TimberService/internal/usecase/enquiry_lifecycle"
	"github.com/m04kA/SMC-TimberService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeLifecycle struct {
	LifecycleUseCase
	err     error
	accept  *lifecycle.AcceptRequest
	propose *lifecycle.ProposeRequest
	offline *lifecycle.OfflinePaymentRequest
	calls   []string
}

func (f *fakeLifecycle) respond(name string, id int64, status domain.EnquiryStatus) (*lifecycle.Response, error) {
	f.calls = append(f.calls, name)
	if f.err != nil {
		return nil, f.err
	}
	return &lifecycle.Response{Enquiry: &domain.Enquiry{ID: id, Status: status}}, nil
}

func (f *fakeLifecycle) AcceptRequestedTime(_ context.Context, id int64, req *lifecycle.AcceptRequest) (*lifecycle.Response, error) {
	f.accept = req
	return f.respond("accept", id, domain.StatusTimeAccepted)
}

func (f *fakeLifecycle) ProposeAlternateTime(_ context.Context, id int64, req *lifecycle.ProposeRequest) (*lifecycle.Response, error) {
	f.propose = req
	return f.respond("propose", id, domain.StatusAlternateTimeProposed)
}

func (f *fakeLifecycle) Schedule(_ context.Context, id int64) (*lifecycle.Response, error) {
	return f.respond("schedule", id, domain.StatusScheduled)
}

func (f *fakeLifecycle) MarkOfflinePaymentReceived(_ context.Context, id int64, req *lifecycle.OfflinePaymentRequest) (*lifecycle.Response, error) {
	f.offline = req
	return f.respond("offline", id, domain.StatusCompleted)
}

func (f *fakeLifecycle) SyncOnlinePayment(_ context.Context, id int64) (*lifecycle.Response, error) {
	return f.respond("sync", id, domain.StatusCompleted)
}

func newRouter(uc *fakeLifecycle) *mux.Router {
	h := NewHandler(uc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/enquiries/{enquiryId}/accept-time", h.AcceptTime).Methods(http.MethodPost)
	r.HandleFunc("/enquiries/{enquiryId}/propose-time", h.ProposeTime).Methods(http.MethodPost)
	r.HandleFunc("/enquiries/{enquiryId}/schedule", h.Schedule).Methods(http.MethodPost)
	r.HandleFunc("/enquiries/{enquiryId}/offline-payment", h.OfflinePayment).Methods(http.MethodPost)
	r.HandleFunc("/enquiries/{enquiryId}/sync-payment", h.SyncPayment).Methods(http.MethodPost)
	return r
}

func do(t *testing.T, r *mux.Router, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPost, path, nil)
	} else {
		req = httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAcceptTime(t *testing.T) {
	uc := &fakeLifecycle{}
	r := newRouter(uc)

	rec := do(t, r, "/enquiries/7/accept-time", `{"durationMinutes":90,"adminNotes":"ok"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 90, uc.accept.DurationMinutes)
	assert.Equal(t, "ok", *uc.accept.AdminNotes)

	var resp TransitionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(7), resp.Enquiry.ID)
	assert.Equal(t, string(domain.StatusTimeAccepted), resp.Enquiry.Status)

	rec = do(t, r, "/enquiries/7/accept-time", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, uc.accept.DurationMinutes)
}

func TestProposeTime(t *testing.T) {
	uc := &fakeLifecycle{}
	r := newRouter(uc)

	rec := do(t, r, "/enquiries/3/propose-time", `{"date":"2024-06-12","startTime":"13:00","durationMinutes":60}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), uc.propose.Date)
	assert.Equal(t, types.TimeString("13:00"), uc.propose.StartTime)

	rec = do(t, r, "/enquiries/3/propose-time", `{"date":"12.06.2024","startTime":"13:00","durationMinutes":60}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, uc.calls, 1)
}

func TestOfflinePayment(t *testing.T) {
	uc := &fakeLifecycle{}
	rec := do(t, newRouter(uc), "/enquiries/5/offline-payment", `{"note":"cash"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cash", *uc.offline.Note)
}

func TestTransition_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: lifecycle.ErrEnquiryNotFound, want: http.StatusNotFound},
		{
			name: "invalid transition",
			err:  &domain.InvalidTransitionError{EnquiryID: 1, From: domain.StatusCompleted, Transition: domain.TransitionSchedule},
			want: http.StatusUnprocessableEntity,
		},
		{name: "slot taken", err: &lifecycle.ConflictError{EnquiryID: 1, Reason: domain.ReasonBooked}, want: http.StatusConflict},
		{name: "date busy", err: lifecycle.ErrDateBusy, want: http.StatusConflict},
		{name: "payments disabled", err: fmt.Errorf("%w: %w", lifecycle.ErrPaymentLookup, domain.ErrValidation), want: http.StatusBadRequest},
		{name: "provider down", err: fmt.Errorf("%w: timeout", lifecycle.ErrPaymentLookup), want: http.StatusBadGateway},
		{name: "internal", err: lifecycle.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newRouter(&fakeLifecycle{err: tt.err}), "/enquiries/1/schedule", "")
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestTransition_InvalidID(t *testing.T) {
	uc := &fakeLifecycle{}
	rec := do(t, newRouter(uc), "/enquiries/abc/sync-payment", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, uc.calls)
}

func TestTransition_SlotConflictBody(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	conflictErr := &lifecycle.ConflictError{
		EnquiryID: 1,
		Window:    domain.TimeWindow{Date: day, Start: "10:00", DurationMinutes: 60},
		Reason:    domain.ReasonBooked,
		Conflicts: []domain.Conflict{{
			Source: domain.ConflictSourceEnquiry,
			ID:     2,
			Title:  "Customer",
			Status: string(domain.StatusScheduled),
			Window: domain.TimeWindow{Date: day, Start: "09:30", DurationMinutes: 120},
		}},
	}

	rec := do(t, newRouter(&fakeLifecycle{err: conflictErr}), "/enquiries/1/accept-time", "")
	require.Equal(t, http.StatusConflict, rec.Code)

	var body SlotConflictResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, http.StatusConflict, body.Code)
	assert.Equal(t, "2024-06-10", body.Date)
	assert.Equal(t, "10:00", body.StartTime)
	assert.Equal(t, "11:00", body.EndTime)
	assert.Equal(t, string(domain.ReasonBooked), body.Reason)
	assert.Nil(t, body.Holiday)
	require.Len(t, body.Conflicts, 1)
	assert.Equal(t, int64(2), body.Conflicts[0].ID)
	assert.Equal(t, "09:30", body.Conflicts[0].StartTime)
	assert.Equal(t, "11:30", body.Conflicts[0].EndTime)
}

func TestTransition_HolidayConflictBody(t *testing.T) {
	day := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
	conflictErr := &lifecycle.ConflictError{
		EnquiryID: 1,
		Window:    domain.TimeWindow{Date: day, Start: "10:00", DurationMinutes: 60},
		Reason:    domain.ReasonHoliday,
		Holiday:   &domain.Holiday{ID: 4, Date: day, Name: "Christmas", IsRecurring: true},
	}

	rec := do(t, newRouter(&fakeLifecycle{err: conflictErr}), "/enquiries/1/schedule", "")
	require.Equal(t, http.StatusConflict, rec.Code)

	var body SlotConflictResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Holiday)
	assert.Equal(t, "Christmas", body.Holiday.Name)
	assert.Equal(t, "2024-12-25", body.Holiday.Date)
	assert.Empty(t, body.Conflicts)
}
