package check_availability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-TimberService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-TimberService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	result *domain.AvailabilityResult
	err    error
	got    *checkAvailability.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *checkAvailability.Request) (*domain.AvailabilityResult, error) {
	f.got = req
	return f.result, f.err
}

func serve(uc *fakeUseCase, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/availability?"+query, nil))
	return rec
}

func TestHandle_Unavailable(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{result: &domain.AvailabilityResult{
		Reason: domain.ReasonBooked,
		Conflicts: []domain.Conflict{{
			Source: domain.ConflictSourceEnquiry,
			ID:     1,
			Title:  "Alice (Planing)",
			Status: string(domain.StatusTimeAccepted),
			Window: domain.TimeWindow{Date: day, Start: "09:00", DurationMinutes: 60},
		}},
	}}

	rec := serve(uc, "date=2024-06-10&startTime=09:30&duration=30&excludeEnquiryId=9")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, types.TimeString("09:30"), uc.got.StartTime)
	assert.Equal(t, 30, uc.got.DurationMinutes)
	require.NotNil(t, uc.got.ExcludeEnquiryID)
	assert.Equal(t, int64(9), *uc.got.ExcludeEnquiryID)

	var resp AvailabilityResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Available)
	assert.Equal(t, "booked", resp.Reason)
	assert.Equal(t, "10:00", resp.EndTime)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "09:00", resp.Conflicts[0].StartTime)
	assert.Equal(t, "10:00", resp.Conflicts[0].EndTime)
}

func TestHandle_BadRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "missing date", query: "startTime=09:00&duration=30"},
		{name: "bad date", query: "date=10/06/2024&startTime=09:00&duration=30"},
		{name: "bad time", query: "date=2024-06-10&startTime=9am&duration=30"},
		{name: "missing duration", query: "date=2024-06-10&startTime=09:00"},
		{name: "crosses midnight", query: "date=2024-06-10&startTime=23:30&duration=60"},
		{name: "bad exclude id", query: "date=2024-06-10&startTime=09:00&duration=30&excludeEnquiryId=x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := serve(uc, tt.query)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_InternalError(t *testing.T) {
	rec := serve(&fakeUseCase{err: errors.New("db down")}, "date=2024-06-10&startTime=09:00&duration=30")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
