package submit_enquiry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TimberService/internal/service/enquiries"
	"github.com/m04kA/SMC-TimberService/internal/service/enquiries/models"
	submitEnquiry "github.com/m04kA/SMC-TimberService/internal/usecase/submit_enquiry"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	err error
	got *models.SubmitEnquiryRequest
}

func (f *fakeUseCase) Execute(_ context.Context, req *models.SubmitEnquiryRequest) (*submitEnquiry.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &submitEnquiry.Response{
		Enquiry:              &models.EnquiryResponse{ID: 11, CustomerName: req.CustomerName},
		AvailabilityDegraded: true,
		Warnings:             []string{"schedule blocks could not be checked"},
	}, nil
}

const body = `{"customerName":"Alice","workType":"Planing","logItems":[{"woodType":"Teak","numberOfLogs":2,"cubicFeet":12}],"requestedDate":"2024-06-10","requestedTime":"09:00"}`

func post(uc *fakeUseCase, payload string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodPost, "/enquiries", strings.NewReader(payload)))
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}
	rec := post(uc, body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Alice", uc.got.CustomerName)
	require.Len(t, uc.got.LogItems, 1)

	var resp SubmitEnquiryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(11), resp.Enquiry.ID)
	assert.True(t, resp.AvailabilityDegraded)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "holiday", err: fmt.Errorf("%w: christmas", submitEnquiry.ErrRequestedDateIsHoliday), want: http.StatusBadRequest},
		{name: "booked", err: fmt.Errorf("%w: 10:00-11:00", submitEnquiry.ErrRequestedTimeUnavailable), want: http.StatusConflict},
		{name: "validation", err: enquiries.ErrInvalidWorkType, want: http.StatusBadRequest},
		{name: "internal", err: submitEnquiry.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, post(&fakeUseCase{err: tt.err}, body).Code)
		})
	}

	assert.Equal(t, http.StatusBadRequest, post(&fakeUseCase{}, `{"customerName":`).Code)
}
