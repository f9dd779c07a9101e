package get_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/availability"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/availability/models"
)

type fakeService struct {
	got domain.SlotsRequest
	err error
}

func (f *fakeService) GetSlots(_ context.Context, req domain.SlotsRequest) (*models.SlotsResult, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	result := &models.SlotsResult{
		CourtID:    req.CourtID,
		Date:       req.Date,
		Durations:  req.Durations,
		ByDuration: make(map[int][]models.IntervalResponse),
	}
	for _, d := range req.Durations {
		result.ByDuration[d] = []models.IntervalResponse{{Start: 540, End: 540 + d}}
	}
	return result, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc AvailabilityService, url string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/courts/{courtId}/slots", NewHandler(svc, nopLogger{}).Handle)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func TestHandle_SingleDuration(t *testing.T) {
	svc := &fakeService{}
	w := serve(svc, "/api/v1/courts/5/slots?date=2025-03-10&duration=60")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"courtId":5,"date":"2025-03-10","durationMinutes":60,"slots":[{"start":540,"end":600}]}`, w.Body.String())
	assert.Equal(t, int64(5), svc.got.CourtID)
	assert.True(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC).Equal(svc.got.Date))
}

func TestHandle_MultipleDurations(t *testing.T) {
	w := serve(&fakeService{}, "/api/v1/courts/5/slots?date=2025-03-10&duration=60&duration=90")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"courtId":5,"date":"2025-03-10","slots":{"60":[{"start":540,"end":600}],"90":[{"start":540,"end":630}]}}`,
		w.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		err        error
		wantStatus int
	}{
		{name: "bad court id", url: "/api/v1/courts/abc/slots?date=2025-03-10&duration=60", wantStatus: http.StatusBadRequest},
		{name: "missing date", url: "/api/v1/courts/5/slots?duration=60", wantStatus: http.StatusBadRequest},
		{name: "missing duration", url: "/api/v1/courts/5/slots?date=2025-03-10", wantStatus: http.StatusBadRequest},
		{name: "negative duration", url: "/api/v1/courts/5/slots?date=2025-03-10&duration=-30", wantStatus: http.StatusBadRequest},
		{name: "court not found", url: "/api/v1/courts/5/slots?date=2025-03-10&duration=60", err: availability.ErrCourtNotFound, wantStatus: http.StatusNotFound},
		{name: "service validation", url: "/api/v1/courts/5/slots?date=2025-03-10&duration=60", err: availability.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", url: "/api/v1/courts/5/slots?date=2025-03-10&duration=60", err: availability.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeService{err: tt.err}, tt.url)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
