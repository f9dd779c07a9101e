package update_policy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/policy"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/policy/models"
)

type fakeService struct {
	got *models.UpsertOverrideRequest
	err error
}

func (f *fakeService) Upsert(_ context.Context, req *models.UpsertOverrideRequest) (*models.OverrideResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	scope := "facility"
	if req.CourtID != nil {
		scope = "court"
	}
	return &models.OverrideResponse{ID: 1, Scope: scope, FacilityID: req.FacilityID, CourtID: req.CourtID}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc PolicyService, url, body string) *httptest.ResponseRecorder {
	h := NewHandler(svc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/facilities/{facilityId}/policy", h.Handle).Methods(http.MethodPut)
	r.HandleFunc("/api/v1/courts/{courtId}/policy", h.Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, url, strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 100))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle_FacilityScope(t *testing.T) {
	svc := &fakeService{}
	w := serve(svc, "/api/v1/facilities/3/policy", `{"maxAdvanceDays":14,"bufferMinutes":10}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(3), svc.got.FacilityID)
	assert.Nil(t, svc.got.CourtID)
	assert.Equal(t, int64(100), svc.got.UserID)
	require.NotNil(t, svc.got.MaxAdvanceDays)
	assert.Equal(t, 14, *svc.got.MaxAdvanceDays)
	assert.Nil(t, svc.got.MinDurationMinutes)
}

func TestHandle_CourtScope(t *testing.T) {
	svc := &fakeService{}
	w := serve(svc, "/api/v1/courts/5/policy", `{"minDurationMinutes":60}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.got.CourtID)
	assert.Equal(t, int64(5), *svc.got.CourtID)
	assert.Contains(t, w.Body.String(), `"scope":"court"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "negative value", body: `{"bufferMinutes":-5}`, wantStatus: http.StatusBadRequest},
		{name: "zero min duration", body: `{"minDurationMinutes":0}`, wantStatus: http.StatusBadRequest},
		{name: "merged policy invalid", body: `{"maxDurationMinutes":30}`, err: policy.ErrInvalidInput, wantStatus: http.StatusUnprocessableEntity},
		{name: "not an owner", body: `{}`, err: policy.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "court not found", body: `{}`, err: policy.ErrCourtNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", body: `{}`, err: policy.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeService{err: tt.err}, "/api/v1/courts/5/policy", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
