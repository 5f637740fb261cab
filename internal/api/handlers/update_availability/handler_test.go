package update_availability

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/providers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/providers/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	got *models.UpdateAvailabilityRequest
	err error
}

func (f *fakeService) UpdateAvailability(_ context.Context, req *models.UpdateAvailabilityRequest) (*models.AvailabilityResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AvailabilityResponse{ProviderID: req.ProviderID, WorkingDays: req.WorkingDays}, nil
}

func serve(h *Handler, userID, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/providers/{providerId}/availability", h.Handle)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/providers/prov-1/availability", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"workingDays":["monday","tuesday"],"openTime":"09:00","closeTime":"18:00","blockedDates":["2025-10-15"]}`

func TestHandle_Updated(t *testing.T) {
	svc := &fakeService{}
	rec := serve(NewHandler(svc, logger.NewNop()), "prov-1", validBody)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "prov-1", svc.got.ProviderID)
	assert.Equal(t, "prov-1", svc.got.UserID)
	assert.Equal(t, []string{"2025-10-15"}, svc.got.BlockedDates)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "no working days", body: `{"workingDays":[],"openTime":"09:00","closeTime":"18:00"}`, wantStatus: http.StatusBadRequest},
		{name: "missing open time", body: `{"workingDays":["monday"],"closeTime":"18:00"}`, wantStatus: http.StatusBadRequest},
		{name: "foreign provider", body: validBody, err: providers.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "close before open", body: validBody, err: fmt.Errorf("%w: close before open", providers.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "store down", body: validBody, err: providers.ErrInternal, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeService{err: tt.err}, logger.NewNop()), "prov-1", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
