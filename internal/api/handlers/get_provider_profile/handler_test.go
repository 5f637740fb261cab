package get_provider_profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/service/providers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/providers/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	got string
	err error
}

func (f *fakeService) GetProfile(_ context.Context, providerID string) (*models.ProfileResponse, error) {
	f.got = providerID
	if f.err != nil {
		return nil, f.err
	}
	return &models.ProfileResponse{
		AvailabilityResponse: models.AvailabilityResponse{
			ProviderID:  providerID,
			WorkingDays: []string{"monday"},
			OpenTime:    "09:00",
			CloseTime:   "18:00",
		},
		Services: []models.ServiceResponse{{Name: "Haircut", DurationMinutes: 30, Price: 25}},
		Rating:   models.RatingResponse{ReviewsCount: 2, AverageRating: 4.5},
	}, nil
}

func serve(h *Handler) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/providers/{providerId}/profile", h.Handle)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/providers/prov-1/profile", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Profile(t *testing.T) {
	svc := &fakeService{}
	rec := serve(NewHandler(svc, logger.NewNop()))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "prov-1", svc.got)

	var body models.ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "prov-1", body.ProviderID)
	assert.Equal(t, "09:00", body.OpenTime)
	require.Len(t, body.Services, 1)
	assert.Equal(t, 2, body.Rating.ReviewsCount)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "unknown provider", err: providers.ErrProviderNotFound, wantStatus: http.StatusNotFound},
		{name: "store down", err: providers.ErrInternal, wantStatus: http.StatusServiceUnavailable},
		{name: "unexpected", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeService{err: tt.err}, logger.NewNop()))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
