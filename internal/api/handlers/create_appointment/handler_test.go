package create_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeUseCase struct {
	got  *createAppointment.Request
	resp *createAppointment.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	f.got = req
	return f.resp, f.err
}

func newRequest(body string, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	return req
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createAppointment.Response{
		ID:             "appt-1",
		ProviderID:     "prov-1",
		ClientID:       "client-1",
		StartTime:      start,
		EndTime:        start.Add(30 * time.Minute),
		Services:       []domain.ServiceCatalogEntry{{Name: "Haircut", DurationMinutes: 30, Price: 25}},
		TotalDuration:  30,
		TotalPrice:     25,
		Status:         domain.StatusConfirmed,
		CompletionCode: "123456",
	}}
	h := NewHandler(uc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(`{"providerId":"prov-1","startTime":"2025-10-15T09:00:00Z","services":["Haircut"]}`, "client-1"))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "client-1", uc.got.ClientID)
	assert.True(t, start.Equal(uc.got.StartTime))

	var body AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "123456", body.CompletionCode)
	assert.Equal(t, "2025-10-15T09:30:00Z", body.EndTime)
}

func TestHandle_Errors(t *testing.T) {
	validBody := `{"providerId":"prov-1","startTime":"2025-10-15T09:00:00Z","services":["Haircut"]}`

	tests := []struct {
		name       string
		body       string
		userID     string
		err        error
		wantStatus int
	}{
		{name: "no user", body: validBody, wantStatus: http.StatusUnauthorized},
		{name: "no services", body: `{"providerId":"prov-1","startTime":"2025-10-15T09:00:00Z","services":[]}`, userID: "c", err: createAppointment.ErrNoServices, wantStatus: http.StatusBadRequest},
		{name: "unknown field", body: `{"providerId":"prov-1","startTime":"2025-10-15T09:00:00Z","services":["a"],"x":1}`, userID: "c", wantStatus: http.StatusBadRequest},
		{name: "bad start", body: `{"providerId":"prov-1","startTime":"15.10.2025","services":["a"]}`, userID: "c", wantStatus: http.StatusBadRequest},
		{name: "slot taken", body: validBody, userID: "c", err: createAppointment.ErrSlotNotAvailable, wantStatus: http.StatusConflict},
		{name: "capacity", body: validBody, userID: "c", err: createAppointment.ErrCapacityExceeded, wantStatus: http.StatusUnprocessableEntity},
		{name: "provider missing", body: validBody, userID: "c", err: createAppointment.ErrProviderNotFound, wantStatus: http.StatusNotFound},
		{name: "off grid", body: validBody, userID: "c", err: createAppointment.ErrInvalidStartTime, wantStatus: http.StatusBadRequest},
		{name: "store down", body: validBody, userID: "c", err: createAppointment.ErrInternal, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop())
			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tt.body, tt.userID))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_EmptyServicesReachUseCase(t *testing.T) {
	uc := &fakeUseCase{err: createAppointment.ErrNoServices}
	h := NewHandler(uc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(`{"providerId":"prov-1","startTime":"2025-10-15T09:00:00Z"}`, "client-1"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, uc.got)
	assert.Empty(t, uc.got.ServiceNames)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, msgNoServices, body["error"])
}

func TestHandle_FieldRuleViolation(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(`{"startTime":"2025-10-15T09:00:00Z","services":["Haircut"]}`, "client-1"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "providerId")
}
