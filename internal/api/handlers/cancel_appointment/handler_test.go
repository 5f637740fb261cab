package cancel_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	gotID  string
	gotReq *models.CancelRequest
	err    error
}

func (f *fakeService) Cancel(_ context.Context, id string, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	f.gotID = id
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, Status: "cancelled_by_client"}, nil
}

func serve(h *Handler, userID string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Handle("/api/v1/appointments/{appointmentId}/cancel",
		middleware.Auth(http.HandlerFunc(h.Handle))).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/appt-1/cancel", nil)
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Cancelled(t *testing.T) {
	svc := &fakeService{}
	rec := serve(NewHandler(svc, logger.NewNop()), "client-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "appt-1", svc.gotID)
	assert.Equal(t, "client-1", svc.gotReq.UserID)
	assert.Contains(t, rec.Body.String(), "cancelled_by_client")
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: appointments.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{name: "stranger", err: appointments.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "already cancelled", err: appointments.ErrNotConfirmed, wantStatus: http.StatusConflict},
		{name: "inside 12h window", err: appointments.ErrCancellationWindowPassed, wantStatus: http.StatusConflict},
		{name: "store down", err: appointments.ErrInternal, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeService{err: tt.err}, logger.NewNop()), "client-1")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_RequiresUser(t *testing.T) {
	rec := serve(NewHandler(&fakeService{}, logger.NewNop()), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
