package submit_review

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	submitReview "github.com/m04kA/SMC-AppointmentService/internal/usecase/submit_review"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeUseCase struct {
	got *submitReview.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *submitReview.Request) (*submitReview.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &submitReview.Response{
		ID:            "rev-1",
		AppointmentID: req.AppointmentID,
		ClientID:      req.ClientID,
		Rating:        req.Rating,
		CreatedAt:     time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC),
	}, nil
}

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/appointments/{appointmentId}/review", h.Handle)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/appt-1/review", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), "client-1"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(NewHandler(uc, logger.NewNop()), `{"rating":5,"comment":"great"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "appt-1", uc.got.AppointmentID)
	assert.Equal(t, "client-1", uc.got.ClientID)
	assert.Equal(t, "great", *uc.got.Comment)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "rating zero", body: `{"rating":0}`, err: submitReview.ErrInvalidRating, wantStatus: http.StatusBadRequest},
		{name: "rating six", body: `{"rating":6}`, err: submitReview.ErrInvalidRating, wantStatus: http.StatusBadRequest},
		{name: "not completed", body: `{"rating":4}`, err: submitReview.ErrNotCompleted, wantStatus: http.StatusConflict},
		{name: "second review", body: `{"rating":4}`, err: submitReview.ErrAlreadyReviewed, wantStatus: http.StatusConflict},
		{name: "not the client", body: `{"rating":4}`, err: submitReview.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "comment too long", body: `{"rating":4}`, err: submitReview.ErrCommentTooLong, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop()), tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_InvalidRatingReason(t *testing.T) {
	for _, body := range []string{`{"rating":9}`, `{"rating":0}`, `{}`} {
		t.Run(body, func(t *testing.T) {
			uc := &fakeUseCase{err: submitReview.ErrInvalidRating}
			rec := serve(NewHandler(uc, logger.NewNop()), body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.NotNil(t, uc.got, "use case must see the rating")

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, msgInvalidRating, resp["error"])
		})
	}
}
