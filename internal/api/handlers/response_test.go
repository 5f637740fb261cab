package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: fmt.Errorf("x: %w", domain.ErrValidation), status: http.StatusBadRequest},
		{err: fmt.Errorf("x: %w", domain.ErrCapacityExceeded), status: http.StatusUnprocessableEntity},
		{err: fmt.Errorf("x: %w", domain.ErrNotFound), status: http.StatusNotFound},
		{err: fmt.Errorf("x: %w", domain.ErrConflict), status: http.StatusConflict},
		{err: fmt.Errorf("x: %w", domain.ErrPreconditionFailed), status: http.StatusConflict},
		{err: fmt.Errorf("x: %w", domain.ErrStoreUnavailable), status: http.StatusServiceUnavailable},
		{err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		RespondServiceError(rec, tt.err)
		assert.Equal(t, tt.status, rec.Code, tt.err.Error())

		var body ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.NotEmpty(t, body.Error)
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name   string `json:"name" validate:"required"`
		Rating int    `json:"rating" validate:"min=1,max=5"`
	}

	decode := func(body string) error {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		var p payload
		return DecodeJSON(req, &p)
	}

	assert.NoError(t, decode(`{"name":"ok","rating":5}`))
	assert.Error(t, decode(`{"name":"ok","rating":6}`))
	assert.Error(t, decode(`{"rating":3}`))
	assert.Error(t, decode(`{"name":"ok","rating":3,"extra":true}`))
	assert.Error(t, decode(`not json`))
}

func TestBodyErrorMessage(t *testing.T) {
	type payload struct {
		Name string `json:"name" validate:"required,max=3"`
	}

	decode := func(body string) error {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		var p payload
		return DecodeJSON(req, &p)
	}

	assert.Equal(t, "поле name: нарушено правило required", BodyErrorMessage(decode(`{}`), "fallback"))
	assert.Equal(t, "поле name: нарушено правило max=3", BodyErrorMessage(decode(`{"name":"long"}`), "fallback"))
	assert.Equal(t, "fallback", BodyErrorMessage(decode(`not json`), "fallback"))
}
