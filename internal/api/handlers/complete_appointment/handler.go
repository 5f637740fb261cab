package complete_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "завершить запись может только провайдер"
	msgNotConfirmed         = "запись уже отменена или завершена"
	msgNotStarted           = "запись ещё не началась"
	msgInvalidCode          = "неверный код подтверждения"
	msgTooManyAttempts      = "слишком много попыток ввода кода, повторите позже"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointmentId"]
	if appointmentID == "" {
		h.logger.Warn("PATCH /appointments/{id}/complete - Empty appointment ID")
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/complete - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CompleteAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/complete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.BodyErrorMessage(err, msgInvalidRequestBody))
		return
	}

	result, err := h.service.Complete(r.Context(), appointmentID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/complete - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/complete - Access denied: appointment_id=%s, user_id=%s",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrNotConfirmed):
			h.logger.Warn("PATCH /appointments/{id}/complete - Not confirmed: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgNotConfirmed)

		case errors.Is(err, appointments.ErrNotStarted):
			h.logger.Warn("PATCH /appointments/{id}/complete - Not started: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgNotStarted)

		case errors.Is(err, appointments.ErrInvalidCompletionCode):
			h.logger.Warn("PATCH /appointments/{id}/complete - Invalid completion code: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgInvalidCode)

		case errors.Is(err, appointments.ErrTooManyAttempts):
			h.logger.Warn("PATCH /appointments/{id}/complete - Too many attempts: appointment_id=%s, user_id=%s",
				appointmentID, userID)
			handlers.RespondTooManyRequests(w, msgTooManyAttempts)

		default:
			h.logger.Error("PATCH /appointments/{id}/complete - Failed to complete appointment: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondServiceError(w, err)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/complete - Appointment completed successfully: appointment_id=%s, provider_id=%s",
		appointmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
