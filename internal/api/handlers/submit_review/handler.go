package submit_review

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	submitReview "github.com/m04kA/SMC-AppointmentService/internal/usecase/submit_review"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidRating        = "оценка должна быть от 1 до 5"
	msgCommentTooLong       = "комментарий слишком длинный"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "оставить отзыв может только клиент записи"
	msgNotCompleted         = "отзыв можно оставить только на завершённую запись"
	msgAlreadyReviewed      = "отзыв на эту запись уже оставлен"
)

type Handler struct {
	useCase SubmitReviewUseCase
	logger  Logger
}

func NewHandler(useCase SubmitReviewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/review
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointmentId"]
	if appointmentID == "" {
		h.logger.Warn("POST /appointments/{id}/review - Empty appointment ID")
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/{id}/review - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SubmitReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/review - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.BodyErrorMessage(err, msgInvalidRequestBody))
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID, userID))
	if err != nil {
		switch {
		case errors.Is(err, submitReview.ErrInvalidRating):
			h.logger.Warn("POST /appointments/{id}/review - Invalid rating: appointment_id=%s, rating=%d", appointmentID, req.Rating)
			handlers.RespondBadRequest(w, msgInvalidRating)

		case errors.Is(err, submitReview.ErrCommentTooLong):
			h.logger.Warn("POST /appointments/{id}/review - Comment too long: appointment_id=%s", appointmentID)
			handlers.RespondBadRequest(w, msgCommentTooLong)

		case errors.Is(err, submitReview.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/review - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, submitReview.ErrAccessDenied):
			h.logger.Warn("POST /appointments/{id}/review - Access denied: appointment_id=%s, user_id=%s", appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, submitReview.ErrNotCompleted):
			h.logger.Warn("POST /appointments/{id}/review - Appointment not completed: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgNotCompleted)

		case errors.Is(err, submitReview.ErrAlreadyReviewed):
			h.logger.Warn("POST /appointments/{id}/review - Already reviewed: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgAlreadyReviewed)

		default:
			h.logger.Error("POST /appointments/{id}/review - Failed to submit review: appointment_id=%s, error=%v", appointmentID, err)
			handlers.RespondServiceError(w, err)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/review - Review submitted successfully: review_id=%s, appointment_id=%s, rating=%d",
		result.ID, appointmentID, result.Rating)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
