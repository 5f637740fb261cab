package get_calendar

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getCalendar "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_calendar"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgInvalidMonth      = "некорректный формат месяца, ожидается YYYY-MM"
	msgProviderNotFound  = "провайдер не найден"
)

type Handler struct {
	useCase  GetCalendarUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetCalendarUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/calendar
// Query params: month (YYYY-MM, по умолчанию текущий)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]
	if providerID == "" {
		h.logger.Warn("GET /providers/{id}/calendar - Empty provider ID")
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	monthStr := r.URL.Query().Get("month")
	useCaseReq, err := ToUseCaseRequest(providerID, monthStr, time.Now(), h.location)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/calendar - Invalid month: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{id}/calendar - Provider not found: provider_id=%s", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		default:
			h.logger.Error("GET /providers/{id}/calendar - Failed to get calendar: provider_id=%s, month=%s, error=%v",
				providerID, monthStr, err)
			handlers.RespondServiceError(w, err)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/calendar - Calendar retrieved successfully: provider_id=%s, month=%s",
		providerID, result.Month)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
