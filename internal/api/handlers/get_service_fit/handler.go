package get_service_fit

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getServiceFit "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_service_fit"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgInvalidStart      = "некорректный формат времени начала, ожидается RFC3339"
	msgStartUnavailable  = "время начала вне рабочих часов или уже занято"
	msgProviderNotFound  = "провайдер не найден"
)

type Handler struct {
	useCase GetServiceFitUseCase
	logger  Logger
}

func NewHandler(useCase GetServiceFitUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/service-fit
// Query params: start (required, RFC3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]
	if providerID == "" {
		h.logger.Warn("GET /providers/{id}/service-fit - Empty provider ID")
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	startStr := r.URL.Query().Get("start")
	useCaseReq, err := ToUseCaseRequest(providerID, startStr)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/service-fit - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getServiceFit.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{id}/service-fit - Provider not found: provider_id=%s", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, getServiceFit.ErrInvalidStartTime):
			h.logger.Warn("GET /providers/{id}/service-fit - Start unavailable: provider_id=%s, start=%s", providerID, startStr)
			handlers.RespondBadRequest(w, msgStartUnavailable)

		default:
			h.logger.Error("GET /providers/{id}/service-fit - Failed to fit services: provider_id=%s, start=%s, error=%v",
				providerID, startStr, err)
			handlers.RespondServiceError(w, err)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/service-fit - Services fitted successfully: provider_id=%s, start=%s, max_duration=%d",
		providerID, startStr, result.MaxDuration)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
