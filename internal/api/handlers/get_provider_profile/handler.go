package get_provider_profile

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/providers"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgProviderNotFound  = "провайдер не найден"
)

type Handler struct {
	service ProviderService
	logger  Logger
}

func NewHandler(service ProviderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/profile
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]
	if providerID == "" {
		h.logger.Warn("GET /providers/{id}/profile - Empty provider ID")
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	result, err := h.service.GetProfile(r.Context(), providerID)
	if err != nil {
		switch {
		case errors.Is(err, providers.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{id}/profile - Provider not found: provider_id=%s", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		default:
			h.logger.Error("GET /providers/{id}/profile - Failed to get profile: provider_id=%s, error=%v", providerID, err)
			handlers.RespondServiceError(w, err)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/profile - Profile retrieved successfully: provider_id=%s, services=%d",
		providerID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
