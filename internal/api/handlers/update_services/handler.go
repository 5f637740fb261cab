package update_services

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/providers"
)

const (
	msgInvalidProviderID  = "некорректный ID провайдера"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgForbidden          = "менять каталог может только сам провайдер"
	msgProviderNotFound   = "сначала задайте расписание провайдера"
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

// Handle PUT /api/v1/providers/{providerId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]
	if providerID == "" {
		h.logger.Warn("PUT /providers/{id}/services - Empty provider ID")
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /providers/{id}/services - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateServicesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /providers/{id}/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.BodyErrorMessage(err, msgInvalidRequestBody))
		return
	}

	result, err := h.service.UpdateServices(r.Context(), req.ToServiceRequest(providerID, userID))
	if err != nil {
		switch {
		case errors.Is(err, providers.ErrAccessDenied):
			h.logger.Warn("PUT /providers/{id}/services - Access denied: provider_id=%s, user_id=%s", providerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, providers.ErrProviderNotFound):
			h.logger.Warn("PUT /providers/{id}/services - Provider has no availability: provider_id=%s", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, providers.ErrInvalidInput):
			h.logger.Warn("PUT /providers/{id}/services - Invalid catalog: provider_id=%s, error=%v", providerID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /providers/{id}/services - Failed to update services: provider_id=%s, error=%v",
				providerID, err)
			handlers.RespondServiceError(w, err)
		}
		return
	}

	h.logger.Info("PUT /providers/{id}/services - Services updated successfully: provider_id=%s, count=%d",
		providerID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
