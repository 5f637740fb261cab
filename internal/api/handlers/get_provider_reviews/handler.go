package get_provider_reviews

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgInvalidParams     = "некорректные параметры пагинации"
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

// Handle GET /api/v1/providers/{providerId}/reviews
// Query params: limit (1..100, по умолчанию 20), offset
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]
	if providerID == "" {
		h.logger.Warn("GET /providers/{id}/reviews - Empty provider ID")
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	serviceReq, err := ToServiceRequest(providerID, r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	if err != nil {
		h.logger.Warn("GET /providers/{id}/reviews - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetReviews(r.Context(), serviceReq)
	if err != nil {
		h.logger.Error("GET /providers/{id}/reviews - Failed to get reviews: provider_id=%s, error=%v", providerID, err)
		handlers.RespondServiceError(w, err)
		return
	}

	h.logger.Info("GET /providers/{id}/reviews - Reviews retrieved successfully: provider_id=%s, count=%d",
		providerID, len(result.Reviews))
	handlers.RespondJSON(w, http.StatusOK, result)
}
