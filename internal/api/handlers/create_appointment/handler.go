package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректный формат времени начала, ожидается RFC3339"
	msgNoServices         = "выберите хотя бы одну услугу"
	msgSlotNotAvailable   = "выбранное время уже занято"
	msgProviderNotFound   = "провайдер не найден"
	msgUnknownService     = "услуга не найдена в каталоге провайдера"
	msgTotalsMismatch     = "итоговая длительность или стоимость не совпадают с каталогом"
	msgNotInSlotGrid      = "время начала вне рабочих часов или не совпадает с сеткой слотов"
	msgDayClosed          = "провайдер не работает в выбранную дату"
	msgStartInPast        = "время начала уже прошло"
	msgCapacityExceeded   = "выбранные услуги не успевают закончиться до закрытия"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.BodyErrorMessage(err, msgInvalidRequestBody))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: client_id=%s, provider_id=%s, start=%s",
				userID, req.ProviderID, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrProviderNotFound):
			h.logger.Warn("POST /appointments - Provider not found: provider_id=%s", req.ProviderID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, createAppointment.ErrUnknownService):
			h.logger.Warn("POST /appointments - Unknown service: provider_id=%s, services=%v", req.ProviderID, req.Services)
			handlers.RespondBadRequest(w, msgUnknownService)

		case errors.Is(err, createAppointment.ErrTotalsMismatch):
			h.logger.Warn("POST /appointments - Totals mismatch: provider_id=%s", req.ProviderID)
			handlers.RespondBadRequest(w, msgTotalsMismatch)

		case errors.Is(err, createAppointment.ErrInvalidStartTime):
			h.logger.Warn("POST /appointments - Start time outside slot grid: provider_id=%s, start=%s",
				req.ProviderID, req.StartTime)
			handlers.RespondBadRequest(w, msgNotInSlotGrid)

		case errors.Is(err, createAppointment.ErrDayClosed):
			h.logger.Warn("POST /appointments - Provider closed: provider_id=%s, start=%s", req.ProviderID, req.StartTime)
			handlers.RespondConflict(w, msgDayClosed)

		case errors.Is(err, createAppointment.ErrStartInPast):
			h.logger.Warn("POST /appointments - Start in past: provider_id=%s, start=%s", req.ProviderID, req.StartTime)
			handlers.RespondConflict(w, msgStartInPast)

		case errors.Is(err, createAppointment.ErrCapacityExceeded):
			h.logger.Warn("POST /appointments - Capacity exceeded: provider_id=%s, start=%s", req.ProviderID, req.StartTime)
			handlers.RespondUnprocessableEntity(w, msgCapacityExceeded)

		case errors.Is(err, createAppointment.ErrNoServices):
			h.logger.Warn("POST /appointments - No services selected: client_id=%s, provider_id=%s", userID, req.ProviderID)
			handlers.RespondBadRequest(w, msgNoServices)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%s, provider_id=%s, error=%v",
				userID, req.ProviderID, err)
			handlers.RespondServiceError(w, err)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%s, client_id=%s, provider_id=%s",
		result.ID, userID, req.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
