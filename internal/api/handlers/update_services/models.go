package update_services

import "github.com/m04kA/SMC-AppointmentService/internal/service/providers/models"

// ServiceRequest HTTP model услуги
type ServiceRequest struct {
	Name            string  `json:"name" validate:"required,max=200"`
	DurationMinutes int     `json:"durationMinutes" validate:"required,gt=0"`
	Price           float64 `json:"price" validate:"gte=0"`
}

// UpdateServicesRequest HTTP request model
type UpdateServicesRequest struct {
	Services []ServiceRequest `json:"services" validate:"required,min=1,dive"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateServicesRequest) ToServiceRequest(providerID, userID string) *models.UpdateServicesRequest {
	services := make([]models.ServiceRequest, len(r.Services))
	for i, s := range r.Services {
		services[i] = models.ServiceRequest{
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		}
	}

	return &models.UpdateServicesRequest{
		UserID:     userID,
		ProviderID: providerID,
		Services:   services,
	}
}
