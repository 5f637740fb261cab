package update_availability

import "github.com/m04kA/SMC-AppointmentService/internal/service/providers/models"

// UpdateAvailabilityRequest HTTP request model
type UpdateAvailabilityRequest struct {
	ProviderName *string  `json:"providerName,omitempty" validate:"omitempty,max=200"`
	WorkingDays  []string `json:"workingDays" validate:"required,min=1,max=7"`
	OpenTime     string   `json:"openTime" validate:"required"`
	CloseTime    string   `json:"closeTime" validate:"required"`
	BlockedDates []string `json:"blockedDates"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateAvailabilityRequest) ToServiceRequest(providerID, userID string) *models.UpdateAvailabilityRequest {
	return &models.UpdateAvailabilityRequest{
		UserID:       userID,
		ProviderID:   providerID,
		ProviderName: r.ProviderName,
		WorkingDays:  r.WorkingDays,
		OpenTime:     r.OpenTime,
		CloseTime:    r.CloseTime,
		BlockedDates: r.BlockedDates,
	}
}
