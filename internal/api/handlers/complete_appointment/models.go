package complete_appointment

import "github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"

// CompleteAppointmentRequest HTTP request model
type CompleteAppointmentRequest struct {
	Code string `json:"code" validate:"required,numeric,max=16"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CompleteAppointmentRequest) ToServiceRequest(userID string) *models.CompleteRequest {
	return &models.CompleteRequest{
		UserID: userID,
		Code:   r.Code,
	}
}
