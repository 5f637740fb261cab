package create_appointment

import (
	"time"

	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ProviderID    string   `json:"providerId" validate:"required,max=128"`
	StartTime     string   `json:"startTime" validate:"required"` // RFC3339: "2025-10-15T09:00:00+03:00"
	Services      []string `json:"services"`
	TotalDuration *int     `json:"totalDuration,omitempty" validate:"omitempty,gt=0"`
	TotalPrice    *float64 `json:"totalPrice,omitempty" validate:"omitempty,gte=0"`
	ProviderName  *string  `json:"providerName,omitempty" validate:"omitempty,max=200"`
	ClientName    *string  `json:"clientName,omitempty" validate:"omitempty,max=200"`
}

// ServiceResponse HTTP response model услуги
type ServiceResponse struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID             string            `json:"id"`
	ProviderID     string            `json:"providerId"`
	ClientID       string            `json:"clientId"`
	StartTime      string            `json:"startTime"`
	EndTime        string            `json:"endTime"`
	Services       []ServiceResponse `json:"services"`
	TotalDuration  int               `json:"totalDuration"`
	TotalPrice     float64           `json:"totalPrice"`
	Status         string            `json:"status"`
	CompletionCode string            `json:"completionCode"`
	ProviderName   *string           `json:"providerName,omitempty"`
	ClientName     *string           `json:"clientName,omitempty"`
	CreatedAt      string            `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID string) (*createAppointment.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ProviderID:       r.ProviderID,
		ClientID:         clientID,
		StartTime:        startTime,
		ServiceNames:     r.Services,
		ExpectedDuration: r.TotalDuration,
		ExpectedPrice:    r.TotalPrice,
		ProviderName:     r.ProviderName,
		ClientName:       r.ClientName,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	services := make([]ServiceResponse, len(resp.Services))
	for i, s := range resp.Services {
		services[i] = ServiceResponse{
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		}
	}

	return &AppointmentResponse{
		ID:             resp.ID,
		ProviderID:     resp.ProviderID,
		ClientID:       resp.ClientID,
		StartTime:      resp.StartTime.Format(time.RFC3339),
		EndTime:        resp.EndTime.Format(time.RFC3339),
		Services:       services,
		TotalDuration:  resp.TotalDuration,
		TotalPrice:     resp.TotalPrice,
		Status:         string(resp.Status),
		CompletionCode: resp.CompletionCode,
		ProviderName:   resp.ProviderName,
		ClientName:     resp.ClientName,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
	}
}
