package get_service_fit

import (
	"time"

	getServiceFit "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_service_fit"
)

// FittedServiceResponse услуга каталога с признаком, помещается ли она
type FittedServiceResponse struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Fits            bool    `json:"fits"`
}

// ServiceFitResponse HTTP response model
type ServiceFitResponse struct {
	ProviderID  string                  `json:"providerId"`
	StartTime   string                  `json:"startTime"`
	MaxDuration int                     `json:"maxDuration"`
	Services    []FittedServiceResponse `json:"services"`
}

// ToUseCaseRequest формирует запрос к use case
func ToUseCaseRequest(providerID, startStr string) (*getServiceFit.Request, error) {
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, err
	}

	return &getServiceFit.Request{
		ProviderID: providerID,
		StartTime:  start,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getServiceFit.Response) *ServiceFitResponse {
	services := make([]FittedServiceResponse, len(resp.Services))
	for i, s := range resp.Services {
		services[i] = FittedServiceResponse{
			Name:            s.Service.Name,
			DurationMinutes: s.Service.DurationMinutes,
			Price:           s.Service.Price,
			Fits:            s.Fits,
		}
	}

	return &ServiceFitResponse{
		ProviderID:  resp.ProviderID,
		StartTime:   resp.StartTime.Format(time.RFC3339),
		MaxDuration: resp.MaxDuration,
		Services:    services,
	}
}
