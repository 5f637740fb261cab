package get_provider_profile

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/providers/models"
)

type ProviderService interface {
	GetProfile(ctx context.Context, providerID string) (*models.ProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
