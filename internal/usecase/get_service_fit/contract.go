package get_service_fit

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListConfirmedInRange(ctx context.Context, providerID string, from, to time.Time) ([]domain.BookedInterval, error)
}

// ProviderRepository интерфейс репозитория расписания и каталога провайдера
type ProviderRepository interface {
	GetAvailability(ctx context.Context, providerID string) (*domain.ProviderAvailability, error)
	ListServices(ctx context.Context, providerID string) (domain.ServiceCatalog, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
