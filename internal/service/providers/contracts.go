package providers

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ProviderRepository интерфейс репозитория расписания и каталога провайдера
type ProviderRepository interface {
	GetAvailability(ctx context.Context, providerID string) (*domain.ProviderAvailability, error)
	LockAvailability(ctx context.Context, providerID string) (*domain.ProviderAvailability, error)
	UpsertAvailability(ctx context.Context, av *domain.ProviderAvailability) error
	ListServices(ctx context.Context, providerID string) (domain.ServiceCatalog, error)
	ReplaceServices(ctx context.Context, providerID string, catalog domain.ServiceCatalog) error
}

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	ListByProvider(ctx context.Context, providerID string, limit, offset uint64) ([]*domain.Review, error)
	RatingSummary(ctx context.Context, providerID string) (*domain.RatingSummary, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
