package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// ListConfirmedInRange получает подтверждённые интервалы провайдера, пересекающиеся с [from, to)
	ListConfirmedInRange(ctx context.Context, providerID string, from, to time.Time) ([]domain.BookedInterval, error)
}

// ProviderRepository интерфейс репозитория расписания провайдера
type ProviderRepository interface {
	GetAvailability(ctx context.Context, providerID string) (*domain.ProviderAvailability, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
