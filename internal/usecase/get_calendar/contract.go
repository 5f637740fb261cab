package get_calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/cache/calendar"
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

// CalendarCache кэш классификации дней
type CalendarCache interface {
	Get(ctx context.Context, key calendar.Key) ([]domain.DayAvailability, bool, error)
	Set(ctx context.Context, key calendar.Key, days []domain.DayAvailability) error
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
