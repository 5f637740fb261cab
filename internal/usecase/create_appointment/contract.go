package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) error
	ListConfirmedInRange(ctx context.Context, providerID string, from, to time.Time) ([]domain.BookedInterval, error)
}

// ProviderRepository интерфейс репозитория расписания и каталога провайдера
type ProviderRepository interface {
	LockAvailability(ctx context.Context, providerID string) (*domain.ProviderAvailability, error)
	ListServices(ctx context.Context, providerID string) (domain.ServiceCatalog, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CodeGenerator генератор кодов подтверждения оказания услуги
type CodeGenerator interface {
	Generate() (string, error)
}

// Metrics интерфейс для учёта переходов статусов
type Metrics interface {
	RecordTransition(status string)
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
