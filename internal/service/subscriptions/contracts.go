package subscriptions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// IntervalSource источник подтверждённых интервалов провайдера
type IntervalSource interface {
	ListConfirmedInRange(ctx context.Context, providerID string, from, to time.Time) ([]domain.BookedInterval, error)
}

// ChangeHook вызывается при каждом изменении расписания провайдера (например, сброс кэша календаря)
type ChangeHook interface {
	Invalidate(ctx context.Context, providerID string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
