package get_service_fit

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

// Request модель запроса: какие услуги помещаются, если начать в StartTime
type Request struct {
	ProviderID string
	StartTime  time.Time
}

// Response модель ответа
type Response struct {
	ProviderID  string
	StartTime   time.Time
	MaxDuration int // минуты до следующей записи или закрытия
	Services    []scheduling.FittedService
}
