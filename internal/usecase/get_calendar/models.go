package get_calendar

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса календаря на месяц
type Request struct {
	ProviderID string
	Month      time.Time // любой момент внутри месяца
}

// Response модель ответа: статус каждого дня месяца
type Response struct {
	ProviderID string
	Month      string // YYYY-MM
	Days       []domain.DayAvailability
}
