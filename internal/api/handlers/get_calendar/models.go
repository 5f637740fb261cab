package get_calendar

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getCalendar "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_calendar"
)

// DayResponse статус одного дня
type DayResponse struct {
	Date   string `json:"date"`
	Status string `json:"status"` // open, full, closed
}

// CalendarResponse HTTP response model
type CalendarResponse struct {
	ProviderID string        `json:"providerId"`
	Month      string        `json:"month"`
	Days       []DayResponse `json:"days"`
}

// ToUseCaseRequest формирует запрос к use case. Пустой month означает текущий месяц.
func ToUseCaseRequest(providerID, monthStr string, now time.Time, location *time.Location) (*getCalendar.Request, error) {
	month := now.In(location)
	if monthStr != "" {
		parsed, err := time.ParseInLocation(domain.MonthFormat, monthStr, location)
		if err != nil {
			return nil, err
		}
		month = parsed
	}

	return &getCalendar.Request{
		ProviderID: providerID,
		Month:      month,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	days := make([]DayResponse, len(resp.Days))
	for i, d := range resp.Days {
		days[i] = DayResponse{
			Date:   d.Date.Format(domain.DateFormat),
			Status: string(d.Status),
		}
	}

	return &CalendarResponse{
		ProviderID: resp.ProviderID,
		Month:      resp.Month,
		Days:       days,
	}
}
