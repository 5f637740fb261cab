package get_provider_appointments

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// Даты from и to включительные и читаются в часовом поясе сервиса.
func ToServiceRequest(
	providerID string,
	userID string,
	statusStr string,
	fromStr string,
	toStr string,
	location *time.Location,
) (*models.GetProviderAppointmentsRequest, error) {
	req := &models.GetProviderAppointmentsRequest{
		UserID:     userID,
		ProviderID: providerID,
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if fromStr != "" {
		from, err := time.ParseInLocation(domain.DateFormat, fromStr, location)
		if err != nil {
			return nil, err
		}
		req.StartDate = &from
	}

	if toStr != "" {
		to, err := time.ParseInLocation(domain.DateFormat, toStr, location)
		if err != nil {
			return nil, err
		}
		// В фильтре конец периода не включительный
		end := to.AddDate(0, 0, 1)
		req.EndDate = &end
	}

	return req, nil
}
