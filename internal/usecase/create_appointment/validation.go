package create_appointment

import (
	"fmt"
	"math"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// priceTolerance допустимое расхождение цены из-за округления до копеек
const priceTolerance = 0.005

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ProviderID) == "" {
		return fmt.Errorf("%w: providerID is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientID) == "" {
		return fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if len(req.ServiceNames) == 0 {
		return ErrNoServices
	}

	if len(req.ServiceNames) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: at most %d services per appointment", ErrInvalidInput, domain.MaxServicesPerBooking)
	}

	// Услуги идентифицируются по имени, повтор недопустим
	seen := make(map[string]struct{}, len(req.ServiceNames))
	for _, name := range req.ServiceNames {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: service name must not be empty", ErrInvalidInput)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: service %q selected twice", ErrInvalidInput, name)
		}
		seen[name] = struct{}{}
	}

	if req.ExpectedDuration != nil && *req.ExpectedDuration <= 0 {
		return fmt.Errorf("%w: expected duration must be positive", ErrInvalidInput)
	}

	if req.ExpectedPrice != nil && *req.ExpectedPrice < 0 {
		return fmt.Errorf("%w: expected price must not be negative", ErrInvalidInput)
	}

	return nil
}

// resolveServices находит выбранные услуги в каталоге и делает их снимок
func resolveServices(catalog domain.ServiceCatalog, names []string) ([]domain.ServiceCatalogEntry, error) {
	services := make([]domain.ServiceCatalogEntry, 0, len(names))
	for _, name := range names {
		entry, ok := catalog.Find(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownService, name)
		}
		services = append(services, entry)
	}
	return services, nil
}

// validateTotals сверяет итоги, которые видел клиент, с итогами по каталогу
func validateTotals(req *Request, duration int, price float64) error {
	if req.ExpectedDuration != nil && *req.ExpectedDuration != duration {
		return fmt.Errorf("%w: duration %d, expected %d", ErrTotalsMismatch, duration, *req.ExpectedDuration)
	}

	if req.ExpectedPrice != nil && math.Abs(*req.ExpectedPrice-price) > priceTolerance {
		return fmt.Errorf("%w: price %.2f, expected %.2f", ErrTotalsMismatch, price, *req.ExpectedPrice)
	}

	return nil
}
