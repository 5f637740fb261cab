package appointment

import (
	"encoding/json"
	"errors"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// SQLSTATE коды PostgreSQL
const (
	codeUniqueViolation           = "23505"
	codeExclusionViolation        = "23P01"
	codeSerializationFailure      = "40001"
	codeInvalidTextRepresentation = "22P02"
)

// serviceSnapshot JSON представление услуги в колонке services
type serviceSnapshot struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

func encodeServices(services []domain.ServiceCatalogEntry) ([]byte, error) {
	snapshot := make([]serviceSnapshot, len(services))
	for i, s := range services {
		snapshot[i] = serviceSnapshot{
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		}
	}
	return json.Marshal(snapshot)
}

func decodeServices(data []byte) ([]domain.ServiceCatalogEntry, error) {
	var snapshot []serviceSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	services := make([]domain.ServiceCatalogEntry, len(snapshot))
	for i, s := range snapshot {
		services[i] = domain.ServiceCatalogEntry{
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		}
	}
	return services, nil
}

// isSlotConflict проверяет, что ошибка вызвана пересечением с другой записью
// (exclusion constraint, уникальность или конфликт сериализации)
func isSlotConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code {
	case codeExclusionViolation, codeUniqueViolation, codeSerializationFailure:
		return true
	}
	return false
}

// isInvalidID проверяет, что id не является корректным UUID
func isInvalidID(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == codeInvalidTextRepresentation
}
