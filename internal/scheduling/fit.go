package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// MaxDuration возвращает число минут от start до ближайшего из:
// начала следующей записи (строго после start) или закрытия в этот день.
func MaxDuration(av *domain.ProviderAvailability, start time.Time, booked []domain.BookedInterval) (int, error) {
	if err := checkAvailability(av); err != nil {
		return 0, err
	}

	if !av.IsBookableDay(start) {
		return 0, fmt.Errorf("%w: %s is not a working day", ErrStartOutsideHours, start.Format(domain.DateFormat))
	}

	openAt, closeAt := av.WorkingWindow(start)
	if start.Before(openAt) || !start.Before(closeAt) {
		return 0, fmt.Errorf("%w: %s", ErrStartOutsideHours, start.Format(time.RFC3339))
	}

	limit := closeAt
	for _, interval := range booked {
		if interval.Contains(start) {
			return 0, fmt.Errorf("%w: %s", ErrStartInsideBooking, start.Format(time.RFC3339))
		}
		if interval.Start.After(start) && interval.Start.Before(limit) {
			limit = interval.Start
		}
	}

	return int(limit.Sub(start) / time.Minute), nil
}

// FindOverlap возвращает первый занятый интервал, пересекающийся с [start, end)
func FindOverlap(booked []domain.BookedInterval, start, end time.Time) (domain.BookedInterval, bool) {
	for _, interval := range booked {
		if interval.Overlaps(start, end) {
			return interval, true
		}
	}
	return domain.BookedInterval{}, false
}

// FittedService услуга каталога с признаком, помещается ли она в окно сама по себе
type FittedService struct {
	Service domain.ServiceCatalogEntry
	Fits    bool
}

// FitServices размечает каждую услугу каталога относительно maxDuration
func FitServices(catalog domain.ServiceCatalog, maxDuration int) []FittedService {
	result := make([]FittedService, len(catalog))
	for i, entry := range catalog {
		result[i] = FittedService{
			Service: entry,
			Fits:    entry.DurationMinutes <= maxDuration,
		}
	}
	return result
}

// Selection черновик выбора услуг клиентом для выбранного времени начала
type Selection struct {
	maxDuration int
	selected    []domain.ServiceCatalogEntry
}

// NewSelection создаёт пустой выбор с ограничением maxDuration минут
func NewSelection(maxDuration int) *Selection {
	return &Selection{maxDuration: maxDuration}
}

// Toggle добавляет услугу или убирает её, если услуга с таким именем уже выбрана.
// Возвращает true, если услуга добавлена.
// Если услуга не помещается, возвращает ErrCapacityExceeded и не меняет выбор.
func (s *Selection) Toggle(entry domain.ServiceCatalogEntry) (bool, error) {
	for i, selected := range s.selected {
		if selected.Name == entry.Name {
			s.selected = append(s.selected[:i:i], s.selected[i+1:]...)
			return false, nil
		}
	}

	if s.TotalDuration()+entry.DurationMinutes > s.maxDuration {
		return false, fmt.Errorf("%w: %q needs %d min, %d min left",
			ErrCapacityExceeded, entry.Name, entry.DurationMinutes, s.Remaining())
	}

	s.selected = append(s.selected, entry)
	return true, nil
}

// TotalDuration суммарная длительность выбранных услуг в минутах
func (s *Selection) TotalDuration() int {
	duration, _ := domain.Totals(s.selected)
	return duration
}

// TotalPrice суммарная стоимость выбранных услуг
func (s *Selection) TotalPrice() float64 {
	_, price := domain.Totals(s.selected)
	return price
}

// Remaining оставшиеся свободные минуты
func (s *Selection) Remaining() int {
	return s.maxDuration - s.TotalDuration()
}

// MaxDuration ограничение выбора в минутах
func (s *Selection) MaxDuration() int {
	return s.maxDuration
}

// Services копия выбранных услуг в порядке добавления
func (s *Selection) Services() []domain.ServiceCatalogEntry {
	return append([]domain.ServiceCatalogEntry(nil), s.selected...)
}

// IsEmpty проверяет, выбрана ли хотя бы одна услуга
func (s *Selection) IsEmpty() bool {
	return len(s.selected) == 0
}
