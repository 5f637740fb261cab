package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// SlotStep шаг сетки слотов
const SlotStep = domain.SlotStepMinutes * time.Minute

// GenerateStartTimes генерирует возможные времена начала записи на дату date.
// Сетка строится от времени открытия с шагом SlotStep до закрытия (не включая).
// Слоты в прошлом отбрасываются, занятые слоты исключаются (start <= t < end).
// Длительность услуг здесь не учитывается: её проверяет MaxDuration.
func GenerateStartTimes(
	av *domain.ProviderAvailability,
	date time.Time,
	booked []domain.BookedInterval,
	now time.Time,
) ([]time.Time, error) {
	if err := checkAvailability(av); err != nil {
		return nil, err
	}

	// Выходной или заблокированный день
	if !av.IsBookableDay(date) {
		return []time.Time{}, nil
	}

	// Дата в прошлом
	if isDateInPast(date, now) {
		return []time.Time{}, nil
	}

	openAt, closeAt := av.WorkingWindow(date)

	slots := make([]time.Time, 0, av.WindowMinutes()/domain.SlotStepMinutes)
	for candidate := openAt; candidate.Before(closeAt); candidate = candidate.Add(SlotStep) {
		// Прошедшие слоты сегодняшнего дня
		if candidate.Before(now) {
			continue
		}
		if isBooked(candidate, booked) {
			continue
		}
		slots = append(slots, candidate)
	}

	return slots, nil
}

// CheckStart проверяет, что start попадает в рабочее окно и в сетку слотов
func CheckStart(av *domain.ProviderAvailability, start time.Time) error {
	if err := checkAvailability(av); err != nil {
		return err
	}

	openAt, closeAt := av.WorkingWindow(start)
	if start.Before(openAt) || !start.Before(closeAt) {
		return fmt.Errorf("%w: %s not in [%s, %s)", ErrStartOutsideHours,
			start.Format(domain.TimeFormat), av.OpenTime, av.CloseTime)
	}

	if start.Sub(openAt)%SlotStep != 0 {
		return fmt.Errorf("%w: %s", ErrStartOffGrid, start.Format(time.RFC3339))
	}

	return nil
}

// isBooked проверяет, попадает ли t в один из занятых интервалов
func isBooked(t time.Time, booked []domain.BookedInterval) bool {
	for _, interval := range booked {
		if interval.Contains(t) {
			return true
		}
	}
	return false
}

func checkAvailability(av *domain.ProviderAvailability) error {
	if av == nil {
		return fmt.Errorf("%w: availability is not configured", ErrInvalidWorkingHours)
	}
	if err := av.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWorkingHours, err)
	}
	return nil
}

// isDateInPast проверяет, что календарная дата раньше сегодняшней (в часовом поясе date)
func isDateInPast(date, now time.Time) bool {
	return domain.DateOf(date).Before(domain.DateOf(now.In(date.Location())))
}
