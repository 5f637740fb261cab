package scheduling

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ClassifyOptions настройки классификатора дней
type ClassifyOptions struct {
	// ContiguousGaps сравнивает самую короткую услугу с наибольшим непрерывным свободным окном
	// вместо суммы всех свободных минут
	ContiguousGaps bool
}

// DaySnapshot исходные данные для классификации одного дня
type DaySnapshot struct {
	Availability *domain.ProviderAvailability
	Catalog      domain.ServiceCatalog
	Booked       []domain.BookedInterval
	Date         time.Time
}

// ClassifyDay определяет статус дня: closed, full или open.
//
// closed: дата в прошлом, выходной или заблокированный день.
// full: занятое время покрывает всё окно, либо свободного времени меньше самой короткой услуги.
// Пустой каталог делает любой рабочий день full.
func ClassifyDay(snap DaySnapshot, now time.Time, opts ClassifyOptions) domain.DayStatus {
	av := snap.Availability
	if checkAvailability(av) != nil {
		return domain.DayClosed
	}

	if isDateInPast(snap.Date, now) || !av.IsBookableDay(snap.Date) {
		return domain.DayClosed
	}

	windowStart, windowEnd := av.WorkingWindow(snap.Date)
	windowMinutes := av.WindowMinutes()

	busy := clipAndMerge(snap.Booked, windowStart, windowEnd)

	bookedMinutes := 0
	for _, interval := range busy {
		bookedMinutes += interval.Minutes()
	}
	if bookedMinutes >= windowMinutes {
		return domain.DayFull
	}

	shortest, ok := snap.Catalog.MinDuration()
	if !ok {
		return domain.DayFull
	}

	remaining := windowMinutes - bookedMinutes
	if opts.ContiguousGaps {
		remaining = largestGap(busy, windowStart, windowEnd)
	}

	if remaining < shortest {
		return domain.DayFull
	}

	return domain.DayOpen
}

// ClassifyRange классифицирует каждую дату в диапазоне [from, to] включительно.
// booked может содержать интервалы всего диапазона.
func ClassifyRange(
	av *domain.ProviderAvailability,
	catalog domain.ServiceCatalog,
	booked []domain.BookedInterval,
	from, to time.Time,
	now time.Time,
	opts ClassifyOptions,
) []domain.DayAvailability {
	from = domain.DateOf(from)
	to = domain.DateOf(to.In(from.Location()))
	if to.Before(from) {
		return []domain.DayAvailability{}
	}

	days := make([]domain.DayAvailability, 0, int(to.Sub(from).Hours()/24)+1)
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		status := ClassifyDay(DaySnapshot{
			Availability: av,
			Catalog:      catalog,
			Booked:       booked,
			Date:         date,
		}, now, opts)

		days = append(days, domain.DayAvailability{Date: date, Status: status})
	}

	return days
}

// clipAndMerge обрезает интервалы по рабочему окну и сливает пересекающиеся
func clipAndMerge(booked []domain.BookedInterval, windowStart, windowEnd time.Time) []domain.BookedInterval {
	clipped := make([]domain.BookedInterval, 0, len(booked))
	for _, interval := range booked {
		if !interval.Overlaps(windowStart, windowEnd) {
			continue
		}
		start, end := interval.Start, interval.End
		if start.Before(windowStart) {
			start = windowStart
		}
		if end.After(windowEnd) {
			end = windowEnd
		}
		clipped = append(clipped, domain.BookedInterval{Start: start, End: end})
	}

	sort.Slice(clipped, func(i, j int) bool {
		return clipped[i].Start.Before(clipped[j].Start)
	})

	merged := make([]domain.BookedInterval, 0, len(clipped))
	for _, interval := range clipped {
		last := len(merged) - 1
		if last >= 0 && !interval.Start.After(merged[last].End) {
			if interval.End.After(merged[last].End) {
				merged[last].End = interval.End
			}
			continue
		}
		merged = append(merged, interval)
	}

	return merged
}

// largestGap возвращает наибольшее непрерывное свободное окно в минутах.
// busy должен быть отсортирован и слит (см. clipAndMerge).
func largestGap(busy []domain.BookedInterval, windowStart, windowEnd time.Time) int {
	largest := 0
	cursor := windowStart
	for _, interval := range busy {
		if gap := int(interval.Start.Sub(cursor) / time.Minute); gap > largest {
			largest = gap
		}
		cursor = interval.End
	}
	if gap := int(windowEnd.Sub(cursor) / time.Minute); gap > largest {
		largest = gap
	}
	return largest
}
