package stream_booked_intervals

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/subscriptions"
)

// maxRangeDays максимальная длина диапазона подписки
const maxRangeDays = 62

var errInvalidRange = errors.New("invalid range")

// IntervalResponse занятый интервал
type IntervalResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SnapshotEvent данные события snapshot
type SnapshotEvent struct {
	ProviderID string             `json:"providerId"`
	From       string             `json:"from"`
	To         string             `json:"to"`
	Intervals  []IntervalResponse `json:"intervals"`
	At         string             `json:"at"`
}

// ParseRange разбирает from и to (YYYY-MM-DD, включительно) в полуинтервал [from, to+1d)
func ParseRange(fromStr, toStr string, location *time.Location) (time.Time, time.Time, error) {
	from, err := time.ParseInLocation(domain.DateFormat, fromStr, location)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	to := from
	if toStr != "" {
		if to, err = time.ParseInLocation(domain.DateFormat, toStr, location); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if to.Before(from) || to.Sub(from) > maxRangeDays*24*time.Hour {
		return time.Time{}, time.Time{}, errInvalidRange
	}

	return from, to.AddDate(0, 0, 1), nil
}

// FromSnapshot конвертирует снимок подписки в событие
func FromSnapshot(s subscriptions.Snapshot) *SnapshotEvent {
	intervals := make([]IntervalResponse, len(s.Intervals))
	for i, iv := range s.Intervals {
		intervals[i] = IntervalResponse{
			Start: iv.Start.Format(time.RFC3339),
			End:   iv.End.Format(time.RFC3339),
		}
	}

	return &SnapshotEvent{
		ProviderID: s.ProviderID,
		From:       s.From.Format(time.RFC3339),
		To:         s.To.Format(time.RFC3339),
		Intervals:  intervals,
		At:         s.At.Format(time.RFC3339),
	}
}
