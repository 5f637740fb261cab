package domain

import "time"

// DayStatus is the calendar classification of a single date
type DayStatus string

const (
	DayOpen   DayStatus = "open"
	DayFull   DayStatus = "full"
	DayClosed DayStatus = "closed"
)

// DayAvailability pairs a date with its status
type DayAvailability struct {
	Date   time.Time
	Status DayStatus
}

// IsBookable returns true if the date may still accept appointments
func (d DayAvailability) IsBookable() bool {
	return d.Status == DayOpen
}
