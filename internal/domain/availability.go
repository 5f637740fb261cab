package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// WorkingDays maps each weekday to whether the provider works on it.
// Missing keys mean a day off.
type WorkingDays map[time.Weekday]bool

// AllWeekdays in the order they are presented to providers, Monday first
var AllWeekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// ProviderAvailability represents the weekly schedule of a provider
type ProviderAvailability struct {
	ProviderID   string
	ProviderName *string
	WorkingDays  WorkingDays
	OpenTime     types.TimeString
	CloseTime    types.TimeString
	BlockedDates []time.Time // calendar dates, time of day ignored
	UpdatedAt    time.Time
}

// Validate checks the working hours
func (p *ProviderAvailability) Validate() error {
	if err := p.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: open time: %v", ErrValidation, err)
	}
	if err := p.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: close time: %v", ErrValidation, err)
	}
	if !p.OpenTime.IsBefore(p.CloseTime) {
		return fmt.Errorf("%w: open time %s must be before close time %s", ErrValidation, p.OpenTime, p.CloseTime)
	}
	return nil
}

// IsWorkingDay returns true if the weekday of date is marked as working
func (p *ProviderAvailability) IsWorkingDay(date time.Time) bool {
	return p.WorkingDays[date.Weekday()]
}

// IsBlocked returns true if date is one of the blocked calendar dates
func (p *ProviderAvailability) IsBlocked(date time.Time) bool {
	for _, blocked := range p.BlockedDates {
		if SameDate(blocked, date) {
			return true
		}
	}
	return false
}

// IsBookableDay returns true for a working day that is not blocked
func (p *ProviderAvailability) IsBookableDay(date time.Time) bool {
	return p.IsWorkingDay(date) && !p.IsBlocked(date)
}

// WorkingWindow returns the open and close instants of date, in date's location
func (p *ProviderAvailability) WorkingWindow(date time.Time) (time.Time, time.Time) {
	return p.OpenTime.On(date), p.CloseTime.On(date)
}

// WindowMinutes returns the length of the working day in minutes
func (p *ProviderAvailability) WindowMinutes() int {
	return p.CloseTime.Minutes() - p.OpenTime.Minutes()
}

// DateOf truncates t to midnight of its calendar date, keeping the location
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDate compares calendar dates ignoring time of day.
// b is converted to the location of a first.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}
