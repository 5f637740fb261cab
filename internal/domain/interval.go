package domain

import "time"

// BookedInterval is the half-open range [Start, End) occupied by a confirmed appointment
type BookedInterval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the interval
func (i BookedInterval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Overlaps reports whether [start, end) intersects the interval
func (i BookedInterval) Overlaps(start, end time.Time) bool {
	return start.Before(i.End) && i.Start.Before(end)
}

// Minutes returns the length of the interval in whole minutes
func (i BookedInterval) Minutes() int {
	return int(i.End.Sub(i.Start) / time.Minute)
}
