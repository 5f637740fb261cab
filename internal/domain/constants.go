package domain

import "time"

// Scheduling constants
const (
	SlotStepMinutes      = 15
	CancellationWindow   = 12 * time.Hour
	CompletionCodeLength = 6
)

// Business validation constants
const (
	MinRating             = 1
	MaxRating             = 5
	MaxCommentLength      = 1000
	MaxServiceNameLength  = 100
	MaxServiceDuration    = 24 * 60
	MaxCatalogSize        = 100
	MaxServicesPerBooking = 20
	MaxDisplayNameLength  = 200
)

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// InactiveStatuses статусы, которые не занимают время в расписании
var InactiveStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelledByClient,
	StatusCancelledByProvider,
}
