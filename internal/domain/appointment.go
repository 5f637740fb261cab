package domain

import "time"

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusConfirmed           AppointmentStatus = "confirmed"
	StatusCompleted           AppointmentStatus = "completed"
	StatusCancelledByClient   AppointmentStatus = "cancelled_by_client"
	StatusCancelledByProvider AppointmentStatus = "cancelled_by_provider"
)

// IsValid reports whether s is one of the known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCompleted, StatusCancelledByClient, StatusCancelledByProvider:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelledByClient || s == StatusCancelledByProvider
}

// Appointment represents a client's booking of one or more services with a provider
type Appointment struct {
	ID         string
	ProviderID string
	ClientID   string
	StartTime  time.Time
	EndTime    time.Time

	// Snapshot of the catalog at booking time
	Services      []ServiceCatalogEntry
	TotalDuration int // minutes
	TotalPrice    float64

	Status         AppointmentStatus
	CompletionCode string
	IsReviewed     bool

	// Denormalized data for history
	ProviderName *string
	ClientName   *string

	CancelledAt *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsConfirmed returns true if the appointment still occupies provider time
func (a *Appointment) IsConfirmed() bool {
	return a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment was cancelled by either side
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelledByClient || a.Status == StatusCancelledByProvider
}

// IsCompleted returns true if the service was rendered
func (a *Appointment) IsCompleted() bool {
	return a.Status == StatusCompleted
}

// IsParticipant returns true if userID is the client or the provider of the appointment
func (a *Appointment) IsParticipant(userID string) bool {
	return userID != "" && (userID == a.ClientID || userID == a.ProviderID)
}

// IsInsideCancellationWindow returns true when less than (or exactly) CancellationWindow remains before start
func (a *Appointment) IsInsideCancellationWindow(now time.Time) bool {
	return a.StartTime.Sub(now) <= CancellationWindow
}

// HasStarted returns true if the start time has been reached
func (a *Appointment) HasStarted(now time.Time) bool {
	return !now.Before(a.StartTime)
}

// CanBeReviewed returns true if the appointment is completed and has no review yet
func (a *Appointment) CanBeReviewed() bool {
	return a.Status == StatusCompleted && !a.IsReviewed
}

// Interval returns the time range the appointment occupies
func (a *Appointment) Interval() BookedInterval {
	return BookedInterval{Start: a.StartTime, End: a.EndTime}
}

// AppointmentsFilter фильтр для получения записей провайдера или клиента
type AppointmentsFilter struct {
	ProviderID *string            // Фильтр по провайдеру (опционально)
	ClientID   *string            // Фильтр по клиенту (опционально)
	Status     *AppointmentStatus // Фильтр по статусу (опционально)
	StartDate  *time.Time         // Начало периода включительно (опционально)
	EndDate    *time.Time         // Конец периода не включительно (опционально)
}
