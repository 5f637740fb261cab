package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidPeriod возвращается, когда конец периода раньше начала
	ErrInvalidPeriod = errors.New("invalid period")
)

// Request модели

// CancelRequest запрос на отмену записи
type CancelRequest struct {
	UserID string `json:"userId"`
}

// CompleteRequest запрос на завершение записи по коду клиента
type CompleteRequest struct {
	UserID string `json:"userId"`
	Code   string `json:"code"`
}

// GetClientAppointmentsRequest запрос на получение записей клиента
type GetClientAppointmentsRequest struct {
	UserID   string  `json:"userId"`   // Кто запрашивает
	ClientID string  `json:"clientId"` // Чьи записи
	Status   *string `json:"status,omitempty"`
}

// GetProviderAppointmentsRequest запрос на получение записей провайдера
type GetProviderAppointmentsRequest struct {
	UserID     string     `json:"userId"`
	ProviderID string     `json:"providerId"`
	StartDate  *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate    *time.Time `json:"endDate,omitempty"`   // Конец периода, не включительно (опционально)
	Status     *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetProviderAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	providerID := r.ProviderID
	filter := domain.AppointmentsFilter{
		ProviderID: &providerID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
	}

	if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
		return filter, ErrInvalidPeriod
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ServiceResponse услуга из снимка записи
type ServiceResponse struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID            string            `json:"id"`
	ProviderID    string            `json:"providerId"`
	ClientID      string            `json:"clientId"`
	StartTime     time.Time         `json:"startTime"`
	EndTime       time.Time         `json:"endTime"`
	Services      []ServiceResponse `json:"services"`
	TotalDuration int               `json:"totalDuration"`
	TotalPrice    float64           `json:"totalPrice"`
	Status        string            `json:"status"`
	IsReviewed    bool              `json:"isReviewed"`

	// Код видит только клиент
	CompletionCode *string `json:"completionCode,omitempty"`

	// Денормализованные данные
	ProviderName *string `json:"providerName,omitempty"`
	ClientName   *string `json:"clientName,omitempty"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format
	CompletedAt *string `json:"completedAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO.
// Код подтверждения включается только если viewerID совпадает с клиентом записи.
func FromDomainAppointment(a *domain.Appointment, viewerID string) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:            a.ID,
		ProviderID:    a.ProviderID,
		ClientID:      a.ClientID,
		StartTime:     a.StartTime,
		EndTime:       a.EndTime,
		Services:      make([]ServiceResponse, len(a.Services)),
		TotalDuration: a.TotalDuration,
		TotalPrice:    a.TotalPrice,
		Status:        string(a.Status),
		IsReviewed:    a.IsReviewed,
		ProviderName:  a.ProviderName,
		ClientName:    a.ClientName,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}

	for i, s := range a.Services {
		resp.Services[i] = ServiceResponse{
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		}
	}

	if viewerID != "" && viewerID == a.ClientID && a.IsConfirmed() {
		code := a.CompletionCode
		resp.CompletionCode = &code
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}
	if a.CompletedAt != nil {
		completedStr := a.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &completedStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment, viewerID string) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if item := FromDomainAppointment(a, viewerID); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
