package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модели

// UpdateAvailabilityRequest запрос на замену расписания провайдера
type UpdateAvailabilityRequest struct {
	UserID       string   `json:"userId"`
	ProviderID   string   `json:"providerId"`
	ProviderName *string  `json:"providerName,omitempty"`
	WorkingDays  []string `json:"workingDays"`  // "monday", "tuesday", ...
	OpenTime     string   `json:"openTime"`     // "09:00"
	CloseTime    string   `json:"closeTime"`    // "18:00"
	BlockedDates []string `json:"blockedDates"` // "2025-10-15"
}

// ToDomainAvailability конвертирует запрос в domain модель.
// Даты разбираются в часовом поясе расписания.
func (r *UpdateAvailabilityRequest) ToDomainAvailability(location *time.Location) (*domain.ProviderAvailability, error) {
	av := &domain.ProviderAvailability{
		ProviderID:   r.ProviderID,
		ProviderName: r.ProviderName,
		WorkingDays:  make(domain.WorkingDays, len(domain.AllWeekdays)),
		BlockedDates: make([]time.Time, 0, len(r.BlockedDates)),
	}

	for _, name := range r.WorkingDays {
		day, err := ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		av.WorkingDays[day] = true
	}

	var err error
	if av.OpenTime, err = types.NewTimeStringFromString(r.OpenTime); err != nil {
		return nil, fmt.Errorf("open time: %w", err)
	}
	if av.CloseTime, err = types.NewTimeStringFromString(r.CloseTime); err != nil {
		return nil, fmt.Errorf("close time: %w", err)
	}

	seen := make(map[string]struct{}, len(r.BlockedDates))
	for _, raw := range r.BlockedDates {
		date, err := time.ParseInLocation(domain.DateFormat, raw, location)
		if err != nil {
			return nil, fmt.Errorf("blocked date %q: expected YYYY-MM-DD", raw)
		}
		if _, ok := seen[raw]; ok {
			continue
		}
		seen[raw] = struct{}{}
		av.BlockedDates = append(av.BlockedDates, date)
	}

	return av, nil
}

// ServiceRequest услуга каталога
type ServiceRequest struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// UpdateServicesRequest запрос на замену каталога услуг
type UpdateServicesRequest struct {
	UserID     string           `json:"userId"`
	ProviderID string           `json:"providerId"`
	Services   []ServiceRequest `json:"services"`
}

// ToDomainCatalog конвертирует запрос в каталог. Цена округляется до копеек.
func (r *UpdateServicesRequest) ToDomainCatalog() domain.ServiceCatalog {
	catalog := make(domain.ServiceCatalog, 0, len(r.Services))
	for _, s := range r.Services {
		catalog = append(catalog, domain.ServiceCatalogEntry{
			Name:            strings.TrimSpace(s.Name),
			DurationMinutes: s.DurationMinutes,
			Price:           math.Round(s.Price*100) / 100,
		})
	}
	return catalog
}

// GetReviewsRequest запрос на получение отзывов провайдера
type GetReviewsRequest struct {
	ProviderID string `json:"providerId"`
	Limit      uint64 `json:"limit"` // 0 = без ограничения
	Offset     uint64 `json:"offset"`
}

// Response модели

// ServiceResponse услуга каталога
type ServiceResponse struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// RatingResponse сводка по отзывам
type RatingResponse struct {
	ReviewsCount  int     `json:"reviewsCount"`
	AverageRating float64 `json:"averageRating"`
}

// AvailabilityResponse расписание провайдера
type AvailabilityResponse struct {
	ProviderID   string    `json:"providerId"`
	ProviderName *string   `json:"providerName,omitempty"`
	WorkingDays  []string  `json:"workingDays"`
	OpenTime     string    `json:"openTime"`
	CloseTime    string    `json:"closeTime"`
	BlockedDates []string  `json:"blockedDates"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProfileResponse профиль провайдера: расписание, каталог и рейтинг
type ProfileResponse struct {
	AvailabilityResponse
	Services []ServiceResponse `json:"services"`
	Rating   RatingResponse    `json:"rating"`
}

// ServicesResponse каталог услуг провайдера
type ServicesResponse struct {
	ProviderID string            `json:"providerId"`
	Services   []ServiceResponse `json:"services"`
}

// ReviewResponse отзыв
type ReviewResponse struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointmentId"`
	ClientID      string    `json:"clientId"`
	ClientName    *string   `json:"clientName,omitempty"`
	Rating        int       `json:"rating"`
	Comment       *string   `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ReviewsResponse отзывы провайдера, сначала новые
type ReviewsResponse struct {
	ProviderID string           `json:"providerId"`
	Rating     RatingResponse   `json:"rating"`
	Reviews    []ReviewResponse `json:"reviews"`
}

// Методы конвертации

// FromDomainAvailability конвертирует расписание в DTO
func FromDomainAvailability(av *domain.ProviderAvailability) AvailabilityResponse {
	resp := AvailabilityResponse{
		ProviderID:   av.ProviderID,
		ProviderName: av.ProviderName,
		WorkingDays:  make([]string, 0, len(domain.AllWeekdays)),
		OpenTime:     av.OpenTime.String(),
		CloseTime:    av.CloseTime.String(),
		BlockedDates: make([]string, 0, len(av.BlockedDates)),
		UpdatedAt:    av.UpdatedAt,
	}

	for _, day := range domain.AllWeekdays {
		if av.WorkingDays[day] {
			resp.WorkingDays = append(resp.WorkingDays, strings.ToLower(day.String()))
		}
	}
	for _, date := range av.BlockedDates {
		resp.BlockedDates = append(resp.BlockedDates, date.Format(domain.DateFormat))
	}

	return resp
}

// FromDomainCatalog конвертирует каталог в DTO
func FromDomainCatalog(catalog domain.ServiceCatalog) []ServiceResponse {
	services := make([]ServiceResponse, 0, len(catalog))
	for _, entry := range catalog {
		services = append(services, ServiceResponse{
			Name:            entry.Name,
			DurationMinutes: entry.DurationMinutes,
			Price:           entry.Price,
		})
	}
	return services
}

// FromDomainRating конвертирует сводку рейтинга в DTO
func FromDomainRating(summary *domain.RatingSummary) RatingResponse {
	if summary == nil {
		return RatingResponse{}
	}
	return RatingResponse{
		ReviewsCount:  summary.ReviewsCount,
		AverageRating: math.Round(summary.AverageRating*10) / 10,
	}
}

// FromDomainReviews конвертирует список отзывов в DTO
func FromDomainReviews(reviews []*domain.Review) []ReviewResponse {
	resp := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		resp = append(resp, ReviewResponse{
			ID:            r.ID,
			AppointmentID: r.AppointmentID,
			ClientID:      r.ClientID,
			ClientName:    r.ClientName,
			Rating:        r.Rating,
			Comment:       r.Comment,
			CreatedAt:     r.CreatedAt,
		})
	}
	return resp
}

// ParseWeekday разбирает название дня недели на английском ("monday", "Mon")
func ParseWeekday(name string) (time.Weekday, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, day := range domain.AllWeekdays {
		full := strings.ToLower(day.String())
		if normalized == full || normalized == full[:3] {
			return day, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}
