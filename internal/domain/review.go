package domain

import "time"

// Review represents a client's rating of a completed appointment
type Review struct {
	ID            string
	ProviderID    string
	ClientID      string
	AppointmentID string
	Rating        int
	Comment       *string
	ClientName    *string
	CreatedAt     time.Time
}

// RatingSummary aggregates reviews of a provider
type RatingSummary struct {
	ProviderID    string
	ReviewsCount  int
	AverageRating float64 // 0 when there are no reviews
}

// HasReviews returns true if at least one review exists
func (r *RatingSummary) HasReviews() bool {
	return r.ReviewsCount > 0
}
