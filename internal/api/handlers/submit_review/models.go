package submit_review

import (
	"time"

	submitReview "github.com/m04kA/SMC-AppointmentService/internal/usecase/submit_review"
)

// SubmitReviewRequest HTTP request model
type SubmitReviewRequest struct {
	Rating     int     `json:"rating"`
	Comment    *string `json:"comment,omitempty"`
	ClientName *string `json:"clientName,omitempty" validate:"omitempty,max=200"`
}

// ReviewResponse HTTP response model
type ReviewResponse struct {
	ID            string  `json:"id"`
	AppointmentID string  `json:"appointmentId"`
	ProviderID    string  `json:"providerId"`
	ClientID      string  `json:"clientId"`
	Rating        int     `json:"rating"`
	Comment       *string `json:"comment,omitempty"`
	ClientName    *string `json:"clientName,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitReviewRequest) ToUseCaseRequest(appointmentID, clientID string) *submitReview.Request {
	return &submitReview.Request{
		AppointmentID: appointmentID,
		ClientID:      clientID,
		Rating:        r.Rating,
		Comment:       r.Comment,
		ClientName:    r.ClientName,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitReview.Response) *ReviewResponse {
	return &ReviewResponse{
		ID:            resp.ID,
		AppointmentID: resp.AppointmentID,
		ProviderID:    resp.ProviderID,
		ClientID:      resp.ClientID,
		Rating:        resp.Rating,
		Comment:       resp.Comment,
		ClientName:    resp.ClientName,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
