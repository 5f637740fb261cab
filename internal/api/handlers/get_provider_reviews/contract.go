package get_provider_reviews

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/providers/models"
)

type ProviderService interface {
	GetReviews(ctx context.Context, req *models.GetReviewsRequest) (*models.ReviewsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
