package get_provider_reviews

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/service/providers/models"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(providerID, limitStr, offsetStr string) (*models.GetReviewsRequest, error) {
	req := &models.GetReviewsRequest{
		ProviderID: providerID,
		Limit:      defaultLimit,
	}

	if limitStr != "" {
		limit, err := strconv.ParseUint(limitStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid limit: %w", err)
		}
		if limit == 0 || limit > maxLimit {
			return nil, fmt.Errorf("limit must be between 1 and %d", maxLimit)
		}
		req.Limit = limit
	}

	if offsetStr != "" {
		offset, err := strconv.ParseUint(offsetStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid offset: %w", err)
		}
		req.Offset = offset
	}

	return req, nil
}
