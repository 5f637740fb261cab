package submit_review

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует запрос до обращения к хранилищу
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.AppointmentID) == "" {
		return fmt.Errorf("%w: appointmentID is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientID) == "" {
		return fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, req.Rating)
	}

	if req.Comment != nil && utf8.RuneCountInString(*req.Comment) > domain.MaxCommentLength {
		return ErrCommentTooLong
	}

	if req.ClientName != nil && utf8.RuneCountInString(*req.ClientName) > domain.MaxDisplayNameLength {
		return fmt.Errorf("%w: client name is longer than %d characters", ErrInvalidInput, domain.MaxDisplayNameLength)
	}

	return nil
}

// normalizeComment убирает пробелы по краям, пустой комментарий становится nil
func normalizeComment(comment *string) *string {
	if comment == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*comment)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
