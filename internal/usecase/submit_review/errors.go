package submit_review

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("submit_review: invalid input data: %w", domain.ErrValidation)

	// ErrInvalidRating возвращается, когда оценка вне диапазона 1..5
	ErrInvalidRating = fmt.Errorf("submit_review: rating must be between %d and %d: %w", domain.MinRating, domain.MaxRating, domain.ErrValidation)

	// ErrCommentTooLong возвращается, когда комментарий длиннее допустимого
	ErrCommentTooLong = fmt.Errorf("submit_review: comment is longer than %d characters: %w", domain.MaxCommentLength, domain.ErrValidation)

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("submit_review: appointment not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда отзыв оставляет не клиент записи
	ErrAccessDenied = fmt.Errorf("submit_review: access denied: %w", domain.ErrPreconditionFailed)

	// ErrNotCompleted возвращается, когда запись ещё не завершена
	ErrNotCompleted = fmt.Errorf("submit_review: appointment is not completed: %w", domain.ErrPreconditionFailed)

	// ErrAlreadyReviewed возвращается при повторном отзыве на ту же запись
	ErrAlreadyReviewed = fmt.Errorf("submit_review: appointment already reviewed: %w", domain.ErrPreconditionFailed)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("submit_review: internal error: %w", domain.ErrStoreUnavailable)
)
