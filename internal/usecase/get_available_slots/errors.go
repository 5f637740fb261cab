package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrProviderNotFound возвращается, когда у провайдера нет расписания
	ErrProviderNotFound = fmt.Errorf("get_available_slots: provider not found: %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("get_available_slots: invalid input data: %w", domain.ErrValidation)

	// ErrInvalidSchedule возвращается, когда сохранённое расписание провайдера некорректно (close <= open)
	ErrInvalidSchedule = fmt.Errorf("get_available_slots: provider schedule is invalid: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("get_available_slots: internal error: %w", domain.ErrStoreUnavailable)
)
