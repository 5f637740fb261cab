package get_service_fit

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrProviderNotFound возвращается, когда у провайдера нет расписания
	ErrProviderNotFound = fmt.Errorf("get_service_fit: provider not found: %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("get_service_fit: invalid input data: %w", domain.ErrValidation)

	// ErrInvalidStartTime возвращается, когда время начала вне рабочих часов или внутри занятого интервала
	ErrInvalidStartTime = fmt.Errorf("get_service_fit: invalid start time: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("get_service_fit: internal error: %w", domain.ErrStoreUnavailable)
)
