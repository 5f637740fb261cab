package providers

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrProviderNotFound возвращается, когда у провайдера нет расписания
	ErrProviderNotFound = fmt.Errorf("providers: provider not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь меняет чужой профиль
	ErrAccessDenied = fmt.Errorf("providers: access denied: %w", domain.ErrPreconditionFailed)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("providers: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("providers: internal error: %w", domain.ErrStoreUnavailable)
)
