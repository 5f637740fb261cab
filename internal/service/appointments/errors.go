package appointments

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("appointments: appointment not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не участник записи или не имеет нужной роли
	ErrAccessDenied = fmt.Errorf("appointments: access denied: %w", domain.ErrPreconditionFailed)

	// ErrNotConfirmed возвращается при попытке сменить статус уже отменённой или завершённой записи
	ErrNotConfirmed = fmt.Errorf("appointments: appointment is not confirmed: %w", domain.ErrPreconditionFailed)

	// ErrCancellationWindowPassed возвращается, когда до начала осталось 12 часов или меньше
	ErrCancellationWindowPassed = fmt.Errorf("appointments: cancellation window has passed: %w", domain.ErrPreconditionFailed)

	// ErrNotStarted возвращается при попытке завершить запись до времени её начала
	ErrNotStarted = fmt.Errorf("appointments: appointment has not started yet: %w", domain.ErrPreconditionFailed)

	// ErrInvalidCompletionCode возвращается при неверном коде подтверждения
	ErrInvalidCompletionCode = fmt.Errorf("appointments: invalid completion code: %w", domain.ErrPreconditionFailed)

	// ErrTooManyAttempts возвращается, когда исчерпан лимит попыток ввода кода
	ErrTooManyAttempts = fmt.Errorf("appointments: too many completion attempts: %w", domain.ErrPreconditionFailed)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("appointments: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("appointments: internal error: %w", domain.ErrStoreUnavailable)
)
