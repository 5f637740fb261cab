package subscriptions

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных параметрах подписки
	ErrInvalidInput = fmt.Errorf("subscriptions: invalid input data: %w", domain.ErrValidation)

	// ErrHubClosed возвращается при подписке на остановленный hub
	ErrHubClosed = errors.New("subscriptions: hub is closed")

	// ErrInternal возвращается, когда не удалось загрузить снимок интервалов
	ErrInternal = fmt.Errorf("subscriptions: internal error: %w", domain.ErrStoreUnavailable)
)
