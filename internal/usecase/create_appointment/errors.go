package create_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_appointment: invalid input data: %w", domain.ErrValidation)

	// ErrNoServices возвращается, когда не выбрана ни одна услуга
	ErrNoServices = fmt.Errorf("create_appointment: at least one service is required: %w", domain.ErrValidation)

	// ErrProviderNotFound возвращается, когда у провайдера нет расписания
	ErrProviderNotFound = fmt.Errorf("create_appointment: provider not found: %w", domain.ErrNotFound)

	// ErrUnknownService возвращается, когда выбранной услуги нет в каталоге провайдера
	ErrUnknownService = fmt.Errorf("create_appointment: unknown service: %w", domain.ErrValidation)

	// ErrTotalsMismatch возвращается, когда переданные итоги не совпадают с каталогом
	ErrTotalsMismatch = fmt.Errorf("create_appointment: totals do not match the catalog: %w", domain.ErrValidation)

	// ErrInvalidStartTime возвращается, когда время начала вне рабочих часов или не в сетке слотов
	ErrInvalidStartTime = fmt.Errorf("create_appointment: invalid start time: %w", domain.ErrValidation)

	// ErrDayClosed возвращается, когда провайдер не работает в этот день
	ErrDayClosed = fmt.Errorf("create_appointment: provider is closed on this date: %w", domain.ErrPreconditionFailed)

	// ErrStartInPast возвращается при попытке записаться на прошедшее время
	ErrStartInPast = fmt.Errorf("create_appointment: start time is in the past: %w", domain.ErrPreconditionFailed)

	// ErrCapacityExceeded возвращается, когда услуги не успевают закончиться до закрытия
	ErrCapacityExceeded = fmt.Errorf("create_appointment: services do not fit before closing time: %w", domain.ErrCapacityExceeded)

	// ErrSlotNotAvailable возвращается, когда интервал уже занят другой записью
	ErrSlotNotAvailable = fmt.Errorf("create_appointment: slot is not available: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("create_appointment: internal error: %w", domain.ErrStoreUnavailable)
)
