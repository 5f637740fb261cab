package scheduling

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidWorkingHours возвращается, когда время работы провайдера некорректно (close <= open)
	ErrInvalidWorkingHours = fmt.Errorf("%w: invalid working hours", domain.ErrValidation)

	// ErrStartOutsideHours возвращается, когда время начала вне рабочего окна дня
	ErrStartOutsideHours = fmt.Errorf("%w: start time is outside working hours", domain.ErrValidation)

	// ErrStartOffGrid возвращается, когда время начала не попадает в сетку слотов
	ErrStartOffGrid = fmt.Errorf("%w: start time is not aligned to the slot grid", domain.ErrValidation)

	// ErrStartInsideBooking возвращается, когда время начала попадает в уже занятый интервал
	ErrStartInsideBooking = fmt.Errorf("%w: start time is inside a booked interval", domain.ErrValidation)

	// ErrCapacityExceeded возвращается, когда выбранные услуги не помещаются в свободное окно
	ErrCapacityExceeded = fmt.Errorf("%w: selected services exceed the available window", domain.ErrCapacityExceeded)
)
