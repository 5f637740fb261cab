package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с подтверждённой записью
	ErrSlotNotAvailable = errors.New("appointment.repository: slot not available")

	// ErrStatusMismatch возвращается, когда текущий статус записи отличается от ожидаемого
	ErrStatusMismatch = errors.New("appointment.repository: status mismatch")

	// ErrAlreadyReviewed возвращается, когда запись уже отмечена как оценённая или ещё не завершена
	ErrAlreadyReviewed = errors.New("appointment.repository: appointment already reviewed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")

	// ErrEncodeServices возвращается при ошибке сериализации снимка услуг
	ErrEncodeServices = errors.New("appointment.repository: failed to encode services")
)
