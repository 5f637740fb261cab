package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	providerRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

// UseCase use case для получения доступных времён начала записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	providerRepo    ProviderRepository
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	providerRepo ProviderRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		providerRepo:    providerRepo,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%s, date=%s", req.ProviderID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время, дату трактуем в часовом поясе расписания
	now := uc.timeProvider.Now()
	y, m, d := req.Date.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, uc.location)

	// 3. Получаем расписание провайдера
	av, err := uc.providerRepo.GetAvailability(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("GetAvailableSlots: provider id=%s not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	response := &Response{
		Date:       date,
		ProviderID: req.ProviderID,
		Slots:      []time.Time{},
	}

	// 4. Выходной день: записи не нужны
	if !av.IsBookableDay(date) {
		uc.logger.Info("GetAvailableSlots: provider id=%s is closed on %s", req.ProviderID, date.Format(domain.DateFormat))
		return response, nil
	}

	// 5. Получаем подтверждённые записи на рабочее окно дня
	dayStart, dayEnd := av.WorkingWindow(date)
	booked, err := uc.appointmentRepo.ListConfirmedInRange(ctx, req.ProviderID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list booked intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to list booked intervals: %v", ErrInternal, err)
	}

	// 6. Генерируем слоты
	slots, err := scheduling.GenerateStartTimes(av, date, booked, now)
	if err != nil {
		if errors.Is(err, scheduling.ErrInvalidWorkingHours) {
			uc.logger.Warn("GetAvailableSlots: provider id=%s has invalid working hours: %v", req.ProviderID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("get_available_slots: failed to generate slots: %w", err)
	}

	response.Slots = slots

	uc.logger.Info("GetAvailableSlots: generated %d slots for provider=%s, date=%s",
		len(slots), req.ProviderID, date.Format(domain.DateFormat))

	return response, nil
}
