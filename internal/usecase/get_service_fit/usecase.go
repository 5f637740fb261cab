package get_service_fit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	providerRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

// UseCase use case для расчёта услуг, помещающихся в окно с выбранного времени
type UseCase struct {
	appointmentRepo AppointmentRepository
	providerRepo    ProviderRepository
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
		location:        location,
		logger:          logger,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetServiceFit: provider=%s, start=%s", req.ProviderID, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetServiceFit: validation failed: %v", err)
		return nil, err
	}

	start := req.StartTime.In(uc.location)

	// 2. Получаем расписание и каталог
	av, err := uc.providerRepo.GetAvailability(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("GetServiceFit: provider id=%s not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetServiceFit: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	catalog, err := uc.providerRepo.ListServices(ctx, req.ProviderID)
	if err != nil {
		uc.logger.Error("GetServiceFit: failed to list services: %v", err)
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}

	// 3. Получаем подтверждённые записи на день
	dayStart, dayEnd := av.WorkingWindow(start)
	booked, err := uc.appointmentRepo.ListConfirmedInRange(ctx, req.ProviderID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetServiceFit: failed to list booked intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to list booked intervals: %v", ErrInternal, err)
	}

	// 4. Считаем окно до следующей записи или закрытия
	maxDuration, err := scheduling.MaxDuration(av, start, booked)
	if err != nil {
		uc.logger.Warn("GetServiceFit: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStartTime, err)
	}

	uc.logger.Info("GetServiceFit: provider=%s, start=%s, maxDuration=%d",
		req.ProviderID, start.Format(domain.TimeFormat), maxDuration)

	return &Response{
		ProviderID:  req.ProviderID,
		StartTime:   start,
		MaxDuration: maxDuration,
		Services:    scheduling.FitServices(catalog, maxDuration),
	}, nil
}
