package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	providerRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	providerRepo    ProviderRepository
	txManager       TransactionManager
	codeGenerator   CodeGenerator
	metrics         Metrics
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// location задаёт часовой пояс, в котором считаются рабочие часы провайдеров.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	providerRepo ProviderRepository,
	txManager TransactionManager,
	codeGenerator CodeGenerator,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		providerRepo:    providerRepo,
		txManager:       txManager,
		codeGenerator:   codeGenerator,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции
// под блокировкой строки расписания провайдера.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: provider=%s, client=%s, start=%s, services=%v",
		req.ProviderID, req.ClientID, req.StartTime.Format(time.RFC3339), req.ServiceNames)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и переводим начало в часовой пояс расписания
	now := uc.timeProvider.Now()
	start := req.StartTime.In(uc.location)

	// 3. Генерируем код подтверждения до транзакции
	code, err := uc.codeGenerator.Generate()
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to generate completion code: %v", err)
		return nil, fmt.Errorf("%w: failed to generate completion code: %v", ErrInternal, err)
	}

	var result *domain.Appointment

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Блокируем расписание провайдера: конкурентные записи к нему выстраиваются в очередь
		av, err := uc.providerRepo.LockAvailability(txCtx, req.ProviderID)
		if err != nil {
			if errors.Is(err, providerRepo.ErrProviderNotFound) {
				uc.logger.Warn("CreateAppointment: provider id=%s not found", req.ProviderID)
				return ErrProviderNotFound
			}
			uc.logger.Error("CreateAppointment: failed to lock availability: %v", err)
			return fmt.Errorf("%w: failed to lock availability: %v", ErrInternal, err)
		}

		// 4.2. Получаем каталог и делаем снимок выбранных услуг
		catalog, err := uc.providerRepo.ListServices(txCtx, req.ProviderID)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to list services: %v", err)
			return fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
		}

		services, err := resolveServices(catalog, req.ServiceNames)
		if err != nil {
			uc.logger.Warn("CreateAppointment: %v", err)
			return err
		}

		// 4.3. Сверяем итоги
		totalDuration, totalPrice := domain.Totals(services)
		if err := validateTotals(req, totalDuration, totalPrice); err != nil {
			uc.logger.Warn("CreateAppointment: %v", err)
			return err
		}

		// 4.4. Проверяем, что день доступен для записи
		if !av.IsBookableDay(start) || domain.DateOf(start).Before(domain.DateOf(now.In(uc.location))) {
			uc.logger.Warn("CreateAppointment: provider id=%s is closed on %s", req.ProviderID, start.Format(domain.DateFormat))
			return ErrDayClosed
		}

		// 4.5. Проверяем, что время начала не в прошлом
		if start.Before(now) {
			uc.logger.Warn("CreateAppointment: start %s is before now %s", start.Format(time.RFC3339), now.Format(time.RFC3339))
			return ErrStartInPast
		}

		// 4.6. Проверяем, что начало в рабочих часах и в сетке слотов
		if err := scheduling.CheckStart(av, start); err != nil {
			uc.logger.Warn("CreateAppointment: invalid start time: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidStartTime, err)
		}

		// 4.7. Проверяем, что услуги заканчиваются до закрытия
		end := start.Add(time.Duration(totalDuration) * time.Minute)
		dayStart, dayEnd := av.WorkingWindow(start)
		if end.After(dayEnd) {
			uc.logger.Warn("CreateAppointment: end %s is after close %s", end.Format(domain.TimeFormat), av.CloseTime)
			return fmt.Errorf("%w: ends at %s, closes at %s", ErrCapacityExceeded, end.Format(domain.TimeFormat), av.CloseTime)
		}

		// 4.8. Получаем подтверждённые записи на день с блокировкой (FOR UPDATE)
		booked, err := uc.appointmentRepo.ListConfirmedInRange(txCtx, req.ProviderID, dayStart, dayEnd)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to list booked intervals: %v", err)
			return fmt.Errorf("%w: failed to list booked intervals: %v", ErrInternal, err)
		}

		// 4.9. Проверяем пересечения
		if overlap, found := scheduling.FindOverlap(booked, start, end); found {
			uc.logger.Warn("CreateAppointment: slot %s-%s overlaps %s-%s",
				start.Format(domain.TimeFormat), end.Format(domain.TimeFormat),
				overlap.Start.In(uc.location).Format(domain.TimeFormat), overlap.End.In(uc.location).Format(domain.TimeFormat))
			return ErrSlotNotAvailable
		}

		// 4.10. Создаем запись
		appointment := &domain.Appointment{
			ID:             uuid.NewString(),
			ProviderID:     req.ProviderID,
			ClientID:       req.ClientID,
			StartTime:      start,
			EndTime:        end,
			Services:       services,
			TotalDuration:  totalDuration,
			TotalPrice:     totalPrice,
			Status:         domain.StatusConfirmed,
			CompletionCode: code,
			IsReviewed:     false,
			ProviderName:   req.ProviderName,
			ClientName:     req.ClientName,
		}

		if err := uc.appointmentRepo.Create(txCtx, appointment); err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateAppointment: concurrent booking detected: %v", err)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = appointment
		return nil
	})

	if err != nil {
		// Конкурентная транзакция зафиксировалась первой
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateAppointment: serialization failure: %v", err)
			return nil, ErrSlotNotAvailable
		}
		if errors.Is(err, txmanager.ErrBeginTx) || errors.Is(err, txmanager.ErrCommitTx) {
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.RecordTransition(string(domain.StatusConfirmed))
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", result.ID)

	return &Response{
		ID:             result.ID,
		ProviderID:     result.ProviderID,
		ClientID:       result.ClientID,
		StartTime:      result.StartTime,
		EndTime:        result.EndTime,
		Services:       result.Services,
		TotalDuration:  result.TotalDuration,
		TotalPrice:     result.TotalPrice,
		Status:         result.Status,
		CompletionCode: result.CompletionCode,
		ProviderName:   result.ProviderName,
		ClientName:     result.ClientName,
		CreatedAt:      result.CreatedAt,
	}, nil
}
