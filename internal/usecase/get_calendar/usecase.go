package get_calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/cache/calendar"
	providerRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

// UseCase use case для получения статусов дней месяца (open/full/closed)
type UseCase struct {
	appointmentRepo AppointmentRepository
	providerRepo    ProviderRepository
	cache           CalendarCache
	options         scheduling.ClassifyOptions
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	providerRepo ProviderRepository,
	cache CalendarCache,
	options scheduling.ClassifyOptions,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	if cache == nil {
		cache = calendar.NopCache{}
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		providerRepo:    providerRepo,
		cache:           cache,
		options:         options,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

// Execute выполняет use case получения календаря
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCalendar: validation failed: %v", err)
		return nil, err
	}

	// 2. Границы месяца в часовом поясе расписания
	now := uc.timeProvider.Now()
	y, m, _ := req.Month.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, uc.location)
	next := first.AddDate(0, 1, 0)
	last := next.AddDate(0, 0, -1)

	key := calendar.Key{
		ProviderID: req.ProviderID,
		Month:      first.Format(domain.MonthFormat),
		Today:      now.In(uc.location).Format(domain.DateFormat),
	}

	uc.logger.Info("GetCalendar: provider=%s, month=%s", req.ProviderID, key.Month)

	// 3. Пробуем кэш. Ошибка кэша не ломает запрос
	days, found, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("GetCalendar: cache get failed: %v", err)
	}
	if found {
		return &Response{ProviderID: req.ProviderID, Month: key.Month, Days: days}, nil
	}

	// 4. Получаем расписание провайдера
	av, err := uc.providerRepo.GetAvailability(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("GetCalendar: provider id=%s not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetCalendar: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	// 5. Получаем каталог (нужна самая короткая услуга)
	catalog, err := uc.providerRepo.ListServices(ctx, req.ProviderID)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to list services: %v", err)
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}

	// 6. Получаем подтверждённые записи за месяц
	booked, err := uc.appointmentRepo.ListConfirmedInRange(ctx, req.ProviderID, first, next)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to list booked intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to list booked intervals: %v", ErrInternal, err)
	}

	// 7. Классифицируем каждый день месяца
	days = scheduling.ClassifyRange(av, catalog, booked, first, last, now, uc.options)

	if err := uc.cache.Set(ctx, key, days); err != nil {
		uc.logger.Warn("GetCalendar: cache set failed: %v", err)
	}

	return &Response{ProviderID: req.ProviderID, Month: key.Month, Days: days}, nil
}
