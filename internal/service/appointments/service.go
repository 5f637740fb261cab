package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/otp"
)

// Service сервис для работы с записями: просмотр, отмена и завершение
type Service struct {
	appointmentRepo AppointmentRepository
	limiter         AttemptLimiter
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	limiter AttemptLimiter,
	metrics Metrics,
	logger Logger,
) *Service {
	if limiter == nil {
		limiter = NewCodeAttemptLimiter(0, 1)
	}
	return &Service{
		appointmentRepo: appointmentRepo,
		limiter:         limiter,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись по ID.
// Видеть запись могут только её клиент и провайдер, код подтверждения видит только клиент.
func (s *Service) GetByID(ctx context.Context, id string, userID string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for user=%s", id, userID)

	appointment, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !appointment.IsParticipant(userID) {
		s.logger.Warn("GetByID: access denied for user=%s to appointment id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%s", id)
	return models.FromDomainAppointment(appointment, userID), nil
}

// GetClientAppointments получает историю записей клиента.
// Клиент видит только свои записи.
func (s *Service) GetClientAppointments(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: fetching appointments for client=%s, status=%v", req.ClientID, req.Status)

	if req.ClientID == "" {
		return nil, fmt.Errorf("%w: client id is required", ErrInvalidInput)
	}

	if req.UserID != req.ClientID {
		s.logger.Warn("GetClientAppointments: user=%s cannot read appointments of client=%s", req.UserID, req.ClientID)
		return nil, ErrAccessDenied
	}

	clientID := req.ClientID
	filter := domain.AppointmentsFilter{ClientID: &clientID}
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientAppointments: invalid status=%s for client=%s", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Status = &status
	}

	appointments, err := s.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: successfully fetched %d appointments for client=%s", len(appointments), req.ClientID)
	return models.FromDomainAppointmentList(appointments, req.UserID), nil
}

// GetProviderAppointments получает записи провайдера с фильтрацией по статусу и периоду.
// Доступно только самому провайдеру.
func (s *Service) GetProviderAppointments(ctx context.Context, req *models.GetProviderAppointmentsRequest) (*models.AppointmentListResponse, error) {
	logMsg := fmt.Sprintf("GetProviderAppointments: fetching appointments for provider=%s", req.ProviderID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	if req.ProviderID == "" {
		return nil, fmt.Errorf("%w: provider id is required", ErrInvalidInput)
	}

	if req.UserID != req.ProviderID {
		s.logger.Warn("GetProviderAppointments: user=%s is not provider=%s", req.UserID, req.ProviderID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProviderAppointments: invalid filter for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	appointments, err := s.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderAppointments: repository error for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProviderAppointments: successfully fetched %d appointments for provider=%s", len(appointments), req.ProviderID)
	return models.FromDomainAppointmentList(appointments, req.UserID), nil
}

// Cancel отменяет запись.
// Клиент отменяет свою запись (cancelled_by_client), провайдер - запись к себе (cancelled_by_provider).
// Отмена возможна, только пока до начала остаётся больше 12 часов.
func (s *Service) Cancel(ctx context.Context, appointmentID string, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%s by user=%s", appointmentID, req.UserID)

	// 1. Получаем запись
	appointment, err := s.getAppointment(ctx, "Cancel", appointmentID)
	if err != nil {
		return nil, err
	}

	// 2. Определяем статус отмены по роли пользователя
	var cancelStatus domain.AppointmentStatus
	switch {
	case req.UserID != "" && req.UserID == appointment.ClientID:
		cancelStatus = domain.StatusCancelledByClient
	case req.UserID != "" && req.UserID == appointment.ProviderID:
		cancelStatus = domain.StatusCancelledByProvider
	default:
		s.logger.Warn("Cancel: access denied for user=%s to cancel appointment id=%s", req.UserID, appointmentID)
		return nil, ErrAccessDenied
	}

	// 3. Проверяем статус и окно отмены
	if !appointment.IsConfirmed() {
		s.logger.Warn("Cancel: appointment id=%s cannot be cancelled, status=%s", appointmentID, appointment.Status)
		return nil, ErrNotConfirmed
	}

	now := s.timeProvider.Now()
	if appointment.IsInsideCancellationWindow(now) {
		s.logger.Warn("Cancel: appointment id=%s starts at %s, cancellation window has passed",
			appointmentID, appointment.StartTime.Format(time.RFC3339))
		return nil, ErrCancellationWindowPassed
	}

	// 4. Меняем статус (compare-and-set)
	if err := s.transition(ctx, "Cancel", appointment, cancelStatus, appointmentRepo.TransitionFields{CancelledAt: &now}); err != nil {
		return nil, err
	}

	appointment.Status = cancelStatus
	appointment.CancelledAt = &now

	s.logger.Info("Cancel: successfully cancelled appointment id=%s with status=%s", appointmentID, cancelStatus)
	return models.FromDomainAppointment(appointment, req.UserID), nil
}

// Complete завершает запись по коду, который клиент называет провайдеру.
// Доступно только провайдеру после времени начала. Попытки ввода кода ограничены.
func (s *Service) Complete(ctx context.Context, appointmentID string, req *models.CompleteRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Complete: completing appointment id=%s by user=%s", appointmentID, req.UserID)

	if req.Code == "" {
		return nil, fmt.Errorf("%w: completion code is required", ErrInvalidInput)
	}

	// 1. Получаем запись
	appointment, err := s.getAppointment(ctx, "Complete", appointmentID)
	if err != nil {
		return nil, err
	}

	// 2. Завершить запись может только провайдер
	if req.UserID == "" || req.UserID != appointment.ProviderID {
		s.logger.Warn("Complete: user=%s is not provider of appointment id=%s", req.UserID, appointmentID)
		return nil, ErrAccessDenied
	}

	// 3. Проверяем статус и время начала
	if !appointment.IsConfirmed() {
		s.logger.Warn("Complete: appointment id=%s cannot be completed, status=%s", appointmentID, appointment.Status)
		return nil, ErrNotConfirmed
	}

	now := s.timeProvider.Now()
	if !appointment.HasStarted(now) {
		s.logger.Warn("Complete: appointment id=%s starts at %s", appointmentID, appointment.StartTime.Format(time.RFC3339))
		return nil, ErrNotStarted
	}

	// 4. Ограничиваем перебор кода
	if !s.limiter.Allow(appointmentID) {
		s.logger.Warn("Complete: too many attempts for appointment id=%s", appointmentID)
		return nil, ErrTooManyAttempts
	}

	// 5. Сверяем код
	if !otp.Equal(appointment.CompletionCode, req.Code) {
		s.logger.Warn("Complete: invalid completion code for appointment id=%s", appointmentID)
		return nil, ErrInvalidCompletionCode
	}

	// 6. Меняем статус (compare-and-set)
	if err := s.transition(ctx, "Complete", appointment, domain.StatusCompleted, appointmentRepo.TransitionFields{CompletedAt: &now}); err != nil {
		return nil, err
	}

	s.limiter.Forget(appointmentID)

	appointment.Status = domain.StatusCompleted
	appointment.CompletedAt = &now

	s.logger.Info("Complete: successfully completed appointment id=%s", appointmentID)
	return models.FromDomainAppointment(appointment, req.UserID), nil
}

// Вспомогательные методы

// getAppointment получает запись и переводит ошибки репозитория в ошибки сервиса
func (s *Service) getAppointment(ctx context.Context, op string, id string) (*domain.Appointment, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: appointment id is required", ErrInvalidInput)
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return appointment, nil
}

// transition меняет статус confirmed -> to и учитывает переход в метриках
func (s *Service) transition(ctx context.Context, op string, appointment *domain.Appointment, to domain.AppointmentStatus, fields appointmentRepo.TransitionFields) error {
	err := s.appointmentRepo.Transition(ctx, appointment.ID, domain.StatusConfirmed, to, fields)
	if err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrStatusMismatch):
			// Статус успели поменять конкурентно
			s.logger.Warn("%s: appointment id=%s changed concurrently", op, appointment.ID)
			return ErrNotConfirmed
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			s.logger.Warn("%s: appointment id=%s not found during update", op, appointment.ID)
			return ErrAppointmentNotFound
		default:
			s.logger.Error("%s: repository error for appointment id=%s: %v", op, appointment.ID, err)
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}
	}

	if s.metrics != nil {
		s.metrics.RecordTransition(string(to))
	}
	return nil
}
