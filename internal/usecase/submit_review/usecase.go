package submit_review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	reviewRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/review"
)

// UseCase use case для отзыва о завершённой записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	reviewRepo      ReviewRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	reviewRepo ReviewRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		reviewRepo:      reviewRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case отзыва.
// Отметка is_reviewed и вставка отзыва выполняются в одной транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitReview: appointment=%s, client=%s, rating=%d", req.AppointmentID, req.ClientID, req.Rating)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitReview: validation failed: %v", err)
		return nil, err
	}

	var review *domain.Review

	// 2. Выполняем операции с БД в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем запись (в транзакции строка блокируется)
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("SubmitReview: appointment id=%s not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("SubmitReview: failed to get appointment: %v", err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.2. Отзыв оставляет только клиент
		if appointment.ClientID != req.ClientID {
			uc.logger.Warn("SubmitReview: user=%s is not client of appointment id=%s", req.ClientID, req.AppointmentID)
			return ErrAccessDenied
		}

		// 2.3. Проверяем состояние записи
		if !appointment.IsCompleted() {
			uc.logger.Warn("SubmitReview: appointment id=%s has status=%s", req.AppointmentID, appointment.Status)
			return ErrNotCompleted
		}
		if appointment.IsReviewed {
			uc.logger.Warn("SubmitReview: appointment id=%s already reviewed", req.AppointmentID)
			return ErrAlreadyReviewed
		}

		// 2.4. Отмечаем запись как оценённую (compare-and-set)
		if err := uc.appointmentRepo.MarkReviewed(txCtx, req.AppointmentID); err != nil {
			if errors.Is(err, appointmentRepo.ErrAlreadyReviewed) {
				uc.logger.Warn("SubmitReview: appointment id=%s reviewed concurrently", req.AppointmentID)
				return ErrAlreadyReviewed
			}
			uc.logger.Error("SubmitReview: failed to mark appointment reviewed: %v", err)
			return fmt.Errorf("%w: failed to mark reviewed: %v", ErrInternal, err)
		}

		// 2.5. Сохраняем отзыв
		clientName := req.ClientName
		if clientName == nil {
			clientName = appointment.ClientName
		}

		candidate := &domain.Review{
			ID:            uuid.NewString(),
			ProviderID:    appointment.ProviderID,
			ClientID:      appointment.ClientID,
			AppointmentID: appointment.ID,
			Rating:        req.Rating,
			Comment:       normalizeComment(req.Comment),
			ClientName:    clientName,
		}

		if err := uc.reviewRepo.Create(txCtx, candidate); err != nil {
			if errors.Is(err, reviewRepo.ErrReviewExists) {
				uc.logger.Warn("SubmitReview: review for appointment id=%s already exists", req.AppointmentID)
				return ErrAlreadyReviewed
			}
			uc.logger.Error("SubmitReview: failed to create review: %v", err)
			return fmt.Errorf("%w: failed to create review: %v", ErrInternal, err)
		}

		review = candidate
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) ||
			errors.Is(err, domain.ErrPreconditionFailed) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("SubmitReview: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("SubmitReview: successfully created review id=%s for appointment id=%s", review.ID, review.AppointmentID)

	return &Response{
		ID:            review.ID,
		AppointmentID: review.AppointmentID,
		ProviderID:    review.ProviderID,
		ClientID:      review.ClientID,
		Rating:        review.Rating,
		Comment:       review.Comment,
		ClientName:    review.ClientName,
		CreatedAt:     review.CreatedAt,
	}, nil
}
