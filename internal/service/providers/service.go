package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	providerRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-AppointmentService/internal/service/providers/models"
)

// Service сервис профиля провайдера: расписание, каталог услуг, отзывы
type Service struct {
	providerRepo ProviderRepository
	reviewRepo   ReviewRepository
	txManager    TransactionManager
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса провайдеров.
// location задаёт часовой пояс, в котором разбираются заблокированные даты.
func NewService(
	providerRepo ProviderRepository,
	reviewRepo ReviewRepository,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		providerRepo: providerRepo,
		reviewRepo:   reviewRepo,
		txManager:    txManager,
		location:     location,
		logger:       logger,
	}
}

// GetProfile получает профиль провайдера: расписание, каталог и рейтинг.
// Доступно всем.
func (s *Service) GetProfile(ctx context.Context, providerID string) (*models.ProfileResponse, error) {
	s.logger.Info("GetProfile: fetching profile for provider=%s", providerID)

	if providerID == "" {
		return nil, fmt.Errorf("%w: provider id is required", ErrInvalidInput)
	}

	av, err := s.providerRepo.GetAvailability(ctx, providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("GetProfile: provider id=%s not found", providerID)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("GetProfile: failed to get availability for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetProfile - repository error: %v", ErrInternal, err)
	}

	catalog, err := s.providerRepo.ListServices(ctx, providerID)
	if err != nil {
		s.logger.Error("GetProfile: failed to list services for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetProfile - repository error: %v", ErrInternal, err)
	}

	summary, err := s.reviewRepo.RatingSummary(ctx, providerID)
	if err != nil {
		s.logger.Error("GetProfile: failed to get rating for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetProfile - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProfile: successfully fetched profile for provider=%s, services=%d", providerID, len(catalog))
	return &models.ProfileResponse{
		AvailabilityResponse: models.FromDomainAvailability(av),
		Services:             models.FromDomainCatalog(catalog),
		Rating:               models.FromDomainRating(summary),
	}, nil
}

// UpdateAvailability создает или заменяет расписание провайдера.
// Доступно только самому провайдеру. Уже созданные записи не меняются.
func (s *Service) UpdateAvailability(ctx context.Context, req *models.UpdateAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("UpdateAvailability: provider=%s, days=%v, hours=%s-%s, blocked=%d by user=%s",
		req.ProviderID, req.WorkingDays, req.OpenTime, req.CloseTime, len(req.BlockedDates), req.UserID)

	// 1. Проверяем права доступа
	if err := s.checkOwner("UpdateAvailability", req.ProviderID, req.UserID); err != nil {
		return nil, err
	}

	// 2. Конвертируем и валидируем расписание
	av, err := req.ToDomainAvailability(s.location)
	if err != nil {
		s.logger.Warn("UpdateAvailability: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := av.Validate(); err != nil {
		s.logger.Warn("UpdateAvailability: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.ProviderName != nil && len(*req.ProviderName) > domain.MaxDisplayNameLength {
		return nil, fmt.Errorf("%w: provider name is longer than %d characters", ErrInvalidInput, domain.MaxDisplayNameLength)
	}

	// 3. Сохраняем
	if err := s.providerRepo.UpsertAvailability(ctx, av); err != nil {
		s.logger.Error("UpdateAvailability: repository error for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: UpdateAvailability - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateAvailability: successfully updated availability for provider=%s", req.ProviderID)
	resp := models.FromDomainAvailability(av)
	return &resp, nil
}

// UpdateServices заменяет каталог услуг провайдера.
// Снимки услуг в существующих записях не меняются.
func (s *Service) UpdateServices(ctx context.Context, req *models.UpdateServicesRequest) (*models.ServicesResponse, error) {
	s.logger.Info("UpdateServices: provider=%s, services=%d by user=%s", req.ProviderID, len(req.Services), req.UserID)

	// 1. Проверяем права доступа
	if err := s.checkOwner("UpdateServices", req.ProviderID, req.UserID); err != nil {
		return nil, err
	}

	// 2. Валидируем каталог
	catalog := req.ToDomainCatalog()
	if err := catalog.Validate(); err != nil {
		s.logger.Warn("UpdateServices: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Заменяем каталог в транзакции под блокировкой расписания,
	// чтобы создание записи не увидело каталог наполовину
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.providerRepo.LockAvailability(txCtx, req.ProviderID); err != nil {
			if errors.Is(err, providerRepo.ErrProviderNotFound) {
				s.logger.Warn("UpdateServices: provider id=%s not found", req.ProviderID)
				return ErrProviderNotFound
			}
			s.logger.Error("UpdateServices: failed to lock availability: %v", err)
			return fmt.Errorf("%w: UpdateServices - lock availability: %v", ErrInternal, err)
		}

		if err := s.providerRepo.ReplaceServices(txCtx, req.ProviderID, catalog); err != nil {
			s.logger.Error("UpdateServices: repository error for provider=%s: %v", req.ProviderID, err)
			return fmt.Errorf("%w: UpdateServices - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrProviderNotFound) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		s.logger.Error("UpdateServices: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: UpdateServices - transaction: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateServices: successfully replaced catalog for provider=%s", req.ProviderID)
	return &models.ServicesResponse{
		ProviderID: req.ProviderID,
		Services:   models.FromDomainCatalog(catalog),
	}, nil
}

// GetReviews получает отзывы провайдера (сначала новые) и сводку рейтинга
func (s *Service) GetReviews(ctx context.Context, req *models.GetReviewsRequest) (*models.ReviewsResponse, error) {
	s.logger.Info("GetReviews: fetching reviews for provider=%s, limit=%d, offset=%d", req.ProviderID, req.Limit, req.Offset)

	if req.ProviderID == "" {
		return nil, fmt.Errorf("%w: provider id is required", ErrInvalidInput)
	}

	reviews, err := s.reviewRepo.ListByProvider(ctx, req.ProviderID, req.Limit, req.Offset)
	if err != nil {
		s.logger.Error("GetReviews: repository error for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetReviews - repository error: %v", ErrInternal, err)
	}

	summary, err := s.reviewRepo.RatingSummary(ctx, req.ProviderID)
	if err != nil {
		s.logger.Error("GetReviews: failed to get rating for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetReviews - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetReviews: successfully fetched %d reviews for provider=%s", len(reviews), req.ProviderID)
	return &models.ReviewsResponse{
		ProviderID: req.ProviderID,
		Rating:     models.FromDomainRating(summary),
		Reviews:    models.FromDomainReviews(reviews),
	}, nil
}

// Вспомогательные методы

// checkOwner проверяет, что пользователь меняет собственный профиль
func (s *Service) checkOwner(op string, providerID, userID string) error {
	if providerID == "" {
		return fmt.Errorf("%w: provider id is required", ErrInvalidInput)
	}
	if userID == "" || userID != providerID {
		s.logger.Warn("%s: user=%s is not provider=%s", op, userID, providerID)
		return ErrAccessDenied
	}
	return nil
}
