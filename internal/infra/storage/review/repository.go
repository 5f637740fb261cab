package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const codeUniqueViolation = "23505"

// Repository репозиторий для работы с отзывами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет отзыв. На одну запись допускается один отзыв.
func (r *Repository) Create(ctx context.Context, review *domain.Review) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reviews").
		Columns(
			"id",
			"provider_id",
			"client_id",
			"appointment_id",
			"rating",
			"comment",
			"client_name",
		).
		Values(
			review.ID,
			review.ProviderID,
			review.ClientID,
			review.AppointmentID,
			review.Rating,
			review.Comment,
			review.ClientName,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&review.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation {
		return ErrReviewExists
	}
	if err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListByProvider получает отзывы провайдера, сначала новые
func (r *Repository) ListByProvider(ctx context.Context, providerID string, limit, offset uint64) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"provider_id",
		"client_id",
		"appointment_id",
		"rating",
		"comment",
		"client_name",
		"created_at",
	).
		From("reviews").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("created_at DESC")

	if limit > 0 {
		selectBuilder = selectBuilder.Limit(limit).Offset(offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		var review domain.Review
		err := rows.Scan(
			&review.ID,
			&review.ProviderID,
			&review.ClientID,
			&review.AppointmentID,
			&review.Rating,
			&review.Comment,
			&review.ClientName,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByProvider - scan row: %v", ErrScanRow, err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - rows error: %v", ErrScanRow, err)
	}

	return reviews, nil
}

// RatingSummary считает количество отзывов и средний рейтинг провайдера
func (r *Repository) RatingSummary(ctx context.Context, providerID string) (*domain.RatingSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)", "COALESCE(AVG(rating), 0)").
		From("reviews").
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: RatingSummary - build select query: %v", ErrBuildQuery, err)
	}

	summary := domain.RatingSummary{ProviderID: providerID}
	err = executor.QueryRowContext(ctx, query, args...).Scan(&summary.ReviewsCount, &summary.AverageRating)
	if err != nil {
		return nil, fmt.Errorf("%w: RatingSummary - scan: %v", ErrScanRow, err)
	}

	return &summary, nil
}
