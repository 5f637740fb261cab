package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var appointmentColumns = []string{
	"id",
	"provider_id",
	"client_id",
	"start_time",
	"end_time",
	"services",
	"total_duration",
	"total_price",
	"status",
	"completion_code",
	"is_reviewed",
	"provider_name",
	"client_name",
	"cancelled_at",
	"completed_at",
	"created_at",
	"updated_at",
}

// TransitionFields поля, которые меняются вместе со статусом
type TransitionFields struct {
	CancelledAt *time.Time
	CompletedAt *time.Time
}

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись.
// Если в контексте передана активная транзакция, использует её.
// Пересечение с подтверждённой записью того же провайдера (exclusion constraint)
// возвращается как ErrSlotNotAvailable.
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	services, err := encodeServices(appointment.Services)
	if err != nil {
		return fmt.Errorf("%w: Create - encode services: %v", ErrEncodeServices, err)
	}

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"provider_id",
			"client_id",
			"start_time",
			"end_time",
			"services",
			"total_duration",
			"total_price",
			"status",
			"completion_code",
			"is_reviewed",
			"provider_name",
			"client_name",
		).
		Values(
			appointment.ID,
			appointment.ProviderID,
			appointment.ClientID,
			appointment.StartTime,
			appointment.EndTime,
			string(services),
			appointment.TotalDuration,
			appointment.TotalPrice,
			appointment.Status,
			appointment.CompletionCode,
			appointment.IsReviewed,
			appointment.ProviderName,
			appointment.ClientName,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)

	if isSlotConflict(err) {
		return fmt.Errorf("%w: Create - %v", ErrSlotNotAvailable, err)
	}
	if err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id})

	// В транзакции блокируем строку до смены статуса
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appointment, nil
}

// ListConfirmedInRange возвращает подтверждённые интервалы провайдера, пересекающиеся с [from, to),
// отсортированные по времени начала.
// Внутри транзакции строки блокируются (FOR UPDATE) для проверки пересечений при создании записи.
func (r *Repository) ListConfirmedInRange(ctx context.Context, providerID string, from, to time.Time) ([]domain.BookedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("start_time", "end_time").
		From("appointments").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.BookedInterval, 0)
	for rows.Next() {
		var interval domain.BookedInterval
		if err := rows.Scan(&interval.Start, &interval.End); err != nil {
			return nil, fmt.Errorf("%w: ListConfirmedInRange - scan row: %v", ErrScanRow, err)
		}
		intervals = append(intervals, interval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedInRange - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}

// GetWithFilter получает записи с гибкой фильтрацией.
// Сортировка: сначала новые (start_time DESC).
//
// Примеры использования:
//
//  1. Все записи клиента:
//     filter := domain.AppointmentsFilter{ClientID: &clientID}
//
//  2. Подтверждённые записи провайдера за период:
//     status := domain.StatusConfirmed
//     filter := domain.AppointmentsFilter{ProviderID: &providerID, Status: &status, StartDate: &from, EndDate: &to}
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		OrderBy("start_time DESC")

	if filter.ProviderID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"provider_id": *filter.ProviderID})
	}
	if filter.ClientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.EndDate})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWithFilter - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// Transition меняет статус записи с from на to (compare-and-set).
// Если запись существует, но её статус уже не from, возвращает ErrStatusMismatch.
func (r *Repository) Transition(ctx context.Context, id string, from, to domain.AppointmentStatus, fields TransitionFields) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("appointments").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from})

	if fields.CancelledAt != nil {
		updateBuilder = updateBuilder.Set("cancelled_at", *fields.CancelledAt)
	}
	if fields.CompletedAt != nil {
		updateBuilder = updateBuilder.Set("completed_at", *fields.CompletedAt)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Transition - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if isInvalidID(err) {
		return ErrAppointmentNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Transition - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Transition - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return r.missingOrMismatch(ctx, id)
	}

	return nil
}

// MarkReviewed атомарно выставляет is_reviewed = true для завершённой записи.
// Повторный вызов возвращает ErrAlreadyReviewed.
func (r *Repository) MarkReviewed(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("is_reviewed", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusCompleted}).
		Where(squirrel.Eq{"is_reviewed": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkReviewed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if isInvalidID(err) {
		return ErrAppointmentNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: MarkReviewed - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkReviewed - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		err := r.missingOrMismatch(ctx, id)
		if errors.Is(err, ErrStatusMismatch) {
			return ErrAlreadyReviewed
		}
		return err
	}

	return nil
}

// missingOrMismatch различает отсутствующую запись и запись в другом состоянии
func (r *Repository) missingOrMismatch(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: missingOrMismatch - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAppointmentNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: missingOrMismatch - scan: %v", ErrScanRow, err)
	}

	return ErrStatusMismatch
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAppointment сканирует строку в запись
func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appointment domain.Appointment
	var services []byte

	err := row.Scan(
		&appointment.ID,
		&appointment.ProviderID,
		&appointment.ClientID,
		&appointment.StartTime,
		&appointment.EndTime,
		&services,
		&appointment.TotalDuration,
		&appointment.TotalPrice,
		&appointment.Status,
		&appointment.CompletionCode,
		&appointment.IsReviewed,
		&appointment.ProviderName,
		&appointment.ClientName,
		&appointment.CancelledAt,
		&appointment.CompletedAt,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.Services, err = decodeServices(services)
	if err != nil {
		return nil, fmt.Errorf("decode services: %v", err)
	}

	return &appointment, nil
}
