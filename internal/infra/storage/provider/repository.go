package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// weekdayColumns колонки рабочих дней, начиная с понедельника
var weekdayColumns = []string{
	"works_monday",
	"works_tuesday",
	"works_wednesday",
	"works_thursday",
	"works_friday",
	"works_saturday",
	"works_sunday",
}

var availabilityColumns = append(append([]string{
	"provider_id",
	"provider_name",
}, weekdayColumns...),
	"open_time",
	"close_time",
	"blocked_dates",
	"updated_at",
)

// Repository репозиторий для работы с расписанием и каталогом услуг провайдера
type Repository struct {
	db       DBExecutor
	location *time.Location
}

// NewRepository создает новый экземпляр репозитория провайдеров.
// location используется для календарных дат (blocked_dates).
func NewRepository(db DBExecutor, location *time.Location) *Repository {
	if location == nil {
		location = time.UTC
	}
	return &Repository{db: db, location: location}
}

// GetAvailability получает расписание провайдера
func (r *Repository) GetAvailability(ctx context.Context, providerID string) (*domain.ProviderAvailability, error) {
	return r.getAvailability(ctx, providerID, false, "GetAvailability")
}

// LockAvailability получает расписание провайдера и блокирует строку до конца транзакции.
// Сериализует создание записей к одному провайдеру.
func (r *Repository) LockAvailability(ctx context.Context, providerID string) (*domain.ProviderAvailability, error) {
	return r.getAvailability(ctx, providerID, dbmetrics.IsInTransaction(ctx), "LockAvailability")
}

func (r *Repository) getAvailability(ctx context.Context, providerID string, forUpdate bool, op string) (*domain.ProviderAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(availabilityColumns...).
		From("provider_availability").
		Where(squirrel.Eq{"provider_id": providerID})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var av domain.ProviderAvailability
	var blocked pq.StringArray
	works := make([]bool, len(weekdayColumns))

	dest := []interface{}{&av.ProviderID, &av.ProviderName}
	for i := range works {
		dest = append(dest, &works[i])
	}
	dest = append(dest, &av.OpenTime, &av.CloseTime, &blocked, &av.UpdatedAt)

	err = executor.QueryRowContext(ctx, query, args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan availability: %v", ErrScanRow, op, err)
	}

	av.WorkingDays = make(domain.WorkingDays, len(domain.AllWeekdays))
	for i, day := range domain.AllWeekdays {
		av.WorkingDays[day] = works[i]
	}

	av.BlockedDates, err = r.parseDates(blocked)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - parse blocked dates: %v", ErrScanRow, op, err)
	}

	return &av, nil
}

// UpsertAvailability создает или полностью заменяет расписание провайдера
func (r *Repository) UpsertAvailability(ctx context.Context, av *domain.ProviderAvailability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := append([]string{"provider_id", "provider_name"}, weekdayColumns...)
	columns = append(columns, "open_time", "close_time", "blocked_dates")

	values := []interface{}{av.ProviderID, av.ProviderName}
	for _, day := range domain.AllWeekdays {
		values = append(values, av.WorkingDays[day])
	}
	values = append(values, av.OpenTime, av.CloseTime, pq.StringArray(r.formatDates(av.BlockedDates)))

	updates := make([]string, 0, len(columns))
	for _, column := range columns[1:] {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
	}
	updates = append(updates, "updated_at = NOW()")

	query, args, err := psqlbuilder.Insert("provider_availability").
		Columns(columns...).
		Values(values...).
		Suffix("ON CONFLICT (provider_id) DO UPDATE SET " + strings.Join(updates, ", ") + " RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertAvailability - build upsert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&av.UpdatedAt); err != nil {
		return fmt.Errorf("%w: UpsertAvailability - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListServices получает каталог услуг провайдера в порядке, заданном провайдером
func (r *Repository) ListServices(ctx context.Context, providerID string) (domain.ServiceCatalog, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("name", "duration_minutes", "price").
		From("provider_services").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	catalog := make(domain.ServiceCatalog, 0)
	for rows.Next() {
		var entry domain.ServiceCatalogEntry
		if err := rows.Scan(&entry.Name, &entry.DurationMinutes, &entry.Price); err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan row: %v", ErrScanRow, err)
		}
		catalog = append(catalog, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %v", ErrScanRow, err)
	}

	return catalog, nil
}

// ReplaceServices заменяет каталог услуг провайдера целиком.
// Вызывать внутри транзакции: удаление и вставка должны быть атомарны.
func (r *Repository) ReplaceServices(ctx context.Context, providerID string, catalog domain.ServiceCatalog) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("provider_services").
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceServices - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceServices - execute delete: %v", ErrExecQuery, err)
	}

	if len(catalog) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("provider_services").
		Columns("provider_id", "position", "name", "duration_minutes", "price")

	for i, entry := range catalog {
		insertBuilder = insertBuilder.Values(providerID, i, entry.Name, entry.DurationMinutes, entry.Price)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceServices - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceServices - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) formatDates(dates []time.Time) []string {
	result := make([]string, len(dates))
	for i, date := range dates {
		result[i] = date.In(r.location).Format(domain.DateFormat)
	}
	return result
}

func (r *Repository) parseDates(values []string) ([]time.Time, error) {
	result := make([]time.Time, 0, len(values))
	for _, value := range values {
		date, err := time.ParseInLocation(domain.DateFormat, value, r.location)
		if err != nil {
			return nil, err
		}
		result = append(result, date)
	}
	return result, nil
}
