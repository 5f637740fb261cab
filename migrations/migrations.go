package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.sql
var files embed.FS

var (
	// ErrReadMigrations возвращается, когда не удалось прочитать встроенные файлы миграций
	ErrReadMigrations = errors.New("migrations: failed to read migrations")

	// ErrApplyMigration возвращается, когда миграция завершилась ошибкой
	ErrApplyMigration = errors.New("migrations: failed to apply migration")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Migration одна SQL миграция
type Migration struct {
	Version string
	SQL     string
}

// List возвращает встроенные миграции, отсортированные по версии
func List() ([]Migration, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMigrations, err)
	}
	sort.Strings(names)

	result := make([]Migration, 0, len(names))
	for _, name := range names {
		body, err := files.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadMigrations, name, err)
		}
		result = append(result, Migration{
			Version: strings.TrimSuffix(name, ".sql"),
			SQL:     string(body),
		})
	}

	return result, nil
}

// Apply применяет ещё не применённые миграции, каждую в своей транзакции.
// Применённые версии хранятся в таблице schema_migrations.
func Apply(ctx context.Context, db *sql.DB, logger Logger) (int, error) {
	migrations, err := List()
	if err != nil {
		return 0, err
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		return 0, fmt.Errorf("%w: create schema_migrations: %v", ErrApplyMigration, err)
	}

	applied := 0
	for _, m := range migrations {
		done, err := apply(ctx, db, m)
		if err != nil {
			return applied, err
		}
		if done {
			applied++
			logger.Info("migrations: applied %s", m.Version)
		}
	}

	return applied, nil
}

func apply(ctx context.Context, db *sql.DB, m Migration) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("%w: %s - begin: %v", ErrApplyMigration, m.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	// Блокировка защищает от параллельного запуска нескольких экземпляров
	if _, err := tx.ExecContext(ctx, "LOCK TABLE schema_migrations IN EXCLUSIVE MODE"); err != nil {
		return false, fmt.Errorf("%w: %s - lock: %v", ErrApplyMigration, m.Version, err)
	}

	var exists bool
	if err := tx.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)", m.Version,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: %s - check version: %v", ErrApplyMigration, m.Version, err)
	}
	if exists {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrApplyMigration, m.Version, err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", m.Version); err != nil {
		return false, fmt.Errorf("%w: %s - record version: %v", ErrApplyMigration, m.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("%w: %s - commit: %v", ErrApplyMigration, m.Version, err)
	}
	return true, nil
}
