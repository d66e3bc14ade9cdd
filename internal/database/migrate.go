package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	// postgres driver регистрирует схемы postgres:// и postgresql:// для migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/central-university-dev/go-news-bot/migrations"
)

type migrateLogger struct {
	logger *slog.Logger
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.logger.Debug("migrate: " + fmt.Sprintf(format, v...))
}

func (l migrateLogger) Verbose() bool {
	return false
}

// Migrate применяет встроенные миграции. Повторный запуск на актуальной схеме ничего не меняет.
func Migrate(dsn string, logger *slog.Logger) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("ошибка при чтении встроенных миграций: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return fmt.Errorf("не удалось создать экземпляр migrate: %w", err)
	}

	m.Log = migrateLogger{logger: logger}

	upErr := m.Up()

	sourceErr, dbErr := m.Close()

	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("не удалось применить миграции: %w", upErr)
	}

	if sourceErr != nil {
		return fmt.Errorf("ошибка закрытия источника миграций: %w", sourceErr)
	}

	if dbErr != nil {
		return fmt.Errorf("ошибка закрытия подключения БД миграций: %w", dbErr)
	}

	logger.Info("Миграции базы данных применены", "changed", upErr == nil)

	return nil
}
