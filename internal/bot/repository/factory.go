package repository

import (
	"log/slog"

	"github.com/central-university-dev/go-news-bot/internal/bot/repository/orm"
	sqlrepo "github.com/central-university-dev/go-news-bot/internal/bot/repository/sql"
	"github.com/central-university-dev/go-news-bot/internal/bot/service"
	"github.com/central-university-dev/go-news-bot/internal/config"
	"github.com/central-university-dev/go-news-bot/internal/database"
	"github.com/central-university-dev/go-news-bot/internal/domain/errors"
	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

type Factory struct {
	db       *database.PostgresDB
	config   *config.Config
	registry models.SourceRegistry
	logger   *slog.Logger
}

func NewFactory(db *database.PostgresDB, config *config.Config, registry models.SourceRegistry, logger *slog.Logger) *Factory {
	return &Factory{
		db:       db,
		config:   config,
		registry: registry,
		logger:   logger,
	}
}

func (f *Factory) CreateSubscriptionRepository() (service.SubscriptionRepository, error) {
	var repo service.SubscriptionRepository

	switch f.config.DatabaseAccessType {
	case config.SquirrelAccess:
		f.logger.Info("Создание ORM (Squirrel) репозитория подписок")

		repo = orm.NewSubscriptionRepository(f.db)
	case config.SQLAccess:
		f.logger.Info("Создание SQL репозитория подписок")

		repo = sqlrepo.NewSubscriptionRepository(f.db)
	default:
		return nil, &errors.ErrUnknownDBAccessType{AccessType: string(f.config.DatabaseAccessType)}
	}

	return WithSourceValidation(repo, f.registry), nil
}
