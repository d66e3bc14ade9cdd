package repository

import (
	"context"

	"github.com/central-university-dev/go-news-bot/internal/bot/service"
	customerrors "github.com/central-university-dev/go-news-bot/internal/domain/errors"
	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

// SourceValidatingRepository отклоняет запись источников, которых нет в реестре.
type SourceValidatingRepository struct {
	service.SubscriptionRepository
	registry models.SourceRegistry
}

func WithSourceValidation(repo service.SubscriptionRepository, registry models.SourceRegistry) *SourceValidatingRepository {
	return &SourceValidatingRepository{
		SubscriptionRepository: repo,
		registry:               registry,
	}
}

func (r *SourceValidatingRepository) SetDefaultSource(ctx context.Context, userID int64, source string) error {
	if !r.registry.Has(source) {
		return &customerrors.ErrUnknownSource{Source: source}
	}

	return r.SubscriptionRepository.SetDefaultSource(ctx, userID, source)
}

func (r *SourceValidatingRepository) UpsertActive(ctx context.Context, userID int64, source string, intervalMinutes int) (bool, error) {
	if !r.registry.Has(source) {
		return false, &customerrors.ErrUnknownSource{Source: source}
	}

	if intervalMinutes <= 0 {
		return false, &customerrors.ErrInvalidInterval{Minutes: intervalMinutes}
	}

	return r.SubscriptionRepository.UpsertActive(ctx, userID, source, intervalMinutes)
}
