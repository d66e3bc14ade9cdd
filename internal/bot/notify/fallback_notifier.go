package notify

import (
	"context"
	"log/slog"

	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

type FallbackNotifier struct {
	primary   Notifier
	secondary Notifier
	logger    *slog.Logger
}

func NewFallbackNotifier(primary, secondary Notifier, logger *slog.Logger) *FallbackNotifier {
	return &FallbackNotifier{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

func (n *FallbackNotifier) Deliver(ctx context.Context, delivery *models.Delivery) error {
	err := n.primary.Deliver(ctx, delivery)
	if err == nil {
		return nil
	}

	n.logger.Warn("Основной транспорт недоступен, переключаемся на резервный",
		"primaryError", err,
		"delivery_id", delivery.ID,
	)

	fallbackErr := n.secondary.Deliver(ctx, delivery)
	if fallbackErr != nil {
		return err
	}

	n.logger.Info("Рассылка доставлена через резервный транспорт",
		"delivery_id", delivery.ID,
	)

	return nil
}
