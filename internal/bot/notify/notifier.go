package notify

import (
	"context"
	"log/slog"

	"github.com/central-university-dev/go-news-bot/internal/bot/domain"
	"github.com/central-university-dev/go-news-bot/internal/common/metrics"
	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

type Notifier interface {
	Deliver(ctx context.Context, delivery *models.Delivery) error
}

// TelegramNotifier отправляет рассылку напрямую в чат пользователя.
type TelegramNotifier struct {
	telegramClient domain.TelegramClientAPI
	logger         *slog.Logger
}

func NewTelegramNotifier(telegramClient domain.TelegramClientAPI, logger *slog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		telegramClient: telegramClient,
		logger:         logger,
	}
}

func (n *TelegramNotifier) Deliver(ctx context.Context, delivery *models.Delivery) error {
	err := n.telegramClient.SendReply(ctx, delivery.ChatIdentity, &models.Reply{
		Text:      delivery.Text,
		ParseMode: models.ParseMarkdownV2,
	})

	metrics.RecordDelivery(string(TelegramTransport), err)

	if err != nil {
		return err
	}

	n.logger.Debug("Рассылка отправлена в Telegram",
		"delivery_id", delivery.ID,
		"chat", delivery.ChatIdentity,
		"source", delivery.Source,
	)

	return nil
}
