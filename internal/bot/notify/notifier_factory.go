package notify

import (
	"io"
	"log/slog"
	"strings"

	"github.com/central-university-dev/go-news-bot/internal/bot/domain"
	"github.com/central-university-dev/go-news-bot/internal/config"
	customerrors "github.com/central-university-dev/go-news-bot/internal/domain/errors"
)

type Transport string

const (
	TelegramTransport Transport = "TELEGRAM"
	KafkaTransport    Transport = "KAFKA"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type NotifierFactory struct {
	config         *config.Config
	telegramClient domain.TelegramClientAPI
	logger         *slog.Logger
}

func NewNotifierFactory(config *config.Config, telegramClient domain.TelegramClientAPI, logger *slog.Logger) *NotifierFactory {
	return &NotifierFactory{
		config:         config,
		telegramClient: telegramClient,
		logger:         logger,
	}
}

// CreateNotifier возвращает транспорт рассылок и Closer для его ресурсов.
func (f *NotifierFactory) CreateNotifier() (Notifier, io.Closer, error) {
	transport := f.Transport()

	f.logger.Info("Создание транспорта рассылок",
		"type", transport,
		"fallback", f.config.FallbackEnabled,
	)

	telegramNotifier := NewTelegramNotifier(f.telegramClient, f.logger)

	switch transport {
	case TelegramTransport:
		return telegramNotifier, nopCloser{}, nil
	case KafkaTransport:
		kafkaNotifier := NewKafkaNotifier(f.Brokers(), f.config.TopicHeadlineDeliveries, f.logger)

		if f.config.FallbackEnabled {
			return NewFallbackNotifier(kafkaNotifier, telegramNotifier, f.logger), kafkaNotifier, nil
		}

		return kafkaNotifier, kafkaNotifier, nil
	default:
		return nil, nil, &customerrors.ErrUnknownTransport{Transport: f.config.MessageTransport}
	}
}

func (f *NotifierFactory) Transport() Transport {
	return Transport(strings.ToUpper(strings.TrimSpace(f.config.MessageTransport)))
}

func (f *NotifierFactory) Brokers() []string {
	brokers := strings.Split(f.config.KafkaBrokers, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}

	return brokers
}
