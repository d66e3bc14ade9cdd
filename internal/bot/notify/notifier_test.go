package notify_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainmocks "github.com/central-university-dev/go-news-bot/internal/bot/domain/mocks"
	"github.com/central-university-dev/go-news-bot/internal/bot/notify"
	"github.com/central-university-dev/go-news-bot/internal/config"
	customerrors "github.com/central-university-dev/go-news-bot/internal/domain/errors"
	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

func TestTelegramNotifier_SendsMarkdown(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	telegramClient := domainmocks.NewTelegramClientAPI(t)

	delivery := testDelivery()

	telegramClient.On("SendReply", mock.Anything, "123", &models.Reply{
		Text:      delivery.Text,
		ParseMode: models.ParseMarkdownV2,
	}).Return(nil)

	err := notify.NewTelegramNotifier(telegramClient, logger).Deliver(context.Background(), delivery)

	require.NoError(t, err)
}

func TestTelegramNotifier_PropagatesError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	telegramClient := domainmocks.NewTelegramClientAPI(t)

	sendErr := errors.New("chat not found")
	telegramClient.On("SendReply", mock.Anything, "123", mock.Anything).Return(sendErr)

	err := notify.NewTelegramNotifier(telegramClient, logger).Deliver(context.Background(), testDelivery())

	require.ErrorIs(t, err, sendErr)
}

func TestNotifierFactory_CreateNotifier(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name      string
		transport string
		fallback  bool
		assertion func(t *testing.T, n notify.Notifier)
	}{
		{
			name:      "telegram",
			transport: "TELEGRAM",
			assertion: func(t *testing.T, n notify.Notifier) {
				assert.IsType(t, &notify.TelegramNotifier{}, n)
			},
		},
		{
			name:      "kafka с резервным транспортом",
			transport: "kafka",
			fallback:  true,
			assertion: func(t *testing.T, n notify.Notifier) {
				assert.IsType(t, &notify.FallbackNotifier{}, n)
			},
		},
		{
			name:      "kafka без резервного транспорта",
			transport: "KAFKA",
			assertion: func(t *testing.T, n notify.Notifier) {
				assert.IsType(t, &notify.KafkaNotifier{}, n)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				MessageTransport:        tt.transport,
				FallbackEnabled:         tt.fallback,
				KafkaBrokers:            "localhost:9092",
				TopicHeadlineDeliveries: "headline-deliveries",
			}

			factory := notify.NewNotifierFactory(cfg, domainmocks.NewTelegramClientAPI(t), logger)

			notifier, closer, err := factory.CreateNotifier()
			require.NoError(t, err)
			require.NotNil(t, closer)

			tt.assertion(t, notifier)
			assert.NoError(t, closer.Close())
		})
	}
}

func TestNotifierFactory_UnknownTransport(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{MessageTransport: "HTTP"}

	_, _, err := notify.NewNotifierFactory(cfg, domainmocks.NewTelegramClientAPI(t), logger).CreateNotifier()

	var transportErr *customerrors.ErrUnknownTransport
	require.ErrorAs(t, err, &transportErr)
}

func TestNotifierFactory_Brokers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{KafkaBrokers: "kafka-1:9092, kafka-2:9092"}

	brokers := notify.NewNotifierFactory(cfg, nil, logger).Brokers()

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, brokers)
}
