package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/central-university-dev/go-news-bot/internal/bot/cache"
	"github.com/central-university-dev/go-news-bot/internal/bot/clients"
	"github.com/central-university-dev/go-news-bot/internal/bot/clients/kafka"
	"github.com/central-university-dev/go-news-bot/internal/bot/domain"
	"github.com/central-university-dev/go-news-bot/internal/bot/notify"
	"github.com/central-university-dev/go-news-bot/internal/bot/repository"
	"github.com/central-university-dev/go-news-bot/internal/bot/scheduler"
	botservice "github.com/central-university-dev/go-news-bot/internal/bot/service"
	"github.com/central-university-dev/go-news-bot/internal/bot/telegram"
	"github.com/central-university-dev/go-news-bot/internal/common/httputil"
	"github.com/central-university-dev/go-news-bot/internal/common/metrics"
	"github.com/central-university-dev/go-news-bot/internal/config"
	"github.com/central-university-dev/go-news-bot/internal/database"
	"github.com/central-university-dev/go-news-bot/internal/domain/models"
	"github.com/central-university-dev/go-news-bot/pkg"
	"github.com/central-university-dev/go-news-bot/pkg/txs"
)

const kafkaGroupID = "news-bot-group"

var rootCmd = &cobra.Command{
	Use:           "news-bot",
	Short:         "Telegram бот с новостными заголовками и периодической рассылкой",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(_ *cobra.Command, _ []string) error {
		return run()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Применить миграции базы данных и завершиться",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg := config.LoadConfig()
		appLogger := pkg.NewLogger(os.Stdout, cfg.LogLevel)

		return database.Migrate(cfg.DatabaseURL(), appLogger)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка запуска сервиса: %v\n", err)
		os.Exit(1)
	}
}

type shutdownDeps struct {
	poller        *telegram.Poller
	scheduler     *scheduler.DeliveryScheduler
	kafkaConsumer *kafka.Consumer
	notifierClose func() error
	redisCache    *cache.RedisHeadlineCache
	cancel        context.CancelFunc
}

func gracefulShutdown(deps *shutdownDeps, appLogger *slog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	appLogger.Info("Получен системный сигнал",
		"signal", sig.String(),
	)

	deps.poller.Stop()
	deps.scheduler.Stop()

	// Отмена контекста останавливает консьюмер, сервер метрик и очистку лимитов.
	deps.cancel()

	if deps.kafkaConsumer != nil {
		<-deps.kafkaConsumer.Done()

		if err := deps.kafkaConsumer.Close(); err != nil {
			appLogger.Error("Ошибка при закрытии Kafka консьюмера",
				"error", err,
			)
		}
	}

	if err := deps.notifierClose(); err != nil {
		appLogger.Error("Ошибка при закрытии транспорта рассылок",
			"error", err,
		)
	}

	if deps.redisCache != nil {
		if err := deps.redisCache.Close(); err != nil {
			appLogger.Error("Ошибка при закрытии соединения с Redis",
				"error", err,
			)
		}
	}

	appLogger.Info("Бот успешно остановлен")
}

func setupTelegramCommands(ctx context.Context, telegramClient domain.TelegramClientAPI, commands []domain.BotCommand, appLogger *slog.Logger) {
	if err := telegramClient.SetMyCommands(ctx, commands); err != nil {
		appLogger.Error("Ошибка при регистрации команд бота",
			"error", err,
		)
	} else {
		appLogger.Info("Команды бота успешно зарегистрированы")
	}
}

// setupHeadlineFetcher оборачивает клиент NewsAPI кэшем Redis, если он настроен.
// Недоступный Redis не мешает запуску: заголовки запрашиваются напрямую.
func setupHeadlineFetcher(newsClient *clients.NewsAPIClient, cfg *config.Config,
	appLogger *slog.Logger) (botservice.HeadlineFetcher, *cache.RedisHeadlineCache) {
	if cfg.RedisURL == "" {
		return newsClient, nil
	}

	cacheTTL := cfg.RedisCacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}

	redisCache, err := cache.NewRedisHeadlineCache(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB, cacheTTL, appLogger)
	if err != nil {
		appLogger.Error("Ошибка при подключении к Redis",
			"error", err,
		)

		return newsClient, nil
	}

	appLogger.Info("Кэш Redis успешно инициализирован")

	return cache.NewCachedHeadlineFetcher(newsClient, redisCache, appLogger), redisCache
}

//nolint:funlen // Длина функции обусловлена необходимостью последовательной инициализации всех компонентов.
func run() error {
	cfg := config.LoadConfig()
	appLogger := pkg.NewLogger(os.Stdout, cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.NewPostgresDB(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Ошибка при подключении к базе данных",
			"error", err,
		)

		return fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	defer db.Close()

	if err := database.Migrate(cfg.DatabaseURL(), appLogger); err != nil {
		appLogger.Error("Ошибка при применении миграций",
			"error", err,
		)

		return fmt.Errorf("ошибка применения миграций: %w", err)
	}

	txManager := txs.NewTxManager(db.Pool, appLogger)
	registry := models.DefaultSourceRegistry()

	repoFactory := repository.NewFactory(db, cfg, registry, appLogger)

	subscriptionRepo, err := repoFactory.CreateSubscriptionRepository()
	if err != nil {
		appLogger.Error("Ошибка при создании репозитория подписок",
			"error", err,
		)

		return fmt.Errorf("ошибка создания репозитория подписок: %w", err)
	}

	httpClient := httputil.CreateHTTPClient(cfg, appLogger, "newsapi")
	newsClient := clients.NewNewsAPIClient(httpClient, cfg.NewsAPIBaseURL, cfg.NewsAPIKey, cfg.HeadlinesLimit, registry, appLogger)

	fetcher, redisCache := setupHeadlineFetcher(newsClient, cfg, appLogger)

	telegramClient := clients.NewTelegramClient(cfg.TelegramBotToken, cfg.TelegramRateLimit, cfg.ExternalRequestTimeout, appLogger)

	notifierFactory := notify.NewNotifierFactory(cfg, telegramClient, appLogger)

	notifier, notifierCloser, err := notifierFactory.CreateNotifier()
	if err != nil {
		appLogger.Error("Ошибка при создании транспорта рассылок",
			"error", err,
		)

		return fmt.Errorf("ошибка создания транспорта рассылок: %w", err)
	}

	var kafkaConsumer *kafka.Consumer

	if notifierFactory.Transport() == notify.KafkaTransport {
		kafkaConsumer = kafka.NewConsumer(
			notifierFactory.Brokers(),
			kafkaGroupID,
			cfg.TopicHeadlineDeliveries,
			cfg.TopicDeadLetterQueue,
			notify.NewTelegramNotifier(telegramClient, appLogger),
			appLogger,
		)

		kafkaConsumer.Start(ctx)
		appLogger.Info("Kafka консьюмер успешно запущен")
	}

	deliveryScheduler := scheduler.NewDeliveryScheduler(fetcher, notifier, appLogger,
		scheduler.WithCycleTimeout(cfg.DeliveryCycleTimeout),
	)
	deliveryScheduler.Start()

	restored, err := deliveryScheduler.Rehydrate(ctx, subscriptionRepo)
	if err != nil {
		appLogger.Error("Ошибка при восстановлении рассылок",
			"error", err,
		)

		deliveryScheduler.Stop()

		return fmt.Errorf("ошибка восстановления рассылок: %w", err)
	}

	appLogger.Info("Рассылки восстановлены", "count", restored)

	botService := botservice.NewBotService(
		subscriptionRepo,
		fetcher,
		deliveryScheduler,
		txManager,
		registry,
		cfg.DefaultSource,
		appLogger,
	)

	setupTelegramCommands(ctx, telegramClient, botservice.Commands(), appLogger)

	var limiter *telegram.ChatRateLimiter
	if cfg.UserRateLimit > 0 {
		limiter = telegram.NewChatRateLimiter(ctx, cfg.UserRateLimit, cfg.UserRateBurst)
	}

	poller := telegram.NewPoller(telegramClient, botService, limiter, cfg.CommandTimeout, appLogger)
	poller.Start()

	metricsServer := metrics.NewMetricsServer(cfg.BotMetricsPort, db.Pool.Ping, appLogger)

	go func() {
		if err := metricsServer.Start(ctx); err != nil {
			appLogger.Error("Ошибка сервера метрик",
				"error", err,
			)
		}
	}()

	gracefulShutdown(&shutdownDeps{
		poller:        poller,
		scheduler:     deliveryScheduler,
		kafkaConsumer: kafkaConsumer,
		notifierClose: notifierCloser.Close,
		redisCache:    redisCache,
		cancel:        cancel,
	}, appLogger)

	return nil
}
