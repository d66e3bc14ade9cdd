package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

type HeadlineCache interface {
	GetHeadlines(ctx context.Context, source string) ([]models.Headline, error)
	SetHeadlines(ctx context.Context, source string, headlines []models.Headline) error
	DeleteHeadlines(ctx context.Context, source string) error
}

type RedisHeadlineCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisHeadlineCache(redisURL, password string, db int, ttl time.Duration, logger *slog.Logger) (*RedisHeadlineCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ошибка при подключении к Redis: %w", err)
	}

	logger.Info("Соединение с Redis успешно установлено")

	return &RedisHeadlineCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}, nil
}

func headlinesKey(source string) string {
	return "headlines:" + source
}

// GetHeadlines возвращает nil без ошибки, если записи в кэше нет.
func (c *RedisHeadlineCache) GetHeadlines(ctx context.Context, source string) ([]models.Headline, error) {
	data, err := c.client.Get(ctx, headlinesKey(source)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.logger.Debug("Кэш не найден",
				"source", source,
			)

			return nil, nil
		}

		return nil, fmt.Errorf("ошибка при получении данных из Redis: %w", err)
	}

	var headlines []models.Headline
	if err := json.Unmarshal(data, &headlines); err != nil {
		return nil, fmt.Errorf("ошибка при десериализации данных из Redis: %w", err)
	}

	c.logger.Debug("Заголовки получены из кэша",
		"source", source,
		"count", len(headlines),
	)

	return headlines, nil
}

func (c *RedisHeadlineCache) SetHeadlines(ctx context.Context, source string, headlines []models.Headline) error {
	data, err := json.Marshal(headlines)
	if err != nil {
		return fmt.Errorf("ошибка при сериализации данных для Redis: %w", err)
	}

	if err := c.client.Set(ctx, headlinesKey(source), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("ошибка при сохранении данных в Redis: %w", err)
	}

	c.logger.Debug("Заголовки сохранены в кэш",
		"source", source,
		"count", len(headlines),
		"ttl", c.ttl,
	)

	return nil
}

func (c *RedisHeadlineCache) DeleteHeadlines(ctx context.Context, source string) error {
	if err := c.client.Del(ctx, headlinesKey(source)).Err(); err != nil {
		return fmt.Errorf("ошибка при удалении данных из Redis: %w", err)
	}

	return nil
}

func (c *RedisHeadlineCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisHeadlineCache) Close() error {
	return c.client.Close()
}
