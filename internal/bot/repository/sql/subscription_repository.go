package sql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/central-university-dev/go-news-bot/internal/database"
	customerrors "github.com/central-university-dev/go-news-bot/internal/domain/errors"
	"github.com/central-university-dev/go-news-bot/internal/domain/models"
	"github.com/central-university-dev/go-news-bot/pkg/txs"
)

const selectSubscriptions = `
	SELECT s.id, s.user_id, u.chat_identity, s.source, s.interval_minutes, s.created_at, s.updated_at
	FROM subscriptions s
	JOIN users u ON u.id = s.user_id`

type SubscriptionRepository struct {
	db *database.PostgresDB
}

func NewSubscriptionRepository(db *database.PostgresDB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) EnsureUser(ctx context.Context, chatIdentity string) (*models.User, bool, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	user := &models.User{}

	err := querier.QueryRow(ctx, `
		INSERT INTO users (chat_identity) VALUES ($1)
		ON CONFLICT (chat_identity) DO NOTHING
		RETURNING id, chat_identity, created_at
	`, chatIdentity).Scan(&user.ID, &user.ChatIdentity, &user.CreatedAt)
	if err == nil {
		return user, true, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	existing, err := r.FindUser(ctx, chatIdentity)
	if err != nil {
		return nil, false, err
	}

	return existing, false, nil
}

func (r *SubscriptionRepository) FindUser(ctx context.Context, chatIdentity string) (*models.User, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	user := &models.User{}

	err := querier.QueryRow(ctx,
		"SELECT id, chat_identity, created_at FROM users WHERE chat_identity = $1",
		chatIdentity,
	).Scan(&user.ID, &user.ChatIdentity, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &customerrors.ErrUserNotFound{ChatIdentity: chatIdentity}
		}

		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return user, nil
}

func (r *SubscriptionRepository) SetDefaultSource(ctx context.Context, userID int64, source string) error {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	_, err := querier.Exec(ctx, `
		INSERT INTO user_preferences (user_id, default_source, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			default_source = EXCLUDED.default_source,
			updated_at = EXCLUDED.updated_at
	`, userID, source)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении источника по умолчанию: %w", err)
	}

	return nil
}

func (r *SubscriptionRepository) GetDefaultSource(ctx context.Context, userID int64) (string, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	var source string

	err := querier.QueryRow(ctx,
		"SELECT default_source FROM user_preferences WHERE user_id = $1", userID,
	).Scan(&source)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", &customerrors.ErrDefaultSourceNotSet{UserID: userID}
		}

		return "", fmt.Errorf("ошибка при получении источника по умолчанию: %w", err)
	}

	return source, nil
}

func (r *SubscriptionRepository) UpsertActive(ctx context.Context, userID int64, source string, intervalMinutes int) (bool, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	var inserted bool

	// xmax = 0 только у строки, созданной этой вставкой.
	err := querier.QueryRow(ctx, `
		INSERT INTO subscriptions (user_id, source, interval_minutes, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (user_id, source) DO UPDATE SET
			interval_minutes = EXCLUDED.interval_minutes,
			updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0)
	`, userID, source, intervalMinutes).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("ошибка при сохранении подписки: %w", err)
	}

	return inserted, nil
}

func (r *SubscriptionRepository) RemoveActive(ctx context.Context, userID int64, source string) error {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	tag, err := querier.Exec(ctx,
		"DELETE FROM subscriptions WHERE user_id = $1 AND source = $2", userID, source)
	if err != nil {
		return fmt.Errorf("ошибка при удалении подписки: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return &customerrors.ErrSubscriptionNotFound{UserID: userID, Source: source}
	}

	return nil
}

func (r *SubscriptionRepository) ListActive(ctx context.Context, userID int64) ([]*models.Subscription, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	rows, err := querier.Query(ctx, selectSubscriptions+" WHERE s.user_id = $1 ORDER BY s.source", userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении подписок пользователя: %w", err)
	}
	defer rows.Close()

	return scanSubscriptions(rows)
}

func (r *SubscriptionRepository) ListAllActive(ctx context.Context) ([]*models.Subscription, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	rows, err := querier.Query(ctx, selectSubscriptions+" ORDER BY s.id")
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении активных подписок: %w", err)
	}
	defer rows.Close()

	return scanSubscriptions(rows)
}

func scanSubscriptions(rows pgx.Rows) ([]*models.Subscription, error) {
	subscriptions := make([]*models.Subscription, 0)

	for rows.Next() {
		sub := &models.Subscription{}

		if err := rows.Scan(
			&sub.ID,
			&sub.UserID,
			&sub.ChatIdentity,
			&sub.Source,
			&sub.IntervalMinutes,
			&sub.CreatedAt,
			&sub.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании подписки: %w", err)
		}

		subscriptions = append(subscriptions, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при чтении подписок: %w", err)
	}

	return subscriptions, nil
}
