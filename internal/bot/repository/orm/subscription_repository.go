package orm

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/central-university-dev/go-news-bot/internal/database"
	customerrors "github.com/central-university-dev/go-news-bot/internal/domain/errors"
	"github.com/central-university-dev/go-news-bot/internal/domain/models"
	"github.com/central-university-dev/go-news-bot/pkg/txs"
)

type SubscriptionRepository struct {
	db *database.PostgresDB
	sq sq.StatementBuilderType
}

func NewSubscriptionRepository(db *database.PostgresDB) *SubscriptionRepository {
	return &SubscriptionRepository{
		db: db,
		sq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *SubscriptionRepository) EnsureUser(ctx context.Context, chatIdentity string) (*models.User, bool, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	insertQuery := r.sq.Insert("users").
		Columns("chat_identity", "created_at").
		Values(chatIdentity, time.Now()).
		Suffix("ON CONFLICT (chat_identity) DO NOTHING RETURNING id, chat_identity, created_at")

	query, args, err := insertQuery.ToSql()
	if err != nil {
		return nil, false, &customerrors.ErrBuildSQLQuery{Operation: "создание пользователя", Cause: err}
	}

	user := &models.User{}

	err = querier.QueryRow(ctx, query, args...).Scan(&user.ID, &user.ChatIdentity, &user.CreatedAt)
	if err == nil {
		return user, true, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, &customerrors.ErrSQLExecution{Operation: "создание пользователя", Cause: err}
	}

	existing, err := r.FindUser(ctx, chatIdentity)
	if err != nil {
		return nil, false, err
	}

	return existing, false, nil
}

func (r *SubscriptionRepository) FindUser(ctx context.Context, chatIdentity string) (*models.User, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	selectQuery := r.sq.Select("id", "chat_identity", "created_at").
		From("users").
		Where(sq.Eq{"chat_identity": chatIdentity})

	query, args, err := selectQuery.ToSql()
	if err != nil {
		return nil, &customerrors.ErrBuildSQLQuery{Operation: "получение пользователя", Cause: err}
	}

	user := &models.User{}

	err = querier.QueryRow(ctx, query, args...).Scan(&user.ID, &user.ChatIdentity, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &customerrors.ErrUserNotFound{ChatIdentity: chatIdentity}
		}

		return nil, &customerrors.ErrSQLExecution{Operation: "получение пользователя", Cause: err}
	}

	return user, nil
}

func (r *SubscriptionRepository) SetDefaultSource(ctx context.Context, userID int64, source string) error {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	upsertQuery := r.sq.Insert("user_preferences").
		Columns("user_id", "default_source", "updated_at").
		Values(userID, source, time.Now()).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET default_source = EXCLUDED.default_source, updated_at = EXCLUDED.updated_at")

	query, args, err := upsertQuery.ToSql()
	if err != nil {
		return &customerrors.ErrBuildSQLQuery{Operation: "сохранение источника по умолчанию", Cause: err}
	}

	if _, err := querier.Exec(ctx, query, args...); err != nil {
		return &customerrors.ErrSQLExecution{Operation: "сохранение источника по умолчанию", Cause: err}
	}

	return nil
}

func (r *SubscriptionRepository) GetDefaultSource(ctx context.Context, userID int64) (string, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	selectQuery := r.sq.Select("default_source").
		From("user_preferences").
		Where(sq.Eq{"user_id": userID})

	query, args, err := selectQuery.ToSql()
	if err != nil {
		return "", &customerrors.ErrBuildSQLQuery{Operation: "получение источника по умолчанию", Cause: err}
	}

	var source string

	err = querier.QueryRow(ctx, query, args...).Scan(&source)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", &customerrors.ErrDefaultSourceNotSet{UserID: userID}
		}

		return "", &customerrors.ErrSQLExecution{Operation: "получение источника по умолчанию", Cause: err}
	}

	return source, nil
}

func (r *SubscriptionRepository) UpsertActive(ctx context.Context, userID int64, source string, intervalMinutes int) (bool, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	now := time.Now()
	upsertQuery := r.sq.Insert("subscriptions").
		Columns("user_id", "source", "interval_minutes", "created_at", "updated_at").
		Values(userID, source, intervalMinutes, now, now).
		Suffix(`ON CONFLICT (user_id, source) DO UPDATE SET
			interval_minutes = EXCLUDED.interval_minutes,
			updated_at = EXCLUDED.updated_at
			RETURNING (xmax = 0)`)

	query, args, err := upsertQuery.ToSql()
	if err != nil {
		return false, &customerrors.ErrBuildSQLQuery{Operation: "сохранение подписки", Cause: err}
	}

	var inserted bool

	if err := querier.QueryRow(ctx, query, args...).Scan(&inserted); err != nil {
		return false, &customerrors.ErrSQLExecution{Operation: "сохранение подписки", Cause: err}
	}

	return inserted, nil
}

func (r *SubscriptionRepository) RemoveActive(ctx context.Context, userID int64, source string) error {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	deleteQuery := r.sq.Delete("subscriptions").
		Where(sq.Eq{"user_id": userID, "source": source})

	query, args, err := deleteQuery.ToSql()
	if err != nil {
		return &customerrors.ErrBuildSQLQuery{Operation: "удаление подписки", Cause: err}
	}

	tag, err := querier.Exec(ctx, query, args...)
	if err != nil {
		return &customerrors.ErrSQLExecution{Operation: "удаление подписки", Cause: err}
	}

	if tag.RowsAffected() == 0 {
		return &customerrors.ErrSubscriptionNotFound{UserID: userID, Source: source}
	}

	return nil
}

func (r *SubscriptionRepository) ListActive(ctx context.Context, userID int64) ([]*models.Subscription, error) {
	return r.listSubscriptions(ctx, sq.Eq{"s.user_id": userID}, "s.source")
}

func (r *SubscriptionRepository) ListAllActive(ctx context.Context) ([]*models.Subscription, error) {
	return r.listSubscriptions(ctx, nil, "s.id")
}

func (r *SubscriptionRepository) listSubscriptions(ctx context.Context, where sq.Sqlizer, orderBy string) ([]*models.Subscription, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	selectQuery := r.sq.Select(
		"s.id", "s.user_id", "u.chat_identity", "s.source", "s.interval_minutes", "s.created_at", "s.updated_at",
	).
		From("subscriptions s").
		Join("users u ON u.id = s.user_id").
		OrderBy(orderBy)

	if where != nil {
		selectQuery = selectQuery.Where(where)
	}

	query, args, err := selectQuery.ToSql()
	if err != nil {
		return nil, &customerrors.ErrBuildSQLQuery{Operation: "получение подписок", Cause: err}
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, &customerrors.ErrSQLExecution{Operation: "получение подписок", Cause: err}
	}
	defer rows.Close()

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
			return nil, &customerrors.ErrSQLScan{Entity: "подписки", Cause: err}
		}

		subscriptions = append(subscriptions, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, &customerrors.ErrSQLExecution{Operation: "чтение подписок", Cause: err}
	}

	return subscriptions, nil
}
