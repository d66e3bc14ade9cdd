// Package memory содержит хранилище подписок в памяти процесса. Используется в тестах
// и при локальном запуске без базы данных.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	customerrors "github.com/central-university-dev/go-news-bot/internal/domain/errors"
	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

type subscriptionKey struct {
	userID int64
	source string
}

type SubscriptionRepository struct {
	mu sync.RWMutex

	nextUserID int64
	nextSubID  int64

	users          map[string]*models.User
	defaultSources map[int64]string
	subscriptions  map[subscriptionKey]*models.Subscription
}

func NewSubscriptionRepository() *SubscriptionRepository {
	return &SubscriptionRepository{
		users:          make(map[string]*models.User),
		defaultSources: make(map[int64]string),
		subscriptions:  make(map[subscriptionKey]*models.Subscription),
	}
}

func (r *SubscriptionRepository) EnsureUser(_ context.Context, chatIdentity string) (*models.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[chatIdentity]; ok {
		userCopy := *user
		return &userCopy, false, nil
	}

	r.nextUserID++
	user := &models.User{
		ID:           r.nextUserID,
		ChatIdentity: chatIdentity,
		CreatedAt:    time.Now(),
	}
	r.users[chatIdentity] = user

	userCopy := *user

	return &userCopy, true, nil
}

func (r *SubscriptionRepository) FindUser(_ context.Context, chatIdentity string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[chatIdentity]
	if !ok {
		return nil, &customerrors.ErrUserNotFound{ChatIdentity: chatIdentity}
	}

	userCopy := *user

	return &userCopy, nil
}

func (r *SubscriptionRepository) SetDefaultSource(_ context.Context, userID int64, source string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.userByID(userID); !ok {
		return &customerrors.ErrUserNotFound{}
	}

	r.defaultSources[userID] = source

	return nil
}

func (r *SubscriptionRepository) GetDefaultSource(_ context.Context, userID int64) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	source, ok := r.defaultSources[userID]
	if !ok {
		return "", &customerrors.ErrDefaultSourceNotSet{UserID: userID}
	}

	return source, nil
}

func (r *SubscriptionRepository) UpsertActive(_ context.Context, userID int64, source string, intervalMinutes int) (bool, error) {
	if intervalMinutes <= 0 {
		return false, &customerrors.ErrInvalidInterval{Minutes: intervalMinutes}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.userByID(userID)
	if !ok {
		return false, &customerrors.ErrUserNotFound{}
	}

	now := time.Now()
	key := subscriptionKey{userID: userID, source: source}

	if sub, ok := r.subscriptions[key]; ok {
		sub.IntervalMinutes = intervalMinutes
		sub.UpdatedAt = now

		return false, nil
	}

	r.nextSubID++
	r.subscriptions[key] = &models.Subscription{
		ID:              r.nextSubID,
		UserID:          userID,
		ChatIdentity:    user.ChatIdentity,
		Source:          source,
		IntervalMinutes: intervalMinutes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	return true, nil
}

func (r *SubscriptionRepository) RemoveActive(_ context.Context, userID int64, source string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := subscriptionKey{userID: userID, source: source}
	if _, ok := r.subscriptions[key]; !ok {
		return &customerrors.ErrSubscriptionNotFound{UserID: userID, Source: source}
	}

	delete(r.subscriptions, key)

	return nil
}

func (r *SubscriptionRepository) ListActive(_ context.Context, userID int64) ([]*models.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Subscription, 0)

	for key, sub := range r.subscriptions {
		if key.userID == userID {
			subCopy := *sub
			result = append(result, &subCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Source < result[j].Source
	})

	return result, nil
}

func (r *SubscriptionRepository) ListAllActive(_ context.Context) ([]*models.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Subscription, 0, len(r.subscriptions))

	for _, sub := range r.subscriptions {
		subCopy := *sub
		result = append(result, &subCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *SubscriptionRepository) userByID(userID int64) (*models.User, bool) {
	for _, user := range r.users {
		if user.ID == userID {
			return user, true
		}
	}

	return nil, false
}
