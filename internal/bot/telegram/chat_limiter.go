package telegram

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type chatLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ChatRateLimiter ограничивает частоту команд от одного чата.
type ChatRateLimiter struct {
	chats      map[string]*chatLimiter
	mu         sync.Mutex
	rate       rate.Limit
	burst      int
	expiration time.Duration
}

// NewChatRateLimiter создает ограничитель на requestsPerSecond команд в секунду с запасом burst.
// Неактивные чаты удаляются фоновой горутиной до отмены ctx.
func NewChatRateLimiter(ctx context.Context, requestsPerSecond float64, burst int) *ChatRateLimiter {
	l := &ChatRateLimiter{
		chats:      make(map[string]*chatLimiter),
		rate:       rate.Limit(requestsPerSecond),
		burst:      max(1, burst),
		expiration: 1 * time.Hour,
	}

	go l.cleanupChats(ctx)

	return l
}

func (l *ChatRateLimiter) Allow(chatIdentity string) bool {
	return l.chatLimiter(chatIdentity).Allow()
}

func (l *ChatRateLimiter) chatLimiter(chatIdentity string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	chat, exists := l.chats[chatIdentity]
	if !exists {
		chat = &chatLimiter{
			limiter: rate.NewLimiter(l.rate, l.burst),
		}
		l.chats[chatIdentity] = chat
	}

	chat.lastSeen = time.Now()

	return chat.limiter
}

func (l *ChatRateLimiter) cleanupChats(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.mu.Lock()
			for key, chat := range l.chats {
				if time.Since(chat.lastSeen) > l.expiration {
					delete(l.chats, key)
				}
			}
			l.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}
