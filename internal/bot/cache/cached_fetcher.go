package cache

import (
	"context"
	"log/slog"

	"github.com/central-university-dev/go-news-bot/internal/common/metrics"
	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

type HeadlineFetcher interface {
	Fetch(ctx context.Context, source string) []models.Headline
}

// CachedHeadlineFetcher отдает заголовки из кэша и обращается к провайдеру только
// при промахе. Пустой ответ провайдера не кэшируется, а ошибки кэша не мешают получению.
type CachedHeadlineFetcher struct {
	fetcher HeadlineFetcher
	cache   HeadlineCache
	logger  *slog.Logger
}

func NewCachedHeadlineFetcher(fetcher HeadlineFetcher, cache HeadlineCache, logger *slog.Logger) *CachedHeadlineFetcher {
	return &CachedHeadlineFetcher{
		fetcher: fetcher,
		cache:   cache,
		logger:  logger,
	}
}

func (f *CachedHeadlineFetcher) Fetch(ctx context.Context, source string) []models.Headline {
	cached, err := f.cache.GetHeadlines(ctx, source)
	if err != nil {
		f.logger.Warn("Ошибка при чтении заголовков из кэша",
			"source", source,
			"error", err,
		)
	}

	if len(cached) > 0 {
		metrics.RecordCacheLookup(true)
		return cached
	}

	metrics.RecordCacheLookup(false)

	headlines := f.fetcher.Fetch(ctx, source)
	if len(headlines) == 0 {
		return headlines
	}

	if err := f.cache.SetHeadlines(ctx, source, headlines); err != nil {
		f.logger.Warn("Ошибка при сохранении заголовков в кэш",
			"source", source,
			"error", err,
		)
	}

	return headlines
}
