package cache_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/central-university-dev/go-news-bot/internal/bot/cache"
	"github.com/central-university-dev/go-news-bot/internal/bot/cache/mocks"
	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

var testHeadlines = []models.Headline{
	{Title: "Markets rally", Link: "https://www.bloomberg.com/news/1", Source: "bloomberg"},
}

func TestCachedHeadlineFetcher_Hit(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := mocks.NewHeadlineFetcher(t)
	headlineCache := mocks.NewHeadlineCache(t)

	headlineCache.On("GetHeadlines", mock.Anything, "bloomberg").Return(testHeadlines, nil)

	result := cache.NewCachedHeadlineFetcher(fetcher, headlineCache, logger).Fetch(context.Background(), "bloomberg")

	assert.Equal(t, testHeadlines, result)
	fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestCachedHeadlineFetcher_MissStoresResult(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := mocks.NewHeadlineFetcher(t)
	headlineCache := mocks.NewHeadlineCache(t)

	headlineCache.On("GetHeadlines", mock.Anything, "bloomberg").Return(nil, nil)
	fetcher.On("Fetch", mock.Anything, "bloomberg").Return(testHeadlines)
	headlineCache.On("SetHeadlines", mock.Anything, "bloomberg", testHeadlines).Return(nil)

	result := cache.NewCachedHeadlineFetcher(fetcher, headlineCache, logger).Fetch(context.Background(), "bloomberg")

	assert.Equal(t, testHeadlines, result)
}

func TestCachedHeadlineFetcher_EmptyNotCached(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := mocks.NewHeadlineFetcher(t)
	headlineCache := mocks.NewHeadlineCache(t)

	headlineCache.On("GetHeadlines", mock.Anything, "reuters").Return(nil, nil)
	fetcher.On("Fetch", mock.Anything, "reuters").Return([]models.Headline{})

	result := cache.NewCachedHeadlineFetcher(fetcher, headlineCache, logger).Fetch(context.Background(), "reuters")

	assert.Empty(t, result)
	headlineCache.AssertNotCalled(t, "SetHeadlines", mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedHeadlineFetcher_CacheErrorFallsThrough(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := mocks.NewHeadlineFetcher(t)
	headlineCache := mocks.NewHeadlineCache(t)

	headlineCache.On("GetHeadlines", mock.Anything, "bloomberg").Return(nil, errors.New("connection refused"))
	fetcher.On("Fetch", mock.Anything, "bloomberg").Return(testHeadlines)
	headlineCache.On("SetHeadlines", mock.Anything, "bloomberg", testHeadlines).Return(errors.New("connection refused"))

	result := cache.NewCachedHeadlineFetcher(fetcher, headlineCache, logger).Fetch(context.Background(), "bloomberg")

	assert.Equal(t, testHeadlines, result)
}
