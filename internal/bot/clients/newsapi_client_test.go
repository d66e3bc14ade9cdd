package clients_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-news-bot/internal/bot/clients"
	"github.com/central-university-dev/go-news-bot/internal/common/httputil"
	"github.com/central-university-dev/go-news-bot/internal/config"
	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*clients.NewsAPIClient, *int32) {
	t.Helper()

	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	cfg := &config.Config{
		ExternalRequestTimeout: time.Second,
		RetryCount:             0,
		RetryableStatusCodes:   []int{503},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	httpClient := httputil.CreateHTTPClient(cfg, logger, "newsapi")

	client := clients.NewNewsAPIClient(httpClient, server.URL, "test-key", 5, models.DefaultSourceRegistry(), logger)

	return client, &calls
}

func TestNewsAPIClient_Fetch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/top-headlines", r.URL.Path)
		assert.Equal(t, "bbc-news", r.URL.Query().Get("sources"))
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{"title": "First", "url": "https://www.bbc.co.uk/news/1"},
				{"title": "Second", "url": "https://www.bbc.co.uk/news/2"}
			]
		}`))
	})

	headlines := client.Fetch(context.Background(), "bbc")

	require.Len(t, headlines, 2)
	assert.Equal(t, models.Headline{Title: "First", Link: "https://www.bbc.co.uk/news/1", Source: "bbc"}, headlines[0])
	assert.Equal(t, "Second", headlines[1].Title)
}

func TestNewsAPIClient_FetchLimitAndRemoved(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{"title": "[Removed]", "url": "https://removed.com"},
				{"title": "No link", "url": ""},
				{"title": "1", "url": "https://example.com/1"},
				{"title": "2", "url": "https://example.com/2"},
				{"title": "3", "url": "https://example.com/3"},
				{"title": "4", "url": "https://example.com/4"},
				{"title": "5", "url": "https://example.com/5"},
				{"title": "6", "url": "https://example.com/6"}
			]
		}`))
	})

	headlines := client.Fetch(context.Background(), "reuters")

	require.Len(t, headlines, 5)
	assert.Equal(t, "1", headlines[0].Title)
	assert.Equal(t, "5", headlines[4].Title)
}

func TestNewsAPIClient_FailSoft(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "ошибка сервера",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "статус ошибки от провайдера",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"status": "error", "code": "apiKeyInvalid", "message": "bad key"}`))
			},
		},
		{
			name: "статус error при коде 200",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"status": "error", "code": "rateLimited"}`))
			},
		},
		{
			name: "некорректный JSON",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"status": "ok", "articles": [`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.handler)

			headlines := client.Fetch(context.Background(), "bloomberg")

			assert.NotNil(t, headlines)
			assert.Empty(t, headlines)
		})
	}
}

func TestNewsAPIClient_UnknownSource(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	headlines := client.Fetch(context.Background(), "unknown")

	assert.Empty(t, headlines)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls), "Для неизвестного источника запрос не отправляется")
}
