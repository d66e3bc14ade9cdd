package httputil

import (
	"log/slog"
	"slices"

	"github.com/go-resty/resty/v2"

	"github.com/central-university-dev/go-news-bot/internal/config"
)

// CreateHTTPClient настраивает resty клиент для внешних вызовов: таймаут на запрос
// и повторы с фиксированной паузой для временных ошибок.
func CreateHTTPClient(cfg *config.Config, logger *slog.Logger, serviceName string) *resty.Client {
	client := resty.New()

	client.SetTimeout(cfg.ExternalRequestTimeout)

	client.SetRetryCount(cfg.RetryCount)
	client.SetRetryWaitTime(cfg.RetryBackoff)
	client.SetRetryMaxWaitTime(cfg.RetryBackoff)

	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return true
		}

		return slices.Contains(cfg.RetryableStatusCodes, r.StatusCode())
	})

	if logger != nil {
		client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			if resp.Request.Attempt > 1 {
				logger.Info("Повторный HTTP запрос",
					"service", serviceName,
					"url", resp.Request.URL,
					"attempt", resp.Request.Attempt,
					"status", resp.StatusCode(),
				)
			}

			return nil
		})
	}

	return client
}
