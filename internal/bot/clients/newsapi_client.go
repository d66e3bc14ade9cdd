package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/central-university-dev/go-news-bot/internal/common/metrics"
	customerrors "github.com/central-university-dev/go-news-bot/internal/domain/errors"
	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

const (
	defaultHeadlinesLimit = 5
	removedArticleMarker  = "[Removed]"
	providerStatusOK      = "ok"
)

type topHeadlinesResponse struct {
	Status   string    `json:"status"`
	Code     string    `json:"code"`
	Message  string    `json:"message"`
	Articles []article `json:"articles"`
}

type article struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// NewsAPIClient получает свежие заголовки у провайдера. Любая ошибка превращается
// в пустой результат и запись в лог, вызывающий код ошибок не получает.
type NewsAPIClient struct {
	client   *resty.Client
	baseURL  string
	apiKey   string
	limit    int
	registry models.SourceRegistry
	logger   *slog.Logger
}

func NewNewsAPIClient(
	client *resty.Client,
	baseURL, apiKey string,
	limit int,
	registry models.SourceRegistry,
	logger *slog.Logger,
) *NewsAPIClient {
	if limit <= 0 {
		limit = defaultHeadlinesLimit
	}

	return &NewsAPIClient{
		client:   client,
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		limit:    limit,
		registry: registry,
		logger:   logger,
	}
}

func (c *NewsAPIClient) Fetch(ctx context.Context, source string) []models.Headline {
	providerID, ok := c.registry.ProviderID(source)
	if !ok {
		c.logger.Warn("Запрошен неизвестный источник новостей", "source", source)
		return []models.Headline{}
	}

	started := time.Now()

	headlines, err := c.fetch(ctx, source, providerID)

	status := metrics.StatusSuccess

	switch {
	case err != nil:
		status = metrics.StatusError

		c.logger.Error("Ошибка при получении заголовков",
			"source", source,
			"error", err,
		)
	case len(headlines) == 0:
		status = metrics.StatusEmpty
	}

	metrics.RecordHeadlineFetch(source, status, time.Since(started))

	if err != nil {
		return []models.Headline{}
	}

	return headlines
}

func (c *NewsAPIClient) fetch(ctx context.Context, source, providerID string) ([]models.Headline, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("X-Api-Key", c.apiKey).
		SetQueryParam("sources", providerID).
		Get(c.baseURL + "/top-headlines")
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса к провайдеру новостей: %w", err)
	}

	var body topHeadlinesResponse

	if jsonErr := json.Unmarshal(resp.Body(), &body); jsonErr != nil {
		if resp.IsError() {
			return nil, &customerrors.HTTPError{StatusCode: resp.StatusCode()}
		}

		return nil, fmt.Errorf("ошибка при разборе ответа провайдера: %w", jsonErr)
	}

	if body.Status != providerStatusOK {
		return nil, &customerrors.ErrProviderStatus{
			Status:  body.Status,
			Code:    body.Code,
			Message: body.Message,
		}
	}

	if resp.IsError() {
		return nil, &customerrors.HTTPError{StatusCode: resp.StatusCode()}
	}

	headlines := make([]models.Headline, 0, c.limit)

	for _, a := range body.Articles {
		if len(headlines) == c.limit {
			break
		}

		if a.URL == "" || a.Title == "" || a.Title == removedArticleMarker {
			continue
		}

		headlines = append(headlines, models.Headline{
			Title:  a.Title,
			Link:   a.URL,
			Source: source,
		})
	}

	return headlines, nil
}
