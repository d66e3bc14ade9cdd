package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-news-bot/internal/common/metrics"
)

func TestRecordUserMessage(t *testing.T) {
	// Arrange
	messageType := "command_test"
	initial := testutil.ToFloat64(metrics.UserMessagesTotal.WithLabelValues(messageType))

	// Act
	metrics.RecordUserMessage(messageType)

	// Assert
	assert.Equal(t, initial+1, testutil.ToFloat64(metrics.UserMessagesTotal.WithLabelValues(messageType)))
}

func TestRecordHeadlineFetch(t *testing.T) {
	// Arrange
	source := "bbc_test"

	// Act
	metrics.RecordHeadlineFetch(source, metrics.StatusSuccess, 150*time.Millisecond)
	metrics.RecordHeadlineFetch(source, metrics.StatusError, 20*time.Millisecond)

	// Assert
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.HeadlineFetchTotal.WithLabelValues(source, metrics.StatusSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.HeadlineFetchTotal.WithLabelValues(source, metrics.StatusError)))
}

func TestRecordDelivery(t *testing.T) {
	// Arrange
	transport := "transport_test"

	// Act
	metrics.RecordDelivery(transport, nil)
	metrics.RecordDelivery(transport, errors.New("boom"))
	metrics.RecordDelivery(transport, nil)

	// Assert
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.DeliveriesTotal.WithLabelValues(transport, metrics.StatusSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.DeliveriesTotal.WithLabelValues(transport, metrics.StatusError)))
}

func TestSetScheduledTasks(t *testing.T) {
	metrics.SetScheduledTasks(7)

	assert.Equal(t, float64(7), testutil.ToFloat64(metrics.ScheduledTasks))
}

func TestMetricsExist(t *testing.T) {
	// Arrange
	metrics.RecordCacheLookup(true)
	metrics.RecordTransaction(nil, 5*time.Millisecond)

	// Act
	metricFamilies, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	metricNames := make(map[string]bool)
	for _, mf := range metricFamilies {
		metricNames[*mf.Name] = true
	}

	// Assert
	expectedMetrics := []string{
		"news_bot_bot_user_messages_total",
		"news_bot_bot_headline_fetch_total",
		"news_bot_bot_headline_fetch_duration_seconds",
		"news_bot_bot_headline_cache_lookups_total",
		"news_bot_scheduler_scheduled_tasks",
		"news_bot_scheduler_deliveries_total",
		"news_bot_store_transactions_total",
		"news_bot_store_transaction_duration_seconds",
	}

	for _, metricName := range expectedMetrics {
		assert.True(t, metricNames[metricName], "Метрика %s должна быть зарегистрирована", metricName)
	}
}
