package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	Namespace = "news_bot"

	BotSubsystem       = "bot"
	SchedulerSubsystem = "scheduler"
	StoreSubsystem     = "store"

	StatusSuccess = "success"
	StatusError   = "error"
	StatusEmpty   = "empty"
)

// Бот метрики.
var (
	UserMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: BotSubsystem,
			Name:      "user_messages_total",
			Help:      "Total number of user messages processed",
		},
		[]string{"message_type"},
	)

	HeadlineFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: BotSubsystem,
			Name:      "headline_fetch_total",
			Help:      "Total number of headline provider requests",
		},
		[]string{"source", "status"},
	)

	HeadlineFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: BotSubsystem,
			Name:      "headline_fetch_duration_seconds",
			Help:      "Headline provider request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"source"},
	)

	HeadlineCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: BotSubsystem,
			Name:      "headline_cache_lookups_total",
			Help:      "Headline cache lookups by result",
		},
		[]string{"result"},
	)
)

// Метрики планировщика.
var (
	ScheduledTasks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: SchedulerSubsystem,
			Name:      "scheduled_tasks",
			Help:      "Number of live periodic delivery tasks",
		},
	)

	DeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: SchedulerSubsystem,
			Name:      "deliveries_total",
			Help:      "Total number of headline deliveries by transport",
		},
		[]string{"transport", "status"},
	)
)

// Метрики хранилища.
var (
	TransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: StoreSubsystem,
			Name:      "transactions_total",
			Help:      "Total number of database transactions",
		},
		[]string{"status"},
	)

	TransactionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: StoreSubsystem,
			Name:      "transaction_duration_seconds",
			Help:      "Database transaction duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func RecordUserMessage(messageType string) {
	UserMessagesTotal.WithLabelValues(messageType).Inc()
}

func RecordHeadlineFetch(source, status string, duration time.Duration) {
	HeadlineFetchTotal.WithLabelValues(source, status).Inc()
	HeadlineFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
}

func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}

	HeadlineCacheLookups.WithLabelValues(result).Inc()
}

func SetScheduledTasks(count int) {
	ScheduledTasks.Set(float64(count))
}

func RecordDelivery(transport string, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}

	DeliveriesTotal.WithLabelValues(transport, status).Inc()
}

func RecordTransaction(err error, duration time.Duration) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}

	TransactionsTotal.WithLabelValues(status).Inc()
	TransactionDuration.Observe(duration.Seconds())
}
