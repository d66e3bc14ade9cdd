package kafka_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	segkafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	kafkaclient "github.com/central-university-dev/go-news-bot/internal/bot/clients/kafka"
	"github.com/central-university-dev/go-news-bot/internal/bot/notify"
	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

type recordingHandler struct {
	mu         sync.Mutex
	deliveries []*models.Delivery
}

func (h *recordingHandler) Deliver(_ context.Context, delivery *models.Delivery) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.deliveries = append(h.deliveries, delivery)

	return nil
}

func (h *recordingHandler) received(id string) *models.Delivery {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, d := range h.deliveries {
		if d.ID == id {
			return d
		}
	}

	return nil
}

func createTopics(ctx context.Context, brokers []string, topics ...string) error {
	client := &segkafka.Client{
		Addr:    segkafka.TCP(brokers...),
		Timeout: 30 * time.Second,
	}

	configs := make([]segkafka.TopicConfig, 0, len(topics))
	for _, topic := range topics {
		configs = append(configs, segkafka.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
	}

	deadline := time.Now().Add(60 * time.Second)

	var lastErr error

	for time.Now().Before(deadline) {
		resp, err := client.CreateTopics(ctx, &segkafka.CreateTopicsRequest{Topics: configs})
		if err == nil {
			ready := true

			for _, topicErr := range resp.Errors {
				if topicErr != nil && !errors.Is(topicErr, segkafka.TopicAlreadyExists) {
					ready = false
					lastErr = topicErr
				}
			}

			if ready {
				return nil
			}
		} else {
			lastErr = err
		}

		time.Sleep(2 * time.Second)
	}

	return fmt.Errorf("не удалось создать топики %v: %w", topics, lastErr)
}

func readDLQ(ctx context.Context, brokers []string, topic string) (segkafka.Message, error) {
	reader := segkafka.NewReader(segkafka.ReaderConfig{
		Brokers:   brokers,
		Topic:     topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	defer reader.Close()

	return reader.ReadMessage(ctx)
}

func TestKafkaIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Пропускаем интеграционный тест в режиме short")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	kafkaContainer, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "Не удалось запустить контейнер Kafka")

	t.Cleanup(func() {
		termCtx, termCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer termCancel()

		if err := kafkaContainer.Terminate(termCtx); err != nil {
			logger.Error("Ошибка при остановке контейнера Kafka", "error", err)
		}
	})

	brokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)

	suffix := time.Now().UnixNano()
	deliveryTopic := fmt.Sprintf("test-deliveries-%d", suffix)
	dlqTopic := fmt.Sprintf("test-deliveries-dlq-%d", suffix)

	createCtx, createCancel := context.WithTimeout(ctx, 90*time.Second)
	defer createCancel()

	require.NoError(t, createTopics(createCtx, brokers, deliveryTopic, dlqTopic))

	handler := &recordingHandler{}

	consumer := kafkaclient.NewConsumer(brokers, fmt.Sprintf("test-group-%d", suffix), deliveryTopic, dlqTopic, handler, logger)
	t.Cleanup(func() { _ = consumer.Close() })

	consumerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	consumer.Start(consumerCtx)

	notifier := notify.NewKafkaNotifier(brokers, deliveryTopic, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = notifier.Close() })

	delivery := &models.Delivery{
		ID:           "5f0e6a9c-1111-4222-8333-444455556666",
		ChatIdentity: "505",
		Source:       "bbc",
		Text:         "*Headline*",
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}

	sendCtx, sendCancel := context.WithTimeout(ctx, 20*time.Second)
	defer sendCancel()

	require.NoError(t, notifier.Deliver(sendCtx, delivery))

	require.Eventually(t, func() bool {
		return handler.received(delivery.ID) != nil
	}, 30*time.Second, 500*time.Millisecond, "Рассылка не была получена консьюмером")

	received := handler.received(delivery.ID)
	assert.Equal(t, delivery.ChatIdentity, received.ChatIdentity)
	assert.Equal(t, delivery.Text, received.Text)
	assert.True(t, delivery.CreatedAt.Equal(received.CreatedAt))

	writer := &segkafka.Writer{
		Addr:         segkafka.TCP(brokers...),
		Topic:        deliveryTopic,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: segkafka.RequireOne,
	}
	t.Cleanup(func() { _ = writer.Close() })

	invalid := []byte(`{"id": "no-chat", "source": "bbc", "text": "lost"}`)
	require.NoError(t, writer.WriteMessages(sendCtx, segkafka.Message{Value: invalid}))

	dlqCtx, dlqCancel := context.WithTimeout(ctx, 30*time.Second)
	defer dlqCancel()

	dlqMessage, err := readDLQ(dlqCtx, brokers, dlqTopic)
	require.NoError(t, err, "Некорректное сообщение должно попасть в DLQ")
	assert.JSONEq(t, string(invalid), string(dlqMessage.Value))
	assert.Nil(t, handler.received("no-chat"))

	cancel()

	select {
	case <-consumer.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("Таймаут ожидания остановки консьюмера")
	}
}
