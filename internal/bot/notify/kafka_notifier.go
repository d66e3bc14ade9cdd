package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	kafkaclient "github.com/central-university-dev/go-news-bot/internal/bot/clients/kafka"
	"github.com/central-university-dev/go-news-bot/internal/common/metrics"
	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

// KafkaNotifier публикует рассылку в топик. До пользователя ее доводит Consumer.
type KafkaNotifier struct {
	producer      *kafka.Writer
	logger        *slog.Logger
	deliveryTopic string
}

func NewKafkaNotifier(brokers []string, deliveryTopic string, logger *slog.Logger) *KafkaNotifier {
	producer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        deliveryTopic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Logger:       kafka.LoggerFunc(logger.Debug),
		ErrorLogger:  kafka.LoggerFunc(logger.Error),
	}

	return &KafkaNotifier{
		producer:      producer,
		logger:        logger,
		deliveryTopic: deliveryTopic,
	}
}

func (n *KafkaNotifier) Deliver(ctx context.Context, delivery *models.Delivery) error {
	value, err := kafkaclient.EncodeDelivery(delivery)
	if err != nil {
		return err
	}

	// Ключ по чату сохраняет порядок рассылок одного пользователя в партиции.
	err = n.producer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(delivery.ChatIdentity),
		Value: value,
		Time:  time.Now(),
	})

	metrics.RecordDelivery(string(KafkaTransport), err)

	if err != nil {
		return fmt.Errorf("ошибка при отправке сообщения в Kafka: %w", err)
	}

	n.logger.Debug("Рассылка опубликована в Kafka",
		"delivery_id", delivery.ID,
		"topic", n.deliveryTopic,
	)

	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.producer.Close()
}
