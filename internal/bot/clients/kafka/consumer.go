package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/multierr"

	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

type DeliveryHandler interface {
	Deliver(ctx context.Context, delivery *models.Delivery) error
}

// Consumer читает рассылки из топика и передает их обработчику. Сообщения,
// которые не удалось разобрать, уходят в DLQ.
type Consumer struct {
	reader        *kafka.Reader
	dlqWriter     *kafka.Writer
	handler       DeliveryHandler
	logger        *slog.Logger
	deliveryTopic string
	dlqTopic      string
	done          chan struct{}
}

func NewConsumer(
	brokers []string,
	groupID string,
	deliveryTopic string,
	dlqTopic string,
	handler DeliveryHandler,
	logger *slog.Logger,
) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        groupID,
		Topic:          deliveryTopic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 1 * time.Second,
		Logger:         kafka.LoggerFunc(logger.Debug),
		ErrorLogger:    kafka.LoggerFunc(logger.Error),
	})

	dlqWriter := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        dlqTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		Logger:       kafka.LoggerFunc(logger.Debug),
		ErrorLogger:  kafka.LoggerFunc(logger.Error),
	}

	return &Consumer{
		reader:        reader,
		dlqWriter:     dlqWriter,
		handler:       handler,
		logger:        logger,
		deliveryTopic: deliveryTopic,
		dlqTopic:      dlqTopic,
		done:          make(chan struct{}),
	}
}

func (c *Consumer) Start(ctx context.Context) {
	c.logger.Info("Запуск потребления рассылок из Kafka",
		"topic", c.deliveryTopic,
	)

	go func() {
		defer close(c.done)

		for {
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, context.Canceled) {
					c.logger.Info("Остановка потребления рассылок из Kafka")
					return
				}

				c.logger.Error("Ошибка при чтении сообщения из Kafka",
					"error", err,
				)

				continue
			}

			c.logger.Debug("Получено сообщение из Kafka",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
			)

			if err := c.processMessage(ctx, &msg); err != nil {
				c.logger.Error("Ошибка при обработке сообщения",
					"error", err,
				)
			}
		}
	}()
}

// Done закрывается после выхода из цикла чтения.
func (c *Consumer) Done() <-chan struct{} {
	return c.done
}

func (c *Consumer) processMessage(ctx context.Context, msg *kafka.Message) error {
	delivery, err := DecodeDelivery(msg.Value)
	if err != nil {
		if sendErr := c.sendToDLQ(ctx, msg.Value, err.Error()); sendErr != nil {
			return multierr.Append(err, sendErr)
		}

		return err
	}

	if err := c.handler.Deliver(ctx, delivery); err != nil {
		return fmt.Errorf("ошибка при доставке рассылки %s: %w", delivery.ID, err)
	}

	c.logger.Info("Рассылка из Kafka доставлена",
		"delivery_id", delivery.ID,
		"source", delivery.Source,
	)

	return nil
}

func (c *Consumer) sendToDLQ(ctx context.Context, message []byte, errMsg string) error {
	c.logger.Info("Отправка сообщения в DLQ",
		"error", errMsg,
		"topic", c.dlqTopic,
	)

	err := c.dlqWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte("error"),
		Value: message,
		Headers: []kafka.Header{
			{Key: "error", Value: []byte(errMsg)},
			{Key: "timestamp", Value: []byte(time.Now().Format(time.RFC3339))},
		},
		Time: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("ошибка при отправке сообщения в DLQ: %w", err)
	}

	return nil
}

func (c *Consumer) Close() error {
	return multierr.Combine(c.reader.Close(), c.dlqWriter.Close())
}
