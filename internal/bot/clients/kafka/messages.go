package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	boterrors "github.com/central-university-dev/go-news-bot/internal/domain/errors"
	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

// DeliveryMessage - формат сообщения о рассылке в топике Kafka.
type DeliveryMessage struct {
	ID           string    `json:"id"`
	ChatIdentity string    `json:"chatIdentity"`
	Source       string    `json:"source"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"createdAt"`
}

func EncodeDelivery(delivery *models.Delivery) ([]byte, error) {
	value, err := json.Marshal(DeliveryMessage{
		ID:           delivery.ID,
		ChatIdentity: delivery.ChatIdentity,
		Source:       delivery.Source,
		Text:         delivery.Text,
		CreatedAt:    delivery.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка при сериализации сообщения: %w", err)
	}

	return value, nil
}

func DecodeDelivery(value []byte) (*models.Delivery, error) {
	var message DeliveryMessage

	if err := json.Unmarshal(value, &message); err != nil {
		return nil, fmt.Errorf("ошибка при десериализации сообщения: %w", err)
	}

	if message.ChatIdentity == "" {
		return nil, &boterrors.ErrMissingChatIdentity{}
	}

	return &models.Delivery{
		ID:           message.ID,
		ChatIdentity: message.ChatIdentity,
		Source:       message.Source,
		Text:         message.Text,
		CreatedAt:    message.CreatedAt,
	}, nil
}
