package domain

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

type BotCommand struct {
	Command     string
	Description string
}

type TelegramClientAPI interface {
	SendReply(ctx context.Context, chatIdentity string, reply *models.Reply) error

	EditReply(ctx context.Context, chatIdentity string, messageID int, reply *models.Reply) error

	AnswerCallback(ctx context.Context, callbackID string, text string) error

	SetMyCommands(ctx context.Context, commands []BotCommand) error

	GetBot() *tgbotapi.BotAPI
}
