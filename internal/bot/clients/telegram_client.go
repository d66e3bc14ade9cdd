package clients

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/central-university-dev/go-news-bot/internal/bot/domain"
	customerrors "github.com/central-university-dev/go-news-bot/internal/domain/errors"
	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

type TelegramClient struct {
	bot     *tgbotapi.BotAPI
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewTelegramClient создает клиент Bot API. Исходящие вызовы ограничены rateLimit
// запросами в секунду, чтобы рассылка не упиралась в лимиты Telegram. Bot API не
// принимает контекст, поэтому длительность одного запроса ограничена requestTimeout.
func NewTelegramClient(token string, rateLimit float64, requestTimeout time.Duration, logger *slog.Logger) domain.TelegramClientAPI {
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, newBotHTTPClient(requestTimeout))
	if err != nil {
		logger.Error("Ошибка при создании Telegram клиента", "error", err)
	}

	return newTelegramClient(bot, rateLimit, logger)
}

// NewTelegramClientWithEndpoint используется в тестах с поддельным Bot API.
func NewTelegramClientWithEndpoint(
	token, endpoint string,
	rateLimit float64,
	requestTimeout time.Duration,
	logger *slog.Logger,
) (domain.TelegramClientAPI, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, newBotHTTPClient(requestTimeout))
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании Telegram клиента: %w", err)
	}

	return newTelegramClient(bot, rateLimit, logger), nil
}

func newBotHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &http.Client{Timeout: timeout}
}

func newTelegramClient(bot *tgbotapi.BotAPI, rateLimit float64, logger *slog.Logger) *TelegramClient {
	limit := rate.Inf
	burst := 1

	if rateLimit > 0 {
		limit = rate.Limit(rateLimit)
		burst = max(1, int(rateLimit))
	}

	return &TelegramClient{
		bot:     bot,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

func (c *TelegramClient) SendReply(ctx context.Context, chatIdentity string, reply *models.Reply) error {
	if c.bot == nil {
		return fmt.Errorf("telegram клиент не инициализирован")
	}

	chatID, err := parseChatIdentity(chatIdentity)
	if err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, reply.Text)
	msg.ParseMode = string(reply.ParseMode)
	msg.DisableWebPagePreview = true

	if reply.Menu != nil {
		msg.ReplyMarkup = inlineKeyboard(reply.Menu)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("ожидание лимита отправки прервано: %w", err)
	}

	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("ошибка при отправке сообщения: %w", err)
	}

	return nil
}

func (c *TelegramClient) EditReply(ctx context.Context, chatIdentity string, messageID int, reply *models.Reply) error {
	if c.bot == nil {
		return fmt.Errorf("telegram клиент не инициализирован")
	}

	chatID, err := parseChatIdentity(chatIdentity)
	if err != nil {
		return err
	}

	edit := tgbotapi.NewEditMessageText(chatID, messageID, reply.Text)
	edit.ParseMode = string(reply.ParseMode)

	if reply.Menu != nil {
		markup := inlineKeyboard(reply.Menu)
		edit.ReplyMarkup = &markup
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("ожидание лимита отправки прервано: %w", err)
	}

	if _, err := c.bot.Send(edit); err != nil {
		return fmt.Errorf("ошибка при редактировании сообщения: %w", err)
	}

	return nil
}

func (c *TelegramClient) AnswerCallback(ctx context.Context, callbackID, text string) error {
	if c.bot == nil {
		return fmt.Errorf("telegram клиент не инициализирован")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("ожидание лимита отправки прервано: %w", err)
	}

	if _, err := c.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		return fmt.Errorf("ошибка при ответе на callback: %w", err)
	}

	return nil
}

func (c *TelegramClient) SetMyCommands(_ context.Context, commands []domain.BotCommand) error {
	if c.bot == nil {
		return fmt.Errorf("telegram клиент не инициализирован")
	}

	botAPICommands := make([]tgbotapi.BotCommand, 0, len(commands))
	for _, cmd := range commands {
		botAPICommands = append(botAPICommands, tgbotapi.BotCommand{
			Command:     cmd.Command,
			Description: cmd.Description,
		})
	}

	setCommandsConfig := tgbotapi.NewSetMyCommands(botAPICommands...)

	_, err := c.bot.Request(setCommandsConfig)
	if err != nil {
		return fmt.Errorf("ошибка при установке команд бота: %w", err)
	}

	return nil
}

func (c *TelegramClient) GetBot() *tgbotapi.BotAPI {
	return c.bot
}

func parseChatIdentity(chatIdentity string) (int64, error) {
	chatID, err := strconv.ParseInt(chatIdentity, 10, 64)
	if err != nil {
		return 0, &customerrors.ErrInvalidChatIdentity{ChatIdentity: chatIdentity}
	}

	return chatID, nil
}

func inlineKeyboard(menu *models.Menu) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(menu.Rows))

	for _, row := range menu.Rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, button := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(button.Label, button.Payload))
		}

		rows = append(rows, buttons)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
