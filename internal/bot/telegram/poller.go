package telegram

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/central-university-dev/go-news-bot/internal/bot/domain"
	"github.com/central-university-dev/go-news-bot/internal/common/metrics"
	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

const (
	errorReplyText     = "Произошла ошибка при обработке вашего сообщения. Пожалуйста, попробуйте позже."
	rateLimitReplyText = "Слишком много запросов. Подождите немного и повторите."
)

type BotService interface {
	ProcessCommand(ctx context.Context, command *models.Command) (*models.Reply, error)
	ProcessCallback(ctx context.Context, callback *models.Callback) (*models.Reply, error)
}

// Poller получает обновления Telegram и обрабатывает их по одному в единственной горутине.
type Poller struct {
	telegramClient domain.TelegramClientAPI
	botService     BotService
	limiter        *ChatRateLimiter
	commandTimeout time.Duration
	logger         *slog.Logger
	stopChan       chan struct{}
	stopOnce       sync.Once
	started        atomic.Bool
	done           chan struct{}
}

// NewPoller создает поллер. limiter может быть nil, тогда частота команд не ограничивается.
func NewPoller(
	telegramClient domain.TelegramClientAPI,
	botService BotService,
	limiter *ChatRateLimiter,
	commandTimeout time.Duration,
	logger *slog.Logger,
) *Poller {
	if commandTimeout <= 0 {
		commandTimeout = 10 * time.Second
	}

	return &Poller{
		telegramClient: telegramClient,
		botService:     botService,
		limiter:        limiter,
		commandTimeout: commandTimeout,
		logger:         logger,
		stopChan:       make(chan struct{}),
		done:           make(chan struct{}),
	}
}

func (p *Poller) Start() {
	p.logger.Info("Запуск Telegram поллера")

	bot := p.telegramClient.GetBot()
	if bot == nil {
		p.logger.Error("Не удалось получить доступ к API бота")
		close(p.done)

		return
	}

	p.started.Store(true)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := bot.GetUpdatesChan(u)

	go func() {
		defer close(p.done)

		for {
			select {
			case <-p.stopChan:
				p.logger.Info("Получен сигнал остановки поллера")
				bot.StopReceivingUpdates()

				return
			case update, ok := <-updates:
				if !ok {
					return
				}

				p.HandleUpdate(&update)
			}
		}
	}()
}

// Stop прекращает получение обновлений и ждет завершения текущей обработки.
func (p *Poller) Stop() {
	p.logger.Info("Остановка Telegram поллера")

	if !p.started.Load() {
		return
	}

	p.stopOnce.Do(func() {
		close(p.stopChan)
	})

	<-p.done
}

func (p *Poller) Close() error {
	p.Stop()
	return nil
}

// HandleUpdate обрабатывает одно обновление: сообщение или нажатие кнопки меню.
func (p *Poller) HandleUpdate(update *tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		p.handleCallback(update.CallbackQuery)
	case update.Message != nil:
		p.handleMessage(update.Message)
	}
}

func (p *Poller) handleMessage(message *tgbotapi.Message) {
	chatIdentity := strconv.FormatInt(message.Chat.ID, 10)
	command := ParseCommand(message)

	p.logger.Info("Получено сообщение",
		"chat", chatIdentity,
		"command", string(command.Type),
		"username", command.Username,
	)

	metrics.RecordUserMessage(string(command.Type))

	ctx, cancel := context.WithTimeout(context.Background(), p.commandTimeout)
	defer cancel()

	var reply *models.Reply

	if p.limiter != nil && !p.limiter.Allow(chatIdentity) {
		p.logger.Warn("Превышен лимит команд", "chat", chatIdentity)

		reply = &models.Reply{Text: rateLimitReplyText}
	} else {
		var err error

		reply, err = p.botService.ProcessCommand(ctx, command)
		if err != nil {
			p.logger.Error("Ошибка при обработке сообщения",
				"error", err,
				"chat", chatIdentity,
				"text", message.Text,
			)

			reply = &models.Reply{Text: errorReplyText}
		}
	}

	if reply == nil || reply.Text == "" {
		return
	}

	if err := p.telegramClient.SendReply(ctx, chatIdentity, reply); err != nil {
		p.logger.Error("Ошибка при отправке ответа",
			"error", err,
			"chat", chatIdentity,
		)
	}
}

func (p *Poller) handleCallback(query *tgbotapi.CallbackQuery) {
	if query.Message == nil || query.Message.Chat == nil {
		p.logger.Warn("Callback без исходного сообщения", "callback_id", query.ID)
		return
	}

	callback := &models.Callback{
		ID:           query.ID,
		ChatIdentity: strconv.FormatInt(query.Message.Chat.ID, 10),
		MessageID:    query.Message.MessageID,
		Data:         query.Data,
	}

	metrics.RecordUserMessage("callback")

	ctx, cancel := context.WithTimeout(context.Background(), p.commandTimeout)
	defer cancel()

	if p.limiter != nil && !p.limiter.Allow(callback.ChatIdentity) {
		p.logger.Warn("Превышен лимит команд", "chat", callback.ChatIdentity)

		if err := p.telegramClient.AnswerCallback(ctx, callback.ID, rateLimitReplyText); err != nil {
			p.logger.Warn("Ошибка при подтверждении callback", "error", err, "callback_id", callback.ID)
		}

		return
	}

	reply, err := p.botService.ProcessCallback(ctx, callback)
	if err != nil {
		p.logger.Error("Ошибка при обработке callback",
			"error", err,
			"chat", callback.ChatIdentity,
			"data", callback.Data,
		)

		reply = &models.Reply{Text: errorReplyText}
	}

	// Telegram показывает индикатор загрузки на кнопке, пока callback не подтвержден.
	if err := p.telegramClient.AnswerCallback(ctx, callback.ID, ""); err != nil {
		p.logger.Warn("Ошибка при подтверждении callback", "error", err, "callback_id", callback.ID)
	}

	if reply == nil || reply.Text == "" {
		return
	}

	if err := p.telegramClient.EditReply(ctx, callback.ChatIdentity, callback.MessageID, reply); err != nil {
		p.logger.Error("Ошибка при обновлении сообщения",
			"error", err,
			"chat", callback.ChatIdentity,
		)
	}
}

// ParseCommand превращает сообщение в команду. Обычный текст считается неизвестной командой.
func ParseCommand(message *tgbotapi.Message) *models.Command {
	command := &models.Command{
		Type:         models.CommandUnknown,
		ChatIdentity: strconv.FormatInt(message.Chat.ID, 10),
		Text:         message.Text,
	}

	if message.From != nil {
		command.Username = message.From.UserName
	}

	if message.IsCommand() {
		command.Type = commandType("/" + message.Command())
		command.Args = message.CommandArguments()
	}

	return command
}

func commandType(commandName string) models.CommandType {
	switch models.CommandType(commandName) {
	case models.CommandStart:
		return models.CommandStart
	case models.CommandHelp:
		return models.CommandHelp
	case models.CommandNews:
		return models.CommandNews
	case models.CommandSetSource:
		return models.CommandSetSource
	case models.CommandSubscribe:
		return models.CommandSubscribe
	case models.CommandUnsubscribe:
		return models.CommandUnsubscribe
	case models.CommandListSources:
		return models.CommandListSources
	case models.CommandListSubscriptions:
		return models.CommandListSubscriptions
	default:
		return models.CommandUnknown
	}
}
