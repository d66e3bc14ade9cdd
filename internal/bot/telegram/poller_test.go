package telegram_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainmocks "github.com/central-university-dev/go-news-bot/internal/bot/domain/mocks"
	"github.com/central-university-dev/go-news-bot/internal/bot/telegram"
	"github.com/central-university-dev/go-news-bot/internal/bot/telegram/mocks"
	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func textMessage(chatID int64, text string) *tgbotapi.Message {
	message := &tgbotapi.Message{
		MessageID: 1,
		Chat:      &tgbotapi.Chat{ID: chatID},
		From:      &tgbotapi.User{ID: 100, UserName: "alice"},
		Text:      text,
	}

	if strings.HasPrefix(text, "/") {
		length := len(text)
		if i := strings.Index(text, " "); i >= 0 {
			length = i
		}

		message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}}
	}

	return message
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantType models.CommandType
		wantArgs string
	}{
		{name: "команда с аргументом", text: "/news bbc", wantType: models.CommandNews, wantArgs: "bbc"},
		{name: "команда с именем бота", text: "/setsource@news_bot reuters", wantType: models.CommandSetSource, wantArgs: "reuters"},
		{name: "команда без аргументов", text: "/listsubscriptions", wantType: models.CommandListSubscriptions},
		{name: "неизвестная команда", text: "/track https://example.com", wantType: models.CommandUnknown, wantArgs: "https://example.com"},
		{name: "обычный текст", text: "привет", wantType: models.CommandUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			command := telegram.ParseCommand(textMessage(42, tt.text))

			assert.Equal(t, tt.wantType, command.Type)
			assert.Equal(t, tt.wantArgs, command.Args)
			assert.Equal(t, "42", command.ChatIdentity)
			assert.Equal(t, "alice", command.Username)
			assert.Equal(t, tt.text, command.Text)
		})
	}
}

func TestPoller_HandleUpdate_Command(t *testing.T) {
	client := domainmocks.NewTelegramClientAPI(t)
	service := mocks.NewBotService(t)
	poller := telegram.NewPoller(client, service, nil, time.Second, newLogger())

	reply := &models.Reply{Text: "*ok*", ParseMode: models.ParseMarkdownV2}

	service.On("ProcessCommand", mock.Anything, mock.MatchedBy(func(c *models.Command) bool {
		return c.Type == models.CommandNews && c.Args == "bbc" && c.ChatIdentity == "42"
	})).Return(reply, nil).Once()
	client.On("SendReply", mock.Anything, "42", reply).Return(nil).Once()

	poller.HandleUpdate(&tgbotapi.Update{Message: textMessage(42, "/news bbc")})
}

func TestPoller_HandleUpdate_ServiceError(t *testing.T) {
	client := domainmocks.NewTelegramClientAPI(t)
	service := mocks.NewBotService(t)
	poller := telegram.NewPoller(client, service, nil, time.Second, newLogger())

	service.On("ProcessCommand", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()
	client.On("SendReply", mock.Anything, "42", mock.MatchedBy(func(r *models.Reply) bool {
		return strings.Contains(r.Text, "Произошла ошибка") && r.ParseMode == models.ParsePlain
	})).Return(nil).Once()

	poller.HandleUpdate(&tgbotapi.Update{Message: textMessage(42, "/start")})
}

func TestPoller_HandleUpdate_Callback(t *testing.T) {
	client := domainmocks.NewTelegramClientAPI(t)
	service := mocks.NewBotService(t)
	poller := telegram.NewPoller(client, service, nil, time.Second, newLogger())

	reply := &models.Reply{Text: "Вы подписались на bbc, рассылка каждые 15m"}

	service.On("ProcessCallback", mock.Anything, &models.Callback{
		ID:           "cb-1",
		ChatIdentity: "42",
		MessageID:    7,
		Data:         "sub_interval_bbc_15",
	}).Return(reply, nil).Once()
	client.On("AnswerCallback", mock.Anything, "cb-1", "").Return(nil).Once()
	client.On("EditReply", mock.Anything, "42", 7, reply).Return(nil).Once()

	poller.HandleUpdate(&tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb-1",
		Message: &tgbotapi.Message{MessageID: 7, Chat: &tgbotapi.Chat{ID: 42}},
		Data:    "sub_interval_bbc_15",
	}})
}

func TestPoller_HandleUpdate_CallbackWithoutMessage(t *testing.T) {
	client := domainmocks.NewTelegramClientAPI(t)
	service := mocks.NewBotService(t)
	poller := telegram.NewPoller(client, service, nil, time.Second, newLogger())

	poller.HandleUpdate(&tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{ID: "cb-1", Data: "sub_source_bbc"}})

	service.AssertNotCalled(t, "ProcessCallback", mock.Anything, mock.Anything)
}

func TestPoller_HandleUpdate_RateLimited(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := domainmocks.NewTelegramClientAPI(t)
	service := mocks.NewBotService(t)
	limiter := telegram.NewChatRateLimiter(ctx, 0.001, 1)
	poller := telegram.NewPoller(client, service, limiter, time.Second, newLogger())

	reply := &models.Reply{Text: "Доступные источники:"}

	service.On("ProcessCommand", mock.Anything, mock.Anything).Return(reply, nil).Once()
	client.On("SendReply", mock.Anything, "42", reply).Return(nil).Once()
	client.On("SendReply", mock.Anything, "42", mock.MatchedBy(func(r *models.Reply) bool {
		return strings.Contains(r.Text, "Слишком много запросов")
	})).Return(nil).Once()

	poller.HandleUpdate(&tgbotapi.Update{Message: textMessage(42, "/listsources")})
	poller.HandleUpdate(&tgbotapi.Update{Message: textMessage(42, "/listsources")})
}

func TestPoller_HandleUpdate_CallbackRateLimited(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := domainmocks.NewTelegramClientAPI(t)
	service := mocks.NewBotService(t)
	limiter := telegram.NewChatRateLimiter(ctx, 0.001, 1)
	poller := telegram.NewPoller(client, service, limiter, time.Second, newLogger())

	reply := &models.Reply{Text: "Выберите интервал"}
	update := &tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb-1",
		Message: &tgbotapi.Message{MessageID: 7, Chat: &tgbotapi.Chat{ID: 42}},
		Data:    "sub_source_bbc",
	}}

	service.On("ProcessCallback", mock.Anything, mock.Anything).Return(reply, nil).Once()
	client.On("AnswerCallback", mock.Anything, "cb-1", "").Return(nil).Once()
	client.On("EditReply", mock.Anything, "42", 7, reply).Return(nil).Once()
	client.On("AnswerCallback", mock.Anything, "cb-1", mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "Слишком много запросов")
	})).Return(nil).Once()

	poller.HandleUpdate(update)
	poller.HandleUpdate(update)
}

func TestChatRateLimiter_PerChat(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := telegram.NewChatRateLimiter(ctx, 0.001, 2)

	require.True(t, limiter.Allow("1"))
	require.True(t, limiter.Allow("1"))
	assert.False(t, limiter.Allow("1"))

	assert.True(t, limiter.Allow("2"), "Лимит одного чата не влияет на другой")
}

func TestPoller_StopWithoutStart(t *testing.T) {
	poller := telegram.NewPoller(domainmocks.NewTelegramClientAPI(t), mocks.NewBotService(t), nil, time.Second, newLogger())

	require.NoError(t, poller.Close())
}
