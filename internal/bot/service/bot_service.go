package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/central-university-dev/go-news-bot/internal/bot/domain"
	"github.com/central-university-dev/go-news-bot/internal/bot/format"
	domainerrors "github.com/central-university-dev/go-news-bot/internal/domain/errors"
	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

const (
	sourcesPerRow   = 2
	intervalsPerRow = 3
)

type SubscriptionRepository interface {
	EnsureUser(ctx context.Context, chatIdentity string) (*models.User, bool, error)

	FindUser(ctx context.Context, chatIdentity string) (*models.User, error)

	SetDefaultSource(ctx context.Context, userID int64, source string) error

	GetDefaultSource(ctx context.Context, userID int64) (string, error)

	UpsertActive(ctx context.Context, userID int64, source string, intervalMinutes int) (bool, error)

	RemoveActive(ctx context.Context, userID int64, source string) error

	ListActive(ctx context.Context, userID int64) ([]*models.Subscription, error)

	ListAllActive(ctx context.Context) ([]*models.Subscription, error)
}

type HeadlineFetcher interface {
	Fetch(ctx context.Context, source string) []models.Headline
}

type DeliveryScheduler interface {
	StartOrReplace(key models.TaskKey, intervalMinutes int) error

	Cancel(key models.TaskKey) bool
}

type TxManager interface {
	WithTransaction(ctx context.Context, txFunc func(ctx context.Context) error) error
}

type BotService struct {
	repo          SubscriptionRepository
	fetcher       HeadlineFetcher
	scheduler     DeliveryScheduler
	txManager     TxManager
	registry      models.SourceRegistry
	defaultSource string
	logger        *slog.Logger
}

func NewBotService(
	repo SubscriptionRepository,
	fetcher HeadlineFetcher,
	scheduler DeliveryScheduler,
	txManager TxManager,
	registry models.SourceRegistry,
	defaultSource string,
	logger *slog.Logger,
) *BotService {
	return &BotService{
		repo:          repo,
		fetcher:       fetcher,
		scheduler:     scheduler,
		txManager:     txManager,
		registry:      registry,
		defaultSource: defaultSource,
		logger:        logger,
	}
}

// Commands возвращает список команд для меню бота в Telegram.
func Commands() []domain.BotCommand {
	return []domain.BotCommand{
		{Command: "start", Description: "Регистрация"},
		{Command: "help", Description: "Список команд"},
		{Command: "news", Description: "Свежие новости: /news <источник>"},
		{Command: "setsource", Description: "Источник по умолчанию"},
		{Command: "subscribe", Description: "Подписаться на рассылку"},
		{Command: "unsubscribe", Description: "Отписаться: /unsubscribe <источник>"},
		{Command: "listsources", Description: "Доступные источники"},
		{Command: "listsubscriptions", Description: "Мои подписки"},
	}
}

// ProcessCommand обрабатывает команду пользователя. Ошибки ввода возвращаются
// текстом ответа, error означает сбой хранилища или планировщика.
func (s *BotService) ProcessCommand(ctx context.Context, command *models.Command) (*models.Reply, error) {
	user, created, err := s.repo.EnsureUser(ctx, command.ChatIdentity)
	if err != nil {
		return nil, err
	}

	if created {
		s.logger.Info("Зарегистрирован новый пользователь",
			"chat", command.ChatIdentity,
			"user_id", user.ID,
		)
	}

	//nolint:exhaustive // CommandUnknown обрабатывается в блоке default
	switch command.Type {
	case models.CommandStart:
		return s.handleStartCommand(created), nil
	case models.CommandHelp:
		return plainReply(helpMessage()), nil
	case models.CommandNews:
		return s.handleNewsCommand(ctx, user, command.Args)
	case models.CommandSetSource:
		return s.handleSetSourceCommand(ctx, user, command.Args)
	case models.CommandSubscribe:
		return s.handleSubscribeCommand(), nil
	case models.CommandUnsubscribe:
		return s.handleUnsubscribeCommand(ctx, user, command.Args)
	case models.CommandListSources:
		return s.handleListSourcesCommand(), nil
	case models.CommandListSubscriptions:
		return s.handleListSubscriptionsCommand(ctx, user)
	default:
		s.logger.Debug("Получена неизвестная команда",
			"error", &domainerrors.ErrUnknownCommand{Command: command.Text},
		)

		return plainReply("Неизвестная команда. Введите /help для просмотра доступных команд."), nil
	}
}

// ProcessCallback обрабатывает нажатие кнопки меню подписки. Ответ заменяет
// текст исходного сообщения.
func (s *BotService) ProcessCallback(ctx context.Context, callback *models.Callback) (*models.Reply, error) {
	if _, _, err := s.repo.EnsureUser(ctx, callback.ChatIdentity); err != nil {
		return nil, err
	}

	payload, err := models.ParseCallbackPayload(callback.Data)
	if err != nil {
		s.logger.Warn("Некорректные данные callback",
			"chat", callback.ChatIdentity,
			"error", err,
		)

		return plainReply("Не удалось разобрать выбор. Начните заново: /subscribe"), nil
	}

	if !s.registry.Has(payload.Source) {
		return unknownSourceReply(payload.Source), nil
	}

	switch payload.Kind {
	case models.CallbackSelectSource:
		return s.intervalMenu(payload.Source), nil
	case models.CallbackSelectInterval:
		return s.handleIntervalSelection(ctx, callback.ChatIdentity, payload.Source, payload.Minutes)
	default:
		return plainReply("Не удалось разобрать выбор. Начните заново: /subscribe"), nil
	}
}

func (s *BotService) handleStartCommand(created bool) *models.Reply {
	if created {
		return plainReply("Добро пожаловать в News Bot! Вы зарегистрированы.\n\n" + helpMessage())
	}

	return plainReply("С возвращением в News Bot!\n\n" + helpMessage())
}

func helpMessage() string {
	return `Доступные команды:
/news <источник> - свежие новости (например, /news bbc)
/setsource <источник> - источник по умолчанию для /news
/subscribe - подписаться на рассылку
/unsubscribe <источник> - отменить подписку
/listsources - доступные источники
/listsubscriptions - ваши активные подписки`
}

func (s *BotService) handleNewsCommand(ctx context.Context, user *models.User, args string) (*models.Reply, error) {
	source := firstArg(args)

	if source == "" {
		var err error

		source, err = s.repo.GetDefaultSource(ctx, user.ID)
		if err != nil {
			if !errors.Is(err, &domainerrors.ErrDefaultSourceNotSet{}) {
				return nil, err
			}

			source = s.defaultSource
		}
	}

	if !s.registry.Has(source) {
		return unknownSourceReply(source), nil
	}

	headlines := s.fetcher.Fetch(ctx, source)
	if len(headlines) == 0 {
		return plainReply("Новостей не найдено."), nil
	}

	return &models.Reply{
		Text:      format.Headlines(headlines),
		ParseMode: models.ParseMarkdownV2,
	}, nil
}

func (s *BotService) handleSetSourceCommand(ctx context.Context, user *models.User, args string) (*models.Reply, error) {
	source := firstArg(args)
	if source == "" {
		return plainReply("Укажите источник, например: /setsource bbc"), nil
	}

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		return s.repo.SetDefaultSource(ctx, user.ID, source)
	})
	if err != nil {
		if errors.Is(err, &domainerrors.ErrUnknownSource{}) {
			return unknownSourceReply(source), nil
		}

		return nil, err
	}

	return plainReply(fmt.Sprintf("Источник по умолчанию: %s", source)), nil
}

func (s *BotService) handleSubscribeCommand() *models.Reply {
	names := s.registry.Names()
	buttons := make([]models.MenuButton, 0, len(names))

	for _, name := range names {
		buttons = append(buttons, models.MenuButton{
			Label:   name,
			Payload: models.SelectSourcePayload(name).Encode(),
		})
	}

	return &models.Reply{
		Text: "Выберите источник для подписки:",
		Menu: models.NewMenu(buttons, sourcesPerRow),
	}
}

func (s *BotService) intervalMenu(source string) *models.Reply {
	buttons := make([]models.MenuButton, 0, len(models.IntervalOptions))

	for _, option := range models.IntervalOptions {
		buttons = append(buttons, models.MenuButton{
			Label:   option.Label,
			Payload: models.SelectIntervalPayload(source, option.Minutes).Encode(),
		})
	}

	return &models.Reply{
		Text: fmt.Sprintf("Источник: %s\nВыберите интервал рассылки:", source),
		Menu: models.NewMenu(buttons, intervalsPerRow),
	}
}

// handleIntervalSelection сначала сохраняет подписку и только потом перезапускает задачу,
// чтобы рассылка не появилась без строки в базе.
func (s *BotService) handleIntervalSelection(ctx context.Context, chatIdentity, source string, minutes int) (*models.Reply, error) {
	var created bool

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		user, _, err := s.repo.EnsureUser(ctx, chatIdentity)
		if err != nil {
			return err
		}

		created, err = s.repo.UpsertActive(ctx, user.ID, source, minutes)

		return err
	})
	if err != nil {
		var intervalErr *domainerrors.ErrInvalidInterval

		switch {
		case errors.Is(err, &domainerrors.ErrUnknownSource{}):
			return unknownSourceReply(source), nil
		case errors.As(err, &intervalErr):
			return plainReply("Некорректный интервал. Начните заново: /subscribe"), nil
		default:
			return nil, err
		}
	}

	key := models.TaskKey{ChatIdentity: chatIdentity, Source: source}
	if err := s.scheduler.StartOrReplace(key, minutes); err != nil {
		return nil, fmt.Errorf("ошибка при запуске рассылки %s: %w", key, err)
	}

	interval := models.FormatInterval(minutes)

	if created {
		return plainReply(fmt.Sprintf("Вы подписались на %s, рассылка каждые %s", source, interval)), nil
	}

	return plainReply(fmt.Sprintf("Подписка на %s обновлена, рассылка каждые %s", source, interval)), nil
}

func (s *BotService) handleUnsubscribeCommand(ctx context.Context, user *models.User, args string) (*models.Reply, error) {
	source := firstArg(args)
	if source == "" {
		return plainReply("Укажите источник, например: /unsubscribe bbc"), nil
	}

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		found, err := s.repo.FindUser(ctx, user.ChatIdentity)
		if err != nil {
			return err
		}

		return s.repo.RemoveActive(ctx, found.ID, source)
	})
	if err != nil {
		if errors.Is(err, &domainerrors.ErrSubscriptionNotFound{}) || errors.Is(err, &domainerrors.ErrUserNotFound{}) {
			return plainReply(fmt.Sprintf("Подписка на %s не найдена.", source)), nil
		}

		return nil, err
	}

	s.scheduler.Cancel(models.TaskKey{ChatIdentity: user.ChatIdentity, Source: source})

	return plainReply(fmt.Sprintf("Вы отписались от %s.", source)), nil
}

func (s *BotService) handleListSourcesCommand() *models.Reply {
	var sb strings.Builder

	sb.WriteString("Доступные источники:")

	for _, name := range s.registry.Names() {
		sb.WriteString("\n- ")
		sb.WriteString(name)
	}

	return plainReply(sb.String())
}

func (s *BotService) handleListSubscriptionsCommand(ctx context.Context, user *models.User) (*models.Reply, error) {
	subscriptions, err := s.repo.ListActive(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if len(subscriptions) == 0 {
		return plainReply("У вас нет активных подписок."), nil
	}

	var sb strings.Builder

	sb.WriteString("Ваши активные подписки:")

	for _, sub := range subscriptions {
		sb.WriteString(fmt.Sprintf("\n- %s каждые %s", sub.Source, models.FormatInterval(sub.IntervalMinutes)))
	}

	return plainReply(sb.String()), nil
}

func plainReply(text string) *models.Reply {
	return &models.Reply{Text: text, ParseMode: models.ParsePlain}
}

func unknownSourceReply(source string) *models.Reply {
	return plainReply(fmt.Sprintf("Неизвестный источник %q. Список источников: /listsources", source))
}

func firstArg(args string) string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return ""
	}

	return strings.ToLower(fields[0])
}
