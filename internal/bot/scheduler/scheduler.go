package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"

	"github.com/central-university-dev/go-news-bot/internal/bot/format"
	"github.com/central-university-dev/go-news-bot/internal/common/metrics"
	customerrors "github.com/central-university-dev/go-news-bot/internal/domain/errors"
	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

type HeadlineFetcher interface {
	Fetch(ctx context.Context, source string) []models.Headline
}

type Notifier interface {
	Deliver(ctx context.Context, delivery *models.Delivery) error
}

type SubscriptionLister interface {
	ListAllActive(ctx context.Context) ([]*models.Subscription, error)
}

type task struct {
	key      models.TaskKey
	interval int
	job      *gocron.Job

	ctx    context.Context
	cancel context.CancelFunc

	// deliverMu удерживается на время доставки, stopTask берет его после отмены ctx.
	deliverMu sync.Mutex
}

// DeliveryScheduler держит по одной периодической рассылке на пару (чат, источник).
type DeliveryScheduler struct {
	scheduler    *gocron.Scheduler
	fetcher      HeadlineFetcher
	notifier     Notifier
	logger       *slog.Logger
	unit         time.Duration
	cycleTimeout time.Duration

	mu       sync.Mutex
	tasks    map[models.TaskKey]*task
	keyLocks map[models.TaskKey]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

type Option func(*DeliveryScheduler)

// WithUnit задает длительность одной "минуты" интервала. Нужен тестам.
func WithUnit(unit time.Duration) Option {
	return func(s *DeliveryScheduler) {
		s.unit = unit
	}
}

func WithCycleTimeout(timeout time.Duration) Option {
	return func(s *DeliveryScheduler) {
		s.cycleTimeout = timeout
	}
}

func NewDeliveryScheduler(fetcher HeadlineFetcher, notifier Notifier, logger *slog.Logger, opts ...Option) *DeliveryScheduler {
	s := &DeliveryScheduler{
		scheduler:    gocron.NewScheduler(time.UTC),
		fetcher:      fetcher,
		notifier:     notifier,
		logger:       logger,
		unit:         time.Minute,
		cycleTimeout: 30 * time.Second,
		tasks:        make(map[models.TaskKey]*task),
		keyLocks:     make(map[models.TaskKey]*keyLock),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *DeliveryScheduler) Start() {
	s.logger.Info("Запуск планировщика рассылок")
	s.scheduler.StartAsync()
}

// Stop отменяет все рассылки и останавливает планировщик, не дожидаясь очередных циклов.
func (s *DeliveryScheduler) Stop() {
	s.logger.Info("Остановка планировщика рассылок")

	s.mu.Lock()
	stopped := make([]*task, 0, len(s.tasks))
	for key, t := range s.tasks {
		stopped = append(stopped, t)
		delete(s.tasks, key)
	}
	s.mu.Unlock()

	for _, t := range stopped {
		s.stopTask(t)
	}

	metrics.SetScheduledTasks(0)

	s.scheduler.Stop()
}

// StartOrReplace запускает рассылку для ключа. Существующая задача с тем же ключом
// отменяется до регистрации новой. Первый цикл выполняется сразу.
func (s *DeliveryScheduler) StartOrReplace(key models.TaskKey, intervalMinutes int) error {
	if intervalMinutes <= 0 {
		return &customerrors.ErrInvalidInterval{Minutes: intervalMinutes}
	}

	unlock := s.lockKey(key)
	defer unlock()

	if existing := s.detach(key); existing != nil {
		s.stopTask(existing)
	}

	ctx, cancel := context.WithCancel(context.Background())

	t := &task{
		key:      key,
		interval: intervalMinutes,
		ctx:      ctx,
		cancel:   cancel,
	}

	job, err := s.scheduler.Every(time.Duration(intervalMinutes) * s.unit).SingletonMode().Do(s.runCycle, t)
	if err != nil {
		cancel()
		s.updateGauge()

		return err
	}

	t.job = job

	s.mu.Lock()
	s.tasks[key] = t
	s.mu.Unlock()

	s.updateGauge()

	s.logger.Info("Рассылка запланирована",
		"task", key.String(),
		"interval", models.FormatInterval(intervalMinutes),
	)

	return nil
}

// Cancel останавливает рассылку. После возврата доставок по ключу больше не будет.
// Ожидание идущей доставки блокирует только операции с тем же ключом.
func (s *DeliveryScheduler) Cancel(key models.TaskKey) bool {
	unlock := s.lockKey(key)
	defer unlock()

	t := s.detach(key)
	if t == nil {
		return false
	}

	s.stopTask(t)
	s.updateGauge()

	s.logger.Info("Рассылка отменена", "task", key.String())

	return true
}

// Rehydrate восстанавливает рассылки по сохраненным подпискам. Повторный вызов
// заменяет задачи, а не дублирует их.
func (s *DeliveryScheduler) Rehydrate(ctx context.Context, lister SubscriptionLister) (int, error) {
	subscriptions, err := lister.ListAllActive(ctx)
	if err != nil {
		return 0, err
	}

	started := 0

	for _, sub := range subscriptions {
		key := models.TaskKey{ChatIdentity: sub.ChatIdentity, Source: sub.Source}

		if err := s.StartOrReplace(key, sub.IntervalMinutes); err != nil {
			s.logger.Error("Не удалось восстановить рассылку",
				"task", key.String(),
				"error", err,
			)

			continue
		}

		started++
	}

	s.logger.Info("Рассылки восстановлены из базы данных",
		"subscriptions", len(subscriptions),
		"started", started,
	)

	return started, nil
}

func (s *DeliveryScheduler) ActiveTasks() []models.TaskKey {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]models.TaskKey, 0, len(s.tasks))
	for key := range s.tasks {
		keys = append(keys, key)
	}

	return keys
}

func (s *DeliveryScheduler) Interval(key models.TaskKey) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[key]
	if !ok {
		return 0, false
	}

	return t.interval, true
}

// lockKey сериализует замену и отмену одного ключа. Запись в keyLocks живет,
// пока ее кто-то держит или ждет.
func (s *DeliveryScheduler) lockKey(key models.TaskKey) func() {
	s.mu.Lock()

	l, ok := s.keyLocks[key]
	if !ok {
		l = &keyLock{}
		s.keyLocks[key] = l
	}
	l.refs++

	s.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.keyLocks, key)
		}
		s.mu.Unlock()
	}
}

// detach убирает задачу из реестра. Остановка выполняется вызывающим вне s.mu.
func (s *DeliveryScheduler) detach(key models.TaskKey) *task {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[key]
	if !ok {
		return nil
	}

	delete(s.tasks, key)

	return t
}

func (s *DeliveryScheduler) updateGauge() {
	s.mu.Lock()
	count := len(s.tasks)
	s.mu.Unlock()

	metrics.SetScheduledTasks(count)
}

// stopTask нельзя вызывать под s.mu: он ждет доставку, начатую до отмены.
func (s *DeliveryScheduler) stopTask(t *task) {
	t.cancel()

	if t.job != nil {
		s.scheduler.RemoveByReference(t.job)
	}

	t.deliverMu.Lock()
	t.deliverMu.Unlock() //nolint:staticcheck // пустая критическая секция используется как барьер
}

func (s *DeliveryScheduler) runCycle(t *task) {
	if t.ctx.Err() != nil {
		return
	}

	ctx, cancel := context.WithTimeout(t.ctx, s.cycleTimeout)
	defer cancel()

	headlines := s.fetcher.Fetch(ctx, t.key.Source)
	if len(headlines) == 0 {
		s.logger.Debug("Нет заголовков для рассылки", "task", t.key.String())
		return
	}

	delivery := &models.Delivery{
		ID:           uuid.NewString(),
		ChatIdentity: t.key.ChatIdentity,
		Source:       t.key.Source,
		Text:         format.Headlines(headlines),
		CreatedAt:    time.Now(),
	}

	t.deliverMu.Lock()
	defer t.deliverMu.Unlock()

	if t.ctx.Err() != nil {
		return
	}

	if err := s.notifier.Deliver(ctx, delivery); err != nil {
		s.logger.Error("Ошибка при доставке рассылки",
			"task", t.key.String(),
			"delivery_id", delivery.ID,
			"error", err,
		)

		return
	}

	s.logger.Info("Рассылка доставлена",
		"task", t.key.String(),
		"delivery_id", delivery.ID,
		"headlines", len(headlines),
	)
}
