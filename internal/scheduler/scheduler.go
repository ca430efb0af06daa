// Package scheduler ведёт персональные ежедневные задачи рассылки практик.
package scheduler

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"daily-practice-bot/internal/config"
	"daily-practice-bot/internal/content"
	"daily-practice-bot/internal/models"
	"daily-practice-bot/internal/storage"
)

const dateLayout = "2006-01-02"

// DeliverResult сообщает планировщику, что именно произошло при доставке.
type DeliverResult int

const (
	// DeliverSkipped — контента не было, ничего не отправлено.
	DeliverSkipped DeliverResult = iota
	// Delivered — практика отправлена, день может двигаться дальше.
	Delivered
	// DeliveredOfferOnly — вместо практики ушло предложение теста
	// (утро дня 14): дата отправки ставится, день не двигается.
	DeliveredOfferOnly
)

// Deliverer отправляет практику пользователю. Реализуется обработчиками.
type Deliverer interface {
	DeliverPractice(chatID int64, slot models.Slot, day int) (DeliverResult, error)
}

// Scheduler maintains at most one morning and one evening daily trigger per
// subscribed user. Trigger state lives only in memory: Rebuild restores it
// from the user store after a restart.
type Scheduler struct {
	cron    gocron.Scheduler
	db      *storage.DB
	cfg     *config.Config
	deliver Deliverer
	clock   clockwork.Clock
	log     zerolog.Logger

	mu   sync.Mutex
	jobs map[int64]map[models.Slot]uuid.UUID
}

func New(db *storage.DB, cfg *config.Config, deliver Deliverer, clk clockwork.Clock, log zerolog.Logger) (*Scheduler, error) {
	cron, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithClock(clk),
	)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		cron:    cron,
		db:      db,
		cfg:     cfg,
		deliver: deliver,
		clock:   clk,
		log:     log.With().Str("component", "scheduler").Logger(),
		jobs:    map[int64]map[models.Slot]uuid.UUID{},
	}, nil
}

func (s *Scheduler) Start() { s.cron.Start() }

func (s *Scheduler) Shutdown() error { return s.cron.Shutdown() }

// Rebuild восстанавливает задачи всех подписанных пользователей.
// Ошибка одного пользователя не мешает остальным.
func (s *Scheduler) Rebuild() error {
	users, err := s.db.AllSubscribed()
	if err != nil {
		return fmt.Errorf("load subscribed users: %w", err)
	}
	for _, u := range users {
		if err := s.Reschedule(u.ChatID); err != nil {
			s.log.Error().Err(err).Int64("user", u.ChatID).Msg("failed to reschedule on rebuild")
		}
	}
	s.log.Info().Int("users", len(users)).Msg("trigger set rebuilt from store")
	return nil
}

// Reschedule приводит задачи пользователя в соответствие с его текущим
// режимом и днём цикла: сначала снимаются старые задачи, затем создаются
// новые. Для режима none это чистая отмена. Идемпотентно.
func (s *Scheduler) Reschedule(chatID int64) error {
	u, err := s.db.Get(chatID)
	if err != nil {
		return fmt.Errorf("load user %d: %w", chatID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(chatID)

	if u == nil || !u.Subscribed {
		return nil
	}
	morning, evening := s.cfg.ResolvePracticeTimes(u.CurrentDay)
	for _, slot := range []models.Slot{models.SlotMorning, models.SlotEvening} {
		if !u.PracticeMode.Includes(slot) {
			continue
		}
		at := morning
		if slot == models.SlotEvening {
			at = evening
		}
		if err := s.addJobLocked(chatID, slot, at); err != nil {
			return err
		}
	}
	return nil
}

// Cancel синхронно снимает обе задачи пользователя. Уже запущенная задача
// дорабатывает текущий вызов (и сама откажется от отправки по флагу
// подписки), но заново не взводится.
func (s *Scheduler) Cancel(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(chatID)
}

// JobSlots returns the slots currently scheduled for the user.
func (s *Scheduler) JobSlots(chatID int64) []models.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []models.Slot
	for _, slot := range []models.Slot{models.SlotMorning, models.SlotEvening} {
		if _, ok := s.jobs[chatID][slot]; ok {
			res = append(res, slot)
		}
	}
	return res
}

func (s *Scheduler) cancelLocked(chatID int64) {
	for slot, id := range s.jobs[chatID] {
		if err := s.cron.RemoveJob(id); err != nil {
			s.log.Warn().Err(err).Int64("user", chatID).Str("slot", string(slot)).Msg("failed to remove job")
		}
	}
	delete(s.jobs, chatID)
}

func (s *Scheduler) addJobLocked(chatID int64, slot models.Slot, at config.ClockTime) error {
	job, err := s.cron.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(at.Hour, at.Minute, 0))),
		gocron.NewTask(s.fire, chatID, slot),
		gocron.WithName(fmt.Sprintf("%d_%s", chatID, slot)),
	)
	if err != nil {
		return fmt.Errorf("schedule %s job for %d: %w", slot, chatID, err)
	}
	if s.jobs[chatID] == nil {
		s.jobs[chatID] = map[models.Slot]uuid.UUID{}
	}
	s.jobs[chatID][slot] = job.ID()
	s.log.Info().Int64("user", chatID).Str("slot", string(slot)).
		Uint("hour", at.Hour).Uint("minute", at.Minute).Msg("daily job scheduled")
	return nil
}

// fire — обработчик срабатывания. Перед отправкой перечитывает запись и
// проверяет: пользователь существует, подписан, слот применим к режиму и
// сегодня в этот слот ещё не отправляли. Дата-ключи — единственная защита
// от повторной отправки при перезапуске.
func (s *Scheduler) fire(chatID int64, slot models.Slot) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Int64("user", chatID).Msg("panic in practice job")
		}
	}()
	log := s.log.With().Int64("user", chatID).Str("slot", string(slot)).Logger()

	u, err := s.db.Get(chatID)
	if err != nil {
		log.Error().Err(err).Msg("cannot load user")
		return
	}
	if u == nil {
		log.Warn().Msg("job fired for unknown user")
		return
	}
	if !u.Subscribed || !u.PracticeMode.Includes(slot) {
		log.Debug().Str("mode", string(u.PracticeMode)).Msg("slot no longer applicable, skipping")
		return
	}
	today := s.clock.Now().UTC().Format(dateLayout)
	if u.LastSent(slot) == today {
		log.Info().Msg("already sent today, skipping")
		return
	}

	res, err := s.deliver.DeliverPractice(chatID, slot, u.CurrentDay)
	if err != nil {
		if IsPermanentDeliveryErr(err) {
			log.Warn().Err(err).Msg("recipient unreachable, unsubscribing")
			s.Cancel(chatID)
			s.markBlocked(chatID)
		} else {
			log.Error().Err(err).Msg("delivery failed, left to the next cycle")
		}
		return
	}
	if res == DeliverSkipped {
		log.Warn().Int("day", u.CurrentDay).Msg("no content for day/slot")
		return
	}

	// Доставка могла изменить состояние разговора (предложение теста),
	// поэтому перед штампом даты запись перечитывается.
	u, err = s.db.Get(chatID)
	if err != nil || u == nil {
		log.Error().Err(err).Msg("cannot reload user after delivery")
		return
	}
	u.SetLastSent(slot, today)
	advanced := false
	if res == Delivered && slot == u.PracticeMode.AdvanceSlot() {
		u.AdvanceDay(content.TotalDays)
		advanced = true
	}
	if err := s.db.Put(u); err != nil {
		log.Error().Err(err).Msg("failed to persist send date")
		return
	}
	if advanced {
		// Курсор дня сдвинулся: время срабатывания нужно разрешить заново
		// (особое время дня 3 живёт в конфиге, не в задаче).
		if err := s.Reschedule(chatID); err != nil {
			log.Error().Err(err).Msg("failed to reschedule after day advance")
		}
	}
}

func (s *Scheduler) markBlocked(chatID int64) {
	u, err := s.db.Get(chatID)
	if err != nil || u == nil {
		return
	}
	u.Subscribed = false
	u.PracticeMode = models.ModeNone
	u.Stage = models.Stage{Kind: models.StageBotBlocked}
	if err := s.db.Put(u); err != nil {
		s.log.Error().Err(err).Int64("user", chatID).Msg("failed to mark user blocked")
	}
}

// IsPermanentDeliveryErr распознаёт безвозвратно недоступного получателя
// по тексту ошибки Telegram.
func IsPermanentDeliveryErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "bot was blocked") ||
		strings.Contains(msg, "user is deactivated")
}
