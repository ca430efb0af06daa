package main

import (
	"os"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"daily-practice-bot/internal/config"
	"daily-practice-bot/internal/handlers"
	"daily-practice-bot/internal/mailer"
	"daily-practice-bot/internal/scheduler"
	"daily-practice-bot/internal/storage"
)

func main() {
	_ = godotenv.Load() // TELEGRAM_BOT_TOKEN etc.

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := config.MustLoad()

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open database")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to telegram")
	}
	log.Info().Str("bot", bot.Self.UserName).Msg("authorized")

	h := handlers.New(bot, db, cfg, mailer.NewSMTP(cfg.SMTP, log), log)

	sched, err := scheduler.New(db, cfg, h, clockwork.NewRealClock(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create scheduler")
	}
	h.Sched = sched

	if err := sched.Rebuild(); err != nil {
		log.Fatal().Err(err).Msg("cannot rebuild schedules")
	}
	sched.Start()
	defer func() {
		if err := sched.Shutdown(); err != nil {
			log.Warn().Err(err).Msg("scheduler shutdown failed")
		}
	}()

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := bot.GetUpdatesChan(updateConfig)

	for upd := range updates {
		if upd.Message != nil {
			if upd.Message.IsCommand() {
				h.HandleCommand(upd.Message)
				continue
			}
			h.HandleText(upd.Message)
		}
		if upd.CallbackQuery != nil {
			h.HandleCallback(upd.CallbackQuery)
		}
	}
}
