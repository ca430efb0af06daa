package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config собирает все настройки бота. Значения читаются из окружения
// (перед этим main подхватывает .env через godotenv).
type Config struct {
	TelegramToken string `env:"TELEGRAM_BOT_TOKEN"`
	DBPath        string `env:"DB_PATH" env-default:"bot.db"`

	AdminUserIDs []int64 `env:"ADMIN_USER_IDS"`
	AdminContact string  `env:"ADMIN_CONTACT_USERNAME" env-default:"GoidaSegun"`

	MainChannelLink string `env:"MAIN_CHANNEL_LINK" env-default:"https://t.me/sexandmind"`

	// Время отправки практик (UTC, "HH:MM").
	MorningAt string `env:"MORNING_PRACTICE_TIME_UTC" env-default:"06:00"`
	EveningAt string `env:"EVENING_PRACTICE_TIME_UTC" env-default:"15:00"`
	// Особое время для дня 3 (день предложения ключевого теста).
	Day3MorningAt string `env:"DAY3_MORNING_TIME_UTC" env-default:"06:00"`
	Day3EveningAt string `env:"DAY3_EVENING_TIME_UTC" env-default:"15:00"`

	ConsultationPrice int    `env:"CONSULTATION_PRICE_RUB" env-default:"5000"`
	PaymentLink       string `env:"PAYMENT_LINK" env-default:"https://www.tinkoff.ru/rm/consultation"`

	SMTP SMTPConfig
}

// SMTPConfig описывает почтовый транспорт для отправки результатов тестов.
type SMTPConfig struct {
	Host       string `env:"EMAIL_HOST" env-default:"smtp.mail.ru"`
	Port       string `env:"EMAIL_PORT" env-default:"587"`
	User       string `env:"EMAIL_HOST_USER"`
	Password   string `env:"EMAIL_HOST_PASSWORD"`
	SenderName string `env:"EMAIL_SENDER_NAME" env-default:"Команда Sexandmind"`
}

// ClockTime is a wall-clock time of day in UTC.
type ClockTime struct {
	Hour   uint
	Minute uint
}

// MustLoad reads the configuration from the environment and exits on error.
func MustLoad() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	if cfg.TelegramToken == "" {
		cfg.TelegramToken = tokenFromSecret()
	}
	if cfg.TelegramToken == "" {
		log.Fatal("telegram bot token is not set")
	}
	return &cfg
}

// tokenFromSecret пробует Docker Secret, если переменная окружения пуста.
func tokenFromSecret() string {
	data, err := os.ReadFile("/run/secrets/telegram_bot_token")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// ResolvePracticeTimes returns the morning and evening fire times for the
// given content day. Day 3 uses its own pair of times; the lookup happens at
// every (re)schedule because the day cursor moves.
func (c *Config) ResolvePracticeTimes(day int) (morning, evening ClockTime) {
	if day == 3 {
		return mustClockTime(c.Day3MorningAt), mustClockTime(c.Day3EveningAt)
	}
	return mustClockTime(c.MorningAt), mustClockTime(c.EveningAt)
}

// IsAdmin reports whether the user may run admin commands.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func mustClockTime(s string) ClockTime {
	var h, m uint
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil || h > 23 || m > 59 {
		// Кривое значение в конфиге — откат к полуночи, не падаем в рантайме.
		return ClockTime{}
	}
	return ClockTime{Hour: h, Minute: m}
}
