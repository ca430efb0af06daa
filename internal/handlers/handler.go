// Package handlers обрабатывает команды, колбэки и текстовые сообщения,
// а также доставляет плановые практики по вызову планировщика.
package handlers

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"daily-practice-bot/internal/config"
	"daily-practice-bot/internal/content"
	"daily-practice-bot/internal/mailer"
	"daily-practice-bot/internal/models"
	"daily-practice-bot/internal/storage"
)

// BotSender — используемое подмножество клиента Telegram. В тестах
// подменяется фейком.
type BotSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Rescheduler управляет плановыми задачами пользователя.
// Реализуется планировщиком.
type Rescheduler interface {
	Reschedule(chatID int64) error
	Cancel(chatID int64)
}

// Данные колбэков инлайн-кнопок. Идентификаторы тестов содержат
// подчёркивания, поэтому числовые поля разбираются с конца строки.
const (
	cbMenuMain       = "menu_main"
	cbSubscribe      = "subscribe_daily"
	cbSubscribeAlias = "menu_subscribe_daily"
	cbStopDaily      = "menu_stop_daily"
	cbBuyConsult     = "buy_consult"
	cbPaymentDone    = "payment_confirmed"

	prefAck          = "daily_ack_"
	prefOfferYes     = "offer_test_yes_"
	prefOfferNo      = "offer_test_no_"
	prefStartForced  = "start_test_"
	sufStartForced   = "_forced"
	prefTestAnswer   = "testans_"
	prefConsultYes   = "post_email_consult_yes_"
	prefConsultNo    = "post_email_consult_no_"
	prefConsultThink = "post_email_consult_think_"
)

type Handler struct {
	Bot    BotSender
	DB     *storage.DB
	Cfg    *config.Config
	Mailer mailer.Mailer
	Sched  Rescheduler
	Log    zerolog.Logger
}

func New(bot BotSender, db *storage.DB, cfg *config.Config, m mailer.Mailer, log zerolog.Logger) *Handler {
	return &Handler{
		Bot:    bot,
		DB:     db,
		Cfg:    cfg,
		Mailer: m,
		Log:    log.With().Str("component", "handlers").Logger(),
	}
}

// updateUser возвращает запись пользователя, создавая её при первом контакте
// и обновляя имя и username при каждом.
func (h *Handler) updateUser(chatID int64, from *tgbotapi.User) (*models.UserRecord, error) {
	u, err := h.DB.Get(chatID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		u = &models.UserRecord{
			ChatID:       chatID,
			PracticeMode: models.ModeNone,
			TestsTaken:   map[string]models.TestTaken{},
			CreatedAt:    time.Now().UTC(),
		}
	}
	if from != nil {
		u.Username = from.UserName
		u.FirstName = from.FirstName
	}
	if err := h.DB.Put(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (h *Handler) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := h.Bot.Send(msg)
	return err
}

func (h *Handler) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = kb
	_, err := h.Bot.Send(msg)
	return err
}

func (h *Handler) mainMenuKeyboard(u *models.UserRecord) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if u.Subscribed {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(content.StopButtonText, cbStopDaily)))
	} else {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(content.SubscribeButtonText, cbSubscribe)))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(content.BuyConsultButtonText, cbBuyConsult)),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(content.MainChannelButtonText, h.Cfg.MainChannelLink)))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (h *Handler) sendMenu(u *models.UserRecord) error {
	return h.sendWithKeyboard(u.ChatID, content.MenuText, h.mainMenuKeyboard(u))
}

// sendPaymentInfo показывает условия консультации с кнопкой оплаты.
func (h *Handler) sendPaymentInfo(chatID int64) error {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(content.PaymentLinkButtonText, h.Cfg.PaymentLink)),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(content.PaymentConfirmButtonText, cbPaymentDone)),
	)
	return h.sendWithKeyboard(chatID, fmt.Sprintf(content.PaymentInfoTemplate, h.Cfg.ConsultationPrice), kb)
}

// notifyAdmins шлёт служебное сообщение каждому администратору.
// Ошибки только логируются.
func (h *Handler) notifyAdmins(text string) {
	for _, id := range h.Cfg.AdminUserIDs {
		if err := h.sendText(id, text); err != nil {
			h.Log.Warn().Err(err).Int64("admin", id).Msg("failed to notify admin")
		}
	}
}
