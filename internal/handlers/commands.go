package handlers

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"daily-practice-bot/internal/content"
	"daily-practice-bot/internal/models"
)

// HandleCommand разбирает команды бота. Незнакомые команды отправляют в меню.
func (h *Handler) HandleCommand(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	u, err := h.updateUser(chatID, msg.From)
	if err != nil {
		h.Log.Error().Err(err).Int64("user", chatID).Msg("cannot load user on command")
		_ = h.sendText(chatID, content.GenericErrorText)
		return
	}

	switch msg.Command() {
	case "start":
		h.cmdStart(u)
	case "menu":
		_ = h.sendMenu(u)
	case "stopdaily":
		h.unsubscribe(u)
	case "myid":
		_ = h.sendText(chatID, fmt.Sprintf("Твой ID: <code>%d</code>", chatID))
	case "setday":
		h.cmdSetDay(u, msg.CommandArguments())
	case "forcesend":
		h.cmdForceSend(u, msg.CommandArguments())
	default:
		_ = h.sendMenu(u)
	}
}

func (h *Handler) cmdStart(u *models.UserRecord) {
	if u.Stage.Kind == models.StageNone {
		u.Stage = models.Stage{Kind: models.StageGreeted}
		if err := h.DB.Put(u); err != nil {
			h.Log.Error().Err(err).Int64("user", u.ChatID).Msg("cannot save greeting stage")
		}
	}
	_ = h.sendText(u.ChatID, content.WelcomeText)
	_ = h.sendMenu(u)
}

func (h *Handler) subscribe(u *models.UserRecord) {
	if u.Subscribed {
		_ = h.sendText(u.ChatID, content.SubscriptionAlreadyActiveText)
		return
	}
	u.Subscribed = true
	u.PracticeMode = models.ModeDual
	// Подписка всегда начинает цикл заново с первого дня.
	u.CurrentDay = 1
	u.LastMorningSent = ""
	u.LastEveningSent = ""
	u.Stage = models.Stage{Kind: models.StageSubscribed}
	if err := h.DB.Put(u); err != nil {
		h.Log.Error().Err(err).Int64("user", u.ChatID).Msg("cannot save subscription")
		_ = h.sendText(u.ChatID, content.GenericErrorText)
		return
	}
	if err := h.Sched.Reschedule(u.ChatID); err != nil {
		h.Log.Error().Err(err).Int64("user", u.ChatID).Msg("cannot schedule practices")
	}
	_ = h.sendText(u.ChatID, content.SubscriptionSuccessText)
}

func (h *Handler) unsubscribe(u *models.UserRecord) {
	if !u.Subscribed {
		_ = h.sendText(u.ChatID, content.UnsubscribeNotSubscribedText)
		return
	}
	u.Subscribed = false
	u.PracticeMode = models.ModeNone
	u.Stage = models.Stage{Kind: models.StageUnsubscribed}
	if err := h.DB.Put(u); err != nil {
		h.Log.Error().Err(err).Int64("user", u.ChatID).Msg("cannot save unsubscribe")
		_ = h.sendText(u.ChatID, content.GenericErrorText)
		return
	}
	h.Sched.Cancel(u.ChatID)
	_ = h.sendText(u.ChatID, content.UnsubscribeText)
}

// cmdSetDay переставляет курсор дня: /setday <день> [chat_id].
// Без chat_id правится запись самого администратора.
func (h *Handler) cmdSetDay(admin *models.UserRecord, args string) {
	if !h.Cfg.IsAdmin(admin.ChatID) {
		_ = h.sendMenu(admin)
		return
	}
	fields := strings.Fields(args)
	if len(fields) == 0 {
		_ = h.sendText(admin.ChatID, fmt.Sprintf("Использование: /setday <1..%d> [chat_id]", content.TotalDays))
		return
	}
	day, err := strconv.Atoi(fields[0])
	if err != nil || day < 1 || day > content.TotalDays {
		_ = h.sendText(admin.ChatID, fmt.Sprintf("День должен быть числом от 1 до %d.", content.TotalDays))
		return
	}
	target := admin.ChatID
	if len(fields) > 1 {
		if target, err = strconv.ParseInt(fields[1], 10, 64); err != nil {
			_ = h.sendText(admin.ChatID, "chat_id должен быть числом.")
			return
		}
	}
	u, err := h.DB.Get(target)
	if err != nil || u == nil {
		_ = h.sendText(admin.ChatID, fmt.Sprintf("Пользователь %d не найден.", target))
		return
	}
	u.CurrentDay = day
	// Дата-ключи сбрасываются, чтобы новый день можно было отправить сегодня.
	u.LastMorningSent = ""
	u.LastEveningSent = ""
	u.Stage = models.Stage{Kind: models.StageAdminSetDay, Day: day}
	if err := h.DB.Put(u); err != nil {
		_ = h.sendText(admin.ChatID, content.GenericErrorText)
		return
	}
	if err := h.Sched.Reschedule(target); err != nil {
		h.Log.Error().Err(err).Int64("user", target).Msg("cannot reschedule after setday")
	}
	_ = h.sendText(admin.ChatID, fmt.Sprintf("Готово: пользователь %d переведён на день %d.", target, day))
}

// cmdForceSend немедленно доставляет практику текущего дня,
// минуя расписание и дата-ключи: /forcesend <morning|evening> [chat_id].
func (h *Handler) cmdForceSend(admin *models.UserRecord, args string) {
	if !h.Cfg.IsAdmin(admin.ChatID) {
		_ = h.sendMenu(admin)
		return
	}
	fields := strings.Fields(args)
	if len(fields) == 0 || (fields[0] != string(models.SlotMorning) && fields[0] != string(models.SlotEvening)) {
		_ = h.sendText(admin.ChatID, "Использование: /forcesend <morning|evening> [chat_id]")
		return
	}
	slot := models.Slot(fields[0])
	target := admin.ChatID
	if len(fields) > 1 {
		var err error
		if target, err = strconv.ParseInt(fields[1], 10, 64); err != nil {
			_ = h.sendText(admin.ChatID, "chat_id должен быть числом.")
			return
		}
	}
	u, err := h.DB.Get(target)
	if err != nil || u == nil {
		_ = h.sendText(admin.ChatID, fmt.Sprintf("Пользователь %d не найден.", target))
		return
	}
	res, err := h.DeliverPractice(target, slot, u.CurrentDay)
	if err != nil {
		_ = h.sendText(admin.ChatID, fmt.Sprintf("Отправка не удалась: %v", err))
		return
	}
	_ = h.sendText(admin.ChatID, fmt.Sprintf("Отправлено (день %d, %s, результат %d).", u.CurrentDay, slot, res))
}
