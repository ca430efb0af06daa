package handlers

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"daily-practice-bot/internal/content"
	"daily-practice-bot/internal/models"
	"daily-practice-bot/internal/testengine"
)

// HandleText обрабатывает свободный текст. Единственный ожидаемый ввод —
// email после завершённого теста; всё остальное отправляется в меню.
func (h *Handler) HandleText(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	u, err := h.updateUser(chatID, msg.From)
	if err != nil {
		h.Log.Error().Err(err).Int64("user", chatID).Msg("cannot load user on text")
		_ = h.sendText(chatID, content.GenericErrorText)
		return
	}
	if u.Stage.Kind != models.StageAwaitingEmail {
		_ = h.sendMenu(u)
		return
	}
	h.captureEmail(u, strings.TrimSpace(msg.Text))
}

// captureEmail проверяет адрес, шлёт письмо с полной расшифровкой и
// предлагает консультацию. Черновые поля результата очищаются разом.
func (h *Handler) captureEmail(u *models.UserRecord, email string) {
	pe := u.PendingEmail
	if pe == nil || pe.TestID != u.Stage.TestID {
		// Запись в несогласованном состоянии: ждём почту, а результата нет.
		u.ClearPendingEmail()
		u.Stage = models.Stage{Kind: models.StageEmailDataError}
		if err := h.DB.Put(u); err != nil {
			h.Log.Error().Err(err).Int64("user", u.ChatID).Msg("cannot clear broken email state")
		}
		_ = h.sendText(u.ChatID, content.EmailDataError)
		return
	}

	if !looksLikeEmail(email) {
		_ = h.sendText(u.ChatID, content.EmailInvalidText)
		return
	}

	def, err := testengine.Get(pe.TestID)
	var res *testengine.Result
	if err == nil {
		res, err = testengine.Lookup(pe.TestID, pe.Score, pe.Answers)
	}
	if err != nil {
		h.Log.Error().Err(err).Str("test", pe.TestID).Int64("user", u.ChatID).Msg("cannot render stored result")
		u.ClearPendingEmail()
		u.Stage = models.Stage{Kind: models.StageEmailDataError}
		if perr := h.DB.Put(u); perr != nil {
			h.Log.Error().Err(perr).Int64("user", u.ChatID).Msg("cannot clear broken email state")
		}
		_ = h.sendText(u.ChatID, content.EmailDataError)
		return
	}

	u.Email = email
	sendErr := h.Mailer.Send(email, fmt.Sprintf("Результаты теста «%s»", def.Name), res.FullHTML)

	if tt, ok := u.TestsTaken[pe.TestID]; ok {
		tt.EmailRecipient = email
		if sendErr != nil {
			tt.EmailStatus = "failed"
		} else {
			tt.EmailStatus = "sent"
		}
		u.TestsTaken[pe.TestID] = tt
	}

	// Контекст дня 14 действует и без флага обязательности: тест мог быть
	// принят из обычного вечернего предложения последнего дня.
	forced := pe.Forced || u.CurrentDay == content.TotalDays
	testID := pe.TestID
	u.ClearPendingEmail()
	u.Stage = models.Stage{Kind: models.StagePostEmailOffer, TestID: testID}
	if err := h.DB.Put(u); err != nil {
		h.Log.Error().Err(err).Int64("user", u.ChatID).Msg("cannot save email capture")
		_ = h.sendText(u.ChatID, content.GenericErrorText)
		return
	}

	if sendErr != nil {
		h.Log.Error().Err(sendErr).Str("to", email).Int64("user", u.ChatID).Msg("result email failed")
		_ = h.sendText(u.ChatID, fmt.Sprintf(content.EmailSentFailureTemplate, email, h.Cfg.AdminContact))
	} else {
		_ = h.sendText(u.ChatID, fmt.Sprintf(content.EmailSentSuccessTemplate, email))
	}

	h.offerConsultation(u, testID, forced)
}

// offerConsultation предлагает платную консультацию. После обязательного
// теста дня 14 вместо отказа предлагается вариант «подумать».
func (h *Handler) offerConsultation(u *models.UserRecord, testID string, forced bool) {
	second := tgbotapi.NewInlineKeyboardButtonData(content.ConsultButtonNoText, prefConsultNo+testID)
	if forced {
		second = tgbotapi.NewInlineKeyboardButtonData(content.ConsultButtonThinkText, prefConsultThink+testID)
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf(content.ConsultButtonYesTemplate, h.Cfg.ConsultationPrice),
				prefConsultYes+testID)),
		tgbotapi.NewInlineKeyboardRow(second),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(content.MenuButtonText, cbMenuMain)),
	)
	_ = h.sendWithKeyboard(u.ChatID, content.ConsultOfferText, kb)
}

// looksLikeEmail — намеренно грубая проверка формы адреса: «@» и точка в
// доменной части. Настоящая валидация происходит на SMTP-сервере.
func looksLikeEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1 && !strings.ContainsAny(s, " \t\n")
}
