package handlers

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"daily-practice-bot/internal/content"
	"daily-practice-bot/internal/models"
)

// HandleCallback разбирает нажатия инлайн-кнопок.
func (h *Handler) HandleCallback(q *tgbotapi.CallbackQuery) {
	if _, err := h.Bot.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		h.Log.Debug().Err(err).Msg("cannot answer callback query")
	}
	if q.Message == nil {
		return
	}
	chatID := q.Message.Chat.ID
	u, err := h.updateUser(chatID, q.From)
	if err != nil {
		h.Log.Error().Err(err).Int64("user", chatID).Msg("cannot load user on callback")
		_ = h.sendText(chatID, content.GenericErrorText)
		return
	}

	data := q.Data
	switch {
	case data == cbMenuMain:
		_ = h.sendMenu(u)
	case data == cbSubscribe || data == cbSubscribeAlias:
		h.subscribe(u)
	case data == cbStopDaily:
		h.unsubscribe(u)
	case data == cbBuyConsult:
		_ = h.sendPaymentInfo(chatID)
	case data == cbPaymentDone:
		h.paymentConfirmed(u)
	case strings.HasPrefix(data, prefAck):
		h.practiceAck(u, q.Message, strings.TrimPrefix(data, prefAck))
	case strings.HasPrefix(data, prefOfferYes):
		h.clearQuestionKeyboard(chatID, q.Message)
		h.startTest(u, strings.TrimPrefix(data, prefOfferYes), false, u.CurrentDay)
	case strings.HasPrefix(data, prefOfferNo):
		h.declineTest(u, q.Message, strings.TrimPrefix(data, prefOfferNo))
	case strings.HasPrefix(data, prefStartForced) && strings.HasSuffix(data, sufStartForced):
		h.clearQuestionKeyboard(chatID, q.Message)
		testID := strings.TrimSuffix(strings.TrimPrefix(data, prefStartForced), sufStartForced)
		h.startTest(u, testID, true, u.CurrentDay)
	case strings.HasPrefix(data, prefTestAnswer):
		testID, qIdx, ansIdx, ok := parseAnswerData(strings.TrimPrefix(data, prefTestAnswer))
		if !ok {
			_ = h.sendText(chatID, content.TestAnswerErrorText)
			return
		}
		h.handleTestAnswer(u, q.Message, testID, qIdx, ansIdx)
	case strings.HasPrefix(data, prefConsultYes):
		h.consultYes(u, strings.TrimPrefix(data, prefConsultYes))
	case strings.HasPrefix(data, prefConsultNo):
		h.consultNo(u, strings.TrimPrefix(data, prefConsultNo))
	case strings.HasPrefix(data, prefConsultThink):
		h.consultThink(u, strings.TrimPrefix(data, prefConsultThink))
	default:
		h.Log.Warn().Str("data", data).Int64("user", chatID).Msg("unknown callback data")
	}
}

// parseAnswerData разбирает "<test_id>_<q>_<a>". Идентификатор теста сам
// содержит подчёркивания, поэтому числа снимаются с конца.
func parseAnswerData(body string) (testID string, qIdx, ansIdx int, ok bool) {
	last := strings.LastIndexByte(body, '_')
	if last <= 0 {
		return "", 0, 0, false
	}
	prev := strings.LastIndexByte(body[:last], '_')
	if prev <= 0 {
		return "", 0, 0, false
	}
	q, err1 := strconv.Atoi(body[prev+1 : last])
	a, err2 := strconv.Atoi(body[last+1:])
	if err1 != nil || err2 != nil {
		return "", 0, 0, false
	}
	return body[:prev], q, a, true
}

// practiceAck фиксирует выполнение практики и убирает кнопку.
func (h *Handler) practiceAck(u *models.UserRecord, msg *tgbotapi.Message, body string) {
	i := strings.IndexByte(body, '_')
	if i <= 0 {
		return
	}
	day, err := strconv.Atoi(body[:i])
	if err != nil {
		return
	}
	slot := models.Slot(body[i+1:])
	u.Stage = models.Stage{Kind: models.StagePracticeAck, Day: day, Slot: slot}
	if err := h.DB.Put(u); err != nil {
		h.Log.Error().Err(err).Int64("user", u.ChatID).Msg("cannot save practice ack")
		return
	}
	edit := tgbotapi.NewEditMessageText(u.ChatID, msg.MessageID, msg.Text+"\n\n"+content.CommonAckButtonText)
	if _, err := h.Bot.Send(edit); err != nil {
		h.Log.Debug().Err(err).Int64("user", u.ChatID).Msg("cannot edit acked practice")
	}
}

func (h *Handler) declineTest(u *models.UserRecord, msg *tgbotapi.Message, testID string) {
	h.clearQuestionKeyboard(u.ChatID, msg)
	u.Stage = models.Stage{Kind: models.StageTestDeclined, TestID: testID}
	if err := h.DB.Put(u); err != nil {
		h.Log.Error().Err(err).Int64("user", u.ChatID).Msg("cannot save test decline")
	}
	_ = h.sendText(u.ChatID, content.TestDeclinedText)
}

func (h *Handler) consultYes(u *models.UserRecord, testID string) {
	u.Stage = models.Stage{Kind: models.StageConsultRequested, TestID: testID}
	if tt, ok := u.TestsTaken[testID]; ok {
		tt.ConsultInterest = true
		u.TestsTaken[testID] = tt
	}
	if err := h.DB.Put(u); err != nil {
		h.Log.Error().Err(err).Int64("user", u.ChatID).Msg("cannot save consult interest")
		_ = h.sendText(u.ChatID, content.GenericErrorText)
		return
	}
	_ = h.sendPaymentInfo(u.ChatID)
}

func (h *Handler) consultNo(u *models.UserRecord, testID string) {
	u.Stage = models.Stage{Kind: models.StageConsultDeclined, TestID: testID}
	if err := h.DB.Put(u); err != nil {
		h.Log.Error().Err(err).Int64("user", u.ChatID).Msg("cannot save consult decline")
	}
	_ = h.sendText(u.ChatID, content.ConsultDeclinedText)
}

// consultThink оставляет пользователю только утренние практики и даёт
// контакт администратора.
func (h *Handler) consultThink(u *models.UserRecord, testID string) {
	u.Stage = models.Stage{Kind: models.StageConsultThinking, TestID: testID}
	u.PracticeMode = models.ModeMorningOnly
	if err := h.DB.Put(u); err != nil {
		h.Log.Error().Err(err).Int64("user", u.ChatID).Msg("cannot save consult thinking")
		_ = h.sendText(u.ChatID, content.GenericErrorText)
		return
	}
	if err := h.Sched.Reschedule(u.ChatID); err != nil {
		h.Log.Error().Err(err).Int64("user", u.ChatID).Msg("cannot reschedule after mode change")
	}
	_ = h.sendText(u.ChatID, fmt.Sprintf(content.ConsultThinkLaterTemplate, h.Cfg.AdminContact))
}

func (h *Handler) paymentConfirmed(u *models.UserRecord) {
	_ = h.sendText(u.ChatID, content.PaymentThanksText)
	h.notifyAdmins(fmt.Sprintf("💰 Пользователь %d (@%s, %s) сообщил об оплате консультации.",
		u.ChatID, u.Username, u.FirstName))
}
