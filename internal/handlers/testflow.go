package handlers

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"daily-practice-bot/internal/content"
	"daily-practice-bot/internal/models"
	"daily-practice-bot/internal/testengine"
)

// startTest начинает тест с первого вопроса. Признак обязательности и день
// происхождения переживают переход селектора на следующий тест.
func (h *Handler) startTest(u *models.UserRecord, testID string, forced bool, originDay int) {
	def, err := testengine.Get(testID)
	if err != nil {
		h.Log.Error().Err(err).Str("test", testID).Int64("user", u.ChatID).Msg("unknown test requested")
		_ = h.sendText(u.ChatID, content.TestNotFoundText)
		return
	}
	u.ActiveTest = &models.ActiveTest{
		TestID:    testID,
		Answers:   []int{},
		Forced:    forced,
		OriginDay: originDay,
	}
	u.Stage = models.Stage{Kind: models.StageInTest, TestID: testID}
	if err := h.DB.Put(u); err != nil {
		h.Log.Error().Err(err).Int64("user", u.ChatID).Msg("cannot save test start")
		_ = h.sendText(u.ChatID, content.GenericErrorText)
		return
	}
	text, kb := questionMessage(def, 0)
	_ = h.sendWithKeyboard(u.ChatID, text, kb)
}

// handleTestAnswer обрабатывает нажатие варианта ответа. Колбэк сверяется с
// сохранённым состоянием: устаревшие кнопки из старых сообщений отклоняются.
func (h *Handler) handleTestAnswer(u *models.UserRecord, msg *tgbotapi.Message, testID string, qIdx, ansIdx int) {
	at := u.ActiveTest
	if at == nil || at.TestID != testID || at.QuestionIdx != qIdx {
		_ = h.sendText(u.ChatID, content.TestStateErrorText)
		return
	}
	def, err := testengine.Get(testID)
	if err != nil {
		_ = h.sendText(u.ChatID, content.TestNotFoundText)
		return
	}
	if qIdx >= len(def.Questions) || ansIdx < 0 || ansIdx >= len(def.Questions[qIdx].Options) {
		_ = h.sendText(u.ChatID, content.TestAnswerErrorText)
		return
	}

	at.Answers = append(at.Answers, ansIdx)

	if def.Selector {
		next, err := testengine.NextTest(testID, ansIdx)
		if err != nil {
			h.Log.Error().Err(err).Str("test", testID).Msg("selector routing failed")
			_ = h.sendText(u.ChatID, content.TestResultErrorText)
			return
		}
		h.clearQuestionKeyboard(u.ChatID, msg)
		h.startTest(u, next, at.Forced, at.OriginDay)
		return
	}

	at.QuestionIdx++
	if at.QuestionIdx < len(def.Questions) {
		if err := h.DB.Put(u); err != nil {
			h.Log.Error().Err(err).Int64("user", u.ChatID).Msg("cannot save test progress")
			_ = h.sendText(u.ChatID, content.GenericErrorText)
			return
		}
		text, kb := questionMessage(def, at.QuestionIdx)
		edit := tgbotapi.NewEditMessageTextAndMarkup(u.ChatID, msg.MessageID, text, kb)
		edit.ParseMode = tgbotapi.ModeHTML
		if _, err := h.Bot.Send(edit); err != nil {
			h.Log.Warn().Err(err).Int64("user", u.ChatID).Msg("cannot edit question message")
		}
		return
	}

	h.finishTest(u, def, msg)
}

// finishTest считает балл, фиксирует историю и переводит разговор в ожидание
// почты. Балл всегда пересчитывается из списка ответов.
func (h *Handler) finishTest(u *models.UserRecord, def *testengine.Definition, msg *tgbotapi.Message) {
	at := u.ActiveTest
	score, err := testengine.Score(def.ID, at.Answers)
	var res *testengine.Result
	if err == nil {
		res, err = testengine.Lookup(def.ID, score, at.Answers)
	}
	if err != nil {
		h.Log.Error().Err(err).Str("test", def.ID).Int64("user", u.ChatID).Msg("cannot score finished test")
		u.ActiveTest = nil
		if perr := h.DB.Put(u); perr != nil {
			h.Log.Error().Err(perr).Int64("user", u.ChatID).Msg("cannot clear broken test state")
		}
		_ = h.sendText(u.ChatID, content.TestResultErrorText)
		return
	}

	answers := make([]int, len(at.Answers))
	copy(answers, at.Answers)
	u.TestsTaken[def.ID] = models.TestTaken{
		Summary: res.Summary,
		Answers: answers,
		TakenAt: time.Now().UTC(),
	}
	u.PendingEmail = &models.PendingEmail{
		TestID:  def.ID,
		Score:   score,
		Answers: answers,
		Forced:  at.Forced,
	}
	u.ActiveTest = nil
	u.Stage = models.Stage{Kind: models.StageAwaitingEmail, TestID: def.ID}
	if err := h.DB.Put(u); err != nil {
		h.Log.Error().Err(err).Int64("user", u.ChatID).Msg("cannot save test result")
		_ = h.sendText(u.ChatID, content.GenericErrorText)
		return
	}

	edit := tgbotapi.NewEditMessageText(u.ChatID, msg.MessageID,
		fmt.Sprintf("✨ <b>Твой результат:</b>\n\n%s", res.Summary))
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := h.Bot.Send(edit); err != nil {
		h.Log.Warn().Err(err).Int64("user", u.ChatID).Msg("cannot edit result message")
	}
	_ = h.sendText(u.ChatID, content.EmailRequestText)
}

// clearQuestionKeyboard снимает кнопки с отработавшего сообщения вопроса.
func (h *Handler) clearQuestionKeyboard(chatID int64, msg *tgbotapi.Message) {
	if msg == nil {
		return
	}
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, msg.MessageID,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}})
	if _, err := h.Bot.Request(edit); err != nil {
		h.Log.Debug().Err(err).Int64("user", chatID).Msg("cannot clear question keyboard")
	}
}

func questionMessage(def *testengine.Definition, qIdx int) (string, tgbotapi.InlineKeyboardMarkup) {
	q := def.Questions[qIdx]
	text := fmt.Sprintf("<b>%s</b>\n\nВопрос %d из %d:\n%s", def.Name, qIdx+1, len(def.Questions), q.Text)
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options))
	for i, opt := range q.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt.Text,
				fmt.Sprintf("%s%s_%d_%d", prefTestAnswer, def.ID, qIdx, i))))
	}
	return text, tgbotapi.NewInlineKeyboardMarkup(rows...)
}
