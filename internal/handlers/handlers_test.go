package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daily-practice-bot/internal/config"
	"daily-practice-bot/internal/content"
	"daily-practice-bot/internal/models"
	"daily-practice-bot/internal/scheduler"
	"daily-practice-bot/internal/storage"
)

type fakeBot struct {
	sent    []tgbotapi.Chattable
	sendErr error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.sendErr != nil {
		return tgbotapi.Message{}, f.sendErr
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// texts собирает тексты отправленных и отредактированных сообщений по порядку.
func (f *fakeBot) texts() []string {
	var res []string
	for _, c := range f.sent {
		switch m := c.(type) {
		case tgbotapi.MessageConfig:
			res = append(res, m.Text)
		case tgbotapi.EditMessageTextConfig:
			res = append(res, m.Text)
		}
	}
	return res
}

func (f *fakeBot) lastText() string {
	ts := f.texts()
	if len(ts) == 0 {
		return ""
	}
	return ts[len(ts)-1]
}

func (f *fakeBot) containsText(sub string) bool {
	for _, t := range f.texts() {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}

type fakeMailer struct {
	to, subject, body string
	calls             int
	err               error
}

func (f *fakeMailer) Send(recipient, subject, htmlBody string) error {
	f.calls++
	f.to, f.subject, f.body = recipient, subject, htmlBody
	return f.err
}

type fakeSched struct {
	rescheduled []int64
	cancelled   []int64
}

func (f *fakeSched) Reschedule(chatID int64) error {
	f.rescheduled = append(f.rescheduled, chatID)
	return nil
}

func (f *fakeSched) Cancel(chatID int64) { f.cancelled = append(f.cancelled, chatID) }

func testConfig() *config.Config {
	return &config.Config{
		AdminUserIDs:      []int64{999},
		AdminContact:      "admin",
		MainChannelLink:   "https://t.me/example",
		ConsultationPrice: 5000,
		PaymentLink:       "https://pay.example.com",
	}
}

func newTestHandler(t *testing.T) (*Handler, *fakeBot, *fakeMailer, *fakeSched, *storage.DB) {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "bot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	bot := &fakeBot{}
	m := &fakeMailer{}
	sched := &fakeSched{}
	h := New(bot, db, testConfig(), m, zerolog.Nop())
	h.Sched = sched
	return h, bot, m, sched, db
}

func commandMsg(chatID int64, text string, cmdLen int) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: chatID, UserName: "tester", FirstName: "Тест"},
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}},
	}
}

func textMsg(chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: chatID, UserName: "tester", FirstName: "Тест"},
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
	}
}

func callback(chatID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: chatID, UserName: "tester", FirstName: "Тест"},
		Message: &tgbotapi.Message{MessageID: 1, Chat: &tgbotapi.Chat{ID: chatID}, Text: "сообщение"},
		Data:    data,
	}
}

func mustGet(t *testing.T, db *storage.DB, chatID int64) *models.UserRecord {
	t.Helper()
	u, err := db.Get(chatID)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

func TestStart_CreatesUserAndGreets(t *testing.T) {
	h, bot, _, _, db := newTestHandler(t)

	h.HandleCommand(commandMsg(1, "/start", 6))

	u := mustGet(t, db, 1)
	assert.Equal(t, "tester", u.Username)
	assert.Equal(t, models.StageGreeted, u.Stage.Kind)
	assert.False(t, u.Subscribed)
	assert.True(t, bot.containsText("Тамара и Галина"))
	assert.True(t, bot.containsText(content.MenuText))
}

func TestSubscribe(t *testing.T) {
	h, bot, _, sched, db := newTestHandler(t)

	h.HandleCallback(callback(1, cbSubscribe))

	u := mustGet(t, db, 1)
	assert.True(t, u.Subscribed)
	assert.Equal(t, models.ModeDual, u.PracticeMode)
	assert.Equal(t, 1, u.CurrentDay)
	assert.Equal(t, models.StageSubscribed, u.Stage.Kind)
	assert.Equal(t, []int64{1}, sched.rescheduled)
	assert.Equal(t, content.SubscriptionSuccessText, bot.lastText())

	// Повторная подписка ничего не меняет.
	h.HandleCallback(callback(1, cbSubscribe))
	assert.Equal(t, []int64{1}, sched.rescheduled)
	assert.Equal(t, content.SubscriptionAlreadyActiveText, bot.lastText())
}

func TestSubscribe_RestartsCycle(t *testing.T) {
	h, _, _, _, db := newTestHandler(t)
	require.NoError(t, db.Put(&models.UserRecord{
		ChatID: 1, CurrentDay: 6,
		LastMorningSent: "2026-01-09", LastEveningSent: "2026-01-09",
	}))

	h.HandleCallback(callback(1, cbSubscribe))

	// Возврат после отписки начинает цикл заново.
	u := mustGet(t, db, 1)
	assert.Equal(t, 1, u.CurrentDay)
	assert.Empty(t, u.LastMorningSent)
	assert.Empty(t, u.LastEveningSent)
}

func TestUnsubscribe(t *testing.T) {
	h, bot, _, sched, db := newTestHandler(t)
	require.NoError(t, db.Put(&models.UserRecord{ChatID: 1, Subscribed: true, PracticeMode: models.ModeDual, CurrentDay: 4}))

	h.HandleCommand(commandMsg(1, "/stopdaily", 10))

	u := mustGet(t, db, 1)
	assert.False(t, u.Subscribed)
	assert.Equal(t, models.ModeNone, u.PracticeMode)
	assert.Equal(t, models.StageUnsubscribed, u.Stage.Kind)
	assert.Equal(t, []int64{1}, sched.cancelled)
	assert.Equal(t, content.UnsubscribeText, bot.lastText())
	// День сохранён для возможного возвращения.
	assert.Equal(t, 4, u.CurrentDay)
}

func TestUnsubscribe_NotSubscribed(t *testing.T) {
	h, bot, _, sched, _ := newTestHandler(t)

	h.HandleCommand(commandMsg(1, "/stopdaily", 10))

	assert.Empty(t, sched.cancelled)
	assert.Equal(t, content.UnsubscribeNotSubscribedText, bot.lastText())
}

func TestDeliverPractice_Morning(t *testing.T) {
	h, bot, _, _, db := newTestHandler(t)
	require.NoError(t, db.Put(&models.UserRecord{ChatID: 1, Subscribed: true, PracticeMode: models.ModeDual, CurrentDay: 2}))

	res, err := h.DeliverPractice(1, models.SlotMorning, 2)
	require.NoError(t, err)
	assert.Equal(t, scheduler.Delivered, res)
	assert.True(t, bot.containsText("День 2. Утро."))
	// Обычное утро без предложения теста.
	assert.False(t, bot.containsText("Время заглянуть в себя"))
}

func TestDeliverPractice_OfferDayEvening(t *testing.T) {
	h, bot, _, _, db := newTestHandler(t)
	require.NoError(t, db.Put(&models.UserRecord{ChatID: 1, Subscribed: true, PracticeMode: models.ModeDual, CurrentDay: 3}))

	res, err := h.DeliverPractice(1, models.SlotEvening, 3)
	require.NoError(t, err)
	assert.Equal(t, scheduler.Delivered, res)
	assert.True(t, bot.containsText("День 3. Вечер."))
	assert.True(t, bot.containsText("Время заглянуть в себя"))

	u := mustGet(t, db, 1)
	assert.Equal(t, models.StageTestOffered, u.Stage.Kind)
	assert.Equal(t, content.KeyTestID, u.Stage.TestID)
}

func TestDeliverPractice_NonOfferDayEvening(t *testing.T) {
	h, bot, _, _, db := newTestHandler(t)
	require.NoError(t, db.Put(&models.UserRecord{ChatID: 1, Subscribed: true, PracticeMode: models.ModeDual, CurrentDay: 4}))

	res, err := h.DeliverPractice(1, models.SlotEvening, 4)
	require.NoError(t, err)
	assert.Equal(t, scheduler.Delivered, res)
	assert.False(t, bot.containsText("Время заглянуть в себя"))
}

func TestDeliverPractice_Day14MorningForcedOffer(t *testing.T) {
	h, bot, _, _, db := newTestHandler(t)
	require.NoError(t, db.Put(&models.UserRecord{ChatID: 1, Subscribed: true, PracticeMode: models.ModeDual, CurrentDay: 14}))

	res, err := h.DeliverPractice(1, models.SlotMorning, 14)
	require.NoError(t, err)
	assert.Equal(t, scheduler.DeliveredOfferOnly, res)
	assert.True(t, bot.containsText("Две недели волшебства"))
	assert.Equal(t, models.StageForcedTestOffered, mustGet(t, db, 1).Stage.Kind)
}

func TestDeliverPractice_Day14EveningForcedOffer(t *testing.T) {
	h, bot, _, _, db := newTestHandler(t)
	require.NoError(t, db.Put(&models.UserRecord{ChatID: 1, Subscribed: true, PracticeMode: models.ModeDual, CurrentDay: 14}))

	res, err := h.DeliverPractice(1, models.SlotEvening, 14)
	require.NoError(t, err)
	assert.Equal(t, scheduler.Delivered, res)
	assert.True(t, bot.containsText("День 14. Вечер."))
	// Вечер последнего дня несёт обязательное предложение, не обычное.
	assert.True(t, bot.containsText("Две недели волшебства"))
	assert.False(t, bot.containsText("Время заглянуть в себя"))
	assert.Equal(t, models.StageForcedTestOffered, mustGet(t, db, 1).Stage.Kind)
}

func TestDeliverPractice_ForcedOfferSuppressedByConsultInterest(t *testing.T) {
	h, bot, _, _, db := newTestHandler(t)
	require.NoError(t, db.Put(&models.UserRecord{
		ChatID: 1, Subscribed: true, PracticeMode: models.ModeDual, CurrentDay: 14,
		Stage: models.Stage{Kind: models.StageConsultRequested, TestID: "male_constitution_test"},
		TestsTaken: map[string]models.TestTaken{
			"male_constitution_test": {ConsultInterest: true},
		},
	}))

	res, err := h.DeliverPractice(1, models.SlotMorning, 14)
	require.NoError(t, err)
	// Дата всё равно штампуется, чтобы триггер не сработал повторно.
	assert.Equal(t, scheduler.DeliveredOfferOnly, res)
	assert.False(t, bot.containsText("Две недели волшебства"))
	assert.Equal(t, models.StageConsultRequested, mustGet(t, db, 1).Stage.Kind)
}

func TestDeliverPractice_OfferSuppressedByConsultInterest(t *testing.T) {
	h, bot, _, _, db := newTestHandler(t)
	require.NoError(t, db.Put(&models.UserRecord{
		ChatID: 1, Subscribed: true, PracticeMode: models.ModeDual, CurrentDay: 5,
		TestsTaken: map[string]models.TestTaken{
			"male_constitution_test": {ConsultInterest: true},
		},
	}))

	res, err := h.DeliverPractice(1, models.SlotEvening, 5)
	require.NoError(t, err)
	assert.Equal(t, scheduler.Delivered, res)
	assert.False(t, bot.containsText("Время заглянуть в себя"))
}

func TestDeliverPractice_OfferSuppressedMidTest(t *testing.T) {
	h, bot, _, _, db := newTestHandler(t)
	require.NoError(t, db.Put(&models.UserRecord{
		ChatID: 1, Subscribed: true, PracticeMode: models.ModeDual, CurrentDay: 5,
		ActiveTest: &models.ActiveTest{TestID: "male_constitution_test", Answers: []int{0}},
	}))

	_, err := h.DeliverPractice(1, models.SlotEvening, 5)
	require.NoError(t, err)
	assert.False(t, bot.containsText("Время заглянуть в себя"))
}

func TestDeliverPractice_BlockedUser(t *testing.T) {
	h, bot, _, _, db := newTestHandler(t)
	require.NoError(t, db.Put(&models.UserRecord{ChatID: 1, Subscribed: true, PracticeMode: models.ModeDual, CurrentDay: 2}))
	bot.sendErr = errors.New("Forbidden: bot was blocked by the user")

	_, err := h.DeliverPractice(1, models.SlotMorning, 2)
	require.Error(t, err)
	assert.True(t, scheduler.IsPermanentDeliveryErr(err))
}

func TestDeclineTest(t *testing.T) {
	h, bot, _, _, db := newTestHandler(t)
	require.NoError(t, db.Put(&models.UserRecord{
		ChatID: 1, Subscribed: true, PracticeMode: models.ModeDual, CurrentDay: 3,
		Stage: models.Stage{Kind: models.StageTestOffered, TestID: content.KeyTestID},
	}))

	h.HandleCallback(callback(1, prefOfferNo+content.KeyTestID))

	u := mustGet(t, db, 1)
	assert.Equal(t, models.StageTestDeclined, u.Stage.Kind)
	assert.Equal(t, content.TestDeclinedText, bot.lastText())
}

// Полный путь: предложение теста, селектор, вопросы, почта, консультация.
func TestFullTestFlow(t *testing.T) {
	h, bot, m, _, db := newTestHandler(t)
	require.NoError(t, db.Put(&models.UserRecord{
		ChatID: 10, Subscribed: true, PracticeMode: models.ModeDual, CurrentDay: 3,
		TestsTaken: map[string]models.TestTaken{},
	}))

	res, err := h.DeliverPractice(10, models.SlotEvening, 3)
	require.NoError(t, err)
	require.Equal(t, scheduler.Delivered, res)

	h.HandleCallback(callback(10, prefOfferYes+content.KeyTestID))
	u := mustGet(t, db, 10)
	require.NotNil(t, u.ActiveTest)
	assert.Equal(t, content.KeyTestID, u.ActiveTest.TestID)
	assert.Equal(t, models.StageInTest, u.Stage.Kind)

	// Селектор ведёт на мужской тест, сохраняя день происхождения.
	h.HandleCallback(callback(10, fmt.Sprintf("%s%s_0_0", prefTestAnswer, content.KeyTestID)))
	u = mustGet(t, db, 10)
	require.NotNil(t, u.ActiveTest)
	assert.Equal(t, "male_constitution_test", u.ActiveTest.TestID)
	assert.Equal(t, 0, u.ActiveTest.QuestionIdx)
	assert.Equal(t, 3, u.ActiveTest.OriginDay)

	for q := 0; q < 5; q++ {
		h.HandleCallback(callback(10, fmt.Sprintf("%smale_constitution_test_%d_0", prefTestAnswer, q)))
	}

	u = mustGet(t, db, 10)
	assert.Nil(t, u.ActiveTest)
	require.NotNil(t, u.PendingEmail)
	assert.Equal(t, "male_constitution_test", u.PendingEmail.TestID)
	assert.Equal(t, 15, u.PendingEmail.Score)
	assert.Equal(t, models.StageAwaitingEmail, u.Stage.Kind)
	require.Contains(t, u.TestsTaken, "male_constitution_test")
	assert.True(t, bot.containsText(content.EmailRequestText))

	// Кривой адрес переспрашивается, состояние не меняется.
	h.HandleText(textMsg(10, "не почта"))
	assert.Equal(t, content.EmailInvalidText, bot.lastText())
	u = mustGet(t, db, 10)
	assert.Equal(t, models.StageAwaitingEmail, u.Stage.Kind)
	require.NotNil(t, u.PendingEmail)

	h.HandleText(textMsg(10, "user@example.com"))
	assert.Equal(t, 1, m.calls)
	assert.Equal(t, "user@example.com", m.to)
	assert.Contains(t, m.subject, "Мужская конституция")
	assert.Contains(t, m.body, "Завоеватель")

	u = mustGet(t, db, 10)
	assert.Equal(t, "user@example.com", u.Email)
	assert.Nil(t, u.PendingEmail)
	assert.Equal(t, models.StagePostEmailOffer, u.Stage.Kind)
	assert.Equal(t, "sent", u.TestsTaken["male_constitution_test"].EmailStatus)
	assert.True(t, bot.containsText(content.ConsultOfferText))

	h.HandleCallback(callback(10, prefConsultYes+"male_constitution_test"))
	u = mustGet(t, db, 10)
	assert.Equal(t, models.StageConsultRequested, u.Stage.Kind)
	assert.True(t, u.TestsTaken["male_constitution_test"].ConsultInterest)
	assert.True(t, bot.containsText("Стоимость: 5000₽"))
}

func TestConsultOffer_ThinkButtonOnlyWhenForced(t *testing.T) {
	h, bot, _, _, db := newTestHandler(t)
	require.NoError(t, db.Put(&models.UserRecord{
		ChatID: 1, Subscribed: true, PracticeMode: models.ModeDual, CurrentDay: 14,
		Stage:        models.Stage{Kind: models.StageAwaitingEmail, TestID: "female_constitution_test"},
		PendingEmail: &models.PendingEmail{TestID: "female_constitution_test", Score: 9, Answers: []int{1, 1, 1, 0, 2}, Forced: true},
		TestsTaken:   map[string]models.TestTaken{},
	}))

	h.HandleText(textMsg(1, "user@example.com"))

	labels := consultOfferLabels(t, bot)
	assert.Contains(t, labels, content.ConsultButtonThinkText, "после обязательного теста есть кнопка «подумать»")
	assert.NotContains(t, labels, content.ConsultButtonNoText)
}

// consultOfferLabels возвращает подписи кнопок отправленного предложения
// консультации.
func consultOfferLabels(t *testing.T, bot *fakeBot) []string {
	t.Helper()
	var offer *tgbotapi.MessageConfig
	for i := range bot.sent {
		if mc, ok := bot.sent[i].(tgbotapi.MessageConfig); ok && mc.Text == content.ConsultOfferText {
			offer = &mc
			break
		}
	}
	require.NotNil(t, offer)
	kb, ok := offer.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)

	var labels []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			labels = append(labels, btn.Text)
		}
	}
	return labels
}

// Тест, принятый из обычного вечернего предложения дня 14, тоже получает
// вариант «подумать».
func TestConsultOffer_ThinkButtonOnLastDayWithoutForcedFlag(t *testing.T) {
	h, bot, _, _, db := newTestHandler(t)
	require.NoError(t, db.Put(&models.UserRecord{
		ChatID: 1, Subscribed: true, PracticeMode: models.ModeDual, CurrentDay: 14,
		Stage:        models.Stage{Kind: models.StageAwaitingEmail, TestID: "female_constitution_test"},
		PendingEmail: &models.PendingEmail{TestID: "female_constitution_test", Score: 9, Answers: []int{1, 1, 1, 0, 2}},
		TestsTaken:   map[string]models.TestTaken{},
	}))

	h.HandleText(textMsg(1, "user@example.com"))

	assert.Contains(t, consultOfferLabels(t, bot), content.ConsultButtonThinkText)
}

func TestConsultOffer_NoThinkButtonOnRegularDay(t *testing.T) {
	h, bot, _, _, db := newTestHandler(t)
	require.NoError(t, db.Put(&models.UserRecord{
		ChatID: 1, Subscribed: true, PracticeMode: models.ModeDual, CurrentDay: 5,
		Stage:        models.Stage{Kind: models.StageAwaitingEmail, TestID: "female_constitution_test"},
		PendingEmail: &models.PendingEmail{TestID: "female_constitution_test", Score: 9, Answers: []int{1, 1, 1, 0, 2}},
		TestsTaken:   map[string]models.TestTaken{},
	}))

	h.HandleText(textMsg(1, "user@example.com"))

	labels := consultOfferLabels(t, bot)
	assert.NotContains(t, labels, content.ConsultButtonThinkText)
	assert.Contains(t, labels, content.ConsultButtonNoText)
}

func TestConsultThink_SwitchesToMorningOnly(t *testing.T) {
	h, bot, _, sched, db := newTestHandler(t)
	require.NoError(t, db.Put(&models.UserRecord{
		ChatID: 1, Subscribed: true, PracticeMode: models.ModeDual, CurrentDay: 14,
		Stage: models.Stage{Kind: models.StagePostEmailOffer, TestID: "female_constitution_test"},
	}))

	h.HandleCallback(callback(1, prefConsultThink+"female_constitution_test"))

	u := mustGet(t, db, 1)
	assert.Equal(t, models.ModeMorningOnly, u.PracticeMode)
	assert.True(t, u.Subscribed)
	assert.Equal(t, models.StageConsultThinking, u.Stage.Kind)
	assert.Equal(t, []int64{1}, sched.rescheduled)
	assert.True(t, bot.containsText("@admin"))
}

func TestEmailDataError(t *testing.T) {
	h, bot, _, _, db := newTestHandler(t)
	require.NoError(t, db.Put(&models.UserRecord{
		ChatID: 1, Subscribed: true, PracticeMode: models.ModeDual, CurrentDay: 5,
		Stage: models.Stage{Kind: models.StageAwaitingEmail, TestID: "male_constitution_test"},
	}))

	h.HandleText(textMsg(1, "user@example.com"))

	u := mustGet(t, db, 1)
	assert.Equal(t, models.StageEmailDataError, u.Stage.Kind)
	assert.Nil(t, u.PendingEmail)
	assert.Equal(t, content.EmailDataError, bot.lastText())
}

func TestEmailSendFailure(t *testing.T) {
	h, bot, m, _, db := newTestHandler(t)
	m.err = errors.New("smtp auth: 535")
	require.NoError(t, db.Put(&models.UserRecord{
		ChatID: 1, Subscribed: true, PracticeMode: models.ModeDual, CurrentDay: 5,
		Stage:        models.Stage{Kind: models.StageAwaitingEmail, TestID: "male_constitution_test"},
		PendingEmail: &models.PendingEmail{TestID: "male_constitution_test", Score: 10, Answers: []int{1, 1, 1, 1, 2}},
		TestsTaken:   map[string]models.TestTaken{"male_constitution_test": {}},
	}))

	h.HandleText(textMsg(1, "user@example.com"))

	u := mustGet(t, db, 1)
	assert.Equal(t, "failed", u.TestsTaken["male_constitution_test"].EmailStatus)
	assert.Equal(t, models.StagePostEmailOffer, u.Stage.Kind)
	assert.True(t, bot.containsText("свяжись с администратором @admin"))
	// Консультация предлагается и после сбоя почты.
	assert.True(t, bot.containsText(content.ConsultOfferText))
}

func TestStaleAnswerCallback(t *testing.T) {
	h, bot, _, _, db := newTestHandler(t)
	require.NoError(t, db.Put(&models.UserRecord{
		ChatID: 1, Subscribed: true, PracticeMode: models.ModeDual, CurrentDay: 5,
		ActiveTest: &models.ActiveTest{TestID: "male_constitution_test", QuestionIdx: 2, Answers: []int{0, 0}},
	}))

	// Кнопка от уже отвеченного вопроса.
	h.HandleCallback(callback(1, prefTestAnswer+"male_constitution_test_0_1"))

	u := mustGet(t, db, 1)
	assert.Equal(t, []int{0, 0}, u.ActiveTest.Answers)
	assert.Equal(t, content.TestStateErrorText, bot.lastText())
}

func TestSetDay_AdminOnly(t *testing.T) {
	h, bot, _, sched, db := newTestHandler(t)
	require.NoError(t, db.Put(&models.UserRecord{
		ChatID: 1, Subscribed: true, PracticeMode: models.ModeDual, CurrentDay: 2,
		LastMorningSent: "2026-01-10",
	}))

	h.HandleCommand(commandMsg(1, "/setday 5", 7))

	assert.Equal(t, 2, mustGet(t, db, 1).CurrentDay)
	assert.Empty(t, sched.rescheduled)
	assert.True(t, bot.containsText(content.MenuText))
}

func TestSetDay_Admin(t *testing.T) {
	h, _, _, sched, db := newTestHandler(t)
	require.NoError(t, db.Put(&models.UserRecord{
		ChatID: 1, Subscribed: true, PracticeMode: models.ModeDual, CurrentDay: 2,
		LastMorningSent: "2026-01-10", LastEveningSent: "2026-01-10",
	}))

	h.HandleCommand(commandMsg(999, "/setday 5 1", 7))

	u := mustGet(t, db, 1)
	assert.Equal(t, 5, u.CurrentDay)
	assert.Empty(t, u.LastMorningSent, "дата-ключ сброшен для повторной отправки")
	assert.Empty(t, u.LastEveningSent)
	assert.Equal(t, models.StageAdminSetDay, u.Stage.Kind)
	assert.Equal(t, []int64{1}, sched.rescheduled)
}

func TestSetDay_RejectsBadDay(t *testing.T) {
	h, bot, _, _, _ := newTestHandler(t)

	h.HandleCommand(commandMsg(999, "/setday 20", 7))
	assert.True(t, bot.containsText("от 1 до 14"))
}

func TestParseAnswerData(t *testing.T) {
	tests := []struct {
		body   string
		testID string
		q, a   int
		ok     bool
	}{
		{"male_constitution_test_2_1", "male_constitution_test", 2, 1, true},
		{"gender_selector_0_0", "gender_selector", 0, 0, true},
		{"x_10_3", "x", 10, 3, true},
		{"noseparators", "", 0, 0, false},
		{"only_one_part", "", 0, 0, false},
		{"test_a_b", "", 0, 0, false},
	}
	for _, tc := range tests {
		testID, q, a, ok := parseAnswerData(tc.body)
		assert.Equal(t, tc.ok, ok, tc.body)
		if tc.ok {
			assert.Equal(t, tc.testID, testID, tc.body)
			assert.Equal(t, tc.q, q, tc.body)
			assert.Equal(t, tc.a, a, tc.body)
		}
	}
}

func TestLooksLikeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@b.co", true},
		{"user.name@mail.example.ru", true},
		{"no-at-sign", false},
		{"@leading.at", false},
		{"trailing@", false},
		{"no@dot", false},
		{"dot@.start", false},
		{"dot@end.", false},
		{"spa ce@mail.ru", false},
		{"", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, looksLikeEmail(tc.in), tc.in)
	}
}
