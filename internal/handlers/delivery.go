package handlers

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"daily-practice-bot/internal/content"
	"daily-practice-bot/internal/models"
	"daily-practice-bot/internal/scheduler"
	"daily-practice-bot/internal/testengine"
)

// DeliverPractice отправляет практику дня в указанный слот. Вечером дней
// предложения после практики уходит приглашение на ключевой тест; утро дня
// без практики (день 14) превращается в обязательное предложение теста.
func (h *Handler) DeliverPractice(chatID int64, slot models.Slot, day int) (scheduler.DeliverResult, error) {
	u, err := h.DB.Get(chatID)
	if err != nil {
		return scheduler.DeliverSkipped, fmt.Errorf("load user %d: %w", chatID, err)
	}
	if u == nil {
		return scheduler.DeliverSkipped, fmt.Errorf("user %d not found", chatID)
	}

	p, ok := content.ForDay(day, slot)
	if !ok {
		if day == content.TotalDays && slot == models.SlotMorning {
			if err := h.offerKeyTest(u, true); err != nil {
				return scheduler.DeliverSkipped, err
			}
			return scheduler.DeliveredOfferOnly, nil
		}
		return scheduler.DeliverSkipped, nil
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(p.ButtonText,
				fmt.Sprintf("%s%d_%s", prefAck, day, slot))),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(content.BuyConsultButtonText, cbBuyConsult)),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(content.MenuButtonText, cbMenuMain)),
	)
	if err := h.sendWithKeyboard(chatID, p.Text, kb); err != nil {
		return scheduler.DeliverSkipped, err
	}

	// Вечером последнего дня предложение обязательное, как и утром без
	// практики.
	if slot == models.SlotEvening && (content.TestOfferDays[day] || day == content.TotalDays) {
		if err := h.offerKeyTest(u, day == content.TotalDays); err != nil {
			h.Log.Warn().Err(err).Int64("user", chatID).Int("day", day).Msg("test offer failed")
		}
	}
	return scheduler.Delivered, nil
}

// offerKeyTest предлагает ключевой тест. Предложение, включая обязательное
// дня 14, пропускается, если пользователь уже в тесте, ждёт почту или уже
// проявил интерес к консультации.
func (h *Handler) offerKeyTest(u *models.UserRecord, forced bool) error {
	if u.ActiveTest != nil || u.Stage.Kind == models.StageAwaitingEmail {
		h.Log.Debug().Int64("user", u.ChatID).Msg("test offer suppressed: flow in progress")
		return nil
	}
	for _, tt := range u.TestsTaken {
		if tt.ConsultInterest {
			h.Log.Debug().Int64("user", u.ChatID).Msg("test offer suppressed: consult interest shown")
			return nil
		}
	}

	def, err := testengine.Get(content.KeyTestID)
	if err != nil {
		return err
	}

	var text string
	var kb tgbotapi.InlineKeyboardMarkup
	if forced {
		text = fmt.Sprintf(content.Day14ForcedTestPromptTemplate, def.Name)
		kb = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(content.Day14ForcedTestButtonText,
					prefStartForced+def.ID+sufStartForced)),
		)
	} else {
		text = fmt.Sprintf(content.TestIntroTextTemplate, def.Name)
		kb = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(content.TestButtonYesText, prefOfferYes+def.ID)),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(content.TestButtonNoText, prefOfferNo+def.ID)),
		)
	}
	if err := h.sendWithKeyboard(u.ChatID, text, kb); err != nil {
		return err
	}

	if forced {
		u.Stage = models.Stage{Kind: models.StageForcedTestOffered, TestID: def.ID}
	} else {
		u.Stage = models.Stage{Kind: models.StageTestOffered, TestID: def.ID}
	}
	return h.DB.Put(u)
}
