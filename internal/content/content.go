// Package content держит статический каталог ежедневных практик.
// Тексты — справочные данные, логика бота от их содержимого не зависит.
package content

import "daily-practice-bot/internal/models"

// TotalDays is the length of the daily practice cycle; the day cursor wraps
// back to 1 after it.
const TotalDays = 14

// KeyTestID is the branching selector test offered on TestOfferDays.
const KeyTestID = "gender_selector"

// TestOfferDays are the evenings after which the key test is offered.
// Day 14 is handled separately as the forced offer.
var TestOfferDays = map[int]bool{
	3:  true,
	5:  true,
	7:  true,
	9:  true,
	11: true,
	13: true,
}

// Practice is one deliverable practice message.
type Practice struct {
	Text       string
	ButtonText string
}

// ForDay returns the practice for the day and slot, or ok=false when the
// catalog has nothing for it.
func ForDay(day int, slot models.Slot) (Practice, bool) {
	d, ok := days[day]
	if !ok {
		return Practice{}, false
	}
	var p *Practice
	if slot == models.SlotMorning {
		p = d.morning
	} else {
		p = d.evening
	}
	if p == nil {
		return Practice{}, false
	}
	return *p, true
}

type dayContent struct {
	morning *Practice
	evening *Practice
}

func practice(text string) *Practice {
	return &Practice{Text: text, ButtonText: CommonAckButtonText}
}

// CommonAckButtonText подтверждает выполнение практики.
const CommonAckButtonText = "Сделано ✅"

// День 14 без утренней практики: вместо неё уходит обязательное
// предложение ключевого теста.
var days = map[int]dayContent{
	1: {
		morning: practice("🌅 <b>День 1. Утро.</b>\nНачни день с трёх глубоких вдохов. Запиши одну вещь, за которую ты благодарна себе."),
		evening: practice("🌙 <b>День 1. Вечер.</b>\nПеред сном вспомни момент дня, когда ты чувствовала себя уверенно. Задержись в этом ощущении."),
	},
	2: {
		morning: practice("🌅 <b>День 2. Утро.</b>\nПосмотри на себя в зеркало и скажи вслух три комплимента. Не отводи взгляд."),
		evening: practice("🌙 <b>День 2. Вечер.</b>\nПотянись всем телом, медленно, с удовольствием. Заметь, где живёт напряжение."),
	},
	3: {
		morning: practice("🌅 <b>День 3. Утро.</b>\nВыбери сегодня одну вещь, которую сделаешь только для себя. Маленькую, но свою."),
		evening: practice("🌙 <b>День 3. Вечер.</b>\nЗапиши, что нового ты узнала о себе за эти три дня."),
	},
	4: {
		morning: practice("🌅 <b>День 4. Утро.</b>\nПеред выходом из дома улыбнись себе. Настроение — это тоже практика."),
		evening: practice("🌙 <b>День 4. Вечер.</b>\nВключи любимую музыку и подвигайся пять минут, как хочется телу."),
	},
	5: {
		morning: practice("🌅 <b>День 5. Утро.</b>\nСегодня замечай моменты, когда ты говоришь себе «нет». Просто замечай."),
		evening: practice("🌙 <b>День 5. Вечер.</b>\nНапиши список из пяти своих желаний. Без цензуры."),
	},
	6: {
		morning: practice("🌅 <b>День 6. Утро.</b>\nСделай сегодня что-то чуть медленнее обычного: завтрак, дорогу, разговор."),
		evening: practice("🌙 <b>День 6. Вечер.</b>\nВспомни, что сегодня тебя порадовало. Поблагодари этот момент."),
	},
	7: {
		morning: practice("🌅 <b>День 7. Утро.</b>\nНеделя позади! Отметь свой прогресс — ты занимаешься собой уже семь дней."),
		evening: practice("🌙 <b>День 7. Вечер.</b>\nУстрой себе маленький ритуал заботы: ванна, чай, тишина — что откликается."),
	},
	8: {
		morning: practice("🌅 <b>День 8. Утро.</b>\nСформулируй намерение на день одним словом. Возвращайся к нему."),
		evening: practice("🌙 <b>День 8. Вечер.</b>\nПоложи руку на сердце и послушай три удара. Ты здесь, и этого достаточно."),
	},
	9: {
		morning: practice("🌅 <b>День 9. Утро.</b>\nСегодня скажи «да» чему-то, от чего обычно отказываешься из осторожности."),
		evening: practice("🌙 <b>День 9. Вечер.</b>\nЗапиши одну границу, которую хочешь укрепить. Первое предложение уже шаг."),
	},
	10: {
		morning: practice("🌅 <b>День 10. Утро.</b>\nВыбери одежду, в которой чувствуешь себя собой, а не «как надо»."),
		evening: practice("🌙 <b>День 10. Вечер.</b>\nПеред сном отпусти одну мысль, которая крутилась весь день. Выдохни её."),
	},
	11: {
		morning: practice("🌅 <b>День 11. Утро.</b>\nНачни день без телефона: первые десять минут только твои."),
		evening: practice("🌙 <b>День 11. Вечер.</b>\nВспомни человека, рядом с которым тебе легко. Что в этом контакте твоего?"),
	},
	12: {
		morning: practice("🌅 <b>День 12. Утро.</b>\nПохвали себя за то, что обычно считаешь «само собой разумеющимся»."),
		evening: practice("🌙 <b>День 12. Вечер.</b>\nПомечтай пять минут без «но». Просто картинки, просто желания."),
	},
	13: {
		morning: practice("🌅 <b>День 13. Утро.</b>\nЗадай себе вопрос: чего я хочу прямо сейчас? И дай себе это, если можешь."),
		evening: practice("🌙 <b>День 13. Вечер.</b>\nНапиши письмо себе четырнадцатидневной давности. Что ты ей скажешь?"),
	},
	14: {
		evening: practice("🌙 <b>День 14. Вечер.</b>\nДве недели практик позади. Поблагодари себя — ты прошла этот путь. Завтра цикл начнётся заново, и он раскроется глубже."),
	},
}
