package content

// Копирайтинг бота. Плейсхолдеры подставляются через fmt.Sprintf.

const (
	WelcomeText = "Привет!\n" +
		"С тобой Тамара и Галина.\n\n" +
		"Мы здесь, чтобы поддерживать тебя на пути изменений🔝\n" +
		"Ты будешь получать небольшие задания каждый день💬\n" +
		"Они помогут тебе обрести уверенность,\n" +
		"раскрыть свою сексуальность и двигаться на встречу к мечтам.\n\n" +
		"В нашем боте тебя ждут тесты, которые помогут лучше узнать себя."

	MenuText = "📖 Главное меню\n\n" +
		"Здесь ты можешь запустить ежедневные практики или узнать больше о нашем канале.\n" +
		"Выбери, что тебе интересно! ✨"

	SubscribeButtonText   = "✨ Запустить подписку на практики"
	StopButtonText        = "⏸️ Остановить практики"
	MainChannelButtonText = "А что у вас в главном канале? ➡️"
	MenuButtonText        = "📖 В меню"
	BuyConsultButtonText  = "Купить консультацию"

	SubscriptionSuccessText = "Ты активировал мотивационного помощника 🤖\n" +
		"Ежедневно ты будешь получать утренние практики для работы с мышлением 🧠,\n" +
		"а во второй половине дня — практики для погружения в телесность и сексуальность ✨\n" +
		"Чтобы не пропускать сообщения с практиками, закрепи бота 📌 и включи уведомления 🔊"
	SubscriptionAlreadyActiveText = "Ты уже наш(а) волшебник(ца)! 💫 Продолжай в том же духе, всё идет отлично! 😉"
	UnsubscribeText               = "Жаль расставаться... 😢 Ты отписался(лась) от ежедневной магии. Если передумаешь, я всегда здесь – просто напиши /start и возвращайся!"
	UnsubscribeNotSubscribedText  = "Кажется, ты еще не подписан(а) на ежедневные практики. Хочешь начать? Нажми /start."

	// %s — название теста.
	TestIntroTextTemplate = "🔮 Время заглянуть в себя! Хочешь узнать кое-что интересное о своей уникальности с помощью теста «%s»?"
	TestButtonYesText     = "✨ Да, хочу пройти!"
	TestButtonNoText      = "Позже, спасибо 🌸"
	TestDeclinedText      = "Позже, спасибо 🌸\n\nПрактики продолжатся. 😊"
	TestNotFoundText      = "Ошибка: Тест не найден."
	TestStateErrorText    = "Ошибка состояния теста. Попробуйте из /menu."
	TestAnswerErrorText   = "Ошибка в данных ответа. Попробуйте снова."
	TestResultErrorText   = "Произошла ошибка при обработке результатов теста. Пожалуйста, попробуйте позже."

	// %s — название теста.
	Day14ForcedTestPromptTemplate = "🌷 Две недели волшебства пролетели незаметно! ✨\n" +
		"Чтобы наше путешествие стало еще глубже, предлагаю тебе особенный тест «%s». " +
		"Даже если ты его уже проходил(а), сейчас он может раскрыться по-новому! " +
		"Его результаты – это ключик к самому важному. 🗝️💖"
	Day14ForcedTestButtonText = "✨ Пройти тест сейчас!"

	EmailRequestText = "🎉 Супер! Тест пройден! 💌\nЧтобы получить ПОЛНУЮ расшифровку с сочными деталями прямо на почту, просто напиши свой email ниже 👇"
	EmailInvalidText = "Ой, кажется, это не совсем похоже на email... 🙈 Попробуешь еще разок, пожалуйста? 😊"
	EmailDataError   = "Ошибка данных теста. Попробуйте снова из /menu."

	// %s — email.
	EmailSentSuccessTemplate = "💌 Отлично! Подробные результаты теста уже летят на твою почту %s. Проверяй входящие (и папку «Спам», на всякий случай 😉)!"
	// 1-й %s — email, 2-й — username администратора.
	EmailSentFailureTemplate = "Ой, что-то пошло не так при отправке письма на %s... 😥 Пожалуйста, попробуй еще раз чуть позже или свяжись с администратором @%s."

	ConsultOfferText = "💖 Хочешь раскрыть всю глубину этих знаний о себе?\n" +
		"Предлагаю тебе персональную консультацию, где мы вместе:\n" +
		"✨ Расшифруем каждый аспект результатов\n" +
		"🗝️ Найдем твои уникальные сильные стороны и зоны роста\n" +
		"🗺️ Наметим путь к еще большей гармонии!"

	// %d — цена в рублях.
	ConsultButtonYesTemplate   = "Да, хочу консультацию (%d₽) 💖"
	ConsultButtonNoText        = "Спасибо, не сейчас 🙏"
	ConsultButtonThinkText     = "Мне нужно подумать... 🤔"
	ConsultDeclinedText        = "Понимаю тебя! 🥰 Если что-то изменится или появятся вопросики – я тут! Продолжай наслаждаться практиками! 💖"
	// %s — username администратора.
	ConsultThinkLaterTemplate = "Конечно, время подумать – это важно! 🧘‍♀️\n" +
		"Я буду рядом и продолжу присылать тебе утренние лучики вдохновения. ☀️\n" +
		"Если решишься на глубокое погружение с консультацией, просто напиши нашему администратору @%s. Она всё подскажет! 😉"

	// 1-й %d — цена, %s — остаётся текстом кнопки оплаты.
	PaymentInfoTemplate = "✨ Вы на пороге глубоких открытий о себе!\n\n" +
		"Персональная консультация — это ваш шанс не просто получить результаты теста, " +
		"а превратить их в реальные изменения в жизни.\n\n" +
		"Стоимость: %d₽\n\n" +
		"Выберите удобный способ оплаты:"
	PaymentLinkButtonText    = "💳 Оплатить по ссылке"
	PaymentConfirmButtonText = "✅ Я оплатил(а)"
	PaymentThanksText        = "🙏 Спасибо! Мы получили ваше уведомление об оплате. В ближайшее время администратор проверит информацию и свяжется с вами."

	GenericErrorText = "Ой, что-то пошло не так... 😥 Попробуйте, пожалуйста, немного позже или вернитесь в /menu."
)
