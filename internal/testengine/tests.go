package testengine

// Статические определения тестов. Селектор ведёт на тест по выбранному полу.

var tests = map[string]*Definition{
	"gender_selector": {
		ID:       "gender_selector",
		Name:     "Твоя конституция",
		Selector: true,
		Questions: []Question{
			{
				Text: "Для начала выбери, какой тест тебе ближе:",
				Options: []Option{
					{Text: "Я мужчина 👨", NextTestID: "male_constitution_test"},
					{Text: "Я женщина 👩", NextTestID: "female_constitution_test"},
				},
			},
		},
	},
	"male_constitution_test": {
		ID:   "male_constitution_test",
		Name: "Мужская конституция",
		Questions: []Question{
			{
				Text: "Как ты обычно принимаешь важные решения?",
				Options: []Option{
					{Text: "Быстро, по первому импульсу", Weight: 3},
					{Text: "Взвешиваю, но недолго", Weight: 2},
					{Text: "Долго обдумываю все варианты", Weight: 1},
				},
			},
			{
				Text: "Что для тебя значит близость?",
				Options: []Option{
					{Text: "Страсть и энергия", Weight: 3},
					{Text: "Доверие и тепло", Weight: 2},
					{Text: "Спокойствие и надёжность", Weight: 1},
				},
			},
			{
				Text: "Как ты восстанавливаешь силы?",
				Options: []Option{
					{Text: "В движении и действии", Weight: 3},
					{Text: "В общении с близкими", Weight: 2},
					{Text: "В одиночестве и тишине", Weight: 1},
				},
			},
			{
				Text: "Что тебя больше всего заводит в отношениях?",
				Options: []Option{
					{Text: "Новизна и игра", Weight: 3},
					{Text: "Глубина и взаимопонимание", Weight: 2},
					{Text: "Стабильность и забота", Weight: 1},
				},
			},
			{
				Text: "Как ты реагируешь на конфликты?",
				Options: []Option{
					{Text: "Иду напролом", Weight: 3},
					{Text: "Ищу компромисс", Weight: 2},
					{Text: "Ухожу от столкновения", Weight: 1},
				},
			},
		},
		Bands: []Band{
			{
				MaxScore: 7,
				Summary:  "Твой тип — Созерцатель. Твоя сила в глубине, выдержке и умении чувствовать тонкое.",
				Focus:    "раскрытие внутренней энергии и уверенности в близости",
				Detail:   "Созерцателю важно научиться выражать желания прямо: твоя чувствительность — ресурс, а не слабость. Работа с телом и дыханием даст тебе доступ к энергии, которую ты привык сдерживать.",
			},
			{
				MaxScore: 11,
				Summary:  "Твой тип — Хранитель. Ты строишь отношения на доверии и создаёшь пространство, где близость растёт.",
				Focus:    "баланс между заботой о других и собственными желаниями",
				Detail:   "Хранитель часто забывает о себе, отдавая всё партнёру. Твоя задача — вернуть себе право хотеть. Осознанные практики помогут соединить тепло, которое ты даёшь, с огнём, который ты заслуживаешь.",
			},
			{
				MaxScore: 15,
				Summary:  "Твой тип — Завоеватель. Энергия, напор и страсть — твоя стихия.",
				Focus:    "умение замедляться и слышать партнёра",
				Detail:   "Завоевателю легко зажечь, но сложно удержать глубину. Твоя зона роста — присутствие: замедлиться, почувствовать, дать близости раскрыться в её темпе.",
			},
		},
	},
	"female_constitution_test": {
		ID:   "female_constitution_test",
		Name: "Женская конституция",
		Questions: []Question{
			{
				Text: "Как ты чувствуешь своё тело в течение дня?",
				Options: []Option{
					{Text: "Почти не замечаю его", Weight: 1},
					{Text: "Вспоминаю, когда устаю", Weight: 2},
					{Text: "Чувствую и слушаю его", Weight: 3},
				},
			},
			{
				Text: "Что тебе проще всего выразить в близости?",
				Options: []Option{
					{Text: "Нежность", Weight: 1},
					{Text: "Игру и лёгкость", Weight: 2},
					{Text: "Страсть и желание", Weight: 3},
				},
			},
			{
				Text: "Как ты относишься к своим желаниям?",
				Options: []Option{
					{Text: "Часто откладываю их на потом", Weight: 1},
					{Text: "Выбираю, какие себе позволить", Weight: 2},
					{Text: "Следую за ними смело", Weight: 3},
				},
			},
			{
				Text: "Что для тебя удовольствие?",
				Options: []Option{
					{Text: "Редкий гость", Weight: 1},
					{Text: "Награда за труды", Weight: 2},
					{Text: "Естественная часть жизни", Weight: 3},
				},
			},
			{
				Text: "Как ты проявляешь себя в отношениях?",
				Options: []Option{
					{Text: "Подстраиваюсь под партнёра", Weight: 1},
					{Text: "Ищу баланс между нами", Weight: 2},
					{Text: "Веду за собой", Weight: 3},
				},
			},
		},
		Bands: []Band{
			{
				MaxScore: 7,
				Summary:  "Твой тип — Спящая Царевна. Твоя чувственность глубока, но пока дремлет под слоем «надо» и «потом».",
				Focus:    "пробуждение контакта с телом и разрешение себе удовольствия",
				Detail:   "Спящей Царевне важно вернуть себе тело: маленькие ежедневные ритуалы заботы, замедление, внимание к ощущениям. Удовольствие — не награда, а твоё естественное право.",
			},
			{
				MaxScore: 11,
				Summary:  "Твой тип — Хозяйка Равновесия. Ты умеешь балансировать между собой и другими, но иногда теряешь свой огонь в этом балансе.",
				Focus:    "смелость выбирать себя и свои желания первыми",
				Detail:   "Хозяйке Равновесия знаком компромисс, но не всегда — собственный приоритет. Твоя зона роста: позволять желанию звучать громче долга, хотя бы иногда.",
			},
			{
				MaxScore: 15,
				Summary:  "Твой тип — Жрица Огня. Ты в контакте со своей энергией и не боишься её проявлять.",
				Focus:    "углубление близости и тонкая настройка на партнёра",
				Detail:   "Жрица Огня умеет гореть — следующий шаг в том, чтобы огонь грел, а не только сверкал. Практики присутствия и доверия раскроют для тебя новые грани близости.",
			},
		},
	},
}
