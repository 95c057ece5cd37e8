package dialogue

// User-facing prompts and error messages. Kept as package constants so tests
// and handlers reference one source of truth.
const (
	PromptWeight          = "Введите ваш вес (в кг):"
	PromptHeight          = "Введите ваш рост (в см):"
	PromptAge             = "Введите ваш возраст:"
	PromptActivityMinutes = "Сколько минут активности у вас в день? (Если активности нет, то укажите 0)"
	PromptActivityType    = "Укажите тип активности:"
	PromptCity            = "В каком городе вы находитесь? (введите название на английском)"
	PromptFoodWeight      = "Сколько грамм вы съели?"
	PromptWorkoutMinutes  = "Сколько минут вы занимались?"

	MsgWeightFormat        = "Неверный формат веса. Попробуйте снова:"
	MsgWeightRange         = "Введенный вес некорректен. Попробуйте снова:"
	MsgHeightFormat        = "Неверный формат роста. Попробуйте снова:"
	MsgHeightRange         = "Введенный рост некорректен. Попробуйте снова:"
	MsgAgeFormat           = "Неверный формат возраста. Попробуйте снова:"
	MsgAgeRange            = "Введенный возраст некорректен. Попробуйте снова:"
	MsgMinutesFormat       = "Неверный формат времени активности. Попробуйте снова:"
	MsgMinutesRange        = "Введенное время некорректно. Попробуйте снова:"
	MsgUnknownActivity     = "Неизвестная активность. Выберите из предложенных вариантов."
	MsgCityEmpty           = "Название города не может быть пустым. Попробуйте снова:"
	MsgFoodWeightFormat    = "Пожалуйста, введите вес в граммах."
	MsgFoodWeightRange     = "Введенная масса некорректна. Попробуйте снова:"
	MsgProfileSaved        = "Профиль успешно создан!"
	MsgFoodLookupFailed    = "Возникла ошибка при получении калорийности. Попробуйте еще раз."
	MsgNeedStart           = "Сначала введите команду /start"
	MsgProfileIncomplete   = "Данные профиля не заполнены. Используйте команду /set_profile."
	MsgWaterUsage          = "Пожалуйста, укажите количество выпитой воды в мл после команды /log_water."
	MsgWaterFormat         = "Количество должно быть числом. Попробуйте еще раз."
	MsgWaterRange          = "Введенный объем воды некорректен. Попробуйте снова:"
	MsgWaterGoalReached    = "Поздравляем! Норма воды выполнена!"
	MsgFoodUsage           = "Пожалуйста, укажите название продукта после команды /log_food."
	MsgFoodLogged          = "Записано %d ккал."
	MsgWaterLeft           = "Осталось выпить %d мл воды."
	MsgWorkoutLogged       = "На тренировке \"%s\" вы сожгли %d ккал. Дополнительно выпейте %d мл воды."
)
