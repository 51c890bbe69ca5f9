package domain

// DefaultCatalog returns the built-in taxonomy seeded when no catalog file
// exists yet. Type 1 keeps the legacy tag set verbatim, including the
// homoglyph variant with a latin "c" that crept into real catalogs long ago;
// subtype name tags mirror the codenames this tool itself embeds into
// proposed names, so already renamed files classify again on re-scan.
func DefaultCatalog() Catalog {
	return Catalog{
		{
			ID:          "1",
			DisplayName: "Локальная смета",
			NameTags:    []string{"локальная смета", "лс", "лc"},
			ContentTags: []string{"локальная смета", "локальный сметный расчет"},
			Mask:        "ЛС-ГС-ПНо-ПНл-ВЕРНН-КОММ",
		},
		{
			ID:          "2",
			DisplayName: "Объектная смета",
			NameTags:    []string{"объектная смета", "ос"},
			ContentTags: []string{"объектная смета", "объектный сметный расчет"},
			Mask:        "ОС-ГС-ПНо-ВЕРНН-КОММ",
		},
		{
			ID:          "3",
			DisplayName: "Сводный сметный расчет",
			NameTags:    []string{"сводный сметный расчет", "сср"},
			ContentTags: []string{"сводный сметный расчет"},
			Mask:        "ССР-ГС-ВЕРНН-КОММ",
		},
		{
			ID:          "4",
			DisplayName: TypeSummaryRegister,
			NameTags:    []string{"сводный реестр", "срсд"},
			ContentTags: []string{"сводный реестр сметной документации"},
			Mask:        "СРСД-ВЕРНН-КОММ",
		},
		{
			ID:          "5",
			DisplayName: TypeSpecificCosts,
			NameTags:    []string{"сровз"},
			ContentTags: []string{"отдельные виды затрат"},
			Mask:        "СРОВЗ-ВЕРНН-КОММ",
		},
		{
			ID:          "6",
			DisplayName: TypeMTRCostTable,
			NameTags:    []string{"форма1.3", "форма 1.3"},
			ContentTags: []string{"сравнительная таблица изменения стоимости", "форма 1.3"},
			Mask:        "ФОРМА1.3-ВЕРНН-КОММ",
		},
		{
			ID:          "7",
			DisplayName: TypeOtherExpenses,
			NameTags:    []string{"прочие затраты", "проч"},
			ContentTags: []string{"расчет прочих затрат", "прочие затраты"},
			Mask:        "ПРОЧ-ТИППРОЧ-ВЕРНН-КОММ",
		},
		{
			ID:          "8",
			DisplayName: TypeSupportingDocs,
			NameTags:    []string{"подтв"},
			ContentTags: []string{"подтверждающие документы"},
			Mask:        "ПОДТВ-ТИПДОК-ПНДОК-ВЕРНН-КОММ",
		},
		{
			ID:          "9",
			DisplayName: "Перевозка",
			NameTags:    []string{"перевозка"},
			ContentTags: []string{"перевозк"},
			Mask:        "ПРОЧ-ТИППРОЧ-ВЕРНН-КОММ",
		},
		{
			ID:          "10",
			DisplayName: "Командировочные расходы",
			NameTags:    []string{"командировочные"},
			ContentTags: []string{"командировочн"},
			Mask:        "ПРОЧ-ТИППРОЧ-ВЕРНН-КОММ",
		},
		{
			ID:          "11",
			DisplayName: "Перебазировка",
			NameTags:    []string{"перебазировка"},
			ContentTags: []string{"перебазировк"},
			Mask:        "ПРОЧ-ТИППРОЧ-ВЕРНН-КОММ",
		},
		{
			ID:          "12",
			DisplayName: "Затраты на охрану труда",
			NameTags:    []string{"охранатруда"},
			ContentTags: []string{"охран[уы] труда"},
			Mask:        "ПРОЧ-ТИППРОЧ-ВЕРНН-КОММ",
		},
		{
			ID:          "13",
			DisplayName: "Затраты на проведение пусконаладочных работ (ПНР)",
			NameTags:    []string{"пнр"},
			ContentTags: []string{"пусконаладочн"},
			Mask:        "ПРОЧ-ТИППРОЧ-ВЕРНН-КОММ",
		},
		{
			ID:          "14",
			DisplayName: "Устройство дорог",
			NameTags:    []string{"устройстводорог"},
			ContentTags: []string{"устройств[ао] дорог"},
			Mask:        "ПРОЧ-ТИППРОЧ-ВЕРНН-КОММ",
		},
		{
			ID:          "15",
			DisplayName: "Дополнительные затраты при производстве работ в зимнее время (ЗУ)",
			NameTags:    []string{"зу"},
			ContentTags: []string{"зимнее время", "зимнее удорожание"},
			Mask:        "ПРОЧ-ТИППРОЧ-ВЕРНН-КОММ",
		},
		{
			ID:          "16",
			DisplayName: "Плата за негативное воздействие на окружающую среду (НВОС)",
			NameTags:    []string{"нвос"},
			ContentTags: []string{"негативное воздействие на окружающую среду"},
			Mask:        "ПРОЧ-ТИППРОЧ-ВЕРНН-КОММ",
		},
		{
			ID:          "17",
			DisplayName: "Транспортировка",
			NameTags:    []string{"транспортировка"},
			ContentTags: []string{"транспортировк"},
			Mask:        "ПРОЧ-ТИППРОЧ-ВЕРНН-КОММ",
		},
		{
			ID:          "18",
			DisplayName: "Плавсредства",
			NameTags:    []string{"плавсредства"},
			ContentTags: []string{"плавсредств"},
			Mask:        "ПРОЧ-ТИППРОЧ-ВЕРНН-КОММ",
		},
		{
			ID:          "19",
			DisplayName: "Затраты на мониторинг компонентов окружающей среды (ПЭМ)",
			NameTags:    []string{"пэм"},
			ContentTags: []string{"мониторинг компонентов окружающей среды"},
			Mask:        "ПРОЧ-ТИППРОЧ-ВЕРНН-КОММ",
		},
		{
			ID:          "20",
			DisplayName: "Ведомость объемов работ",
			NameTags:    []string{"вор"},
			ContentTags: []string{"ведомость объемов работ"},
			Mask:        "ПОДТВ-ТИПДОК-ПНДОК-ВЕРНН-КОММ",
		},
		{
			ID:          "21",
			DisplayName: "Дефектная ведомость",
			NameTags:    []string{"дв", "дефектная"},
			ContentTags: []string{"дефектная ведомость"},
			Mask:        "ПОДТВ-ТИПДОК-ПНДОК-ВЕРНН-КОММ",
		},
		{
			ID:          "22",
			DisplayName: "Коммерческое предложение",
			NameTags:    []string{"кп"},
			ContentTags: []string{"коммерческое предложение"},
			Mask:        "ПОДТВ-ТИПДОК-ПНДОК-ВЕРНН-КОММ",
		},
		{
			ID:          "23",
			DisplayName: "Транспортная схема",
			NameTags:    []string{"тс"},
			ContentTags: []string{"транспортная схема"},
			Mask:        "ПОДТВ-ТИПДОК-ПНДОК-ВЕРНН-КОММ",
		},
		{
			ID:          "24",
			DisplayName: "Обоснование к расчету прочих затрат",
			NameTags:    []string{"обоснованиепрочих"},
			ContentTags: []string{"обоснование к расчету прочих затрат"},
			Mask:        "ПОДТВ-ТИПДОК-ПНДОК-ВЕРНН-КОММ",
		},
		{
			ID:          "25",
			DisplayName: "Конъюнктурный анализ",
			NameTags:    []string{"ка", "конъюнктурный анализ"},
			ContentTags: []string{"конъюнктурн"},
			Mask:        "ПОДТВ-ТИПДОК-ПНДОК-ВЕРНН-КОММ",
		},
	}
}
