package domain

import "regexp"

// Naming grammar literals shared by every synthesized name. VersionNumber is
// reserved for revision suffixes and stays empty for baseline documents.
const (
	VersionBase   = "БАЗ"
	VersionNumber = ""
)

// LockNamePrefix marks Office lock/temp files that traversal leaves out.
const LockNamePrefix = "~$"

// Family-head display names. These two types are catch-alls: a hit on them
// never ends a classification phase and their own codename stays unknown.
const (
	TypeOtherExpenses  = "Расчеты на прочие затраты"
	TypeSupportingDocs = "Подтверждающие документы"
)

// Display names whose proposed name is a fixed constant.
const (
	TypeSummaryRegister = "Сводный реестр сметной документации"
	TypeSpecificCosts   = "Сметные расчеты на отдельные виды затрат"
	TypeMTRCostTable    = "Сравнительная таблица изменения стоимости МТР по договору подряда (Форма 1.3)"
)

const (
	OtherExpensesConst  = "ПРОЧ"
	SupportingDocsConst = "ПОДТВ"

	// OtherJustificationCodename carries an extra literal before its
	// sequence number, see SupportingDocCodenames.
	OtherJustificationCodename = "ОбоснованиеПрочих"
	OtherJustificationLiteral  = "ТИППРОЧ"
)

// EstimateRule drives estimate-number extraction for the three estimate
// types. The pattern anchors both ends: a candidate with trailing words is
// rejected and the scan moves on.
type EstimateRule struct {
	Const       string
	Placeholder string
	Pattern     *regexp.Regexp
}

// EstimateRules is keyed by catalog type id.
var EstimateRules = map[string]EstimateRule{
	"1": {Const: "ЛС", Placeholder: "??-??-??", Pattern: regexp.MustCompile(`^\d{1,2}-\d{1,2}(?:-\d{1,2})?$`)},
	"2": {Const: "ОС", Placeholder: "??-??", Pattern: regexp.MustCompile(`^\d{1,2}(?:-\d{1,2})?$`)},
	"3": {Const: "ССР", Placeholder: "??", Pattern: regexp.MustCompile(`^\d{1,2}$`)},
}

// NumberMarkers are tried in order when cutting an estimate number out of a
// content line. OCR frequently misreads the numero sign, so the latin
// digraph and single letter are fallbacks.
var NumberMarkers = []string{"№", "no", "n"}

// FixedNames maps display types to their complete name constants.
var FixedNames = map[string]string{
	TypeSummaryRegister: "СРСД",
	TypeSpecificCosts:   "СРОВЗ",
	TypeMTRCostTable:    "ФОРМА1.3",
}

// OtherExpenseCodenames maps other-expenses display types to the codename
// embedded in their proposed names. The family head maps to the unknown
// placeholder so unrecognized subtypes stay visibly unresolved.
var OtherExpenseCodenames = map[string]string{
	TypeOtherExpenses:         Unknown,
	"Перевозка":               "Перевозка",
	"Командировочные расходы": "Командировочные",
	"Перебазировка":           "Перебазировка",
	"Затраты на охрану труда": "ОхранаТруда",
	"Затраты на проведение пусконаладочных работ (ПНР)":                 "ПНР",
	"Устройство дорог": "УстройствоДорог",
	"Дополнительные затраты при производстве работ в зимнее время (ЗУ)": "ЗУ",
	"Плата за негативное воздействие на окружающую среду (НВОС)":        "НВОС",
	"Транспортировка": "Транспортировка",
	"Плавсредства":    "Плавсредства",
	"Затраты на мониторинг компонентов окружающей среды (ПЭМ)":          "ПЭМ",
}

// SupportingDocCodenames maps supporting-documents display types to the
// codename embedded in their proposed names.
var SupportingDocCodenames = map[string]string{
	TypeSupportingDocs:                    Unknown,
	"Ведомость объемов работ":             "ВОР",
	"Дефектная ведомость":                 "ДВ",
	"Коммерческое предложение":            "КП",
	"Транспортная схема":                  "ТС",
	"Обоснование к расчету прочих затрат": OtherJustificationCodename,
	"Конъюнктурный анализ":                "КА",
}

// NamingState carries the per-traversal counters. A fresh value is created
// for every traversal so repeated runs over the same input name identically.
type NamingState struct {
	SupportingSeq int
}

func (s *NamingState) NextSupportingSeq() int {
	s.SupportingSeq++
	return s.SupportingSeq
}

// CatchAllType reports whether a display type is one of the family heads.
func CatchAllType(displayName string) bool {
	return displayName == TypeOtherExpenses || displayName == TypeSupportingDocs
}
