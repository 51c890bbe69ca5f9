package usecase

import (
	"testing"

	"github.com/mkraev/smeta-sorter/internal/core/domain"
)

func estimateType(id, display string, contentTags ...string) domain.DocumentType {
	return domain.DocumentType{ID: id, DisplayName: display, ContentTags: contentTags}
}

func TestEstimateNameFromContent(t *testing.T) {
	nm := newNamer(domain.ScanParams{}, testLogger())
	rec := domain.NewFileRecord("/work/смета_12.xlsx")

	nm.synthesize(estimateType("1", "Локальная смета", "локальн"), &rec, staticContent(
		"объект капитального строительства",
		"локальный сметный расчет № 02-01-01",
	))

	if rec.ProposedName != "ЛС-02-01-01-БАЗ" {
		t.Fatalf("expected ЛС-02-01-01-БАЗ, got %q", rec.ProposedName)
	}
	if rec.EstimateNumber != "02-01-01" {
		t.Fatalf("expected estimate number 02-01-01, got %q", rec.EstimateNumber)
	}
}

func TestEstimateNameMarkerFallbacks(t *testing.T) {
	cases := []struct {
		name string
		line string
		want string
	}{
		{name: "numero sign", line: "локальная смета № 02-01", want: "ЛС-02-01-БАЗ"},
		{name: "latin digraph", line: "локальная смета no 02-01", want: "ЛС-02-01-БАЗ"},
		{name: "single letter", line: "локальная смета n 02-01", want: "ЛС-02-01-БАЗ"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nm := newNamer(domain.ScanParams{}, testLogger())
			rec := domain.NewFileRecord("/work/смета.xlsx")
			nm.synthesize(estimateType("1", "Локальная смета", "локальн"), &rec, staticContent(tc.line))
			if rec.ProposedName != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, rec.ProposedName)
			}
		})
	}
}

func TestEstimateNameUsesLastMarkerOccurrence(t *testing.T) {
	nm := newNamer(domain.ScanParams{}, testLogger())
	rec := domain.NewFileRecord("/work/смета.xlsx")

	nm.synthesize(estimateType("1", "Локальная смета", "локальн"), &rec, staticContent(
		"локальная смета к приложению № 4 № 07-02-11",
	))

	if rec.ProposedName != "ЛС-07-02-11-БАЗ" {
		t.Fatalf("expected the text after the last marker, got %q", rec.ProposedName)
	}
}

func TestEstimateNameKeepsScanningPastMalformedCandidates(t *testing.T) {
	nm := newNamer(domain.ScanParams{}, testLogger())
	rec := domain.NewFileRecord("/work/смета.xlsx")

	nm.synthesize(estimateType("1", "Локальная смета", "локальн"), &rec, staticContent(
		"локальная смета № 02-01-01 на монтажные работы",
		"локальная смета № 03-02",
	))

	if rec.ProposedName != "ЛС-03-02-БАЗ" {
		t.Fatalf("expected the first well-formed candidate, got %q", rec.ProposedName)
	}
}

func TestEstimateNamePlaceholders(t *testing.T) {
	cases := []struct {
		typeID string
		want   string
	}{
		{typeID: "1", want: "ЛС-??-??-??-БАЗ"},
		{typeID: "2", want: "ОС-??-??-БАЗ"},
		{typeID: "3", want: "ССР-??-БАЗ"},
	}
	for _, tc := range cases {
		nm := newNamer(domain.ScanParams{}, testLogger())
		rec := domain.NewFileRecord("/work/смета.xlsx")
		nm.synthesize(estimateType(tc.typeID, "смета", "смет"), &rec, func() domain.Content { return domain.Content{} })
		if rec.ProposedName != tc.want {
			t.Fatalf("type %s: expected %q, got %q", tc.typeID, tc.want, rec.ProposedName)
		}
	}
}

func TestEstimateNameOnlyForDocumentExtensions(t *testing.T) {
	nm := newNamer(domain.ScanParams{}, testLogger())
	rec := domain.NewFileRecord("/work/смета.docx")

	nm.synthesize(estimateType("1", "Локальная смета", "локальн"), &rec, staticContent("локальная смета № 02-01-01"))

	if rec.ProposedName != domain.Unknown {
		t.Fatalf("expected the name to stay unresolved for .docx, got %q", rec.ProposedName)
	}
}

func TestFixedNameTypes(t *testing.T) {
	nm := newNamer(domain.ScanParams{}, testLogger())

	cases := []struct {
		display string
		want    string
	}{
		{display: domain.TypeSummaryRegister, want: "СРСД-БАЗ"},
		{display: domain.TypeSpecificCosts, want: "СРОВЗ-БАЗ"},
		{display: domain.TypeMTRCostTable, want: "ФОРМА1.3-БАЗ"},
	}
	for _, tc := range cases {
		rec := domain.NewFileRecord("/work/документ.pdf")
		nm.synthesize(domain.DocumentType{ID: "4", DisplayName: tc.display}, &rec, func() domain.Content { return domain.Content{} })
		if rec.ProposedName != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.display, tc.want, rec.ProposedName)
		}
	}
}

func TestOtherExpensesNames(t *testing.T) {
	nm := newNamer(domain.ScanParams{}, testLogger())

	rec := domain.NewFileRecord("/work/перевозка.pdf")
	nm.synthesize(domain.DocumentType{ID: "9", DisplayName: "Перевозка"}, &rec, func() domain.Content { return domain.Content{} })
	if rec.ProposedName != "ПРОЧ-Перевозка-БАЗ" {
		t.Fatalf("expected ПРОЧ-Перевозка-БАЗ, got %q", rec.ProposedName)
	}

	head := domain.NewFileRecord("/work/расчет.pdf")
	nm.synthesize(domain.DocumentType{ID: "7", DisplayName: domain.TypeOtherExpenses}, &head, func() domain.Content { return domain.Content{} })
	if head.ProposedName != "ПРОЧ-?-БАЗ" {
		t.Fatalf("expected the family head to keep an unresolved codename, got %q", head.ProposedName)
	}
}

func TestSupportingDocsSequenceAndJustificationLiteral(t *testing.T) {
	nm := newNamer(domain.ScanParams{}, testLogger())

	first := domain.NewFileRecord("/work/вор.pdf")
	nm.synthesize(domain.DocumentType{ID: "20", DisplayName: "Ведомость объемов работ"}, &first, func() domain.Content { return domain.Content{} })
	second := domain.NewFileRecord("/work/вор2.pdf")
	nm.synthesize(domain.DocumentType{ID: "20", DisplayName: "Ведомость объемов работ"}, &second, func() domain.Content { return domain.Content{} })
	third := domain.NewFileRecord("/work/обоснование.pdf")
	nm.synthesize(domain.DocumentType{ID: "24", DisplayName: "Обоснование к расчету прочих затрат"}, &third, func() domain.Content { return domain.Content{} })

	if first.ProposedName != "ПОДТВ-ВОР-1-БАЗ" {
		t.Fatalf("expected ПОДТВ-ВОР-1-БАЗ, got %q", first.ProposedName)
	}
	if second.ProposedName != "ПОДТВ-ВОР-2-БАЗ" {
		t.Fatalf("expected ПОДТВ-ВОР-2-БАЗ, got %q", second.ProposedName)
	}
	if third.ProposedName != "ПОДТВ-ОбоснованиеПрочих-ТИППРОЧ-3-БАЗ" {
		t.Fatalf("expected the justification literal before the sequence number, got %q", third.ProposedName)
	}
}

func TestCommentSuffixTruncatesByRunes(t *testing.T) {
	nm := newNamer(domain.ScanParams{AppendOriginal: true, OriginalPrefixLen: 15}, testLogger())
	rec := domain.NewFileRecord("/work/Смета локальная по участку.xlsx")

	nm.synthesize(domain.DocumentType{ID: "4", DisplayName: domain.TypeSummaryRegister}, &rec, func() domain.Content { return domain.Content{} })

	want := "СРСД-БАЗ-(ex. Смета локальная...)"
	if rec.ProposedName != want {
		t.Fatalf("expected %q, got %q", want, rec.ProposedName)
	}
}

func TestCommentSuffixKeepsShortNamesWhole(t *testing.T) {
	nm := newNamer(domain.ScanParams{AppendOriginal: true, OriginalPrefixLen: 15}, testLogger())
	rec := domain.NewFileRecord("/work/вор.pdf")

	nm.synthesize(domain.DocumentType{ID: "20", DisplayName: "Ведомость объемов работ"}, &rec, func() domain.Content { return domain.Content{} })

	want := "ПОДТВ-ВОР-1-БАЗ-(ex. вор.pdf...)"
	if rec.ProposedName != want {
		t.Fatalf("expected %q, got %q", want, rec.ProposedName)
	}
}
