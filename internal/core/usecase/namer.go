package usecase

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/mkraev/smeta-sorter/internal/core/domain"
)

// estimateScanLines caps how deep the estimate-number scan looks into content.
const estimateScanLines = 20

const defaultOriginalPrefixLen = 15

// namer synthesizes proposed base names. One namer serves one traversal: it
// owns that traversal's naming state.
type namer struct {
	appendOriginal bool
	prefixLen      int
	state          *domain.NamingState
	logger         *slog.Logger
}

func newNamer(params domain.ScanParams, logger *slog.Logger) *namer {
	prefixLen := params.OriginalPrefixLen
	if prefixLen <= 0 {
		prefixLen = defaultOriginalPrefixLen
	}
	return &namer{
		appendOriginal: params.AppendOriginal,
		prefixLen:      prefixLen,
		state:          &domain.NamingState{},
		logger:         logger,
	}
}

// nameRule builds a base name for the types it applies to. Rules are tried
// in order and the first applicable one wins; types without a rule keep the
// unknown name.
type nameRule struct {
	name    string
	applies func(dt domain.DocumentType) bool
	build   func(n *namer, dt domain.DocumentType, rec *domain.FileRecord, content func() domain.Content) string
}

var nameRules = []nameRule{
	{
		name: "estimate",
		applies: func(dt domain.DocumentType) bool {
			_, ok := domain.EstimateRules[dt.ID]
			return ok
		},
		build: func(n *namer, dt domain.DocumentType, rec *domain.FileRecord, content func() domain.Content) string {
			return n.estimateName(dt, rec, content)
		},
	},
	{
		name: "fixed",
		applies: func(dt domain.DocumentType) bool {
			_, ok := domain.FixedNames[dt.DisplayName]
			return ok
		},
		build: func(n *namer, dt domain.DocumentType, rec *domain.FileRecord, _ func() domain.Content) string {
			return n.withSuffix(domain.FixedNames[dt.DisplayName], rec.OriginalName)
		},
	},
	{
		name: "other_expenses",
		applies: func(dt domain.DocumentType) bool {
			_, ok := domain.OtherExpenseCodenames[dt.DisplayName]
			return ok
		},
		build: func(n *namer, dt domain.DocumentType, rec *domain.FileRecord, _ func() domain.Content) string {
			codename := domain.OtherExpenseCodenames[dt.DisplayName]
			return n.withSuffix(domain.OtherExpensesConst+"-"+codename, rec.OriginalName)
		},
	},
	{
		name: "supporting_docs",
		applies: func(dt domain.DocumentType) bool {
			_, ok := domain.SupportingDocCodenames[dt.DisplayName]
			return ok
		},
		build: func(n *namer, dt domain.DocumentType, rec *domain.FileRecord, _ func() domain.Content) string {
			codename := domain.SupportingDocCodenames[dt.DisplayName]
			parts := []string{domain.SupportingDocsConst, codename}
			if codename == domain.OtherJustificationCodename {
				parts = append(parts, domain.OtherJustificationLiteral)
			}
			parts = append(parts, strconv.Itoa(n.state.NextSupportingSeq()))
			return n.withSuffix(strings.Join(parts, "-"), rec.OriginalName)
		},
	},
}

// synthesize fills the proposed name, and the estimate number when there is
// one, on an already classified record.
func (n *namer) synthesize(dt domain.DocumentType, rec *domain.FileRecord, content func() domain.Content) {
	for _, rule := range nameRules {
		if !rule.applies(dt) {
			continue
		}
		if name := rule.build(n, dt, rec, content); name != "" {
			rec.ProposedName = name
		}
		return
	}
	n.logger.Debug("no naming rule for type", "type_id", dt.ID, "display_type", dt.DisplayName)
}

// estimateName builds ЛС/ОС/ССР names. Only documents that can carry an
// estimate number, spreadsheets and PDFs, get one; a number that cannot be
// read from content is replaced by the placeholder of the estimate kind.
func (n *namer) estimateName(dt domain.DocumentType, rec *domain.FileRecord, content func() domain.Content) string {
	rule := domain.EstimateRules[dt.ID]
	if !domain.ExtractableExtension(rec.Extension) {
		return domain.Unknown
	}
	number, found := findEstimateNumber(content().Lines(estimateScanLines), dt.ContentTags, rule.Pattern)
	if !found {
		number = rule.Placeholder
	}
	rec.EstimateNumber = number
	return n.withSuffix(rule.Const+"-"+number, rec.OriginalName)
}

// withSuffix appends the version literals and the optional original-name
// comment to a finished name stem.
func (n *namer) withSuffix(stem, originalName string) string {
	name := stem + "-" + domain.VersionBase + domain.VersionNumber
	if n.appendOriginal {
		name += n.comment(originalName)
	}
	return name
}

func (n *namer) comment(originalName string) string {
	prefix := []rune(originalName)
	if len(prefix) > n.prefixLen {
		prefix = prefix[:n.prefixLen]
	}
	return fmt.Sprintf("-(ex. %s...)", string(prefix))
}

// findEstimateNumber scans content lines for a type's content tags and cuts
// the text after the last number marker out of each tagged line. The first
// candidate that matches the expected pattern wins; tagged lines with a
// malformed candidate keep the scan going.
func findEstimateNumber(lines []string, tags []string, pattern *regexp.Regexp) (string, bool) {
	matchers := tagMatchers(tags)
	for _, line := range lines {
		if !anyMatch(matchers, line) {
			continue
		}
		candidate := cutAfterMarker(line)
		if candidate != "" && pattern.MatchString(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func tagMatchers(tags []string) []func(string) bool {
	matchers := make([]func(string) bool, 0, len(tags))
	for _, tag := range tags {
		lower := strings.ToLower(tag)
		if re, err := regexp.Compile("(?i)" + lower); err == nil {
			matchers = append(matchers, re.MatchString)
			continue
		}
		matchers = append(matchers, func(line string) bool {
			return strings.Contains(line, lower)
		})
	}
	return matchers
}

func anyMatch(matchers []func(string) bool, line string) bool {
	for _, match := range matchers {
		if match(line) {
			return true
		}
	}
	return false
}

// cutAfterMarker returns the trimmed text following the last occurrence of
// the first number-marker variant present in the line.
func cutAfterMarker(line string) string {
	for _, marker := range domain.NumberMarkers {
		idx := strings.LastIndex(line, marker)
		if idx < 0 {
			continue
		}
		return strings.TrimSpace(line[idx+len(marker):])
	}
	return ""
}
