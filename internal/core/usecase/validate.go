package usecase

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mkraev/smeta-sorter/internal/core/domain"
)

// nameCharset is every character allowed in a proposed filename.
var nameCharset = regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ0-9_\-\.\(\) ]+$`)

// CheckName validates one candidate filename, extension included, against
// the rest of the table. Checks run in a fixed order and the first failure
// is reported; the call mutates nothing, so repeated calls agree.
func CheckName(candidate, originalExt string, otherNames []string) domain.NameCheck {
	if strings.TrimSpace(candidate) == "" {
		return domain.NameCheck{Reason: "name is empty"}
	}
	if strings.Contains(candidate, domain.Unknown) {
		return domain.NameCheck{Reason: "name contains an unresolved placeholder"}
	}
	for _, other := range otherNames {
		if candidate == other {
			return domain.NameCheck{Reason: "name duplicates another row"}
		}
	}
	if !nameCharset.MatchString(candidate) {
		return domain.NameCheck{Reason: "name contains forbidden characters"}
	}
	if !strings.EqualFold(filepath.Ext(candidate), originalExt) {
		return domain.NameCheck{Reason: "extension differs from the source file"}
	}
	stem := strings.TrimSuffix(candidate, filepath.Ext(candidate))
	if strings.TrimSpace(stem) == "" {
		return domain.NameCheck{Reason: "name has no stem"}
	}
	return domain.NameCheck{Valid: true}
}
