package usecase

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/mkraev/smeta-sorter/internal/core/domain"
)

// tokenSeparators splits filenames the same way type tags are expected to be
// written: words between underscores, hyphens, dots and spaces.
var tokenSeparators = regexp.MustCompile(`[_\-. ]+`)

// matchRule is one classification rule. Rules are evaluated in catalog order
// and the first hit on a non-catch-all type wins.
type matchRule struct {
	typeID   string
	tag      string
	pattern  *regexp.Regexp // nil when the tag matches literally
	catchAll bool
}

// classifier resolves a file to a catalog type. It is built once per
// traversal from a catalog snapshot, so catalog edits never affect a scan
// already in flight.
type classifier struct {
	catalog      domain.Catalog
	nameRules    []matchRule
	contentRules []matchRule
	logger       *slog.Logger
}

func newClassifier(catalog domain.Catalog, logger *slog.Logger) *classifier {
	c := &classifier{catalog: catalog, logger: logger}
	for _, t := range catalog {
		catchAll := domain.CatchAllType(t.DisplayName)
		for _, tag := range t.NameTags {
			c.nameRules = append(c.nameRules, c.buildRule(t, tag, catchAll, domain.TagAreaName))
		}
		for _, tag := range t.ContentTags {
			c.contentRules = append(c.contentRules, c.buildRule(t, tag, catchAll, domain.TagAreaContent))
		}
	}
	return c
}

// buildRule decides how a tag matches. Name tags are literal tokens unless
// they carry pattern metacharacters; content tags are always tried as
// patterns first. A tag that fails to compile degrades to a literal.
func (c *classifier) buildRule(t domain.DocumentType, tag string, catchAll bool, area domain.TagArea) matchRule {
	rule := matchRule{
		typeID:   t.ID,
		tag:      strings.ToLower(tag),
		catchAll: catchAll,
	}
	wantPattern := area == domain.TagAreaContent || regexp.QuoteMeta(tag) != tag
	if !wantPattern {
		return rule
	}
	pattern, err := regexp.Compile("(?i)" + rule.tag)
	if err != nil {
		c.logger.Warn("tag does not compile, matching it literally",
			"type_id", t.ID,
			"area", string(area),
			"tag", tag,
			"error", err,
		)
		return rule
	}
	rule.pattern = pattern
	return rule
}

// classify resolves a filename, and lazily its content, to a catalog type.
// The walk never ends on the two catch-all families: a catch-all hit is kept
// provisionally and loses to any specific type found later in either phase.
func (c *classifier) classify(filename string, content func() domain.Content, searchName, searchContent bool) (domain.DocumentType, bool) {
	var provisional *matchRule

	if searchName {
		tokens := tokenSeparators.Split(strings.ToLower(filename), -1)
		for i := range c.nameRules {
			rule := &c.nameRules[i]
			if !rule.matchesName(filename, tokens) {
				continue
			}
			if !rule.catchAll {
				return c.resolve(rule.typeID)
			}
			provisional = rule
		}
	}

	if searchContent {
		lines := content().Lines(0)
		for i := range c.contentRules {
			rule := &c.contentRules[i]
			if !rule.matchesContent(lines) {
				continue
			}
			if !rule.catchAll {
				return c.resolve(rule.typeID)
			}
			provisional = rule
		}
	}

	if provisional != nil {
		return c.resolve(provisional.typeID)
	}
	return domain.DocumentType{}, false
}

func (c *classifier) resolve(typeID string) (domain.DocumentType, bool) {
	return c.catalog.Get(typeID)
}

func (r *matchRule) matchesName(raw string, tokens []string) bool {
	if r.pattern != nil {
		return r.pattern.MatchString(raw)
	}
	for _, token := range tokens {
		if token == r.tag {
			return true
		}
	}
	return false
}

func (r *matchRule) matchesContent(lines []string) bool {
	for _, line := range lines {
		if r.pattern != nil {
			if r.pattern.MatchString(line) {
				return true
			}
			continue
		}
		if strings.Contains(line, r.tag) {
			return true
		}
	}
	return false
}
