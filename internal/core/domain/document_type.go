package domain

import (
	"sort"
	"strconv"
	"strings"
)

// TagArea names the two tag lists a document type carries: tags matched
// against the filename and tags matched against extracted content.
type TagArea string

const (
	TagAreaName    TagArea = "name"
	TagAreaContent TagArea = "content"
)

func ParseTagArea(s string) (TagArea, bool) {
	switch TagArea(strings.ToLower(strings.TrimSpace(s))) {
	case TagAreaName:
		return TagAreaName, true
	case TagAreaContent:
		return TagAreaContent, true
	default:
		return "", false
	}
}

// DocumentType is one entry of the editable type taxonomy.
type DocumentType struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	NameTags    []string `json:"name_tags"`
	ContentTags []string `json:"content_tags"`
	Mask        string   `json:"mask"`
}

func (t DocumentType) Tags(area TagArea) []string {
	if area == TagAreaContent {
		return t.ContentTags
	}
	return t.NameTags
}

// Clone returns a deep copy so callers can mutate tag slices freely.
func (t DocumentType) Clone() DocumentType {
	out := t
	out.NameTags = append([]string(nil), t.NameTags...)
	out.ContentTags = append([]string(nil), t.ContentTags...)
	return out
}

// Catalog is an ordered snapshot of the taxonomy. Classification walks it
// front to back, so the order must be deterministic: numeric ids ascending,
// everything else lexically after them.
type Catalog []DocumentType

func (c Catalog) Get(id string) (DocumentType, bool) {
	for _, t := range c {
		if t.ID == id {
			return t, true
		}
	}
	return DocumentType{}, false
}

func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for i, t := range c {
		out[i] = t.Clone()
	}
	return out
}

func (c Catalog) Sort() {
	sort.SliceStable(c, func(i, j int) bool {
		return CompareTypeIDs(c[i].ID, c[j].ID) < 0
	})
}

// CompareTypeIDs orders numeric ids numerically and before non-numeric ones.
func CompareTypeIDs(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
