package listing

import (
	"net/url"
	"strings"

	"github.com/amaralimoveis/vitrine/internal/model"
)

// Criteria holds the showcase filters. Empty or model.FilterAll selectors
// mean "no filter".
type Criteria struct {
	Query    string
	Category string
	Status   string
}

// CriteriaFromValues reads criteria from the q, tipo and status parameters.
func CriteriaFromValues(v url.Values) Criteria {
	return Criteria{
		Query:    v.Get("q"),
		Category: v.Get("tipo"),
		Status:   v.Get("status"),
	}
}

// IsEmpty reports whether the criteria match every listing.
func (c Criteria) IsEmpty() bool {
	return strings.TrimSpace(c.Query) == "" && isAll(c.Category) && isAll(c.Status)
}

// Filter returns the listings matching all criteria, in their original
// order. The input slice is never modified.
func Filter(listings []model.Listing, c Criteria) []model.Listing {
	q := strings.ToLower(strings.TrimSpace(c.Query))

	out := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if matchText(l, q) && matchSelector(l.Category, c.Category) && matchSelector(l.Status, c.Status) {
			out = append(out, l)
		}
	}
	return out
}

func matchText(l model.Listing, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Title), q) ||
		strings.Contains(strings.ToLower(l.Location.Neighborhood), q) ||
		strings.Contains(strings.ToLower(l.Location.City), q)
}

func matchSelector(value, selector string) bool {
	return isAll(selector) || value == selector
}

func isAll(selector string) bool {
	return selector == "" || selector == model.FilterAll
}
