package products

import (
	"math"
	"strconv"
	"strings"
)

// Criteria is what the filter panel holds. Bounds are the raw input text;
// an empty bound imposes no constraint.
type Criteria struct {
	Search   string `form:"search"`
	MinPrice string `form:"min_price"`
	MaxPrice string `form:"max_price"`

	// MatchDescription widens the search to descriptions. The JSON API sets it.
	MatchDescription bool `form:"-"`
}

// Filter returns the products whose title (or description, with
// MatchDescription) contains the search text case-insensitively and whose
// current price lies within the inclusive bounds. A bound that is not a
// number matches nothing. list is not modified.
func Filter(list []Product, c Criteria) []Product {
	query := strings.ToLower(c.Search)
	minSet, minPrice := parseBound(c.MinPrice)
	maxSet, maxPrice := parseBound(c.MaxPrice)

	out := make([]Product, 0, len(list))
	for _, p := range list {
		if !strings.Contains(strings.ToLower(p.Title), query) &&
			!(c.MatchDescription && strings.Contains(strings.ToLower(p.Description), query)) {
			continue
		}
		price := float64(p.CurrentPrice)
		if minSet && !(price >= minPrice) {
			continue
		}
		if maxSet && !(price <= maxPrice) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// parseBound reads a price bound. Unparseable input yields NaN so that
// every comparison against it fails. Blank input counts as unset, unlike
// Number(" ") in a browser, which is 0.
func parseBound(s string) (bool, float64) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return true, math.NaN()
	}
	return true, v
}
