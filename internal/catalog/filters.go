package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

// Filters narrows the catalog. Nil prices mean the bound is not applied.
type Filters struct {
	Category string `json:"category,omitempty"`
	Location string `json:"location,omitempty"`
	MinPrice *int64 `json:"min_price,omitempty"`
	MaxPrice *int64 `json:"max_price,omitempty"`
}

// ParseFilters reads filters from query values. A price that is not an
// integer is ignored rather than rejected.
func ParseFilters(values url.Values) Filters {
	return Filters{
		Category: strings.TrimSpace(values.Get("category")),
		Location: strings.TrimSpace(values.Get("location")),
		MinPrice: parsePrice(values.Get("min_price")),
		MaxPrice: parsePrice(values.Get("max_price")),
	}
}

func parsePrice(raw string) *int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &value
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive substring pattern for LIKE.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
}
