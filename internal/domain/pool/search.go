package pool

import (
	"strings"
	"time"
)

// SortField defines a supported catalog ordering key.
type SortField string

const (
	SortByPrice    SortField = "price"
	SortByRating   SortField = "rating"
	SortByCreated  SortField = "createdAt"
	SortByName     SortField = "name"
	SortByFeatured SortField = "featured"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

func ValidSortField(field string) bool {
	switch SortField(field) {
	case SortByPrice, SortByRating, SortByCreated, SortByName, SortByFeatured:
		return true
	}
	return false
}

func ValidSortOrder(order string) bool {
	switch SortOrder(order) {
	case OrderAsc, OrderDesc:
		return true
	}
	return false
}

// SearchParams describe the availability-aware catalog search.
type SearchParams struct {
	Location      string
	Start         time.Time
	End           time.Time
	PriceMinCents int64
	PriceMaxCents int64
	Features      []string
}

// SortFilterParams describe feature/price filtering with an ordering.
type SortFilterParams struct {
	SortBy        SortField
	Order         SortOrder
	PriceMinCents int64
	PriceMaxCents int64
	Features      []string
}

// Normalized returns a sanitized copy of params.
func (p SearchParams) Normalized() SearchParams {
	normalized := p
	normalized.Location = strings.TrimSpace(normalized.Location)
	normalized.Features = normalizeTokens(normalized.Features)
	if normalized.PriceMinCents < 0 {
		normalized.PriceMinCents = 0
	}
	if normalized.PriceMaxCents > 0 && normalized.PriceMaxCents < normalized.PriceMinCents {
		normalized.PriceMaxCents = 0
	}
	return normalized
}

func (p SortFilterParams) Normalized() SortFilterParams {
	normalized := p
	normalized.Features = normalizeTokens(normalized.Features)
	if normalized.PriceMinCents < 0 {
		normalized.PriceMinCents = 0
	}
	if normalized.PriceMaxCents > 0 && normalized.PriceMaxCents < normalized.PriceMinCents {
		normalized.PriceMaxCents = 0
	}
	if normalized.SortBy != "" && !ValidSortField(string(normalized.SortBy)) {
		normalized.SortBy = SortByPrice
	}
	switch normalized.Order {
	case OrderAsc, OrderDesc:
	default:
		normalized.Order = OrderDesc
	}
	return normalized
}

func normalizeTokens(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(strings.ToLower(token))
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}
