package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	domainpool "poolbnb/internal/domain/pool"
	"poolbnb/internal/domain/shared/daterange"
)

// PoolRepository keeps pool listings in memory, filtering and sorting
// the way the mongo repository queries do.
type PoolRepository struct {
	mu    sync.RWMutex
	pools map[domainpool.ID]*domainpool.Pool
}

func NewPoolRepository() *PoolRepository {
	return &PoolRepository{pools: make(map[domainpool.ID]*domainpool.Pool)}
}

func (r *PoolRepository) ByID(ctx context.Context, id domainpool.ID) (*domainpool.Pool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.pools[id]; ok {
		return clonePool(p), nil
	}
	return nil, domainpool.ErrNotFound
}

func (r *PoolRepository) ByHost(ctx context.Context, host domainpool.HostID) ([]*domainpool.Pool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainpool.Pool
	for _, p := range r.pools {
		if p.Host == host {
			out = append(out, clonePool(p))
		}
	}
	sortPools(out, domainpool.SortByCreated, domainpool.OrderDesc)
	return out, nil
}

func (r *PoolRepository) Featured(ctx context.Context) ([]*domainpool.Pool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainpool.Pool
	for _, p := range r.pools {
		if p.Featured {
			out = append(out, clonePool(p))
		}
	}
	sortPools(out, domainpool.SortByCreated, domainpool.OrderDesc)
	return out, nil
}

func (r *PoolRepository) Search(ctx context.Context, params domainpool.SearchParams) ([]*domainpool.Pool, error) {
	requested := daterange.DateRange{Start: params.Start, End: params.End}
	location := strings.ToLower(params.Location)

	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainpool.Pool
	for _, p := range r.pools {
		if location != "" && !strings.Contains(strings.ToLower(p.Location), location) {
			continue
		}
		if !coversRange(p.Availability, requested) {
			continue
		}
		if !priceWithin(p.HourlyPriceCents, params.PriceMinCents, params.PriceMaxCents) {
			continue
		}
		if !hasAllFeatures(p.Amenities, params.Features) {
			continue
		}
		out = append(out, clonePool(p))
	}
	sortPools(out, domainpool.SortByCreated, domainpool.OrderDesc)
	return out, nil
}

func (r *PoolRepository) SortFilter(ctx context.Context, params domainpool.SortFilterParams) ([]*domainpool.Pool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainpool.Pool
	for _, p := range r.pools {
		if !priceWithin(p.HourlyPriceCents, params.PriceMinCents, params.PriceMaxCents) {
			continue
		}
		if !hasAllFeatures(p.Amenities, params.Features) {
			continue
		}
		out = append(out, clonePool(p))
	}
	sortPools(out, params.SortBy, params.Order)
	return out, nil
}

func (r *PoolRepository) Save(ctx context.Context, p *domainpool.Pool) error {
	if p == nil || strings.TrimSpace(string(p.ID)) == "" {
		return domainpool.ErrIDRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pools[p.ID] = clonePool(p)
	return nil
}

func coversRange(windows []daterange.DateRange, requested daterange.DateRange) bool {
	if requested.Start.IsZero() || requested.End.IsZero() {
		return true
	}
	for _, window := range windows {
		if window.Contains(requested) {
			return true
		}
	}
	return false
}

func priceWithin(price, min, max int64) bool {
	if min > 0 && price < min {
		return false
	}
	if max > 0 && price > max {
		return false
	}
	return true
}

func hasAllFeatures(amenities, features []string) bool {
	if len(features) == 0 {
		return true
	}
	have := make(map[string]struct{}, len(amenities))
	for _, a := range amenities {
		have[strings.ToLower(strings.TrimSpace(a))] = struct{}{}
	}
	for _, f := range features {
		if _, ok := have[f]; !ok {
			return false
		}
	}
	return true
}

func sortPools(pools []*domainpool.Pool, field domainpool.SortField, order domainpool.SortOrder) {
	asc := order == domainpool.OrderAsc
	sort.SliceStable(pools, func(i, j int) bool {
		cmp := comparePools(pools[i], pools[j], field)
		if asc {
			return cmp < 0
		}
		return cmp > 0
	})
}

func comparePools(a, b *domainpool.Pool, field domainpool.SortField) int {
	switch field {
	case domainpool.SortByRating:
		switch {
		case a.Rating < b.Rating:
			return -1
		case a.Rating > b.Rating:
			return 1
		}
	case domainpool.SortByName:
		return strings.Compare(a.Name, b.Name)
	case domainpool.SortByFeatured:
		switch {
		case !a.Featured && b.Featured:
			return -1
		case a.Featured && !b.Featured:
			return 1
		}
	case domainpool.SortByCreated:
		switch {
		case a.CreatedAt.Before(b.CreatedAt):
			return -1
		case a.CreatedAt.After(b.CreatedAt):
			return 1
		}
	default:
		switch {
		case a.HourlyPriceCents < b.HourlyPriceCents:
			return -1
		case a.HourlyPriceCents > b.HourlyPriceCents:
			return 1
		}
	}
	return 0
}

func clonePool(p *domainpool.Pool) *domainpool.Pool {
	if p == nil {
		return nil
	}
	copied := *p
	copied.Availability = append([]daterange.DateRange(nil), p.Availability...)
	copied.Amenities = append([]string(nil), p.Amenities...)
	copied.Photos = append([]string(nil), p.Photos...)
	return &copied
}
