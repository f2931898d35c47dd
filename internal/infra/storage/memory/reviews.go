package memory

import (
	"context"
	"sort"
	"sync"

	domainpool "poolbnb/internal/domain/pool"
	domainreview "poolbnb/internal/domain/review"
)

type ReviewRepository struct {
	mu      sync.RWMutex
	reviews map[domainreview.ID]*domainreview.Review
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{reviews: make(map[domainreview.ID]*domainreview.Review)}
}

func (r *ReviewRepository) ListByPool(ctx context.Context, poolID domainpool.ID) ([]*domainreview.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainreview.Review
	for _, rv := range r.reviews {
		if rv.PoolID == poolID {
			copied := *rv
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ReviewRepository) Save(ctx context.Context, rv *domainreview.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *rv
	r.reviews[rv.ID] = &copied
	return nil
}
