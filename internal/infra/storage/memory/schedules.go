package memory

import (
	"context"
	"sync"

	domainpool "poolbnb/internal/domain/pool"
	domainschedule "poolbnb/internal/domain/schedule"
	"poolbnb/internal/domain/shared/daterange"
)

// ScheduleRepository keeps schedules in memory with the same
// version-compare-and-swap contract as the mongo repository, so the
// booking service's race handling is exercised identically in tests.
type ScheduleRepository struct {
	mu        sync.Mutex
	schedules map[domainpool.ID]*domainschedule.Schedule
}

func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{schedules: make(map[domainpool.ID]*domainschedule.Schedule)}
}

func (r *ScheduleRepository) ByPool(ctx context.Context, id domainpool.ID) (*domainschedule.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.schedules[id]; ok {
		return cloneSchedule(s), nil
	}
	return nil, domainschedule.ErrNotFound
}

func (r *ScheduleRepository) Save(ctx context.Context, s *domainschedule.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.schedules[s.PoolID]; ok && existing.Version != s.Version {
		return domainschedule.ErrConcurrentUpdate
	}
	stored := cloneSchedule(s)
	stored.Version = s.Version + 1
	r.schedules[s.PoolID] = stored
	s.Version = stored.Version
	return nil
}

func cloneSchedule(s *domainschedule.Schedule) *domainschedule.Schedule {
	if s == nil {
		return nil
	}
	copied := *s
	copied.Open = append([]daterange.DateRange(nil), s.Open...)
	copied.Booked = append([]domainschedule.Block(nil), s.Booked...)
	return &copied
}
