package schedule

import (
	"context"
	"errors"
	"time"

	"poolbnb/internal/domain/pool"
	"poolbnb/internal/domain/shared/daterange"
)

var (
	ErrOutsideOpenWindows = errors.New("schedule: range is not covered by a published window")
	ErrRangeBooked        = errors.New("schedule: range overlaps an existing reservation")
	ErrBlockNotFound      = errors.New("schedule: block not found")
	ErrNotFound           = errors.New("schedule: not found")

	// ErrConcurrentUpdate is returned by Repository.Save when the stored
	// version no longer matches the one the schedule was loaded with.
	ErrConcurrentUpdate = errors.New("schedule: concurrent update detected")
)

// Block is a confirmed reservation carved out of a pool's open windows.
type Block struct {
	Range     daterange.DateRange
	BookingID string
	CreatedAt time.Time
}

// Schedule tracks a single pool's published open windows together with
// the blocks already reserved against them. Version backs the
// compare-and-swap save that keeps two concurrent bookings from both
// claiming the same range.
type Schedule struct {
	PoolID  pool.ID
	Open    []daterange.DateRange
	Booked  []Block
	Version int64
}

type Repository interface {
	ByPool(ctx context.Context, id pool.ID) (*Schedule, error)
	Save(ctx context.Context, s *Schedule) error
}

func New(id pool.ID, open []daterange.DateRange) *Schedule {
	return &Schedule{PoolID: id, Open: append([]daterange.DateRange(nil), open...)}
}

// WithinOpenWindows reports whether r fits entirely inside a single
// published window. Boundary equality counts as available; a request
// spanning two adjacent windows does not. An empty calendar is never
// available. O(n) over the windows of one pool.
func (s *Schedule) WithinOpenWindows(r daterange.DateRange) bool {
	for _, window := range s.Open {
		if window.Contains(r) {
			return true
		}
	}
	return false
}

// CanReserve additionally rejects ranges that collide with a confirmed
// reservation.
func (s *Schedule) CanReserve(r daterange.DateRange) bool {
	if !s.WithinOpenWindows(r) {
		return false
	}
	for _, block := range s.Booked {
		if block.Range.Overlaps(r) {
			return false
		}
	}
	return true
}

// Reserve records a block for r. The caller persists the schedule with a
// versioned save; a concurrent reservation of an overlapping range loses
// the compare-and-swap and is retried against the fresh state.
func (s *Schedule) Reserve(r daterange.DateRange, bookingID string, now time.Time) error {
	if !s.WithinOpenWindows(r) {
		return ErrOutsideOpenWindows
	}
	for _, block := range s.Booked {
		if block.Range.Overlaps(r) {
			return ErrRangeBooked
		}
	}
	s.Booked = append(s.Booked, Block{Range: r, BookingID: bookingID, CreatedAt: now.UTC()})
	return nil
}

// Release drops the block recorded for bookingID, reopening its range.
func (s *Schedule) Release(bookingID string) error {
	for i, block := range s.Booked {
		if block.BookingID == bookingID {
			s.Booked = append(s.Booked[:i], s.Booked[i+1:]...)
			return nil
		}
	}
	return ErrBlockNotFound
}

// SyncOpenWindows replaces the published windows, keeping reserved blocks.
func (s *Schedule) SyncOpenWindows(open []daterange.DateRange) {
	s.Open = append([]daterange.DateRange(nil), open...)
}
