package memory

import (
	"context"
	"sort"
	"sync"

	domainbooking "poolbnb/internal/domain/booking"
	domainpool "poolbnb/internal/domain/pool"
	domainuser "poolbnb/internal/domain/user"
)

type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[domainbooking.ID]*domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{bookings: make(map[domainbooking.ID]*domainbooking.Booking)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.ID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if b, ok := r.bookings[id]; ok {
		return cloneBooking(b), nil
	}
	return nil, domainbooking.ErrNotFound
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID domainuser.ID) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainbooking.Booking
	for _, b := range r.bookings {
		if b.GuestID == guestID {
			out = append(out, cloneBooking(b))
		}
	}
	sortBookings(out)
	return out, nil
}

func (r *BookingRepository) ListByPool(ctx context.Context, poolID domainpool.ID) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainbooking.Booking
	for _, b := range r.bookings {
		if b.PoolID == poolID {
			out = append(out, cloneBooking(b))
		}
	}
	sortBookings(out)
	return out, nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID] = cloneBooking(b)
	return nil
}

func sortBookings(bookings []*domainbooking.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
}

func cloneBooking(b *domainbooking.Booking) *domainbooking.Booking {
	if b == nil {
		return nil
	}
	copied := *b
	return &copied
}
