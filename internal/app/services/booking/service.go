package booking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"poolbnb/internal/app/events"
	"poolbnb/internal/app/validate"
	domainbooking "poolbnb/internal/domain/booking"
	domainpool "poolbnb/internal/domain/pool"
	domainschedule "poolbnb/internal/domain/schedule"
	"poolbnb/internal/domain/shared/daterange"
	domainuser "poolbnb/internal/domain/user"
)

var (
	ErrInvalidInput = errors.New("booking: invalid booking details")
	ErrUnavailable  = errors.New("booking: pool is not available for the selected dates")

	// ErrConcurrentUpdate surfaces when the schedule changed between the
	// availability check and the reservation write, and the retry also lost.
	ErrConcurrentUpdate = errors.New("booking: concurrent reservation detected")
)

// reserveAttempts bounds how many times a lost compare-and-swap on the
// schedule is retried against fresh state.
const reserveAttempts = 2

type Service struct {
	Pools     domainpool.Repository
	Schedules domainschedule.Repository
	Bookings  domainbooking.Repository
	Events    events.Publisher
	Logger    *slog.Logger
}

type AvailabilityQuery struct {
	PoolID    string
	StartDate string
	EndDate   string
}

// CheckAvailability answers the public availability probe: the request
// fits iff it is fully contained in a single published window. Confirmed
// reservations are deliberately not consulted here; only the booking
// write enforces conflicts.
func (s *Service) CheckAvailability(ctx context.Context, q AvailabilityQuery) (bool, error) {
	r, err := parseRange(q.StartDate, q.EndDate)
	if err != nil {
		return false, ErrInvalidInput
	}
	if _, err := s.Pools.ByID(ctx, domainpool.ID(q.PoolID)); err != nil {
		return false, err
	}
	sched, err := s.Schedules.ByPool(ctx, domainpool.ID(q.PoolID))
	if err != nil {
		return false, err
	}
	return sched.WithinOpenWindows(r), nil
}

type CreateParams struct {
	PoolID    string
	GuestID   domainuser.ID
	StartDate string
	EndDate   string
	Guests    int
}

// Create persists a confirmed booking after reserving its range on the
// pool's schedule. The reservation and the schedule save form a
// compare-and-swap pair: if another request reserved an overlapping
// range in between, the save loses on the schedule version and the whole
// check-reserve-save sequence is retried against fresh state, so at most
// one of two racing requests for the same range succeeds.
func (s *Service) Create(ctx context.Context, params CreateParams) (*domainbooking.Booking, error) {
	ok := validate.Booking(validate.BookingDetails{
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		Guests:    params.Guests,
	})
	if !ok {
		return nil, ErrInvalidInput
	}
	r, err := parseRange(params.StartDate, params.EndDate)
	if err != nil {
		return nil, ErrInvalidInput
	}

	p, err := s.Pools.ByID(ctx, domainpool.ID(params.PoolID))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	b, err := domainbooking.New(domainbooking.CreateParams{
		ID:        domainbooking.ID(uuid.NewString()),
		PoolID:    p.ID,
		GuestID:   params.GuestID,
		Range:     r,
		Guests:    params.Guests,
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	if err := s.reserve(ctx, p.ID, r, string(b.ID), now); err != nil {
		return nil, err
	}
	if err := s.Bookings.Save(ctx, b); err != nil {
		// The range is held by a block referencing a booking that was
		// never written; release it so the calendar does not leak.
		s.release(ctx, p.ID, string(b.ID))
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:       events.TypeBookingConfirmed,
		Key:        string(b.ID),
		OccurredAt: now,
		Payload: map[string]any{
			"booking_id": b.ID,
			"pool_id":    b.PoolID,
			"guest_id":   b.GuestID,
			"start_date": b.Range.Start,
			"end_date":   b.Range.End,
			"guests":     b.Guests,
		},
	})
	return b, nil
}

// Cancel transitions the guest's own booking to cancelled and reopens
// its range on the schedule.
func (s *Service) Cancel(ctx context.Context, id domainbooking.ID, guestID domainuser.ID) (*domainbooking.Booking, error) {
	b, err := s.Bookings.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.OwnedBy(guestID) {
		return nil, domainbooking.ErrNotOwner
	}
	now := time.Now().UTC()
	if err := b.Cancel(now); err != nil {
		return nil, err
	}
	if err := s.Bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	s.release(ctx, b.PoolID, string(b.ID))

	s.publish(ctx, events.Event{
		Type:       events.TypeBookingCancelled,
		Key:        string(b.ID),
		OccurredAt: now,
		Payload:    map[string]any{"booking_id": b.ID, "pool_id": b.PoolID},
	})
	return b, nil
}

func (s *Service) ListByGuest(ctx context.Context, guestID domainuser.ID) ([]*domainbooking.Booking, error) {
	return s.Bookings.ListByGuest(ctx, guestID)
}

func (s *Service) reserve(ctx context.Context, poolID domainpool.ID, r daterange.DateRange, bookingID string, now time.Time) error {
	for attempt := 0; attempt < reserveAttempts; attempt++ {
		sched, err := s.Schedules.ByPool(ctx, poolID)
		if err != nil {
			return err
		}
		if err := sched.Reserve(r, bookingID, now); err != nil {
			return ErrUnavailable
		}
		err = s.Schedules.Save(ctx, sched)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domainschedule.ErrConcurrentUpdate) {
			return err
		}
	}
	return ErrConcurrentUpdate
}

func (s *Service) release(ctx context.Context, poolID domainpool.ID, bookingID string) {
	for attempt := 0; attempt < reserveAttempts; attempt++ {
		sched, err := s.Schedules.ByPool(ctx, poolID)
		if err != nil {
			break
		}
		if err := sched.Release(bookingID); err != nil {
			break
		}
		err = s.Schedules.Save(ctx, sched)
		if err == nil {
			return
		}
		if !errors.Is(err, domainschedule.ErrConcurrentUpdate) {
			break
		}
	}
	if s.Logger != nil {
		s.Logger.Warn("schedule release failed", "pool_id", poolID, "booking_id", bookingID)
	}
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, event); err != nil && s.Logger != nil {
		s.Logger.Warn("event publish failed", "type", event.Type, "error", err)
	}
}

func parseRange(startDate, endDate string) (daterange.DateRange, error) {
	start, err := validate.ParseISODate(startDate)
	if err != nil {
		return daterange.DateRange{}, err
	}
	end, err := validate.ParseISODate(endDate)
	if err != nil {
		return daterange.DateRange{}, err
	}
	return daterange.New(start, end)
}
