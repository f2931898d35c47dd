package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"poolbnb/internal/app/events"
	domainbooking "poolbnb/internal/domain/booking"
	domainpool "poolbnb/internal/domain/pool"
	domainschedule "poolbnb/internal/domain/schedule"
	"poolbnb/internal/domain/shared/daterange"
	"poolbnb/internal/infra/storage/memory"
)

func testFixture(t *testing.T) (*Service, *domainpool.Pool) {
	t.Helper()
	pools := memory.NewPoolRepository()
	schedules := memory.NewScheduleRepository()

	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 30, 20, 0, 0, 0, time.UTC)
	window, err := daterange.New(start, end)
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	p, err := domainpool.New(domainpool.CreateParams{
		ID:               "pool-1",
		Host:             "host-1",
		Name:             "Palm Grove Lagoon",
		Location:         "Scottsdale, AZ",
		Description:      "Heated saltwater pool with a shaded deck.",
		HourlyPriceCents: 4500,
		Availability:     []daterange.DateRange{window},
		Amenities:        []string{"heated"},
		Photos:           []string{"https://cdn.example.com/pool.jpg"},
		Now:              time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	if err := pools.Save(context.Background(), p); err != nil {
		t.Fatalf("save pool: %v", err)
	}
	if err := schedules.Save(context.Background(), domainschedule.New(p.ID, p.OpenWindows())); err != nil {
		t.Fatalf("save schedule: %v", err)
	}

	svc := &Service{
		Pools:     pools,
		Schedules: schedules,
		Bookings:  memory.NewBookingRepository(),
		Events:    events.Discard{},
	}
	return svc, p
}

func TestCheckAvailability(t *testing.T) {
	svc, p := testFixture(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		startDate string
		endDate   string
		want      bool
	}{
		{name: "inside the window", startDate: "2026-09-02T10:00:00Z", endDate: "2026-09-02T14:00:00Z", want: true},
		{name: "whole window", startDate: "2026-09-01T08:00:00Z", endDate: "2026-09-30T20:00:00Z", want: true},
		{name: "starts before opening", startDate: "2026-08-31T10:00:00Z", endDate: "2026-09-02T10:00:00Z", want: false},
		{name: "ends after closing", startDate: "2026-09-29T10:00:00Z", endDate: "2026-10-01T10:00:00Z", want: false},
		{name: "entirely outside", startDate: "2026-11-01", endDate: "2026-11-02", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.CheckAvailability(ctx, AvailabilityQuery{
				PoolID:    string(p.ID),
				StartDate: tt.startDate,
				EndDate:   tt.endDate,
			})
			if err != nil {
				t.Fatalf("CheckAvailability: %v", err)
			}
			if got != tt.want {
				t.Errorf("CheckAvailability() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("unknown pool", func(t *testing.T) {
		_, err := svc.CheckAvailability(ctx, AvailabilityQuery{
			PoolID:    "missing",
			StartDate: "2026-09-02",
			EndDate:   "2026-09-03",
		})
		if !errors.Is(err, domainpool.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("reversed range", func(t *testing.T) {
		_, err := svc.CheckAvailability(ctx, AvailabilityQuery{
			PoolID:    string(p.ID),
			StartDate: "2026-09-03",
			EndDate:   "2026-09-02",
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("confirms a valid booking", func(t *testing.T) {
		svc, p := testFixture(t)
		b, err := svc.Create(ctx, CreateParams{
			PoolID:    string(p.ID),
			GuestID:   "guest-1",
			StartDate: "2026-09-02T10:00:00Z",
			EndDate:   "2026-09-02T14:00:00Z",
			Guests:    4,
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if b.Status != domainbooking.StatusConfirmed {
			t.Errorf("status = %q, want %q", b.Status, domainbooking.StatusConfirmed)
		}
		stored, err := svc.Bookings.ByID(ctx, b.ID)
		if err != nil {
			t.Fatalf("booking not persisted: %v", err)
		}
		if stored.GuestID != "guest-1" {
			t.Errorf("guest = %q", stored.GuestID)
		}
	})

	t.Run("rejects overlapping booking", func(t *testing.T) {
		svc, p := testFixture(t)
		first := CreateParams{
			PoolID:    string(p.ID),
			GuestID:   "guest-1",
			StartDate: "2026-09-02T10:00:00Z",
			EndDate:   "2026-09-02T14:00:00Z",
			Guests:    2,
		}
		if _, err := svc.Create(ctx, first); err != nil {
			t.Fatalf("Create first: %v", err)
		}
		second := first
		second.GuestID = "guest-2"
		second.StartDate = "2026-09-02T12:00:00Z"
		second.EndDate = "2026-09-02T16:00:00Z"
		if _, err := svc.Create(ctx, second); !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("rejects range outside windows", func(t *testing.T) {
		svc, p := testFixture(t)
		_, err := svc.Create(ctx, CreateParams{
			PoolID:    string(p.ID),
			GuestID:   "guest-1",
			StartDate: "2026-11-01T10:00:00Z",
			EndDate:   "2026-11-01T14:00:00Z",
			Guests:    2,
		})
		if !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("rejects invalid details", func(t *testing.T) {
		svc, p := testFixture(t)
		_, err := svc.Create(ctx, CreateParams{
			PoolID:    string(p.ID),
			GuestID:   "guest-1",
			StartDate: "2026-09-02T10:00:00Z",
			EndDate:   "2026-09-02T14:00:00Z",
			Guests:    0,
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("racing requests for the same range yield one booking", func(t *testing.T) {
		svc, p := testFixture(t)
		params := CreateParams{
			PoolID:    string(p.ID),
			StartDate: "2026-09-05T10:00:00Z",
			EndDate:   "2026-09-05T14:00:00Z",
			Guests:    2,
		}

		const racers = 8
		var wg sync.WaitGroup
		results := make([]error, racers)
		for i := 0; i < racers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				req := params
				req.GuestID = "guest-race"
				_, results[i] = svc.Create(ctx, req)
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range results {
			if err == nil {
				succeeded++
				continue
			}
			if !errors.Is(err, ErrUnavailable) && !errors.Is(err, ErrConcurrentUpdate) {
				t.Errorf("unexpected error: %v", err)
			}
		}
		if succeeded != 1 {
			t.Errorf("expected exactly one winner, got %d", succeeded)
		}
	})
}

// saveFailOnce wraps a schedule repository and forces the first save to
// lose the compare-and-swap, as if another request won the race.
type saveFailOnce struct {
	domainschedule.Repository
	mu     sync.Mutex
	failed bool
}

func (r *saveFailOnce) Save(ctx context.Context, s *domainschedule.Schedule) error {
	r.mu.Lock()
	if !r.failed {
		r.failed = true
		r.mu.Unlock()
		return domainschedule.ErrConcurrentUpdate
	}
	r.mu.Unlock()
	return r.Repository.Save(ctx, s)
}

func TestCreate_RetriesLostCompareAndSwap(t *testing.T) {
	svc, p := testFixture(t)
	svc.Schedules = &saveFailOnce{Repository: svc.Schedules}

	b, err := svc.Create(context.Background(), CreateParams{
		PoolID:    string(p.ID),
		GuestID:   "guest-1",
		StartDate: "2026-09-02T10:00:00Z",
		EndDate:   "2026-09-02T14:00:00Z",
		Guests:    2,
	})
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if b.Status != domainbooking.StatusConfirmed {
		t.Errorf("status = %q", b.Status)
	}
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	svc, p := testFixture(t)

	b, err := svc.Create(ctx, CreateParams{
		PoolID:    string(p.ID),
		GuestID:   "guest-1",
		StartDate: "2026-09-02T10:00:00Z",
		EndDate:   "2026-09-02T14:00:00Z",
		Guests:    2,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("only the owner may cancel", func(t *testing.T) {
		if _, err := svc.Cancel(ctx, b.ID, "guest-2"); !errors.Is(err, domainbooking.ErrNotOwner) {
			t.Errorf("expected ErrNotOwner, got %v", err)
		}
	})

	t.Run("cancelling reopens the range", func(t *testing.T) {
		cancelled, err := svc.Cancel(ctx, b.ID, "guest-1")
		if err != nil {
			t.Fatalf("Cancel: %v", err)
		}
		if cancelled.Status != domainbooking.StatusCancelled {
			t.Errorf("status = %q", cancelled.Status)
		}
		if _, err := svc.Create(ctx, CreateParams{
			PoolID:    string(p.ID),
			GuestID:   "guest-2",
			StartDate: "2026-09-02T10:00:00Z",
			EndDate:   "2026-09-02T14:00:00Z",
			Guests:    2,
		}); err != nil {
			t.Errorf("expected freed range to be bookable: %v", err)
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		if _, err := svc.Cancel(ctx, "missing", "guest-1"); !errors.Is(err, domainbooking.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
