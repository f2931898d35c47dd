package review

import (
	"context"
	"errors"
	"testing"
	"time"

	domainpool "poolbnb/internal/domain/pool"
	"poolbnb/internal/domain/shared/daterange"
	"poolbnb/internal/infra/storage/memory"
)

func newTestService(t *testing.T) (*Service, domainpool.ID) {
	t.Helper()
	pools := memory.NewPoolRepository()

	window, err := daterange.New(
		time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 30, 20, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	p, err := domainpool.New(domainpool.CreateParams{
		ID:               "pool-1",
		Host:             "host-1",
		Name:             "Palm Grove Lagoon",
		Location:         "Scottsdale, AZ",
		Description:      "Heated saltwater pool.",
		HourlyPriceCents: 4500,
		Availability:     []daterange.DateRange{window},
		Amenities:        []string{"heated"},
		Photos:           []string{"https://cdn.example.com/pool.jpg"},
		Now:              time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	if err := pools.Save(context.Background(), p); err != nil {
		t.Fatalf("save pool: %v", err)
	}
	return &Service{Pools: pools, Reviews: memory.NewReviewRepository()}, p.ID
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	svc, poolID := newTestService(t)

	t.Run("stores a valid review", func(t *testing.T) {
		r, err := svc.Submit(ctx, SubmitParams{
			AuthorID: "guest-1",
			PoolID:   string(poolID),
			Rating:   5,
			Comment:  "Crystal clear water, great host.",
		})
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if r.Rating != 5 {
			t.Errorf("rating = %d", r.Rating)
		}
		reviews, err := svc.ListByPool(ctx, string(poolID))
		if err != nil {
			t.Fatalf("ListByPool: %v", err)
		}
		if len(reviews) != 1 {
			t.Errorf("expected one review, got %d", len(reviews))
		}
	})

	t.Run("rejects out-of-range rating", func(t *testing.T) {
		for _, rating := range []int{0, 6, -1} {
			_, err := svc.Submit(ctx, SubmitParams{
				AuthorID: "guest-1",
				PoolID:   string(poolID),
				Rating:   rating,
				Comment:  "nope",
			})
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("rating %d: expected ErrInvalidInput, got %v", rating, err)
			}
		}
	})

	t.Run("rejects empty comment", func(t *testing.T) {
		_, err := svc.Submit(ctx, SubmitParams{AuthorID: "guest-1", PoolID: string(poolID), Rating: 4})
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("rejects unknown pool", func(t *testing.T) {
		_, err := svc.Submit(ctx, SubmitParams{AuthorID: "guest-1", PoolID: "missing", Rating: 4, Comment: "hello"})
		if !errors.Is(err, domainpool.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestListByPool_UnknownPool(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.ListByPool(context.Background(), "missing"); !errors.Is(err, domainpool.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
