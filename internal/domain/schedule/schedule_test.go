package schedule

import (
	"errors"
	"testing"
	"time"

	"poolbnb/internal/domain/shared/daterange"
)

func rng(t *testing.T, start, end string) daterange.DateRange {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		t.Fatalf("parse %q: %v", start, err)
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		t.Fatalf("parse %q: %v", end, err)
	}
	r, err := daterange.New(s, e)
	if err != nil {
		t.Fatalf("range %s-%s: %v", start, end, err)
	}
	return r
}

func TestWithinOpenWindows(t *testing.T) {
	morning := "2026-07-01T08:00:00Z"
	noon := "2026-07-01T12:00:00Z"
	evening := "2026-07-01T20:00:00Z"

	tests := []struct {
		name    string
		open    []daterange.DateRange
		request daterange.DateRange
		want    bool
	}{
		{
			name:    "inside a single window",
			open:    []daterange.DateRange{rng(t, morning, evening)},
			request: rng(t, "2026-07-01T10:00:00Z", "2026-07-01T11:00:00Z"),
			want:    true,
		},
		{
			name:    "exact window match",
			open:    []daterange.DateRange{rng(t, morning, evening)},
			request: rng(t, morning, evening),
			want:    true,
		},
		{
			name:    "boundary start and end accepted",
			open:    []daterange.DateRange{rng(t, morning, noon)},
			request: rng(t, morning, noon),
			want:    true,
		},
		{
			name:    "no published windows",
			open:    nil,
			request: rng(t, morning, noon),
			want:    false,
		},
		{
			name: "covered only by two adjacent windows",
			open: []daterange.DateRange{
				rng(t, morning, noon),
				rng(t, noon, evening),
			},
			request: rng(t, "2026-07-01T10:00:00Z", "2026-07-01T14:00:00Z"),
			want:    false,
		},
		{
			name: "second window matches",
			open: []daterange.DateRange{
				rng(t, morning, noon),
				rng(t, noon, evening),
			},
			request: rng(t, "2026-07-01T13:00:00Z", "2026-07-01T15:00:00Z"),
			want:    true,
		},
		{
			name:    "extends past the window",
			open:    []daterange.DateRange{rng(t, morning, noon)},
			request: rng(t, "2026-07-01T11:00:00Z", "2026-07-01T13:00:00Z"),
			want:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New("pool-1", tt.open)
			if got := s.WithinOpenWindows(tt.request); got != tt.want {
				t.Errorf("WithinOpenWindows() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReserve(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	window := rng(t, "2026-07-01T08:00:00Z", "2026-07-31T20:00:00Z")

	t.Run("records a block", func(t *testing.T) {
		s := New("pool-1", []daterange.DateRange{window})
		r := rng(t, "2026-07-02T10:00:00Z", "2026-07-02T14:00:00Z")
		if err := s.Reserve(r, "booking-1", now); err != nil {
			t.Fatalf("Reserve: %v", err)
		}
		if len(s.Booked) != 1 || s.Booked[0].BookingID != "booking-1" {
			t.Fatalf("unexpected blocks: %+v", s.Booked)
		}
	})

	t.Run("rejects range outside windows", func(t *testing.T) {
		s := New("pool-1", []daterange.DateRange{window})
		r := rng(t, "2026-08-01T10:00:00Z", "2026-08-01T14:00:00Z")
		if err := s.Reserve(r, "booking-1", now); !errors.Is(err, ErrOutsideOpenWindows) {
			t.Errorf("expected ErrOutsideOpenWindows, got %v", err)
		}
	})

	t.Run("rejects overlapping reservation", func(t *testing.T) {
		s := New("pool-1", []daterange.DateRange{window})
		first := rng(t, "2026-07-02T10:00:00Z", "2026-07-02T14:00:00Z")
		second := rng(t, "2026-07-02T12:00:00Z", "2026-07-02T16:00:00Z")
		if err := s.Reserve(first, "booking-1", now); err != nil {
			t.Fatalf("Reserve first: %v", err)
		}
		if err := s.Reserve(second, "booking-2", now); !errors.Is(err, ErrRangeBooked) {
			t.Errorf("expected ErrRangeBooked, got %v", err)
		}
	})

	t.Run("back to back reservations allowed", func(t *testing.T) {
		s := New("pool-1", []daterange.DateRange{window})
		first := rng(t, "2026-07-02T10:00:00Z", "2026-07-02T14:00:00Z")
		second := rng(t, "2026-07-02T14:00:00Z", "2026-07-02T18:00:00Z")
		if err := s.Reserve(first, "booking-1", now); err != nil {
			t.Fatalf("Reserve first: %v", err)
		}
		if err := s.Reserve(second, "booking-2", now); err != nil {
			t.Errorf("Reserve second: %v", err)
		}
	})
}

func TestRelease(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	window := rng(t, "2026-07-01T08:00:00Z", "2026-07-31T20:00:00Z")
	r := rng(t, "2026-07-02T10:00:00Z", "2026-07-02T14:00:00Z")

	s := New("pool-1", []daterange.DateRange{window})
	if err := s.Reserve(r, "booking-1", now); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if err := s.Release("booking-1"); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if len(s.Booked) != 0 {
		t.Fatalf("expected empty blocks, got %+v", s.Booked)
	}
	// The freed range is reservable again.
	if err := s.Reserve(r, "booking-2", now); err != nil {
		t.Errorf("Reserve after release: %v", err)
	}

	if err := s.Release("missing"); !errors.Is(err, ErrBlockNotFound) {
		t.Errorf("expected ErrBlockNotFound, got %v", err)
	}
}

func TestCanReserve(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	window := rng(t, "2026-07-01T08:00:00Z", "2026-07-31T20:00:00Z")
	taken := rng(t, "2026-07-02T10:00:00Z", "2026-07-02T14:00:00Z")

	s := New("pool-1", []daterange.DateRange{window})
	if err := s.Reserve(taken, "booking-1", now); err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	if s.CanReserve(rng(t, "2026-07-02T11:00:00Z", "2026-07-02T12:00:00Z")) {
		t.Error("expected overlap with existing block to be rejected")
	}
	if !s.CanReserve(rng(t, "2026-07-03T11:00:00Z", "2026-07-03T12:00:00Z")) {
		t.Error("expected free range to be reservable")
	}
	// The public availability probe stays true even though the range is
	// blocked; only the reservation path checks blocks.
	if !s.WithinOpenWindows(taken) {
		t.Error("expected WithinOpenWindows to ignore blocks")
	}
}

func TestSyncOpenWindows(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	s := New("pool-1", []daterange.DateRange{rng(t, "2026-07-01T08:00:00Z", "2026-07-31T20:00:00Z")})
	if err := s.Reserve(rng(t, "2026-07-02T10:00:00Z", "2026-07-02T14:00:00Z"), "booking-1", now); err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	s.SyncOpenWindows([]daterange.DateRange{rng(t, "2026-08-01T08:00:00Z", "2026-08-31T20:00:00Z")})
	if len(s.Open) != 1 || s.Open[0].Start.Month() != time.August {
		t.Errorf("unexpected windows: %+v", s.Open)
	}
	if len(s.Booked) != 1 {
		t.Errorf("expected blocks preserved, got %+v", s.Booked)
	}
}
