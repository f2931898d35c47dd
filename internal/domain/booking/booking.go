package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"poolbnb/internal/domain/pool"
	"poolbnb/internal/domain/shared/daterange"
	"poolbnb/internal/domain/user"
)

var (
	ErrInvalidGuests = errors.New("booking: guests count must be positive")
	ErrGuestRequired = errors.New("booking: guest id required")
	ErrInvalidState  = errors.New("booking: invalid state transition")
	ErrNotFound      = errors.New("booking: not found")
	ErrNotOwner      = errors.New("booking: not owned by this user")
)

type ID string

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID        ID
	PoolID    pool.ID
	GuestID   user.ID
	Range     daterange.DateRange
	Guests    int
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*Booking, error)
	ListByGuest(ctx context.Context, guestID user.ID) ([]*Booking, error)
	ListByPool(ctx context.Context, poolID pool.ID) ([]*Booking, error)
	Save(ctx context.Context, b *Booking) error
}

type CreateParams struct {
	ID        ID
	PoolID    pool.ID
	GuestID   user.ID
	Range     daterange.DateRange
	Guests    int
	CreatedAt time.Time
}

// New creates a booking in confirmed status. A positive availability
// check precedes this constructor; no pending phase is exercised.
func New(params CreateParams) (*Booking, error) {
	if strings.TrimSpace(string(params.GuestID)) == "" {
		return nil, ErrGuestRequired
	}
	if params.Guests <= 0 {
		return nil, ErrInvalidGuests
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	now := params.CreatedAt.UTC()
	return &Booking{
		ID:        params.ID,
		PoolID:    params.PoolID,
		GuestID:   params.GuestID,
		Range:     params.Range,
		Guests:    params.Guests,
		Status:    StatusConfirmed,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (b *Booking) Cancel(now time.Time) error {
	switch b.Status {
	case StatusPending, StatusConfirmed:
	default:
		return ErrInvalidState
	}
	b.Status = StatusCancelled
	b.UpdatedAt = now.UTC()
	return nil
}

func (b *Booking) OwnedBy(guestID user.ID) bool {
	return b.GuestID == guestID
}
