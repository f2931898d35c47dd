// Package dto holds the JSON shapes exchanged over the HTTP surface.
package dto

import (
	"time"

	domainbooking "poolbnb/internal/domain/booking"
	domainpool "poolbnb/internal/domain/pool"
	domainreview "poolbnb/internal/domain/review"
	domainuser "poolbnb/internal/domain/user"
)

type UserProfile struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUserProfile(u *domainuser.User) UserProfile {
	return UserProfile{
		ID:        string(u.ID),
		FullName:  u.FullName,
		Email:     u.Email,
		Bio:       u.Profile.Bio,
		Avatar:    u.Profile.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

func NewAuthResponse(u *domainuser.User, token string) AuthResponse {
	return AuthResponse{Token: token, User: NewUserProfile(u)}
}

type AvailabilityWindow struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type Pool struct {
	ID               string               `json:"id"`
	HostID           string               `json:"host_id"`
	Name             string               `json:"name"`
	Location         string               `json:"location"`
	Description      string               `json:"description"`
	HourlyPriceCents int64                `json:"hourly_price_cents"`
	Availability     []AvailabilityWindow `json:"availability"`
	Amenities        []string             `json:"amenities"`
	Photos           []string             `json:"photos"`
	Featured         bool                 `json:"featured"`
	Rating           float64              `json:"rating"`
	CreatedAt        time.Time            `json:"created_at"`
}

func NewPool(p *domainpool.Pool) Pool {
	out := Pool{
		ID:               string(p.ID),
		HostID:           string(p.Host),
		Name:             p.Name,
		Location:         p.Location,
		Description:      p.Description,
		HourlyPriceCents: p.HourlyPriceCents,
		Amenities:        p.Amenities,
		Photos:           p.Photos,
		Featured:         p.Featured,
		Rating:           p.Rating,
		CreatedAt:        p.CreatedAt,
	}
	for _, w := range p.Availability {
		out.Availability = append(out.Availability, AvailabilityWindow{StartDate: w.Start, EndDate: w.End})
	}
	return out
}

func NewPoolList(pools []*domainpool.Pool) []Pool {
	out := make([]Pool, 0, len(pools))
	for _, p := range pools {
		out = append(out, NewPool(p))
	}
	return out
}

type Booking struct {
	ID        string    `json:"id"`
	PoolID    string    `json:"pool_id"`
	GuestID   string    `json:"guest_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Guests    int       `json:"guests"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBooking(b *domainbooking.Booking) Booking {
	return Booking{
		ID:        string(b.ID),
		PoolID:    string(b.PoolID),
		GuestID:   string(b.GuestID),
		StartDate: b.Range.Start,
		EndDate:   b.Range.End,
		Guests:    b.Guests,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
	}
}

func NewBookingList(bookings []*domainbooking.Booking) []Booking {
	out := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewBooking(b))
	}
	return out
}

type Review struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	PoolID    string    `json:"pool_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func NewReview(r *domainreview.Review) Review {
	return Review{
		ID:        string(r.ID),
		AuthorID:  string(r.AuthorID),
		PoolID:    string(r.PoolID),
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func NewReviewList(reviews []*domainreview.Review) []Review {
	out := make([]Review, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, NewReview(r))
	}
	return out
}
