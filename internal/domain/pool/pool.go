package pool

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"poolbnb/internal/domain/shared/daterange"
)

var (
	ErrIDRequired          = errors.New("pool: id is required")
	ErrHostRequired        = errors.New("pool: host is required")
	ErrNameLength          = errors.New("pool: name must be 1-100 characters")
	ErrLocationLength      = errors.New("pool: location must be 1-200 characters")
	ErrDescription         = errors.New("pool: description must be 1-1000 characters")
	ErrInvalidPrice        = errors.New("pool: hourly price must be positive")
	ErrAmenitiesEmpty      = errors.New("pool: at least one amenity is required")
	ErrPhotosEmpty         = errors.New("pool: at least one photo is required")
	ErrInvalidPhotoURL     = errors.New("pool: photo reference must be a valid URL")
	ErrNoAvailability      = errors.New("pool: at least one availability window is required")
	ErrInvalidAvailability = errors.New("pool: availability window end must be after start")
	ErrNotFound            = errors.New("pool: not found")
)

type ID string
type HostID string

// Pool is a rentable resource: hourly price, amenities, photos and a
// calendar of published open windows.
type Pool struct {
	ID               ID
	Host             HostID
	Name             string
	Location         string
	Description      string
	HourlyPriceCents int64
	Availability     []daterange.DateRange
	Amenities        []string
	Photos           []string
	Featured         bool
	Rating           float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Version          int64
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*Pool, error)
	ByHost(ctx context.Context, host HostID) ([]*Pool, error)
	Featured(ctx context.Context) ([]*Pool, error)
	Search(ctx context.Context, params SearchParams) ([]*Pool, error)
	SortFilter(ctx context.Context, params SortFilterParams) ([]*Pool, error)
	Save(ctx context.Context, p *Pool) error
}

type CreateParams struct {
	ID               ID
	Host             HostID
	Name             string
	Location         string
	Description      string
	HourlyPriceCents int64
	Availability     []daterange.DateRange
	Amenities        []string
	Photos           []string
	Featured         bool
	Now              time.Time
}

func New(params CreateParams) (*Pool, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(string(params.Host)) == "" {
		return nil, ErrHostRequired
	}
	name := strings.TrimSpace(params.Name)
	if len(name) < 1 || len(name) > 100 {
		return nil, ErrNameLength
	}
	location := strings.TrimSpace(params.Location)
	if len(location) < 1 || len(location) > 200 {
		return nil, ErrLocationLength
	}
	description := strings.TrimSpace(params.Description)
	if len(description) < 1 || len(description) > 1000 {
		return nil, ErrDescription
	}
	if params.HourlyPriceCents <= 0 {
		return nil, ErrInvalidPrice
	}
	if len(params.Availability) == 0 {
		return nil, ErrNoAvailability
	}
	for _, window := range params.Availability {
		if err := window.Validate(); err != nil {
			return nil, ErrInvalidAvailability
		}
	}
	if len(params.Amenities) == 0 {
		return nil, ErrAmenitiesEmpty
	}
	if len(params.Photos) == 0 {
		return nil, ErrPhotosEmpty
	}
	for _, photo := range params.Photos {
		if !validPhotoURL(photo) {
			return nil, ErrInvalidPhotoURL
		}
	}

	now := params.Now.UTC()
	return &Pool{
		ID:               params.ID,
		Host:             params.Host,
		Name:             name,
		Location:         location,
		Description:      description,
		HourlyPriceCents: params.HourlyPriceCents,
		Availability:     normalizeWindows(params.Availability),
		Amenities:        append([]string(nil), params.Amenities...),
		Photos:           append([]string(nil), params.Photos...),
		Featured:         params.Featured,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// OpenWindows returns a defensive copy of the published availability.
func (p *Pool) OpenWindows() []daterange.DateRange {
	return append([]daterange.DateRange(nil), p.Availability...)
}

func (p *Pool) MarkFeatured(featured bool, now time.Time) {
	p.Featured = featured
	p.UpdatedAt = now.UTC()
}

// normalizeWindows puts windows in UTC. Windows are kept exactly as the
// host published them: a request must fit inside a single window, so
// adjacent windows are deliberately not merged.
func normalizeWindows(windows []daterange.DateRange) []daterange.DateRange {
	out := make([]daterange.DateRange, 0, len(windows))
	for _, w := range windows {
		out = append(out, daterange.DateRange{Start: w.Start.UTC(), End: w.End.UTC()})
	}
	return out
}

func validPhotoURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
