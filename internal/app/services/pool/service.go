package pool

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"poolbnb/internal/app/events"
	"poolbnb/internal/app/validate"
	domainpool "poolbnb/internal/domain/pool"
	domainschedule "poolbnb/internal/domain/schedule"
	"poolbnb/internal/domain/shared/daterange"
	domainuser "poolbnb/internal/domain/user"
)

var (
	ErrInvalidInput    = errors.New("pool: invalid pool details")
	ErrInvalidCriteria = errors.New("pool: invalid criteria")
)

type Service struct {
	Pools     domainpool.Repository
	Schedules domainschedule.Repository
	Events    events.Publisher
	Logger    *slog.Logger
}

type AvailabilityWindow struct {
	StartDate string
	EndDate   string
}

type CreateParams struct {
	Host         domainuser.ID
	Name         string
	Location     string
	Description  string
	PriceCents   int64
	Availability []AvailabilityWindow
	Amenities    []string
	Photos       []string
}

// Create validates the submitted details, persists the pool and seeds
// its booking schedule with the published windows.
func (s *Service) Create(ctx context.Context, params CreateParams) (*domainpool.Pool, error) {
	gate := validate.PoolDetails{
		Name:        params.Name,
		Location:    params.Location,
		Description: params.Description,
		PriceCents:  params.PriceCents,
		Amenities:   params.Amenities,
		Photos:      params.Photos,
	}
	for _, window := range params.Availability {
		gate.Availability = append(gate.Availability, validate.AvailabilityWindow{
			StartDate: window.StartDate,
			EndDate:   window.EndDate,
		})
	}
	if !validate.Pool(gate) {
		return nil, ErrInvalidInput
	}

	windows := make([]daterange.DateRange, 0, len(params.Availability))
	for _, window := range params.Availability {
		start, err := validate.ParseISODate(window.StartDate)
		if err != nil {
			return nil, ErrInvalidInput
		}
		end, err := validate.ParseISODate(window.EndDate)
		if err != nil {
			return nil, ErrInvalidInput
		}
		r, err := daterange.New(start, end)
		if err != nil {
			return nil, ErrInvalidInput
		}
		windows = append(windows, r)
	}

	now := time.Now().UTC()
	p, err := domainpool.New(domainpool.CreateParams{
		ID:               domainpool.ID(uuid.NewString()),
		Host:             domainpool.HostID(params.Host),
		Name:             params.Name,
		Location:         params.Location,
		Description:      params.Description,
		HourlyPriceCents: params.PriceCents,
		Availability:     windows,
		Amenities:        params.Amenities,
		Photos:           params.Photos,
		Now:              now,
	})
	if err != nil {
		return nil, err
	}
	if err := s.Pools.Save(ctx, p); err != nil {
		return nil, err
	}
	if err := s.Schedules.Save(ctx, domainschedule.New(p.ID, p.OpenWindows())); err != nil {
		return nil, err
	}

	if s.Events != nil {
		event := events.Event{
			Type:       events.TypePoolCreated,
			Key:        string(p.ID),
			OccurredAt: now,
			Payload:    map[string]any{"pool_id": p.ID, "host_id": p.Host},
		}
		if err := s.Events.Publish(ctx, event); err != nil && s.Logger != nil {
			s.Logger.Warn("event publish failed", "type", event.Type, "error", err)
		}
	}
	if s.Logger != nil {
		s.Logger.Info("pool created", "pool_id", p.ID, "host_id", p.Host)
	}
	return p, nil
}

func (s *Service) ByID(ctx context.Context, id domainpool.ID) (*domainpool.Pool, error) {
	return s.Pools.ByID(ctx, id)
}

func (s *Service) Featured(ctx context.Context) ([]*domainpool.Pool, error) {
	return s.Pools.Featured(ctx)
}

func (s *Service) ByHost(ctx context.Context, host domainuser.ID) ([]*domainpool.Pool, error) {
	return s.Pools.ByHost(ctx, domainpool.HostID(host))
}

type SearchParams struct {
	Location      string
	StartDate     string
	EndDate       string
	PriceMinCents int64
	PriceMaxCents int64
	Features      []string
}

// Search finds pools in a location whose published windows cover the
// requested dates, optionally narrowed by price and amenities.
func (s *Service) Search(ctx context.Context, params SearchParams) ([]*domainpool.Pool, error) {
	ok := validate.Search(validate.SearchCriteria{
		Location:  params.Location,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
	})
	if !ok {
		return nil, ErrInvalidCriteria
	}
	start, err := validate.ParseISODate(params.StartDate)
	if err != nil {
		return nil, ErrInvalidCriteria
	}
	end, err := validate.ParseISODate(params.EndDate)
	if err != nil {
		return nil, ErrInvalidCriteria
	}
	query := domainpool.SearchParams{
		Location:      params.Location,
		Start:         start,
		End:           end,
		PriceMinCents: params.PriceMinCents,
		PriceMaxCents: params.PriceMaxCents,
		Features:      params.Features,
	}
	return s.Pools.Search(ctx, query.Normalized())
}

type SortFilterParams struct {
	SortBy        string
	Order         string
	PriceMinCents int64
	PriceMaxCents int64
	Features      []string
}

func (s *Service) SortFilter(ctx context.Context, params SortFilterParams) ([]*domainpool.Pool, error) {
	if !validate.SortFilter(validate.SortFilterCriteria{SortBy: params.SortBy, Order: params.Order}) {
		return nil, ErrInvalidCriteria
	}
	query := domainpool.SortFilterParams{
		SortBy:        domainpool.SortField(params.SortBy),
		Order:         domainpool.SortOrder(params.Order),
		PriceMinCents: params.PriceMinCents,
		PriceMaxCents: params.PriceMaxCents,
		Features:      params.Features,
	}
	return s.Pools.SortFilter(ctx, query.Normalized())
}
