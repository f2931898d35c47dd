package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainpool "poolbnb/internal/domain/pool"
	"poolbnb/internal/domain/shared/daterange"
)

type PoolRepository struct {
	col *mongo.Collection
}

func NewPoolRepository(db *mongo.Database) *PoolRepository {
	return &PoolRepository{col: db.Collection(poolsCollection)}
}

func (r *PoolRepository) ByID(ctx context.Context, id domainpool.ID) (*domainpool.Pool, error) {
	var doc poolDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainpool.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *PoolRepository) ByHost(ctx context.Context, host domainpool.HostID) ([]*domainpool.Pool, error) {
	return r.find(ctx, bson.M{"host_id": string(host)}, nil)
}

func (r *PoolRepository) Featured(ctx context.Context) ([]*domainpool.Pool, error) {
	return r.find(ctx, bson.M{"featured": true}, nil)
}

// Search matches the location case-insensitively and requires a single
// published window covering the requested dates, delegating the scan to
// the query engine via $elemMatch.
func (r *PoolRepository) Search(ctx context.Context, params domainpool.SearchParams) ([]*domainpool.Pool, error) {
	filter := bson.M{}
	if params.Location != "" {
		filter["location"] = bson.M{"$regex": primitive.Regex{Pattern: params.Location, Options: "i"}}
	}
	if !params.Start.IsZero() && !params.End.IsZero() {
		filter["availability"] = bson.M{"$elemMatch": bson.M{
			"start_date": bson.M{"$lte": params.Start.UnixMilli()},
			"end_date":   bson.M{"$gte": params.End.UnixMilli()},
		}}
	}
	applyPriceFilter(filter, params.PriceMinCents, params.PriceMaxCents)
	applyFeatureFilter(filter, params.Features)
	return r.find(ctx, filter, nil)
}

func (r *PoolRepository) SortFilter(ctx context.Context, params domainpool.SortFilterParams) ([]*domainpool.Pool, error) {
	filter := bson.M{}
	applyPriceFilter(filter, params.PriceMinCents, params.PriceMaxCents)
	applyFeatureFilter(filter, params.Features)

	direction := -1
	if params.Order == domainpool.OrderAsc {
		direction = 1
	}
	sortKey := "hourly_price_cents"
	switch params.SortBy {
	case domainpool.SortByRating:
		sortKey = "rating"
	case domainpool.SortByCreated:
		sortKey = "created_at"
	case domainpool.SortByName:
		sortKey = "name"
	case domainpool.SortByFeatured:
		sortKey = "featured"
	}
	opts := options.Find().SetSort(bson.D{{Key: sortKey, Value: direction}})
	return r.find(ctx, filter, opts)
}

func (r *PoolRepository) Save(ctx context.Context, p *domainpool.Pool) error {
	doc := newPoolDocument(p)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, filter, update, opts)
	return err
}

func (r *PoolRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domainpool.Pool, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.col.Find(ctx, filter, opts)
	} else {
		cursor, err = r.col.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainpool.Pool
	for cursor.Next(ctx) {
		var doc poolDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func applyPriceFilter(filter bson.M, min, max int64) {
	price := bson.M{}
	if min > 0 {
		price["$gte"] = min
	}
	if max > 0 {
		price["$lte"] = max
	}
	if len(price) > 0 {
		filter["hourly_price_cents"] = price
	}
}

func applyFeatureFilter(filter bson.M, features []string) {
	if len(features) > 0 {
		filter["amenities"] = bson.M{"$all": features}
	}
}

type poolDocument struct {
	ID               string          `bson:"_id"`
	HostID           string          `bson:"host_id"`
	Name             string          `bson:"name"`
	Location         string          `bson:"location"`
	Description      string          `bson:"description"`
	HourlyPriceCents int64           `bson:"hourly_price_cents"`
	Availability     []rangeDocument `bson:"availability"`
	Amenities        []string        `bson:"amenities"`
	Photos           []string        `bson:"photos"`
	Featured         bool            `bson:"featured"`
	Rating           float64         `bson:"rating"`
	CreatedAt        int64           `bson:"created_at"`
	UpdatedAt        int64           `bson:"updated_at"`
	Version          int64           `bson:"version"`
}

type rangeDocument struct {
	StartDate int64 `bson:"start_date"`
	EndDate   int64 `bson:"end_date"`
}

func newPoolDocument(p *domainpool.Pool) poolDocument {
	doc := poolDocument{
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
		CreatedAt:        p.CreatedAt.UnixMilli(),
		UpdatedAt:        p.UpdatedAt.UnixMilli(),
		Version:          p.Version,
	}
	for _, w := range p.Availability {
		doc.Availability = append(doc.Availability, rangeDocument{
			StartDate: w.Start.UnixMilli(),
			EndDate:   w.End.UnixMilli(),
		})
	}
	return doc
}

func (d poolDocument) toAggregate() *domainpool.Pool {
	p := &domainpool.Pool{
		ID:               domainpool.ID(d.ID),
		Host:             domainpool.HostID(d.HostID),
		Name:             d.Name,
		Location:         d.Location,
		Description:      d.Description,
		HourlyPriceCents: d.HourlyPriceCents,
		Amenities:        d.Amenities,
		Photos:           d.Photos,
		Featured:         d.Featured,
		Rating:           d.Rating,
		CreatedAt:        timestampToTime(d.CreatedAt),
		UpdatedAt:        timestampToTime(d.UpdatedAt),
		Version:          d.Version,
	}
	for _, w := range d.Availability {
		p.Availability = append(p.Availability, daterange.DateRange{
			Start: timestampToTime(w.StartDate),
			End:   timestampToTime(w.EndDate),
		})
	}
	return p
}
