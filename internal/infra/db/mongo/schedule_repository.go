package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainpool "poolbnb/internal/domain/pool"
	domainschedule "poolbnb/internal/domain/schedule"
	"poolbnb/internal/domain/shared/daterange"
)

// ScheduleRepository persists one schedule document per pool. Save is a
// compare-and-swap on the stored version: the filter only matches when
// the document still carries the version the schedule was loaded with,
// so a racing reservation makes the losing save report
// schedule.ErrConcurrentUpdate instead of silently overwriting blocks.
type ScheduleRepository struct {
	col *mongo.Collection
}

func NewScheduleRepository(db *mongo.Database) *ScheduleRepository {
	return &ScheduleRepository{col: db.Collection(schedulesCollection)}
}

func (r *ScheduleRepository) ByPool(ctx context.Context, id domainpool.ID) (*domainschedule.Schedule, error) {
	var doc scheduleDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainschedule.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ScheduleRepository) Save(ctx context.Context, s *domainschedule.Schedule) error {
	doc := newScheduleDocument(s)
	filter := bson.M{"_id": doc.ID, "version": s.Version}
	doc.Version = s.Version + 1
	opts := options.Replace().SetUpsert(true)
	res, err := r.col.ReplaceOne(ctx, filter, doc, opts)
	if err != nil {
		// A stale-version upsert collides with the existing document.
		if mongo.IsDuplicateKeyError(err) {
			return domainschedule.ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return domainschedule.ErrConcurrentUpdate
	}
	s.Version = doc.Version
	return nil
}

type scheduleDocument struct {
	ID      string          `bson:"_id"`
	Open    []rangeDocument `bson:"open"`
	Booked  []blockDocument `bson:"booked"`
	Version int64           `bson:"version"`
}

type blockDocument struct {
	Range     rangeDocument `bson:"range"`
	BookingID string        `bson:"booking_id"`
	CreatedAt int64         `bson:"created_at"`
}

func newScheduleDocument(s *domainschedule.Schedule) scheduleDocument {
	doc := scheduleDocument{ID: string(s.PoolID), Version: s.Version}
	for _, w := range s.Open {
		doc.Open = append(doc.Open, rangeDocument{StartDate: w.Start.UnixMilli(), EndDate: w.End.UnixMilli()})
	}
	for _, b := range s.Booked {
		doc.Booked = append(doc.Booked, blockDocument{
			Range:     rangeDocument{StartDate: b.Range.Start.UnixMilli(), EndDate: b.Range.End.UnixMilli()},
			BookingID: b.BookingID,
			CreatedAt: b.CreatedAt.UnixMilli(),
		})
	}
	return doc
}

func (d scheduleDocument) toAggregate() *domainschedule.Schedule {
	s := &domainschedule.Schedule{PoolID: domainpool.ID(d.ID), Version: d.Version}
	for _, w := range d.Open {
		s.Open = append(s.Open, daterange.DateRange{Start: timestampToTime(w.StartDate), End: timestampToTime(w.EndDate)})
	}
	for _, b := range d.Booked {
		s.Booked = append(s.Booked, domainschedule.Block{
			Range:     daterange.DateRange{Start: timestampToTime(b.Range.StartDate), End: timestampToTime(b.Range.EndDate)},
			BookingID: b.BookingID,
			CreatedAt: timestampToTime(b.CreatedAt),
		})
	}
	return s
}
