package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "poolbnb/internal/domain/booking"
	domainpool "poolbnb/internal/domain/pool"
	"poolbnb/internal/domain/shared/daterange"
	domainuser "poolbnb/internal/domain/user"
)

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection(bookingsCollection)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.ID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID domainuser.ID) ([]*domainbooking.Booking, error) {
	return r.find(ctx, bson.M{"guest_id": string(guestID)})
}

func (r *BookingRepository) ListByPool(ctx context.Context, poolID domainpool.ID) ([]*domainbooking.Booking, error) {
	return r.find(ctx, bson.M{"pool_id": string(poolID)})
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, filter, update, opts)
	return err
}

func (r *BookingRepository) find(ctx context.Context, filter bson.M) ([]*domainbooking.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainbooking.Booking
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type bookingDocument struct {
	ID        string        `bson:"_id"`
	PoolID    string        `bson:"pool_id"`
	GuestID   string        `bson:"guest_id"`
	Range     rangeDocument `bson:"range"`
	Guests    int           `bson:"guests"`
	Status    string        `bson:"status"`
	CreatedAt int64         `bson:"created_at"`
	UpdatedAt int64         `bson:"updated_at"`
	Version   int64         `bson:"version"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	return bookingDocument{
		ID:        string(b.ID),
		PoolID:    string(b.PoolID),
		GuestID:   string(b.GuestID),
		Range:     rangeDocument{StartDate: b.Range.Start.UnixMilli(), EndDate: b.Range.End.UnixMilli()},
		Guests:    b.Guests,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt.UnixMilli(),
		UpdatedAt: b.UpdatedAt.UnixMilli(),
		Version:   b.Version,
	}
}

func (d bookingDocument) toAggregate() *domainbooking.Booking {
	return &domainbooking.Booking{
		ID:        domainbooking.ID(d.ID),
		PoolID:    domainpool.ID(d.PoolID),
		GuestID:   domainuser.ID(d.GuestID),
		Range:     daterange.DateRange{Start: timestampToTime(d.Range.StartDate), End: timestampToTime(d.Range.EndDate)},
		Guests:    d.Guests,
		Status:    domainbooking.Status(d.Status),
		CreatedAt: timestampToTime(d.CreatedAt),
		UpdatedAt: timestampToTime(d.UpdatedAt),
		Version:   d.Version,
	}
}
