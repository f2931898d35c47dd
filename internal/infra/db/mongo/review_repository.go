package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainpool "poolbnb/internal/domain/pool"
	domainreview "poolbnb/internal/domain/review"
	domainuser "poolbnb/internal/domain/user"
)

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(reviewsCollection)}
}

func (r *ReviewRepository) ListByPool(ctx context.Context, poolID domainpool.ID) ([]*domainreview.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"pool_id": string(poolID)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainreview.Review
	for cursor.Next(ctx) {
		var doc reviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *ReviewRepository) Save(ctx context.Context, rv *domainreview.Review) error {
	doc := reviewDocument{
		ID:        string(rv.ID),
		AuthorID:  string(rv.AuthorID),
		PoolID:    string(rv.PoolID),
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt.UnixMilli(),
	}
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, filter, update, opts)
	return err
}

type reviewDocument struct {
	ID        string `bson:"_id"`
	AuthorID  string `bson:"author_id"`
	PoolID    string `bson:"pool_id"`
	Rating    int    `bson:"rating"`
	Comment   string `bson:"comment"`
	CreatedAt int64  `bson:"created_at"`
}

func (d reviewDocument) toAggregate() *domainreview.Review {
	return &domainreview.Review{
		ID:        domainreview.ID(d.ID),
		AuthorID:  domainuser.ID(d.AuthorID),
		PoolID:    domainpool.ID(d.PoolID),
		Rating:    d.Rating,
		Comment:   d.Comment,
		CreatedAt: timestampToTime(d.CreatedAt),
	}
}
