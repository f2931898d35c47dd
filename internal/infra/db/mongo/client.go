package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Client struct {
	DB *mongo.Database
}

func New(uri, database string) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	opts := options.Client().ApplyURI(uri).SetRetryWrites(true)
	m, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Client{DB: m.Database(database)}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.DB.Client().Ping(ctx, nil)
}

func (c *Client) Disconnect(ctx context.Context) error {
	return c.DB.Client().Disconnect(ctx)
}

// EnsureIndexes creates the indexes the repositories rely on, most
// importantly the unique email constraint on users.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	_, err := c.DB.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = c.DB.Collection(bookingsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "guest_id", Value: 1}}},
		{Keys: bson.D{{Key: "pool_id", Value: 1}}},
	})
	if err != nil {
		return err
	}
	_, err = c.DB.Collection(reviewsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "pool_id", Value: 1}},
	})
	return err
}

const (
	usersCollection     = "users"
	poolsCollection     = "pools"
	schedulesCollection = "schedules"
	bookingsCollection  = "bookings"
	reviewsCollection   = "reviews"
)

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
