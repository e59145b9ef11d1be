package history

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// DefaultDatabase holds the snapshots collection.
	DefaultDatabase = "gitlevel"

	// Collection is the MongoDB collection name for records.
	Collection = "snapshots"
)

// MongoStore keeps records in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and ensures the (username, taken_at) index.
// An empty database selects [DefaultDatabase].
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		database = DefaultDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	s := &MongoStore{client: client, coll: client.Database(database).Collection(Collection)}
	_, err = s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}, {Key: "taken_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create index: %w", err)
	}
	return s, nil
}

// Append inserts r.
func (s *MongoStore) Append(ctx context.Context, r Record) error {
	r.Username = normalize(r.Username)
	if _, err := s.coll.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// List queries the user's records, newest first.
func (s *MongoStore) List(ctx context.Context, username string, limit int) ([]Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "taken_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.coll.Find(ctx, bson.D{{Key: "username", Value: normalize(username)}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find snapshots: %w", err)
	}
	var records []Record
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode snapshots: %w", err)
	}
	return records, nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}
