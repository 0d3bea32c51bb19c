package server

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/timvisee/qr2term/pkg/errors"
)

// historyCollection is the MongoDB collection holding render events.
const historyCollection = "renders"

// MongoHistory persists render events in MongoDB, for deployments where
// history must survive restarts or is shared between instances.
type MongoHistory struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoHistory connects to MongoDB and verifies the server is reachable
// before returning. The ctx bounds the initial connect and ping.
func NewMongoHistory(ctx context.Context, uri, database string) (*MongoHistory, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to connect to mongodb")
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "mongodb unreachable at %s", uri)
	}

	return &MongoHistory{
		client: client,
		coll:   client.Database(database).Collection(historyCollection),
	}, nil
}

// Record stores an event.
func (h *MongoHistory) Record(ctx context.Context, ev Event) error {
	if _, err := h.coll.InsertOne(ctx, ev); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to record event %s", ev.ID)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (h *MongoHistory) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := h.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to query history")
	}
	defer cur.Close(ctx)

	var events []Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to decode history")
	}
	return events, nil
}

// Count returns the total number of recorded events.
func (h *MongoHistory) Count(ctx context.Context) (int64, error) {
	n, err := h.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "failed to count history")
	}
	return n, nil
}

// Close disconnects from MongoDB.
func (h *MongoHistory) Close(ctx context.Context) error {
	return h.client.Disconnect(ctx)
}

// Ensure MongoHistory implements History.
var _ History = (*MongoHistory)(nil)
