// Package mongostore backs the Store contract with MongoDB. Partial updates
// are expressed as $set, so the field merge happens atomically at the store
// rather than as a read-modify-write in application code.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"atelier-backend/internal/store"
)

type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func New(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &MongoStore{client: client, db: client.Database(dbName)}, nil
}

// noObjectID hides Mongo's own _id from every read; documents are addressed
// by their string "id" field.
var noObjectID = bson.M{"_id": 0}

func (m *MongoStore) Insert(ctx context.Context, collection string, doc store.Doc) error {
	_, err := m.db.Collection(collection).InsertOne(ctx, bson.M(doc))
	return err
}

func (m *MongoStore) FindByID(ctx context.Context, collection, id string) (store.Doc, error) {
	return m.FindOne(ctx, collection, store.Doc{"id": id})
}

func (m *MongoStore) FindOne(ctx context.Context, collection string, filter store.Doc) (store.Doc, error) {
	var doc bson.M
	err := m.db.Collection(collection).
		FindOne(ctx, bson.M(filter), options.FindOne().SetProjection(noObjectID)).
		Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return normalize(doc), nil
}

func (m *MongoStore) Find(ctx context.Context, collection string, filter store.Doc, opts store.FindOptions) ([]store.Doc, error) {
	findOpts := options.Find().SetProjection(noObjectID)
	if opts.SortField != "" {
		order := 1
		if opts.SortDesc {
			order = -1
		}
		findOpts.SetSort(bson.D{{Key: opts.SortField, Value: order}})
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := m.db.Collection(collection).Find(ctx, bson.M(filter), findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]store.Doc, 0)
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, normalize(doc))
	}
	return docs, cursor.Err()
}

func (m *MongoStore) SetFields(ctx context.Context, collection, id string, fields store.Doc) (bool, error) {
	res, err := m.db.Collection(collection).UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M(fields)},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (m *MongoStore) DeleteByID(ctx context.Context, collection, id string) (bool, error) {
	res, err := m.db.Collection(collection).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (m *MongoStore) DeleteOlderThan(ctx context.Context, collection, field, cutoff string) (int64, error) {
	res, err := m.db.Collection(collection).DeleteMany(ctx, bson.M{field: bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// normalize rewrites the driver's container types (primitive.M, primitive.A)
// into plain maps and slices so callers see the same value shapes every
// Store implementation produces.
func normalize(doc bson.M) store.Doc {
	return normalizeValue(map[string]interface{}(doc)).(store.Doc)
}

func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case bson.M:
		return normalizeValue(map[string]interface{}(t))
	case map[string]interface{}:
		out := make(store.Doc, len(t))
		for k, val := range t {
			out[k] = normalizeValue(val)
		}
		return out
	case bson.A:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = normalizeValue(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = normalizeValue(val)
		}
		return out
	default:
		return v
	}
}
