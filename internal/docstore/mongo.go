package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps each collection in a MongoDB (or DocumentDB) collection of
// the same name. IDs are ObjectID hex strings.
type MongoStore struct {
	client   *mongo.Client
	database *mongo.Database
}

// OpenMongo connects to uri and verifies the connection.
func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return &MongoStore{client: client, database: client.Database(database)}, nil
}

// Add inserts a document and returns the generated ObjectID.
func (s *MongoStore) Add(ctx context.Context, collection string, doc Document) (string, error) {
	id := primitive.NewObjectID()
	body := bson.M{"_id": id}
	for k, v := range doc {
		body[k] = v
	}

	if _, err := s.database.Collection(collection).InsertOne(ctx, body); err != nil {
		return "", unavailable("inserting document", err)
	}
	return id.Hex(), nil
}

// Get returns a document by ObjectID hex. Malformed IDs are not found.
func (s *MongoStore) Get(ctx context.Context, collection, id string) (Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var raw bson.M
	err = s.database.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable("finding document", err)
	}

	_, doc := fromBSON(raw)
	return doc, nil
}

// Query runs a find with one equality condition per filter.
func (s *MongoStore) Query(ctx context.Context, collection string, filters ...Filter) ([]Snapshot, error) {
	if err := checkFilters(filters); err != nil {
		return nil, unavailable("querying documents", err)
	}

	cursor, err := s.database.Collection(collection).Find(ctx, mongoFilter(filters))
	if err != nil {
		return nil, unavailable("querying documents", err)
	}
	defer cursor.Close(ctx)

	return drainCursor(ctx, cursor)
}

// documentCursor is the part of *mongo.Cursor used to read results.
type documentCursor interface {
	Next(ctx context.Context) bool
	Decode(val any) error
	Err() error
}

func drainCursor(ctx context.Context, cursor documentCursor) ([]Snapshot, error) {
	var snaps []Snapshot
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, unavailable("decoding document", err)
		}
		id, doc := fromBSON(raw)
		snaps = append(snaps, Snapshot{ID: id, Data: doc})
	}
	if err := cursor.Err(); err != nil {
		return nil, unavailable("reading cursor", err)
	}

	return snaps, nil
}

// Ping checks that the server answers.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func mongoFilter(filters []Filter) bson.M {
	filter := bson.M{}
	for _, f := range filters {
		filter[f.Field] = f.Value
	}
	return filter
}

// fromBSON splits the _id off a decoded document.
func fromBSON(raw bson.M) (string, Document) {
	var id string
	switch v := raw["_id"].(type) {
	case primitive.ObjectID:
		id = v.Hex()
	case string:
		id = v
	default:
		id = fmt.Sprint(v)
	}

	doc := make(Document, len(raw))
	for k, v := range raw {
		if k != "_id" {
			doc[k] = v
		}
	}
	return id, doc
}
