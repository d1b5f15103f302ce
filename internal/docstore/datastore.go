package docstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"cloud.google.com/go/datastore"
	"google.golang.org/api/option"
)

// DatastoreStore maps collections to Google Cloud Datastore kinds. IDs are the
// numeric auto-allocated key IDs in base 10.
type DatastoreStore struct {
	client *datastore.Client
}

// OpenDatastore creates a Datastore client for projectID.
func OpenDatastore(ctx context.Context, projectID string, opts ...option.ClientOption) (*DatastoreStore, error) {
	client, err := datastore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating datastore client: %w", err)
	}
	return &DatastoreStore{client: client}, nil
}

// Add puts a new entity under an incomplete key.
func (s *DatastoreStore) Add(ctx context.Context, collection string, doc Document) (string, error) {
	props := toProperties(doc)
	key, err := s.client.Put(ctx, datastore.IncompleteKey(collection, nil), &props)
	if err != nil {
		return "", unavailable("putting entity", err)
	}
	return strconv.FormatInt(key.ID, 10), nil
}

// Get loads an entity by numeric ID. Non-numeric IDs are not found.
func (s *DatastoreStore) Get(ctx context.Context, collection, id string) (Document, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return nil, ErrNotFound
	}

	var props datastore.PropertyList
	err = s.client.Get(ctx, datastore.IDKey(collection, n, nil), &props)
	if errors.Is(err, datastore.ErrNoSuchEntity) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable("getting entity", err)
	}
	return fromProperties(props), nil
}

// Query runs a kind query with one equality filter per Filter.
func (s *DatastoreStore) Query(ctx context.Context, collection string, filters ...Filter) ([]Snapshot, error) {
	if err := checkFilters(filters); err != nil {
		return nil, unavailable("querying entities", err)
	}

	q := datastore.NewQuery(collection)
	for _, f := range filters {
		q = q.FilterField(f.Field, "=", f.Value)
	}

	var results []datastore.PropertyList
	keys, err := s.client.GetAll(ctx, q, &results)
	if err != nil {
		return nil, unavailable("querying entities", err)
	}

	snaps := make([]Snapshot, len(keys))
	for i, key := range keys {
		snaps[i] = Snapshot{ID: strconv.FormatInt(key.ID, 10), Data: fromProperties(results[i])}
	}
	return snaps, nil
}

// Close closes the client.
func (s *DatastoreStore) Close() error {
	return s.client.Close()
}

// maxIndexedString is the Datastore limit for indexed string properties.
const maxIndexedString = 1500

// toProperties converts a document to a property list in field name order.
func toProperties(doc Document) datastore.PropertyList {
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)

	props := make(datastore.PropertyList, 0, len(names))
	for _, name := range names {
		v := doc[name]
		s, isString := v.(string)
		props = append(props, datastore.Property{
			Name:    name,
			Value:   v,
			NoIndex: isString && len(s) > maxIndexedString,
		})
	}
	return props
}

func fromProperties(props datastore.PropertyList) Document {
	doc := make(Document, len(props))
	for _, p := range props {
		doc[p.Name] = p.Value
	}
	return doc
}
