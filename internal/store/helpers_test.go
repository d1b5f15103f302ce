package store

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/pkumari69302-hue/Campus-lost-found/internal/docstore"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/model"
)

// recordingStore counts queries per collection.
type recordingStore struct {
	docstore.Store
	mu      sync.Mutex
	queries map[string]int
}

func newRecordingStore(t *testing.T) *recordingStore {
	return &recordingStore{Store: docstore.NewTestStore(t), queries: make(map[string]int)}
}

func (r *recordingStore) Query(ctx context.Context, collection string, filters ...docstore.Filter) ([]docstore.Snapshot, error) {
	r.mu.Lock()
	r.queries[collection]++
	r.mu.Unlock()
	return r.Store.Query(ctx, collection, filters...)
}

// failingStore fails every write after passing reads through.
type failingStore struct {
	docstore.Store
}

func (f failingStore) Add(context.Context, string, docstore.Document) (string, error) {
	return "", &docstore.UnavailableError{Op: "adding document", Err: errors.New("connection refused")}
}

type brokenStore struct{ docstore.Store }

func (brokenStore) Query(context.Context, string, ...docstore.Filter) ([]docstore.Snapshot, error) {
	return nil, &docstore.UnavailableError{Op: "querying documents", Err: errors.New("connection refused")}
}

type putCall struct {
	path        string
	contentType string
	body        string
}

// fakeBlobs records uploads.
type fakeBlobs struct {
	mu   sync.Mutex
	puts []putCall
	err  error
}

func (f *fakeBlobs) Put(_ context.Context, path string, body io.Reader, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	f.puts = append(f.puts, putCall{path: path, contentType: contentType, body: string(data)})
	f.mu.Unlock()
	return "https://blobs.example/" + path, nil
}

func seedItem(t *testing.T, docs docstore.Store, item model.Item) string {
	t.Helper()
	id, err := docs.Add(context.Background(), ItemsCollection, item.Document())
	if err != nil {
		t.Fatalf("seeding item: %v", err)
	}
	return id
}

func countItems(t *testing.T, docs docstore.Store) int {
	t.Helper()
	snaps, err := docs.Query(context.Background(), ItemsCollection)
	if err != nil {
		t.Fatalf("counting items: %v", err)
	}
	return len(snaps)
}
