package blobstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
)

type fakeS3 struct {
	mu          sync.Mutex
	path        string
	acl         string
	contentType string
	body        string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "unexpected method", http.StatusMethodNotAllowed)
		return
	}
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.path = r.URL.Path
	f.acl = r.Header.Get("X-Amz-Acl")
	f.contentType = r.Header.Get("Content-Type")
	f.body = string(body)
	f.mu.Unlock()

	w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
	w.WriteHeader(http.StatusOK)
}

func newTestS3Store(t *testing.T, handler http.Handler) (*S3Store, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	s, err := NewS3Store("us-east-1", "lost-found", &aws.Config{
		Endpoint:         aws.String(server.URL),
		S3ForcePathStyle: aws.Bool(true),
		Credentials:      credentials.NewStaticCredentials("test", "test", ""),
	})
	if err != nil {
		t.Fatalf("NewS3Store: %v", err)
	}
	return s, server
}

func TestS3PutUploadsPublicObject(t *testing.T) {
	fake := &fakeS3{}
	s, server := newTestS3Store(t, fake)

	loc, err := s.Put(context.Background(), "items/20240101_120000_cat.png", strings.NewReader("png bytes"), "image/png")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	if fake.path != "/lost-found/items/20240101_120000_cat.png" {
		t.Errorf("unexpected object path %q", fake.path)
	}
	if fake.acl != "public-read" {
		t.Errorf("expected public-read ACL, got %q", fake.acl)
	}
	if fake.contentType != "image/png" {
		t.Errorf("expected image/png content type, got %q", fake.contentType)
	}
	if fake.body != "png bytes" {
		t.Errorf("unexpected body %q", fake.body)
	}
	if loc != server.URL+"/lost-found/items/20240101_120000_cat.png" {
		t.Errorf("unexpected location %q", loc)
	}
}

func TestS3PutPropagatesFailure(t *testing.T) {
	s, _ := newTestS3Store(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := s.Put(context.Background(), "items/x.png", strings.NewReader("x"), "image/png")
	if err == nil {
		t.Fatal("expected error from failing endpoint")
	}
}

func TestNewS3StoreRequiresBucket(t *testing.T) {
	if _, err := NewS3Store("us-east-1", ""); err == nil {
		t.Error("expected error for empty bucket")
	}
}
