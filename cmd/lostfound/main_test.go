package main

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkumari69302-hue/Campus-lost-found/internal/blobstore"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/config"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/docstore"
)

func TestLevelRouter(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := slog.New(newLevelRouter(&stdout, &stderr)).With("component", "test")

	logger.Debug("hidden")
	logger.Info("hello")
	logger.Warn("careful")
	logger.Error("broken")

	if strings.Contains(stdout.String(), "hidden") || strings.Contains(stderr.String(), "hidden") {
		t.Error("debug records should be dropped")
	}
	if !strings.Contains(stdout.String(), "hello") || !strings.Contains(stdout.String(), "careful") {
		t.Errorf("expected info and warn on stdout, got %q", stdout.String())
	}
	if strings.Contains(stdout.String(), "broken") {
		t.Error("error record written to stdout")
	}
	if !strings.Contains(stderr.String(), "broken") || !strings.Contains(stderr.String(), "component=test") {
		t.Errorf("expected error with attrs on stderr, got %q", stderr.String())
	}
}

func TestOpenDefaultStores(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Docstore.SQLitePath = filepath.Join(dir, "test.sqlite3")
	cfg.Blobstore.LocalDir = filepath.Join(dir, "uploads")

	docs, err := openDocstore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("openDocstore: %v", err)
	}
	defer docs.Close()
	if _, ok := docs.(*docstore.SQLiteStore); !ok {
		t.Errorf("expected sqlite store, got %T", docs)
	}

	blobs, closer, err := openBlobstore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("openBlobstore: %v", err)
	}
	if _, ok := blobs.(*blobstore.LocalStore); !ok || closer != nil {
		t.Errorf("expected local store without closer, got %T %v", blobs, closer)
	}
}

func TestOpenStoresUnknownDriver(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Docstore.Driver = "firestore"
	cfg.Blobstore.Driver = "ftp"

	if _, err := openDocstore(context.Background(), cfg); err == nil {
		t.Error("expected error for unknown docstore driver")
	}
	if _, _, err := openBlobstore(context.Background(), cfg); err == nil {
		t.Error("expected error for unknown blobstore driver")
	}
}
