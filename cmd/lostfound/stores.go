package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"google.golang.org/api/option"

	"github.com/pkumari69302-hue/Campus-lost-found/internal/blobstore"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/config"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/docstore"
)

// openDocstore connects to the configured document store.
func openDocstore(ctx context.Context, cfg *config.Config) (docstore.Store, error) {
	switch cfg.Docstore.Driver {
	case config.DocstoreSQLite:
		s, err := docstore.OpenSQLite(cfg.Docstore.SQLitePath)
		if err != nil {
			return nil, err
		}
		slog.Info("document store ready", "driver", "sqlite", "path", cfg.Docstore.SQLitePath)
		return s, nil

	case config.DocstoreMongo:
		s, err := docstore.OpenMongo(ctx, cfg.Docstore.MongoURI, cfg.Docstore.MongoDatabase)
		if err != nil {
			return nil, err
		}
		slog.Info("document store ready", "driver", "mongo", "database", cfg.Docstore.MongoDatabase)
		return s, nil

	case config.DocstoreDatastore:
		creds, err := cfg.Credentials()
		if err != nil {
			return nil, err
		}
		projectID, err := cfg.ProjectID(creds)
		if err != nil {
			return nil, err
		}
		s, err := docstore.OpenDatastore(ctx, projectID, option.WithCredentialsJSON(creds))
		if err != nil {
			return nil, err
		}
		slog.Info("document store ready", "driver", "datastore", "project", projectID)
		return s, nil
	}
	return nil, fmt.Errorf("unknown docstore driver %q", cfg.Docstore.Driver)
}

// openBlobstore connects to the configured blob store. The returned closer
// is nil when the store holds no resources.
func openBlobstore(ctx context.Context, cfg *config.Config) (blobstore.Store, io.Closer, error) {
	switch cfg.Blobstore.Driver {
	case config.BlobstoreLocal:
		s, err := blobstore.NewLocalStore(cfg.Blobstore.LocalDir, cfg.Blobstore.BaseURL)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("blob store ready", "driver", "local", "dir", cfg.Blobstore.LocalDir)
		return s, nil, nil

	case config.BlobstoreS3:
		s, err := blobstore.NewS3Store(cfg.Blobstore.Region, cfg.Blobstore.Bucket)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("blob store ready", "driver", "s3", "bucket", cfg.Blobstore.Bucket)
		return s, nil, nil

	case config.BlobstoreGCS:
		creds, err := cfg.Credentials()
		if err != nil {
			return nil, nil, err
		}
		s, err := blobstore.NewGCSStore(ctx, cfg.Blobstore.Bucket, option.WithCredentialsJSON(creds))
		if err != nil {
			return nil, nil, err
		}
		slog.Info("blob store ready", "driver", "gcs", "bucket", cfg.Blobstore.Bucket)
		return s, s, nil
	}
	return nil, nil, fmt.Errorf("unknown blobstore driver %q", cfg.Blobstore.Driver)
}
