// Package blobstore uploads item photos and hands back public URLs.
package blobstore

import (
	"context"
	"io"
)

// Store writes an object, makes it publicly readable and returns its URL.
type Store interface {
	Put(ctx context.Context, path string, body io.Reader, contentType string) (string, error)
}
