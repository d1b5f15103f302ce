// Package docstore is the document database used for items and claims.
//
// A Store keeps schema-less documents grouped into named collections and
// answers equality-filtered queries on top-level fields. Results come back
// unordered; callers sort.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// Document is a schema-less record.
type Document = map[string]any

// Filter is an exact-match condition on a top-level field.
type Filter struct {
	Field string
	Value any
}

// Eq returns an equality filter.
func Eq(field string, value any) Filter {
	return Filter{Field: field, Value: value}
}

// Snapshot is a stored document together with its store-assigned ID.
type Snapshot struct {
	ID   string
	Data Document
}

// Store is implemented by every document backend.
type Store interface {
	// Add writes a new document and returns its assigned ID.
	Add(ctx context.Context, collection string, doc Document) (string, error)
	// Get returns the document with the given ID, or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Document, error)
	// Query returns all documents matching every filter, in no particular order.
	Query(ctx context.Context, collection string, filters ...Filter) ([]Snapshot, error)
	Close() error
}

// Pinger is implemented by backends that can report their readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ErrNotFound is returned by Get when no document has the requested ID.
var ErrNotFound = errors.New("document not found")

// ErrUnavailable matches every backend failure.
var ErrUnavailable = errors.New("document store unavailable")

// UnavailableError wraps a backend failure.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrUnavailable, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrUnavailable) hold for any UnavailableError.
func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }

func unavailable(op string, err error) error {
	return &UnavailableError{Op: op, Err: err}
}

var fieldName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// checkFilters rejects field names that are not plain identifiers.
func checkFilters(filters []Filter) error {
	for _, f := range filters {
		if !fieldName.MatchString(f.Field) {
			return fmt.Errorf("invalid filter field %q", f.Field)
		}
	}
	return nil
}
