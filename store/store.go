// Package store abstracts the remote document store: keyed CRUD, filtered
// queries, and live subscriptions that deliver full snapshots on every change.
// The Firestore implementation is the production backend; the memory
// implementation backs tests and local development.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no document exists under the given id.
var ErrNotFound = errors.New("store: document not found")

type serverTimestamp struct{}

// ServerTimestamp is a sentinel field value. Implementations replace it with
// the store's own write time.
var ServerTimestamp = serverTimestamp{}

// Document is a raw document as delivered by the store.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// Filter is a single field condition. Op is one of "==", ">=", "<=".
type Filter struct {
	Path  string
	Op    string
	Value interface{}
}

// Query selects documents of one collection.
type Query struct {
	Collection string
	Filters    []Filter
	OrderBy    string
	Desc       bool
	Limit      int
}

// Snapshot is a full point-in-time listing of the documents matching a query.
type Snapshot struct {
	Docs []Document
}

// Store is the remote document store consumed by the session manager and the
// project data synchronizer.
type Store interface {
	// Add creates a document with a generated id and returns the id.
	Add(ctx context.Context, collection string, data map[string]interface{}) (string, error)
	// Set creates or replaces the document under id.
	Set(ctx context.Context, collection, id string, data map[string]interface{}) error
	// Update applies a partial update; only the listed fields change.
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error
	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error
	// Get reads a single document.
	Get(ctx context.Context, collection, id string) (Document, error)
	// GetAll runs the query once.
	GetAll(ctx context.Context, q Query) ([]Document, error)
	// Subscribe opens a live subscription. The returned channel receives the
	// current snapshot and then a new one after every matching change, until
	// ctx is cancelled; the channel is closed when the subscription ends.
	Subscribe(ctx context.Context, q Query) (<-chan Snapshot, error)
}
