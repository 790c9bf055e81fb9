// Package docstore defines the document-store contract the order and
// reservation managers run against: create, patch, and live queries that
// re-deliver the full matching result set on every change.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound reports an update against a missing document.
var ErrNotFound = errors.New("document not found")

type Op string

const (
	OpEq  Op = "=="
	OpGte Op = ">="
	OpIn  Op = "in"
)

// FieldCreatedAt is the store-assigned creation timestamp. It can be
// filtered and sorted on like a document field.
const FieldCreatedAt = "createdAt"

type Filter struct {
	Field string
	Op    Op
	Value any // string for ==/>= on doc fields, time.Time for createdAt, []string for in
}

type Query struct {
	Filters []Filter
	OrderBy string
	Desc    bool
}

// Document is one stored record. ID and CreatedAt are assigned by the
// store at write time; Data is the document body as it was persisted.
type Document struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	Data      json.RawMessage `json:"data"`
}

// Unsubscribe releases a live query. Callers must invoke it when the
// owning view goes away or the subscription leaks.
type Unsubscribe func()

type Store interface {
	// Create persists doc and returns the assigned id and timestamp.
	Create(ctx context.Context, collection string, doc any) (id string, createdAt time.Time, err error)

	// Update applies a partial patch to one document. The patch is atomic
	// per call; a failed update leaves the prior document intact.
	Update(ctx context.Context, collection, id string, patch map[string]any) error

	// Subscribe registers a live query. fn receives the current full
	// snapshot immediately and again after every matching change.
	Subscribe(collection string, q Query, fn func([]Document)) (Unsubscribe, error)
}
