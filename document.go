// Package tourmarket is the remote document store layer of the tourist/guide marketplace.
// It exposes schema-less collections of documents keyed by client-generated ids and ships
// a Neo4j-backed implementation in which every collection is a node label and every
// document is a node.
package tourmarket

import (
	"context"
	"errors"
)

// Collection names shared by the gateways.
const (
	PostsCollection = "posts"
	UsersCollection = "users"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrNotAuthenticated is returned by operations that need a signed-in identity
// when there is none.
var ErrNotAuthenticated = errors.New("no signed-in user")

// TransportError wraps an opaque failure reported by the remote store.
// Its message is the store's message, unchanged.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// Document is the schema-less representation of a stored record.
type Document map[string]interface{}

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Collection is a set of documents of one kind.
type Collection interface {
	// Set writes the whole document under id, replacing any existing one.
	Set(ctx context.Context, id string, doc Document) error
	// Update merges fields into an existing document. A nil value removes the field.
	// It returns ErrNotFound when no document has the given id.
	Update(ctx context.Context, id string, fields Document) error
	// Get returns the document stored under id or ErrNotFound.
	Get(ctx context.Context, id string) (Document, error)
	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, id string) error
	// Where returns every document whose field equals value.
	Where(ctx context.Context, field string, value interface{}) ([]Document, error)
	// All returns every document of the collection.
	All(ctx context.Context) ([]Document, error)
	// CountWhere counts documents whose field equals value.
	CountWhere(ctx context.Context, field string, value interface{}) (int64, error)
}

// DocumentStore hands out collections by name.
type DocumentStore interface {
	Collection(name string) Collection
}
