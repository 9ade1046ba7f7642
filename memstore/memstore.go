// Package memstore is an in-process DocumentStore. It stands in for the remote
// store in tests and demos and can be told to fail like a broken connection.
package memstore

import (
	"context"
	"reflect"
	"sync"

	"github.com/saulfrancisco-ruizacevedo/go-tourmarket"
)

type collectionData struct {
	docs  map[string]tourmarket.Document
	order []string
}

// Store keeps every collection in memory.
type Store struct {
	mu    sync.Mutex
	data  map[string]*collectionData
	calls int
	fail  error
}

// New returns an empty store.
func New() *Store {
	return &Store{data: make(map[string]*collectionData)}
}

// Collection returns a handle on the named collection.
func (s *Store) Collection(name string) tourmarket.Collection {
	return &collection{store: s, name: name}
}

// Fail makes every following call return err wrapped in a TransportError.
// Fail(nil) restores normal behaviour.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	s.fail = err
	s.mu.Unlock()
}

// Calls reports how many collection operations reached the store.
func (s *Store) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// enter locks the store and returns the collection data, or the injected failure.
func (s *Store) enter(name, op string) (*collectionData, error) {
	s.mu.Lock()
	s.calls++
	if s.fail != nil {
		return nil, &tourmarket.TransportError{Op: op, Err: s.fail}
	}
	cd, ok := s.data[name]
	if !ok {
		cd = &collectionData{docs: make(map[string]tourmarket.Document)}
		s.data[name] = cd
	}
	return cd, nil
}

type collection struct {
	store *Store
	name  string
}

func (c *collection) Set(_ context.Context, id string, doc tourmarket.Document) error {
	cd, err := c.store.enter(c.name, "set")
	defer c.store.mu.Unlock()
	if err != nil {
		return err
	}
	if _, ok := cd.docs[id]; !ok {
		cd.order = append(cd.order, id)
	}
	stored := make(tourmarket.Document, len(doc))
	for k, v := range doc {
		if v != nil {
			stored[k] = v
		}
	}
	cd.docs[id] = stored
	return nil
}

func (c *collection) Update(_ context.Context, id string, fields tourmarket.Document) error {
	cd, err := c.store.enter(c.name, "update")
	defer c.store.mu.Unlock()
	if err != nil {
		return err
	}
	doc, ok := cd.docs[id]
	if !ok {
		return tourmarket.ErrNotFound
	}
	for k, v := range fields {
		if v == nil {
			delete(doc, k)
			continue
		}
		doc[k] = v
	}
	return nil
}

func (c *collection) Get(_ context.Context, id string) (tourmarket.Document, error) {
	cd, err := c.store.enter(c.name, "get")
	defer c.store.mu.Unlock()
	if err != nil {
		return nil, err
	}
	doc, ok := cd.docs[id]
	if !ok {
		return nil, tourmarket.ErrNotFound
	}
	return doc.Clone(), nil
}

func (c *collection) Delete(_ context.Context, id string) error {
	cd, err := c.store.enter(c.name, "delete")
	defer c.store.mu.Unlock()
	if err != nil {
		return err
	}
	if _, ok := cd.docs[id]; !ok {
		return nil
	}
	delete(cd.docs, id)
	for i, v := range cd.order {
		if v == id {
			cd.order = append(cd.order[:i], cd.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *collection) Where(_ context.Context, field string, value interface{}) ([]tourmarket.Document, error) {
	cd, err := c.store.enter(c.name, "where")
	defer c.store.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return cd.match(field, value, true), nil
}

func (c *collection) All(_ context.Context) ([]tourmarket.Document, error) {
	cd, err := c.store.enter(c.name, "all")
	defer c.store.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return cd.match("", nil, false), nil
}

func (c *collection) CountWhere(_ context.Context, field string, value interface{}) (int64, error) {
	cd, err := c.store.enter(c.name, "count")
	defer c.store.mu.Unlock()
	if err != nil {
		return 0, err
	}
	return int64(len(cd.match(field, value, true))), nil
}

// match returns copies of the documents in insertion order.
func (cd *collectionData) match(field string, value interface{}, filter bool) []tourmarket.Document {
	out := make([]tourmarket.Document, 0, len(cd.order))
	for _, id := range cd.order {
		doc := cd.docs[id]
		if filter && !reflect.DeepEqual(doc[field], value) {
			continue
		}
		out = append(out, doc.Clone())
	}
	return out
}
