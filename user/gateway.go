// Package user is the gateway over the users collection.
package user

import (
	"context"
	"time"

	"github.com/saulfrancisco-ruizacevedo/go-tourmarket"
	"github.com/saulfrancisco-ruizacevedo/go-tourmarket/models"
)

// Gateway registers and reads user profiles.
type Gateway struct {
	users tourmarket.Collection
	now   func() time.Time
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithClock sets the clock used when a stored profile has no registration date.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

// NewGateway creates a user gateway over store.
func NewGateway(store tourmarket.DocumentStore, opts ...Option) *Gateway {
	g := &Gateway{
		users: store.Collection(tourmarket.UsersCollection),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Register writes the whole profile under u.ID, replacing any existing one.
func (g *Gateway) Register(ctx context.Context, u models.User) error {
	doc, err := tourmarket.Encode(&u)
	if err != nil {
		return err
	}
	return g.users.Set(ctx, u.ID, doc)
}

// GetUser reads a profile. It fails only with ErrNotFound or a store error;
// missing fields fall back to defaults.
func (g *Gateway) GetUser(ctx context.Context, id string) (models.User, error) {
	doc, err := g.users.Get(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	return Decode(doc, g.now), nil
}
