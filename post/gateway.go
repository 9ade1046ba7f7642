// Package post is the gateway over the posts collection. It keeps an in-process
// mirror of the signed-in user's posts that changes only after the store
// confirms a write.
package post

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saulfrancisco-ruizacevedo/go-tourmarket"
	"github.com/saulfrancisco-ruizacevedo/go-tourmarket/identity"
	"github.com/saulfrancisco-ruizacevedo/go-tourmarket/models"
)

// ownerField is the document field holding the post owner.
const ownerField = "ownerID"

// Draft holds what a tourist fills in for a new post.
type Draft struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
	Price       decimal.Decimal
	ImageURL    *string
}

// Gateway performs CRUD over posts.
type Gateway struct {
	posts    tourmarket.Collection
	users    tourmarket.Collection
	identity identity.Provider
	newID    func() string
	logger   *log.Logger

	mu     sync.RWMutex
	mirror []models.Post
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the logger used for skipped documents.
func WithLogger(l *log.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(f func() string) Option {
	return func(g *Gateway) { g.newID = f }
}

// NewGateway creates a post gateway over store.
func NewGateway(store tourmarket.DocumentStore, id identity.Provider, opts ...Option) *Gateway {
	g := &Gateway{
		posts:    store.Collection(tourmarket.PostsCollection),
		users:    store.Collection(tourmarket.UsersCollection),
		identity: id,
		newID:    uuid.NewString,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddPost creates a post owned by the signed-in user.
func (g *Gateway) AddPost(ctx context.Context, d Draft) (models.Post, error) {
	owner, ok := g.identity.CurrentUserID()
	if !ok {
		return models.Post{}, tourmarket.ErrNotAuthenticated
	}

	p := models.Post{
		ID:          g.newID(),
		Title:       d.Title,
		Description: d.Description,
		OwnerID:     owner,
		Date:        d.Date,
		Location:    d.Location,
		IsActive:    true,
		Price:       d.Price,
		ImageURL:    d.ImageURL,
	}
	doc, err := tourmarket.Encode(&p)
	if err != nil {
		return models.Post{}, err
	}
	if err := g.posts.Set(ctx, p.ID, doc); err != nil {
		return models.Post{}, err
	}

	g.mu.Lock()
	g.mirror = append(g.mirror, p)
	g.mu.Unlock()
	return p, nil
}

// OwnPosts fetches the signed-in user's posts and replaces the mirror with them.
// Documents missing a required field are left out.
func (g *Gateway) OwnPosts(ctx context.Context) ([]models.Post, error) {
	owner, ok := g.identity.CurrentUserID()
	if !ok {
		return nil, tourmarket.ErrNotAuthenticated
	}
	docs, err := g.posts.Where(ctx, ownerField, owner)
	if err != nil {
		return nil, err
	}
	posts := g.decodeAll(docs)

	g.mu.Lock()
	g.mirror = append([]models.Post(nil), posts...)
	g.mu.Unlock()
	return posts, nil
}

// AllPosts fetches every post for the listing feed. The mirror is not touched.
func (g *Gateway) AllPosts(ctx context.Context) ([]models.Post, error) {
	docs, err := g.posts.All(ctx)
	if err != nil {
		return nil, err
	}
	return g.decodeAll(docs), nil
}

// UpdatePost overwrites every field of the stored post except its owner,
// which stays as it was at creation. Last writer wins.
func (g *Gateway) UpdatePost(ctx context.Context, p models.Post) error {
	doc, err := tourmarket.Encode(&p)
	if err != nil {
		return err
	}
	delete(doc, ownerField)
	if err := g.posts.Update(ctx, p.ID, doc); err != nil {
		return err
	}

	g.mu.Lock()
	for i := range g.mirror {
		if g.mirror[i].ID == p.ID {
			p.OwnerID = g.mirror[i].OwnerID
			g.mirror[i] = p
			break
		}
	}
	g.mu.Unlock()
	return nil
}

// DeletePost removes the post. Deleting an unknown id succeeds.
func (g *Gateway) DeletePost(ctx context.Context, id string) error {
	if err := g.posts.Delete(ctx, id); err != nil {
		return err
	}

	g.mu.Lock()
	for i := range g.mirror {
		if g.mirror[i].ID == id {
			g.mirror = append(g.mirror[:i], g.mirror[i+1:]...)
			break
		}
	}
	g.mu.Unlock()
	return nil
}

// OwnerContact looks up the owner's name and phone number. Either is nil when
// it cannot be read, whatever the reason.
func (g *Gateway) OwnerContact(ctx context.Context, ownerID string) (name, phone *string) {
	doc, err := g.users.Get(ctx, ownerID)
	if err != nil {
		return nil, nil
	}
	if s, ok := doc.Text("name"); ok {
		name = &s
	}
	if s, ok := doc.Text("phoneNumber"); ok {
		phone = &s
	}
	return name, phone
}

// CountOwnPosts counts the signed-in user's posts in the store.
func (g *Gateway) CountOwnPosts(ctx context.Context) (int64, error) {
	owner, ok := g.identity.CurrentUserID()
	if !ok {
		return 0, tourmarket.ErrNotAuthenticated
	}
	return g.posts.CountWhere(ctx, ownerField, owner)
}

// Cached returns a copy of the mirror.
func (g *Gateway) Cached() []models.Post {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]models.Post(nil), g.mirror...)
}

func (g *Gateway) decodeAll(docs []tourmarket.Document) []models.Post {
	posts, skipped := DecodeAll(docs)
	if skipped > 0 {
		g.logger.Printf("post: skipped %d malformed documents out of %d", skipped, len(docs))
	}
	return posts
}
