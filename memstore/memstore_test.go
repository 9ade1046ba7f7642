package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/saulfrancisco-ruizacevedo/go-tourmarket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()
	c := s.Collection("posts")

	require.NoError(t, c.Set(ctx, "p-1", tourmarket.Document{"id": "p-1", "ownerID": "u-1", "title": "a"}))
	require.NoError(t, c.Set(ctx, "p-2", tourmarket.Document{"id": "p-2", "ownerID": "u-2", "title": "b"}))
	require.NoError(t, c.Set(ctx, "p-3", tourmarket.Document{"id": "p-3", "ownerID": "u-1", "title": "c"}))

	own, err := c.Where(ctx, "ownerID", "u-1")
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, "p-1", own[0]["id"])
	assert.Equal(t, "p-3", own[1]["id"])

	n, err := c.CountWhere(ctx, "ownerID", "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, c.Update(ctx, "p-1", tourmarket.Document{"title": "z", "ownerID": nil}))
	doc, err := c.Get(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "z", doc["title"])
	assert.NotContains(t, doc, "ownerID")

	require.NoError(t, c.Delete(ctx, "p-1"))
	require.NoError(t, c.Delete(ctx, "p-1"))
	_, err = c.Get(ctx, "p-1")
	assert.ErrorIs(t, err, tourmarket.ErrNotFound)

	all, err := c.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateMissingDocument(t *testing.T) {
	c := New().Collection("posts")
	err := c.Update(context.Background(), "nope", tourmarket.Document{"title": "x"})
	assert.ErrorIs(t, err, tourmarket.ErrNotFound)
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	c := New().Collection("users")
	require.NoError(t, c.Set(ctx, "u-1", tourmarket.Document{"name": "Ali"}))

	doc, err := c.Get(ctx, "u-1")
	require.NoError(t, err)
	doc["name"] = "Veli"

	again, err := c.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Ali", again["name"])
}

func TestFail(t *testing.T) {
	ctx := context.Background()
	s := New()
	c := s.Collection("posts")

	s.Fail(errors.New("unavailable"))
	_, err := c.All(ctx)
	var te *tourmarket.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "unavailable", err.Error())

	s.Fail(nil)
	_, err = c.All(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, s.Calls())
}
