package tourmarket

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	queries []string
	params  []map[string]interface{}
	result  *neo4j.EagerResult
	err     error
}

func (f *fakeRunner) Run(_ context.Context, query string, params map[string]interface{}) (*neo4j.EagerResult, error) {
	f.queries = append(f.queries, query)
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	if f.result == nil {
		return &neo4j.EagerResult{}, nil
	}
	return f.result, nil
}

func nodeResult(props ...map[string]interface{}) *neo4j.EagerResult {
	res := &neo4j.EagerResult{Keys: []string{"n"}}
	for i, p := range props {
		res.Records = append(res.Records, &neo4j.Record{
			Keys:   []string{"n"},
			Values: []interface{}{neo4j.Node{ElementId: string(rune('a' + i)), Labels: []string{"posts"}, Props: p}},
		})
	}
	return res
}

func TestNodeCollectionSetReplacesWholeNode(t *testing.T) {
	runner := &fakeRunner{}
	c := NewNodeCollection(runner, "users")

	visited := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	err := c.Set(context.Background(), "u-1", Document{
		"name":          "Ayse",
		"travelHistory": []interface{}{Document{"name": "Sinop", "dateVisited": visited}},
	})
	require.NoError(t, err)

	require.Len(t, runner.queries, 1)
	assert.Contains(t, runner.queries[0], "MERGE (n:`users` {id: $id}) SET n = $props")
	assert.Equal(t, "u-1", runner.params[0]["id"])

	props := runner.params[0]["props"].(map[string]interface{})
	assert.Equal(t, "u-1", props["id"])
	assert.Equal(t, "Ayse", props["name"])
	assert.IsType(t, "", props["travelHistory"])
	assert.Equal(t, []string{"travelHistory"}, props[embeddedProp])
}

func TestNodeCollectionUpdateMissingNode(t *testing.T) {
	runner := &fakeRunner{result: &neo4j.EagerResult{}}
	c := NewNodeCollection(runner, "posts")

	err := c.Update(context.Background(), "missing", Document{"title": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, runner.queries[0], "SET n += $props")
}

func TestNodeCollectionUpdateExistingNode(t *testing.T) {
	runner := &fakeRunner{result: nodeResult(map[string]interface{}{"id": "p-1"})}
	c := NewNodeCollection(runner, "posts")

	err := c.Update(context.Background(), "p-1", Document{"title": "new", "imageURL": nil})
	require.NoError(t, err)

	props := runner.params[0]["props"].(map[string]interface{})
	assert.Equal(t, "new", props["title"])
	assert.Contains(t, props, "imageURL")
	assert.Nil(t, props["imageURL"])
}

func TestNodeCollectionGet(t *testing.T) {
	runner := &fakeRunner{result: nodeResult(map[string]interface{}{
		"id":            "u-1",
		"name":          "Ayse",
		"travelHistory": `[{"name":"Sinop","dateVisited":"2024-05-01T00:00:00Z"}]`,
		embeddedProp:    []interface{}{"travelHistory"},
	})}
	c := NewNodeCollection(runner, "users")

	doc, err := c.Get(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Ayse", doc["name"])
	assert.NotContains(t, doc, embeddedProp)

	history, ok := doc["travelHistory"].([]interface{})
	require.True(t, ok)
	require.Len(t, history, 1)
	assert.Equal(t, "Sinop", history[0].(map[string]interface{})["name"])
}

func TestNodeCollectionGetNotFound(t *testing.T) {
	c := NewNodeCollection(&fakeRunner{}, "users")

	_, err := c.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNodeCollectionPassesTransportErrorThrough(t *testing.T) {
	cause := &TransportError{Op: "run", Err: errors.New("connection refused")}
	c := NewNodeCollection(&fakeRunner{err: cause}, "posts")

	_, err := c.All(context.Background())
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "connection refused", err.Error())
}

func TestNodeCollectionWhere(t *testing.T) {
	runner := &fakeRunner{result: nodeResult(
		map[string]interface{}{"id": "p-1", "ownerID": "u-1"},
		map[string]interface{}{"id": "p-2", "ownerID": "u-1"},
	)}
	c := NewNodeCollection(runner, "posts")

	docs, err := c.Where(context.Background(), "ownerID", "u-1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "p-2", docs[1]["id"])
}

func TestNodeCollectionCountWhere(t *testing.T) {
	runner := &fakeRunner{result: &neo4j.EagerResult{
		Keys:    []string{"total"},
		Records: []*neo4j.Record{{Keys: []string{"total"}, Values: []interface{}{int64(3)}}},
	}}
	c := NewNodeCollection(runner, "posts")

	n, err := c.CountWhere(context.Background(), "ownerID", "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestNodeStoreCachesCollections(t *testing.T) {
	s := NewNodeStore(&fakeRunner{})
	assert.Same(t, s.Collection(PostsCollection), s.Collection(PostsCollection))
	assert.NotSame(t, s.Collection(PostsCollection), s.Collection(UsersCollection))
}
