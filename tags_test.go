package tourmarket

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kind string

type stop struct {
	Name string    `doc:"name"`
	At   time.Time `doc:"at"`
}

type listing struct {
	ID       string          `doc:"id"`
	Kind     kind            `doc:"kind"`
	Price    decimal.Decimal `doc:"price"`
	Tags     []string        `doc:"tags"`
	Stops    []stop          `doc:"stops"`
	Image    *string         `doc:"image,omitempty"`
	Cover    *string         `doc:"cover"`
	Count    int             `doc:"count"`
	internal string
}

func TestEncode(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	doc, err := Encode(&listing{
		ID:    "l-1",
		Kind:  "tour",
		Price: decimal.RequireFromString("12.50"),
		Tags:  []string{"sea", "boat"},
		Stops: []stop{{Name: "Amasra", At: at}},
		Count: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, "l-1", doc["id"])
	assert.Equal(t, "tour", doc["kind"])
	assert.Equal(t, 12.5, doc["price"])
	assert.Equal(t, []interface{}{"sea", "boat"}, doc["tags"])
	assert.Equal(t, []interface{}{Document{"name": "Amasra", "at": at}}, doc["stops"])
	assert.Equal(t, int64(4), doc["count"])
	assert.NotContains(t, doc, "image")
	assert.Contains(t, doc, "cover")
	assert.Nil(t, doc["cover"])
	assert.Len(t, doc, 7)
}

func TestEncodeRejectsUntaggedStruct(t *testing.T) {
	type bare struct{ Name string }
	_, err := Encode(bare{Name: "x"})
	assert.Error(t, err)
}

func TestEncodeRejectsNilPointer(t *testing.T) {
	var l *listing
	_, err := Encode(l)
	assert.Error(t, err)
}
