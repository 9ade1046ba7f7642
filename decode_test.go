package tourmarket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDocumentAccessors(t *testing.T) {
	at := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	d := Document{
		"title":    "Boat tour",
		"active":   true,
		"price":    int64(100),
		"rating":   float64(4),
		"date":     at,
		"visited":  "2024-07-01T12:00:00Z",
		"langs":    []interface{}{"tr", 3, "en"},
		"history":  []interface{}{map[string]interface{}{"name": "Ordu"}, "junk"},
		"wrongKey": 12,
	}

	s, ok := d.Text("title")
	assert.True(t, ok)
	assert.Equal(t, "Boat tour", s)

	_, ok = d.Text("wrongKey")
	assert.False(t, ok)

	b, ok := d.Bool("active")
	assert.True(t, ok && b)

	f, ok := d.Float("price")
	assert.True(t, ok)
	assert.Equal(t, 100.0, f)

	n, ok := d.Int("rating")
	assert.True(t, ok)
	assert.Equal(t, int64(4), n)

	tm, ok := d.Time("date")
	assert.True(t, ok)
	assert.True(t, at.Equal(tm))

	tm, ok = d.Time("visited")
	assert.True(t, ok)
	assert.True(t, at.Equal(tm))

	langs, ok := d.Strings("langs")
	assert.True(t, ok)
	assert.Equal(t, []string{"tr", "en"}, langs)

	history, ok := d.Documents("history")
	assert.True(t, ok)
	assert.Len(t, history, 1)

	_, ok = d.Time("missing")
	assert.False(t, ok)
}
