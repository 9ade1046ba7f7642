package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPriceString(t *testing.T) {
	p := Post{Price: decimal.RequireFromString("1200")}
	assert.Equal(t, "$1200.00", p.PriceString())
}

func TestApplicationStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusAccepted.Terminal())
	assert.True(t, StatusRejected.Terminal())
}

func TestNewNotification(t *testing.T) {
	at := time.Now()
	a := NewNotification("New application", "A guide applied to your post", at)
	b := NewNotification("New application", "A guide applied to your post", at)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.IsRead)
	assert.Equal(t, at, a.Date)
}
