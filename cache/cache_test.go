package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, Key("a", "b"), Key("a", "b"))
	assert.NotEqual(t, Key("a", "b"), Key("ab"))
	assert.NotEqual(t, Key("a|b"), Key("a", "b", ""))
	assert.Len(t, Key("x"), 64)
}

func TestGetSetExpiry(t *testing.T) {
	c := New(10, time.Minute)
	defer c.Close()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Set("k", "v")
	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)

	c.evictExpired()
	assert.Zero(t, c.Len())
}

func TestCapacity(t *testing.T) {
	c := New(2, time.Minute)
	defer c.Close()

	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("b", "3")
	assert.Equal(t, 2, c.Len())

	c.Set("c", "4")
	assert.Equal(t, 2, c.Len())
	got, ok := c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, "4", got)
}

func TestDisabled(t *testing.T) {
	c := New(10, 0)
	defer c.Close()
	c.Set("k", "v")
	_, ok := c.Get("k")
	assert.False(t, ok)

	var nilCache *Cache
	nilCache.Set("k", "v")
	_, ok = nilCache.Get("k")
	assert.False(t, ok)
}
