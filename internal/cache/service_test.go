package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLSetGet(t *testing.T) {
	c := NewTTL(time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok, "missing key should not be found")

	c.Set("k", "v")
	v, ok := c.Get("k")
	assert.True(t, ok, "stored key should be found")
	assert.Equal(t, "v", v)

	c.Delete("k")
	_, ok = c.Get("k")
	assert.False(t, ok, "deleted key should not be found")
}

func TestTTLExpiry(t *testing.T) {
	c := NewTTL(20 * time.Millisecond)
	c.Set("k", 42)

	_, ok := c.Get("k")
	assert.True(t, ok, "entry should be valid inside the TTL window")

	time.Sleep(40 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry should expire after the TTL window")
}

func TestTTLNoExpiration(t *testing.T) {
	c := NewTTL(0)
	c.Set("k", "forever")

	time.Sleep(10 * time.Millisecond)
	v, ok := c.Get("k")
	assert.True(t, ok, "non-expiring entry should survive")
	assert.Equal(t, "forever", v)

	c.Flush()
	_, ok = c.Get("k")
	assert.False(t, ok, "flush should drop everything")
}

func TestServiceDefaults(t *testing.T) {
	s := NewService(Options{})

	assert.NotNil(t, s.WorldState)
	assert.NotNil(t, s.Items)
	assert.NotNil(t, s.Rotations)

	// Fresh services are independent: the whole point of constructing one
	// per test instead of clearing globals.
	s.Items.Set("k", "v")
	other := NewService(Options{})
	_, ok := other.Items.Get("k")
	assert.False(t, ok)
}
