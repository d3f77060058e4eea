package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_EvictionCallbackSeesUnprefixedKey(t *testing.T) {
	c := NewMemoryCache("session", time.Hour, time.Hour)
	var evicted []string
	c.OnEvicted(func(key string, _ interface{}) {
		evicted = append(evicted, key)
	})

	c.Set("abc", 1, time.Hour)
	c.Delete("abc")

	assert.Equal(t, []string{"abc"}, evicted)
}

func TestMemoryCache_ItemCountSkipsExpired(t *testing.T) {
	c := NewMemoryCache("session", time.Hour, time.Hour)
	c.Set("live", 1, time.Hour)
	c.Set("stale", 2, time.Millisecond)

	time.Sleep(5 * time.Millisecond)

	assert.Equal(t, 1, c.ItemCount())
	v, ok := c.Get("live")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = c.Get("stale")
	assert.False(t, ok)
}

func TestMemoryCache_ReplaceRequiresLiveEntry(t *testing.T) {
	c := NewMemoryCache("session", time.Hour, time.Hour)

	assert.Error(t, c.Replace("missing", 1, time.Hour))
	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("present", 1, time.Hour)
	require.NoError(t, c.Replace("present", 2, time.Hour))
	v, ok := c.Get("present")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}
