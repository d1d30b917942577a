package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	c := New(true)
	etag := c.Set("areas:list:", []byte(`{"success":true}`), time.Minute)
	require.NotEmpty(t, etag)

	data, gotTag, ok := c.Get("areas:list:")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"success":true}`), data)
	assert.Equal(t, etag, gotTag)

	_, _, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c := New(true)
	c.Set("k", []byte("v"), -time.Second)
	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestDisabledCache(t *testing.T) {
	c := New(false)
	etag := c.Set("k", []byte("v"), time.Minute)
	assert.NotEmpty(t, etag, "disabled cache still computes ETags")

	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestInvalidatePrefix(t *testing.T) {
	c := New(true)
	c.Set("areas:list:", []byte("a"), time.Minute)
	c.Set("areas:list:region=west", []byte("b"), time.Minute)
	c.Set("communities:list:", []byte("c"), time.Minute)

	c.Invalidate("areas:")

	_, _, ok := c.Get("areas:list:")
	assert.False(t, ok)
	_, _, ok = c.Get("areas:list:region=west")
	assert.False(t, ok)
	_, _, ok = c.Get("communities:list:")
	assert.True(t, ok, "other prefixes survive")
}

func TestComputeETag(t *testing.T) {
	a := ComputeETag([]byte("payload"))
	assert.Regexp(t, `^W/"[0-9a-f]{16}"$`, a)
	assert.Equal(t, a, ComputeETag([]byte("payload")))
	assert.NotEqual(t, a, ComputeETag([]byte("other")))
}

func TestCheckETagMatch(t *testing.T) {
	assert.True(t, CheckETagMatch(`W/"abc"`, `W/"abc"`))
	assert.True(t, CheckETagMatch("*", `W/"abc"`))
	assert.False(t, CheckETagMatch("", `W/"abc"`))
	assert.False(t, CheckETagMatch(`W/"xyz"`, `W/"abc"`))
}
