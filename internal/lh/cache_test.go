package lh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectionCacheRoundTrip(t *testing.T) {
	cc := NewCollectionCache()
	assert.True(t, cc.Stale("bookmarks"), "missing keys count as stale")

	cc.Put("bookmarks", []Bookmark{{ID: "a"}})
	v, ok := cc.Get("bookmarks")
	assert.True(t, ok)
	assert.Len(t, v.([]Bookmark), 1)
	assert.False(t, cc.Stale("bookmarks"))
}

func TestCollectionCacheInvalidate(t *testing.T) {
	cc := NewCollectionCache()
	cc.Put("bookmarks", []Bookmark{{ID: "a"}})
	cc.Put("tags", []Tag{{Name: "go"}})

	cc.Invalidate("bookmarks")

	_, ok := cc.Get("bookmarks")
	assert.False(t, ok)
	assert.True(t, cc.Stale("bookmarks"))
	_, ok = cc.Get("tags")
	assert.True(t, ok, "other keys stay fresh")

	cc.Put("bookmarks", []Bookmark{{ID: "b"}})
	assert.False(t, cc.Stale("bookmarks"))
}
