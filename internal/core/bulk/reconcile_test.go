package bulk

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	invalidated []string
}

func (f *fakeCache) Invalidate(keys ...string) {
	f.invalidated = append(f.invalidated, keys...)
}

func completedRun(t *testing.T) *Run {
	t.Helper()
	r, err := NewRun(ActionPublish, []string{"bookmark-1", "bookmark-2"})
	require.NoError(t, err)
	r.Apply(StartEvent{Total: 2})
	r.Apply(ItemEvent{ID: "bookmark-1", Status: ItemSucceeded})
	r.Apply(ItemEvent{ID: "bookmark-2", Status: ItemFailed, Message: "API said nope"})
	r.Apply(CompleteEvent{Success: 1, Failed: 1})
	r.Finish(nil)
	return r
}

func TestReconcileCompletedClearsOnlySucceeded(t *testing.T) {
	cache := &fakeCache{}
	sel := NewSelection()
	sel.ToggleAll([]string{"bookmark-1", "bookmark-2"}, true)
	rc := NewReconciler(cache, sel)

	banner := rc.Close(completedRun(t))

	assert.NotEmpty(t, cache.invalidated, "completed runs must invalidate caches")
	assert.Contains(t, cache.invalidated, CacheBookmarks)
	// Failed ids stay selected for retry.
	assert.Equal(t, []string{"bookmark-2"}, sel.IDs())
	assert.Equal(t, "Published 1 items; 1 failed.", banner.Text)
	assert.Equal(t, BannerInfo, banner.Kind)
}

func TestReconcileAllSucceeded(t *testing.T) {
	cache := &fakeCache{}
	sel := NewSelection()
	sel.Toggle("a")
	rc := NewReconciler(cache, sel)

	r, err := NewRun(ActionArchive, []string{"a"})
	require.NoError(t, err)
	r.Apply(ItemEvent{ID: "a", Status: ItemSucceeded})
	r.Apply(CompleteEvent{Success: 1, Failed: 0})

	banner := rc.Close(r)
	assert.Equal(t, BannerSuccess, banner.Kind)
	assert.Equal(t, "Archived 1 items.", banner.Text)
	assert.Zero(t, sel.Len())
}

func TestReconcileFailedTouchesNothing(t *testing.T) {
	cache := &fakeCache{}
	sel := NewSelection()
	sel.ToggleAll([]string{"a", "b"}, true)
	rc := NewReconciler(cache, sel)

	r, err := NewRun(ActionPublish, []string{"a", "b"})
	require.NoError(t, err)
	r.Finish(errors.New("Server exploded"))

	banner := rc.Close(r)
	assert.Empty(t, cache.invalidated)
	assert.Equal(t, []string{"a", "b"}, sel.IDs())
	assert.Equal(t, BannerError, banner.Kind)
	assert.Equal(t, "Bulk publish failed: Server exploded", banner.Text)
}

func TestReconcileCancelledTouchesNothing(t *testing.T) {
	cache := &fakeCache{}
	sel := NewSelection()
	sel.ToggleAll([]string{"a", "b"}, true)
	rc := NewReconciler(cache, sel)

	r, err := NewRun(ActionPublish, []string{"a", "b"})
	require.NoError(t, err)
	r.Apply(ItemEvent{ID: "a", Status: ItemSucceeded})
	r.Finish(context.Canceled)

	banner := rc.Close(r)
	assert.Empty(t, cache.invalidated)
	assert.Equal(t, []string{"a", "b"}, sel.IDs(), "selection untouched on cancel")
	assert.Equal(t, BannerInfo, banner.Kind)
	assert.Equal(t, "Bulk publish cancelled.", banner.Text)
}
