package bulk

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunRejectsEmptySelection(t *testing.T) {
	_, err := NewRun(ActionPublish, nil)
	require.ErrorIs(t, err, ErrNoItems)
}

func TestNewRunSeedsRowsInSubmissionOrder(t *testing.T) {
	r, err := NewRun(ActionPublish, []string{"b", "a", "c", "a"})
	require.NoError(t, err)

	rows := r.Rows()
	require.Len(t, rows, 3, "duplicate ids collapse")
	assert.Equal(t, "b", rows[0].ID)
	assert.Equal(t, "a", rows[1].ID)
	assert.Equal(t, "c", rows[2].ID)
	for _, row := range rows {
		assert.Equal(t, ItemPending, row.Status)
	}
	assert.Equal(t, StateActive, r.State())
	_, known := r.Total()
	assert.False(t, known)
}

func TestRunFullScenario(t *testing.T) {
	// The canonical two-bookmark publish: one succeeds, one fails, server
	// closes with authoritative counts.
	r, err := NewRun(ActionPublish, []string{"bookmark-1", "bookmark-2"})
	require.NoError(t, err)

	r.Apply(StartEvent{Total: 2})
	total, known := r.Total()
	require.True(t, known)
	assert.Equal(t, 2, total)

	r.Apply(ItemEvent{ID: "bookmark-1", Status: ItemRunning})
	r.Apply(ItemEvent{ID: "bookmark-1", Status: ItemSucceeded})
	r.Apply(ItemEvent{ID: "bookmark-2", Status: ItemRunning})
	r.Apply(ItemEvent{ID: "bookmark-2", Status: ItemFailed, Message: "API said nope"})
	assert.Equal(t, 1, r.SuccessCount())
	assert.Equal(t, 1, r.FailedCount())

	r.Apply(CompleteEvent{Success: 1, Failed: 1})
	r.Finish(nil)

	assert.Equal(t, StateCompleted, r.State())
	rows := r.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, ItemSucceeded, rows[0].Status)
	assert.Equal(t, ItemFailed, rows[1].Status)
	assert.Equal(t, "API said nope", rows[1].Message)
	assert.Equal(t, []string{"bookmark-1"}, r.SucceededIDs())
}

func TestItemStatusIsMonotonic(t *testing.T) {
	r, err := NewRun(ActionPublish, []string{"x"})
	require.NoError(t, err)

	r.Apply(ItemEvent{ID: "x", Status: ItemSucceeded})
	// Late and duplicate events must not regress or flip a terminal status.
	r.Apply(ItemEvent{ID: "x", Status: ItemRunning})
	r.Apply(ItemEvent{ID: "x", Status: ItemFailed, Message: "late"})
	r.Apply(ItemEvent{ID: "x", Status: ItemPending})

	rows := r.Rows()
	assert.Equal(t, ItemSucceeded, rows[0].Status)
	assert.Empty(t, rows[0].Message)
	assert.Equal(t, 1, r.SuccessCount())
	assert.Equal(t, 0, r.FailedCount())
}

func TestServerCountsWinOverLocalTally(t *testing.T) {
	r, err := NewRun(ActionPublish, []string{"a", "b", "c"})
	require.NoError(t, err)

	r.Apply(ItemEvent{ID: "a", Status: ItemSucceeded})
	r.Apply(ItemEvent{ID: "b", Status: ItemSucceeded})
	r.Apply(ItemEvent{ID: "c", Status: ItemSucceeded})
	// Server disagrees with what we observed; its counts are authoritative
	// for the summary while rows keep their observed status.
	r.Apply(CompleteEvent{Success: 2, Failed: 0})

	assert.Equal(t, StateCompleted, r.State())
	assert.Equal(t, 2, r.SuccessCount())
	assert.Equal(t, 0, r.FailedCount())
	for _, row := range r.Rows() {
		assert.Equal(t, ItemSucceeded, row.Status)
	}
}

func TestCancelBeforeAnyItemEvent(t *testing.T) {
	r, err := NewRun(ActionPublish, []string{"a", "b"})
	require.NoError(t, err)

	r.Finish(context.Canceled)

	assert.Equal(t, StateCancelled, r.State())
	assert.Zero(t, r.DoneCount())
	for _, row := range r.Rows() {
		assert.False(t, row.Status.Terminal())
	}
}

func TestCancelAfterPartialProgressKeepsRows(t *testing.T) {
	r, err := NewRun(ActionArchive, []string{"a", "b", "c"})
	require.NoError(t, err)

	r.Apply(StartEvent{Total: 3})
	r.Apply(ItemEvent{ID: "a", Status: ItemSucceeded})
	r.Apply(ItemEvent{ID: "b", Status: ItemRunning})
	r.Finish(context.Canceled)

	assert.Equal(t, StateCancelled, r.State())
	rows := r.Rows()
	assert.Equal(t, ItemSucceeded, rows[0].Status)
	assert.Equal(t, ItemRunning, rows[1].Status)
	assert.Equal(t, ItemPending, rows[2].Status)

	// No events are processed after the terminal state.
	r.Apply(ItemEvent{ID: "b", Status: ItemSucceeded})
	assert.Equal(t, ItemRunning, r.Rows()[1].Status)
}

func TestTransportErrorBeforeStart(t *testing.T) {
	r, err := NewRun(ActionPublish, []string{"a"})
	require.NoError(t, err)

	r.Finish(errors.New("Server exploded"))

	assert.Equal(t, StateFailed, r.State())
	assert.Equal(t, "Server exploded", r.ErrMessage())
	assert.Zero(t, r.DoneCount())
}

func TestWrappedCancelStillCancels(t *testing.T) {
	r, err := NewRun(ActionPublish, []string{"a"})
	require.NoError(t, err)

	r.Finish(context.Canceled)
	assert.Equal(t, StateCancelled, r.State())

	r2, err := NewRun(ActionPublish, []string{"a"})
	require.NoError(t, err)
	r2.Finish(errors.Join(errors.New("stream closed"), context.Canceled))
	assert.Equal(t, StateCancelled, r2.State())
}

func TestFinishAfterCompleteIsNoop(t *testing.T) {
	r, err := NewRun(ActionPublish, []string{"a"})
	require.NoError(t, err)

	r.Apply(ItemEvent{ID: "a", Status: ItemSucceeded})
	r.Apply(CompleteEvent{Success: 1, Failed: 0})
	r.Finish(context.Canceled)

	assert.Equal(t, StateCompleted, r.State(), "cancel after complete is a no-op")
}

func TestUnsolicitedIDGetsARow(t *testing.T) {
	r, err := NewRun(ActionPublish, []string{"a"})
	require.NoError(t, err)

	r.Apply(ItemEvent{ID: "ghost", Status: ItemFailed, Message: "not yours"})

	rows := r.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "ghost", rows[1].ID)
	assert.Equal(t, 1, r.FailedCount())
}
