package bulk

import (
	"context"
	"errors"
)

// Action identifies which bulk endpoint a run targets.
type Action string

const (
	ActionPublish   Action = "publish"
	ActionUnpublish Action = "unpublish"
	ActionArchive   Action = "archive"
)

// Verb returns the past-tense verb used in banners and summaries.
func (a Action) Verb() string {
	switch a {
	case ActionPublish:
		return "Published"
	case ActionUnpublish:
		return "Unpublished"
	case ActionArchive:
		return "Archived"
	default:
		return "Processed"
	}
}

// Event is one message from a bulk operation stream.
type Event interface{ isEvent() }

// StartEvent announces how many items the server accepted for processing.
type StartEvent struct {
	Total int
}

// ItemEvent reports a status change for a single item. Message is only set
// for failures.
type ItemEvent struct {
	ID      string
	Status  ItemStatus
	Message string
}

// CompleteEvent ends a stream normally. Success and Failed are the server's
// authoritative counts and win over anything tallied locally.
type CompleteEvent struct {
	Success int
	Failed  int
}

func (StartEvent) isEvent()    {}
func (ItemEvent) isEvent()     {}
func (CompleteEvent) isEvent() {}

// Summary carries the final counts a Consumer returns on normal completion.
type Summary struct {
	Success int
	Failed  int
}

// ErrNoItems is returned when a bulk operation is started with an empty id
// list. The UI disables the triggering key instead of defending here.
var ErrNoItems = errors.New("bulk: no items selected")

// Consumer opens a bulk operation stream against the server.
//
// Events are delivered synchronously through onEvent in stream order.
// Cancellation goes through ctx: once the context is cancelled the consumer
// stops emitting item events and returns an error satisfying
// errors.Is(err, context.Canceled). Any transport failure (network error,
// non-2xx response, malformed frame) is returned as a distinct generic
// error. A nil error means the stream reached its complete frame.
type Consumer interface {
	Start(ctx context.Context, action Action, ids []string, onEvent func(Event)) (Summary, error)
}
