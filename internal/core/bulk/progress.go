package bulk

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ItemStatus is the per-item progress state. It only ever moves forward
// along pending -> running -> succeeded|failed; a terminal status is never
// overwritten by a later event.
type ItemStatus string

const (
	ItemPending   ItemStatus = "pending"
	ItemRunning   ItemStatus = "running"
	ItemSucceeded ItemStatus = "succeeded"
	ItemFailed    ItemStatus = "failed"
)

// Terminal reports whether the status is final for the item.
func (s ItemStatus) Terminal() bool {
	return s == ItemSucceeded || s == ItemFailed
}

func (s ItemStatus) rank() int {
	switch s {
	case ItemPending:
		return 0
	case ItemRunning:
		return 1
	case ItemSucceeded, ItemFailed:
		return 2
	default:
		return -1
	}
}

// State is the overall run state. Exactly one of the terminal states is
// reached per run, regardless of how the stream ends.
type State int

const (
	StateIdle State = iota
	StateActive
	StateCompleted
	StateFailed
	StateCancelled
)

// Terminal reports whether no further events will be processed.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateCancelled
}

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Row is one item's observed progress, in submission order.
type Row struct {
	ID      string
	Status  ItemStatus
	Message string
}

// Run folds a bulk operation's event stream into a consistent view model:
// ordered per-item rows plus running totals. It is mutated only from the
// event loop; no locking.
type Run struct {
	id     string
	action Action

	total    int
	hasTotal bool

	rows  []Row
	index map[string]int

	state   State
	success int
	failed  int
	// counts frozen by the complete frame; local tallies stop mattering
	frozen bool

	errMsg string
}

// NewRun creates a run in Active state with every requested id pre-seeded
// as a pending row in submission order. It fails loudly on an empty id
// list; callers are expected to prevent that at the UI boundary.
func NewRun(action Action, ids []string) (*Run, error) {
	if len(ids) == 0 {
		return nil, ErrNoItems
	}
	r := &Run{
		id:     uuid.NewString(),
		action: action,
		rows:   make([]Row, 0, len(ids)),
		index:  make(map[string]int, len(ids)),
		state:  StateActive,
	}
	for _, id := range ids {
		if _, dup := r.index[id]; dup {
			continue
		}
		r.index[id] = len(r.rows)
		r.rows = append(r.rows, Row{ID: id, Status: ItemPending})
	}
	return r, nil
}

// ID returns the run's correlation id used in logs.
func (r *Run) ID() string { return r.id }

// Action returns the bulk action this run performs.
func (r *Run) Action() Action { return r.action }

// State returns the current overall state.
func (r *Run) State() State { return r.state }

// Total returns the server-announced item total, if known yet.
func (r *Run) Total() (int, bool) { return r.total, r.hasTotal }

// SuccessCount returns the success tally: locally observed while the run is
// active, frozen to the server-reported value once complete arrived.
func (r *Run) SuccessCount() int { return r.success }

// FailedCount is the counterpart of SuccessCount for failures.
func (r *Run) FailedCount() int { return r.failed }

// ErrMessage returns the operation-level error message for failed runs.
func (r *Run) ErrMessage() string { return r.errMsg }

// Rows returns the per-item rows in submission order. The slice is shared;
// callers must not mutate it.
func (r *Run) Rows() []Row { return r.rows }

// DoneCount returns how many rows reached a terminal status.
func (r *Run) DoneCount() int {
	n := 0
	for _, row := range r.rows {
		if row.Status.Terminal() {
			n++
		}
	}
	return n
}

// SucceededIDs returns the ids whose rows individually succeeded, in
// submission order. Reconciliation clears exactly these from the selection.
func (r *Run) SucceededIDs() []string {
	var ids []string
	for _, row := range r.rows {
		if row.Status == ItemSucceeded {
			ids = append(ids, row.ID)
		}
	}
	return ids
}

// Apply folds one stream event into the run. Events arriving after a
// terminal state are dropped, which makes duplicate and late events (for
// example racing a cancellation) harmless.
func (r *Run) Apply(ev Event) {
	if r.state != StateActive {
		return
	}
	switch ev := ev.(type) {
	case StartEvent:
		r.total = ev.Total
		r.hasTotal = true
	case ItemEvent:
		r.applyItem(ev)
	case CompleteEvent:
		local := r.DoneCount()
		if ev.Success+ev.Failed != local {
			log.Warn().
				Str("run", r.id).
				Int("server", ev.Success+ev.Failed).
				Int("local", local).
				Msg("bulk complete counts disagree with observed items; trusting server")
		}
		r.success = ev.Success
		r.failed = ev.Failed
		r.frozen = true
		r.state = StateCompleted
	}
}

func (r *Run) applyItem(ev ItemEvent) {
	i, ok := r.index[ev.ID]
	if !ok {
		// Server mentioned an id we did not submit. Keep it visible rather
		// than guessing; it still counts toward the tallies.
		i = len(r.rows)
		r.index[ev.ID] = i
		r.rows = append(r.rows, Row{ID: ev.ID, Status: ItemPending})
	}
	row := &r.rows[i]
	if ev.Status.rank() <= row.Status.rank() {
		return
	}
	row.Status = ev.Status
	row.Message = ev.Message
	if !r.frozen {
		r.success, r.failed = 0, 0
		for _, row := range r.rows {
			switch row.Status {
			case ItemSucceeded:
				r.success++
			case ItemFailed:
				r.failed++
			}
		}
	}
}

// Finish settles the run once the consumer has returned. A cancellation
// error yields Cancelled, any other error Failed with its message recorded;
// rows observed so far are kept either way. A nil error after a normal
// complete frame is a no-op. If the consumer somehow resolves without a
// complete frame, the run completes on the local tallies.
func (r *Run) Finish(err error) {
	if r.state.Terminal() {
		return
	}
	switch {
	case err == nil:
		r.state = StateCompleted
	case errors.Is(err, context.Canceled):
		r.state = StateCancelled
	default:
		r.errMsg = err.Error()
		r.state = StateFailed
	}
	log.Info().Str("run", r.id).Str("action", string(r.action)).
		Stringer("state", r.state).
		Int("success", r.success).Int("failed", r.failed).
		Msg("bulk run finished")
}
