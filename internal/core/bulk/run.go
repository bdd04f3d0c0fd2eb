package bulk

import (
	"context"
)

// Execute drives one bulk operation to its terminal state: it creates the
// run, pumps every consumer event into it and settles it with the
// consumer's final error. observe, when non-nil, is called after each
// applied event and once after finishing; it must not block.
//
// The headless publish command uses this directly; the console wires the
// same pieces through its event loop instead.
func Execute(ctx context.Context, c Consumer, action Action, ids []string, observe func(*Run)) (*Run, error) {
	r, err := NewRun(action, ids)
	if err != nil {
		return nil, err
	}
	_, runErr := c.Start(ctx, action, ids, func(ev Event) {
		r.Apply(ev)
		if observe != nil {
			observe(r)
		}
	})
	r.Finish(runErr)
	if observe != nil {
		observe(r)
	}
	return r, nil
}
