package bulk

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Cache keys for the collections a bulk action can touch.
const (
	CacheBookmarks = "bookmarks"
	CacheTags      = "tags"
	CacheFolders   = "folders"
)

// Cache is the invalidation side of the collection cache. Invalidation is a
// synchronous trigger; refetching happens elsewhere.
type Cache interface {
	Invalidate(keys ...string)
}

// BannerKind distinguishes how the outcome line is styled.
type BannerKind int

const (
	BannerInfo BannerKind = iota
	BannerSuccess
	BannerError
)

// Banner is the one-line outcome surfaced after a run is dismissed.
type Banner struct {
	Kind BannerKind
	Text string
}

// Reconciler settles selection and caches after a run reached a terminal
// state and its dialog was closed.
//
// Policy: on a completed run only the ids that individually succeeded are
// dropped from the selection; failed ids stay selected so the operator can
// retry just those. Failed and cancelled runs leave both caches and
// selection untouched.
type Reconciler struct {
	cache Cache
	sel   *Selection
}

// NewReconciler wires the reconciliation collaborators.
func NewReconciler(cache Cache, sel *Selection) *Reconciler {
	return &Reconciler{cache: cache, sel: sel}
}

// Close runs reconciliation once for a terminal run and returns the outcome
// banner. Calling it on a non-terminal run is a programming error and
// yields an informational banner without side effects.
func (rc *Reconciler) Close(r *Run) Banner {
	switch r.State() {
	case StateCompleted:
		rc.cache.Invalidate(CacheBookmarks, CacheTags, CacheFolders)
		succeeded := r.SucceededIDs()
		rc.sel.Drop(succeeded...)
		log.Debug().Str("run", r.ID()).Int("cleared", len(succeeded)).Msg("reconciled selection")
		text := fmt.Sprintf("%s %d items", r.Action().Verb(), r.SuccessCount())
		if r.FailedCount() > 0 {
			text += fmt.Sprintf("; %d failed", r.FailedCount())
		}
		kind := BannerSuccess
		if r.FailedCount() > 0 {
			kind = BannerInfo
		}
		return Banner{Kind: kind, Text: text + "."}
	case StateFailed:
		msg := r.ErrMessage()
		if msg == "" {
			msg = "unknown error"
		}
		return Banner{Kind: BannerError, Text: fmt.Sprintf("Bulk %s failed: %s", strings.ToLower(string(r.Action())), msg)}
	case StateCancelled:
		return Banner{Kind: BannerInfo, Text: fmt.Sprintf("Bulk %s cancelled.", strings.ToLower(string(r.Action())))}
	default:
		return Banner{Kind: BannerInfo, Text: "Operation still running."}
	}
}
