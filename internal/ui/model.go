package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"linkloft-admin/internal/config"
	"linkloft-admin/internal/core/bulk"
	"linkloft-admin/internal/lh"
)

// --- Model / State ---
type state int

const (
	stateWelcome state = iota
	stateTokenPrompt
	stateConnecting
	stateBrowse
	stateConfirm
	stateBulkRun
	stateQuit
)

// SearchState holds the fuzzy search over the bookmark list.
type SearchState struct {
	searching   bool
	searchInput textinput.Model
	query       string
	filteredIdx []int // visible index -> bookmarks index
}

// Model is the whole console state. One bulk run at most is in flight;
// while it is, the browse triggers are unreachable by construction.
type Model struct {
	state         state
	cfg           config.Config
	hasRC         bool
	statusMsg     string
	banner        bulk.Banner
	connectErr    error
	width, height int

	spinner  spinner.Model
	ti       textinput.Model // token prompt
	viewport viewport.Model

	api      *lh.Client
	consumer bulk.Consumer
	cache    *lh.CollectionCache

	bookmarks []lh.Bookmark
	tags      []lh.Tag
	folders   []lh.Folder
	titleByID map[string]string

	selection *bulk.Selection
	listIndex int
	search    SearchState
	filterCfg FilterConfig

	// bulk run plumbing
	confirmAction bulk.Action
	run           *bulk.Run
	runCancel     context.CancelFunc
	events        chan bulk.Event
}

// visibleIdx returns the bookmark indices currently shown, honoring an
// active search filter.
func (m Model) visibleIdx() []int {
	if m.search.query != "" && m.search.filteredIdx != nil {
		return m.search.filteredIdx
	}
	idx := make([]int, len(m.bookmarks))
	for i := range m.bookmarks {
		idx[i] = i
	}
	return idx
}

func (m Model) visibleCount() int { return len(m.visibleIdx()) }

// bookmarkAt resolves a visible position to the bookmark.
func (m Model) bookmarkAt(pos int) (lh.Bookmark, bool) {
	idx := m.visibleIdx()
	if pos < 0 || pos >= len(idx) {
		return lh.Bookmark{}, false
	}
	return m.bookmarks[idx[pos]], true
}
