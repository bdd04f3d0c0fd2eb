package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"linkloft-admin/internal/config"
	"linkloft-admin/internal/core/bulk"
)

// ---------- Update ----------
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		key := msg.String()
		if m.state == stateTokenPrompt {
			return m.handleTokenPromptKey(msg)
		}
		if m.state == stateBrowse && m.search.searching {
			return m.handleSearchKey(msg)
		}

		// global shortcuts
		if key == "ctrl+c" {
			// While a run is in flight, Ctrl+C means cancel, not quit.
			if m.state == stateBulkRun {
				return m.cancelRun()
			}
			return m, tea.Quit
		}
		if key == "q" && m.state != stateBulkRun {
			m.state = stateQuit
			return m, tea.Quit
		}

		switch m.state {
		case stateWelcome:
			return m.handleWelcomeKey(key)
		case stateBrowse:
			return m.handleBrowseKey(key)
		case stateConfirm:
			return m.handleConfirmKey(key)
		case stateBulkRun:
			return m.handleBulkRunKey(key)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		headerHeight := 4 // title, divider, banner line
		footerHeight := 2
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 5 {
			viewportHeight = 5
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = viewportHeight
		m.updateViewportContent()
		return m, nil

	case spinner.TickMsg:
		if m.state == stateConnecting || m.runActive() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			if m.state == stateBulkRun {
				m.updateViewportContent()
			}
			return m, cmd
		}
		return m, nil

	case connectMsg:
		if msg.err != nil {
			m.connectErr = msg.err
			m.statusMsg = "Connection failed: " + msg.err.Error()
			m.state = stateTokenPrompt
			return m, nil
		}
		if err := config.Save(m.cfg.Path, m.cfg); err != nil {
			m.statusMsg = "Connected, but saving settings failed: " + err.Error()
		} else {
			m.statusMsg = "Connected. Loading collections…"
		}
		return m, tea.Batch(m.spinner.Tick, m.loadCmd())

	case loadMsg:
		if msg.err != nil {
			m.statusMsg = "Load failed: " + msg.err.Error()
			if m.state == stateConnecting {
				m.state = stateWelcome
			}
			return m, nil
		}
		m.bookmarks = msg.bookmarks
		m.tags = msg.tags
		m.folders = msg.folders
		m.titleByID = make(map[string]string, len(m.bookmarks))
		for _, b := range m.bookmarks {
			m.titleByID[b.ID] = b.Title
		}
		if m.listIndex >= m.visibleCount() {
			m.listIndex = max(0, m.visibleCount()-1)
		}
		if m.state == stateConnecting {
			m.state = stateBrowse
			m.statusMsg = fmt.Sprintf("%d bookmarks, %d tags, %d folders.", len(m.bookmarks), len(m.tags), len(m.folders))
		}
		m.updateViewportContent()
		return m, nil

	case bulkEventMsg:
		if m.run == nil || m.events == nil {
			return m, nil
		}
		m.run.Apply(msg.ev)
		m.updateViewportContent()
		return m, listenBulkEvents(m.events)

	case bulkDoneMsg:
		if m.run == nil {
			return m, nil
		}
		// The channel is closed by now; fold in whatever the listener has
		// not relayed yet so the terminal view is complete.
		if m.events != nil {
			for ev := range m.events {
				m.run.Apply(ev)
			}
			m.events = nil
		}
		m.run.Finish(msg.err)
		m.runCancel = nil
		switch m.run.State() {
		case bulk.StateCompleted:
			m.statusMsg = "Done – press Enter to close."
		case bulk.StateCancelled:
			m.statusMsg = "Cancelled – press Enter to close."
		case bulk.StateFailed:
			m.statusMsg = "Failed – press Enter to close."
		}
		m.updateViewportContent()
		return m, nil
	}

	return m, nil
}

// cancelRun signals cancellation for an active run. Requests while the run
// is already terminal are no-ops.
func (m Model) cancelRun() (tea.Model, tea.Cmd) {
	if m.run != nil && m.run.State() == bulk.StateActive && m.runCancel != nil {
		log.Info().Str("run", m.run.ID()).Msg("cancellation requested")
		m.runCancel()
		m.statusMsg = "Cancelling…"
	}
	return m, nil
}

func (m Model) runActive() bool {
	return m.run != nil && m.run.State() == bulk.StateActive
}
