package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"linkloft-admin/internal/core/bulk"
)

func (m Model) handleConfirmKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "enter":
		return m.startRun()
	case "n", "esc":
		m.state = stateBrowse
		m.updateViewportContent()
		return m, nil
	}
	return m, nil
}

// startRun opens the stream over the current selection and switches to the
// progress view. Submission order is the selection's toggle order.
func (m Model) startRun() (tea.Model, tea.Cmd) {
	ids := m.selection.IDs()
	run, err := bulk.NewRun(m.confirmAction, ids)
	if err != nil {
		m.statusMsg = "Cannot start: " + err.Error()
		m.state = stateBrowse
		m.updateViewportContent()
		return m, nil
	}
	log.Info().Str("run", run.ID()).Str("action", string(m.confirmAction)).
		Int("items", len(ids)).Msg("bulk run started")

	ctx, cancel := context.WithCancel(context.Background())
	m.run = run
	m.runCancel = cancel
	m.events = make(chan bulk.Event, 256)
	m.state = stateBulkRun
	m.statusMsg = ""
	m.updateViewportContent()
	return m, tea.Batch(
		m.spinner.Tick,
		runBulkCmd(ctx, m.consumer, m.confirmAction, ids, m.events),
		listenBulkEvents(m.events),
	)
}

func (m Model) handleBulkRunKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "c":
		return m.cancelRun()
	case "enter", "esc":
		if m.run == nil || !m.run.State().Terminal() {
			// the dialog stays locked while the stream is open
			return m, nil
		}
		return m.closeRun()
	}
	return m, nil
}

// closeRun dismisses the terminal dialog: reconcile caches and selection,
// surface the outcome banner, and refetch whatever went stale.
func (m Model) closeRun() (tea.Model, tea.Cmd) {
	rc := bulk.NewReconciler(m.cache, m.selection)
	m.banner = rc.Close(m.run)
	completed := m.run.State() == bulk.StateCompleted
	m.run = nil
	m.state = stateBrowse
	m.updateViewportContent()
	if completed {
		return m, tea.Batch(m.spinner.Tick, m.loadCmd())
	}
	return m, nil
}
