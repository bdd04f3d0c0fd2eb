package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"linkloft-admin/internal/lh"
)

func (m Model) handleWelcomeKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "enter":
		if m.cfg.Token == "" || m.cfg.ServerURL == "" {
			m.state = stateTokenPrompt
			m.ti.Focus()
			return m, nil
		}
		return m.connect()
	}
	return m, nil
}

// connect builds the API client from the current config and pings the
// server before anything else happens.
func (m Model) connect() (tea.Model, tea.Cmd) {
	m.api = lh.New(m.cfg.ServerURL, m.cfg.Token)
	m.consumer = m.api.Bulk()
	m.state = stateConnecting
	m.statusMsg = "Connecting to " + m.cfg.ServerURL + "…"
	return m, tea.Batch(m.spinner.Tick, m.connectCmd())
}

func (m Model) handleTokenPromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "enter":
		token := strings.TrimSpace(m.ti.Value())
		if token == "" {
			m.statusMsg = "Token must not be empty."
			return m, nil
		}
		m.cfg.Token = token
		if m.cfg.ServerURL == "" {
			m.cfg.ServerURL = "https://app.linkloft.dev"
		}
		return m.connect()
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.searching = false
		m.search.query = ""
		m.search.filteredIdx = nil
		m.search.searchInput.SetValue("")
		m.listIndex = 0
		m.updateViewportContent()
		return m, nil
	case "enter":
		m.search.searching = false
		m.updateViewportContent()
		return m, nil
	}
	var cmd tea.Cmd
	m.search.searchInput, cmd = m.search.searchInput.Update(msg)
	q := m.search.searchInput.Value()
	if q != m.search.query {
		m.search.query = q
		m.search.filteredIdx = filterBookmarks(q, m.bookmarks, m.filterCfg)
		m.listIndex = 0
	}
	m.updateViewportContent()
	return m, cmd
}
