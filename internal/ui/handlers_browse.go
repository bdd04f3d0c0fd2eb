package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"linkloft-admin/internal/core/bulk"
)

func (m Model) handleBrowseKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		if m.listIndex < m.visibleCount()-1 {
			m.listIndex++
		}
	case "k", "up":
		if m.listIndex > 0 {
			m.listIndex--
		}
	case "g", "home":
		m.listIndex = 0
	case "G", "end":
		m.listIndex = max(0, m.visibleCount()-1)
	case "ctrl+d", "pgdown":
		m.listIndex = min(m.visibleCount()-1, m.listIndex+m.viewport.Height)
	case "ctrl+u", "pgup":
		m.listIndex = max(0, m.listIndex-m.viewport.Height)
	case " ":
		if b, ok := m.bookmarkAt(m.listIndex); ok {
			m.selection.Toggle(b.ID)
			if m.listIndex < m.visibleCount()-1 {
				m.listIndex++
			}
		}
	case "a":
		m.toggleAllVisible()
	case "/":
		m.search.searching = true
		m.search.searchInput.Focus()
	case "esc":
		if m.search.query != "" {
			m.search.query = ""
			m.search.filteredIdx = nil
			m.search.searchInput.SetValue("")
			m.listIndex = 0
		}
	case "r":
		m.cache.Invalidate(bulk.CacheBookmarks, bulk.CacheTags, bulk.CacheFolders)
		m.statusMsg = "Reloading…"
		return m, tea.Batch(m.spinner.Tick, m.loadCmd())
	case "p":
		return m.requestBulk(bulk.ActionPublish)
	case "u":
		return m.requestBulk(bulk.ActionUnpublish)
	case "x":
		return m.requestBulk(bulk.ActionArchive)
	}
	m.updateViewportContent()
	return m, nil
}

// toggleAllVisible marks every visible bookmark; if all of them are
// already marked, it unmarks them instead.
func (m *Model) toggleAllVisible() {
	idx := m.visibleIdx()
	ids := make([]string, 0, len(idx))
	all := true
	for _, i := range idx {
		ids = append(ids, m.bookmarks[i].ID)
		if !m.selection.Has(m.bookmarks[i].ID) {
			all = false
		}
	}
	m.selection.ToggleAll(ids, !all)
}

// requestBulk moves to the confirm view. The action never starts on an
// empty selection; this is the loud UI boundary the engine relies on.
func (m Model) requestBulk(action bulk.Action) (tea.Model, tea.Cmd) {
	if m.selection.Len() == 0 {
		m.statusMsg = "Select at least one bookmark first."
		m.updateViewportContent()
		return m, nil
	}
	m.confirmAction = action
	m.state = stateConfirm
	return m, nil
}
