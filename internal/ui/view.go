package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"linkloft-admin/internal/core/bulk"
)

func (m Model) View() string {
	if m.state == stateQuit {
		return ""
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	switch m.state {
	case stateBrowse, stateBulkRun:
		return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), footer)
	default:
		var b strings.Builder
		switch m.state {
		case stateWelcome:
			b.WriteString(m.viewWelcome())
		case stateTokenPrompt:
			b.WriteString(m.viewTokenPrompt())
		case stateConnecting:
			b.WriteString(m.viewConnecting())
		case stateConfirm:
			b.WriteString(m.viewConfirm())
		}
		return lipgloss.JoinVertical(lipgloss.Left, header, b.String(), footer)
	}
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Linkloft Admin"))
	b.WriteString("\n")
	b.WriteString(dividerStyle.Render(strings.Repeat("─", max(10, m.width-2))))
	b.WriteString("\n")
	b.WriteString(m.renderBannerLine())
	b.WriteString("\n")
	return b.String()
}

// renderBannerLine shows the last operation outcome when present, the
// transient status message otherwise.
func (m Model) renderBannerLine() string {
	if m.banner.Text != "" {
		switch m.banner.Kind {
		case bulk.BannerSuccess:
			return successStyle.Render(m.banner.Text)
		case bulk.BannerError:
			return errorStyle.Render(m.banner.Text)
		default:
			return warnStyle.Render(m.banner.Text)
		}
	}
	return subtleStyle.Render(m.statusMsg)
}

func (m Model) renderFooter() string {
	switch m.state {
	case stateBrowse:
		if m.search.searching {
			return helpStyle.Render("search: " + m.search.searchInput.View() + "  (enter keep, esc clear)")
		}
		help := "space mark  a mark all  / search  p publish  u unpublish  x archive  r reload  q quit"
		if m.api != nil {
			ms := m.api.MetricsSnapshot()
			help += fmt.Sprintf("   ·   %d marked, %d req", m.selection.Len(), ms.TotalRequests)
			if ms.TotalRetries > 0 {
				help += fmt.Sprintf(" (%d retries)", ms.TotalRetries)
			}
		}
		return helpStyle.Render(help)
	case stateBulkRun:
		if m.runActive() {
			return helpStyle.Render("c cancel")
		}
		return helpStyle.Render("enter close")
	case stateConfirm:
		return helpStyle.Render("y/enter start  n/esc back")
	default:
		return helpStyle.Render("enter continue  q quit")
	}
}

func (m Model) viewWelcome() string {
	var b strings.Builder
	b.WriteString("Admin console for a Linkloft bookmark server.\n\n")
	if m.hasRC {
		b.WriteString(fmt.Sprintf("Settings: %s\n", m.cfg.Path))
	}
	if m.cfg.ServerURL != "" {
		b.WriteString("Server: " + m.cfg.ServerURL + "\n")
	}
	b.WriteString("\n" + subtleStyle.Render(m.statusMsg) + "\n")
	return b.String()
}

func (m Model) viewTokenPrompt() string {
	var b strings.Builder
	b.WriteString("Enter the API token for " + m.cfg.ServerURL + ":\n\n")
	b.WriteString(m.ti.View() + "\n")
	if m.connectErr != nil {
		b.WriteString("\n" + errorStyle.Render(m.connectErr.Error()) + "\n")
	}
	return b.String()
}

func (m Model) viewConnecting() string {
	return m.spinner.View() + " " + m.statusMsg + "\n"
}

func (m Model) viewConfirm() string {
	n := m.selection.Len()
	verb := strings.ToLower(string(m.confirmAction))
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Bulk %s %d bookmarks?\n\n", verb, n))
	shown := 0
	for _, id := range m.selection.IDs() {
		title := m.titleByID[id]
		if title == "" {
			title = id
		}
		b.WriteString("  " + markStyle.Render("▪") + " " + title + "\n")
		shown++
		if shown >= 10 && n > 10 {
			b.WriteString(subtleStyle.Render(fmt.Sprintf("  … and %d more\n", n-shown)))
			break
		}
	}
	return b.String()
}

func (m *Model) updateViewportContent() {
	switch m.state {
	case stateBrowse:
		m.updateBrowseViewport()
	case stateBulkRun:
		m.updateProgressViewport()
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
