package ui

import (
	"fmt"
	"strings"

	"linkloft-admin/internal/core/bulk"
)

// updateProgressViewport renders the bulk run dialog into the viewport.
func (m *Model) updateProgressViewport() {
	if m.run == nil {
		return
	}
	r := m.run

	var b strings.Builder

	total, hasTotal := r.Total()
	title := fmt.Sprintf("Bulk %s", strings.ToLower(string(r.Action())))
	if hasTotal {
		title += fmt.Sprintf(" — %d items", total)
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")
	b.WriteString(m.progressSummary() + "\n\n")

	for _, row := range r.Rows() {
		name := m.titleByID[row.ID]
		if name == "" {
			name = row.ID
		}
		switch row.Status {
		case bulk.ItemSucceeded:
			b.WriteString(successStyle.Render("✓") + " " + name + "\n")
		case bulk.ItemFailed:
			line := errorStyle.Render("✗") + " " + name
			if row.Message != "" {
				line += "  " + errorStyle.Render(row.Message)
			}
			b.WriteString(line + "\n")
		case bulk.ItemRunning:
			b.WriteString(m.spinner.View() + " " + name + "\n")
		default:
			b.WriteString(subtleStyle.Render("·") + " " + name + "\n")
		}
	}

	m.viewport.SetContent(dialogStyle.Render(b.String()))
}

// progressSummary is the one-line state of the run shown above the rows.
func (m Model) progressSummary() string {
	r := m.run
	switch r.State() {
	case bulk.StateActive:
		total, hasTotal := r.Total()
		if hasTotal {
			return fmt.Sprintf("%s %d items… (%d/%d)",
				progressiveVerb(r.Action()), total, r.DoneCount(), total)
		}
		return progressiveVerb(r.Action()) + "…"
	case bulk.StateCompleted:
		verb := strings.ToLower(r.Action().Verb())
		if r.FailedCount() > 0 {
			return warnStyle.Render(fmt.Sprintf("%d %s, %d failed.",
				r.SuccessCount(), verb, r.FailedCount()))
		}
		return successStyle.Render(fmt.Sprintf("%d %s.", r.SuccessCount(), verb))
	case bulk.StateFailed:
		return errorStyle.Render("Failed: " + r.ErrMessage())
	case bulk.StateCancelled:
		return warnStyle.Render("Cancelled.")
	default:
		return ""
	}
}

func progressiveVerb(a bulk.Action) string {
	switch a {
	case bulk.ActionPublish:
		return "Publishing"
	case bulk.ActionUnpublish:
		return "Unpublishing"
	case bulk.ActionArchive:
		return "Archiving"
	default:
		return "Processing"
	}
}
