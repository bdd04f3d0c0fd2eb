package ui

import (
	"fmt"
	"strings"
)

// updateBrowseViewport rebuilds the bookmark list content and keeps the
// cursor line on screen.
func (m *Model) updateBrowseViewport() {
	idx := m.visibleIdx()
	lines := make([]string, 0, len(idx)+1)

	if len(idx) == 0 {
		if m.search.query != "" {
			lines = append(lines, subtleStyle.Render("no bookmarks match "+m.search.query))
		} else {
			lines = append(lines, subtleStyle.Render("no bookmarks"))
		}
	}

	for pos, bi := range idx {
		bm := m.bookmarks[bi]

		mark := " "
		if m.selection.Has(bm.ID) {
			mark = markStyle.Render("▪")
		}

		glyph := glyphDraft
		switch {
		case bm.Archived:
			glyph = glyphArchived
		case bm.Published:
			glyph = glyphPublished
		}

		title := bm.Title
		if title == "" {
			title = bm.URL
		}
		line := fmt.Sprintf("%s %s %s  %s", mark, glyph, title, subtleStyle.Render(bm.URL))
		if len(bm.Tags) > 0 {
			line += "  " + subtleStyle.Render("#"+strings.Join(bm.Tags, " #"))
		}
		if pos == m.listIndex {
			line = cursorLineStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}

	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	top := m.viewport.YOffset
	bottom := top + m.viewport.Height - 1
	if m.listIndex < top {
		m.viewport.SetYOffset(m.listIndex)
	} else if m.listIndex > bottom {
		m.viewport.SetYOffset(m.listIndex - m.viewport.Height + 1)
	}
}
