package bulk

// Selection tracks which bookmark ids are marked for the next bulk action.
// It preserves the order ids were first toggled in, because that order
// becomes the submission order of the stream and therefore the display
// order of the progress rows. The selection outlives individual runs.
type Selection struct {
	order  []string
	marked map[string]bool
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{marked: make(map[string]bool)}
}

// Toggle flips a single id.
func (s *Selection) Toggle(id string) {
	if s.marked[id] {
		s.remove(id)
		return
	}
	s.marked[id] = true
	s.order = append(s.order, id)
}

// ToggleAll marks or unmarks every given id, preserving list order for
// newly marked ones.
func (s *Selection) ToggleAll(ids []string, checked bool) {
	for _, id := range ids {
		if checked && !s.marked[id] {
			s.marked[id] = true
			s.order = append(s.order, id)
		} else if !checked && s.marked[id] {
			s.remove(id)
		}
	}
}

// Has reports whether the id is currently selected.
func (s *Selection) Has(id string) bool { return s.marked[id] }

// Len returns the number of selected ids.
func (s *Selection) Len() int { return len(s.order) }

// IDs returns the selected ids in toggle order.
func (s *Selection) IDs() []string {
	return append([]string(nil), s.order...)
}

// Drop removes only the given ids, keeping the rest selected in order.
// Reconciliation uses this to clear the ids a run actually handled.
func (s *Selection) Drop(ids ...string) {
	for _, id := range ids {
		if s.marked[id] {
			s.remove(id)
		}
	}
}

// Clear empties the whole selection.
func (s *Selection) Clear() {
	s.order = s.order[:0]
	clear(s.marked)
}

func (s *Selection) remove(id string) {
	delete(s.marked, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
