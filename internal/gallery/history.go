package gallery

// History is the ordered set of queries shown as search-history chips
type History struct {
	entries []string
}

// NewHistory creates an empty history
func NewHistory() *History {
	return &History{}
}

// Add inserts query unless an identical chip already exists.
// It reports whether a chip was inserted.
func (h *History) Add(query string) bool {
	if query == "" || h.Contains(query) {
		return false
	}
	h.entries = append(h.entries, query)
	return true
}

// Contains reports whether a chip with exactly this text exists
func (h *History) Contains(query string) bool {
	for _, e := range h.entries {
		if e == query {
			return true
		}
	}
	return false
}

// Entries returns the chips in insertion order
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of chips
func (h *History) Len() int {
	return len(h.entries)
}

// At returns the chip at index i, or "" when out of range
func (h *History) At(i int) string {
	if i < 0 || i >= len(h.entries) {
		return ""
	}
	return h.entries[i]
}
