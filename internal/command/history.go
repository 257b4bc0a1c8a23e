package command

import "slices"

const defaultHistorySize = 100

// History keeps command lines in the order they were run. Running a
// line again moves it to the end.
type History struct {
	items    []string
	maxItems int
}

// NewHistory creates a command-line history with the given capacity.
func NewHistory(maxItems int) *History {
	if maxItems <= 0 {
		maxItems = defaultHistorySize
	}
	return &History{maxItems: maxItems}
}

// Add records a command line.
func (h *History) Add(line string) {
	if line == "" {
		return
	}
	if i := slices.Index(h.items, line); i >= 0 {
		h.items = slices.Delete(h.items, i, i+1)
	}
	h.items = append(h.items, line)
	if len(h.items) > h.maxItems {
		h.items = h.items[len(h.items)-h.maxItems:]
	}
}

// Len returns the number of lines kept.
func (h *History) Len() int {
	return len(h.items)
}

// At returns the line n places back from the most recent (0 = latest).
func (h *History) At(n int) (string, bool) {
	if n < 0 || n >= len(h.items) {
		return "", false
	}
	return h.items[len(h.items)-1-n], true
}

// Lines returns all lines, oldest first.
func (h *History) Lines() []string {
	return slices.Clone(h.items)
}
