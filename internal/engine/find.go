package engine

import (
	"slices"

	"github.com/dshills/hexstorm/internal/engine/search"
)

// ============================================================================
// Search
// ============================================================================

// FindAll returns every non-overlapping match of pattern in ascending
// order. The pattern is remembered in the search history.
func (e *Editor) FindAll(pattern string) ([]search.Match, error) {
	matches, err := e.content.FindAll(pattern)
	if err != nil {
		return nil, err
	}
	e.rememberSearch(pattern)
	return matches, nil
}

// FindNthAfter returns the match n places past the first match starting
// after offset, wrapping around the buffer.
func (e *Editor) FindNthAfter(pattern string, offset, n int) (search.Match, error) {
	matches, err := e.FindAll(pattern)
	if err != nil {
		return search.Match{}, err
	}
	m, ok := search.NthAfter(matches, offset, n)
	if !ok {
		return search.Match{}, ErrNoMatch
	}
	return m, nil
}

// FindNthBefore returns the match n places before the last match starting
// before offset, wrapping around the buffer.
func (e *Editor) FindNthBefore(pattern string, offset, n int) (search.Match, error) {
	matches, err := e.FindAll(pattern)
	if err != nil {
		return search.Match{}, err
	}
	m, ok := search.NthBefore(matches, offset, n)
	if !ok {
		return search.Match{}, ErrNoMatch
	}
	return m, nil
}

// FindAfter returns the first match starting after offset.
func (e *Editor) FindAfter(pattern string, offset int) (search.Match, error) {
	return e.FindNthAfter(pattern, offset, 0)
}

// FindBefore returns the last match starting before offset.
func (e *Editor) FindBefore(pattern string, offset int) (search.Match, error) {
	return e.FindNthBefore(pattern, offset, 0)
}

// SelectNext selects the first match after the cursor.
func (e *Editor) SelectNext(pattern string) (search.Match, error) {
	m, err := e.FindAfter(pattern, e.cursor.Offset())
	if err != nil {
		return m, err
	}
	return m, e.selectMatch(m)
}

// SelectPrev selects the last match before the cursor.
func (e *Editor) SelectPrev(pattern string) (search.Match, error) {
	m, err := e.FindBefore(pattern, e.cursor.Offset())
	if err != nil {
		return m, err
	}
	return m, e.selectMatch(m)
}

func (e *Editor) selectMatch(m search.Match) error {
	if m.Len() == 0 {
		return e.SetCursorOffset(m.Start)
	}
	return e.MakeSelection(m.Start, m.Len())
}

// SearchHistory returns the remembered patterns, most recent last.
func (e *Editor) SearchHistory() []string {
	return slices.Clone(e.searchHistory)
}

// rememberSearch moves pattern to the end of the history.
func (e *Editor) rememberSearch(pattern string) {
	if i := slices.Index(e.searchHistory, pattern); i >= 0 {
		e.searchHistory = slices.Delete(e.searchHistory, i, i+1)
	}
	e.searchHistory = append(e.searchHistory, pattern)
	if len(e.searchHistory) > maxSearchHistory {
		e.searchHistory = e.searchHistory[len(e.searchHistory)-maxSearchHistory:]
	}
}
