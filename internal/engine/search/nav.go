package search

// NthAfter picks a match for cyclic forward navigation. Counting starts
// at the first match beginning strictly after offset (or the first match
// if none does) and moves n matches further, wrapping around.
func NthAfter(matches []Match, offset, n int) (Match, bool) {
	if len(matches) == 0 {
		return Match{}, false
	}
	idx := 0
	for i, m := range matches {
		if m.Start > offset {
			idx = i
			break
		}
	}
	return matches[wrap(idx+n, len(matches))], true
}

// NthBefore picks a match for cyclic backward navigation. Counting starts
// at the last match beginning strictly before offset (or the last match if
// none does) and moves n matches further back, wrapping around.
func NthBefore(matches []Match, offset, n int) (Match, bool) {
	if len(matches) == 0 {
		return Match{}, false
	}
	idx := len(matches) - 1
	for i, m := range matches {
		if m.Start >= offset {
			break
		}
		idx = i
	}
	return matches[wrap(idx-n, len(matches))], true
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
