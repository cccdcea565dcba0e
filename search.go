package vtcore

// Find returns the starting position of every occurrence (including
// overlapping ones) of pattern in the visible grid's text, scanning row
// by row.
func (s *Screen) Find(pattern string) []Point {
	if pattern == "" {
		return nil
	}
	needle := []rune(pattern)
	grid := s.Grid()
	var matches []Point
	for row := 0; row < grid.Rows(); row++ {
		haystack := []rune(grid.Line(row).Text())
		for col := 0; col <= len(haystack)-len(needle); col++ {
			if runesEqual(haystack[col:col+len(needle)], needle) {
				matches = append(matches, Point{Row: row, Col: col})
			}
		}
	}
	return matches
}

// FindScrollback searches the scrollback buffer for pattern. Matched
// rows are negative, with -1 the newest scrollback line and
// -scrollback.Len() the oldest.
func (s *Screen) FindScrollback(pattern string) []Point {
	if pattern == "" {
		return nil
	}
	needle := []rune(pattern)
	sb := s.Scrollback()
	n := sb.Len()
	var matches []Point
	for i := 0; i < n; i++ {
		line := sb.Line(i)
		haystack := []rune(line.Text())
		for col := 0; col <= len(haystack)-len(needle); col++ {
			if runesEqual(haystack[col:col+len(needle)], needle) {
				matches = append(matches, Point{Row: -(n - i), Col: col})
			}
		}
	}
	return matches
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
