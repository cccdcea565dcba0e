package vtcore

import "github.com/unilibs/uniwidth"

// runeWidth returns a character's display width: 2 for wide characters
// (CJK ideographs, fullwidth forms, emoji), 1 for normal, 0 for
// zero-width combining marks.
func runeWidth(r rune) int {
	return uniwidth.RuneWidth(r)
}

// StringWidth returns the total display width of a string.
func StringWidth(s string) int {
	return uniwidth.StringWidth(s)
}
