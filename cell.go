package vtcore

// Cell holds the content, attributes, and width of one grid position.
// Content is a grapheme-capable string: a base rune plus any combining
// marks that printed on top of it. An empty Content is a blank cell.
//
// Width is 0, 1, or 2. Width 0 marks the continuation cell immediately
// right of a width-2 (wide) cell; a continuation cell is never rendered
// independently (spec §3 Cell invariant).
type Cell struct {
	Content     string
	Attrs       CellAttributes
	Width       uint8
	HyperlinkID uint32
}

// BlankCell returns a width-1 empty cell carrying attrs (used to pad
// rows on resize/insert/scroll so new space matches the surrounding
// background color rather than always defaulting).
func BlankCell(attrs CellAttributes) Cell {
	return Cell{Width: 1, Attrs: attrs}
}

// IsContinuation reports whether c is the width-0 right half of a wide
// character.
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}

// IsWide reports whether c is the left half of a two-column character.
func (c Cell) IsWide() bool {
	return c.Width == 2
}

// IsBlank reports whether c has no printable content.
func (c Cell) IsBlank() bool {
	return c.Content == "" || c.Content == " "
}

// Append adds a combining code point to c's grapheme content without
// changing its width (spec §4.3 print flow step 3).
func (c *Cell) Append(r rune) {
	c.Content += string(r)
}
