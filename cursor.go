package vtcore

// CursorStyle determines how the cursor is rendered.
type CursorStyle int

const (
	CursorStyleBlock CursorStyle = iota
	CursorStyleUnderline
	CursorStyleBar
)

// Cursor tracks position and rendering state (0-based, screen-relative
// coordinates). PendingWrap and OriginMode are carried on the cursor
// because DECSC/DECRC must save and restore them together with
// position.
type Cursor struct {
	Row, Col    int
	Style       CursorStyle
	Visible     bool
	Blinking    bool
	Attrs       CellAttributes
	OriginMode  bool
	PendingWrap bool
	HyperlinkID uint32
}

// NewCursor returns a cursor at (0,0), visible, block style, blinking.
func NewCursor() Cursor {
	return Cursor{Style: CursorStyleBlock, Visible: true, Blinking: true}
}

// SavedCursor is the subset of Cursor state DECSC/DECRC and the
// alternate-screen entry/exit save and restore.
type SavedCursor struct {
	Row, Col    int
	Attrs       CellAttributes
	OriginMode  bool
	PendingWrap bool
	HyperlinkID uint32
}

// Save captures c's restorable state.
func (c Cursor) Save() SavedCursor {
	return SavedCursor{
		Row:         c.Row,
		Col:         c.Col,
		Attrs:       c.Attrs,
		OriginMode:  c.OriginMode,
		PendingWrap: c.PendingWrap,
		HyperlinkID: c.HyperlinkID,
	}
}

// Restore applies a previously saved state back onto c.
func (c *Cursor) Restore(s SavedCursor) {
	c.Row = s.Row
	c.Col = s.Col
	c.Attrs = s.Attrs
	c.OriginMode = s.OriginMode
	c.PendingWrap = s.PendingWrap
	c.HyperlinkID = s.HyperlinkID
}
