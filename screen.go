package vtcore

// Screen owns the primary and alternate grids, the cursor, the
// character-set state, the scroll region, and the title for one
// terminal surface. Grounded on the teacher's buffer.go (`Buffer`
// struct pairing a grid with cursor/charset/scroll-region fields) and
// terminal.go's primary/alternate split, generalized to the spec's
// explicit dual-buffer model (spec §4.2 Screen).
type Screen struct {
	primary   *Grid
	alternate *Grid
	onAlt     bool

	cursor       Cursor
	savedPrimary SavedCursor
	savedAlt     SavedCursor

	scrollback ScrollbackProvider

	modes   Modes
	charset CharsetState

	scrollTop    int
	scrollBottom int

	title string
	icon  string
	cwd   string

	images *ImageManager

	selection Selection

	dirtyRows map[int]struct{}
}

// NewScreen returns a Screen sized rows x cols, with an empty primary
// grid, no alternate buffer contents, and a no-op scrollback provider
// (attach a real one via SetScrollback).
func NewScreen(rows, cols int) *Screen {
	s := &Screen{
		primary:      NewGrid(rows, cols),
		alternate:    NewGrid(rows, cols),
		cursor:       NewCursor(),
		scrollback:   NoopScrollback{},
		modes:        NewModes(),
		charset:      NewCharsetState(),
		scrollTop:    0,
		scrollBottom: rows - 1,
		images:       NewImageManager(),
	}
	return s
}

// SetScrollback attaches the provider that receives lines evicted from
// the top of the primary grid. Passing nil reinstates NoopScrollback.
func (s *Screen) SetScrollback(p ScrollbackProvider) {
	if p == nil {
		p = NoopScrollback{}
	}
	s.scrollback = p
}

func (s *Screen) Scrollback() ScrollbackProvider { return s.scrollback }

// Grid returns the currently visible grid (primary or alternate).
func (s *Screen) Grid() *Grid {
	if s.onAlt {
		return s.alternate
	}
	return s.primary
}

func (s *Screen) Rows() int { return s.Grid().Rows() }
func (s *Screen) Cols() int { return s.Grid().Cols() }

func (s *Screen) Cursor() *Cursor   { return &s.cursor }
func (s *Screen) Modes() *Modes     { return &s.modes }
func (s *Screen) Charset() *CharsetState { return &s.charset }
func (s *Screen) Images() *ImageManager  { return s.images }

func (s *Screen) Title() string { return s.title }
func (s *Screen) Icon() string  { return s.icon }
func (s *Screen) WorkingDirectory() string { return s.cwd }

func (s *Screen) SetTitle(t string) { s.title = t }
func (s *Screen) SetIcon(t string)  { s.icon = t }
func (s *Screen) SetWorkingDirectory(d string) { s.cwd = d }

// ScrollRegion returns the current scroll region as (top, bottom),
// zero-based inclusive row indices.
func (s *Screen) ScrollRegion() (int, int) {
	return s.scrollTop, s.scrollBottom
}

// SetScrollRegion sets the DECSTBM scroll region, clamping to the
// grid's bounds and rejecting a degenerate (top >= bottom) region by
// resetting to the full screen, matching xterm.
func (s *Screen) SetScrollRegion(top, bottom int) {
	rows := s.Rows()
	if top < 0 {
		top = 0
	}
	if bottom > rows-1 {
		bottom = rows - 1
	}
	if top >= bottom {
		top, bottom = 0, rows-1
	}
	s.scrollTop = top
	s.scrollBottom = bottom
}

// InAlternateScreen reports whether the alternate buffer is active.
func (s *Screen) InAlternateScreen() bool { return s.onAlt }

// EnterAlternateScreen switches to the alternate buffer. When clear is
// true (DECSET 1047/1049) the alternate buffer is cleared first. When
// saveCursor is true (DECSET 1049 only) the cursor position is also
// saved, for later restoration by LeaveAlternateScreen.
func (s *Screen) EnterAlternateScreen(clear, saveCursor bool) {
	if s.onAlt {
		return
	}
	if clear {
		s.alternate.ClearAll(s.cursor.Attrs)
	}
	if saveCursor {
		s.savedAlt = s.cursor.Save()
	}
	s.onAlt = true
	s.scrollTop, s.scrollBottom = 0, s.Rows()-1
	s.modes.Set(ModeAlternateScreen, true)
}

// LeaveAlternateScreen switches back to the primary buffer. When
// restoreCursor is true (DECSET 1049 only) the cursor saved by
// EnterAlternateScreen is restored.
func (s *Screen) LeaveAlternateScreen(restoreCursor bool) {
	if !s.onAlt {
		return
	}
	s.onAlt = false
	if restoreCursor {
		s.cursor.Restore(s.savedAlt)
	}
	s.scrollTop, s.scrollBottom = 0, s.Rows()-1
	s.modes.Set(ModeAlternateScreen, false)
}

// SaveCursor implements DECSC/SCOSC for whichever buffer is active.
func (s *Screen) SaveCursor() {
	if s.onAlt {
		s.savedAlt = s.cursor.Save()
	} else {
		s.savedPrimary = s.cursor.Save()
	}
}

// RestoreCursor implements DECRC/SCORC for whichever buffer is active.
func (s *Screen) RestoreCursor() {
	if s.onAlt {
		s.cursor.Restore(s.savedAlt)
	} else {
		s.cursor.Restore(s.savedPrimary)
	}
}

// ScrollUp scrolls the current scroll region up by n lines, pushing
// evicted lines to scrollback only when the region's top is row 0 and
// the primary buffer is active (spec §4.2 "only lines scrolled off the
// true top of the primary grid are pushed to scrollback").
func (s *Screen) ScrollUp(n int) {
	s.MarkRangeDirty(s.scrollTop, s.scrollBottom)
	evicted := s.Grid().ScrollUp(s.scrollTop, s.scrollBottom+1, n, s.cursor.Attrs)
	if s.scrollTop == 0 && !s.onAlt {
		for _, line := range evicted {
			s.scrollback.Push(line)
		}
	}
}

// ScrollDown scrolls the current scroll region down by n lines.
func (s *Screen) ScrollDown(n int) {
	s.MarkRangeDirty(s.scrollTop, s.scrollBottom)
	s.Grid().ScrollDown(s.scrollTop, s.scrollBottom+1, n, s.cursor.Attrs)
}

// Resize changes the visible grid dimensions, adjusting the scroll
// region and clamping the cursor to stay on-screen.
func (s *Screen) Resize(rows, cols int) {
	s.primary.Resize(rows, cols, CellAttributes{})
	s.alternate.Resize(rows, cols, CellAttributes{})
	s.scrollTop = 0
	s.scrollBottom = rows - 1
	if s.cursor.Row >= rows {
		s.cursor.Row = rows - 1
	}
	if s.cursor.Col >= cols {
		s.cursor.Col = cols - 1
	}
	s.MarkRangeDirty(0, rows-1)
}

// Reset restores power-on defaults: both grids cleared, cursor home,
// default modes and charset, full-screen scroll region.
func (s *Screen) Reset() {
	rows, cols := s.Rows(), s.Cols()
	s.primary.ClearAll(CellAttributes{})
	s.alternate.ClearAll(CellAttributes{})
	s.onAlt = false
	s.cursor = NewCursor()
	s.savedPrimary = SavedCursor{}
	s.savedAlt = SavedCursor{}
	s.modes = NewModes()
	s.charset = NewCharsetState()
	s.scrollTop, s.scrollBottom = 0, rows-1
	s.title, s.icon, s.cwd = "", "", ""
	s.selection = Selection{}
	s.dirtyRows = nil
	s.MarkRangeDirty(0, rows-1)
	_ = cols
}

// LineContent returns row's trailing-trimmed text, or "" if row is out
// of bounds. Grounded on the teacher's Buffer.LineContent/
// Terminal.LineContent (terminal.go), built here on top of [Line.Text].
func (s *Screen) LineContent(row int) string {
	line := s.Grid().Line(row)
	if line == nil {
		return ""
	}
	return line.Text()
}

// String returns the visible screen content as a newline-separated
// string with trailing empty lines omitted, matching the teacher's
// Terminal.String (terminal.go). Implements fmt.Stringer.
func (s *Screen) String() string {
	rows := s.Rows()
	lines := make([]string, rows)
	last := -1
	for row := 0; row < rows; row++ {
		lines[row] = s.LineContent(row)
		if lines[row] != "" {
			last = row
		}
	}
	if last < 0 {
		return ""
	}
	out := lines[0]
	for _, l := range lines[1 : last+1] {
		out += "\n" + l
	}
	return out
}

// --- Selection (spec §4.5) ---

// SetSelection installs sel as the screen's active selection. The
// core never mutates sel itself; it is derived state for a renderer
// to query (spec §4.5).
func (s *Screen) SetSelection(sel Selection) {
	s.selection = sel
}

// ClearSelection deactivates the current selection.
func (s *Screen) ClearSelection() {
	s.selection.Active = false
}

// GetSelection returns the current selection state.
func (s *Screen) GetSelection() Selection {
	return s.selection
}

// IsSelected reports whether (row, col) falls within the active
// selection.
func (s *Screen) IsSelected(row, col int) bool {
	return s.selection.Contains(Point{Row: row, Col: col})
}

// SelectedText extracts the text content within the active selection,
// rows separated by newlines, or "" if no selection is active.
// Grounded on the teacher's Terminal.GetSelectedText (terminal.go),
// generalized across all three selection kinds via Selection.Contains
// instead of the teacher's rectangle-only bounds check.
func (s *Screen) SelectedText() string {
	if !s.selection.Active {
		return ""
	}
	grid := s.Grid()
	start, end := s.selection.Start.Row, s.selection.End.Row
	var out []rune
	for row := start; row <= end && row < grid.Rows(); row++ {
		if row < 0 {
			continue
		}
		line := grid.Line(row)
		for col, cell := range line.Cells {
			if cell.IsContinuation() || !s.selection.Contains(Point{Row: row, Col: col}) {
				continue
			}
			if cell.Content == "" {
				out = append(out, ' ')
			} else {
				out = append(out, []rune(cell.Content)...)
			}
		}
		if row < end {
			out = append(out, '\n')
		}
	}
	return string(out)
}

// --- Dirty tracking (spec §9 supplemented feature) ---
//
// The teacher tracks per-cell dirty flags (cell.go MarkDirty/IsDirty).
// vtcore tracks at row granularity instead: Cell is a value type with
// no room for a flag that survives being overwritten wholesale by
// print/erase/scroll (spec §9 "arena-free value types"), and a
// renderer consuming DirtyCells only needs to know which rows to
// repaint, not which individual cells changed within them. A dirty row
// reports every column as changed, which never under-reports.

// MarkRowDirty flags row as having changed since the last ClearDirty.
func (s *Screen) MarkRowDirty(row int) {
	if row < 0 || row >= s.Rows() {
		return
	}
	if s.dirtyRows == nil {
		s.dirtyRows = make(map[int]struct{})
	}
	s.dirtyRows[row] = struct{}{}
}

// MarkRangeDirty flags every row in [top, bottom] as dirty.
func (s *Screen) MarkRangeDirty(top, bottom int) {
	for row := top; row <= bottom; row++ {
		s.MarkRowDirty(row)
	}
}

// HasDirty reports whether any row has changed since the last
// ClearDirty.
func (s *Screen) HasDirty() bool {
	return len(s.dirtyRows) > 0
}

// DirtyCells returns the position of every cell in a dirty row, sorted
// by row then column.
func (s *Screen) DirtyCells() []Point {
	if len(s.dirtyRows) == 0 {
		return nil
	}
	cols := s.Cols()
	rows := make([]int, 0, len(s.dirtyRows))
	for row := range s.dirtyRows {
		rows = append(rows, row)
	}
	for i := 1; i < len(rows); i++ {
		for j := i; j > 0 && rows[j-1] > rows[j]; j-- {
			rows[j-1], rows[j] = rows[j], rows[j-1]
		}
	}
	out := make([]Point, 0, len(rows)*cols)
	for _, row := range rows {
		for col := 0; col < cols; col++ {
			out = append(out, Point{Row: row, Col: col})
		}
	}
	return out
}

// ClearDirty marks every row clean.
func (s *Screen) ClearDirty() {
	s.dirtyRows = nil
}
