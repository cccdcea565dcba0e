package vtcore

import (
	"bytes"
	"testing"
)

func TestTerminalWriteAndCell(t *testing.T) {
	term := New(WithSize(3, 10))
	if _, err := term.WriteString("Hi"); err != nil {
		t.Fatalf("WriteString error: %v", err)
	}
	c, ok := term.Cell(0, 0)
	if !ok || c.Content != "H" {
		t.Errorf("Cell(0,0) = %#v, ok=%v", c, ok)
	}
	row, col := term.CursorPosition()
	if row != 0 || col != 2 {
		t.Errorf("CursorPosition() = (%d,%d), want (0,2)", row, col)
	}
}

func TestTerminalDefaultSize(t *testing.T) {
	term := New()
	if term.Rows() != DefaultRows || term.Cols() != DefaultCols {
		t.Errorf("default size = (%d,%d), want (%d,%d)", term.Rows(), term.Cols(), DefaultRows, DefaultCols)
	}
}

func TestTerminalResponseProviderReceivesDSR(t *testing.T) {
	var buf bytes.Buffer
	term := New(WithSize(5, 10), WithResponse(&buf))
	term.WriteString("\x1b[6n")
	if got := buf.String(); got != "\x1b[1;1R" {
		t.Errorf("DSR reply = %q, want \\x1b[1;1R", got)
	}
}

func TestTerminalBellProviderInvoked(t *testing.T) {
	rung := 0
	term := New(WithSize(1, 10), WithBell(bellFunc(func() { rung++ })))
	term.WriteString("\x07")
	if rung != 1 {
		t.Errorf("bell rung %d times, want 1", rung)
	}
}

type bellFunc func()

func (f bellFunc) Ring() { f() }

type titleFunc func(string)

func (f titleFunc) SetTitle(s string) { f(s) }
func (titleFunc) SetIcon(string)      {}
func (titleFunc) PushTitle()          {}
func (titleFunc) PopTitle()           {}

func TestTerminalTitleProviderTracksOSC(t *testing.T) {
	var provided string
	term := New(WithSize(1, 10), WithTitle(titleFunc(func(s string) { provided = s })))
	term.WriteString("\x1b]2;session one\x07")
	if got := term.Title(); got != "session one" {
		t.Errorf("Title() = %q, want \"session one\"", got)
	}
	if provided != "session one" {
		t.Errorf("TitleProvider.SetTitle got %q, want \"session one\"", provided)
	}
}

func TestTerminalResizePreservesGridInvariant(t *testing.T) {
	term := New(WithSize(3, 10))
	term.WriteString("Hello")
	term.Resize(5, 20)
	if term.Rows() != 5 || term.Cols() != 20 {
		t.Fatalf("size after resize = (%d,%d), want (5,20)", term.Rows(), term.Cols())
	}
}

func TestTerminalFindAndSelection(t *testing.T) {
	term := New(WithSize(3, 10))
	term.WriteString("foo bar\r\nbar baz")
	pts := term.Find("bar")
	if len(pts) != 2 {
		t.Fatalf("Find(\"bar\") = %#v, want 2 matches", pts)
	}

	term.SetSelection(NewSelection(SelectionNormal, Point{Row: 0, Col: 0}, Point{Row: 0, Col: 2}))
	if !term.IsSelected(0, 1) {
		t.Error("expected (0,1) to be selected")
	}
	if got := term.SelectedText(); got != "foo" {
		t.Errorf("SelectedText() = %q, want foo", got)
	}
	term.ClearSelection()
	if term.IsSelected(0, 1) {
		t.Error("expected selection cleared")
	}
}

func TestTerminalRejectsOSC8FileURLByDefault(t *testing.T) {
	term := New(WithSize(1, 20))
	term.WriteString("\x1b]8;;file:///etc/passwd\x1b\\link\x1b]8;;\x1b\\")
	if term.RejectedOSC8() != 1 {
		t.Errorf("RejectedOSC8() = %d, want 1", term.RejectedOSC8())
	}
}

func TestTerminalAllowOSC8FileOptIn(t *testing.T) {
	term := New(WithSize(1, 20), WithAllowOSC8File(true))
	term.WriteString("\x1b]8;;file:///etc/passwd\x1b\\link\x1b]8;;\x1b\\")
	if term.RejectedOSC8() != 0 {
		t.Errorf("RejectedOSC8() = %d, want 0 when file:// URLs are allowed", term.RejectedOSC8())
	}
}
