package vtcore

import "testing"

func fillLine(l *Line, s string) {
	for i, r := range s {
		if i >= len(l.Cells) {
			break
		}
		l.Cells[i] = Cell{Content: string(r), Width: 1}
	}
}

func TestLineTextTrimsTrailingBlank(t *testing.T) {
	l := NewLine(5)
	fillLine(&l, "Hi")
	if got := l.Text(); got != "Hi" {
		t.Errorf("Text() = %q, want Hi", got)
	}
}

func TestLineTextSkipsContinuationCells(t *testing.T) {
	l := NewLine(3)
	l.Cells[0] = Cell{Content: "中", Width: 2}
	l.Cells[1] = Cell{Width: 0}
	l.Cells[2] = Cell{Content: "A", Width: 1}
	if got := l.Text(); got != "中A" {
		t.Errorf("Text() = %q, want 中A", got)
	}
}

func TestLineClearRange(t *testing.T) {
	l := NewLine(5)
	fillLine(&l, "ABCDE")
	l.ClearRange(1, 3, CellAttributes{})
	want := "A  DE"
	var got string
	for _, c := range l.Cells {
		if c.Content == "" {
			got += " "
		} else {
			got += c.Content
		}
	}
	if got != want {
		t.Errorf("cells = %q, want %q", got, want)
	}
}

func TestLineResizeGrowShrink(t *testing.T) {
	l := NewLine(3)
	fillLine(&l, "ABC")
	l.Resize(5, CellAttributes{})
	if l.Cols() != 5 {
		t.Fatalf("Cols() = %d, want 5", l.Cols())
	}
	if got := l.Text(); got != "ABC" {
		t.Errorf("Text() after grow = %q, want ABC", got)
	}
	l.Resize(2, CellAttributes{})
	if l.Cols() != 2 {
		t.Fatalf("Cols() = %d, want 2", l.Cols())
	}
	if got := l.Text(); got != "AB" {
		t.Errorf("Text() after shrink = %q, want AB", got)
	}
}

func TestLineInsertCells(t *testing.T) {
	l := NewLine(5)
	fillLine(&l, "ABCDE")
	l.InsertCells(1, 2, CellAttributes{})
	var got string
	for _, c := range l.Cells {
		if c.Content == "" {
			got += " "
		} else {
			got += c.Content
		}
	}
	if got != "A  BC" {
		t.Errorf("cells = %q, want %q", got, "A  BC")
	}
}

func TestLineDeleteCells(t *testing.T) {
	l := NewLine(5)
	fillLine(&l, "ABCDE")
	l.DeleteCells(1, 2, CellAttributes{})
	var got string
	for _, c := range l.Cells {
		if c.Content == "" {
			got += " "
		} else {
			got += c.Content
		}
	}
	if got != "ADE  " {
		t.Errorf("cells = %q, want %q", got, "ADE  ")
	}
}

func TestLineCopyIsIndependent(t *testing.T) {
	l := NewLine(3)
	fillLine(&l, "ABC")
	cp := l.Copy()
	cp.Cells[0].Content = "Z"
	if l.Cells[0].Content == "Z" {
		t.Error("Copy shared the underlying cell slice")
	}
}
