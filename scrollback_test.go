package vtcore

import "testing"

func lineOf(s string) Line {
	l := NewLine(len(s))
	fillLine(&l, s)
	return l
}

func TestMemoryScrollbackFIFOEviction(t *testing.T) {
	sb := NewMemoryScrollback(3)
	for _, s := range []string{"a", "b", "c", "d"} {
		sb.Push(lineOf(s))
	}
	if sb.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", sb.Len())
	}
	want := []string{"b", "c", "d"}
	for i, w := range want {
		if got := sb.Line(i).Text(); got != w {
			t.Errorf("Line(%d) = %q, want %q", i, got, w)
		}
	}
}

func TestMemoryScrollbackZeroCapacityDiscards(t *testing.T) {
	sb := NewMemoryScrollback(0)
	sb.Push(lineOf("x"))
	if sb.Len() != 0 {
		t.Errorf("Len() = %d, want 0 with zero capacity", sb.Len())
	}
}

func TestMemoryScrollbackSetMaxLinesShrinkKeepsNewest(t *testing.T) {
	sb := NewMemoryScrollback(5)
	for _, s := range []string{"a", "b", "c", "d"} {
		sb.Push(lineOf(s))
	}
	sb.SetMaxLines(2)
	if sb.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", sb.Len())
	}
	if got := sb.Line(0).Text(); got != "c" {
		t.Errorf("Line(0) = %q, want c", got)
	}
	if got := sb.Line(1).Text(); got != "d" {
		t.Errorf("Line(1) = %q, want d", got)
	}
}

func TestMemoryScrollbackSetMaxLinesGrow(t *testing.T) {
	sb := NewMemoryScrollback(2)
	sb.Push(lineOf("a"))
	sb.Push(lineOf("b"))
	sb.SetMaxLines(5)
	sb.Push(lineOf("c"))
	if sb.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", sb.Len())
	}
	if sb.MaxLines() != 5 {
		t.Errorf("MaxLines() = %d, want 5", sb.MaxLines())
	}
}

func TestMemoryScrollbackClear(t *testing.T) {
	sb := NewMemoryScrollback(3)
	sb.Push(lineOf("a"))
	sb.Clear()
	if sb.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, want 0", sb.Len())
	}
}

func TestNoopScrollbackDiscardsEverything(t *testing.T) {
	var sb NoopScrollback
	sb.Push(lineOf("a"))
	if sb.Len() != 0 {
		t.Errorf("NoopScrollback.Len() = %d, want 0", sb.Len())
	}
}
