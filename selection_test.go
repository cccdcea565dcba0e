package vtcore

import "testing"

func TestSelectionNormalizesEndpoints(t *testing.T) {
	sel := NewSelection(SelectionNormal, Point{Row: 2, Col: 5}, Point{Row: 0, Col: 0})
	if sel.Start != (Point{Row: 0, Col: 0}) {
		t.Errorf("Start = %#v, want (0,0)", sel.Start)
	}
	if sel.End != (Point{Row: 2, Col: 5}) {
		t.Errorf("End = %#v, want (2,5)", sel.End)
	}
}

func TestSelectionNormalContainsFollowsTextFlow(t *testing.T) {
	sel := NewSelection(SelectionNormal, Point{Row: 0, Col: 5}, Point{Row: 2, Col: 2})
	cases := []struct {
		p    Point
		want bool
	}{
		{Point{Row: 0, Col: 4}, false}, // before start on first row
		{Point{Row: 0, Col: 5}, true},  // exactly at start
		{Point{Row: 1, Col: 0}, true},  // whole middle row included
		{Point{Row: 2, Col: 2}, true},  // exactly at end
		{Point{Row: 2, Col: 3}, false}, // after end on last row
	}
	for _, c := range cases {
		if got := sel.Contains(c.p); got != c.want {
			t.Errorf("Contains(%#v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestSelectionLineIgnoresColumns(t *testing.T) {
	sel := NewSelection(SelectionLine, Point{Row: 1, Col: 99}, Point{Row: 3, Col: 0})
	if !sel.Contains(Point{Row: 2, Col: 0}) {
		t.Error("expected row 2 col 0 inside a line selection spanning rows 1-3")
	}
	if sel.Contains(Point{Row: 4, Col: 0}) {
		t.Error("row 4 should be outside the line selection")
	}
}

func TestSelectionBlockIsRectangular(t *testing.T) {
	sel := NewSelection(SelectionBlock, Point{Row: 0, Col: 5}, Point{Row: 2, Col: 1})
	if !sel.Contains(Point{Row: 1, Col: 5}) {
		t.Error("expected (1,5) inside the block (col within [1,5] on every row)")
	}
	if sel.Contains(Point{Row: 1, Col: 6}) {
		t.Error("(1,6) should be outside the block")
	}
}

func TestSelectionContainsNegativeScrollbackRows(t *testing.T) {
	sel := NewSelection(SelectionNormal, Point{Row: -2, Col: 0}, Point{Row: 0, Col: 3})
	if !sel.Contains(Point{Row: -1, Col: 0}) {
		t.Error("expected a scrollback row (-1) inside a selection starting at row -2")
	}
}

func TestSelectionInactiveContainsNothing(t *testing.T) {
	sel := NewSelection(SelectionNormal, Point{}, Point{Row: 5, Col: 5})
	sel.Active = false
	if sel.Contains(Point{Row: 1, Col: 1}) {
		t.Error("an inactive selection should contain nothing")
	}
}

func TestSelectionIsEmpty(t *testing.T) {
	empty := NewSelection(SelectionNormal, Point{Row: 1, Col: 1}, Point{Row: 1, Col: 1})
	if !empty.IsEmpty() {
		t.Error("a normal selection with equal endpoints should be empty")
	}
	nonEmpty := NewSelection(SelectionLine, Point{Row: 1, Col: 1}, Point{Row: 1, Col: 1})
	if nonEmpty.IsEmpty() {
		t.Error("a line selection with equal endpoints still spans the whole row")
	}
}
