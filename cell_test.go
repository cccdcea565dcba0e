package vtcore

import "testing"

func TestBlankCellIsBlank(t *testing.T) {
	c := BlankCell(CellAttributes{Bold: true})
	if !c.IsBlank() {
		t.Error("BlankCell should be blank")
	}
	if c.Width != 1 {
		t.Errorf("Width = %d, want 1", c.Width)
	}
	if !c.Attrs.Bold {
		t.Error("BlankCell should carry the given attributes")
	}
}

func TestCellIsWideAndContinuation(t *testing.T) {
	wide := Cell{Content: "中", Width: 2}
	cont := Cell{Width: 0}
	normal := Cell{Content: "A", Width: 1}

	if !wide.IsWide() || wide.IsContinuation() {
		t.Errorf("wide cell: IsWide=%v IsContinuation=%v", wide.IsWide(), wide.IsContinuation())
	}
	if !cont.IsContinuation() || cont.IsWide() {
		t.Errorf("continuation cell: IsWide=%v IsContinuation=%v", cont.IsWide(), cont.IsContinuation())
	}
	if normal.IsWide() || normal.IsContinuation() {
		t.Errorf("normal cell misclassified: IsWide=%v IsContinuation=%v", normal.IsWide(), normal.IsContinuation())
	}
}

func TestCellAppendCombining(t *testing.T) {
	c := Cell{Content: "e", Width: 1}
	c.Append('́') // combining acute accent
	if c.Content != "é" {
		t.Errorf("Content = %q, want e%s", c.Content, "́")
	}
	if c.Width != 1 {
		t.Errorf("Width changed by Append: %d", c.Width)
	}
}

func TestCellAttributesResetIsAllDefault(t *testing.T) {
	attrs := CellAttributes{
		Fg: IndexedColor{Index: 1}, Bg: RGBColor{R: 1, G: 2, B: 3},
		Bold: true, Italic: true, Underline: UnderlineCurly, Inverse: true,
	}
	attrs.Reset()
	if attrs != (CellAttributes{}) {
		t.Errorf("Reset() left %#v, want zero value", attrs)
	}
}

func TestCellAttributesEffectiveFgBgSwapOnInverse(t *testing.T) {
	attrs := CellAttributes{Fg: IndexedColor{Index: 1}, Bg: IndexedColor{Index: 2}, Inverse: true}
	if got := attrs.EffectiveFg(); got != (IndexedColor{Index: 2}) {
		t.Errorf("EffectiveFg() = %#v, want bg swapped in", got)
	}
	if got := attrs.EffectiveBg(); got != (IndexedColor{Index: 1}) {
		t.Errorf("EffectiveBg() = %#v, want fg swapped in", got)
	}
}
