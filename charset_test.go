package vtcore

import "testing"

func TestCharsetStateDefaultsToASCII(t *testing.T) {
	cs := NewCharsetState()
	if got := cs.Translate('q'); got != 'q' {
		t.Errorf("Translate('q') = %q, want unchanged 'q'", got)
	}
}

func TestCharsetShiftOutSelectsG1(t *testing.T) {
	cs := NewCharsetState()
	cs.Designate(G1, CharsetDECSpecialGraphics)
	cs.ShiftOut()
	if got := cs.Translate('q'); got != '─' {
		t.Errorf("Translate('q') under G1 DEC graphics = %q, want ─", got)
	}
	cs.ShiftIn()
	if got := cs.Translate('q'); got != 'q' {
		t.Errorf("Translate('q') after SI back to G0 ASCII = %q, want unchanged", got)
	}
}

func TestCharsetSingleShiftAppliesOnce(t *testing.T) {
	cs := NewCharsetState()
	cs.Designate(G2, CharsetDECSpecialGraphics)
	cs.SingleShift(G2)
	if got := cs.Translate('j'); got != '┘' {
		t.Errorf("Translate('j') under single-shifted G2 = %q, want ┘", got)
	}
	if got := cs.Translate('j'); got != 'j' {
		t.Errorf("single shift should be consumed after one use, got %q", got)
	}
}

func TestDECSpecialGraphicsLeavesNonTableRunesUnchanged(t *testing.T) {
	cs := NewCharsetState()
	cs.Designate(G0, CharsetDECSpecialGraphics)
	if got := cs.Translate('A'); got != 'A' {
		t.Errorf("Translate('A') = %q, want unchanged (outside 0x5F-0x7E table)", got)
	}
}

func TestCharsetUKSubstitutesPoundSign(t *testing.T) {
	cs := NewCharsetState()
	cs.Designate(G0, CharsetUK)
	if got := cs.Translate('#'); got != '£' {
		t.Errorf("Translate('#') under UK charset = %q, want £", got)
	}
	if got := cs.Translate('A'); got != 'A' {
		t.Errorf("Translate('A') under UK charset = %q, want unchanged", got)
	}
}
