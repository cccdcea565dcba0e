package vtcore

import (
	"reflect"
	"testing"
)

func collect(t *testing.T, data []byte) []Action {
	t.Helper()
	p := NewParser()
	return p.FeedActions(data)
}

func TestParserPlainPrint(t *testing.T) {
	actions := collect(t, []byte("Hi"))
	want := []Action{Print('H'), Print('i')}
	if !reflect.DeepEqual(actions, want) {
		t.Errorf("got %#v, want %#v", actions, want)
	}
}

func TestParserControlCode(t *testing.T) {
	actions := collect(t, []byte("A\rB"))
	want := []Action{Print('A'), Control(0x0D), Print('B')}
	if !reflect.DeepEqual(actions, want) {
		t.Errorf("got %#v, want %#v", actions, want)
	}
}

func TestParserCsiSgr(t *testing.T) {
	actions := collect(t, []byte("\x1b[1;31m"))
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d: %#v", len(actions), actions)
	}
	csi, ok := actions[0].(CsiAction)
	if !ok {
		t.Fatalf("expected CsiAction, got %T", actions[0])
	}
	if csi.Final != 'm' {
		t.Errorf("final = %c, want m", csi.Final)
	}
	if csi.Params.Len() != 2 || csi.Params.Get(0, -1) != 1 || csi.Params.Get(1, -1) != 31 {
		t.Errorf("params = %#v", csi.Params.All())
	}
}

func TestParserCsiPrivateMarker(t *testing.T) {
	actions := collect(t, []byte("\x1b[?25h"))
	csi := actions[0].(CsiAction)
	if csi.Private != '?' || csi.Final != 'h' || csi.Params.Get(0, -1) != 25 {
		t.Errorf("unexpected csi: %#v", csi)
	}
}

func TestParserCsiSubParams(t *testing.T) {
	actions := collect(t, []byte("\x1b[4:3m"))
	csi := actions[0].(CsiAction)
	subs := csi.Params.Subs(0)
	if len(subs) != 1 || subs[0] != 3 {
		t.Errorf("subs = %#v, want [3]", subs)
	}
}

func TestParserOscSplit(t *testing.T) {
	actions := collect(t, []byte("\x1b]0;my title\x07"))
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %#v", actions)
	}
	osc, ok := actions[0].(OscAction)
	if !ok {
		t.Fatalf("expected OscAction, got %T", actions[0])
	}
	if osc.Command != 0 || len(osc.Params) != 1 || osc.Params[0] != "my title" {
		t.Errorf("unexpected osc: %#v", osc)
	}
}

func TestParserOscTerminatedByST(t *testing.T) {
	actions := collect(t, []byte("\x1b]2;hello\x1b\\"))
	osc := actions[0].(OscAction)
	if osc.Command != 2 || osc.Params[0] != "hello" {
		t.Errorf("unexpected osc: %#v", osc)
	}
}

func TestParserDcsSixelPassthrough(t *testing.T) {
	actions := collect(t, []byte("\x1bPq#0;2;0;0;0#0~~\x1b\\"))
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %#v", actions)
	}
	dcs, ok := actions[0].(DcsAction)
	if !ok {
		t.Fatalf("expected DcsAction, got %T", actions[0])
	}
	if dcs.Final != 'q' {
		t.Errorf("final = %c, want q", dcs.Final)
	}
}

func TestParserApcPmSos(t *testing.T) {
	actions := collect(t, []byte("\x1b_hello\x1b\\\x1b^world\x1b\\\x1bXabc\x1b\\"))
	if len(actions) != 3 {
		t.Fatalf("expected 3 actions, got %#v", actions)
	}
	if apc, ok := actions[0].(ApcAction); !ok || string(apc) != "hello" {
		t.Errorf("apc = %#v", actions[0])
	}
	if pm, ok := actions[1].(PmAction); !ok || string(pm) != "world" {
		t.Errorf("pm = %#v", actions[1])
	}
	if sos, ok := actions[2].(SosAction); !ok || string(sos) != "abc" {
		t.Errorf("sos = %#v", actions[2])
	}
}

func TestParserCanAbortsSequence(t *testing.T) {
	actions := collect(t, []byte("\x1b[1;3\x18A"))
	// CAN aborts the in-progress CSI; only the following 'A' prints.
	found := false
	for _, a := range actions {
		if p, ok := a.(Print); ok && rune(p) == 'A' {
			found = true
		}
		if _, ok := a.(CsiAction); ok {
			t.Errorf("CSI should have been aborted by CAN, got %#v", actions)
		}
	}
	if !found {
		t.Errorf("expected Print('A') after abort, got %#v", actions)
	}
}

func TestParserEscAbortsEsc(t *testing.T) {
	actions := collect(t, []byte("\x1b[1\x1b[2m"))
	if len(actions) != 1 {
		t.Fatalf("expected 1 action (the second CSI), got %#v", actions)
	}
	csi := actions[0].(CsiAction)
	if csi.Params.Get(0, -1) != 2 {
		t.Errorf("unexpected csi: %#v", csi)
	}
}

// Spec §8 scenario 8 / §4.1 chunk independence: any split of the same
// input must produce the same action sequence.
func TestParserChunkIndependence(t *testing.T) {
	input := []byte("\x1b[1;31mHi")
	whole := collect(t, input)
	for split := 0; split <= len(input); split++ {
		p := NewParser()
		var got []Action
		p.Feed(input[:split], func(a Action) { got = append(got, a) })
		p.Feed(input[split:], func(a Action) { got = append(got, a) })
		if !reflect.DeepEqual(got, whole) {
			t.Errorf("split at %d: got %#v, want %#v", split, got, whole)
		}
	}
}

func TestParserChunkIndependenceAcrossUTF8(t *testing.T) {
	input := []byte("h\xe2\x82\xaci") // "h€i"
	whole := collect(t, input)
	for split := 0; split <= len(input); split++ {
		p := NewParser()
		var got []Action
		p.Feed(input[:split], func(a Action) { got = append(got, a) })
		p.Feed(input[split:], func(a Action) { got = append(got, a) })
		if !reflect.DeepEqual(got, whole) {
			t.Errorf("split at %d: got %#v, want %#v", split, got, whole)
		}
	}
}

func TestParserUtf8Decoding(t *testing.T) {
	actions := collect(t, []byte("h\xe2\x82\xaci"))
	want := []Action{Print('h'), Print('€'), Print('i')}
	if !reflect.DeepEqual(actions, want) {
		t.Errorf("got %#v, want %#v", actions, want)
	}
}

func TestParserUtf8InvalidContinuation(t *testing.T) {
	// A leading two-byte marker followed by a non-continuation byte
	// resets the decoder and emits U+FFFD, then reprocesses the byte.
	actions := collect(t, []byte("\xc2Ab"))
	want := []Action{Print('�'), Print('A'), Print('b')}
	if !reflect.DeepEqual(actions, want) {
		t.Errorf("got %#v, want %#v", actions, want)
	}
}

func TestParserUtf8Overlong(t *testing.T) {
	// 0xC0 0x80 is an overlong encoding of NUL.
	actions := collect(t, []byte("\xc0\x80"))
	if len(actions) != 1 {
		t.Fatalf("got %#v", actions)
	}
	p, ok := actions[0].(Print)
	if !ok || rune(p) != '�' {
		t.Errorf("got %#v, want U+FFFD", actions[0])
	}
}

func TestParserUtf8Surrogate(t *testing.T) {
	// 0xED 0xA0 0x80 encodes U+D800, a surrogate.
	actions := collect(t, []byte("\xed\xa0\x80"))
	if len(actions) != 1 {
		t.Fatalf("got %#v", actions)
	}
	p, ok := actions[0].(Print)
	if !ok || rune(p) != '�' {
		t.Errorf("got %#v, want U+FFFD", actions[0])
	}
}

func TestParserNeverPanics(t *testing.T) {
	// Throw every byte value at the parser in various sequences and
	// make sure it never panics.
	inputs := [][]byte{
		{0x1b, '[', '?', '1', ';', '2', ':', '3', 'h'},
		{0x1b, ']', '8', ';', ';', 'x', 0x07},
		{0x1b, 'P', 'q', 0x18},
		{0x9b, '1', 'm'},
		{0x90, 'X', 0x9c},
		{0xff, 0xfe, 0x80, 0x81},
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("panic on %v: %v", in, r)
				}
			}()
			collect(t, in)
		}()
	}
}

func TestParserOscSizeBound(t *testing.T) {
	huge := make([]byte, oscMaxBytes+100)
	for i := range huge {
		huge[i] = 'x'
	}
	input := append([]byte("\x1b]0;"), huge...)
	input = append(input, 0x07)
	p := NewParser()
	var sawInvalid bool
	p.Feed(input, func(a Action) {
		if _, ok := a.(Invalid); ok {
			sawInvalid = true
		}
	})
	if !sawInvalid {
		t.Error("expected an Invalid action once the OSC exceeded its size bound")
	}
}
