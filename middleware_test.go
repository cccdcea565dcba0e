package vtcore

import "testing"

func TestMiddlewareApplyOverridesPrint(t *testing.T) {
	var seen rune
	m := &Middleware{
		Print: func(r rune, next func(rune)) {
			seen = r
			next('Z')
		},
	}
	var got Action
	m.apply(Print('A'), func(a Action) { got = a })

	if seen != 'A' {
		t.Errorf("middleware observed %q, want 'A'", seen)
	}
	if p, ok := got.(Print); !ok || rune(p) != 'Z' {
		t.Errorf("fallback received %#v, want Print('Z')", got)
	}
}

func TestMiddlewareApplyFallsThroughWithoutHook(t *testing.T) {
	m := &Middleware{}
	var got Action
	m.apply(Control(0x07), func(a Action) { got = a })

	if c, ok := got.(Control); !ok || byte(c) != 0x07 {
		t.Errorf("fallback received %#v, want Control(0x07)", got)
	}
}

func TestMiddlewareApplyNilMiddlewareFallsThrough(t *testing.T) {
	var m *Middleware
	called := false
	m.apply(Print('x'), func(a Action) { called = true })
	if !called {
		t.Error("nil *Middleware should still invoke the fallback")
	}
}

func TestMiddlewareMergeOverwritesOnlyNonNilFields(t *testing.T) {
	base := &Middleware{
		Print: func(r rune, next func(rune)) { next(r) },
	}
	baseEsc := func(a EscAction, next func(EscAction)) { next(a) }
	base.Esc = baseEsc

	override := &Middleware{
		Print: func(r rune, next func(rune)) { next('Q') },
	}
	base.Merge(override)

	if base.Esc == nil {
		t.Error("Merge overwrote Esc even though override.Esc was nil")
	}

	var got Action
	base.apply(Print('A'), func(a Action) { got = a })
	if p, ok := got.(Print); !ok || rune(p) != 'Q' {
		t.Errorf("merged Print = %#v, want Print('Q')", got)
	}
}

func TestMiddlewareMergeNilOtherIsNoop(t *testing.T) {
	base := &Middleware{Print: func(r rune, next func(rune)) { next(r) }}
	base.Merge(nil)
	if base.Print == nil {
		t.Error("Merge(nil) should not clear existing hooks")
	}
}
