package vtcore

// Middleware intercepts Executor.Apply calls by Action kind, letting a
// caller observe or override behavior before falling through to the
// default implementation. One field per Action kind, matching the
// executor's own single type switch (see action.go) rather than a
// handler-per-operation interface.
type Middleware struct {
	// Print wraps the Print action handler.
	Print func(r rune, next func(rune))

	// Control wraps the Control action handler.
	Control func(b byte, next func(byte))

	// Esc wraps the Esc action handler.
	Esc func(a EscAction, next func(EscAction))

	// Csi wraps the Csi action handler.
	Csi func(a CsiAction, next func(CsiAction))

	// Osc wraps the Osc action handler.
	Osc func(a OscAction, next func(OscAction))

	// Dcs wraps the Dcs action handler.
	Dcs func(a DcsAction, next func(DcsAction))

	// Apc wraps the Apc action handler.
	Apc func(a ApcAction, next func(ApcAction))

	// Pm wraps the Pm action handler.
	Pm func(a PmAction, next func(PmAction))

	// Sos wraps the Sos action handler.
	Sos func(a SosAction, next func(SosAction))

	// Invalid wraps the Invalid action handler.
	Invalid func(a Invalid, next func(Invalid))
}

// Merge overwrites m's non-nil fields with other's, letting
// WithMiddleware be called more than once to compose hooks.
func (m *Middleware) Merge(other *Middleware) {
	if other == nil {
		return
	}
	if other.Print != nil {
		m.Print = other.Print
	}
	if other.Control != nil {
		m.Control = other.Control
	}
	if other.Esc != nil {
		m.Esc = other.Esc
	}
	if other.Csi != nil {
		m.Csi = other.Csi
	}
	if other.Osc != nil {
		m.Osc = other.Osc
	}
	if other.Dcs != nil {
		m.Dcs = other.Dcs
	}
	if other.Apc != nil {
		m.Apc = other.Apc
	}
	if other.Pm != nil {
		m.Pm = other.Pm
	}
	if other.Sos != nil {
		m.Sos = other.Sos
	}
	if other.Invalid != nil {
		m.Invalid = other.Invalid
	}
}

// apply runs a through m's hook for its kind if one is registered,
// otherwise calls fallback directly. It is the single place Executor
// consults middleware, keeping Apply's type switch the sole dispatch
// point (see action.go's design note on avoiding per-operation
// indirection).
func (m *Middleware) apply(a Action, fallback func(Action)) {
	if m == nil {
		fallback(a)
		return
	}
	switch v := a.(type) {
	case Print:
		if m.Print != nil {
			m.Print(rune(v), func(r rune) { fallback(Print(r)) })
			return
		}
	case Control:
		if m.Control != nil {
			m.Control(byte(v), func(b byte) { fallback(Control(b)) })
			return
		}
	case EscAction:
		if m.Esc != nil {
			m.Esc(v, func(e EscAction) { fallback(e) })
			return
		}
	case CsiAction:
		if m.Csi != nil {
			m.Csi(v, func(c CsiAction) { fallback(c) })
			return
		}
	case OscAction:
		if m.Osc != nil {
			m.Osc(v, func(o OscAction) { fallback(o) })
			return
		}
	case DcsAction:
		if m.Dcs != nil {
			m.Dcs(v, func(d DcsAction) { fallback(d) })
			return
		}
	case ApcAction:
		if m.Apc != nil {
			m.Apc(v, func(p ApcAction) { fallback(p) })
			return
		}
	case PmAction:
		if m.Pm != nil {
			m.Pm(v, func(p PmAction) { fallback(p) })
			return
		}
	case SosAction:
		if m.Sos != nil {
			m.Sos(v, func(s SosAction) { fallback(s) })
			return
		}
	case Invalid:
		if m.Invalid != nil {
			m.Invalid(v, func(inv Invalid) { fallback(inv) })
			return
		}
	}
	fallback(a)
}
