package vtcore

// parserState is one node of the VT500-family state machine (Paul
// Williams' parser). The decoder feeds a caller-supplied sink (here: a
// callback invoked per Action) rather than using virtual dispatch.
type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateEscapeIntermediate
	stateCsiEntry
	stateCsiParam
	stateCsiIntermediate
	stateCsiIgnore
	stateOscString
	stateDcsEntry
	stateDcsParam
	stateDcsIntermediate
	stateDcsPassthrough
	stateDcsIgnore
	stateSosPmApcString
)

// oscMaxBytes bounds how much an OSC payload can grow before the
// parser gives up and returns to Ground with Invalid.
const oscMaxBytes = 1 << 20

// sosKind distinguishes which of APC/PM/SOS is being accumulated.
type sosKind byte

const (
	sosKindNone sosKind = 0
	sosKindAPC  sosKind = '_'
	sosKindPM   sosKind = '^'
	sosKindSOS  sosKind = 'X'
)

// Parser turns a byte stream into an ordered sequence of [Action]
// values. It owns only its FSM state and a UTF-8 accumulator — it
// borrows input slices and never blocks, allocates per action only as
// needed, and never panics on any byte sequence.
type Parser struct {
	state parserState
	utf8  utf8Decoder

	intermediates []byte
	params        *Params
	private       PrivateMarker

	oscBuf []byte

	dcsParams        *Params
	dcsIntermediates []byte
	dcsFinal         byte
	dcsBuf           []byte

	sos     sosKind
	sosBuf  []byte

	awaitingST bool
}

// NewParser returns a Parser positioned at Ground.
func NewParser() *Parser {
	return &Parser{params: NewParams(), dcsParams: NewParams()}
}

// Feed parses data and invokes sink once per Action, in input order.
// Feed is re-entrant across chunk boundaries: feeding "a" then "b"
// produces the same action sequence as feeding "a"+"b" in one call.
func (p *Parser) Feed(data []byte, sink func(Action)) {
	for _, b := range data {
		p.feedByte(b, sink)
	}
}

// FeedActions parses data and returns the resulting actions as an
// owned slice.
func (p *Parser) FeedActions(data []byte) []Action {
	var out []Action
	p.Feed(data, func(a Action) { out = append(out, a) })
	return out
}

func (p *Parser) feedByte(b byte, sink func(Action)) {
	// CAN/SUB: abort any in-progress sequence from any state.
	if b == 0x18 || b == 0x1A {
		hadSequence := p.state != stateGround || p.utf8.want > 0
		p.abort()
		if b == 0x1A {
			sink(Print(replacementChar))
		} else if hadSequence {
			sink(Invalid{b})
		}
		return
	}

	// C1 single-byte equivalents of ESC-introduced sequences. Excluded
	// while mid-UTF8-continuation in Ground, since 0x80-0x9F overlaps
	// the continuation-byte range and a real UTF-8 stream never emits
	// a bare C1 byte there.
	if !(p.state == stateGround && p.utf8.want > 0) {
		switch b {
		case 0x1B:
			switch p.state {
			case stateOscString, stateDcsPassthrough, stateDcsIgnore, stateSosPmApcString:
				// ESC may open the two-byte ST terminator; the string
				// state's own handler decides.
			default:
				p.abort()
				p.state = stateEscape
				return
			}
		case 0x90: // C1 DCS
			p.abort()
			p.enterDcsEntry()
			return
		case 0x98: // C1 SOS
			p.abort()
			p.state = stateSosPmApcString
			p.sos = sosKindSOS
			return
		case 0x9B: // C1 CSI
			p.abort()
			p.enterCsiEntry()
			return
		case 0x9C: // C1 ST
			p.finishOpenString(sink)
			return
		case 0x9D: // C1 OSC
			p.abort()
			p.state = stateOscString
			p.oscBuf = p.oscBuf[:0]
			return
		case 0x9E: // C1 PM
			p.abort()
			p.state = stateSosPmApcString
			p.sos = sosKindPM
			return
		case 0x9F: // C1 APC
			p.abort()
			p.state = stateSosPmApcString
			p.sos = sosKindAPC
			return
		}
	}

	switch p.state {
	case stateGround:
		p.feedGround(b, sink)
	case stateEscape:
		p.feedEscape(b, sink)
	case stateEscapeIntermediate:
		p.feedEscapeIntermediate(b, sink)
	case stateCsiEntry, stateCsiParam:
		p.feedCsiParam(b, sink)
	case stateCsiIntermediate:
		p.feedCsiIntermediate(b, sink)
	case stateCsiIgnore:
		p.feedCsiIgnore(b, sink)
	case stateOscString:
		p.feedOscString(b, sink)
	case stateDcsEntry, stateDcsParam:
		p.feedDcsParam(b, sink)
	case stateDcsIntermediate:
		p.feedDcsIntermediate(b, sink)
	case stateDcsPassthrough:
		p.feedDcsPassthrough(b, sink)
	case stateDcsIgnore:
		p.feedDcsIgnore(b, sink)
	case stateSosPmApcString:
		p.feedSosPmApcString(b, sink)
	}
}

// abort discards any in-progress sequence/UTF-8 accumulation and
// returns to Ground.
func (p *Parser) abort() {
	p.state = stateGround
	p.utf8.reset()
	p.intermediates = p.intermediates[:0]
	p.params.Reset()
	p.private = 0
	p.oscBuf = p.oscBuf[:0]
	p.dcsParams.Reset()
	p.dcsIntermediates = p.dcsIntermediates[:0]
	p.dcsBuf = p.dcsBuf[:0]
	p.dcsFinal = 0
	p.sos = sosKindNone
	p.sosBuf = p.sosBuf[:0]
	p.awaitingST = false
}

func (p *Parser) enterCsiEntry() {
	p.state = stateCsiEntry
	p.intermediates = p.intermediates[:0]
	p.params.Reset()
	p.private = 0
}

func (p *Parser) enterDcsEntry() {
	p.state = stateDcsEntry
	p.dcsParams.Reset()
	p.dcsIntermediates = p.dcsIntermediates[:0]
	p.dcsBuf = p.dcsBuf[:0]
	p.dcsFinal = 0
}

// --- Ground ---

func (p *Parser) feedGround(b byte, sink func(Action)) {
	r, ready, consumed := p.utf8.step(b)
	if !ready {
		return
	}
	if !consumed {
		// b was not part of the broken sequence that produced r;
		// surface r then reprocess b from a clean state.
		sink(Print(r))
		p.feedByte(b, sink)
		return
	}
	if r < 0x20 {
		sink(Control(byte(r)))
		return
	}
	sink(Print(r))
}

// --- Escape ---

func (p *Parser) feedEscape(b byte, sink func(Action)) {
	switch {
	case b >= 0x20 && b <= 0x2F:
		p.intermediates = p.intermediates[:0]
		p.intermediates = append(p.intermediates, b)
		p.state = stateEscapeIntermediate
	case b == '[':
		p.enterCsiEntry()
	case b == ']':
		p.state = stateOscString
		p.oscBuf = p.oscBuf[:0]
	case b == 'P':
		p.enterDcsEntry()
	case b == 'X':
		p.state = stateSosPmApcString
		p.sos = sosKindSOS
	case b == '^':
		p.state = stateSosPmApcString
		p.sos = sosKindPM
	case b == '_':
		p.state = stateSosPmApcString
		p.sos = sosKindAPC
	case b >= 0x30 && b <= 0x7E:
		sink(EscAction{Final: b})
		p.state = stateGround
	default:
		// C0 controls and DEL may appear between ESC and the final byte
		// on real terminals; ignore without aborting.
	}
}

func (p *Parser) feedEscapeIntermediate(b byte, sink func(Action)) {
	switch {
	case b >= 0x20 && b <= 0x2F:
		p.intermediates = append(p.intermediates, b)
	case b >= 0x30 && b <= 0x7E:
		inter := append([]byte(nil), p.intermediates...)
		sink(EscAction{Intermediates: inter, Final: b})
		p.state = stateGround
	}
}

// --- CSI ---

func (p *Parser) feedCsiParam(b byte, sink func(Action)) {
	switch {
	case b >= '0' && b <= '9':
		p.params.Digit(b)
		p.state = stateCsiParam
	case b == ';':
		p.params.Semicolon()
		p.state = stateCsiParam
	case b == ':':
		p.params.Colon()
		p.state = stateCsiParam
	case b == '<' || b == '=' || b == '>' || b == '?':
		if p.private == 0 {
			p.private = PrivateMarker(b)
		}
		p.state = stateCsiParam
	case b >= 0x20 && b <= 0x2F:
		p.intermediates = append(p.intermediates, b)
		p.state = stateCsiIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.dispatchCsi(b, sink)
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) feedCsiIntermediate(b byte, sink func(Action)) {
	switch {
	case b >= 0x20 && b <= 0x2F:
		p.intermediates = append(p.intermediates, b)
	case b >= 0x40 && b <= 0x7E:
		p.dispatchCsi(b, sink)
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) feedCsiIgnore(b byte, sink func(Action)) {
	if b >= 0x40 && b <= 0x7E {
		p.state = stateGround
	}
}

func (p *Parser) dispatchCsi(final byte, sink func(Action)) {
	sink(CsiAction{
		Params:        p.params,
		Intermediates: append([]byte(nil), p.intermediates...),
		Private:       p.private,
		Final:         final,
	})
	// CsiAction.Params is handed to the sink by reference for zero-copy
	// delivery; reset allocates a fresh one so the sink's copy stays valid.
	p.params = NewParams()
	p.state = stateGround
}

// --- OSC ---

func (p *Parser) feedOscString(b byte, sink func(Action)) {
	if p.awaitingST {
		p.awaitingST = false
		if b == '\\' {
			p.finishOsc(sink)
			return
		}
		p.oscBuf = p.oscBuf[:0]
		p.state = stateEscape
		p.feedByte(b, sink)
		return
	}
	switch b {
	case 0x07:
		p.finishOsc(sink)
	case 0x1B:
		p.awaitingST = true
	default:
		if len(p.oscBuf) >= oscMaxBytes {
			sink(Invalid(append([]byte(nil), p.oscBuf...)))
			p.oscBuf = p.oscBuf[:0]
			p.state = stateGround
			return
		}
		p.oscBuf = append(p.oscBuf, b)
	}
}

func (p *Parser) finishOsc(sink func(Action)) {
	cmd, params := splitOsc(p.oscBuf)
	sink(OscAction{Command: cmd, Params: params})
	p.oscBuf = p.oscBuf[:0]
	p.state = stateGround
}

// --- DCS ---

func (p *Parser) feedDcsParam(b byte, sink func(Action)) {
	switch {
	case b >= '0' && b <= '9':
		p.dcsParams.Digit(b)
		p.state = stateDcsParam
	case b == ';':
		p.dcsParams.Semicolon()
		p.state = stateDcsParam
	case b == ':':
		p.dcsParams.Colon()
		p.state = stateDcsParam
	case b == '<' || b == '=' || b == '>' || b == '?':
		p.state = stateDcsParam
	case b >= 0x20 && b <= 0x2F:
		p.dcsIntermediates = append(p.dcsIntermediates, b)
		p.state = stateDcsIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.dcsFinal = b
		p.state = stateDcsPassthrough
		p.dcsBuf = p.dcsBuf[:0]
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) feedDcsIntermediate(b byte, sink func(Action)) {
	switch {
	case b >= 0x20 && b <= 0x2F:
		p.dcsIntermediates = append(p.dcsIntermediates, b)
	case b >= 0x40 && b <= 0x7E:
		p.dcsFinal = b
		p.state = stateDcsPassthrough
		p.dcsBuf = p.dcsBuf[:0]
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) feedDcsPassthrough(b byte, sink func(Action)) {
	if p.awaitingST {
		p.awaitingST = false
		if b == '\\' {
			p.finishDcs(sink)
			return
		}
		p.dcsBuf = p.dcsBuf[:0]
		p.state = stateEscape
		p.feedByte(b, sink)
		return
	}
	if b == 0x1B {
		p.awaitingST = true
		return
	}
	p.dcsBuf = append(p.dcsBuf, b)
}

func (p *Parser) finishDcs(sink func(Action)) {
	sink(DcsAction{
		Params:        p.dcsParams,
		Intermediates: append([]byte(nil), p.dcsIntermediates...),
		Final:         p.dcsFinal,
		Data:          append([]byte(nil), p.dcsBuf...),
	})
	p.dcsParams = NewParams()
	p.dcsBuf = p.dcsBuf[:0]
	p.state = stateGround
}

func (p *Parser) feedDcsIgnore(b byte, sink func(Action)) {
	if p.awaitingST {
		p.awaitingST = false
		if b == '\\' {
			p.state = stateGround
			return
		}
		p.state = stateEscape
		p.feedByte(b, sink)
		return
	}
	if b == 0x1B {
		p.awaitingST = true
	}
}

// --- SOS/PM/APC ---

func (p *Parser) feedSosPmApcString(b byte, sink func(Action)) {
	if p.awaitingST {
		p.awaitingST = false
		if b == '\\' {
			p.finishSosPmApc(sink)
			return
		}
		p.sosBuf = p.sosBuf[:0]
		p.state = stateEscape
		p.feedByte(b, sink)
		return
	}
	if b == 0x1B {
		p.awaitingST = true
		return
	}
	p.sosBuf = append(p.sosBuf, b)
}

func (p *Parser) finishSosPmApc(sink func(Action)) {
	data := append([]byte(nil), p.sosBuf...)
	switch p.sos {
	case sosKindAPC:
		sink(ApcAction(data))
	case sosKindPM:
		sink(PmAction(data))
	default:
		sink(SosAction(data))
	}
	p.sosBuf = p.sosBuf[:0]
	p.sos = sosKindNone
	p.state = stateGround
}

// finishOpenString handles a bare C1 ST (0x9C) by finalizing whichever
// string-collecting state is currently open, or doing nothing if none
// is. Behaves identically to its two-byte ESC \ equivalent.
func (p *Parser) finishOpenString(sink func(Action)) {
	switch p.state {
	case stateOscString:
		p.finishOsc(sink)
	case stateDcsPassthrough:
		p.finishDcs(sink)
	case stateDcsIgnore:
		p.state = stateGround
	case stateSosPmApcString:
		p.finishSosPmApc(sink)
	}
}

// splitOsc separates an OSC payload into its leading numeric command
// and the remaining semicolon-delimited parameters.
func splitOsc(buf []byte) (int, []string) {
	i := 0
	for i < len(buf) && buf[i] >= '0' && buf[i] <= '9' {
		i++
	}
	cmd := -1
	if i > 0 {
		cmd = 0
		for _, c := range buf[:i] {
			cmd = cmd*10 + int(c-'0')
		}
	}

	rest := buf[i:]
	if len(rest) > 0 && rest[0] == ';' {
		rest = rest[1:]
	}
	if len(rest) == 0 && cmd == -1 {
		return cmd, nil
	}

	var params []string
	start := 0
	for j := 0; j <= len(rest); j++ {
		if j == len(rest) || rest[j] == ';' {
			params = append(params, string(rest[start:j]))
			start = j + 1
		}
	}
	return cmd, params
}
