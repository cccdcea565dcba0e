package vtcore

import (
	"encoding/base64"
	"fmt"
)

// Executor applies Actions to a Screen, one action at a time, driven by
// a type switch over the closed Action union instead of one interface
// method per action kind. Executor carries no lock of its own — Screen
// and Parser are deliberately single-threaded; Terminal is the
// concurrency-safe wrapper.
type Executor struct {
	screen *Screen

	Bell       BellProvider
	Title      TitleProvider
	Clipboard  ClipboardProvider
	APC        APCProvider
	PM         PMProvider
	SOS        SOSProvider
	Reply      ResponseProvider

	// AllowOSC8File controls whether OSC 8 hyperlinks with a file:// URI
	// are honored. Rejected by default; RejectedOSC8 counts the
	// rejections.
	AllowOSC8File bool
	RejectedOSC8  int

	unknownCSI int
	unknownOSC int

	titleStack []string

	kitty *KittyDispatcher

	nextHyperlinkID uint32
	hyperlinkByID   map[uint32]string
	hyperlinkByURI  map[string]uint32

	middleware *Middleware
}

// SetMiddleware installs hooks that intercept Apply calls by Action
// kind. Passing nil removes interception.
func (e *Executor) SetMiddleware(m *Middleware) {
	e.middleware = m
}

// NewExecutor returns an Executor over screen with every provider set
// to its no-op default. Wire real providers by assigning the fields
// directly (Terminal's With* options do this).
func NewExecutor(screen *Screen) *Executor {
	return &Executor{
		screen:        screen,
		Bell:          NoopBell{},
		Title:         NoopTitle{},
		Clipboard:     NoopClipboard{},
		APC:           NoopAPC{},
		PM:            NoopPM{},
		SOS:           NoopSOS{},
		Reply:         NoopResponse{},
		kitty:         NewKittyDispatcher(screen.Images()),
		hyperlinkByID: make(map[uint32]string),
		hyperlinkByURI: make(map[string]uint32),
	}
}

func (e *Executor) Screen() *Screen { return e.screen }

// Apply dispatches one Action to the screen.
func (e *Executor) Apply(a Action) {
	e.middleware.apply(a, e.applyDefault)
}

// applyDefault is the default Apply implementation, invoked directly
// when no middleware is installed and as the `next` fallback when one
// is.
func (e *Executor) applyDefault(a Action) {
	switch v := a.(type) {
	case Print:
		e.print(rune(v))
	case Control:
		e.control(byte(v))
	case EscAction:
		e.esc(v)
	case CsiAction:
		e.csi(v)
	case OscAction:
		e.osc(v)
	case DcsAction:
		e.dcs(v)
	case ApcAction:
		e.apc(v)
	case PmAction:
		e.PM.Receive([]byte(v))
	case SosAction:
		e.SOS.Receive([]byte(v))
	case Invalid:
		// Counted only by callers that care; the executor itself never
		// errors on it.
	}
}

// ApplyAll dispatches every action in order.
func (e *Executor) ApplyAll(actions []Action) {
	for _, a := range actions {
		e.Apply(a)
	}
}

// --- print flow ---

func (e *Executor) print(r rune) {
	cs := e.screen.Charset()
	r = cs.Translate(r)

	w := runeWidth(r)
	if w == 0 {
		e.appendCombining(r)
		return
	}

	cur := e.screen.Cursor()
	cols := e.screen.Cols()

	if cur.PendingWrap && e.screen.Modes().Has(ModeAutowrap) {
		grid := e.screen.Grid()
		grid.Line(cur.Row).Wrapped = true
		e.lineFeed()
		e.carriageReturn()
		cur.PendingWrap = false
	}

	if e.screen.Modes().Has(ModeInsert) {
		e.screen.Grid().Line(cur.Row).InsertCells(cur.Col, w, cur.Attrs)
	}

	if cur.Row < 0 || cur.Row >= e.screen.Rows() || cur.Col < 0 || cur.Col >= cols {
		return
	}

	line := e.screen.Grid().Line(cur.Row)
	cell := &line.Cells[cur.Col]
	*cell = Cell{Content: string(r), Attrs: cur.Attrs, Width: uint8(w), HyperlinkID: cur.HyperlinkID}
	if w == 2 && cur.Col+1 < cols {
		line.Cells[cur.Col+1] = Cell{Width: 0, Attrs: cur.Attrs, HyperlinkID: cur.HyperlinkID}
	}

	cur.Col += w
	if cur.Col >= cols {
		cur.Col = cols - 1
		cur.PendingWrap = true
	} else {
		cur.PendingWrap = false
	}
	e.screen.MarkRowDirty(cur.Row)
}

// appendCombining attaches a zero-width rune to the cell left of the
// cursor, or drops it if there is no prior cell (spec §4.3 step 3).
func (e *Executor) appendCombining(r rune) {
	cur := e.screen.Cursor()
	col := cur.Col - 1
	if cur.PendingWrap {
		col = cur.Col - 1
	}
	if col < 0 || col >= e.screen.Cols() {
		return
	}
	line := e.screen.Grid().Line(cur.Row)
	line.Cells[col].Append(r)
	e.screen.MarkRowDirty(cur.Row)
}

func (e *Executor) control(b byte) {
	switch b {
	case 0x07: // BEL
		e.Bell.Ring()
	case 0x08: // BS
		cur := e.screen.Cursor()
		if cur.Col > 0 {
			cur.Col--
		}
		cur.PendingWrap = false
	case 0x09: // TAB
		e.tab(1)
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		e.lineFeed()
		if e.screen.Modes().Has(ModeLineFeedNewline) {
			e.carriageReturn()
		}
	case 0x0D: // CR
		e.carriageReturn()
	case 0x0E: // SI
		e.screen.Charset().ShiftIn()
	case 0x0F: // SO
		e.screen.Charset().ShiftOut()
	}
}

func (e *Executor) tab(n int) {
	cur := e.screen.Cursor()
	cols := e.screen.Cols()
	for i := 0; i < n; i++ {
		next := (cur.Col/8 + 1) * 8
		if next >= cols {
			next = cols - 1
		}
		cur.Col = next
	}
	cur.PendingWrap = false
}

func (e *Executor) carriageReturn() {
	cur := e.screen.Cursor()
	cur.Col = 0
	cur.PendingWrap = false
}

// lineFeed implements spec §4.3 "Line feed": scroll when at the
// region bottom, else advance.
func (e *Executor) lineFeed() {
	cur := e.screen.Cursor()
	_, bottom := e.screen.ScrollRegion()
	if cur.Row == bottom {
		e.screen.ScrollUp(1)
	} else if cur.Row < e.screen.Rows()-1 {
		cur.Row++
	}
	cur.PendingWrap = false
}

func (e *Executor) reverseIndex() {
	cur := e.screen.Cursor()
	top, _ := e.screen.ScrollRegion()
	if cur.Row == top {
		e.screen.ScrollDown(1)
	} else if cur.Row > 0 {
		cur.Row--
	}
	cur.PendingWrap = false
}

// --- ESC dispatch (spec §4.3 "ESC dispatch") ---

func (e *Executor) esc(a EscAction) {
	if len(a.Intermediates) > 0 {
		e.escIntermediate(a)
		return
	}
	switch a.Final {
	case '7':
		e.screen.SaveCursor()
	case '8':
		e.screen.RestoreCursor()
	case 'D':
		e.lineFeed()
	case 'M':
		e.reverseIndex()
	case 'E':
		e.lineFeed()
		e.carriageReturn()
	case 'H':
		// HTS: no persistent tab-stop model kept (spec scope covers the
		// default every-8-columns stops only); no-op.
	case 'c':
		e.screen.Reset()
	case '=':
		e.screen.Modes().Set(ModeKeypadApplication, true)
	case '>':
		e.screen.Modes().Set(ModeKeypadApplication, false)
	}
}

func (e *Executor) escIntermediate(a EscAction) {
	if a.Intermediates[0] == '#' && a.Final == '8' {
		e.decaln()
		return
	}
	if len(a.Intermediates) == 1 {
		slot, ok := gSlotForIntermediate(a.Intermediates[0])
		if ok {
			charset := charsetForFinal(a.Final)
			e.screen.Charset().Designate(slot, charset)
		}
	}
}

func gSlotForIntermediate(b byte) (GSlot, bool) {
	switch b {
	case '(':
		return G0, true
	case ')':
		return G1, true
	case '*':
		return G2, true
	case '+':
		return G3, true
	}
	return 0, false
}

func charsetForFinal(b byte) Charset {
	switch b {
	case '0':
		return CharsetDECSpecialGraphics
	case 'A':
		return CharsetUK
	default:
		return CharsetASCII
	}
}

// decaln fills the screen with 'E' (DECALN alignment test, spec §9
// open question: preserve the reference's 'E' fill).
func (e *Executor) decaln() {
	grid := e.screen.Grid()
	attrs := CellAttributes{}
	for row := 0; row < grid.Rows(); row++ {
		line := grid.Line(row)
		for col := range line.Cells {
			line.Cells[col] = Cell{Content: "E", Width: 1, Attrs: attrs}
		}
	}
	e.screen.MarkRangeDirty(0, grid.Rows()-1)
}

// --- CSI dispatch (spec §4.3 CSI dispatch table) ---

func (e *Executor) csi(a CsiAction) {
	if a.Private != 0 {
		e.csiPrivate(a)
		return
	}
	if len(a.Intermediates) > 0 {
		e.csiIntermediate(a)
		return
	}

	p := a.Params
	cur := e.screen.Cursor()
	rows := e.screen.Rows()

	switch a.Final {
	case 'A':
		e.moveCursorRow(-p.GetOrDefault1(0))
	case 'B':
		e.moveCursorRow(p.GetOrDefault1(0))
	case 'C':
		e.moveCursorCol(p.GetOrDefault1(0))
	case 'D':
		e.moveCursorCol(-p.GetOrDefault1(0))
	case 'E':
		e.moveCursorRow(p.GetOrDefault1(0))
		e.carriageReturn()
	case 'F':
		e.moveCursorRow(-p.GetOrDefault1(0))
		e.carriageReturn()
	case 'G':
		e.setCursorCol(p.GetOrDefault1(0) - 1)
	case 'H', 'f':
		e.cup(p.GetOrDefault1(0), p.GetOrDefault1(1))
	case 'd':
		e.setCursorRow(p.GetOrDefault1(0) - 1)
	case 'J':
		e.eraseInDisplay(p.Get(0, 0))
	case 'K':
		e.eraseInLine(p.Get(0, 0))
	case 'X':
		n := p.GetOrDefault1(0)
		e.screen.Grid().Line(cur.Row).EraseCells(cur.Col, n, cur.Attrs)
		e.screen.MarkRowDirty(cur.Row)
	case '@':
		n := p.GetOrDefault1(0)
		e.screen.Grid().Line(cur.Row).InsertCells(cur.Col, n, cur.Attrs)
		e.screen.MarkRowDirty(cur.Row)
	case 'P':
		n := p.GetOrDefault1(0)
		e.screen.Grid().Line(cur.Row).DeleteCells(cur.Col, n, cur.Attrs)
		e.screen.MarkRowDirty(cur.Row)
	case 'L':
		top, bottom := e.screen.ScrollRegion()
		n := p.GetOrDefault1(0)
		if cur.Row >= top && cur.Row <= bottom {
			e.screen.Grid().InsertLines(cur.Row, n, bottom+1, cur.Attrs)
			e.screen.MarkRangeDirty(cur.Row, bottom)
		}
	case 'M':
		top, bottom := e.screen.ScrollRegion()
		n := p.GetOrDefault1(0)
		if cur.Row >= top && cur.Row <= bottom {
			e.screen.Grid().DeleteLines(cur.Row, n, bottom+1, cur.Attrs)
			e.screen.MarkRangeDirty(cur.Row, bottom)
		}
	case 'S':
		e.screen.ScrollUp(p.GetOrDefault1(0))
	case 'T':
		e.screen.ScrollDown(p.GetOrDefault1(0))
	case 'r':
		top := p.Get(0, 1) - 1
		bottom := p.Get(1, rows) - 1
		e.screen.SetScrollRegion(top, bottom)
		e.cup(1, 1)
	case 's':
		e.screen.SaveCursor()
	case 'u':
		e.screen.RestoreCursor()
	case 'g':
		// TBC: no persistent tab-stop model (see ESC HTS); no-op.
	case 'm':
		e.sgr(p)
	case 'h':
		e.setAnsiMode(p, true)
	case 'l':
		e.setAnsiMode(p, false)
	case 'c':
		e.Reply.Write([]byte("\x1b[?1;2c")) // DA1
	case 'n':
		e.dsr(p.Get(0, 0))
	case 't':
		e.xtermWindow(p)
	default:
		e.unknownCSI++
	}
}

func (e *Executor) csiIntermediate(a CsiAction) {
	if len(a.Intermediates) == 1 && a.Intermediates[0] == ' ' && a.Final == 'q' {
		e.decscusr(a.Params.Get(0, 0))
		return
	}
	e.unknownCSI++
}

func (e *Executor) csiPrivate(a CsiAction) {
	if a.Private != '?' {
		e.unknownCSI++
		return
	}
	switch a.Final {
	case 'h':
		e.setDecMode(a.Params, true)
	case 'l':
		e.setDecMode(a.Params, false)
	case 'c':
		e.Reply.Write([]byte("\x1b[?6c")) // DA2
	default:
		e.unknownCSI++
	}
}

func (e *Executor) moveCursorRow(delta int) {
	cur := e.screen.Cursor()
	top, bottom := e.screen.ScrollRegion()
	lo, hi := 0, e.screen.Rows()-1
	if cur.OriginMode {
		lo, hi = top, bottom
	}
	cur.Row += delta
	if cur.Row < lo {
		cur.Row = lo
	}
	if cur.Row > hi {
		cur.Row = hi
	}
	cur.PendingWrap = false
}

func (e *Executor) moveCursorCol(delta int) {
	cur := e.screen.Cursor()
	cur.Col += delta
	if cur.Col < 0 {
		cur.Col = 0
	}
	if cur.Col > e.screen.Cols()-1 {
		cur.Col = e.screen.Cols() - 1
	}
	cur.PendingWrap = false
}

func (e *Executor) setCursorCol(col int) {
	cur := e.screen.Cursor()
	if col < 0 {
		col = 0
	}
	if col > e.screen.Cols()-1 {
		col = e.screen.Cols() - 1
	}
	cur.Col = col
	cur.PendingWrap = false
}

func (e *Executor) setCursorRow(row int) {
	cur := e.screen.Cursor()
	top, bottom := e.screen.ScrollRegion()
	if cur.OriginMode {
		row += top
		if row > bottom {
			row = bottom
		}
	}
	if row < 0 {
		row = 0
	}
	if row > e.screen.Rows()-1 {
		row = e.screen.Rows() - 1
	}
	cur.Row = row
	cur.PendingWrap = false
}

// cup implements CUP/HVP, origin-mode aware (spec §4.3 "Scroll region").
func (e *Executor) cup(row, col int) {
	cur := e.screen.Cursor()
	top, bottom := e.screen.ScrollRegion()
	r, c := row-1, col-1
	lo, hi := 0, e.screen.Rows()-1
	if cur.OriginMode {
		r += top
		lo, hi = top, bottom
	}
	if r < lo {
		r = lo
	}
	if r > hi {
		r = hi
	}
	if c < 0 {
		c = 0
	}
	if c > e.screen.Cols()-1 {
		c = e.screen.Cols() - 1
	}
	cur.Row, cur.Col = r, c
	cur.PendingWrap = false
}

func (e *Executor) eraseInDisplay(mode int) {
	grid := e.screen.Grid()
	cur := e.screen.Cursor()
	bg := cur.Attrs
	switch mode {
	case 0:
		grid.ClearBelow(cur.Row, cur.Col, bg)
		e.screen.MarkRangeDirty(cur.Row, grid.Rows()-1)
	case 1:
		grid.ClearAbove(cur.Row, cur.Col, bg)
		e.screen.MarkRangeDirty(0, cur.Row)
	case 2:
		grid.ClearAll(bg)
		e.screen.MarkRangeDirty(0, grid.Rows()-1)
	case 3:
		grid.ClearAll(bg)
		e.screen.MarkRangeDirty(0, grid.Rows()-1)
		if !e.screen.InAlternateScreen() {
			e.screen.Scrollback().Clear()
		}
	}
}

func (e *Executor) eraseInLine(mode int) {
	cur := e.screen.Cursor()
	line := e.screen.Grid().Line(cur.Row)
	switch mode {
	case 0:
		line.ClearFrom(cur.Col, cur.Attrs)
	case 1:
		line.ClearTo(cur.Col, cur.Attrs)
	case 2:
		line.Clear(cur.Attrs)
	}
	e.screen.MarkRowDirty(cur.Row)
}

func (e *Executor) decscusr(n int) {
	cur := e.screen.Cursor()
	switch n {
	case 0, 1:
		cur.Style, cur.Blinking = CursorStyleBlock, true
	case 2:
		cur.Style, cur.Blinking = CursorStyleBlock, false
	case 3:
		cur.Style, cur.Blinking = CursorStyleUnderline, true
	case 4:
		cur.Style, cur.Blinking = CursorStyleUnderline, false
	case 5:
		cur.Style, cur.Blinking = CursorStyleBar, true
	case 6:
		cur.Style, cur.Blinking = CursorStyleBar, false
	}
}

func (e *Executor) dsr(n int) {
	switch n {
	case 5:
		e.Reply.Write([]byte("\x1b[0n"))
	case 6:
		cur := e.screen.Cursor()
		fmt.Fprintf(e.Reply, "\x1b[%d;%dR", cur.Row+1, cur.Col+1)
	}
}

func (e *Executor) xtermWindow(p *Params) {
	switch p.Get(0, 0) {
	case 21:
		fmt.Fprintf(e.Reply, "\x1b]l%s\x1b\\", e.screen.Title())
	case 22:
		e.titleStack = append(e.titleStack, e.screen.Title())
		e.Title.PushTitle()
	case 23:
		if n := len(e.titleStack); n > 0 {
			e.screen.SetTitle(e.titleStack[n-1])
			e.titleStack = e.titleStack[:n-1]
			e.Title.PopTitle()
		}
	}
}

func (e *Executor) setAnsiMode(p *Params, set bool) {
	for _, group := range p.All() {
		switch group.Value {
		case 4:
			e.screen.Modes().Set(ModeInsert, set)
		case 20:
			e.screen.Modes().Set(ModeLineFeedNewline, set)
		}
	}
}

func (e *Executor) setDecMode(p *Params, set bool) {
	for _, group := range p.All() {
		switch group.Value {
		case 1:
			e.screen.Modes().Set(ModeCursorKeysApplication, set)
		case 3:
			// 132-column mode is an explicit non-goal; accepted and ignored.
		case 5:
			e.screen.Modes().Set(ModeReverseVideo, set)
		case 6:
			e.screen.Cursor().OriginMode = set
			e.screen.Modes().Set(ModeOrigin, set)
			e.cup(1, 1)
		case 7:
			e.screen.Modes().Set(ModeAutowrap, set)
		case 25:
			e.screen.Modes().Set(ModeCursorVisible, set)
			e.screen.Cursor().Visible = set
		case 9:
			e.setMouseMode(set, MouseModeX10)
		case 47:
			e.setAlternateScreen(set, false, false)
		case 1000:
			e.setMouseMode(set, MouseModeNormal)
		case 1002:
			e.setMouseMode(set, MouseModeButtonMotion)
		case 1003:
			e.setMouseMode(set, MouseModeAnyMotion)
		case 1004:
			e.screen.Modes().Set(ModeFocusEvents, set)
		case 1005:
			e.setMouseEncoding(set, MouseEncodingUTF8)
		case 1006:
			e.setMouseEncoding(set, MouseEncodingSGR)
		case 1015:
			e.setMouseEncoding(set, MouseEncodingURXVT)
		case 1047:
			e.setAlternateScreen(set, true, false)
		case 1048:
			if set {
				e.screen.SaveCursor()
			} else {
				e.screen.RestoreCursor()
			}
		case 1049:
			e.setAlternateScreen(set, true, true)
		case 2004:
			e.screen.Modes().Set(ModeBracketedPaste, set)
		case 2026:
			e.screen.Modes().Set(ModeSynchronizedOutput, set)
		default:
			e.unknownCSI++
		}
	}
}

func (e *Executor) setAlternateScreen(enter, clear, saveCursor bool) {
	if enter {
		e.screen.EnterAlternateScreen(clear, saveCursor)
	} else {
		e.screen.LeaveAlternateScreen(saveCursor)
	}
}

func (e *Executor) setMouseMode(set bool, mode MouseMode) {
	if set {
		e.screen.Modes().MouseMode = mode
	} else if e.screen.Modes().MouseMode == mode {
		e.screen.Modes().MouseMode = MouseModeNone
	}
}

func (e *Executor) setMouseEncoding(set bool, enc MouseEncoding) {
	if set {
		e.screen.Modes().MouseEncoding = enc
	} else if e.screen.Modes().MouseEncoding == enc {
		e.screen.Modes().MouseEncoding = MouseEncodingX10
	}
}

// --- SGR (spec §4.3 "SGR") ---

func (e *Executor) sgr(p *Params) {
	if p.IsEmpty() {
		e.screen.Cursor().Attrs.Reset()
		return
	}
	attrs := &e.screen.Cursor().Attrs
	groups := p.All()
	for i := 0; i < len(groups); i++ {
		g := groups[i]
		switch g.Value {
		case 0:
			attrs.Reset()
		case 1:
			attrs.Bold = true
		case 2:
			attrs.Faint = true
		case 3:
			attrs.Italic = true
		case 4:
			attrs.Underline = underlineStyleFromSub(g.Subs)
		case 5:
			attrs.BlinkSlow = true
		case 6:
			attrs.BlinkFast = true
		case 7:
			attrs.Inverse = true
		case 8:
			attrs.Hidden = true
		case 9:
			attrs.Strikethrough = true
		case 21:
			attrs.Underline = UnderlineDouble
		case 22:
			attrs.Bold, attrs.Faint = false, false
		case 23:
			attrs.Italic = false
		case 24:
			attrs.Underline = UnderlineNone
		case 25:
			attrs.BlinkSlow, attrs.BlinkFast = false, false
		case 27:
			attrs.Inverse = false
		case 28:
			attrs.Hidden = false
		case 29:
			attrs.Strikethrough = false
		case 30, 31, 32, 33, 34, 35, 36, 37:
			attrs.Fg = IndexedColor{Index: uint8(g.Value - 30)}
		case 38:
			i = e.sgrExtendedColor(groups, i, &attrs.Fg)
		case 39:
			attrs.Fg = DefaultColor{}
		case 40, 41, 42, 43, 44, 45, 46, 47:
			attrs.Bg = IndexedColor{Index: uint8(g.Value - 40)}
		case 48:
			i = e.sgrExtendedColor(groups, i, &attrs.Bg)
		case 49:
			attrs.Bg = DefaultColor{}
		case 58:
			i = e.sgrExtendedColor(groups, i, &attrs.UnderlineColor)
		case 59:
			attrs.UnderlineColor = DefaultColor{}
		case 90, 91, 92, 93, 94, 95, 96, 97:
			attrs.Fg = IndexedColor{Index: uint8(g.Value-90) + 8}
		case 100, 101, 102, 103, 104, 105, 106, 107:
			attrs.Bg = IndexedColor{Index: uint8(g.Value-100) + 8}
		}
	}
}

func underlineStyleFromSub(subs []int32) UnderlineStyle {
	if len(subs) == 0 {
		return UnderlineSingle
	}
	switch subs[0] {
	case 0:
		return UnderlineNone
	case 2:
		return UnderlineDouble
	case 3:
		return UnderlineCurly
	case 4:
		return UnderlineDotted
	case 5:
		return UnderlineDashed
	default:
		return UnderlineSingle
	}
}

// sgrExtendedColor consumes an `38`/`48`/`58` group, either via its
// colon sub-parameters (`38:5:n`, `38:2:r:g:b`) or via the classic
// semicolon-separated legacy form (`38;5;n`, `38;2;r;g;b`), and
// returns the index of the last group consumed.
func (e *Executor) sgrExtendedColor(groups []Param, i int, dst *Color) int {
	g := groups[i]
	if len(g.Subs) > 0 {
		switch g.Subs[0] {
		case 5:
			if len(g.Subs) >= 2 {
				*dst = IndexedColor{Index: uint8(g.Subs[1])}
			}
		case 2:
			if len(g.Subs) >= 4 {
				*dst = RGBColor{R: uint8(g.Subs[1]), G: uint8(g.Subs[2]), B: uint8(g.Subs[3])}
			} else if len(g.Subs) >= 5 {
				*dst = RGBColor{R: uint8(g.Subs[2]), G: uint8(g.Subs[3]), B: uint8(g.Subs[4])}
			}
		}
		return i
	}
	if i+1 >= len(groups) {
		return i
	}
	switch groups[i+1].Value {
	case 5:
		if i+2 < len(groups) {
			*dst = IndexedColor{Index: uint8(groups[i+2].Value)}
			return i + 2
		}
		return i + 1
	case 2:
		if i+4 < len(groups) {
			*dst = RGBColor{R: uint8(groups[i+2].Value), G: uint8(groups[i+3].Value), B: uint8(groups[i+4].Value)}
			return i + 4
		}
		return i + 1
	}
	return i + 1
}

// --- OSC dispatch (spec §4.3 "OSC dispatch") ---

func (e *Executor) osc(a OscAction) {
	switch a.Command {
	case 0, 2:
		if len(a.Params) > 0 {
			e.screen.SetTitle(a.Params[0])
			e.Title.SetTitle(a.Params[0])
		}
	case 1:
		if len(a.Params) > 0 {
			e.screen.SetIcon(a.Params[0])
			e.Title.SetIcon(a.Params[0])
		}
	case 4:
		e.oscSetPalette(a.Params)
	case 7:
		if len(a.Params) > 0 {
			e.screen.SetWorkingDirectory(a.Params[0])
		}
	case 8:
		e.oscHyperlink(a.Params)
	case 10, 11, 12:
		// Dynamic fg/bg/cursor color queries and sets: accepted and
		// counted but not modeled as persistent per-screen state beyond
		// the default palette (non-goal: xterm's runtime color-set
		// protocol round-trip with `?` queries).
		e.unknownOSC++
	case 52:
		e.oscClipboard(a.Params)
	case 104, 110, 111, 112:
		// Palette reset: no override table is kept beyond DefaultPalette,
		// so these are no-ops by construction.
	default:
		e.unknownOSC++
	}
}

func (e *Executor) oscSetPalette(params []string) {
	// `4;idx;spec` pairs, possibly repeated: `4;1;#ff0000;2;#00ff00`.
	// Reference-palette mutation beyond DefaultPalette isn't modeled per
	// Color's value-type design (spec §3 Color); query forms (`spec`
	// starting with `?`) are counted and ignored.
	for i := 0; i+1 < len(params); i += 2 {
		if len(params[i+1]) > 0 && params[i+1][0] == '?' {
			e.unknownOSC++
		}
	}
}

func (e *Executor) oscHyperlink(params []string) {
	if len(params) < 2 {
		e.screen.Cursor().HyperlinkID = 0
		return
	}
	uri := params[1]
	if uri == "" {
		e.screen.Cursor().HyperlinkID = 0
		return
	}
	if !e.AllowOSC8File && len(uri) >= 7 && uri[:7] == "file://" {
		e.RejectedOSC8++
		return
	}
	if id, ok := e.hyperlinkByURI[uri]; ok {
		e.screen.Cursor().HyperlinkID = id
		return
	}
	e.nextHyperlinkID++
	id := e.nextHyperlinkID
	e.hyperlinkByID[id] = uri
	e.hyperlinkByURI[uri] = id
	e.screen.Cursor().HyperlinkID = id
}

// HyperlinkURI returns the URI registered for id, or "" if none.
func (e *Executor) HyperlinkURI(id uint32) string {
	return e.hyperlinkByID[id]
}

func (e *Executor) oscClipboard(params []string) {
	if len(params) < 2 {
		return
	}
	selection := byte('c')
	if len(params[0]) > 0 {
		selection = params[0][0]
	}
	if params[1] == "?" {
		_ = e.Clipboard.Read(selection)
		return
	}
	data, err := base64.StdEncoding.DecodeString(params[1])
	if err != nil {
		return
	}
	e.Clipboard.Write(selection, data)
}

// --- DCS dispatch: Sixel, Kitty graphics, otherwise consumed (spec §4.2) ---

func (e *Executor) dcs(a DcsAction) {
	switch {
	case a.Final == 'q':
		e.dcsSixel(a)
	default:
		// DECRQSS and any other DCS final byte: consumed to Ground
		// without effect, per spec §4.2 "implementations may omit and
		// merely consume the DCS".
	}
}

func (e *Executor) dcsSixel(a DcsAction) {
	params := make([]int, a.Params.Len())
	for i := range params {
		params[i] = a.Params.Get(i, 0)
	}
	img, err := ParseSixel(params, a.Data)
	if err != nil || img.Pix == nil {
		return
	}
	id := e.screen.Images().Store(uint32(img.Width), uint32(img.Height), sixelCanvasBytes(img))
	cur := e.screen.Cursor()
	colCells := (img.Width + 9) / 10
	rowCells := (img.Height + 19) / 20
	e.screen.Images().Place(&ImagePlacement{
		ImageID: id,
		Row:     cur.Row,
		Col:     cur.Col,
		Cols:    colCells,
		Rows:    rowCells,
		SrcW:    uint32(img.Width),
		SrcH:    uint32(img.Height),
	})
}

// apc dispatches one Application Program Command payload: a leading
// 'G' marks the Kitty graphics protocol (spec §9 supplemented
// feature), everything else goes to the generic APC provider.
func (e *Executor) apc(v ApcAction) {
	if len(v) > 0 && v[0] == 'G' {
		cmd, err := ParseKittyGraphics(v)
		if err != nil {
			return
		}
		e.HandleKittyGraphics(cmd)
		return
	}
	e.APC.Receive([]byte(v))
}

// HandleKittyGraphics applies a Kitty graphics APC command already
// parsed by ParseKittyGraphics, writing any protocol reply through the
// reply sink.
func (e *Executor) HandleKittyGraphics(cmd *KittyCommand) {
	reply, err := e.kitty.Handle(cmd)
	if err != nil {
		return
	}
	if reply != "" {
		e.Reply.Write([]byte(reply))
	}
}

func sixelCanvasBytes(img *SixelImage) []byte {
	rgba := img.Pix.Image()
	bounds := rgba.Bounds()
	out := make([]byte, 0, bounds.Dx()*bounds.Dy()*4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := rgba.At(x, y).RGBA()
			out = append(out, byte(r>>8), byte(g>>8), byte(b>>8), byte(a>>8))
		}
	}
	return out
}
