package vtcore

import (
	"sync"
)

// DefaultRows and DefaultCols are the power-on terminal dimensions,
// matching the teacher's DEFAULT_ROWS/DEFAULT_COLS.
const (
	DefaultRows = 24
	DefaultCols = 80
)

// Terminal is the concurrency-safe entry point over a Parser/Screen/
// Executor triple. Parsing and execution are themselves single-threaded
// (spec §5: Parser and Screen are a Send type, not Sync), so Terminal
// wraps them behind one RWMutex and exposes the public io.Writer-shaped
// byte-in boundary, following the teacher's terminal.go: every public
// method takes the lock.
type Terminal struct {
	mu sync.RWMutex

	parser   *Parser
	screen   *Screen
	executor *Executor

	recording RecordingProvider
}

// Option configures a Terminal during construction.
type Option func(*terminalConfig)

type terminalConfig struct {
	rows, cols int
	scrollback ScrollbackProvider
	response   ResponseProvider
	bell       BellProvider
	title      TitleProvider
	clipboard  ClipboardProvider
	apc        APCProvider
	pm         PMProvider
	sos        SOSProvider
	recording  RecordingProvider
	allowOSC8File bool
	middleware *Middleware
}

// WithSize sets the terminal dimensions. Values <= 0 are replaced with
// the defaults (24x80).
func WithSize(rows, cols int) Option {
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}
	return func(c *terminalConfig) {
		c.rows = rows
		c.cols = cols
	}
}

// WithScrollback sets the storage for scrollback lines evicted off the
// top of the primary grid. Defaults to a no-op.
func WithScrollback(p ScrollbackProvider) Option {
	return func(c *terminalConfig) { c.scrollback = p }
}

// WithResponse sets the writer for terminal-generated replies (DSR/DA,
// Kitty graphics acks). Defaults to discarding them.
func WithResponse(p ResponseProvider) Option {
	return func(c *terminalConfig) { c.response = p }
}

// WithBell sets the handler for BEL. Defaults to a no-op.
func WithBell(p BellProvider) Option {
	return func(c *terminalConfig) { c.bell = p }
}

// WithTitle sets the handler for window/icon title changes (OSC 0/1/2)
// and title stack pushes/pops (CSI 22/23 t). Defaults to a no-op.
func WithTitle(p TitleProvider) Option {
	return func(c *terminalConfig) { c.title = p }
}

// WithClipboard sets the handler for OSC 52 clipboard read/write.
// Defaults to a no-op.
func WithClipboard(p ClipboardProvider) Option {
	return func(c *terminalConfig) { c.clipboard = p }
}

// WithAPC sets the handler for Application Program Command strings not
// recognized as Kitty graphics. Defaults to a no-op.
func WithAPC(p APCProvider) Option {
	return func(c *terminalConfig) { c.apc = p }
}

// WithPM sets the handler for Privacy Message strings. Defaults to a
// no-op.
func WithPM(p PMProvider) Option {
	return func(c *terminalConfig) { c.pm = p }
}

// WithSOS sets the handler for Start-of-String strings. Defaults to a
// no-op.
func WithSOS(p SOSProvider) Option {
	return func(c *terminalConfig) { c.sos = p }
}

// WithRecording sets the handler that captures raw input bytes before
// parsing, for replay or regression fixtures.
func WithRecording(p RecordingProvider) Option {
	return func(c *terminalConfig) { c.recording = p }
}

// WithAllowOSC8File permits `file://` hyperlink URIs through OSC 8,
// which are rejected by default.
func WithAllowOSC8File(allow bool) Option {
	return func(c *terminalConfig) { c.allowOSC8File = allow }
}

// WithMiddleware installs hooks that intercept the executor's Apply
// calls by Action kind. Calling it more than once merges hooks,
// letting later options add to earlier ones instead of replacing them.
func WithMiddleware(mw *Middleware) Option {
	return func(c *terminalConfig) {
		if c.middleware == nil {
			c.middleware = &Middleware{}
		}
		c.middleware.Merge(mw)
	}
}

// New creates a terminal with the given options, defaulting to 24x80
// with every provider a no-op.
func New(opts ...Option) *Terminal {
	cfg := &terminalConfig{
		rows: DefaultRows,
		cols: DefaultCols,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	screen := NewScreen(cfg.rows, cfg.cols)
	if cfg.scrollback != nil {
		screen.SetScrollback(cfg.scrollback)
	}

	exec := NewExecutor(screen)
	exec.AllowOSC8File = cfg.allowOSC8File
	if cfg.response != nil {
		exec.Reply = cfg.response
	}
	if cfg.bell != nil {
		exec.Bell = cfg.bell
	}
	if cfg.title != nil {
		exec.Title = cfg.title
	}
	if cfg.clipboard != nil {
		exec.Clipboard = cfg.clipboard
	}
	if cfg.apc != nil {
		exec.APC = cfg.apc
	}
	if cfg.pm != nil {
		exec.PM = cfg.pm
	}
	if cfg.sos != nil {
		exec.SOS = cfg.sos
	}
	if cfg.middleware != nil {
		exec.SetMiddleware(cfg.middleware)
	}

	recording := cfg.recording
	if recording == nil {
		recording = NoopRecording{}
	}

	return &Terminal{
		parser:    NewParser(),
		screen:    screen,
		executor:  exec,
		recording: recording,
	}
}

// Write implements io.Writer: it records the raw bytes, parses them
// into actions, and applies each action to the screen in input order,
// all under the write lock.
func (t *Terminal) Write(data []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recording.Record(data)
	t.parser.Feed(data, func(a Action) {
		t.executor.Apply(a)
	})
	return len(data), nil
}

// WriteString is a convenience wrapper around Write.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// Rows returns the terminal height in character rows.
func (t *Terminal) Rows() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen.Rows()
}

// Cols returns the terminal width in character columns.
func (t *Terminal) Cols() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen.Cols()
}

// Resize changes the terminal dimensions.
func (t *Terminal) Resize(rows, cols int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Resize(rows, cols)
}

// Cell returns a copy of the cell at (row, col) in the visible grid,
// and whether the coordinates were in bounds.
func (t *Terminal) Cell(row, col int) (Cell, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	line := t.screen.Grid().Line(row)
	if line == nil || col < 0 || col >= len(line.Cells) {
		return Cell{}, false
	}
	return line.Cells[col], true
}

// CursorPosition returns the current 0-based cursor row and column.
func (t *Terminal) CursorPosition() (row, col int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	cur := t.screen.Cursor()
	return cur.Row, cur.Col
}

// CursorVisible reports whether the cursor is currently shown.
func (t *Terminal) CursorVisible() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen.Cursor().Visible
}

// Title returns the current window title.
func (t *Terminal) Title() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen.Title()
}

// InAlternateScreen reports whether the alternate buffer is active.
func (t *Terminal) InAlternateScreen() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen.InAlternateScreen()
}

// Modes returns a copy of the current mode set.
func (t *Terminal) Modes() Modes {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return *t.screen.Modes()
}

// HandleKittyGraphics applies one parsed Kitty graphics command under
// the write lock, for callers driving the protocol outside of APC
// parsing (e.g. a test harness replaying captured commands).
func (t *Terminal) HandleKittyGraphics(cmd *KittyCommand) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.executor.HandleKittyGraphics(cmd)
}

// SetImageMaxMemory sets the Sixel/Kitty image store's memory budget,
// adapted from the teacher's term.SetImageMaxMemory (spec §4.8 domain
// stack, wired to the headless runner's -max-memory flag).
func (t *Terminal) SetImageMaxMemory(bytes int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Images().SetMaxMemory(bytes)
}

// Reset restores power-on defaults.
func (t *Terminal) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Reset()
}

// Snapshot returns a point-in-time capture of the terminal's visible
// state. flavor selects Full (attribute spans and named colors) or
// Compact (cursor plus trimmed row text).
func (t *Terminal) Snapshot(flavor SnapshotFlavor) Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return newSnapshot(t.screen, flavor)
}

// RejectedOSC8 returns the count of OSC 8 hyperlinks rejected because
// they used a disallowed URI scheme.
func (t *Terminal) RejectedOSC8() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.executor.RejectedOSC8
}

// RecordingData returns the bytes captured by the recording provider
// so far.
func (t *Terminal) RecordingData() []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.recording.Data()
}

// LineContent returns row's trailing-trimmed text, or "" if out of
// bounds.
func (t *Terminal) LineContent(row int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen.LineContent(row)
}

// String returns the visible screen content as a newline-separated
// string, trailing empty lines omitted. Implements fmt.Stringer.
func (t *Terminal) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen.String()
}

// IsAlternateScreen reports whether the alternate buffer is active.
// Equivalent to [Terminal.InAlternateScreen], named to match the
// teacher's Terminal.IsAlternateScreen (terminal.go).
func (t *Terminal) IsAlternateScreen() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen.InAlternateScreen()
}

// --- Selection (spec §4.5) ---

// SetSelection installs sel as the active selection.
func (t *Terminal) SetSelection(sel Selection) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.SetSelection(sel)
}

// ClearSelection deactivates the current selection.
func (t *Terminal) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.ClearSelection()
}

// GetSelection returns the current selection state.
func (t *Terminal) GetSelection() Selection {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen.GetSelection()
}

// IsSelected reports whether (row, col) falls within the active
// selection.
func (t *Terminal) IsSelected(row, col int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen.IsSelected(row, col)
}

// SelectedText extracts the text content within the active selection.
func (t *Terminal) SelectedText() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen.SelectedText()
}

// --- Search (spec §9 supplemented feature) ---

// Find returns the position of every match of pattern in the visible
// grid.
func (t *Terminal) Find(pattern string) []Point {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen.Find(pattern)
}

// FindScrollback returns the position of every match of pattern in
// scrollback, with negative rows per [Screen.FindScrollback].
func (t *Terminal) FindScrollback(pattern string) []Point {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen.FindScrollback(pattern)
}

// --- Dirty tracking (spec §9 supplemented feature) ---

// HasDirty reports whether any cell changed since the last ClearDirty.
func (t *Terminal) HasDirty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen.HasDirty()
}

// DirtyCells returns the position of every cell in each row modified
// since the last ClearDirty call. Tracking is per row, so unchanged
// cells of a modified row are included.
func (t *Terminal) DirtyCells() []Point {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen.DirtyCells()
}

// ClearDirty marks every cell clean, resetting dirty-tracking state.
func (t *Terminal) ClearDirty() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.ClearDirty()
}
