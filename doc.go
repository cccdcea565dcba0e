// Package vtcore implements the platform-independent core of a
// VT/xterm-compatible terminal emulator: a byte-stream escape-sequence
// parser and the screen model it drives.
//
// This package emulates a terminal without any display, PTY, or
// renderer attached, making it ideal for:
//   - Testing terminal applications without a GUI
//   - Building terminal multiplexers and recorders
//   - Screen scraping and automated assertions on CLI output
//   - Headless rendering pipelines that serialize to JSON or plain text
//
// # Quick Start
//
//	term := vtcore.New()
//	term.WriteString("\x1b[31mHello \x1b[32mWorld\x1b[0m!")
//	fmt.Println(term.String()) // "Hello World!"
//
// # Architecture
//
// Data flows one way: bytes -> [Parser] -> [Action] -> [Screen]. A
// [Parser] turns a byte stream into a sequence of Actions; a [Screen]
// applies each Action to its grid, cursor, and modes. [Terminal] wires
// the two together behind a lock so the pair can be driven from a PTY
// reader goroutine while a renderer reads snapshots concurrently.
//
//   - [Parser]: the VT500-family escape-sequence state machine
//   - [Action]: the tagged union the parser emits (Print, Control, Esc,
//     Csi, Osc, Dcs, Apc, Pm, Sos, Invalid)
//   - [Screen]: the grid, cursor, modes, charset, and scrollback state
//   - [Terminal]: the concurrency-safe driver wrapping Parser+Screen
//
// # Terminal
//
// Terminal is the usual entry point. It implements [io.Writer]:
//
//	term := vtcore.New(
//	    vtcore.WithSize(24, 80),
//	    vtcore.WithScrollback(vtcore.NewMemoryScrollback(10000)),
//	    vtcore.WithResponse(ptyWriter),
//	)
//
//	cmd := exec.Command("ls", "-la", "--color")
//	cmd.Stdout = term
//	cmd.Run()
//
//	for row := 0; row < term.Rows(); row++ {
//	    fmt.Println(term.LineContent(row))
//	}
//
// # Dual buffers
//
// The screen maintains a primary grid (with scrollback) and an
// alternate grid (used by full-screen apps, no scrollback). Mode 1049
// switches between them:
//
//	if term.IsAlternateScreen() {
//	    // a full-screen app (vim, less, htop) is in control
//	}
//
// # Cells and attributes
//
//	cell, ok := term.Cell(row, col)
//	if ok {
//	    fmt.Printf("content=%q bold=%v fg=%v\n", cell.Content, cell.Attrs.Bold, cell.Attrs.Fg)
//	}
//
// # Colors
//
// [Color] is a closed tagged union: [DefaultColor], [IndexedColor] (0-255),
// and [RGBColor] (24-bit true color). Use [ResolveColor] to flatten any
// Color plus the active palette down to RGB for rendering.
//
// # Scrollback
//
// Lines scrolled off the top of the primary grid are pushed into a
// [ScrollbackProvider]. The built-in [MemoryScrollback] is a bounded
// ring buffer:
//
//	storage := vtcore.NewMemoryScrollback(10000)
//	term := vtcore.New(vtcore.WithScrollback(storage))
//
// # Snapshots
//
// [Snapshot] captures screen state for serialization or rendering, in
// two flavors: [SnapshotFull] (cell-by-cell, with attribute spans) and
// [SnapshotCompact] (cursor plus trimmed row text):
//
//	snap := term.Snapshot(vtcore.SnapshotFull)
//	data, _ := json.Marshal(snap)
//
// # Selection
//
// Three selection kinds — [SelectionNormal] (character-wise),
// [SelectionLine] (whole lines), [SelectionBlock] (rectangular) — are
// derived state the core exposes but never mutates on its own:
//
//	term.SetSelection(vtcore.NewSelection(vtcore.SelectionNormal,
//	    vtcore.Point{Col: 0, Row: 0}, vtcore.Point{Col: 10, Row: 2}))
//	text := term.SelectedText()
//
// # Images
//
// Sixel and Kitty graphics payloads decode to RGBA. A Sixel image is
// placed at the cursor; a Kitty placement is recorded at row 0, column
// 0. [Screen.Images] returns the [ImageManager], whose Placements
// method lists the current placements.
//
// # Thread safety
//
// [Terminal] guards all state with an internal lock and is safe for
// concurrent use. The bare [Parser] and [Screen] types underneath it
// are deliberately single-threaded and synchronous (see [Parser.Feed])
// — wrap them yourself if you need a different concurrency shape than
// Terminal's reader/writer split.
package vtcore
