package vtcore

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SnapshotFlavor selects how much detail Snapshot captures, mirroring
// the teacher's SnapshotDetail levels but collapsed to the two this
// module's data model distinguishes (spec §4.6): Full carries attribute
// spans and stringified colors, Compact carries only cursor and
// trimmed row text.
type SnapshotFlavor string

const (
	SnapshotFull    SnapshotFlavor = "full"
	SnapshotCompact SnapshotFlavor = "compact"
)

// Snapshot is a pure read-only projection of a Screen: dimensions,
// cursor, per-line text, mode flags, scroll region, and title. It is a
// self-describing value (JSON-tagged) so it round-trips losslessly
// through encode/decode without a version field, per spec §4.6.
type Snapshot struct {
	Flavor       SnapshotFlavor    `json:"flavor"`
	Rows         int               `json:"rows"`
	Cols         int               `json:"cols"`
	Cursor       SnapshotCursor    `json:"cursor"`
	ScrollTop    int               `json:"scroll_top"`
	ScrollBottom int               `json:"scroll_bottom"`
	Title        string            `json:"title"`
	Icon         string            `json:"icon,omitempty"`
	AlternateScreen bool           `json:"alternate_screen"`
	Lines        []SnapshotLine    `json:"lines"`
	Images       []SnapshotImage  `json:"images,omitempty"`
}

// SnapshotCursor captures cursor position and rendering state.
type SnapshotCursor struct {
	Row        int    `json:"row"`
	Col        int    `json:"col"`
	Visible    bool   `json:"visible"`
	Style      string `json:"style"`
	OriginMode bool   `json:"origin_mode"`
}

// SnapshotLine is one row: trailing-trimmed text, the soft-wrap flag,
// and (Full only) the contiguous attribute spans that produced it.
type SnapshotLine struct {
	Text    string           `json:"text"`
	Wrapped bool             `json:"wrapped"`
	Spans   []SnapshotSpan   `json:"spans,omitempty"`
}

// SnapshotSpan is a maximal run of cells sharing identical rendering
// attributes, with colors stringified per spec §4.6 ("colors as
// stringified variants").
type SnapshotSpan struct {
	Text          string `json:"text"`
	Fg            string `json:"fg"`
	Bg            string `json:"bg"`
	Underline     string `json:"underline,omitempty"`
	UnderlineColor string `json:"underline_color,omitempty"`
	Bold          bool   `json:"bold,omitempty"`
	Faint         bool   `json:"faint,omitempty"`
	Italic        bool   `json:"italic,omitempty"`
	Blink         bool   `json:"blink,omitempty"`
	Inverse       bool   `json:"inverse,omitempty"`
	Hidden        bool   `json:"hidden,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty"`
	HyperlinkID   uint32 `json:"hyperlink_id,omitempty"`
}

// SnapshotImage describes one placed image without its pixel payload.
type SnapshotImage struct {
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	PixelWidth  uint32 `json:"pixel_width"`
	PixelHeight uint32 `json:"pixel_height"`
	ZIndex      int32  `json:"z_index"`
}

// newSnapshot captures s's current visible state. Grounded on the
// teacher's Terminal.Snapshot/snapshotLine/lineToSegments, adapted to
// this module's Cell/CellAttributes/Color types and the spec's
// two-flavor model in place of the teacher's three SnapshotDetail
// levels.
func newSnapshot(s *Screen, flavor SnapshotFlavor) Snapshot {
	rows, cols := s.Rows(), s.Cols()
	cur := s.Cursor()
	top, bottom := s.ScrollRegion()

	snap := Snapshot{
		Flavor:          flavor,
		Rows:            rows,
		Cols:            cols,
		ScrollTop:       top,
		ScrollBottom:    bottom,
		Title:           s.Title(),
		Icon:            s.Icon(),
		AlternateScreen: s.InAlternateScreen(),
		Cursor: SnapshotCursor{
			Row:        cur.Row,
			Col:        cur.Col,
			Visible:    cur.Visible,
			Style:      cursorStyleString(cur.Style),
			OriginMode: cur.OriginMode,
		},
		Lines: make([]SnapshotLine, rows),
	}

	grid := s.Grid()
	for row := 0; row < rows; row++ {
		snap.Lines[row] = snapshotLine(grid.Line(row), flavor)
	}
	snap.Images = snapshotImages(s.Images())
	return snap
}

func snapshotLine(line *Line, flavor SnapshotFlavor) SnapshotLine {
	if line == nil {
		return SnapshotLine{}
	}
	out := SnapshotLine{Text: trimTrailingBlank(line), Wrapped: line.Wrapped}
	if flavor == SnapshotFull {
		out.Spans = lineToSpans(line)
	}
	return out
}

func trimTrailingBlank(line *Line) string {
	var sb strings.Builder
	last := -1
	for i, c := range line.Cells {
		if c.IsContinuation() {
			continue
		}
		if !c.IsBlank() {
			last = i
		}
	}
	for i, c := range line.Cells {
		if i > last {
			break
		}
		if c.IsContinuation() {
			continue
		}
		if c.Content == "" {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(c.Content)
		}
	}
	return sb.String()
}

func lineToSpans(line *Line) []SnapshotSpan {
	var spans []SnapshotSpan
	var cur *SnapshotSpan
	var text strings.Builder

	flush := func() {
		if cur != nil {
			cur.Text = text.String()
			spans = append(spans, *cur)
		}
		text.Reset()
	}

	for _, c := range line.Cells {
		if c.IsContinuation() {
			continue
		}
		span := attrsToSpan(c.Attrs, c.HyperlinkID)
		if cur == nil || !spanMatches(cur, &span) {
			flush()
			s := span
			cur = &s
		}
		if c.Content == "" {
			text.WriteByte(' ')
		} else {
			text.WriteString(c.Content)
		}
	}
	flush()
	return spans
}

func attrsToSpan(attrs CellAttributes, hyperlinkID uint32) SnapshotSpan {
	return SnapshotSpan{
		Fg:             colorToString(attrs.EffectiveFg()),
		Bg:             colorToString(attrs.EffectiveBg()),
		Underline:      underlineStyleString(attrs.Underline),
		UnderlineColor: colorToStringOmitDefault(attrs.UnderlineColor),
		Bold:           attrs.Bold,
		Faint:          attrs.Faint,
		Italic:         attrs.Italic,
		Blink:          attrs.Blink(),
		Inverse:        attrs.Inverse,
		Hidden:         attrs.Hidden,
		Strikethrough:  attrs.Strikethrough,
		HyperlinkID:    hyperlinkID,
	}
}

func spanMatches(a, b *SnapshotSpan) bool {
	return a.Fg == b.Fg && a.Bg == b.Bg && a.Underline == b.Underline &&
		a.UnderlineColor == b.UnderlineColor && a.Bold == b.Bold &&
		a.Faint == b.Faint && a.Italic == b.Italic && a.Blink == b.Blink &&
		a.Inverse == b.Inverse && a.Hidden == b.Hidden &&
		a.Strikethrough == b.Strikethrough && a.HyperlinkID == b.HyperlinkID
}

func colorToString(c Color) string {
	switch v := c.(type) {
	case nil, DefaultColor:
		return "default"
	case IndexedColor:
		return fmt.Sprintf("idx:%d", v.Index)
	case RGBColor:
		return fmt.Sprintf("rgb:%02x%02x%02x", v.R, v.G, v.B)
	default:
		return "default"
	}
}

func colorToStringOmitDefault(c Color) string {
	if c == nil {
		return ""
	}
	if _, ok := c.(DefaultColor); ok {
		return ""
	}
	return colorToString(c)
}

func underlineStyleString(u UnderlineStyle) string {
	switch u {
	case UnderlineSingle:
		return "single"
	case UnderlineDouble:
		return "double"
	case UnderlineCurly:
		return "curly"
	case UnderlineDotted:
		return "dotted"
	case UnderlineDashed:
		return "dashed"
	default:
		return ""
	}
}

func cursorStyleString(s CursorStyle) string {
	switch s {
	case CursorStyleUnderline:
		return "underline"
	case CursorStyleBar:
		return "bar"
	default:
		return "block"
	}
}

func snapshotImages(m *ImageManager) []SnapshotImage {
	placements := m.Placements()
	if len(placements) == 0 {
		return nil
	}
	images := make([]SnapshotImage, 0, len(placements))
	for _, p := range placements {
		img := m.Image(p.ImageID)
		if img == nil {
			continue
		}
		images = append(images, SnapshotImage{
			Row: p.Row, Col: p.Col,
			Rows: p.Rows, Cols: p.Cols,
			PixelWidth:  img.Width,
			PixelHeight: img.Height,
			ZIndex:      p.ZIndex,
		})
	}
	return images
}

// Encode serializes the snapshot to its self-describing JSON form.
func (s Snapshot) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// DecodeSnapshot parses JSON produced by Encode back into a Snapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	err := json.Unmarshal(data, &s)
	return s, err
}
