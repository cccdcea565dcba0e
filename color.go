package vtcore

import "image/color"

// Color is a closed tagged union of the three ways a cell can specify
// a foreground, background, or underline color.
type Color interface {
	isColor()
}

// DefaultColor means "use the default foreground or background".
// ResolveColor maps it to the fg/bg it is given, normally the fixed
// DefaultForeground/DefaultBackground; OSC 10/11/12 and the
// reverse-video mode do not change those values.
type DefaultColor struct{}

func (DefaultColor) isColor() {}

// IndexedColor references slot Index (0-255) of the active palette.
// 0-15 are the named ANSI colors, 16-231 are the 6x6x6 color cube,
// 232-255 are the 24-step grayscale ramp.
type IndexedColor struct {
	Index uint8
}

func (IndexedColor) isColor() {}

// RGBColor is a 24-bit true color, set via SGR 38/48/58;2;r;g;b.
type RGBColor struct {
	R, G, B uint8
}

func (RGBColor) isColor() {}

// DefaultPalette is the standard 256-color palette: 16 named colors
// (0-15), a 216-color cube (16-231, steps {0,95,135,175,215,255}), and
// a 24-step grayscale ramp (232-255, starting at 8, step 10).
var DefaultPalette [256]color.RGBA

var cubeSteps = [6]uint8{0, 95, 135, 175, 215, 255}

func init() {
	named := [16]color.RGBA{
		{0, 0, 0, 255}, {205, 49, 49, 255}, {13, 188, 121, 255}, {229, 229, 16, 255},
		{36, 114, 200, 255}, {188, 63, 188, 255}, {17, 168, 205, 255}, {229, 229, 229, 255},
		{102, 102, 102, 255}, {241, 76, 76, 255}, {35, 209, 139, 255}, {245, 245, 67, 255},
		{59, 142, 234, 255}, {214, 112, 214, 255}, {41, 184, 219, 255}, {255, 255, 255, 255},
	}
	for i, c := range named {
		DefaultPalette[i] = c
	}

	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				DefaultPalette[i] = color.RGBA{R: cubeSteps[r], G: cubeSteps[g], B: cubeSteps[b], A: 255}
				i++
			}
		}
	}

	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		DefaultPalette[232+j] = color.RGBA{R: gray, G: gray, B: gray, A: 255}
	}
}

// DefaultForeground and DefaultBackground are the RGB values DefaultColor
// resolves to. No escape sequence changes them.
var (
	DefaultForeground = color.RGBA{R: 229, G: 229, B: 229, A: 255}
	DefaultBackground = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// ResolveColor flattens c to RGB using palette for indexed colors and
// fg/bg for DefaultColor. A nil c is treated as DefaultColor.
func ResolveColor(c Color, palette *[256]color.RGBA, fg bool) color.RGBA {
	if palette == nil {
		palette = &DefaultPalette
	}
	switch v := c.(type) {
	case nil, DefaultColor:
		if fg {
			return DefaultForeground
		}
		return DefaultBackground
	case IndexedColor:
		return palette[v.Index]
	case RGBColor:
		return color.RGBA{R: v.R, G: v.G, B: v.B, A: 255}
	default:
		if fg {
			return DefaultForeground
		}
		return DefaultBackground
	}
}

// UnderlineStyle selects how the underline cell flag is rendered.
type UnderlineStyle uint8

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// CellAttributes is the set of SGR-controlled rendering attributes
// carried by a cell and accumulated in the screen's attribute template.
type CellAttributes struct {
	Fg             Color
	Bg             Color
	UnderlineColor Color
	Underline      UnderlineStyle
	Bold           bool
	Faint          bool
	Italic         bool
	BlinkSlow      bool
	BlinkFast      bool
	Inverse        bool
	Hidden         bool
	Strikethrough  bool
}

// Reset returns attr to the all-default state. Per spec §8, applying
// SGR 0 must always reach this state regardless of prior attributes.
func (attr *CellAttributes) Reset() {
	*attr = CellAttributes{}
}

// EffectiveFg returns the foreground color to render, swapping fg/bg
// when Inverse is set.
func (attr CellAttributes) EffectiveFg() Color {
	if attr.Inverse {
		return orDefaultColor(attr.Bg)
	}
	return orDefaultColor(attr.Fg)
}

// EffectiveBg returns the background color to render, swapping fg/bg
// when Inverse is set.
func (attr CellAttributes) EffectiveBg() Color {
	if attr.Inverse {
		return orDefaultColor(attr.Fg)
	}
	return orDefaultColor(attr.Bg)
}

func orDefaultColor(c Color) Color {
	if c == nil {
		return DefaultColor{}
	}
	return c
}

// Blink reports whether either blink flag is set.
func (attr CellAttributes) Blink() bool {
	return attr.BlinkSlow || attr.BlinkFast
}
