package vtcore

import (
	stdcolor "image/color"

	"golang.org/x/image/draw"
)

// sixelMaxDimension bounds a decoded Sixel raster's width and height,
// guarding against a hostile or buggy stream claiming an enormous
// canvas (spec §9 supplemented feature: Sixel decoding capped at
// 4096x4096). Grounded on the teacher's sixel.go, which decodes
// unbounded; the cap is this module's addition.
const sixelMaxDimension = 4096

// SixelImage is a decoded Sixel raster, composited into a stdlib
// image.RGBA via golang.org/x/image/draw rather than the teacher's
// manual byte-buffer fill, so a device control string and a pixel
// source can share one destination canvas when multiple bands are
// drawn at different vertical offsets.
type SixelImage struct {
	Width       int
	Height      int
	Pix         *rgbaCanvas
	Transparent bool
}

// rgbaCanvas is a thin wrapper around the draw.Image that a decoded
// Sixel raster is written into (see canvas.go).
type rgbaCanvas struct {
	bounds draw.Image
}

// ParseSixel decodes a Sixel DCS payload (P1;P2;P3 parameters plus the
// raw bytes after 'q') into an RGBA raster.
func ParseSixel(params []int, data []byte) (*SixelImage, error) {
	p := &sixelParser{pixels: make(map[int]map[int]stdcolor.RGBA)}
	p.initDefaultPalette()
	if len(params) >= 2 && params[1] == 1 {
		p.transparent = true
	}
	p.parse(data)
	return p.toImage(), nil
}

type sixelParser struct {
	palette     [256]stdcolor.RGBA
	colorIndex  int
	x, y        int
	maxX, maxY  int
	pixels      map[int]map[int]stdcolor.RGBA
	transparent bool
}

func (p *sixelParser) initDefaultPalette() {
	vga := []stdcolor.RGBA{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 0, G: 0, B: 205, A: 255},
		{R: 205, G: 0, B: 0, A: 255},
		{R: 205, G: 0, B: 205, A: 255},
		{R: 0, G: 205, B: 0, A: 255},
		{R: 0, G: 205, B: 205, A: 255},
		{R: 205, G: 205, B: 0, A: 255},
		{R: 205, G: 205, B: 205, A: 255},
		{R: 0, G: 0, B: 0, A: 255},
		{R: 0, G: 0, B: 255, A: 255},
		{R: 255, G: 0, B: 0, A: 255},
		{R: 255, G: 0, B: 255, A: 255},
		{R: 0, G: 255, B: 0, A: 255},
		{R: 0, G: 255, B: 255, A: 255},
		{R: 255, G: 255, B: 0, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}
	copy(p.palette[:], vga)
	for i := 16; i < 256; i++ {
		gray := uint8((i - 16) * 255 / 239)
		p.palette[i] = stdcolor.RGBA{R: gray, G: gray, B: gray, A: 255}
	}
}

func (p *sixelParser) parse(data []byte) {
	i := 0
	for i < len(data) {
		b := data[i]
		i++
		switch {
		case b == '$':
			p.x = 0
		case b == '-':
			p.x = 0
			p.y += 6
		case b == '!':
			count, next := parseSixelNumber(data, i)
			i = next
			if i < len(data) {
				sixel := data[i]
				i++
				if sixel >= '?' && sixel <= '~' {
					p.drawSixel(sixel, count)
				}
			}
		case b == '#':
			colorNum, next := parseSixelNumber(data, i)
			i = next
			if i < len(data) && data[i] == ';' {
				i++
				colorType, next := parseSixelNumber(data, i)
				i = next
				if i < len(data) && data[i] == ';' {
					i++
					v1, next := parseSixelNumber(data, i)
					i = next
					if i < len(data) && data[i] == ';' {
						i++
						v2, next := parseSixelNumber(data, i)
						i = next
						if i < len(data) && data[i] == ';' {
							i++
							v3, next := parseSixelNumber(data, i)
							i = next
							if colorNum >= 0 && colorNum < 256 {
								if colorType == 1 {
									p.palette[colorNum] = hlsToRGB(v1, v2, v3)
								} else {
									p.palette[colorNum] = stdcolor.RGBA{
										R: uint8(v1 * 255 / 100),
										G: uint8(v2 * 255 / 100),
										B: uint8(v3 * 255 / 100),
										A: 255,
									}
								}
							}
						}
					}
				}
			}
			if colorNum >= 0 && colorNum < 256 {
				p.colorIndex = colorNum
			}
		case b >= '?' && b <= '~':
			p.drawSixel(b, 1)
		case b == '"':
			for i < len(data) && data[i] != '$' && data[i] != '-' &&
				data[i] != '#' && data[i] != '!' &&
				!(data[i] >= '?' && data[i] <= '~') {
				i++
			}
		}
	}
}

func parseSixelNumber(data []byte, i int) (int, int) {
	n := 0
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		n = n*10 + int(data[i]-'0')
		i++
	}
	return n, i
}

func (p *sixelParser) drawSixel(b byte, count int) {
	if count <= 0 {
		count = 1
	}
	bits := b - '?'
	c := p.palette[p.colorIndex]
	for r := 0; r < count; r++ {
		if p.x >= sixelMaxDimension {
			break
		}
		for bit := 0; bit < 6; bit++ {
			if bits&(1<<bit) == 0 {
				continue
			}
			py := p.y + bit
			px := p.x
			if py >= sixelMaxDimension {
				continue
			}
			if p.pixels[py] == nil {
				p.pixels[py] = make(map[int]stdcolor.RGBA)
			}
			p.pixels[py][px] = c
			if px > p.maxX {
				p.maxX = px
			}
			if py > p.maxY {
				p.maxY = py
			}
		}
		p.x++
	}
}

// toImage writes the parsed sparse pixel map onto an RGBA canvas.
// Unless transparency was requested (P2=1) the canvas is first filled
// with palette color 0; with transparency, undrawn pixels stay fully
// transparent.
func (p *sixelParser) toImage() *SixelImage {
	if len(p.pixels) == 0 {
		return &SixelImage{}
	}
	width := p.maxX + 1
	height := p.maxY + 1

	dst := newRGBACanvas(width, height)
	if !p.transparent {
		bg := p.palette[0]
		fillCanvas(dst, bg)
	}
	for y, row := range p.pixels {
		for x, c := range row {
			setCanvasPixel(dst, x, y, c)
		}
	}
	return &SixelImage{Width: width, Height: height, Pix: dst, Transparent: p.transparent}
}

// hlsToRGB converts Sixel's non-standard HLS (blue=0, red=120,
// green=240) to RGB.
func hlsToRGB(h, l, s int) stdcolor.RGBA {
	if s == 0 {
		v := uint8(l * 255 / 100)
		return stdcolor.RGBA{R: v, G: v, B: v, A: 255}
	}
	hNorm := float64(h) / 360.0
	lNorm := float64(l) / 100.0
	sNorm := float64(s) / 100.0

	hNorm += 2.0 / 3.0
	if hNorm >= 1.0 {
		hNorm -= 1.0
	}

	var q float64
	if lNorm < 0.5 {
		q = lNorm * (1 + sNorm)
	} else {
		q = lNorm + sNorm - lNorm*sNorm
	}
	pp := 2*lNorm - q

	r := hueToRGB(pp, q, hNorm+1.0/3.0)
	g := hueToRGB(pp, q, hNorm)
	b := hueToRGB(pp, q, hNorm-1.0/3.0)
	return stdcolor.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 255}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}
