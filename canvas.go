package vtcore

import (
	"image"
	stdcolor "image/color"

	"golang.org/x/image/draw"
)

// newRGBACanvas allocates a w x h destination for a Sixel raster.
func newRGBACanvas(w, h int) *rgbaCanvas {
	return &rgbaCanvas{bounds: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// fillCanvas paints the whole canvas one color using x/image/draw's
// Draw with draw.Src, in place of a manual per-pixel loop.
func fillCanvas(c *rgbaCanvas, bg stdcolor.RGBA) {
	draw.Draw(c.bounds, c.bounds.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
}

// setCanvasPixel writes one pixel.
func setCanvasPixel(c *rgbaCanvas, x, y int, col stdcolor.RGBA) {
	c.bounds.Set(x, y, col)
}

// Image returns the canvas as a stdlib image.Image for encoding or
// further composition.
func (c *rgbaCanvas) Image() image.Image {
	return c.bounds
}

// ScaleTo resamples src into a new width x height canvas using
// x/image/draw's approximate bilinear scaler — the reason this module
// pulls in golang.org/x/image/draw instead of the stdlib image/draw
// package, which has no resampling scalers at all. Nothing in this
// package calls it.
func ScaleTo(src image.Image, width, height int) *rgbaCanvas {
	dst := newRGBACanvas(width, height)
	draw.ApproxBiLinear.Scale(dst.bounds, dst.bounds.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// Composite draws src onto dst at the given offset using src-over
// alpha blending, for layering multiple image placements by z-index.
func Composite(dst *rgbaCanvas, src image.Image, atX, atY int) {
	r := image.Rect(atX, atY, atX+src.Bounds().Dx(), atY+src.Bounds().Dy())
	draw.Draw(dst.bounds, r, src, image.Point{}, draw.Over)
}
