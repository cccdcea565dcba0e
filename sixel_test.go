package vtcore

import "testing"

func TestParseSixelSimpleRaster(t *testing.T) {
	// '?' (0x3F) sets no bits; '~' (0x7E) sets all 6 rows for one column.
	img, err := ParseSixel(nil, []byte("#0;2;100;0;0#0~"))
	if err != nil {
		t.Fatalf("ParseSixel error: %v", err)
	}
	if img.Width != 1 || img.Height != 6 {
		t.Fatalf("dims = (%d,%d), want (1,6)", img.Width, img.Height)
	}
}

func TestParseSixelRepeatCount(t *testing.T) {
	img, err := ParseSixel(nil, []byte("#0;2;100;0;0#0!3~"))
	if err != nil {
		t.Fatalf("ParseSixel error: %v", err)
	}
	if img.Width != 3 {
		t.Errorf("Width = %d, want 3 (repeat count 3)", img.Width)
	}
}

func TestParseSixelEmptyDataYieldsEmptyImage(t *testing.T) {
	img, err := ParseSixel(nil, nil)
	if err != nil {
		t.Fatalf("ParseSixel error: %v", err)
	}
	if img.Width != 0 || img.Height != 0 {
		t.Errorf("dims = (%d,%d), want (0,0) for empty data", img.Width, img.Height)
	}
}

func TestHLSToRGBGreyscaleAtZeroSaturation(t *testing.T) {
	c := hlsToRGB(0, 50, 0)
	if c.R != c.G || c.G != c.B {
		t.Errorf("zero-saturation HLS should be grey, got %#v", c)
	}
}

func TestHLSToRGBPureColors(t *testing.T) {
	// Sixel HLS: blue=0, red=120, green=240.
	red := hlsToRGB(120, 50, 100)
	if red.R < red.G || red.R < red.B {
		t.Errorf("hue 120 should be red-dominant, got %#v", red)
	}
}
