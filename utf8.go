package vtcore

// utf8Decoder is a streaming, byte-at-a-time UTF-8 decoder. It keeps a
// partially decoded character across Feed calls. Rejects overlong
// encodings and surrogate halves as it
// goes. The stdlib unicode/utf8 package only decodes complete, buffered
// slices and can't hold a partial sequence across Feed calls, which is
// why vtcore carries its own accumulator instead.
type utf8Decoder struct {
	cp   rune
	want int
	have int
}

const replacementChar = '�'

// reset discards any partially decoded sequence.
func (d *utf8Decoder) reset() {
	d.cp = 0
	d.want = 0
	d.have = 0
}

// step feeds one byte to the decoder.
//
// ready is true when a full scalar value (or U+FFFD for an invalid
// sequence) is available in r. consumed is false when b was not part
// of the sequence that produced r — a stray non-continuation byte
// found mid-sequence — and must be replayed through step by the
// caller once it has dealt with r.
func (d *utf8Decoder) step(b byte) (r rune, ready bool, consumed bool) {
	if d.want == 0 {
		switch {
		case b < 0x80:
			return rune(b), true, true
		case b&0xE0 == 0xC0:
			d.cp, d.want, d.have = rune(b&0x1F), 1, 1
			return 0, false, true
		case b&0xF0 == 0xE0:
			d.cp, d.want, d.have = rune(b&0x0F), 2, 1
			return 0, false, true
		case b&0xF8 == 0xF0:
			d.cp, d.want, d.have = rune(b&0x07), 3, 1
			return 0, false, true
		default:
			// Stray continuation byte or invalid leading byte (0x80-0xBF
			// outside a sequence, or 0xF8-0xFF).
			return replacementChar, true, true
		}
	}

	// Mid-sequence: expect a continuation byte.
	if b&0xC0 != 0x80 {
		d.reset()
		return replacementChar, true, false
	}

	d.have++
	d.cp = d.cp<<6 | rune(b&0x3F)
	d.want--
	if d.want > 0 {
		return 0, false, true
	}

	cp, n := d.cp, d.have
	d.reset()

	if isOverlong(cp, n) || isSurrogate(cp) || cp > 0x10FFFF {
		return replacementChar, true, true
	}
	return cp, true, true
}

func isOverlong(cp rune, encodedLen int) bool {
	switch encodedLen {
	case 2:
		return cp < 0x80
	case 3:
		return cp < 0x800
	case 4:
		return cp < 0x10000
	default:
		return false
	}
}

func isSurrogate(cp rune) bool {
	return cp >= 0xD800 && cp <= 0xDFFF
}
