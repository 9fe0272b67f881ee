package srw3

import (
	"errors"
	"testing"

	"github.com/go-raw/srw3/srw3/bitpump"
)

func TestDecodeHeaderFields(t *testing.T) {
	w := &bitWriter{}
	writeHeader(w, headerFields{
		width:               32,
		height:              4,
		headerBitDepthField: 13, // bitDepth = 14
		optFlags:            OptMV | OptQP,
		initVal:             12345,
	})

	p := bitpump.New(w.bytes(), 0)
	params, err := decodeHeader(p)
	if err != nil {
		t.Fatalf("decodeHeader: %v", err)
	}

	if params.Width != 32 || params.Height != 4 {
		t.Errorf("dims = %dx%d, want 32x4", params.Width, params.Height)
	}
	if params.BitDepth != 14 {
		t.Errorf("BitDepth = %d, want 14", params.BitDepth)
	}
	if params.OptFlags != OptMV|OptQP {
		t.Errorf("OptFlags = %#x, want %#x", params.OptFlags, OptMV|OptQP)
	}
	if params.InitVal != 12345 {
		t.Errorf("InitVal = %d, want 12345", params.InitVal)
	}

	// Header is 128 bits == 16 bytes.
	if got := p.Position(); got != 16 {
		t.Errorf("Position() after header = %d, want 16", got)
	}
}

func TestDecodeHeaderBadDimensions(t *testing.T) {
	cases := []struct {
		name          string
		width, height uint32
	}{
		{"zero width", 0, 4},
		{"zero height", 16, 0},
		{"not multiple of 16", 17, 4},
		{"width over cap", 6512, 4},
		{"height over cap", 16, 4352},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := &bitWriter{}
			writeHeader(w, headerFields{width: c.width, height: c.height, headerBitDepthField: 11})
			p := bitpump.New(w.bytes(), 0)

			_, err := decodeHeader(p)
			var bad *BadDimensionsError
			if !errors.As(err, &bad) {
				t.Fatalf("decodeHeader(%dx%d) = %v, want *BadDimensionsError", c.width, c.height, err)
			}
		})
	}
}

func TestDecodeHeaderTruncated(t *testing.T) {
	w := &bitWriter{}
	writeHeader(w, headerFields{width: 16, height: 4, headerBitDepthField: 11})
	full := w.bytes()

	if _, err := decodeHeader(bitpump.New(full[:len(full)-1], 0)); !errors.Is(err, ErrTruncated) {
		t.Fatalf("decodeHeader on truncated buffer = %v, want ErrTruncated", err)
	}
}
