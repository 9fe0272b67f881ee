// Package srw3 decodes the third-generation Samsung SRW lossless
// compressed raw codec (TIFF compression tag 32773), used by the Samsung
// NX1 and related bodies, into a 16-bit-per-pixel Bayer raster.
//
// The package is a self-contained bitstream decoder: it consumes a byte
// buffer, a payload offset, and the caller-supplied bit depth (from the
// TIFF dispatcher's BITSPERSAMPLE tag), and writes into a caller-owned
// Image. TIFF/IFD parsing, compression-tag dispatch, and camera metadata
// (whitebalance, CFA pattern, ISO) are all external collaborators; this
// package neither reads nor produces any of them.
package srw3

import (
	"fmt"

	"github.com/go-raw/srw3/srw3/bitpump"
)

// Decode decodes an SRW v3 payload starting at offset in buf into img.
// bits is the nominal sample precision (12 or 14) as reported by the
// TIFF dispatcher's BITSPERSAMPLE tag; by contract the dispatcher has
// already verified the compression tag is 32773 and bits is one of
// {12, 14} before calling Decode, but Decode checks it anyway since it
// may be reached directly.
//
// img's width and height must match the stream header's; on any error
// img's contents are unspecified and should be discarded by the caller.
func Decode(buf []byte, offset uint32, bits uint32, img Image) error {
	if bits != 12 && bits != 14 {
		return &UnsupportedBitsError{Bits: bits}
	}

	headerPump := bitpump.New(buf, offset)
	params, err := decodeHeader(headerPump)
	if err != nil {
		return err
	}

	if int(params.Width) != img.Width() || int(params.Height) != img.Height() {
		return &BadDimensionsError{Width: params.Width, Height: params.Height}
	}

	fmt.Printf("srw3: decoding %dx%d, bitDepth=%d, optFlags=%#x\n",
		params.Width, params.Height, params.BitDepth, params.OptFlags)

	fd := &frameDecoder{
		buf:        buf,
		base:       offset,
		bits:       bits,
		params:     params,
		img:        img,
		lineOffset: headerPump.Position(),
	}
	return fd.run()
}

// frameDecoder drives the row loop: 16-byte row alignment, per-row
// BitPump construction, per-row context reset, and predictor-neighbor
// selection (same row / row-1 / row-2).
type frameDecoder struct {
	buf        []byte
	base       uint32
	bits       uint32
	params     FrameParams
	img        Image
	lineOffset uint32 // byte offset, relative to base, of row 0's bitstream
}

func (fd *frameDecoder) run() error {
	lineOffset := fd.lineOffset

	for row := uint32(0); row < fd.params.Height; row++ {
		if lineOffset&(rowAlignment-1) != 0 {
			lineOffset += rowAlignment - (lineOffset & (rowAlignment - 1))
		}

		rowPump := bitpump.New(fd.buf, fd.base+lineOffset)
		if err := fd.decodeRow(rowPump, row); err != nil {
			return err
		}

		lineOffset += rowPump.Position()
	}
	return nil
}

func (fd *frameDecoder) decodeRow(p *bitpump.Pump, row uint32) error {
	rowBuf := fd.img.RowMut(int(row))

	upRowIdx := row - 1
	if row == 0 {
		upRowIdx = 0
	}
	up2RowIdx := row - 2
	if row < 2 {
		up2RowIdx = 0
	}
	upBuf := fd.img.RowMut(int(upRowIdx))
	up2Buf := fd.img.RowMut(int(up2RowIdx))

	ctx := newLineContext(row)

	for col := uint32(0); col < fd.params.Width; col += blockWidth {
		if err := decodeBlock(p, fd.bits, fd.params.BitDepth, fd.params.OptFlags, row, col, rowBuf, upBuf, up2Buf, ctx, fd.params.InitVal); err != nil {
			return err
		}
	}
	return nil
}
