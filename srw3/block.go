package srw3

import "github.com/go-raw/srw3/srw3/bitpump"

// decodeBlock decodes one 16-pixel block starting at column col on the
// given row, reading from p and writing reconstructed pixels into row.
// up and up2 are the previous two rows (clamped at the image edges by the
// caller); they're read but never written. ctx carries motion, scale and
// the diffBits context across blocks within the row.
func decodeBlock(p *bitpump.Pump, bits uint32, frameBitDepth uint32, optFlags uint32, r uint32, col uint32, row, up, up2 []uint16, ctx *lineContext, initVal uint32) error {
	if err := maybeUpdateScale(p, optFlags, col, ctx); err != nil {
		return err
	}

	if err := selectMotion(p, optFlags, r, ctx); err != nil {
		return err
	}

	if err := fillReference(row, up, up2, col, r, ctx.motion, initVal); err != nil {
		return err
	}

	if err := updateDiffBits(p, optFlags, frameBitDepth, r, ctx); err != nil {
		return err
	}

	return reconstructResiduals(p, bits, r, col, row, ctx)
}

func maybeUpdateScale(p *bitpump.Pump, optFlags uint32, col uint32, ctx *lineContext) error {
	if optFlags&OptQP != 0 || col%scaleBlockStride != 0 {
		return nil
	}

	i, err := p.Read(2)
	if err != nil {
		return err
	}

	scaleDeltas := [3]int32{0, -2, 2}
	if i < 3 {
		ctx.scale += scaleDeltas[i]
		return nil
	}

	escape, err := p.Read(12)
	if err != nil {
		return err
	}
	ctx.scale = int32(escape)
	return nil
}

func selectMotion(p *bitpump.Pump, optFlags uint32, r uint32, ctx *lineContext) error {
	if optFlags&OptMV != 0 {
		bit, err := p.Read(1)
		if err != nil {
			return err
		}
		if bit != 0 {
			ctx.motion = 3
		} else {
			ctx.motion = 7
		}
	} else {
		bit, err := p.Read(1)
		if err != nil {
			return err
		}
		if bit == 0 {
			motion, err := p.Read(3)
			if err != nil {
				return err
			}
			ctx.motion = motion
		}
		// else: leave ctx.motion unchanged
	}

	if (r == 0 || r == 1) && ctx.motion != 7 {
		return errMotionAtRowStart
	}
	return nil
}

func fillReference(row, up, up2 []uint16, col uint32, r uint32, motion uint32, initVal uint32) error {
	if motion == 7 {
		for i := 0; i < blockWidth; i++ {
			if col == 0 {
				row[int(col)+i] = uint16(initVal)
			} else {
				row[int(col)+i] = row[int(col)+i-2]
			}
		}
		return nil
	}

	if r < 2 {
		return errReferenceOnFirstTwoRows
	}

	off := motionOffset[motion]
	doAverage := motionDoAverage[motion]
	width := len(row)

	for i := 0; i < blockWidth; i++ {
		var base int32
		var src []uint16
		if (r+uint32(i))&1 != 0 {
			// Red/blue: same color two rows up.
			src = up2
			base = int32(col) + int32(i) + off
		} else {
			// Green: green pixel N from the row above, left or right.
			skew := int32(1)
			if i%2 != 0 {
				skew = -1
			}
			src = up
			base = int32(col) + int32(i) + off + skew
		}

		idx, err := boundedIndex(base, width)
		if err != nil {
			return err
		}

		var ref uint16 = src[idx]
		if doAverage {
			idx2, err := boundedIndex(base+2, width)
			if err != nil {
				return err
			}
			ref = uint16((uint32(ref) + uint32(src[idx2]) + 1) >> 1)
		}
		row[int(col)+i] = ref
	}
	return nil
}

func boundedIndex(v int32, width int) (int, error) {
	if v < 0 || int(v) >= width {
		return 0, errReferenceOutOfRange
	}
	return int(v), nil
}

// updateDiffBits implements §4.4(d). When OptSkip is set, no header bit is
// present in the stream and the per-quarter-block flags are always read
// fresh; otherwise a single bit chooses between reading fresh flags (0)
// and skipping them entirely (1) — the short-circuit matches the
// original decoder's `optflags & OPT_SKIP || !pump.getBits(1)`.
//
// diffBits is declared fresh inside the original's per-block loop and
// zero-initialized every time; on the skip path nothing re-assigns it,
// so the block reads zero residual bits per pixel (diff collapses to
// scale alone). diffBitsMode, by contrast, is declared outside that
// loop and genuinely persists — it is untouched on the skip path.
func updateDiffBits(p *bitpump.Pump, optFlags uint32, frameBitDepth uint32, r uint32, ctx *lineContext) error {
	readFresh := true
	if optFlags&OptSkip == 0 {
		bit, err := p.Read(1)
		if err != nil {
			return err
		}
		readFresh = bit == 0
	}

	if !readFresh {
		ctx.diffBits = [4]uint32{}
		return nil
	}

	var flags [4]uint32
	for i := range flags {
		flag, err := p.Read(2)
		if err != nil {
			return err
		}
		flags[i] = flag
	}

	for i, flag := range flags {
		colornum := colorPairIndex(r, i)

		switch flag {
		case 0:
			ctx.diffBits[i] = ctx.diffBitsMode[colornum][0]
		case 1:
			ctx.diffBits[i] = ctx.diffBitsMode[colornum][0] + 1
		case 2:
			ctx.diffBits[i] = ctx.diffBitsMode[colornum][0] - 1
		case 3:
			width, err := p.Read(4)
			if err != nil {
				return err
			}
			ctx.diffBits[i] = width
		}

		ctx.diffBitsMode[colornum][0] = ctx.diffBitsMode[colornum][1]
		ctx.diffBitsMode[colornum][1] = ctx.diffBits[i]

		if ctx.diffBits[i] > frameBitDepth+1 {
			return errResidualWidthTooLarge
		}
	}
	return nil
}

// reconstructResiduals implements §4.4(e): reads the 16 residuals for the
// block in color-grouped order, sign-extends and scale-applies each one,
// and adds it to the predicted pixel at its permuted Bayer position.
func reconstructResiduals(p *bitpump.Pump, bits uint32, r uint32, col uint32, row []uint16, ctx *lineContext) error {
	table := &demuxEven
	if r%2 != 0 {
		table = &demuxOdd
	}

	for i := 0; i < blockWidth; i++ {
		length := ctx.diffBits[i>>2]

		var raw uint32
		if length > 0 {
			v, err := p.Read(length)
			if err != nil {
				return err
			}
			raw = v
		}

		diff := signExtend(raw, length)
		diff = diff*(2*ctx.scale+1) + ctx.scale

		target := int(col) + table[i]
		row[target] = clampBits(int32(row[target])+diff, bits)
	}
	return nil
}

// signExtend interprets the low len bits of raw as a two's-complement
// value of width len (len == 0 always yields 0).
func signExtend(raw uint32, length uint32) int32 {
	if length == 0 {
		return 0
	}
	v := int32(raw)
	if raw&(1<<(length-1)) != 0 {
		v -= int32(1) << length
	}
	return v
}

// clampBits clamps v into [0, 2^bits - 1] and narrows it to uint16.
func clampBits(v int32, bits uint32) uint16 {
	if v < 0 {
		return 0
	}
	max := int32(1)<<bits - 1
	if v > max {
		return uint16(max)
	}
	return uint16(v)
}
