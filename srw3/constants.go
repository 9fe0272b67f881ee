package srw3

// Header option flags (optFlags), per the fixed-layout preamble.
const (
	OptSkip uint32 = 1 // don't read the per-block diffBits presence bit
	OptMV   uint32 = 2 // simplified binary motion-vector selection
	OptQP   uint32 = 4 // don't scale residuals
)

// Dimension envelope SRW v3 streams are documented to stay within.
const (
	maxWidth  = 6496
	maxHeight = 4336
)

// blockWidth is the number of pixels coded per block (8 green, 8 red/blue).
const blockWidth = 16

// scaleBlockStride is how many pixels elapse between scale-update reads
// (4 blocks of 16 pixels).
const scaleBlockStride = 64

// rowAlignment is the byte boundary each row's bitstream is aligned to.
const rowAlignment = 16

// motionOffset and motionDoAverage are indexed by motion code 0..6 (motion
// code 7 is the same-row left-edge case and never reaches these tables).
var motionOffset = [7]int32{-4, -2, -2, 0, 0, 2, 4}
var motionDoAverage = [7]bool{false, false, true, false, true, false, false}

// demuxEven and demuxOdd map a block-local residual index i (0..15,
// ordered 8 green then 8 red/blue) to the block-local column offset the
// residual applies to, for even and odd rows respectively. See §4.4(e)
// and §9 of the decoder specification for the ((i&7)<<1)+... derivation
// these precompute.
var demuxEven = [blockWidth]int{0, 2, 4, 6, 8, 10, 12, 14, 1, 3, 5, 7, 9, 11, 13, 15}
var demuxOdd = [blockWidth]int{1, 3, 5, 7, 9, 11, 13, 15, 0, 2, 4, 6, 8, 10, 12, 14}
