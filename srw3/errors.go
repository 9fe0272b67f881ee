package srw3

import (
	"errors"
	"fmt"

	"github.com/go-raw/srw3/srw3/bitpump"
)

// ErrTruncated is returned when decoding runs past the end of the buffer.
var ErrTruncated = bitpump.ErrTruncated

// BadDimensionsError reports header dimensions outside the documented
// envelope (width a multiple of 16 and <=6496, height <=4336, both
// nonzero).
type BadDimensionsError struct {
	Width  uint32
	Height uint32
}

func (e *BadDimensionsError) Error() string {
	return fmt.Sprintf("srw3: bad dimensions %dx%d", e.Width, e.Height)
}

// CorruptError reports a structural bitstream violation: a motion code
// other than 7 on the first two rows, a reference lookup that would
// require rows that don't exist yet, a residual width above the header's
// declared bit depth plus one, or a reference access that falls outside
// the row.
type CorruptError struct {
	Reason string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("srw3: corrupt: %s", e.Reason)
}

// UnsupportedBitsError reports a caller-supplied bit depth this layer was
// asked to enforce that falls outside what SRW v3 ever actually uses. By
// contract the TIFF dispatcher has already filtered this; Decode checks
// it anyway since it may be called directly.
type UnsupportedBitsError struct {
	Bits uint32
}

func (e *UnsupportedBitsError) Error() string {
	return fmt.Sprintf("srw3: unsupported bit depth %d", e.Bits)
}

var errMotionAtRowStart = &CorruptError{Reason: "motion at row start"}
var errReferenceOnFirstTwoRows = &CorruptError{Reason: "reference on first two rows"}
var errResidualWidthTooLarge = &CorruptError{Reason: "residual width too large"}
var errReferenceOutOfRange = &CorruptError{Reason: "reference index out of range"}

// isCorrupt reports whether err is (or wraps) a *CorruptError with the given
// reason, for tests and callers that want to discriminate on it without
// depending on the exact message.
func isCorrupt(err error, reason string) bool {
	var ce *CorruptError
	return errors.As(err, &ce) && ce.Reason == reason
}
