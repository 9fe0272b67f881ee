package srw3

import "github.com/go-raw/srw3/srw3/bitpump"

// FrameParams is the decoded preamble of an SRW v3 stream.
type FrameParams struct {
	Width    uint32
	Height   uint32
	BitDepth uint32 // nominal sample precision, 12 or 14 in practice
	InitVal  uint32 // 14-bit seed for a row's left edge when its first block has motion 7
	OptFlags uint32 // 4-bit mask: OptSkip, OptMV, OptQP
}

// decodeHeader reads the fixed-layout preamble described in §4.2 of the
// decoder specification: NLCVersion, ImgFormat, bitDepth, NumBlkInRCUnit,
// CompressionRatio, width, height, TileWidth, reserved, optFlags,
// OverlapWidth, reserved, Inc, reserved, initVal. Most fields are parsed
// only to keep the pump's position correct; only the tagged ones feed
// FrameParams.
func decodeHeader(p *bitpump.Pump) (FrameParams, error) {
	var params FrameParams

	if _, err := p.Read(16); err != nil { // NLCVersion
		return params, err
	}
	if _, err := p.Read(4); err != nil { // ImgFormat
		return params, err
	}
	bitDepthField, err := p.Read(4) // bitDepth, stored as value-1
	if err != nil {
		return params, err
	}
	params.BitDepth = bitDepthField + 1

	if _, err := p.Read(4); err != nil { // NumBlkInRCUnit
		return params, err
	}
	if _, err := p.Read(4); err != nil { // CompressionRatio
		return params, err
	}

	width, err := p.Read(16)
	if err != nil {
		return params, err
	}
	params.Width = width

	height, err := p.Read(16)
	if err != nil {
		return params, err
	}
	params.Height = height

	if _, err := p.Read(16); err != nil { // TileWidth
		return params, err
	}
	if _, err := p.Read(4); err != nil { // reserved
		return params, err
	}

	optFlags, err := p.Read(4)
	if err != nil {
		return params, err
	}
	params.OptFlags = optFlags

	if _, err := p.Read(8); err != nil { // OverlapWidth
		return params, err
	}
	if _, err := p.Read(8); err != nil { // reserved
		return params, err
	}
	if _, err := p.Read(8); err != nil { // Inc
		return params, err
	}
	if _, err := p.Read(2); err != nil { // reserved
		return params, err
	}

	initVal, err := p.Read(14)
	if err != nil {
		return params, err
	}
	params.InitVal = initVal

	if err := validateDimensions(params.Width, params.Height); err != nil {
		return params, err
	}

	return params, nil
}

func validateDimensions(width, height uint32) error {
	if width == 0 || height == 0 {
		return &BadDimensionsError{Width: width, Height: height}
	}
	if width%blockWidth != 0 {
		return &BadDimensionsError{Width: width, Height: height}
	}
	if width > maxWidth || height > maxHeight {
		return &BadDimensionsError{Width: width, Height: height}
	}
	return nil
}
