package codec

import "encoding/binary"

// PayloadMetaSize is the number of payload bytes occupied by the original
// frame dimensions.
//
// Payload layout, little-endian:
//
//	[0:4)  original width  (int32)
//	[4:8)  original height (int32)
//	[8:)   row-major interleaved RGB bytes of the resampled frame
const PayloadMetaSize = 8

// EncodePayload assembles a compressed payload from the original frame
// dimensions and the resampled pixel buffer.
func EncodePayload(origWidth, origHeight int, pixels []byte) []byte {
	payload := make([]byte, PayloadMetaSize+len(pixels))
	binary.LittleEndian.PutUint32(payload[0:4], uint32(origWidth))
	binary.LittleEndian.PutUint32(payload[4:8], uint32(origHeight))
	copy(payload[PayloadMetaSize:], pixels)

	return payload
}

// DecodePayload splits a compressed payload into the original frame
// dimensions and the resampled pixel buffer. The pixel slice aliases the
// payload.
func DecodePayload(payload []byte) (origWidth, origHeight int, pixels []byte, err error) {
	if len(payload) < PayloadMetaSize {
		return 0, 0, nil, ErrShortPayload
	}

	origWidth = int(int32(binary.LittleEndian.Uint32(payload[0:4])))
	origHeight = int(int32(binary.LittleEndian.Uint32(payload[4:8])))

	return origWidth, origHeight, payload[PayloadMetaSize:], nil
}

// ResampleFactor derives the downsample factor from the quality setting.
// Higher quality means a smaller factor: quality 50 and above gives 2,
// 25-49 gives 3, below 25 gives 4.
func ResampleFactor(quality int) int {
	factor := 4 - quality/25
	if factor < 2 {
		factor = 2
	}
	if factor > 4 {
		factor = 4
	}

	return factor
}
