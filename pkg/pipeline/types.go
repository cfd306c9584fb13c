package pipeline

// =============================================================================
// Encode Stage Types
// =============================================================================

// EncodeInput contains parameters for compressing a video into a stream file.
type EncodeInput struct {
	InputPath  string // Source video file
	StreamPath string // Output compressed-stream file

	Algorithm   string // Registered codec name
	AlgorithmID uint16 // Numeric id written to the stream header

	Quality          int // 1-100, drives the resample factor
	TargetBitrate    int // kbps, informational
	KeyFrameInterval int // Every Nth frame is tagged as a key frame
}

// DefaultEncodeInput returns EncodeInput with default values.
func DefaultEncodeInput() EncodeInput {
	return EncodeInput{
		Algorithm:        "bilinear",
		AlgorithmID:      1,
		Quality:          75,
		KeyFrameInterval: 30,
	}
}

// EncodeResult contains the encoding output.
type EncodeResult struct {
	FrameCount      int
	Width           int
	Height          int
	FPS             float64
	OriginalBytes   int64
	CompressedBytes int64
	Stats           string // Codec statistics snapshot
}

// =============================================================================
// Decode Stage Types
// =============================================================================

// DecodeInput contains parameters for reconstructing a video from a stream
// file.
type DecodeInput struct {
	StreamPath string // Input compressed-stream file
	OutputPath string // Reconstructed video file

	Algorithm string // Registered codec name; must match the encode session
	Quality   int    // Must match the encode session's quality
}

// DecodeResult contains the decoding output.
type DecodeResult struct {
	FrameCount int
	Width      int
	Height     int
	FPS        float64
	Stats      string // Codec statistics snapshot
}
