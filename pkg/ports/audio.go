package ports

import "context"

// AudioTool abstracts audio passthrough around the frame pipeline: the
// track is lifted out of the input before encoding and put back over the
// reconstructed video after decoding.
type AudioTool interface {
	// Extract copies the audio track of inputVideo into outputAudio
	// without re-encoding.
	Extract(ctx context.Context, inputVideo, outputAudio string) error

	// Mux combines a silent video file with an audio file into outputFile.
	Mux(ctx context.Context, videoFile, audioFile, outputFile string) error
}
