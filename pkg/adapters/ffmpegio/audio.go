package ffmpegio

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/user/vcompress/pkg/ports"
)

// AudioTool implements audio passthrough with ffmpeg: the track is copied
// out of the input before encoding and muxed back over the reconstructed
// video after decoding.
type AudioTool struct{}

// NewAudioTool creates an AudioTool.
func NewAudioTool() *AudioTool {
	return &AudioTool{}
}

// Extract copies the audio track of inputVideo into outputAudio without
// re-encoding.
func (t *AudioTool) Extract(ctx context.Context, inputVideo, outputAudio string) error {
	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-i", inputVideo,
		"-vn",
		"-acodec", "copy",
		"-loglevel", "error",
		"-y", outputAudio,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpegio: extract audio: %w: %s", err, out)
	}

	return nil
}

// Mux combines a silent video file with an audio file, copying the video
// stream and encoding the audio as AAC.
func (t *AudioTool) Mux(ctx context.Context, videoFile, audioFile, outputFile string) error {
	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-i", videoFile,
		"-i", audioFile,
		"-c:v", "copy",
		"-c:a", "aac",
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-loglevel", "error",
		"-y", outputFile,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpegio: mux audio: %w: %s", err, out)
	}

	return nil
}

var _ ports.AudioTool = (*AudioTool)(nil)
