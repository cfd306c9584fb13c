package ffmpegio

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"github.com/user/vcompress/pkg/codec"
	"github.com/user/vcompress/pkg/ports"
)

// Sink pushes raw rgb24 frames into an ffmpeg subprocess that encodes them
// as an H.264 MP4. The sink is bound to fixed dimensions at Open and
// rejects frames of any other geometry.
type Sink struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer

	width  int
	height int
}

// NewSink creates an unopened sink.
func NewSink() *Sink {
	return &Sink{}
}

// Open starts the encoding process for frames of the given geometry.
func (s *Sink) Open(path string, width, height int, fps float64) error {
	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return err
	}

	cmd := exec.Command(ffmpegPath,
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", strconv.FormatFloat(fps, 'f', -1, 64),
		"-i", "-",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-loglevel", "error",
		"-y", path,
	)
	cmd.Stderr = &s.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("ffmpegio: stdin pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpegio: start ffmpeg: %w", err)
	}

	s.cmd = cmd
	s.stdin = stdin
	s.width = width
	s.height = height

	return nil
}

// Write pushes one frame into the encoder.
func (s *Sink) Write(frame *codec.Frame) error {
	if s.cmd == nil {
		return ErrNotOpen
	}
	if frame.Width != s.width || frame.Height != s.height {
		return fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrDimensionMismatch, frame.Width, frame.Height, s.width, s.height)
	}
	if err := frame.Validate(); err != nil {
		return err
	}

	if _, err := s.stdin.Write(frame.Data); err != nil {
		return fmt.Errorf("ffmpegio: write frame: %w: %s", err, s.stderr.String())
	}

	return nil
}

// Close flushes the encoder and waits for the process to finish writing the
// output file. Safe to call more than once.
func (s *Sink) Close() error {
	if s.cmd == nil {
		return nil
	}

	s.stdin.Close()
	err := s.cmd.Wait()
	s.cmd = nil
	s.stdin = nil

	if err != nil {
		return fmt.Errorf("ffmpegio: ffmpeg exited: %w: %s", err, s.stderr.String())
	}

	return nil
}

var _ ports.FrameSink = (*Sink)(nil)
