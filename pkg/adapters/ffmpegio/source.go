package ffmpegio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/user/vcompress/pkg/adapters/mp4probe"
	"github.com/user/vcompress/pkg/codec"
	"github.com/user/vcompress/pkg/ports"
)

// Source pulls raw rgb24 frames from a video file through an ffmpeg
// subprocess. The frame geometry is probed from the MP4 metadata before the
// process starts, so the pipe can be sliced into fixed-size frames.
type Source struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr bytes.Buffer

	info      ports.SourceInfo
	frameSize int
	nextIndex int
}

// NewSource creates an unopened source.
func NewSource() *Source {
	return &Source{}
}

// Open probes the input and starts the decoding process.
func (s *Source) Open(path string) (ports.SourceInfo, error) {
	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return ports.SourceInfo{}, err
	}

	probe, err := mp4probe.Probe(path)
	if err != nil {
		return ports.SourceInfo{}, fmt.Errorf("ffmpegio: probe %s: %w", path, err)
	}

	s.info = ports.SourceInfo{
		Width:      probe.Width,
		Height:     probe.Height,
		FPS:        probe.FPS,
		FrameCount: probe.FrameCount,
	}
	s.frameSize = probe.Width * probe.Height * 3
	s.nextIndex = 0

	cmd := exec.Command(ffmpegPath,
		"-i", path,
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-loglevel", "error",
		"-",
	)
	cmd.Stderr = &s.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return ports.SourceInfo{}, fmt.Errorf("ffmpegio: stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return ports.SourceInfo{}, fmt.Errorf("ffmpegio: start ffmpeg: %w", err)
	}

	s.cmd = cmd
	s.stdout = stdout

	return s.info, nil
}

// Next fills frame with the next raw frame. It returns io.EOF once the
// decoding process has emitted its last frame.
func (s *Source) Next(frame *codec.Frame) error {
	if s.cmd == nil {
		return ErrNotOpen
	}

	frame.Width = s.info.Width
	frame.Height = s.info.Height
	if cap(frame.Data) < s.frameSize {
		frame.Data = make([]byte, s.frameSize)
	}
	frame.Data = frame.Data[:s.frameSize]

	n, err := io.ReadFull(s.stdout, frame.Data)
	if err != nil {
		if n == 0 && err == io.EOF {
			return io.EOF
		}
		if err == io.ErrUnexpectedEOF {
			return fmt.Errorf("ffmpegio: short frame read (%d of %d bytes): %s", n, s.frameSize, s.stderr.String())
		}
		return fmt.Errorf("ffmpegio: read frame: %w", err)
	}

	frame.Timestamp = s.nextIndex
	frame.Type = codec.KeyFrame
	s.nextIndex++

	return nil
}

// Close terminates the decoding process. Safe to call more than once.
func (s *Source) Close() error {
	if s.cmd == nil {
		return nil
	}

	s.stdout.Close()
	err := s.cmd.Wait()
	s.cmd = nil
	s.stdout = nil

	// ffmpeg exits non-zero when we stop reading before its last frame;
	// with the pipe drained that is not a failure worth reporting.
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return fmt.Errorf("ffmpegio: ffmpeg exited: %w: %s", err, s.stderr.String())
	}

	return nil
}

var _ ports.FrameSource = (*Source)(nil)
