// Package pngsink provides a file-based debug sink that persists decoded
// frames as PNG images.
package pngsink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"

	"github.com/user/vcompress/pkg/codec"
	"github.com/user/vcompress/pkg/ports"
)

// Sink saves frames under a base directory.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a PNG debug sink rooted at baseDir.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveFrame writes one decoded frame as frames/frame-NNNN.png.
func (s *Sink) SaveFrame(index int, frame *codec.Frame) error {
	if err := frame.Validate(); err != nil {
		return err
	}

	dir := filepath.Join(s.baseDir, "frames")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for y := 0; y < frame.Height; y++ {
		si := y * frame.Width * 3
		di := y * img.Stride
		for x := 0; x < frame.Width; x++ {
			img.Pix[di+0] = frame.Data[si+0]
			img.Pix[di+1] = frame.Data[si+1]
			img.Pix[di+2] = frame.Data[si+2]
			img.Pix[di+3] = 0xff
			si += 3
			di += 4
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("pngsink: encode frame %d: %w", index, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("frame-%04d.png", index))

	return s.fs.WriteFile(path, buf.Bytes())
}

var _ ports.DebugSink = (*Sink)(nil)
