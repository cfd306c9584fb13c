// Package testpattern provides a synthetic frame source that renders a
// moving test pattern, so the pipeline can run end to end without a video
// file or an ffmpeg binary.
package testpattern

import (
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"

	"github.com/user/vcompress/pkg/codec"
	"github.com/user/vcompress/pkg/ports"
)

// Source generates a fixed number of rendered frames. The path argument to
// Open is ignored.
type Source struct {
	width      int
	height     int
	fps        float64
	frameCount int

	open      bool
	nextIndex int
}

// New creates a source producing frameCount frames of the given geometry.
func New(width, height, frameCount int, fps float64) *Source {
	return &Source{
		width:      width,
		height:     height,
		fps:        fps,
		frameCount: frameCount,
	}
}

// Open resets the source to its first frame.
func (s *Source) Open(_ string) (ports.SourceInfo, error) {
	s.open = true
	s.nextIndex = 0

	return ports.SourceInfo{
		Width:      s.width,
		Height:     s.height,
		FPS:        s.fps,
		FrameCount: s.frameCount,
	}, nil
}

// Next renders the next pattern frame. It returns io.EOF after the
// configured frame count.
func (s *Source) Next(frame *codec.Frame) error {
	if !s.open {
		return io.ErrClosedPipe
	}
	if s.nextIndex >= s.frameCount {
		return io.EOF
	}

	img := s.render(s.nextIndex)

	frame.Width = s.width
	frame.Height = s.height
	size := s.width * s.height * 3
	if cap(frame.Data) < size {
		frame.Data = make([]byte, size)
	}
	frame.Data = frame.Data[:size]
	flatten(img, frame.Data, s.width, s.height)

	frame.Timestamp = s.nextIndex
	frame.Type = codec.KeyFrame
	s.nextIndex++

	return nil
}

// Close marks the source exhausted. Safe to call more than once.
func (s *Source) Close() error {
	s.open = false
	return nil
}

// render draws a horizontal gradient, a bar sweeping left to right across
// the sequence, and the frame number.
func (s *Source) render(index int) *image.RGBA {
	dc := gg.NewContext(s.width, s.height)

	for x := 0; x < s.width; x++ {
		shade := float64(x) / float64(s.width)
		dc.SetRGB(shade, 0.2, 1-shade)
		dc.DrawLine(float64(x), 0, float64(x), float64(s.height))
		dc.Stroke()
	}

	progress := 0.0
	if s.frameCount > 1 {
		progress = float64(index) / float64(s.frameCount-1)
	}
	barWidth := float64(s.width) / 8
	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(progress*(float64(s.width)-barWidth), float64(s.height)/3, barWidth, float64(s.height)/3)
	dc.Fill()

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(fmt.Sprintf("frame %d", index),
		float64(s.width)/2, float64(s.height)/6, 0.5, 0.5)

	return dc.Image().(*image.RGBA)
}

// flatten copies an RGBA image into an interleaved RGB buffer.
func flatten(img *image.RGBA, dst []byte, width, height int) {
	for y := 0; y < height; y++ {
		si := y * img.Stride
		di := y * width * 3
		for x := 0; x < width; x++ {
			dst[di+0] = img.Pix[si+0]
			dst[di+1] = img.Pix[si+1]
			dst[di+2] = img.Pix[si+2]
			si += 4
			di += 3
		}
	}
}

var _ ports.FrameSource = (*Source)(nil)
