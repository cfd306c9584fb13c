package mocks

import (
	"fmt"

	"github.com/user/vcompress/pkg/codec"
	"github.com/user/vcompress/pkg/ports"
)

// FrameSink is a mock implementation of ports.FrameSink that records the
// frames it receives. It rejects mismatched dimensions like a real sink.
type FrameSink struct {
	OpenFunc  func(path string, width, height int, fps float64) error
	WriteFunc func(frame *codec.Frame) error

	// Recorded calls for verification
	OpenedPath  string
	Width       int
	Height      int
	FPS         float64
	Written     []*codec.Frame
	OpenCalled  bool
	CloseCalled bool
}

// Open records the geometry the sink was bound to.
func (m *FrameSink) Open(path string, width, height int, fps float64) error {
	m.OpenCalled = true
	m.OpenedPath = path
	m.Width = width
	m.Height = height
	m.FPS = fps
	if m.OpenFunc != nil {
		return m.OpenFunc(path, width, height, fps)
	}
	return nil
}

// Write stores a copy of the frame.
func (m *FrameSink) Write(frame *codec.Frame) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(frame)
	}
	if frame.Width != m.Width || frame.Height != m.Height {
		return fmt.Errorf("mock sink: got %dx%d, want %dx%d", frame.Width, frame.Height, m.Width, m.Height)
	}
	clone := &codec.Frame{
		Width:     frame.Width,
		Height:    frame.Height,
		Data:      append([]byte(nil), frame.Data...),
		Timestamp: frame.Timestamp,
		Type:      frame.Type,
	}
	m.Written = append(m.Written, clone)
	return nil
}

// Close records the call.
func (m *FrameSink) Close() error {
	m.CloseCalled = true
	return nil
}

var _ ports.FrameSink = (*FrameSink)(nil)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	EnabledValue bool
	Saved        []int
}

// Enabled reports the configured value.
func (m *DebugSink) Enabled() bool { return m.EnabledValue }

// SaveFrame records the index.
func (m *DebugSink) SaveFrame(index int, frame *codec.Frame) error {
	m.Saved = append(m.Saved, index)
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
