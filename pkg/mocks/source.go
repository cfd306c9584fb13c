// Package mocks provides hand-written mock implementations of the ports
// interfaces for tests.
package mocks

import (
	"io"

	"github.com/user/vcompress/pkg/codec"
	"github.com/user/vcompress/pkg/ports"
)

// FrameSource is a mock implementation of ports.FrameSource that serves
// frames from memory.
type FrameSource struct {
	Info   ports.SourceInfo
	Frames []*codec.Frame

	OpenFunc func(path string) (ports.SourceInfo, error)
	NextFunc func(frame *codec.Frame) error

	// Recorded calls for verification
	OpenedPath  string
	OpenCalled  bool
	CloseCalled bool

	next int
}

// Open resets the source and reports the configured info.
func (m *FrameSource) Open(path string) (ports.SourceInfo, error) {
	m.OpenCalled = true
	m.OpenedPath = path
	m.next = 0
	if m.OpenFunc != nil {
		return m.OpenFunc(path)
	}
	return m.Info, nil
}

// Next serves the next configured frame, then io.EOF.
func (m *FrameSource) Next(frame *codec.Frame) error {
	if m.NextFunc != nil {
		return m.NextFunc(frame)
	}
	if m.next >= len(m.Frames) {
		return io.EOF
	}
	src := m.Frames[m.next]
	frame.Width = src.Width
	frame.Height = src.Height
	frame.Data = append(frame.Data[:0], src.Data...)
	frame.Timestamp = src.Timestamp
	frame.Type = src.Type
	m.next++
	return nil
}

// Close records the call.
func (m *FrameSource) Close() error {
	m.CloseCalled = true
	return nil
}

var _ ports.FrameSource = (*FrameSource)(nil)
