// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"github.com/user/vcompress/pkg/codec"
	"github.com/user/vcompress/pkg/ports"
)

// Sink discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveFrame does nothing.
func (s *Sink) SaveFrame(index int, frame *codec.Frame) error {
	return nil
}

var _ ports.DebugSink = (*Sink)(nil)
