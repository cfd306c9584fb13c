package mocks

import (
	"fmt"

	"github.com/user/vcompress/pkg/ports"
)

// Logger is a mock implementation of ports.Logger that captures messages.
type Logger struct {
	DebugMessages []string
	InfoMessages  []string
	WarnMessages  []string
	ErrorMessages []string
}

// Debug captures a debug message.
func (m *Logger) Debug(msg string, args ...interface{}) {
	m.DebugMessages = append(m.DebugMessages, fmt.Sprintf(msg, args...))
}

// Info captures an info message.
func (m *Logger) Info(msg string, args ...interface{}) {
	m.InfoMessages = append(m.InfoMessages, fmt.Sprintf(msg, args...))
}

// Warn captures a warning message.
func (m *Logger) Warn(msg string, args ...interface{}) {
	m.WarnMessages = append(m.WarnMessages, fmt.Sprintf(msg, args...))
}

// Error captures an error message.
func (m *Logger) Error(msg string, args ...interface{}) {
	m.ErrorMessages = append(m.ErrorMessages, fmt.Sprintf(msg, args...))
}

// WithComponent returns the same logger.
func (m *Logger) WithComponent(component string) ports.Logger {
	return m
}

var _ ports.Logger = (*Logger)(nil)
