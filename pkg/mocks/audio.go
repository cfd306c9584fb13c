package mocks

import (
	"context"

	"github.com/user/vcompress/pkg/ports"
)

// AudioTool is a mock implementation of ports.AudioTool.
type AudioTool struct {
	ExtractFunc func(ctx context.Context, inputVideo, outputAudio string) error
	MuxFunc     func(ctx context.Context, videoFile, audioFile, outputFile string) error

	// Recorded calls for verification
	ExtractCalled bool
	MuxCalled     bool
}

// Extract records the call.
func (m *AudioTool) Extract(ctx context.Context, inputVideo, outputAudio string) error {
	m.ExtractCalled = true
	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, inputVideo, outputAudio)
	}
	return nil
}

// Mux records the call.
func (m *AudioTool) Mux(ctx context.Context, videoFile, audioFile, outputFile string) error {
	m.MuxCalled = true
	if m.MuxFunc != nil {
		return m.MuxFunc(ctx, videoFile, audioFile, outputFile)
	}
	return nil
}

var _ ports.AudioTool = (*AudioTool)(nil)

// FileSystem is a mock implementation of ports.FileSystem backed by a map.
type FileSystem struct {
	Files map[string][]byte
}

// NewFileSystem creates an empty in-memory filesystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{Files: make(map[string][]byte)}
}

// ReadFile returns the stored content.
func (m *FileSystem) ReadFile(path string) ([]byte, error) {
	data, ok := m.Files[path]
	if !ok {
		return nil, &fsError{path: path}
	}
	return data, nil
}

// WriteFile stores content in memory.
func (m *FileSystem) WriteFile(path string, data []byte) error {
	m.Files[path] = append([]byte(nil), data...)
	return nil
}

// MkdirAll does nothing.
func (m *FileSystem) MkdirAll(path string) error { return nil }

// Exists reports whether the path was written.
func (m *FileSystem) Exists(path string) (bool, error) {
	_, ok := m.Files[path]
	return ok, nil
}

// Remove deletes a stored file.
func (m *FileSystem) Remove(path string) error {
	delete(m.Files, path)
	return nil
}

type fsError struct{ path string }

func (e *fsError) Error() string { return "mock fs: " + e.path + " not found" }

var _ ports.FileSystem = (*FileSystem)(nil)
