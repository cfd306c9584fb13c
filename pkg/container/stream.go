// Package container implements the on-disk compressed-stream format: a
// fixed 14-byte header followed by length-prefixed frame records.
//
// Layout, little-endian:
//
//	header  [0:4)  original width   (int32)
//	        [4:8)  original height  (int32)
//	        [8:12) fps*1000 rounded (int32)
//	        [12:14) algorithm id    (uint16)
//	record  [0]    type flag, 0=key 1=delta
//	        [1:5)  payload length N (uint32)
//	        [5:5+N) payload
//
// There is no index and no checksum; sequential scan is the only access
// pattern, and a failed mid-record write corrupts the stream from that
// point on.
package container

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

const (
	// HeaderSize is the fixed size of the stream header in bytes.
	HeaderSize = 14
	// recordHeaderSize covers the type flag and the payload length.
	recordHeaderSize = 5

	frameTypeKey   = 0
	frameTypeDelta = 1
)

var (
	// ErrNotOpen is returned by frame operations on a closed stream.
	ErrNotOpen = errors.New("container: stream not open")

	// ErrWrongMode is returned when writing to a read-mode stream or
	// reading from a write-mode stream.
	ErrWrongMode = errors.New("container: operation not valid in this mode")

	// ErrTruncatedStream is returned when a record header or payload ends
	// before its declared length. Unlike a clean end of stream (io.EOF), it
	// indicates the file was cut mid-record.
	ErrTruncatedStream = errors.New("container: truncated record")
)

// Stream owns exactly one open file handle in either write mode or read
// mode. Instances are not internally synchronized; Close is idempotent.
type Stream struct {
	file      *os.File
	writeMode bool

	width       int
	height      int
	fps         float64
	algorithmID uint16
}

// OpenForWriting creates (truncating) a stream file and immediately writes
// the header. The fps is stored as round(fps*1000).
func OpenForWriting(path string, width, height int, fps float64, algorithmID uint16) (*Stream, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("container: create %s: %w", path, err)
	}

	s := &Stream{
		file:        file,
		writeMode:   true,
		width:       width,
		height:      height,
		fps:         fps,
		algorithmID: algorithmID,
	}

	var header [HeaderSize]byte
	binary.LittleEndian.PutUint32(header[0:4], uint32(width))
	binary.LittleEndian.PutUint32(header[4:8], uint32(height))
	binary.LittleEndian.PutUint32(header[8:12], uint32(int32(math.Round(fps*1000))))
	binary.LittleEndian.PutUint16(header[12:14], algorithmID)

	if _, err := file.Write(header[:]); err != nil {
		file.Close()
		return nil, fmt.Errorf("container: write header: %w", err)
	}

	return s, nil
}

// OpenForReading opens a stream file and eagerly decodes the header.
func OpenForReading(path string) (*Stream, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("container: open %s: %w", path, err)
	}

	var header [HeaderSize]byte
	if _, err := io.ReadFull(file, header[:]); err != nil {
		file.Close()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("container: %s: %w", path, ErrTruncatedStream)
		}
		return nil, fmt.Errorf("container: read header: %w", err)
	}

	s := &Stream{
		file:        file,
		writeMode:   false,
		width:       int(int32(binary.LittleEndian.Uint32(header[0:4]))),
		height:      int(int32(binary.LittleEndian.Uint32(header[4:8]))),
		fps:         float64(int32(binary.LittleEndian.Uint32(header[8:12]))) / 1000.0,
		algorithmID: binary.LittleEndian.Uint16(header[12:14]),
	}

	return s, nil
}

// WriteFrame appends one record. There is no partial-record recovery: if
// the underlying write fails mid-record, the stream is corrupt from that
// point on.
func (s *Stream) WriteFrame(payload []byte, isKeyFrame bool) error {
	if s.file == nil {
		return ErrNotOpen
	}
	if !s.writeMode {
		return ErrWrongMode
	}

	record := make([]byte, recordHeaderSize+len(payload))
	if isKeyFrame {
		record[0] = frameTypeKey
	} else {
		record[0] = frameTypeDelta
	}
	binary.LittleEndian.PutUint32(record[1:5], uint32(len(payload)))
	copy(record[recordHeaderSize:], payload)

	if _, err := s.file.Write(record); err != nil {
		return fmt.Errorf("container: write frame: %w", err)
	}

	return nil
}

// ReadFrame reads the next record. A clean end of stream returns io.EOF;
// a record cut short returns ErrTruncatedStream. Calls after the end keep
// returning io.EOF.
func (s *Stream) ReadFrame() (payload []byte, isKeyFrame bool, err error) {
	if s.file == nil {
		return nil, false, ErrNotOpen
	}
	if s.writeMode {
		return nil, false, ErrWrongMode
	}

	var header [recordHeaderSize]byte
	n, err := io.ReadFull(s.file, header[:])
	if err != nil {
		if errors.Is(err, io.EOF) && n == 0 {
			return nil, false, io.EOF
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, false, ErrTruncatedStream
		}
		return nil, false, fmt.Errorf("container: read record header: %w", err)
	}

	isKeyFrame = header[0] == frameTypeKey
	length := binary.LittleEndian.Uint32(header[1:5])

	payload = make([]byte, length)
	if _, err := io.ReadFull(s.file, payload); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, false, ErrTruncatedStream
		}
		return nil, false, fmt.Errorf("container: read payload: %w", err)
	}

	return payload, isKeyFrame, nil
}

// Close releases the file handle. It is safe to call on an unopened or
// already-closed stream.
func (s *Stream) Close() error {
	if s.file == nil {
		return nil
	}

	err := s.file.Close()
	s.file = nil
	if err != nil {
		return fmt.Errorf("container: close: %w", err)
	}

	return nil
}

// Width returns the original frame width from the header.
func (s *Stream) Width() int { return s.width }

// Height returns the original frame height from the header.
func (s *Stream) Height() int { return s.height }

// FPS returns the frame rate decoded from the header (stored value / 1000).
func (s *Stream) FPS() float64 { return s.fps }

// AlgorithmID returns the numeric codec id from the header. The mapping
// from algorithm name to id is an orchestrator convention, not part of the
// format.
func (s *Stream) AlgorithmID() uint16 { return s.algorithmID }
