package codec

import (
	"fmt"
	"strings"
	"time"
)

// RunningStats accumulates per-instance codec counters. It is not
// internally synchronized; like the codec that owns it, it belongs to a
// single caller.
type RunningStats struct {
	FramesCompressed   int
	FramesDecompressed int
	// AverageCompressionRatio is the unweighted mean of each frame's
	// original-bytes/compressed-bytes since the last reset.
	AverageCompressionRatio float64
	TotalCompressionTime    time.Duration
	TotalDecompressionTime  time.Duration
}

// RecordCompress folds one compression into the counters, keeping the
// incremental mean of the compression ratio.
func (s *RunningStats) RecordCompress(ratio float64, elapsed time.Duration) {
	s.FramesCompressed++
	n := float64(s.FramesCompressed)
	s.AverageCompressionRatio += (ratio - s.AverageCompressionRatio) / n
	s.TotalCompressionTime += elapsed
}

// RecordDecompress folds one decompression into the counters.
func (s *RunningStats) RecordDecompress(elapsed time.Duration) {
	s.FramesDecompressed++
	s.TotalDecompressionTime += elapsed
}

// Reset zeroes all counters.
func (s *RunningStats) Reset() {
	*s = RunningStats{}
}

// Snapshot renders a human-readable statistics block for the named
// algorithm. Average times report 0 when no frames were processed.
func (s *RunningStats) Snapshot(name string, factor int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s algorithm statistics:\n", name)
	fmt.Fprintf(&b, "  Resample factor: %d\n", factor)
	fmt.Fprintf(&b, "  Frames compressed: %d\n", s.FramesCompressed)
	fmt.Fprintf(&b, "  Frames decompressed: %d\n", s.FramesDecompressed)
	fmt.Fprintf(&b, "  Average compression ratio: %.2f:1\n", s.AverageCompressionRatio)

	avgCompress := 0.0
	if s.FramesCompressed > 0 {
		avgCompress = float64(s.TotalCompressionTime.Microseconds()) / 1000.0 / float64(s.FramesCompressed)
	}
	fmt.Fprintf(&b, "  Average compression time: %.3f ms\n", avgCompress)

	avgDecompress := 0.0
	if s.FramesDecompressed > 0 {
		avgDecompress = float64(s.TotalDecompressionTime.Microseconds()) / 1000.0 / float64(s.FramesDecompressed)
	}
	fmt.Fprintf(&b, "  Average decompression time: %.3f ms\n", avgDecompress)

	return b.String()
}
