// Package mp4probe reads frame geometry and timing out of an MP4 file's
// moov box, so a frame source knows the raw frame size before decoding
// begins.
package mp4probe

import (
	"errors"
	"fmt"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"
)

// ErrNoVideoTrack is returned when the file contains no video track.
var ErrNoVideoTrack = errors.New("mp4probe: no video track found")

// Info describes the video track of a probed file.
type Info struct {
	Width      int
	Height     int
	FPS        float64
	FrameCount int
	DurationMs int
}

// Probe opens an MP4 file and extracts video track metadata.
func Probe(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("mp4probe: open %s: %w", path, err)
	}
	defer f.Close()

	mp4File, err := mp4.DecodeFile(f)
	if err != nil {
		return Info{}, fmt.Errorf("mp4probe: decode mp4: %w", err)
	}

	moov := mp4File.Moov
	if moov == nil && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return Info{}, ErrNoVideoTrack
	}

	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}

		info := Info{
			// Tkhd stores presentation size as 16.16 fixed point.
			Width:  int(trak.Tkhd.Width >> 16),
			Height: int(trak.Tkhd.Height >> 16),
		}

		var timescale uint32 = 1000
		var duration uint64
		if trak.Mdia.Mdhd != nil {
			timescale = trak.Mdia.Mdhd.Timescale
			duration = trak.Mdia.Mdhd.Duration
		}

		if trak.Mdia.Minf != nil && trak.Mdia.Minf.Stbl != nil && trak.Mdia.Minf.Stbl.Stsz != nil {
			info.FrameCount = int(trak.Mdia.Minf.Stbl.Stsz.SampleNumber)
		}

		if duration > 0 && timescale > 0 {
			seconds := float64(duration) / float64(timescale)
			info.DurationMs = int(seconds * 1000)
			if info.FrameCount > 0 {
				info.FPS = float64(info.FrameCount) / seconds
			}
		}
		if info.FPS == 0 {
			info.FPS = 30.0
		}

		if info.Width == 0 || info.Height == 0 {
			return Info{}, fmt.Errorf("mp4probe: video track has no dimensions")
		}

		return info, nil
	}

	return Info{}, ErrNoVideoTrack
}
