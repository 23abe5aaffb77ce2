package mediatest

import (
	"bytes"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
)

// flacBlockSize is the number of frames per FLAC audio frame written by FLAC.
const flacBlockSize = 4096

// FLAC encodes a 16-bit mono FLAC stream with verbatim subframes.
//
//nolint:gosec // sizes of test fixtures fit the header fields
func FLAC(sampleRate, frames int, sample Sample) []byte {
	var buf bytes.Buffer
	info := &meta.StreamInfo{
		BlockSizeMin:  flacBlockSize,
		BlockSizeMax:  flacBlockSize,
		SampleRate:    uint32(sampleRate),
		NChannels:     1,
		BitsPerSample: 16,
		NSamples:      uint64(frames),
	}
	enc, err := flac.NewEncoder(&buf, info)
	if err != nil {
		panic(err)
	}

	for start := 0; start < frames; start += flacBlockSize {
		n := min(flacBlockSize, frames-start)
		samples := make([]int32, n)
		for i := range samples {
			samples[i] = int32(sample(start+i, 0))
		}
		f := &frame.Frame{
			Header: frame.Header{
				HasFixedBlockSize: true,
				BlockSize:         uint16(n),
				SampleRate:        uint32(sampleRate),
				Channels:          frame.ChannelsMono,
				BitsPerSample:     16,
			},
			Subframes: []*frame.Subframe{{
				SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
				Samples:   samples,
				NSamples:  n,
			}},
		}
		if err := enc.WriteFrame(f); err != nil {
			panic(err)
		}
	}
	if err := enc.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
