// Package media probes in-memory audio payloads, demultiplexes them into
// packets and decodes those packets into interleaved float32 PCM.
package media

import (
	"fmt"
	"math"
)

// CodecType identifies the codec a track is encoded with.
type CodecType int

const (
	CodecUnknown CodecType = iota
	CodecOpus
	CodecVorbis
	CodecAAC
	CodecALAC
	CodecPCMS16LE
	CodecPCMF32LE
)

// String returns the codec name.
func (c CodecType) String() string {
	switch c {
	case CodecOpus:
		return "opus"
	case CodecVorbis:
		return "vorbis"
	case CodecAAC:
		return "aac"
	case CodecALAC:
		return "alac"
	case CodecPCMS16LE:
		return "pcm_s16le"
	case CodecPCMF32LE:
		return "pcm_f32le"
	case CodecUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// Time is a point or span of time split into whole seconds and a fractional
// remainder in [0, 1).
type Time struct {
	Seconds uint64
	Frac    float64
}

// Float returns the time in seconds.
func (t Time) Float() float64 {
	return float64(t.Seconds) + t.Frac
}

// TimeBase converts timestamps to time: one tick lasts Numer/Denom seconds.
type TimeBase struct {
	Numer uint32
	Denom uint32
}

// NewTimeBase returns the time base of a stream counted in frames at the
// given sample rate.
func NewTimeBase(sampleRate int) TimeBase {
	return TimeBase{Numer: 1, Denom: uint32(sampleRate)} //nolint:gosec // sample rates are small
}

// CalcTime converts a timestamp to a Time.
func (tb TimeBase) CalcTime(ts uint64) Time {
	if tb.Denom == 0 {
		return Time{}
	}
	n := ts * uint64(tb.Numer)
	d := uint64(tb.Denom)
	return Time{
		Seconds: n / d,
		Frac:    float64(n%d) / float64(d),
	}
}

// CalcTimestamp converts a Time to the nearest timestamp at or before it.
func (tb TimeBase) CalcTimestamp(t Time) uint64 {
	if tb.Numer == 0 {
		return 0
	}
	d := uint64(tb.Denom)
	n := uint64(tb.Numer)
	whole := t.Seconds * d / n
	frac := uint64(math.Floor(t.Frac * float64(d) / float64(n)))
	return whole + frac
}

// CodecParams describes how a track is encoded.
//
// TimeBase and NFrames are pointers: containers that cannot determine them
// leave them nil and negotiation fails rather than guessing.
type CodecParams struct {
	Codec      CodecType
	SampleRate int
	Channels   int
	BitDepth   int
	TimeBase   *TimeBase
	NFrames    *uint64
	// Headers holds codec setup data: Ogg header packets, or the MP4
	// decoder configuration as a single entry.
	Headers [][]byte
	// Delay is the number of leading frames the decoder must discard
	// (Opus pre-skip).
	Delay int
	// Source names the file encoding when the container library hands out
	// already decoded PCM (mp3, flac). Empty when Codec is the encoding.
	Source string
}

// CodecName names the encoding of the track as stored in the file.
func (p CodecParams) CodecName() string {
	if p.Source != "" {
		return p.Source
	}
	return p.Codec.String()
}

// Track is one encoded audio stream within a container.
type Track struct {
	ID     uint32
	Params CodecParams
}

// Packet is one demuxed, still-encoded unit of data of a track.
type Packet struct {
	TrackID uint32
	// TS is the timestamp of the first frame, in track time base units.
	TS   uint64
	Data []byte
}

// SeekMode selects seek precision.
type SeekMode int

const (
	// SeekCoarse lands at a convenient point at or before the target.
	SeekCoarse SeekMode = iota
	// SeekAccurate lands as close to the target as the container allows.
	SeekAccurate
)

// SeekedTo reports where a seek actually landed.
type SeekedTo struct {
	TrackID  uint32
	ActualTS uint64
	// RequiredTS is the target timestamp.
	RequiredTS uint64
}

// FormatReader demultiplexes a container into packets.
type FormatReader interface {
	// Name returns the container name, e.g. "ogg".
	Name() string
	Tracks() []Track
	// DefaultTrack returns the first playable track, or nil.
	DefaultTrack() *Track
	// NextPacket returns the next packet. io.EOF ends the stream.
	NextPacket() (Packet, error)
	Seek(mode SeekMode, to Time, trackID uint32) (SeekedTo, error)
	Close() error
}

// Decoder turns packets of one track into interleaved float32 PCM.
type Decoder interface {
	CodecParams() CodecParams
	// Decode decodes a packet into buf, reusing its storage.
	Decode(pkt Packet, buf *AudioBuffer) error
	// Reset clears state carried between packets, e.g. after a seek.
	Reset()
	Close() error
}

// AudioBuffer holds decoded interleaved samples.
type AudioBuffer struct {
	Channels int
	Samples  []float32
}

// Frames returns the number of frames held.
func (b *AudioBuffer) Frames() int {
	if b.Channels == 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Resize makes room for n samples, reusing storage when possible.
func (b *AudioBuffer) Resize(n int) []float32 {
	if cap(b.Samples) < n {
		b.Samples = make([]float32, n)
	}
	b.Samples = b.Samples[:n]
	return b.Samples
}

// FormatClock formats whole seconds as mm:ss.
func FormatClock(seconds uint64) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
