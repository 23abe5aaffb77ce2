// Package output abstracts the host audio subsystem: a Host exposes a
// default output Device which opens Streams driven by a real-time Callback.
package output

import (
	"errors"
	"fmt"
)

// Backend names accepted by NewHost.
const (
	BackendPortAudio = "portaudio"
	BackendSpeaker   = "speaker"
	BackendNull      = "null"
)

var (
	// ErrDeviceUnavailable reports a host without a usable output device.
	ErrDeviceUnavailable = errors.New("output device unavailable")
	// ErrStreamCreation reports a failure to open an output stream.
	ErrStreamCreation = errors.New("stream creation failed")
	// ErrStreamStart reports a failure to start an opened stream.
	ErrStreamStart = errors.New("stream start failed")

	errUnknownBackend = errors.New("unknown audio backend")
	errClosed         = errors.New("stream closed")
)

// Callback fills out with interleaved float32 samples. It runs on the audio
// thread and must not block.
type Callback func(out []float32)

// StreamConfig describes the sample layout of a stream.
type StreamConfig struct {
	Channels        int
	SampleRate      int
	FramesPerBuffer int
}

// Host is an audio subsystem.
type Host interface {
	Name() string
	DefaultOutputDevice() (Device, error)
	Close() error
}

// Device is an output device.
type Device interface {
	Name() string
	// DefaultConfig returns the device's preferred layout.
	DefaultConfig() StreamConfig
	OpenStream(cfg StreamConfig, cb Callback) (Stream, error)
}

// Stream is an opened output stream.
type Stream interface {
	Start() error
	// Close stops the stream. Once it returns no callback is running and
	// none will be invoked again. Closing twice is a no-op.
	Close() error
}

// NewHost creates the host for a backend name.
func NewHost(backend string) (Host, error) {
	switch backend {
	case BackendPortAudio, "":
		return NewPortAudioHost()
	case BackendSpeaker:
		return NewSpeakerHost(), nil
	case BackendNull:
		return NewNullHost(), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownBackend, backend)
	}
}

func deviceError(cause error) error {
	return fmt.Errorf("%w: %w", ErrDeviceUnavailable, cause)
}

func creationError(cause error) error {
	return fmt.Errorf("%w: %w", ErrStreamCreation, cause)
}

func startError(cause error) error {
	return fmt.Errorf("%w: %w", ErrStreamStart, cause)
}

// MapChannels copies interleaved frames from src (srcCh channels) into dst
// (dstCh channels). Mono is duplicated, missing channels repeat the last
// source channel and extra source channels are dropped. It returns the
// number of frames copied, bounded by both buffers.
func MapChannels(dst []float32, dstCh int, src []float32, srcCh int) int {
	if dstCh <= 0 || srcCh <= 0 {
		return 0
	}
	frames := min(len(dst)/dstCh, len(src)/srcCh)
	if dstCh == srcCh {
		copy(dst, src[:frames*srcCh])
		return frames
	}
	for f := range frames {
		in := src[f*srcCh : (f+1)*srcCh]
		out := dst[f*dstCh : (f+1)*dstCh]
		for c := range out {
			out[c] = in[min(c, srcCh-1)]
		}
	}
	return frames
}

// Silence zeroes buf.
func Silence(buf []float32) {
	clear(buf)
}
