package media

import (
	"errors"
	"fmt"
)

var (
	// ErrProbe reports an undetectable container format.
	ErrProbe = errors.New("probing format failed")
	// ErrNoPlayableTrack reports a container without a decodable track.
	ErrNoPlayableTrack = errors.New("no playable track")
	// ErrDecoderInit reports an unsupported codec or missing codec metadata.
	ErrDecoderInit = errors.New("decoder initialization failed")
)

var (
	errUnsupportedCodec = errors.New("unsupported codec")
	errMissingTimeBase  = errors.New("missing time base")
	errMissingNFrames   = errors.New("missing frame count")
	errTrackNotFound    = errors.New("track not found")
)

func probeError(cause error) error {
	return fmt.Errorf("%w: %w", ErrProbe, cause)
}

func decoderInitError(cause error) error {
	return fmt.Errorf("%w: %w", ErrDecoderInit, cause)
}
