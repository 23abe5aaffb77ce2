package media

import (
	"errors"
	"fmt"
)

var errInvalidChannels = errors.New("invalid channel count")

// Negotiated is the outcome of codec negotiation for the default track.
type Negotiated struct {
	TrackID    uint32
	Decoder    Decoder
	TimeBase   TimeBase
	Duration   Time
	Display    string
	SampleRate int
	Channels   int
}

// Negotiate builds a decoder for the default track of reader and computes
// the track duration. A missing time base or frame count is an
// ErrDecoderInit failure.
func Negotiate(reader FormatReader) (*Negotiated, error) {
	track := reader.DefaultTrack()
	if track == nil {
		return nil, ErrNoPlayableTrack
	}
	params := track.Params

	decoder, err := NewDecoder(params)
	if err != nil {
		return nil, decoderInitError(err)
	}

	if params.TimeBase == nil {
		_ = decoder.Close()
		return nil, decoderInitError(errMissingTimeBase)
	}
	if params.NFrames == nil {
		_ = decoder.Close()
		return nil, decoderInitError(errMissingNFrames)
	}

	duration := params.TimeBase.CalcTime(*params.NFrames)
	return &Negotiated{
		TrackID:    track.ID,
		Decoder:    decoder,
		TimeBase:   *params.TimeBase,
		Duration:   duration,
		Display:    FormatClock(duration.Seconds),
		SampleRate: params.SampleRate,
		Channels:   params.Channels,
	}, nil
}

// NewDecoder instantiates the decoder matching params.Codec.
func NewDecoder(params CodecParams) (Decoder, error) {
	if params.Channels < 1 {
		return nil, errInvalidChannels
	}
	switch params.Codec {
	case CodecOpus:
		return newOpusDecoder(params)
	case CodecVorbis:
		return newVorbisDecoder(params)
	case CodecAAC:
		return newAACDecoder(params)
	case CodecALAC:
		return newALACDecoder(params)
	case CodecPCMS16LE, CodecPCMF32LE:
		return &pcmDecoder{params: params}, nil
	case CodecUnknown:
	}
	return nil, fmt.Errorf("%w: %s", errUnsupportedCodec, params.Codec)
}

// Open probes data and negotiates its default track. The reader is closed
// when negotiation fails.
func Open(data []byte) (FormatReader, *Negotiated, error) {
	reader, err := Probe(data)
	if err != nil {
		return nil, nil, err
	}
	negotiated, err := Negotiate(reader)
	if err != nil {
		_ = reader.Close()
		return nil, nil, err
	}
	return reader, negotiated, nil
}
