package media

import (
	"errors"

	"github.com/jfreymuth/vorbis"
	"github.com/jj11hh/opus"
)

// opusMaxFrames is the largest Opus packet: 120ms at 48kHz.
const opusMaxFrames = 5760

var errVorbisHeaders = errors.New("vorbis: incomplete headers")

// opusDecoder wraps jj11hh/opus. All Opus modes (SILK, CELT, Hybrid) decode
// to 48kHz.
type opusDecoder struct {
	params  CodecParams
	decoder *opus.Decoder
	skip    int // pre-skip frames still to discard
}

func newOpusDecoder(params CodecParams) (*opusDecoder, error) {
	if params.Channels < 1 || params.Channels > 2 {
		return nil, errors.New("opus: only mono and stereo streams are supported")
	}
	decoder, err := opus.NewDecoder(opusSampleRate, params.Channels)
	if err != nil {
		return nil, err
	}
	return &opusDecoder{
		params:  params,
		decoder: decoder,
		skip:    params.Delay,
	}, nil
}

func (d *opusDecoder) CodecParams() CodecParams { return d.params }

func (d *opusDecoder) Decode(pkt Packet, buf *AudioBuffer) error {
	channels := d.params.Channels
	pcm := buf.Resize(opusMaxFrames * channels)

	frames, err := d.decoder.DecodeFloat32(pkt.Data, pcm)
	if err != nil {
		buf.Samples = buf.Samples[:0]
		return err
	}
	pcm = pcm[:frames*channels]

	pcm = pcm[d.leading(pkt.TS, frames)*channels:]

	buf.Channels = channels
	buf.Samples = pcm
	return nil
}

// leading returns how many of the frames decoded from the packet at ts fall
// in the pre-skip. Pre-skip packets are the ones at timestamp zero; the
// first packet past it disarms the skip.
func (d *opusDecoder) leading(ts uint64, frames int) int {
	if d.skip == 0 {
		return 0
	}
	if ts != 0 {
		d.skip = 0
		return 0
	}
	drop := min(d.skip, frames)
	d.skip -= drop
	return drop
}

// Reset re-arms the pre-skip. The decoder itself recovers from
// discontinuities; the skip only applies if decoding restarts at the
// beginning of the stream.
func (d *opusDecoder) Reset() { d.skip = d.params.Delay }

func (d *opusDecoder) Close() error { return nil }

// vorbisDecoder wraps jfreymuth/vorbis, initialised from the three header
// packets collected by the Ogg reader.
type vorbisDecoder struct {
	params  CodecParams
	decoder *vorbis.Decoder
}

func newVorbisDecoder(params CodecParams) (*vorbisDecoder, error) {
	if len(params.Headers) < 3 {
		return nil, errVorbisHeaders
	}
	decoder := &vorbis.Decoder{}
	for _, hdr := range params.Headers[:3] {
		if err := decoder.ReadHeader(hdr); err != nil {
			return nil, err
		}
	}
	return &vorbisDecoder{params: params, decoder: decoder}, nil
}

func (d *vorbisDecoder) CodecParams() CodecParams { return d.params }

func (d *vorbisDecoder) Decode(pkt Packet, buf *AudioBuffer) error {
	samples, err := d.decoder.Decode(pkt.Data)
	if err != nil {
		buf.Samples = buf.Samples[:0]
		return err
	}
	// The decoder reuses its output between calls.
	out := buf.Resize(len(samples))
	copy(out, samples)
	buf.Channels = d.params.Channels
	return nil
}

func (d *vorbisDecoder) Reset() { d.decoder.Clear() }

func (d *vorbisDecoder) Close() error { return nil }
