package media

import (
	"context"
	"errors"

	"github.com/llehouerou/alac"
	"github.com/llehouerou/go-faad2"
)

// alacFrameSize is the ALAC default frames per packet.
const alacFrameSize = 4096

// aacDecoder wraps go-faad2, initialised with the MP4 decoder config.
type aacDecoder struct {
	params  CodecParams
	decoder *faad2.Decoder
}

func newAACDecoder(params CodecParams) (*aacDecoder, error) {
	if len(params.Headers) == 0 {
		return nil, errors.New("aac: missing decoder configuration")
	}
	ctx := context.Background()
	decoder, err := faad2.NewDecoder(ctx)
	if err != nil {
		return nil, err
	}
	if err := decoder.Init(ctx, params.Headers[0]); err != nil {
		decoder.Close(ctx)
		return nil, err
	}
	return &aacDecoder{params: params, decoder: decoder}, nil
}

func (d *aacDecoder) CodecParams() CodecParams { return d.params }

func (d *aacDecoder) Decode(pkt Packet, buf *AudioBuffer) error {
	pcm, err := d.decoder.Decode(context.Background(), pkt.Data)
	if err != nil {
		buf.Samples = buf.Samples[:0]
		return err
	}
	out := buf.Resize(len(pcm))
	for i, s := range pcm {
		out[i] = float32(s) / 32768.0
	}
	buf.Channels = d.params.Channels
	return nil
}

func (d *aacDecoder) Reset() {}

func (d *aacDecoder) Close() error {
	d.decoder.Close(context.Background())
	return nil
}

// alacDecoder wraps llehouerou/alac. Output is 16 or 24-bit little-endian.
type alacDecoder struct {
	params  CodecParams
	decoder *alac.Alac
}

func newALACDecoder(params CodecParams) (*alacDecoder, error) {
	decoder, err := alac.NewWithConfig(alac.Config{
		SampleRate:  params.SampleRate,
		SampleSize:  params.BitDepth,
		NumChannels: params.Channels,
		FrameSize:   alacFrameSize,
	})
	if err != nil {
		return nil, err
	}
	return &alacDecoder{params: params, decoder: decoder}, nil
}

func (d *alacDecoder) CodecParams() CodecParams { return d.params }

func (d *alacDecoder) Decode(pkt Packet, buf *AudioBuffer) error {
	raw := d.decoder.Decode(pkt.Data)
	if d.params.BitDepth == 24 {
		decodeS24LE(raw, buf)
	} else {
		decodeS16LE(raw, buf)
	}
	buf.Channels = d.params.Channels
	return nil
}

func (d *alacDecoder) Reset() {}

func (d *alacDecoder) Close() error { return nil }

func decodeS24LE(data []byte, buf *AudioBuffer) {
	n := len(data) / 3
	out := buf.Resize(n)
	for i := range n {
		off := i * 3
		v := int32(data[off]) | int32(data[off+1])<<8 | int32(data[off+2])<<16
		if v&0x800000 != 0 {
			v |= ^0xFFFFFF // sign extend
		}
		out[i] = float32(v) / 8388608.0 // 2^23
	}
}
