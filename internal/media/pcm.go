package media

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"
)

// pcmBlockFrames is the packet size of containers whose library decodes
// straight to PCM.
const pcmBlockFrames = 1024

const pcmTrackID = 1

// beepFormat exposes a beep decoder (WAV, FLAC) as a single-track container
// of f32le packets. Packet data is reused by the next call to NextPacket.
type beepFormat struct {
	name   string
	stream beep.StreamSeekCloser
	track  Track
	block  [][2]float64
	data   []byte
}

func openWAV(data []byte) (FormatReader, error) {
	stream, format, err := wav.Decode(newMemSource(data))
	if err != nil {
		return nil, err
	}
	return newBeepFormat("wav", "pcm", stream, format), nil
}

func openFLAC(data []byte) (FormatReader, error) {
	stream, format, err := flac.Decode(newMemSource(data))
	if err != nil {
		return nil, err
	}
	return newBeepFormat("flac", "flac", stream, format), nil
}

func newBeepFormat(name, source string, stream beep.StreamSeekCloser, format beep.Format) *beepFormat {
	sampleRate := int(format.SampleRate)
	channels := min(max(format.NumChannels, 1), 2)

	tb := NewTimeBase(sampleRate)
	params := CodecParams{
		Codec:      CodecPCMF32LE,
		Source:     source,
		SampleRate: sampleRate,
		Channels:   channels,
		BitDepth:   format.Precision * 8,
		TimeBase:   &tb,
	}
	if n := stream.Len(); n > 0 {
		frames := uint64(n)
		params.NFrames = &frames
	}

	return &beepFormat{
		name:   name,
		stream: stream,
		track:  Track{ID: pcmTrackID, Params: params},
		block:  make([][2]float64, pcmBlockFrames),
		data:   make([]byte, 0, pcmBlockFrames*channels*4),
	}
}

func (f *beepFormat) Name() string { return f.name }

func (f *beepFormat) Tracks() []Track { return []Track{f.track} }

func (f *beepFormat) DefaultTrack() *Track { return &f.track }

func (f *beepFormat) NextPacket() (Packet, error) {
	pos := f.stream.Position()
	n, ok := f.stream.Stream(f.block)
	if !ok || n == 0 {
		if err := f.stream.Err(); err != nil {
			return Packet{}, err
		}
		return Packet{}, io.EOF
	}

	channels := f.track.Params.Channels
	f.data = f.data[:0]
	for _, frame := range f.block[:n] {
		for c := range channels {
			f.data = binary.LittleEndian.AppendUint32(f.data, math.Float32bits(float32(frame[c])))
		}
	}

	return Packet{TrackID: pcmTrackID, TS: uint64(pos), Data: f.data}, nil //nolint:gosec // positions are non-negative
}

func (f *beepFormat) Seek(_ SeekMode, to Time, trackID uint32) (SeekedTo, error) {
	if trackID != pcmTrackID {
		return SeekedTo{}, errTrackNotFound
	}
	required := f.track.Params.TimeBase.CalcTimestamp(to)
	target := min(int(required), f.stream.Len()) //nolint:gosec // bounded by Len
	if err := f.stream.Seek(target); err != nil {
		return SeekedTo{}, err
	}
	return SeekedTo{
		TrackID:    trackID,
		ActualTS:   uint64(f.stream.Position()), //nolint:gosec // positions are non-negative
		RequiredTS: required,
	}, nil
}

func (f *beepFormat) Close() error { return f.stream.Close() }

// pcmDecoder converts raw little-endian PCM packets to float32.
type pcmDecoder struct {
	params CodecParams
}

func (d *pcmDecoder) CodecParams() CodecParams { return d.params }

func (d *pcmDecoder) Decode(pkt Packet, buf *AudioBuffer) error {
	switch d.params.Codec {
	case CodecPCMS16LE:
		decodeS16LE(pkt.Data, buf)
	default:
		decodeF32LE(pkt.Data, buf)
	}
	buf.Channels = d.params.Channels
	return nil
}

func (d *pcmDecoder) Reset() {}

func (d *pcmDecoder) Close() error { return nil }

func decodeS16LE(data []byte, buf *AudioBuffer) {
	n := len(data) / 2
	out := buf.Resize(n)
	for i := range n {
		s := int16(binary.LittleEndian.Uint16(data[i*2:])) //nolint:gosec // audio samples
		out[i] = float32(s) / 32768.0
	}
}

func decodeF32LE(data []byte, buf *AudioBuffer) {
	n := len(data) / 4
	out := buf.Resize(n)
	for i := range n {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
}
