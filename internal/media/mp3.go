package media

import (
	"errors"
	"io"

	"github.com/llehouerou/go-mp3"
)

const (
	// mp3FrameSamples is the number of frames in one MPEG-1 Layer III frame.
	mp3FrameSamples = 1152
	mp3TrackID      = 1
)

// mp3Format reads MP3 through go-mp3. The library decodes while reading, so
// packets are blocks of s16le stereo PCM. Packet data is reused by the next
// call to NextPacket.
type mp3Format struct {
	decoder *mp3.Decoder
	track   Track
	buf     []byte
}

func openMP3(data []byte) (FormatReader, error) {
	decoder, err := mp3.NewDecoder(newMemSource(data))
	if err != nil {
		return nil, err
	}

	sampleRate := decoder.SampleRate()
	if sampleRate == 0 {
		return nil, errors.New("mp3: invalid sample rate")
	}

	tb := NewTimeBase(sampleRate)
	params := CodecParams{
		Codec:      CodecPCMS16LE,
		Source:     "mp3",
		SampleRate: sampleRate,
		Channels:   2, // go-mp3 always outputs stereo
		BitDepth:   16,
		TimeBase:   &tb,
	}
	if count := decoder.SampleCount(); count > 0 {
		frames := uint64(count)
		params.NFrames = &frames
	}

	return &mp3Format{
		decoder: decoder,
		track:   Track{ID: mp3TrackID, Params: params},
		buf:     make([]byte, mp3FrameSamples*4),
	}, nil
}

func (f *mp3Format) Name() string { return "mp3" }

func (f *mp3Format) Tracks() []Track { return []Track{f.track} }

func (f *mp3Format) DefaultTrack() *Track { return &f.track }

func (f *mp3Format) NextPacket() (Packet, error) {
	pos := f.decoder.SamplePosition()
	n, err := io.ReadFull(f.decoder, f.buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return Packet{}, err
	}
	n -= n % 4
	if n == 0 {
		return Packet{}, io.EOF
	}
	return Packet{TrackID: mp3TrackID, TS: uint64(max(pos, 0)), Data: f.buf[:n]}, nil
}

func (f *mp3Format) Seek(_ SeekMode, to Time, trackID uint32) (SeekedTo, error) {
	if trackID != mp3TrackID {
		return SeekedTo{}, errTrackNotFound
	}
	required := f.track.Params.TimeBase.CalcTimestamp(to)
	target := int64(required) //nolint:gosec // timestamps fit in int64
	if f.track.Params.NFrames != nil {
		target = min(target, int64(*f.track.Params.NFrames)) //nolint:gosec // frame counts fit in int64
	}
	if err := f.decoder.SeekToSample(target); err != nil {
		return SeekedTo{}, err
	}
	return SeekedTo{
		TrackID:    trackID,
		ActualTS:   uint64(max(f.decoder.SamplePosition(), 0)),
		RequiredTS: required,
	}, nil
}

func (f *mp3Format) Close() error { return nil }
