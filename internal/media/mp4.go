package media

import (
	"errors"
	"io"
	"time"

	"github.com/llehouerou/go-m4a"
)

const mp4TrackID = 1

// mp4Format reads the audio track of an MP4/M4A container through go-m4a.
// Each container sample is one packet.
type mp4Format struct {
	container  *m4a.Reader
	track      Track
	sampleRate int
	idx        int
}

func openMP4(data []byte) (FormatReader, error) {
	container, err := m4a.Open(newMemSource(data))
	if err != nil {
		return nil, err
	}

	sampleRate := int(container.SampleRate())
	if sampleRate == 0 {
		return nil, errors.New("mp4: invalid sample rate")
	}

	params := CodecParams{
		SampleRate: sampleRate,
		Channels:   int(container.Channels()),
		BitDepth:   int(container.SampleSize()),
	}
	switch container.Codec() {
	case m4a.CodecAAC:
		params.Codec = CodecAAC
		params.Headers = [][]byte{container.CodecConfig()}
	case m4a.CodecALAC:
		params.Codec = CodecALAC
	case m4a.CodecUnknown:
		params.Codec = CodecUnknown
	}

	tb := NewTimeBase(sampleRate)
	params.TimeBase = &tb
	if d := container.Duration(); d > 0 {
		frames := uint64(d) * uint64(sampleRate) / uint64(time.Second) //nolint:gosec // positive
		params.NFrames = &frames
	}

	return &mp4Format{
		container:  container,
		track:      Track{ID: mp4TrackID, Params: params},
		sampleRate: sampleRate,
	}, nil
}

func (f *mp4Format) Name() string { return "mp4" }

func (f *mp4Format) Tracks() []Track { return []Track{f.track} }

func (f *mp4Format) DefaultTrack() *Track {
	if f.track.Params.Codec == CodecUnknown {
		return nil
	}
	return &f.track
}

func (f *mp4Format) NextPacket() (Packet, error) {
	if f.idx >= f.container.SampleCount() {
		return Packet{}, io.EOF
	}
	data, err := f.container.ReadSample(f.idx)
	if err != nil {
		return Packet{}, err
	}
	ts := f.timestamp(f.container.SampleTime(f.idx))
	f.idx++
	return Packet{TrackID: mp4TrackID, TS: ts, Data: data}, nil
}

// Seek moves to the container sample covering the target time.
func (f *mp4Format) Seek(_ SeekMode, to Time, trackID uint32) (SeekedTo, error) {
	if trackID != mp4TrackID {
		return SeekedTo{}, errTrackNotFound
	}
	target := time.Duration(to.Float() * float64(time.Second))
	f.idx = f.container.SeekToTime(target)
	return SeekedTo{
		TrackID:    trackID,
		ActualTS:   f.timestamp(f.container.SampleTime(f.idx)),
		RequiredTS: f.track.Params.TimeBase.CalcTimestamp(to),
	}, nil
}

func (f *mp4Format) timestamp(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64(d) * uint64(f.sampleRate) / uint64(time.Second) //nolint:gosec // positive
}

func (f *mp4Format) Close() error { return nil }
