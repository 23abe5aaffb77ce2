package player

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/rpgmplay/internal/media"
	"github.com/llehouerou/rpgmplay/internal/media/mediatest"
)

// fakeReader serves a fixed list of packets.
type fakeReader struct {
	packets []media.Packet
	pos     int
	reads   int
	seeks   []media.Time
}

func (r *fakeReader) Name() string               { return "fake" }
func (r *fakeReader) Tracks() []media.Track      { return nil }
func (r *fakeReader) DefaultTrack() *media.Track { return nil }
func (r *fakeReader) Close() error               { return nil }

func (r *fakeReader) NextPacket() (media.Packet, error) {
	r.reads++
	if r.pos >= len(r.packets) {
		return media.Packet{}, io.EOF
	}
	pkt := r.packets[r.pos]
	r.pos++
	return pkt, nil
}

// Seek lands on the first packet at or after the target second.
func (r *fakeReader) Seek(_ media.SeekMode, to media.Time, trackID uint32) (media.SeekedTo, error) {
	r.seeks = append(r.seeks, to)
	r.pos = len(r.packets)
	for i, p := range r.packets {
		if p.TS >= to.Seconds {
			r.pos = i
			break
		}
	}
	return media.SeekedTo{TrackID: trackID, RequiredTS: to.Seconds}, nil
}

// fakeDecoder turns every byte of a packet into one sample of that value.
type fakeDecoder struct {
	resets int
	fail   bool
}

func (d *fakeDecoder) CodecParams() media.CodecParams { return media.CodecParams{} }
func (d *fakeDecoder) Close() error                   { return nil }
func (d *fakeDecoder) Reset()                         { d.resets++ }

func (d *fakeDecoder) Decode(pkt media.Packet, buf *media.AudioBuffer) error {
	if d.fail {
		return errors.New("corrupt packet")
	}
	out := buf.Resize(len(pkt.Data))
	for i, b := range pkt.Data {
		out[i] = float32(b)
	}
	buf.Channels = 1
	return nil
}

// One packet per second, with a time base of one tick per second.
func newTestCursor(packets ...media.Packet) (*cursor, *fakeReader, *fakeDecoder) {
	reader := &fakeReader{packets: packets}
	decoder := &fakeDecoder{}
	return &cursor{
		reader:    reader,
		decoder:   decoder,
		trackID:   1,
		timeBase:  media.TimeBase{Numer: 1, Denom: 1},
		channels:  1,
		state:     newStateFlag(Playing),
		seek:      newSeekSlot(),
		positions: newReporter(16),
	}, reader, decoder
}

func drain(ch <-chan uint64) []uint64 {
	var got []uint64
	for {
		select {
		case v := <-ch:
			got = append(got, v)
		default:
			return got
		}
	}
}

func TestCursor_FillsAcrossPackets(t *testing.T) {
	c, _, _ := newTestCursor(
		media.Packet{TrackID: 1, TS: 0, Data: []byte{1, 2, 3}},
		media.Packet{TrackID: 1, TS: 1, Data: []byte{4, 5, 6}},
	)

	out := []float32{9, 9, 9, 9}
	c.fill(out)
	assert.Equal(t, []float32{1, 2, 3, 4}, out)
	assert.Equal(t, []uint64{0, 1}, drain(c.positions.C()))

	out = []float32{9, 9, 9, 9}
	c.fill(out)
	assert.Equal(t, []float32{5, 6, 0, 0}, out, "exhaustion silences the tail")
	assert.Empty(t, drain(c.positions.C()))
}

func TestCursor_DedupsPositions(t *testing.T) {
	c, _, _ := newTestCursor(
		media.Packet{TrackID: 1, TS: 0, Data: []byte{1}},
		media.Packet{TrackID: 1, TS: 0, Data: []byte{1}},
		media.Packet{TrackID: 1, TS: 1, Data: []byte{1}},
		media.Packet{TrackID: 1, TS: 1, Data: []byte{1}},
		media.Packet{TrackID: 1, TS: 2, Data: []byte{1}},
	)

	c.fill(make([]float32, 5))
	assert.Equal(t, []uint64{0, 1, 2}, drain(c.positions.C()))
}

func TestCursor_PausedAndStoppedProduceSilence(t *testing.T) {
	for _, state := range []State{Paused, Stopped} {
		t.Run(state.String(), func(t *testing.T) {
			c, reader, _ := newTestCursor(media.Packet{TrackID: 1, Data: []byte{7, 7}})
			c.state.Store(state)
			c.seek.Request(3)

			out := []float32{9, 9}
			c.fill(out)
			assert.Equal(t, []float32{0, 0}, out)
			assert.Zero(t, reader.reads, "no decode work while %v", state)
			assert.True(t, c.seek.Pending(), "seek consumed while %v", state)
		})
	}
}

func TestCursor_SeekDiscardsBufferedSamples(t *testing.T) {
	c, reader, decoder := newTestCursor(
		media.Packet{TrackID: 1, TS: 0, Data: []byte{1, 1, 1, 1}},
		media.Packet{TrackID: 1, TS: 1, Data: []byte{2, 2, 2, 2}},
		media.Packet{TrackID: 1, TS: 2, Data: []byte{3, 3, 3, 3}},
	)

	out := make([]float32, 2)
	c.fill(out)
	assert.Equal(t, []float32{1, 1}, out)
	assert.Equal(t, []uint64{0}, drain(c.positions.C()))

	c.seek.Request(2)
	c.fill(out)
	assert.Equal(t, []float32{3, 3}, out, "samples buffered before the seek were played")
	assert.Equal(t, []uint64{2}, drain(c.positions.C()))
	assert.Equal(t, []media.Time{{Seconds: 2}}, reader.seeks)
	assert.Equal(t, 1, decoder.resets)
	assert.False(t, c.seek.Pending())
}

func TestCursor_SeekToReportedSecondReportsAgain(t *testing.T) {
	c, _, _ := newTestCursor(
		media.Packet{TrackID: 1, TS: 0, Data: []byte{1, 1}},
		media.Packet{TrackID: 1, TS: 1, Data: []byte{2, 2}},
	)

	c.fill(make([]float32, 1))
	assert.Equal(t, []uint64{0}, drain(c.positions.C()))

	c.seek.Request(0)
	c.fill(make([]float32, 1))
	assert.Equal(t, []uint64{0}, drain(c.positions.C()))
}

func TestCursor_ForeignTrackStopsFilling(t *testing.T) {
	c, _, _ := newTestCursor(
		media.Packet{TrackID: 1, TS: 0, Data: []byte{1}},
		media.Packet{TrackID: 2, TS: 0, Data: []byte{8, 8}},
		media.Packet{TrackID: 1, TS: 1, Data: []byte{2}},
	)

	out := []float32{9, 9, 9}
	c.fill(out)
	assert.Equal(t, []float32{1, 0, 0}, out)

	out = []float32{9, 9, 9}
	c.fill(out)
	assert.Equal(t, []float32{2, 0, 0}, out)
}

func TestCursor_DecodeErrorSilences(t *testing.T) {
	c, _, decoder := newTestCursor(media.Packet{TrackID: 1, Data: []byte{1, 2}})
	decoder.fail = true

	out := []float32{9, 9}
	c.fill(out)
	assert.Equal(t, []float32{0, 0}, out)
	assert.Empty(t, drain(c.positions.C()))
}

func TestCursor_MapsMonoToDeviceChannels(t *testing.T) {
	c, _, _ := newTestCursor(media.Packet{TrackID: 1, Data: []byte{1, 2, 3}})
	c.channels = 2

	out := make([]float32, 8)
	c.fill(out)
	assert.Equal(t, []float32{1, 1, 2, 2, 3, 3, 0, 0}, out)
}

func TestCursor_OddBlockLength(t *testing.T) {
	c, _, _ := newTestCursor(media.Packet{TrackID: 1, Data: []byte{1, 2, 3, 4}})
	c.channels = 2

	out := []float32{9, 9, 9}
	c.fill(out)
	assert.Equal(t, []float32{1, 1, 0}, out)
}

// secondDecoder decodes every packet of mediatest.OggOpus to 960 mono
// frames holding the second the packet belongs to.
type secondDecoder struct{ fakeDecoder }

func (d *secondDecoder) Decode(pkt media.Packet, buf *media.AudioBuffer) error {
	out := buf.Resize(960)
	for i := range out {
		out[i] = float32(pkt.Data[1])
	}
	buf.Channels = 1
	return nil
}

func newOpusCursor(t *testing.T, seconds int) *cursor {
	t.Helper()
	reader, n, err := media.Open(mediatest.OggOpus(seconds))
	require.NoError(t, err)
	t.Cleanup(func() { _ = reader.Close() })
	_ = n.Decoder.Close()

	return &cursor{
		reader:    reader,
		decoder:   &secondDecoder{},
		trackID:   n.TrackID,
		timeBase:  n.TimeBase,
		channels:  1,
		state:     newStateFlag(Playing),
		seek:      newSeekSlot(),
		positions: newReporter(16),
	}
}

func TestCursor_SeekDropsPrerollBeforeTarget(t *testing.T) {
	for _, second := range []uint64{1, 5, 9} {
		c := newOpusCursor(t, 10)
		c.seek.Request(second)

		out := make([]float32, 480)
		c.fill(out)
		got := drain(c.positions.C())
		if assert.NotEmpty(t, got) {
			assert.Equal(t, second, got[0], "first position after seeking to %ds", second)
		}
		assert.Equal(t, float32(second), out[0], "audio after seeking to %ds", second)
	}
}

func TestCursor_SeekTrimsInsidePacket(t *testing.T) {
	c, _, _ := newTestCursor(media.Packet{TrackID: 1, TS: 10, Data: []byte{1, 2, 3, 4, 5}})
	c.required = 12
	c.decoded = 10
	c.trimming = true

	out := []float32{9, 9, 9, 9}
	c.fill(out)
	assert.Equal(t, []float32{3, 4, 5, 0}, out)
	assert.Equal(t, []uint64{12}, drain(c.positions.C()))
}

func TestCursor_SeekTrimsPacketsSharingTimestamp(t *testing.T) {
	c, _, _ := newTestCursor(
		media.Packet{TrackID: 1, TS: 10, Data: []byte{1, 2}},
		media.Packet{TrackID: 1, TS: 10, Data: []byte{3, 4}},
		media.Packet{TrackID: 1, TS: 10, Data: []byte{5, 6}},
	)
	c.required = 13
	c.decoded = 10
	c.trimming = true

	out := []float32{9, 9, 9, 9}
	c.fill(out)
	assert.Equal(t, []float32{4, 5, 6, 0}, out)
	assert.Equal(t, []uint64{13}, drain(c.positions.C()))
}
