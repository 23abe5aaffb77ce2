package media

import (
	"encoding/binary"
	"errors"
	"io"
)

const (
	opusSampleRate = 48000
	// opusPreroll is the 80ms of audio the Opus decoder needs to converge
	// after a seek.
	opusPreroll = 3840
)

var (
	errInvalidOpusHead     = errors.New("opus: invalid OpusHead")
	errUnsupportedOpus     = errors.New("opus: unsupported version")
	errInvalidVorbisHeader = errors.New("vorbis: invalid identification header")
)

// oggStream is the demuxing state of one logical bitstream.
type oggStream struct {
	track         Track
	headersNeeded int
	headerEnd     int // index of the page completing the last header packet
	seen          int // packets completed since the stream start
	partial       []byte
	nextTS        int64 // raw granule units
	delay         int64
}

func (s *oggStream) packetFrames(pkt []byte) int64 {
	if s.track.Params.Codec == CodecOpus {
		return int64(opusPacketFrames(pkt))
	}
	// Vorbis packet sizes depend on the setup header modes; packets take the
	// page start and are resynchronised on every granule.
	return 0
}

func (s *oggStream) outTS(raw int64) uint64 {
	ts := raw - s.delay
	if ts < 0 {
		return 0
	}
	return uint64(ts)
}

func (s *oggStream) rewind() {
	s.seen = 0
	s.partial = nil
	s.nextTS = 0
}

// oggFormat demultiplexes an in-memory Ogg file. Every logical bitstream is
// a track identified by its serial number.
type oggFormat struct {
	pages   []*oggPage
	streams map[uint32]*oggStream
	tracks  []Track

	pos     int
	queue   []Packet
	qpos    int
	scratch [][]byte
}

func openOgg(data []byte) (FormatReader, error) {
	pages, err := indexOggPages(data)
	if err != nil {
		return nil, err
	}

	f := &oggFormat{
		pages:   pages,
		streams: make(map[uint32]*oggStream),
	}

	for _, page := range pages {
		if !page.bos() {
			continue
		}
		if _, dup := f.streams[page.SerialNumber]; dup {
			continue
		}
		packets, _ := page.splitPackets(nil)
		if len(packets) == 0 {
			continue
		}
		s, err := newOggStream(page.SerialNumber, packets[0])
		if err != nil {
			return nil, err
		}
		f.streams[page.SerialNumber] = s
		f.tracks = append(f.tracks, s.track)
	}
	if len(f.streams) == 0 {
		return nil, errors.New("ogg: no logical bitstream")
	}

	f.collectHeaders()
	f.computeDurations()

	for _, s := range f.streams {
		s.rewind()
	}
	for i := range f.tracks {
		f.tracks[i] = f.streams[f.tracks[i].ID].track
	}

	return f, nil
}

// newOggStream detects the codec from the first packet of a bitstream.
func newOggStream(serial uint32, first []byte) (*oggStream, error) {
	s := &oggStream{track: Track{ID: serial}}

	switch {
	case len(first) >= 8 && string(first[:8]) == "OpusHead":
		if len(first) < 19 {
			return nil, errInvalidOpusHead
		}
		if first[8] != 1 {
			return nil, errUnsupportedOpus
		}
		preSkip := int(binary.LittleEndian.Uint16(first[10:12]))
		tb := NewTimeBase(opusSampleRate)
		s.track.Params = CodecParams{
			Codec:      CodecOpus,
			SampleRate: opusSampleRate,
			Channels:   int(first[9]),
			TimeBase:   &tb,
			Delay:      preSkip,
		}
		s.delay = int64(preSkip)
		s.headersNeeded = 2 // OpusHead, OpusTags

	case len(first) >= 7 && first[0] == 0x01 && string(first[1:7]) == "vorbis":
		if len(first) < 30 || binary.LittleEndian.Uint32(first[7:11]) != 0 {
			return nil, errInvalidVorbisHeader
		}
		sampleRate := int(binary.LittleEndian.Uint32(first[12:16]))
		if sampleRate == 0 {
			return nil, errInvalidVorbisHeader
		}
		tb := NewTimeBase(sampleRate)
		s.track.Params = CodecParams{
			Codec:      CodecVorbis,
			SampleRate: sampleRate,
			Channels:   int(first[11]),
			TimeBase:   &tb,
		}
		s.headersNeeded = 3 // identification, comment, setup

	default:
		s.track.Params = CodecParams{Codec: CodecUnknown}
	}

	return s, nil
}

// collectHeaders walks the pages until every known stream has its header
// packets.
func (f *oggFormat) collectHeaders() {
	pending := 0
	for _, s := range f.streams {
		if s.headersNeeded > 0 {
			pending++
		}
	}

	for i, page := range f.pages {
		if pending == 0 {
			return
		}
		s, ok := f.streams[page.SerialNumber]
		if !ok || s.seen >= s.headersNeeded {
			continue
		}
		f.assemble(s, page, func(pkt []byte) {
			if s.seen >= s.headersNeeded {
				return
			}
			s.seen++
			s.track.Params.Headers = append(s.track.Params.Headers, append([]byte(nil), pkt...))
			if s.seen == s.headersNeeded {
				s.headerEnd = i
				pending--
			}
		})
	}
}

func (f *oggFormat) computeDurations() {
	for i := len(f.pages) - 1; i >= 0; i-- {
		page := f.pages[i]
		s, ok := f.streams[page.SerialNumber]
		if !ok || s.track.Params.NFrames != nil || !page.hasGranule() {
			continue
		}
		frames := s.outTS(page.GranulePos)
		s.track.Params.NFrames = &frames
	}
}

// assemble calls emit for every packet completed on page, joining packets
// that span pages. Continuations of packets whose start was never seen
// (after a seek) are dropped.
func (f *oggFormat) assemble(s *oggStream, page *oggPage, emit func([]byte)) {
	packets, partial := page.splitPackets(f.scratch[:0])
	f.scratch = packets[:0]

	first := 0
	if page.continued() {
		if len(packets) == 0 {
			if s.partial != nil {
				s.partial = append(s.partial, partial...)
			}
			return
		}
		if s.partial != nil {
			emit(append(s.partial, packets[0]...))
		}
		first = 1
	}
	s.partial = nil

	for _, pkt := range packets[first:] {
		emit(pkt)
	}
	if partial != nil {
		s.partial = append([]byte(nil), partial...)
	}
}

func (f *oggFormat) Name() string { return "ogg" }

func (f *oggFormat) Tracks() []Track { return f.tracks }

func (f *oggFormat) DefaultTrack() *Track {
	for i := range f.tracks {
		if f.tracks[i].Params.Codec != CodecUnknown {
			return &f.tracks[i]
		}
	}
	return nil
}

func (f *oggFormat) NextPacket() (Packet, error) {
	for f.qpos >= len(f.queue) {
		if f.pos >= len(f.pages) {
			return Packet{}, io.EOF
		}
		page := f.pages[f.pos]
		f.pos++

		f.queue = f.queue[:0]
		f.qpos = 0

		s, ok := f.streams[page.SerialNumber]
		if !ok {
			continue
		}
		f.assemble(s, page, func(pkt []byte) {
			s.seen++
			if s.seen <= s.headersNeeded {
				return
			}
			ts := s.nextTS
			s.nextTS += s.packetFrames(pkt)
			f.queue = append(f.queue, Packet{TrackID: s.track.ID, TS: s.outTS(ts), Data: pkt})
		})
		if page.hasGranule() {
			s.nextTS = page.GranulePos
		}
	}

	pkt := f.queue[f.qpos]
	f.qpos++
	return pkt, nil
}

// Seek positions the reader on the first page starting at or before the
// target. Both modes land on a page boundary.
func (f *oggFormat) Seek(_ SeekMode, to Time, trackID uint32) (SeekedTo, error) {
	s, ok := f.streams[trackID]
	if !ok || s.track.Params.TimeBase == nil {
		return SeekedTo{}, errTrackNotFound
	}

	required := s.track.Params.TimeBase.CalcTimestamp(to)
	target := int64(required) + s.delay //nolint:gosec // timestamps fit in int64
	if s.track.Params.Codec == CodecOpus {
		target -= opusPreroll
	}

	best := -1
	for i := s.headerEnd + 1; i < len(f.pages); i++ {
		page := f.pages[i]
		if page.SerialNumber != trackID || !page.hasGranule() {
			continue
		}
		if page.GranulePos > target {
			break
		}
		best = i
	}

	f.queue = f.queue[:0]
	f.qpos = 0

	if best < 0 {
		f.pos = 0
		for _, st := range f.streams {
			st.rewind()
		}
		return SeekedTo{TrackID: trackID, ActualTS: 0, RequiredTS: required}, nil
	}

	f.pos = best + 1
	for _, st := range f.streams {
		st.partial = nil
		st.seen = max(st.seen, st.headersNeeded)
	}
	s.nextTS = f.pages[best].GranulePos

	return SeekedTo{TrackID: trackID, ActualTS: s.outTS(s.nextTS), RequiredTS: required}, nil
}

func (f *oggFormat) Close() error {
	f.pages = nil
	f.queue = nil
	return nil
}

// opusPacketFrames returns the number of 48kHz frames in an Opus packet,
// from its TOC byte (RFC 6716 section 3.1).
func opusPacketFrames(pkt []byte) int {
	if len(pkt) == 0 {
		return 0
	}
	toc := pkt[0]
	config := int(toc >> 3)

	var frameSize int
	switch {
	case config < 12: // SILK: 10, 20, 40, 60 ms
		frameSize = [4]int{480, 960, 1920, 2880}[config%4]
	case config < 16: // Hybrid: 10, 20 ms
		frameSize = [2]int{480, 960}[config%2]
	default: // CELT: 2.5, 5, 10, 20 ms
		frameSize = [4]int{120, 240, 480, 960}[config%4]
	}

	var count int
	switch toc & 0x03 {
	case 0:
		count = 1
	case 1, 2:
		count = 2
	default:
		if len(pkt) < 2 {
			return 0
		}
		count = int(pkt[1] & 0x3F)
	}
	return frameSize * count
}
