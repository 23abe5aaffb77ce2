package media

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// buildVorbisIdentHeader builds a Vorbis identification header.
func buildVorbisIdentHeader(version uint32, channels byte, sampleRate uint32) []byte {
	hdr := []byte("\x01vorbis")
	hdr = binary.LittleEndian.AppendUint32(hdr, version)
	hdr = append(hdr, channels)
	hdr = binary.LittleEndian.AppendUint32(hdr, sampleRate)
	hdr = binary.LittleEndian.AppendUint32(hdr, 0)      // bitrate maximum
	hdr = binary.LittleEndian.AppendUint32(hdr, 128000) // bitrate nominal
	hdr = binary.LittleEndian.AppendUint32(hdr, 0)      // bitrate minimum
	hdr = append(hdr, 0xb8)                             // blocksizes 256/2048
	return append(hdr, 1)                               // framing
}

func TestNewOggStream_Vorbis(t *testing.T) {
	s, err := newOggStream(9, buildVorbisIdentHeader(0, 2, 44100))
	if err != nil {
		t.Fatalf("newOggStream failed: %v", err)
	}
	p := s.track.Params
	if p.Codec != CodecVorbis {
		t.Errorf("Codec = %v, want vorbis", p.Codec)
	}
	if p.Channels != 2 || p.SampleRate != 44100 {
		t.Errorf("format = %d/%d, want 44100/2", p.SampleRate, p.Channels)
	}
	if p.TimeBase == nil || p.TimeBase.Denom != 44100 {
		t.Errorf("TimeBase = %v, want 1/44100", p.TimeBase)
	}
	if s.headersNeeded != 3 {
		t.Errorf("headersNeeded = %d, want 3", s.headersNeeded)
	}
	if s.delay != 0 {
		t.Errorf("delay = %d, want 0", s.delay)
	}
}

func TestNewOggStream_InvalidVorbis(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
	}{
		{"nonzero version", buildVorbisIdentHeader(1, 2, 44100)},
		{"short header", buildVorbisIdentHeader(0, 2, 44100)[:20]},
		{"zero sample rate", buildVorbisIdentHeader(0, 2, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := newOggStream(9, tt.header); !errors.Is(err, errInvalidVorbisHeader) {
				t.Errorf("err = %v, want errInvalidVorbisHeader", err)
			}
		})
	}
}

func TestNewOggStream_InvalidOpus(t *testing.T) {
	head := opusHead(2, 0)
	if _, err := newOggStream(9, head[:12]); !errors.Is(err, errInvalidOpusHead) {
		t.Errorf("short OpusHead: err = %v, want errInvalidOpusHead", err)
	}
	head[8] = 2
	if _, err := newOggStream(9, head); !errors.Is(err, errUnsupportedOpus) {
		t.Errorf("version 2: err = %v, want errUnsupportedOpus", err)
	}
}

func TestOpenOgg_VorbisHeaders(t *testing.T) {
	var buf bytes.Buffer
	writeOggPage(&buf, 0, oggFlagBOS, 9, 0, [][]byte{buildVorbisIdentHeader(0, 1, 22050)})
	writeOggPage(&buf, 0, 0, 9, 1, [][]byte{[]byte("\x03vorbis comment"), []byte("\x05vorbis setup")})
	writeOggPage(&buf, 22050, oggFlagEOS, 9, 2, [][]byte{{0}, {0}})

	reader, err := openOgg(buf.Bytes())
	if err != nil {
		t.Fatalf("openOgg failed: %v", err)
	}
	defer reader.Close()

	track := reader.DefaultTrack()
	if track == nil {
		t.Fatal("DefaultTrack() = nil")
	}
	p := track.Params
	if p.Codec != CodecVorbis || p.Channels != 1 || p.SampleRate != 22050 {
		t.Errorf("params = %v/%d/%d, want vorbis/22050/1", p.Codec, p.SampleRate, p.Channels)
	}
	if len(p.Headers) != 3 || p.Headers[0][0] != 0x01 || p.Headers[2][0] != 0x05 {
		t.Errorf("Headers = %d packets, want identification, comment and setup", len(p.Headers))
	}
	if p.NFrames == nil || *p.NFrames != 22050 {
		t.Errorf("NFrames = %v, want 22050", p.NFrames)
	}

	// The setup header is not a codebook: the decoder refuses it.
	if _, err := Negotiate(reader); !errors.Is(err, ErrDecoderInit) {
		t.Errorf("Negotiate err = %v, want ErrDecoderInit", err)
	}
}

func TestNewVorbisDecoder_MissingHeaders(t *testing.T) {
	_, err := newVorbisDecoder(CodecParams{
		Codec:   CodecVorbis,
		Headers: [][]byte{buildVorbisIdentHeader(0, 2, 44100)},
	})
	if !errors.Is(err, errVorbisHeaders) {
		t.Errorf("err = %v, want errVorbisHeaders", err)
	}
}

func TestNewVorbisDecoder_IdentificationHeader(t *testing.T) {
	// A valid identification header followed by garbage fails on the
	// comment header, past the first ReadHeader call.
	_, err := newVorbisDecoder(CodecParams{
		Codec:    CodecVorbis,
		Channels: 2,
		Headers: [][]byte{
			buildVorbisIdentHeader(0, 2, 44100),
			[]byte("not a comment header"),
			[]byte("not a setup header"),
		},
	})
	if err == nil {
		t.Error("newVorbisDecoder accepted invalid comment and setup headers")
	}
}

func TestOpusDecoder_PreSkip(t *testing.T) {
	d := &opusDecoder{params: CodecParams{Channels: 2, Delay: 312}, skip: 312}

	if got := d.leading(0, 120); got != 120 {
		t.Errorf("first packet drops %d frames, want 120", got)
	}
	if got := d.leading(0, 960); got != 192 {
		t.Errorf("second packet drops %d frames, want 192", got)
	}
	if got := d.leading(768, 960); got != 0 {
		t.Errorf("packet past the pre-skip drops %d frames, want 0", got)
	}

	// Rewinding to the start replays the pre-skip.
	d.Reset()
	if got := d.leading(0, 960); got != 312 {
		t.Errorf("after rewind: drops %d frames, want 312", got)
	}

	// A seek into the stream resumes past it.
	d.Reset()
	if got := d.leading(96000, 960); got != 0 {
		t.Errorf("after seek: drops %d frames, want 0", got)
	}
	if got := d.leading(0, 960); got != 0 {
		t.Errorf("skip stayed armed after a seek: drops %d frames", got)
	}
}
