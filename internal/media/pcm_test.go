package media

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/llehouerou/rpgmplay/internal/media/mediatest"
)

const testWAVRate = 8000

func openTestWAV(t *testing.T, seconds int) FormatReader {
	t.Helper()
	data := mediatest.WAV(testWAVRate, 1, seconds*testWAVRate, mediatest.Constant(16384))
	reader, err := Probe(data)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	t.Cleanup(func() { _ = reader.Close() })
	return reader
}

func TestWAV_Packets(t *testing.T) {
	reader := openTestWAV(t, 10)
	if reader.Name() != "wav" {
		t.Fatalf("Name() = %q, want wav", reader.Name())
	}

	track := reader.DefaultTrack()
	if track == nil {
		t.Fatal("DefaultTrack() = nil")
	}
	decoder, err := NewDecoder(track.Params)
	if err != nil {
		t.Fatalf("NewDecoder failed: %v", err)
	}

	var buf AudioBuffer
	var packets, frames int
	var lastTS uint64
	for {
		pkt, err := reader.NextPacket()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("NextPacket failed: %v", err)
		}
		if packets > 0 && pkt.TS != lastTS+pcmBlockFrames {
			t.Fatalf("packet %d TS = %d, want %d", packets, pkt.TS, lastTS+pcmBlockFrames)
		}
		lastTS = pkt.TS

		if err := decoder.Decode(pkt, &buf); err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if buf.Channels != 1 {
			t.Fatalf("Channels = %d, want 1", buf.Channels)
		}
		if math.Abs(float64(buf.Samples[0])-0.5) > 1e-3 {
			t.Fatalf("sample = %f, want ~0.5", buf.Samples[0])
		}
		frames += buf.Frames()
		packets++
	}

	if frames != 10*testWAVRate {
		t.Errorf("decoded frames = %d, want %d", frames, 10*testWAVRate)
	}
	if want := (10*testWAVRate + pcmBlockFrames - 1) / pcmBlockFrames; packets != want {
		t.Errorf("packets = %d, want %d", packets, want)
	}
}

func TestWAV_Seek(t *testing.T) {
	reader := openTestWAV(t, 10)
	id := reader.DefaultTrack().ID

	seeked, err := reader.Seek(SeekCoarse, Time{Seconds: 5}, id)
	if err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	if seeked.ActualTS != 5*testWAVRate {
		t.Errorf("ActualTS = %d, want %d", seeked.ActualTS, 5*testWAVRate)
	}
	pkt, err := reader.NextPacket()
	if err != nil {
		t.Fatalf("NextPacket failed: %v", err)
	}
	if pkt.TS != 5*testWAVRate {
		t.Errorf("TS after seek = %d, want %d", pkt.TS, 5*testWAVRate)
	}

	// Out of range targets clamp to the end.
	if _, err := reader.Seek(SeekCoarse, Time{Seconds: 100}, id); err != nil {
		t.Fatalf("Seek past end failed: %v", err)
	}
	if _, err := reader.NextPacket(); !errors.Is(err, io.EOF) {
		t.Errorf("NextPacket after seek past end = %v, want EOF", err)
	}
}

func TestDecodeS16LE(t *testing.T) {
	var buf AudioBuffer
	decodeS16LE([]byte{0x00, 0x40, 0x00, 0xC0, 0xFF, 0x7F}, &buf)

	want := []float32{0.5, -0.5, 32767.0 / 32768.0}
	if len(buf.Samples) != len(want) {
		t.Fatalf("samples = %d, want %d", len(buf.Samples), len(want))
	}
	for i, w := range want {
		if buf.Samples[i] != w {
			t.Errorf("sample[%d] = %f, want %f", i, buf.Samples[i], w)
		}
	}
}

func TestDecodeS24LE(t *testing.T) {
	var buf AudioBuffer
	decodeS24LE([]byte{0x00, 0x00, 0x40, 0x00, 0x00, 0xC0}, &buf)

	if len(buf.Samples) != 2 || buf.Samples[0] != 0.5 || buf.Samples[1] != -0.5 {
		t.Errorf("samples = %v, want [0.5 -0.5]", buf.Samples)
	}
}

func TestDecodeF32LE(t *testing.T) {
	var buf AudioBuffer
	// 0.25 and -1.0
	decodeF32LE([]byte{0x00, 0x00, 0x80, 0x3E, 0x00, 0x00, 0x80, 0xBF}, &buf)

	if len(buf.Samples) != 2 || buf.Samples[0] != 0.25 || buf.Samples[1] != -1 {
		t.Errorf("samples = %v, want [0.25 -1]", buf.Samples)
	}
}

func TestFLAC_OpenAndSeek(t *testing.T) {
	data := mediatest.FLAC(testWAVRate, 3*testWAVRate, mediatest.Constant(-16384))
	reader, n, err := Open(data)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer reader.Close()

	if reader.Name() != "flac" {
		t.Errorf("Name() = %q, want flac", reader.Name())
	}
	params := n.Decoder.CodecParams()
	if got := params.CodecName(); got != "flac" {
		t.Errorf("CodecName() = %q, want flac", got)
	}
	if params.BitDepth != 16 {
		t.Errorf("BitDepth = %d, want 16", params.BitDepth)
	}
	if n.SampleRate != testWAVRate || n.Channels != 1 {
		t.Errorf("format = %d/%d, want %d/1", n.SampleRate, n.Channels, testWAVRate)
	}
	if n.Display != "00:03" {
		t.Errorf("Display = %q, want 00:03", n.Display)
	}

	pkt, err := reader.NextPacket()
	if err != nil {
		t.Fatalf("NextPacket failed: %v", err)
	}
	var buf AudioBuffer
	if err := n.Decoder.Decode(pkt, &buf); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if buf.Frames() != pcmBlockFrames {
		t.Errorf("Frames() = %d, want %d", buf.Frames(), pcmBlockFrames)
	}
	if math.Abs(float64(buf.Samples[0])+0.5) > 1e-3 {
		t.Errorf("sample = %f, want ~-0.5", buf.Samples[0])
	}

	seeked, err := reader.Seek(SeekCoarse, Time{Seconds: 1}, n.TrackID)
	if err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	if seeked.ActualTS != testWAVRate || seeked.RequiredTS != testWAVRate {
		t.Errorf("seeked = %+v, want %d", seeked, testWAVRate)
	}
	if pkt, err = reader.NextPacket(); err != nil || pkt.TS != testWAVRate {
		t.Errorf("packet after seek: TS = %d err = %v, want %d", pkt.TS, err, testWAVRate)
	}
}
