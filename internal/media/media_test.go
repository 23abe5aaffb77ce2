package media

import (
	"math"
	"testing"
)

func TestTimeBase_CalcTime(t *testing.T) {
	tests := []struct {
		name     string
		tb       TimeBase
		ts       uint64
		wantSec  uint64
		wantFrac float64
	}{
		{"zero", NewTimeBase(48000), 0, 0, 0},
		{"one second", NewTimeBase(48000), 48000, 1, 0},
		{"half second", NewTimeBase(44100), 22050, 0, 0.5},
		{"ten and a quarter", NewTimeBase(8000), 82000, 10, 0.25},
		{"zero denominator", TimeBase{Numer: 1}, 1234, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tb.CalcTime(tt.ts)
			if got.Seconds != tt.wantSec {
				t.Errorf("Seconds = %d, want %d", got.Seconds, tt.wantSec)
			}
			if math.Abs(got.Frac-tt.wantFrac) > 1e-9 {
				t.Errorf("Frac = %f, want %f", got.Frac, tt.wantFrac)
			}
		})
	}
}

func TestTimeBase_CalcTimestamp(t *testing.T) {
	tb := NewTimeBase(48000)

	if got := tb.CalcTimestamp(Time{Seconds: 5}); got != 240000 {
		t.Errorf("CalcTimestamp(5s) = %d, want 240000", got)
	}
	if got := tb.CalcTimestamp(Time{Seconds: 1, Frac: 0.5}); got != 72000 {
		t.Errorf("CalcTimestamp(1.5s) = %d, want 72000", got)
	}
	if got := tb.CalcTime(tb.CalcTimestamp(Time{Seconds: 42})); got.Seconds != 42 {
		t.Errorf("round trip = %d, want 42", got.Seconds)
	}
}

func TestTime_Float(t *testing.T) {
	if got := (Time{Seconds: 3, Frac: 0.25}).Float(); got != 3.25 {
		t.Errorf("Float() = %f, want 3.25", got)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds uint64
		want    string
	}{
		{0, "00:00"},
		{9, "00:09"},
		{60, "01:00"},
		{125, "02:05"},
		{3599, "59:59"},
		{3600, "60:00"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestCodecType_String(t *testing.T) {
	tests := []struct {
		codec CodecType
		want  string
	}{
		{CodecOpus, "opus"},
		{CodecVorbis, "vorbis"},
		{CodecAAC, "aac"},
		{CodecALAC, "alac"},
		{CodecPCMS16LE, "pcm_s16le"},
		{CodecPCMF32LE, "pcm_f32le"},
		{CodecUnknown, "unknown"},
		{CodecType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.codec.String(); got != tt.want {
			t.Errorf("CodecType(%d).String() = %q, want %q", tt.codec, got, tt.want)
		}
	}
}

func TestCodecParams_CodecName(t *testing.T) {
	if got := (CodecParams{Codec: CodecOpus}).CodecName(); got != "opus" {
		t.Errorf("CodecName() = %q, want opus", got)
	}
	if got := (CodecParams{Codec: CodecPCMS16LE, Source: "mp3"}).CodecName(); got != "mp3" {
		t.Errorf("CodecName() = %q, want mp3", got)
	}
}

func TestAudioBuffer(t *testing.T) {
	var buf AudioBuffer
	if buf.Frames() != 0 {
		t.Errorf("empty Frames() = %d, want 0", buf.Frames())
	}

	buf.Channels = 2
	s := buf.Resize(8)
	if len(s) != 8 || buf.Frames() != 4 {
		t.Errorf("after Resize(8): len = %d, Frames = %d", len(s), buf.Frames())
	}

	backing := &buf.Samples[0]
	buf.Resize(4)
	if &buf.Samples[0] != backing {
		t.Error("Resize to a smaller size reallocated")
	}
}
