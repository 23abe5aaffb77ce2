package media

import (
	"errors"
	"testing"

	"github.com/llehouerou/rpgmplay/internal/media/mediatest"
)

func TestHint(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"ogg", []byte("OggS\x00\x02"), HintOgg},
		{"mp4", []byte("\x00\x00\x00\x20ftypM4A "), HintMP4},
		{"wav falls back to mp4", []byte("RIFF\x00\x00\x00\x00WAVE"), HintMP4},
		{"empty", nil, HintMP4},
		{"short", []byte("Og"), HintMP4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hint(tt.data); got != tt.want {
				t.Errorf("Hint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSniffers(t *testing.T) {
	tests := []struct {
		name  string
		sniff func([]byte) bool
		data  []byte
		want  bool
	}{
		{"mp4 ftyp", isMP4, []byte("\x00\x00\x00\x18ftypmp42"), true},
		{"mp4 short", isMP4, []byte("\x00\x00ft"), false},
		{"wav", isWAV, []byte("RIFF\x24\x00\x00\x00WAVEfmt "), true},
		{"riff avi", isWAV, []byte("RIFF\x24\x00\x00\x00AVI "), false},
		{"flac", isFLAC, []byte("fLaC\x00"), true},
		{"mp3 id3", isMP3, []byte("ID3\x04\x00"), true},
		{"mp3 frame sync", isMP3, []byte{0xFF, 0xFB, 0x90}, true},
		{"mp3 no sync", isMP3, []byte{0xFF, 0x00}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sniff(tt.data); got != tt.want {
				t.Errorf("sniff() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProbe_Failures(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("this is not an audio file at all")},
		{"truncated ogg", []byte("OggS\x00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := Probe(tt.data)
			if err == nil {
				_ = reader.Close()
				t.Fatal("expected probe failure")
			}
			if !errors.Is(err, ErrProbe) {
				t.Errorf("err = %v, want ErrProbe", err)
			}
			if err.Error() == ErrProbe.Error() {
				t.Errorf("err = %q, want the backend diagnostic attached", err)
			}
		})
	}
}

func TestProbe_OggHint(t *testing.T) {
	reader, err := Probe(buildOpusFile(1))
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	defer reader.Close()
	if reader.Name() != "ogg" {
		t.Errorf("Name() = %q, want ogg", reader.Name())
	}
}

func TestProbe_FallsBackFromHint(t *testing.T) {
	// WAV is not ogg, so mp4 is tried first and fails before wav is found.
	reader, err := Probe(mediatest.WAV(8000, 2, 800, mediatest.Constant(0)))
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	defer reader.Close()
	if reader.Name() != "wav" {
		t.Errorf("Name() = %q, want wav", reader.Name())
	}
}

func TestProbe_Containers(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"ogg opus", buildOpusFile(1), "ogg"},
		{"m4a alac", mediatest.M4AALAC(8000, 2), "mp4"},
		{"wav", mediatest.WAV(8000, 1, 800, mediatest.Constant(0)), "wav"},
		{"flac", mediatest.FLAC(8000, 800, mediatest.Constant(0)), "flac"},
		{"mp3", mediatest.MP3(4), "mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := Probe(tt.data)
			if err != nil {
				t.Fatalf("Probe failed: %v", err)
			}
			defer reader.Close()
			if reader.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", reader.Name(), tt.want)
			}
		})
	}
}

func TestProbe_ContainerOrder(t *testing.T) {
	var names []string
	for _, c := range containers {
		names = append(names, c.name)
	}
	want := []string{"ogg", "mp4", "wav", "flac", "mp3"}
	if len(names) != len(want) {
		t.Fatalf("containers = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("containers = %v, want %v", names, want)
		}
	}
}
