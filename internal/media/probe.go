package media

import (
	"bytes"
	"errors"
)

// Container hints.
const (
	HintOgg = "ogg"
	HintMP4 = "mp4"
)

var errUnrecognized = errors.New("unrecognized container")

// memSource is a seekable in-memory byte source.
type memSource struct {
	*bytes.Reader
}

func newMemSource(data []byte) *memSource {
	return &memSource{Reader: bytes.NewReader(data)}
}

func (*memSource) Close() error { return nil }

type container struct {
	name  string
	sniff func(data []byte) bool
	open  func(data []byte) (FormatReader, error)
}

var containers = []container{
	{name: HintOgg, sniff: isOgg, open: openOgg},
	{name: HintMP4, sniff: isMP4, open: openMP4},
	{name: "wav", sniff: isWAV, open: openWAV},
	{name: "flac", sniff: isFLAC, open: openFLAC},
	{name: "mp3", sniff: isMP3, open: openMP3},
}

// Hint picks the container to try first: ogg for data starting with the Ogg
// capture pattern, mp4 otherwise.
func Hint(data []byte) string {
	if isOgg(data) {
		return HintOgg
	}
	return HintMP4
}

// Probe detects the container of data and opens a reader over it. The hinted
// container is tried first, then every other container whose signature
// matches. Failure wraps ErrProbe with the last diagnostic.
func Probe(data []byte) (FormatReader, error) {
	hint := Hint(data)
	lastErr := errUnrecognized

	for _, c := range containers {
		if c.name != hint {
			continue
		}
		reader, err := c.open(data)
		if err == nil {
			return reader, nil
		}
		lastErr = err
	}

	for _, c := range containers {
		if c.name == hint || !c.sniff(data) {
			continue
		}
		reader, err := c.open(data)
		if err == nil {
			return reader, nil
		}
		lastErr = err
	}

	return nil, probeError(lastErr)
}

func isOgg(data []byte) bool {
	return bytes.HasPrefix(data, []byte("OggS"))
}

func isMP4(data []byte) bool {
	return len(data) >= 8 && string(data[4:8]) == "ftyp"
}

func isWAV(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE"
}

func isFLAC(data []byte) bool {
	return bytes.HasPrefix(data, []byte("fLaC"))
}

func isMP3(data []byte) bool {
	if bytes.HasPrefix(data, []byte("ID3")) {
		return true
	}
	return len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0
}
