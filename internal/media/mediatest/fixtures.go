// Package mediatest builds small in-memory audio files for tests.
package mediatest

import (
	"bytes"
	"encoding/binary"
)

// Sample returns the 16-bit sample of a channel at a frame.
type Sample func(frame, channel int) int16

// Constant returns a Sample generator producing v everywhere.
func Constant(v int16) Sample {
	return func(int, int) int16 { return v }
}

// WAV encodes a 16-bit PCM RIFF/WAVE file.
//
//nolint:gosec // sizes of test fixtures fit the header fields
func WAV(sampleRate, channels, frames int, sample Sample) []byte {
	const bitsPerSample = 16
	blockAlign := channels * bitsPerSample / 8
	dataSize := frames * blockAlign

	var buf bytes.Buffer
	buf.Grow(44 + dataSize)

	buf.WriteString("RIFF")
	writeU32(&buf, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	writeU32(&buf, 16)
	writeU16(&buf, 1) // PCM
	writeU16(&buf, uint16(channels))
	writeU32(&buf, uint32(sampleRate))
	writeU32(&buf, uint32(sampleRate*blockAlign))
	writeU16(&buf, uint16(blockAlign))
	writeU16(&buf, bitsPerSample)

	buf.WriteString("data")
	writeU32(&buf, uint32(dataSize))
	for f := range frames {
		for c := range channels {
			writeU16(&buf, uint16(sample(f, c)))
		}
	}
	return buf.Bytes()
}

func writeU16(buf *bytes.Buffer, v uint16) {
	buf.Write(binary.LittleEndian.AppendUint16(nil, v))
}

func writeU32(buf *bytes.Buffer, v uint32) {
	buf.Write(binary.LittleEndian.AppendUint32(nil, v))
}
