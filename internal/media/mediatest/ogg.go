package mediatest

import (
	"bytes"
	"encoding/binary"
)

// OpusPreSkip is the pre-skip written by OggOpus.
const OpusPreSkip = 312

// OggOpus builds a stereo Ogg Opus stream of whole seconds, one page per
// second of fifty 20ms SILK packets. Packet i of second s carries the bytes
// {0x08, s, i}; the payload is not decodable audio.
//
//nolint:gosec // sizes of test fixtures fit the header fields
func OggOpus(seconds int) []byte {
	const serial = 0x1234

	head := []byte("OpusHead")
	head = append(head, 1, 2)
	head = binary.LittleEndian.AppendUint16(head, OpusPreSkip)
	head = binary.LittleEndian.AppendUint32(head, 48000)
	head = append(head, 0, 0, 0)

	tags := []byte("OpusTags")
	tags = binary.LittleEndian.AppendUint32(tags, 4)
	tags = append(tags, "test"...)
	tags = binary.LittleEndian.AppendUint32(tags, 0)

	var buf bytes.Buffer
	oggPage(&buf, 0, 0x02, serial, 0, [][]byte{head})
	oggPage(&buf, 0, 0, serial, 1, [][]byte{tags})
	for s := range seconds {
		packets := make([][]byte, 50)
		for i := range packets {
			packets[i] = []byte{0x08, byte(s), byte(i)}
		}
		flags := byte(0)
		if s == seconds-1 {
			flags = 0x04
		}
		oggPage(&buf, int64(OpusPreSkip+(s+1)*48000), flags, serial, uint32(s+2), packets)
	}
	return buf.Bytes()
}

// oggPage writes a page of complete packets. The checksum is left zero.
func oggPage(w *bytes.Buffer, granule int64, flags byte, serial, sequence uint32, packets [][]byte) {
	var segments, body []byte
	for _, pkt := range packets {
		n := len(pkt)
		for n >= 255 {
			segments = append(segments, 255)
			n -= 255
		}
		segments = append(segments, byte(n))
		body = append(body, pkt...)
	}
	w.WriteString("OggS")
	w.WriteByte(0)
	w.WriteByte(flags)
	w.Write(binary.LittleEndian.AppendUint64(nil, uint64(granule)))
	writeU32(w, serial)
	writeU32(w, sequence)
	writeU32(w, 0)
	w.WriteByte(byte(len(segments)))
	w.Write(segments)
	w.Write(body)
}
