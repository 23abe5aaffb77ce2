package mediatest

import (
	"bytes"
	"encoding/binary"
)

// ALACFrameLength is the number of frames per sample in M4AALAC files.
const ALACFrameLength = 4096

// M4AALAC builds a 16-bit mono ALAC M4A file of n container samples in a
// single chunk. The sample payloads are placeholders, not ALAC frames.
//
//nolint:gosec // sizes of test fixtures fit the header fields
func M4AALAC(sampleRate, n int) []byte {
	const payloadSize = 16

	ftyp := mp4Box("ftyp", []byte("M4A "), u32(0), []byte("M4A "), []byte("isom"))

	cookie := bytes.Join([][]byte{
		u32(ALACFrameLength),
		{0, 16, 40, 10, 14, 1}, // compatible version, bit depth, pb, mb, kb, channels
		u16(255),               // max run
		u32(0),                 // max frame bytes
		u32(0),                 // average bit rate
		u32(uint32(sampleRate)),
	}, nil)
	entry := mp4Box("alac",
		make([]byte, 6), u16(1), // reserved, data reference index
		u16(0), make([]byte, 6), // entry version, reserved
		u16(1), u16(16), u16(0), u16(0), // channels, sample size, pre-defined, reserved
		u32(uint32(sampleRate)<<16),
		mp4Box("alac", u32(0), cookie),
	)

	moov := func(offset uint32) []byte {
		stbl := mp4Box("stbl",
			mp4Box("stsd", u32(0), u32(1), entry),
			mp4Box("stts", u32(0), u32(1), u32(uint32(n)), u32(ALACFrameLength)),
			mp4Box("stsc", u32(0), u32(1), u32(1), u32(uint32(n)), u32(1)),
			mp4Box("stsz", u32(0), u32(payloadSize), u32(uint32(n))),
			mp4Box("stco", u32(0), u32(1), u32(offset)),
		)
		mdhd := mp4Box("mdhd", u32(0), u32(0), u32(0),
			u32(uint32(sampleRate)), u32(uint32(n*ALACFrameLength)), u16(0x55c4), u16(0))
		hdlr := mp4Box("hdlr", u32(0), u32(0), []byte("soun"), make([]byte, 12), []byte("SoundHandler\x00"))
		return mp4Box("moov", mp4Box("trak", mp4Box("mdia", mdhd, hdlr, mp4Box("minf", stbl))))
	}

	// The chunk offset field has a fixed size, so a first pass gives the
	// layout.
	offset := uint32(len(ftyp) + len(moov(0)) + 8)

	payload := make([]byte, n*payloadSize)
	for i := range payload {
		payload[i] = byte(i / payloadSize)
	}
	return bytes.Join([][]byte{ftyp, moov(offset), mp4Box("mdat", payload)}, nil)
}

//nolint:gosec // fixture boxes are small
func mp4Box(typ string, fields ...[]byte) []byte {
	body := bytes.Join(fields, nil)
	return bytes.Join([][]byte{u32(uint32(8 + len(body))), []byte(typ), body}, nil)
}

func u16(v uint16) []byte { return binary.BigEndian.AppendUint16(nil, v) }

func u32(v uint32) []byte { return binary.BigEndian.AppendUint32(nil, v) }
