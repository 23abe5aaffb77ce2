package mediatest

import "bytes"

// MP3FrameSamples is the number of frames one MPEG-1 Layer III frame holds.
const MP3FrameSamples = 1152

// MP3 builds a silent 44.1kHz joint-stereo MPEG-1 Layer III stream of n
// frames. Every frame is 417 bytes at 128kbps with empty side info, so it
// decodes to silence.
func MP3(n int) []byte {
	frame := make([]byte, 417)
	copy(frame, []byte{0xFF, 0xFB, 0x90, 0x44})

	var buf bytes.Buffer
	for range n {
		buf.Write(frame)
	}
	return buf.Bytes()
}
