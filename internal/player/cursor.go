package player

import (
	"github.com/llehouerou/rpgmplay/internal/media"
	"github.com/llehouerou/rpgmplay/internal/output"
)

// cursor is the decode state of a session. It is owned by the audio
// callback: nothing else reads or writes it while the stream is open.
type cursor struct {
	reader   media.FormatReader
	decoder  media.Decoder
	trackID  uint32
	timeBase media.TimeBase
	channels int // device channels

	pcm    media.AudioBuffer
	offset int // read position in pcm.Samples

	lastReported uint64
	reported     bool

	// After a seek, samples before required are decoded but not played,
	// and positions are reported from required onwards. decoded tracks the end of the dropped audio, for containers whose
	// packets share the timestamp of their page.
	required uint64
	decoded  uint64
	trimming bool

	state     *stateFlag
	seek      *seekSlot
	positions *reporter
}

// fill is the stream callback. It never blocks: paused or stopped sessions
// produce silence, and exhaustion or decode failures silence the rest of the
// block.
func (c *cursor) fill(out []float32) {
	if c.state.Load() != Playing {
		output.Silence(out)
		return
	}

	if second, ok := c.seek.Take(); ok {
		c.seekTo(second)
	}

	written := 0
	for written < len(out) {
		if c.offset >= len(c.pcm.Samples) {
			if !c.decodeNext() {
				break
			}
			continue
		}
		frames := output.MapChannels(out[written:], c.channels, c.pcm.Samples[c.offset:], c.pcm.Channels)
		if frames == 0 {
			// Less than a frame left in either buffer.
			if len(out)-written < c.channels {
				break
			}
			c.offset = len(c.pcm.Samples)
			continue
		}
		written += frames * c.channels
		c.offset += frames * c.pcm.Channels
	}

	output.Silence(out[written:])
}

// decodeNext decodes the next packet into pcm and reports its position. It
// returns false at the end of the stream, on a decode error and on a packet
// of another track. Packets lying wholly before a seek target are decoded
// and dropped.
func (c *cursor) decodeNext() bool {
	for {
		pkt, err := c.reader.NextPacket()
		if err != nil {
			c.discard()
			return false
		}
		if pkt.TrackID != c.trackID {
			c.discard()
			return false
		}
		if err := c.decoder.Decode(pkt, &c.pcm); err != nil {
			c.discard()
			return false
		}
		c.offset = 0

		ts := pkt.TS
		if c.trimming {
			ts = max(ts, c.decoded)
			if !c.trim(ts) {
				continue
			}
		}
		// Positions never fall behind the last seek target.
		ts = max(ts, c.required)

		second := c.timeBase.CalcTime(ts).Seconds
		if !c.reported || second != c.lastReported {
			c.lastReported = second
			c.reported = true
			c.positions.send(second)
		}
		return true
	}
}

// trim skips the frames of the decoded packet at ts that precede the seek
// target. It returns false when the whole packet precedes it.
func (c *cursor) trim(ts uint64) bool {
	if ts >= c.required {
		c.trimming = false
		return true
	}
	frames := uint64(c.pcm.Frames()) //nolint:gosec // frame counts are non-negative
	if ts+frames <= c.required {
		c.decoded = ts + frames
		c.discard()
		return false
	}
	c.offset = int(c.required-ts) * c.pcm.Channels //nolint:gosec // less than a packet
	c.trimming = false
	return true
}

// seekTo drops buffered samples and moves the reader. The next decoded
// packet is always reported.
func (c *cursor) seekTo(second uint64) {
	c.discard()
	c.reported = false
	c.trimming = false
	seeked, err := c.reader.Seek(media.SeekCoarse, media.Time{Seconds: second}, c.trackID)
	if err != nil {
		return
	}
	c.decoder.Reset()
	c.required = seeked.RequiredTS
	c.decoded = seeked.ActualTS
	c.trimming = seeked.ActualTS < seeked.RequiredTS
}

func (c *cursor) discard() {
	c.pcm.Samples = c.pcm.Samples[:0]
	c.offset = 0
}
