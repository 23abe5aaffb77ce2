package output

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

const (
	speakerChannels    = 2
	speakerDefaultRate = 44100
	resampleQuality    = 4
)

// SpeakerHost plays through the beep speaker. The speaker is initialised
// once, at the sample rate of the first stream; later streams at other
// rates are resampled.
type SpeakerHost struct {
	mu          sync.Mutex
	initialized bool
	rate        beep.SampleRate
}

func NewSpeakerHost() *SpeakerHost {
	return &SpeakerHost{}
}

func (h *SpeakerHost) Name() string { return BackendSpeaker }

func (h *SpeakerHost) DefaultOutputDevice() (Device, error) {
	return &speakerDevice{host: h}, nil
}

func (h *SpeakerHost) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.initialized {
		speaker.Close()
		h.initialized = false
	}
	return nil
}

func (h *SpeakerHost) init(rate beep.SampleRate) (beep.SampleRate, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.initialized {
		if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
			return 0, err
		}
		h.initialized = true
		h.rate = rate
	}
	return h.rate, nil
}

type speakerDevice struct {
	host *SpeakerHost
}

func (d *speakerDevice) Name() string { return "beep speaker" }

func (d *speakerDevice) DefaultConfig() StreamConfig {
	d.host.mu.Lock()
	defer d.host.mu.Unlock()
	rate := speakerDefaultRate
	if d.host.initialized {
		rate = int(d.host.rate)
	}
	return StreamConfig{Channels: speakerChannels, SampleRate: rate}
}

func (d *speakerDevice) OpenStream(cfg StreamConfig, cb Callback) (Stream, error) {
	trackRate := beep.SampleRate(cfg.SampleRate)
	speakerRate, err := d.host.init(trackRate)
	if err != nil {
		return nil, creationError(err)
	}

	src := &callbackStreamer{cb: cb, channels: max(cfg.Channels, 1)}
	var streamer beep.Streamer = src
	if trackRate != speakerRate {
		streamer = beep.Resample(resampleQuality, trackRate, speakerRate, src)
	}
	return &speakerStream{streamer: streamer}, nil
}

// callbackStreamer adapts a Callback to beep.Streamer. Its buffer only grows
// when beep asks for more samples than ever before.
type callbackStreamer struct {
	cb       Callback
	channels int
	buf      []float32
}

func (s *callbackStreamer) Stream(samples [][2]float64) (int, bool) {
	n := len(samples) * s.channels
	if cap(s.buf) < n {
		s.buf = make([]float32, n)
	}
	buf := s.buf[:n]
	s.cb(buf)

	for i := range samples {
		frame := buf[i*s.channels : (i+1)*s.channels]
		samples[i][0] = float64(frame[0])
		samples[i][1] = float64(frame[min(1, s.channels-1)])
	}
	return len(samples), true
}

func (s *callbackStreamer) Err() error { return nil }

type speakerStream struct {
	streamer beep.Streamer
	mu       sync.Mutex
	started  bool
	closed   bool
}

func (s *speakerStream) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return startError(errClosed)
	}
	if !s.started {
		speaker.Play(s.streamer)
		s.started = true
	}
	return nil
}

// Close clears the speaker. speaker.Clear takes the mixer lock, so it waits
// for an in-flight Stream call to finish.
func (s *speakerStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.started {
		speaker.Clear()
	}
	return nil
}
