package output

import (
	"sync"
	"time"
)

const (
	nullChannels        = 2
	nullSampleRate      = 48000
	nullFramesPerBuffer = 1024
)

// NullHost discards audio. A ticker goroutine invokes the callback at the
// cadence a real device with the same configuration would.
type NullHost struct{}

func NewNullHost() *NullHost { return &NullHost{} }

func (h *NullHost) Name() string { return BackendNull }

func (h *NullHost) DefaultOutputDevice() (Device, error) { return nullDevice{}, nil }

func (h *NullHost) Close() error { return nil }

type nullDevice struct{}

func (nullDevice) Name() string { return "null" }

func (nullDevice) DefaultConfig() StreamConfig {
	return StreamConfig{
		Channels:        nullChannels,
		SampleRate:      nullSampleRate,
		FramesPerBuffer: nullFramesPerBuffer,
	}
}

func (nullDevice) OpenStream(cfg StreamConfig, cb Callback) (Stream, error) {
	if cfg.Channels < 1 || cfg.SampleRate < 1 {
		return nil, creationError(errInvalidConfig)
	}
	if cfg.FramesPerBuffer < 1 {
		cfg.FramesPerBuffer = nullFramesPerBuffer
	}
	return &nullStream{
		cfg:  cfg,
		cb:   cb,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}, nil
}

type nullStream struct {
	cfg  StreamConfig
	cb   Callback
	stop chan struct{}
	done chan struct{}

	mu      sync.Mutex
	started bool
	closed  bool
}

func (s *nullStream) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return startError(errClosed)
	}
	if s.started {
		return nil
	}
	s.started = true
	go s.run()
	return nil
}

func (s *nullStream) run() {
	defer close(s.done)

	period := time.Duration(s.cfg.FramesPerBuffer) * time.Second / time.Duration(s.cfg.SampleRate)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	buf := make([]float32, s.cfg.FramesPerBuffer*s.cfg.Channels)
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.cb(buf)
		}
	}
}

func (s *nullStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.stop)
	if s.started {
		<-s.done
	}
	return nil
}
