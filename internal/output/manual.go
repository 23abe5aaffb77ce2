package output

import (
	"errors"
	"sync"
)

var errInvalidConfig = errors.New("invalid stream configuration")

// ManualHost is a Host whose callbacks are driven by the caller through
// Tick. Failures can be injected at every stage of stream setup.
type ManualHost struct {
	Config StreamConfig

	// DeviceErr, OpenErr and StartErr make the matching step fail.
	DeviceErr error
	OpenErr   error
	StartErr  error

	mu      sync.Mutex
	streams []*ManualStream
}

// NewManualHost returns a host with a device of the given layout.
func NewManualHost(channels, framesPerBuffer int) *ManualHost {
	return &ManualHost{Config: StreamConfig{
		Channels:        channels,
		SampleRate:      nullSampleRate,
		FramesPerBuffer: framesPerBuffer,
	}}
}

func (h *ManualHost) Name() string { return "manual" }

func (h *ManualHost) DefaultOutputDevice() (Device, error) {
	if h.DeviceErr != nil {
		return nil, deviceError(h.DeviceErr)
	}
	return manualDevice{host: h}, nil
}

func (h *ManualHost) Close() error { return nil }

// Streams returns every stream opened so far, oldest first.
func (h *ManualHost) Streams() []*ManualStream {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*ManualStream(nil), h.streams...)
}

// Current returns the most recently opened stream, or nil.
func (h *ManualHost) Current() *ManualStream {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.streams) == 0 {
		return nil
	}
	return h.streams[len(h.streams)-1]
}

// Tick invokes the callback of the current stream once with a block of
// FramesPerBuffer frames and returns a copy of the block. It returns nil
// when there is no running stream.
func (h *ManualHost) Tick() []float32 {
	s := h.Current()
	if s == nil {
		return nil
	}
	return s.Tick()
}

type manualDevice struct {
	host *ManualHost
}

func (d manualDevice) Name() string { return "manual" }

func (d manualDevice) DefaultConfig() StreamConfig { return d.host.Config }

func (d manualDevice) OpenStream(cfg StreamConfig, cb Callback) (Stream, error) {
	if d.host.OpenErr != nil {
		return nil, creationError(d.host.OpenErr)
	}
	if cfg.Channels < 1 {
		return nil, creationError(errInvalidConfig)
	}
	if cfg.FramesPerBuffer < 1 {
		cfg.FramesPerBuffer = d.host.Config.FramesPerBuffer
	}
	s := &ManualStream{
		host: d.host,
		cfg:  cfg,
		cb:   cb,
		buf:  make([]float32, cfg.FramesPerBuffer*cfg.Channels),
	}
	d.host.mu.Lock()
	d.host.streams = append(d.host.streams, s)
	d.host.mu.Unlock()
	return s, nil
}

// ManualStream is a stream opened on a ManualHost.
type ManualStream struct {
	host *ManualHost
	cfg  StreamConfig
	cb   Callback
	buf  []float32

	mu      sync.Mutex
	started bool
	closed  bool
	calls   int
}

// Config returns the configuration the stream was opened with.
func (s *ManualStream) Config() StreamConfig { return s.cfg }

func (s *ManualStream) Start() error {
	if s.host.StartErr != nil {
		return startError(s.host.StartErr)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return startError(errClosed)
	}
	s.started = true
	return nil
}

// Tick runs the callback once, unless the stream is not started or closed.
func (s *ManualStream) Tick() []float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.closed {
		return nil
	}
	// Fill with garbage so untouched samples are detectable.
	for i := range s.buf {
		s.buf[i] = 1
	}
	s.cb(s.buf)
	s.calls++
	return append([]float32(nil), s.buf...)
}

// Calls returns the number of callback invocations.
func (s *ManualStream) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Closed reports whether Close was called.
func (s *ManualStream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *ManualStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
