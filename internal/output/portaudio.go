package output

import (
	"errors"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// maxDeviceChannels caps the channel count of devices that advertise many
// outputs (PulseAudio and PipeWire report 32 or more).
const maxDeviceChannels = 2

// PortAudioHost is the default host, backed by PortAudio.
type PortAudioHost struct {
	closeOnce sync.Once
}

// NewPortAudioHost initialises PortAudio. Close terminates it.
func NewPortAudioHost() (*PortAudioHost, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, deviceError(err)
	}
	return &PortAudioHost{}, nil
}

func (h *PortAudioHost) Name() string { return BackendPortAudio }

func (h *PortAudioHost) DefaultOutputDevice() (Device, error) {
	info, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return nil, deviceError(err)
	}
	if info == nil || info.MaxOutputChannels < 1 {
		return nil, deviceError(errors.New("default device has no output channels"))
	}
	return &portAudioDevice{info: info}, nil
}

func (h *PortAudioHost) Close() error {
	var err error
	h.closeOnce.Do(func() {
		err = portaudio.Terminate()
	})
	return err
}

type portAudioDevice struct {
	info *portaudio.DeviceInfo
}

func (d *portAudioDevice) Name() string { return d.info.Name }

func (d *portAudioDevice) DefaultConfig() StreamConfig {
	return StreamConfig{
		Channels:   min(d.info.MaxOutputChannels, maxDeviceChannels),
		SampleRate: int(d.info.DefaultSampleRate),
	}
}

func (d *portAudioDevice) OpenStream(cfg StreamConfig, cb Callback) (Stream, error) {
	params := portaudio.HighLatencyParameters(nil, d.info)
	params.Output.Channels = cfg.Channels
	params.SampleRate = float64(cfg.SampleRate)
	if cfg.FramesPerBuffer > 0 {
		params.FramesPerBuffer = cfg.FramesPerBuffer
	}

	stream, err := portaudio.OpenStream(params, func(out []float32) {
		cb(out)
	})
	if err != nil {
		return nil, creationError(err)
	}
	return &portAudioStream{stream: stream}, nil
}

type portAudioStream struct {
	stream    *portaudio.Stream
	started   bool
	closeOnce sync.Once
}

func (s *portAudioStream) Start() error {
	if err := s.stream.Start(); err != nil {
		return startError(err)
	}
	s.started = true
	return nil
}

// Close stops the stream first: Pa_StopStream returns only after the last
// callback has completed.
func (s *portAudioStream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.started {
			err = s.stream.Stop()
		}
		err = errors.Join(err, s.stream.Close())
	})
	return err
}
