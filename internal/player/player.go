package player

import (
	"errors"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/rpgmplay/internal/media"
	"github.com/llehouerou/rpgmplay/internal/output"
)

// DefaultFramesPerBuffer is the callback block size requested from devices.
const DefaultFramesPerBuffer = 1024

// ErrNoTrackSelected is returned by Play without a selected track.
var ErrNoTrackSelected = errors.New("no track selected")

// Track is a decrypted audio payload ready to play.
type Track struct {
	// ID identifies the track, typically its path.
	ID   string
	Data []byte
}

// Started describes the session a Play call left running.
type Started struct {
	Duration media.Time
	Display  string
	// Positions delivers elapsed whole seconds. It is replaced by every new
	// session.
	Positions <-chan uint64
	// Resumed is set when Play resumed a paused session or found the
	// selected track already playing.
	Resumed bool
}

// session is the single live playback instance.
type session struct {
	trackID string
	stream  output.Stream
	state   *stateFlag
	seek    *seekSlot
	reports *reporter

	reader  media.FormatReader
	decoder media.Decoder

	duration media.Time
	display  string
}

func (s *session) started(resumed bool) *Started {
	return &Started{
		Duration:  s.duration,
		Display:   s.display,
		Positions: s.reports.C(),
		Resumed:   resumed,
	}
}

// Player is the playback controller. Its methods are meant to be called
// from the UI loop; only the state flag and seek slot are shared with the
// audio callback.
type Player struct {
	mu sync.Mutex

	host            output.Host
	framesPerBuffer int
	positionBuffer  int
	logger          logrus.FieldLogger

	selected *Track
	current  *session
}

// Option configures a Player.
type Option func(*Player)

// WithFramesPerBuffer sets the callback block size.
func WithFramesPerBuffer(n int) Option {
	return func(p *Player) {
		if n > 0 {
			p.framesPerBuffer = n
		}
	}
}

// WithPositionBuffer sets the capacity of position channels.
func WithPositionBuffer(n int) Option {
	return func(p *Player) {
		if n > 0 {
			p.positionBuffer = n
		}
	}
}

// WithLogger sets the logger for session lifecycle events.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Player) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a player drawing on host for output.
func New(host output.Host, opts ...Option) *Player {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	p := &Player{
		host:            host,
		framesPerBuffer: DefaultFramesPerBuffer,
		positionBuffer:  DefaultPositionBuffer,
		logger:          discard,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Select sets the track the next fresh session plays.
func (p *Player) Select(track Track) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected = &track
}

// Selected returns the ID of the selected track, or "".
func (p *Player) Selected() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.selected == nil {
		return ""
	}
	return p.selected.ID
}

// Play resumes a paused session, keeps a session already playing the
// selected track, or tears down the current session and starts the
// selected track. Setup failures leave no session behind.
func (p *Player) Play() (*Started, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if s := p.current; s != nil {
		switch s.state.Load() {
		case Paused:
			s.state.Store(Playing)
			p.logger.WithField("track", s.trackID).Debug("playback resumed")
			return s.started(true), nil
		case Playing:
			if p.selected == nil || p.selected.ID == s.trackID {
				return s.started(true), nil
			}
		case Stopped:
		}
		p.teardown()
	}

	if p.selected == nil {
		return nil, ErrNoTrackSelected
	}

	s, err := p.open(*p.selected)
	if err != nil {
		p.logger.WithError(err).WithField("track", p.selected.ID).Warn("playback failed to start")
		return nil, err
	}
	p.current = s
	p.logger.WithFields(logrus.Fields{
		"track":    s.trackID,
		"duration": s.display,
	}).Info("playback started")
	return s.started(false), nil
}

// open probes the track, negotiates its codec and starts an output stream
// whose callback owns the decode cursor.
func (p *Player) open(track Track) (*session, error) {
	reader, negotiated, err := media.Open(track.Data)
	if err != nil {
		return nil, err
	}

	s := &session{
		trackID:  track.ID,
		state:    newStateFlag(Playing),
		seek:     newSeekSlot(),
		reports:  newReporter(p.positionBuffer),
		reader:   reader,
		decoder:  negotiated.Decoder,
		duration: negotiated.Duration,
		display:  negotiated.Display,
	}

	device, err := p.host.DefaultOutputDevice()
	if err != nil {
		s.release()
		return nil, err
	}

	cfg := device.DefaultConfig()
	cfg.SampleRate = negotiated.SampleRate
	cfg.FramesPerBuffer = p.framesPerBuffer

	c := &cursor{
		reader:    reader,
		decoder:   negotiated.Decoder,
		trackID:   negotiated.TrackID,
		timeBase:  negotiated.TimeBase,
		channels:  cfg.Channels,
		state:     s.state,
		seek:      s.seek,
		positions: s.reports,
	}

	stream, err := device.OpenStream(cfg, c.fill)
	if err != nil {
		s.release()
		return nil, err
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		s.release()
		return nil, err
	}
	s.stream = stream
	return s, nil
}

// Pause pauses a playing session. The callback observes it on its next
// invocation.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil && p.current.state.CompareAndSwap(Playing, Paused) {
		p.logger.WithField("track", p.current.trackID).Debug("playback paused")
	}
}

// Toggle switches between Playing and Paused. It does nothing without a
// session.
func (p *Player) Toggle() {
	switch s := p.State(); {
	case s.CanPause():
		p.Pause()
	case s.CanResume():
		_, _ = p.Play()
	}
}

// Stop ends the session. The stream is closed last, after the flag is set,
// so no decode work runs once Stop returns. Calling Stop again is a no-op.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return
	}
	p.logger.WithField("track", p.current.trackID).Debug("playback stopped")
	p.teardown()
}

func (p *Player) teardown() {
	s := p.current
	p.current = nil
	s.state.Store(Stopped)
	if s.stream != nil {
		if err := s.stream.Close(); err != nil {
			p.logger.WithError(err).Warn("closing output stream")
		}
	}
	s.release()
}

// release frees the decode resources. The stream must be closed.
func (s *session) release() {
	if s.decoder != nil {
		_ = s.decoder.Close()
	}
	if s.reader != nil {
		_ = s.reader.Close()
	}
}

// Seek requests a jump to second. Without a session it does nothing. The
// target is not validated: the container clamps it. A request the callback
// has not picked up yet is replaced.
func (p *Player) Seek(second uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return
	}
	log := p.logger.WithFields(logrus.Fields{"track": p.current.trackID, "second": second})
	if p.current.seek.Pending() {
		log.Debug("seek replaces a pending request")
	} else {
		log.Debug("seek requested")
	}
	p.current.seek.Request(second)
}

// State returns the playback state. Without a session it is Stopped.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return Stopped
	}
	return p.current.state.Load()
}

// Positions returns the position channel of the current session, or nil.
func (p *Player) Positions() <-chan uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil
	}
	return p.current.reports.C()
}

// Duration returns the duration of the current session.
func (p *Player) Duration() (media.Time, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return media.Time{}, media.FormatClock(0)
	}
	return p.current.duration, p.current.display
}

// Close stops playback and releases the host.
func (p *Player) Close() error {
	p.Stop()
	return p.host.Close()
}
