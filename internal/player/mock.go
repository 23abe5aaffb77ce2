package player

import "github.com/llehouerou/rpgmplay/internal/media"

// Mock is a test double for Player. Positions are pushed by the test with
// Emit.
type Mock struct {
	state     State
	selected  *Track
	playing   string
	duration  media.Time
	playErr   error
	positions chan uint64

	PlayCalls int
	SeekCalls []uint64
	Closed    bool
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{state: Stopped}
}

// SetPlayError makes the next Play calls fail with err.
func (m *Mock) SetPlayError(err error) { m.playErr = err }

// SetDuration sets the duration reported by new sessions.
func (m *Mock) SetDuration(d media.Time) { m.duration = d }

// Emit pushes a position to the current session channel.
func (m *Mock) Emit(second uint64) {
	if m.positions != nil {
		m.positions <- second
	}
}

func (m *Mock) Select(track Track) { m.selected = &track }

func (m *Mock) Selected() string {
	if m.selected == nil {
		return ""
	}
	return m.selected.ID
}

func (m *Mock) Play() (*Started, error) {
	m.PlayCalls++
	if m.playErr != nil {
		return nil, m.playErr
	}
	if m.state == Paused || (m.state == Playing && m.selected != nil && m.selected.ID == m.playing) {
		m.state = Playing
		return m.started(true), nil
	}
	if m.selected == nil {
		return nil, ErrNoTrackSelected
	}
	m.state = Playing
	m.playing = m.selected.ID
	m.positions = make(chan uint64, DefaultPositionBuffer)
	return m.started(false), nil
}

func (m *Mock) started(resumed bool) *Started {
	return &Started{
		Duration:  m.duration,
		Display:   media.FormatClock(m.duration.Seconds),
		Positions: m.positions,
		Resumed:   resumed,
	}
}

func (m *Mock) Pause() {
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Stop() {
	m.state = Stopped
	m.playing = ""
	m.positions = nil
}

func (m *Mock) Toggle() {
	switch m.state {
	case Playing:
		m.Pause()
	case Paused:
		m.state = Playing
	case Stopped:
		// Nothing to toggle when stopped
	}
}

func (m *Mock) Seek(second uint64) {
	if m.state.IsActive() {
		m.SeekCalls = append(m.SeekCalls, second)
	}
}

func (m *Mock) State() State { return m.state }

func (m *Mock) Positions() <-chan uint64 {
	if m.positions == nil {
		return nil
	}
	return m.positions
}

func (m *Mock) Duration() (media.Time, string) {
	if !m.state.IsActive() {
		return media.Time{}, media.FormatClock(0)
	}
	return m.duration, media.FormatClock(m.duration.Seconds)
}

func (m *Mock) Close() error {
	m.Stop()
	m.Closed = true
	return nil
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
