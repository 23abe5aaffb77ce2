// Package player runs playback sessions: it owns the output stream, the
// shared playback flag and seek slot, and the decode cursor driven by the
// audio callback.
package player

import (
	"math"
	"sync/atomic"
)

// State represents the playback state machine.
//
//	┌──────────┐      play       ┌──────────┐
//	│  Stopped │ ───────────────▶│  Playing │
//	└──────────┘                 └──────────┘
//	     ▲                            │ ▲
//	     │ stop                 pause │ │ play
//	     │                            ▼ │
//	     │                       ┌──────────┐
//	     └───────────────────────│  Paused  │
//	                  stop       └──────────┘
//
// Valid transitions:
//   - Stopped → Playing (via Play, builds a new session)
//   - Playing → Paused  (via Pause)
//   - Paused  → Playing (via Play, decode state is kept)
//   - Playing → Stopped (via Stop)
//   - Paused  → Stopped (via Stop)
//
// The values are shared with the audio callback and must stay stable.
type State uint32

const (
	Playing State = iota
	Paused
	Stopped
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

// CanResume returns true if the state allows resuming.
func (s State) CanResume() bool {
	return s == Paused
}

// stateFlag is the playback flag shared with the audio callback.
type stateFlag struct {
	v atomic.Uint32
}

func newStateFlag(s State) *stateFlag {
	f := &stateFlag{}
	f.v.Store(uint32(s))
	return f
}

func (f *stateFlag) Load() State { return State(f.v.Load()) }

func (f *stateFlag) Store(s State) { f.v.Store(uint32(s)) }

func (f *stateFlag) CompareAndSwap(old, next State) bool {
	return f.v.CompareAndSwap(uint32(old), uint32(next))
}

// noSeek marks an empty seek slot.
const noSeek = math.MaxUint64

// seekSlot holds the latest requested seek target, in seconds. Only the most
// recent request matters, so a new request overwrites a pending one.
type seekSlot struct {
	v atomic.Uint64
}

func newSeekSlot() *seekSlot {
	s := &seekSlot{}
	s.v.Store(noSeek)
	return s
}

// Request stores a target second. The sentinel value is clamped to the
// largest valid target.
func (s *seekSlot) Request(second uint64) {
	s.v.Store(min(second, noSeek-1))
}

// Take consumes the pending request, if any.
func (s *seekSlot) Take() (uint64, bool) {
	v := s.v.Swap(noSeek)
	return v, v != noSeek
}

// Pending reports whether a request is waiting.
func (s *seekSlot) Pending() bool {
	return s.v.Load() != noSeek
}
