package ui

import (
	"sync"

	"github.com/llehouerou/rpgmplay/internal/media"
	"github.com/llehouerou/rpgmplay/internal/player"
)

// Snapshot is what the UI last showed, for readers outside the UI loop.
type Snapshot struct {
	State    player.State
	TrackID  string
	Title    string
	Elapsed  uint64
	Duration media.Time
	// Art is an image file standing for the track, or "".
	Art string
}

// NowPlaying publishes the UI state to other goroutines.
type NowPlaying struct {
	mu   sync.RWMutex
	snap Snapshot
}

func NewNowPlaying() *NowPlaying {
	return &NowPlaying{snap: Snapshot{State: player.Stopped}}
}

// Load returns the latest snapshot.
func (n *NowPlaying) Load() Snapshot {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.snap
}

func (n *NowPlaying) store(s Snapshot) {
	n.mu.Lock()
	n.snap = s
	n.mu.Unlock()
}
