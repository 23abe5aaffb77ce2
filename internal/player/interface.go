package player

import "github.com/llehouerou/rpgmplay/internal/media"

// Interface defines the player contract for dependency injection and testing.
type Interface interface {
	Select(track Track)
	Selected() string
	Play() (*Started, error)
	Pause()
	Stop()
	Toggle()
	Seek(second uint64)
	State() State
	Positions() <-chan uint64
	Duration() (media.Time, string)
	Close() error
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
